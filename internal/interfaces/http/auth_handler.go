package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmadist-api/internal/application/auth"
	"github.com/jhoicas/Farmadist-api/internal/application/dto"
)

// AuthHandler registro, login, logout, usuario actual y rotación CSRF.
type AuthHandler struct {
	uc      *auth.AuthUseCase
	cookies CookieConfig
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, cookies CookieConfig) *AuthHandler {
	return &AuthHandler{uc: uc, cookies: cookies}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, name, role"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Email == "" || in.Password == "" || strings.TrimSpace(in.Name) == "" {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "email, password y name son requeridos")
	}
	if len(in.Password) < auth.MinPasswordLength {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "password debe tener al menos 8 caracteres")
	}
	user, err := h.uc.Register(c.UserContext(), actor(c), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "usuario registrado", user)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Email == "" || in.Password == "" {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "email y password son requeridos")
	}
	res, err := h.uc.Login(c.UserContext(), in, auth.SessionMeta{
		UserAgent: string(c.Request().Header.UserAgent()),
		IP:        c.IP(),
	})
	if err != nil {
		return err
	}
	setSessionCookie(c, h.cookies, res.SignedToken, res.Session.ExpiresAt)
	setCSRFCookie(c, h.cookies, res.Response.CSRFToken, res.Response.CSRFTokenExpiresAt)
	return respond(c, fiber.StatusOK, "sesión iniciada", res.Response)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess := GetSession(c)
	if sess == nil {
		return fail(c, fiber.StatusUnauthorized, "MISSING_SESSION", "sesión requerida")
	}
	if err := h.uc.Logout(c.UserContext(), actor(c), sess.ID); err != nil {
		return err
	}
	clearSessionCookies(c, h.cookies)
	return respond(c, fiber.StatusOK, "sesión cerrada", nil)
}

// Me godoc
// @Summary      Usuario de la sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.uc.Me(c.UserContext(), GetUserID(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "usuario actual", user)
}

// RefreshCSRF godoc
// @Summary      Rotar token CSRF
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.CSRFResponse
// @Router       /api/auth/csrf [post]
func (h *AuthHandler) RefreshCSRF(c *fiber.Ctx) error {
	sess := GetSession(c)
	if sess == nil {
		return fail(c, fiber.StatusUnauthorized, "MISSING_SESSION", "sesión requerida")
	}
	out, err := h.uc.RefreshCSRF(c.UserContext(), sess)
	if err != nil {
		return err
	}
	setCSRFCookie(c, h.cookies, out.CSRFToken, out.CSRFTokenExpiresAt)
	return respond(c, fiber.StatusOK, "token CSRF renovado", out)
}
