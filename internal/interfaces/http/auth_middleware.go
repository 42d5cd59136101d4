package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmadist-api/internal/application/ports"
	"github.com/jhoicas/Farmadist-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/Farmadist-api/pkg/jwt"
)

// Cookies, cabeceras y locals de la sesión.
const (
	CookieSession = "session_token"
	CookieCSRF    = "csrf_token"
	HeaderCSRF    = "X-CSRF-Token"

	LocalUserID  = "user_id"
	LocalRole    = "role"
	LocalSession = "session"
)

// SessionResolver lo que el middleware necesita del servicio de sesiones.
type SessionResolver interface {
	Resolve(ctx context.Context, signed string) (*entity.Session, *pkgjwt.Claims, error)
	ValidateCSRF(sess *entity.Session, cookieValue, headerValue string) error
}

// SessionMiddleware resuelve la cookie de sesión y carga usuario, rol y sesión en c.Locals.
func SessionMiddleware(sessions SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(CookieSession)
		if token == "" {
			return fail(c, fiber.StatusUnauthorized, "MISSING_SESSION", "sesión requerida")
		}
		sess, claims, err := sessions.Resolve(c.UserContext(), token)
		if err != nil {
			status, code := statusFor(err)
			if status >= fiber.StatusInternalServerError {
				return err
			}
			return fail(c, status, code, "sesión inválida o expirada")
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)
		c.Locals(LocalSession, sess)
		return c.Next()
	}
}

// CSRFMiddleware doble envío: en métodos que mutan estado la cookie y la cabecera deben coincidir
// con el token vigente de la sesión. Va después de SessionMiddleware.
func CSRFMiddleware(sessions SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}
		sess := GetSession(c)
		if sess == nil {
			return fail(c, fiber.StatusUnauthorized, "MISSING_SESSION", "sesión requerida")
		}
		if err := sessions.ValidateCSRF(sess, c.Cookies(CookieCSRF), c.Get(HeaderCSRF)); err != nil {
			return fail(c, fiber.StatusForbidden, "CSRF_MISMATCH", "token CSRF inválido o expirado")
		}
		return c.Next()
	}
}

// RequireRole deja pasar solo si el rol de la sesión está en roles. Va después de SessionMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		if _, ok := allowed[GetRole(c)]; !ok {
			return fail(c, fiber.StatusForbidden, "FORBIDDEN", "rol sin permiso para esta operación")
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de sesión).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol del contexto.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

// GetSession devuelve la sesión resuelta o nil.
func GetSession(c *fiber.Ctx) *entity.Session {
	s, _ := c.Locals(LocalSession).(*entity.Session)
	return s
}

// actor quién ejecuta la petición, para el log de actividad.
func actor(c *fiber.Ctx) ports.Actor {
	return ports.Actor{UserID: GetUserID(c), IP: c.IP()}
}

// CookieConfig atributos de las cookies de sesión.
type CookieConfig struct {
	Secure bool
	Domain string
}

func setSessionCookie(c *fiber.Ctx, cfg CookieConfig, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieSession,
		Value:    token,
		Path:     "/",
		Domain:   cfg.Domain,
		Expires:  expires,
		Secure:   cfg.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// setCSRFCookie legible desde JS: el cliente la copia en X-CSRF-Token.
func setCSRFCookie(c *fiber.Ctx, cfg CookieConfig, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieCSRF,
		Value:    token,
		Path:     "/",
		Domain:   cfg.Domain,
		Expires:  expires,
		Secure:   cfg.Secure,
		HTTPOnly: false,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearSessionCookies(c *fiber.Ctx, cfg CookieConfig) {
	past := time.Unix(0, 0)
	setSessionCookie(c, cfg, "", past)
	setCSRFCookie(c, cfg, "", past)
}
