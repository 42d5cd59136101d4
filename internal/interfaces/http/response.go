package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Farmadist-api/internal/application/dto"
	"github.com/jhoicas/Farmadist-api/internal/domain"
)

// respond envuelve data en el sobre estándar {success, method, message, data}.
func respond(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(dto.Envelope{
		Success: true,
		Method:  c.Method(),
		Message: message,
		Data:    data,
	})
}

// fail responde un error con código explícito.
func fail(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Message: message, Status: status, Code: code})
}

// statusFor traduce errores de dominio a status HTTP y código.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrSessionExpired):
		return fiber.StatusUnauthorized, "SESSION_EXPIRED"
	case errors.Is(err, domain.ErrCSRFMismatch):
		return fiber.StatusForbidden, "CSRF_MISMATCH"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, "EMAIL_EXISTS"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrSyncInProgress):
		return fiber.StatusConflict, "SYNC_IN_PROGRESS"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrLegacyUnavailable):
		return fiber.StatusServiceUnavailable, "HRMS_UNAVAILABLE"
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, "HTTP_ERROR"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// ErrorHandler manejador central de Fiber. Los errores de dominio conservan su status;
// el resto es 500 salvo que un *fiber.Error traiga otro. El detalle solo se expone en development.
func ErrorHandler(development bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, code := statusFor(err)
		body := dto.ErrorResponse{Message: err.Error(), Status: status, Code: code}
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Interface("request_id", c.Locals("requestid")).
				Msg("error no controlado")
			if !development {
				body.Message = "error interno del servidor"
			} else {
				body.Stack = errorChain(err)
			}
		}
		return c.Status(status).JSON(body)
	}
}

// errorChain recorre la cadena de errores envueltos, un eslabón por línea con su tipo concreto.
func errorChain(err error) string {
	var b strings.Builder
	var walk func(e error, depth int)
	walk = func(e error, depth int) {
		for e != nil {
			fmt.Fprintf(&b, "%s%T: %s\n", strings.Repeat("  ", depth), e, e.Error())
			if joined, ok := e.(interface{ Unwrap() []error }); ok {
				for _, inner := range joined.Unwrap() {
					walk(inner, depth+1)
				}
				return
			}
			e = errors.Unwrap(e)
		}
	}
	walk(err, 0)
	return strings.TrimSuffix(b.String(), "\n")
}
