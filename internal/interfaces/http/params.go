package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmadist-api/internal/application/dto"
)

// pageParams lee page y limit de la query y aplica los límites por defecto.
func pageParams(c *fiber.Ctx) (int, int) {
	return dto.Normalize(c.QueryInt("page", 1), c.QueryInt("limit", 20))
}

// parseDateParam acepta 2006-01-02 o RFC3339. Vacío → nil. Con endOfDay, una fecha sin hora
// se extiende al último instante de ese día.
func parseDateParam(raw string, endOfDay bool) (*time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, true
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, false
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, true
}
