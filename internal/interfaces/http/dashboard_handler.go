package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Farmadist-api/internal/application/analytics"
	"github.com/jhoicas/Farmadist-api/internal/application/usecase"
)

// DashboardHandler tablero de inventario y log de actividad.
type DashboardHandler struct {
	uc       *appanalytics.DashboardUseCase
	activity *usecase.ActivityUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, activity *usecase.ActivityUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc, activity: activity}
}

// GetSummary resumen de inventario: productos, lotes activos, por vencer (30 días), vencidos,
// unidades en stock y PSR sincronizados.
// GET /api/dashboard
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "resumen de inventario", summary)
}

// ListActivity log de actividad paginado, más reciente primero.
// GET /api/activity-logs
func (h *DashboardHandler) ListActivity(c *fiber.Ctx) error {
	page, limit := pageParams(c)
	out, err := h.activity.List(c.UserContext(), page, limit)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "actividad", out)
}
