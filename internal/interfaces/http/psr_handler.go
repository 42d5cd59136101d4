package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmadist-api/internal/application/psr"
	"github.com/jhoicas/Farmadist-api/internal/domain/repository"
)

// PSRHandler consulta y sincronización de PSR desde el HRMS.
type PSRHandler struct {
	uc *psr.SyncUseCase
}

func NewPSRHandler(uc *psr.SyncUseCase) *PSRHandler {
	return &PSRHandler{uc: uc}
}

// List godoc
// @Summary      Listar PSR
// @Tags         psrs
// @Produce      json
// @Param        search    query  string  false  "Texto sobre nombre, área o código"
// @Param        areaCode  query  string  false  "Área exacta"
// @Success      200       {array}  dto.PSRResponse
// @Router       /api/psrs [get]
func (h *PSRHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), repository.PSRFilter{
		Search:   c.Query("search"),
		AreaCode: c.Query("areaCode"),
	})
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "PSR", out)
}

// Sync godoc
// @Summary      Sincronizar PSR desde el HRMS
// @Tags         psrs
// @Produce      json
// @Success      200  {object}  dto.PSRSyncResult
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/psrs/sync [post]
func (h *PSRHandler) Sync(c *fiber.Ctx) error {
	out, err := h.uc.Sync(c.UserContext(), actor(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "sincronización de PSR completada", out)
}
