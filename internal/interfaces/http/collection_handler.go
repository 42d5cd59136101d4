package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmadist-api/internal/application/dto"
	"github.com/jhoicas/Farmadist-api/internal/application/usecase"
)

// CollectionHandler CRUD de colecciones.
type CollectionHandler struct {
	uc *usecase.CollectionUseCase
}

func NewCollectionHandler(uc *usecase.CollectionUseCase) *CollectionHandler {
	return &CollectionHandler{uc: uc}
}

func (h *CollectionHandler) Create(c *fiber.Ctx) error {
	var in dto.CollectionRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	if strings.TrimSpace(in.Name) == "" {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "name es requerido")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "colección creada", out)
}

func (h *CollectionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "colección", out)
}

func (h *CollectionHandler) Update(c *fiber.Ctx) error {
	var in dto.CollectionRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "colección actualizada", out)
}

func (h *CollectionHandler) List(c *fiber.Ctx) error {
	page, limit := pageParams(c)
	out, err := h.uc.List(c.UserContext(), page, limit)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "colecciones", out)
}

func (h *CollectionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "colección eliminada", nil)
}
