package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmadist-api/internal/application/dto"
	"github.com/jhoicas/Farmadist-api/internal/application/inventory"
	"github.com/jhoicas/Farmadist-api/internal/application/ports"
	"github.com/jhoicas/Farmadist-api/internal/domain/repository"
)

// InventoryHandler lotes, ítems, movimientos, traslados, historial y barrido de vencimientos.
type InventoryHandler struct {
	movements *inventory.RegisterMovementUseCase
	ledger    *inventory.LedgerUseCase
	sweep     *inventory.ExpirySweepUseCase
	pdf       ports.LedgerPDFRenderer
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	movements *inventory.RegisterMovementUseCase,
	ledger *inventory.LedgerUseCase,
	sweep *inventory.ExpirySweepUseCase,
	pdf ports.LedgerPDFRenderer,
) *InventoryHandler {
	return &InventoryHandler{movements: movements, ledger: ledger, sweep: sweep, pdf: pdf}
}

// ReceiveBatch godoc
// @Summary      Recibir lote
// @Description  Crea el lote, su ítem y el movimiento INBOUND en una sola transacción.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveBatchRequest  true  "Lote recibido"
// @Success      201   {object}  dto.ReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/batches [post]
func (h *InventoryHandler) ReceiveBatch(c *fiber.Ctx) error {
	var in dto.ReceiveBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	if in.BatchNumber == "" || in.ProductID == "" || in.StoreID == "" || in.ExpiryDate.IsZero() {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "batch_number, product_id, store_id y expiry_date son requeridos")
	}
	if in.Quantity <= 0 {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "quantity debe ser mayor a cero")
	}
	out, err := h.movements.ReceiveBatch(c.UserContext(), actor(c), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "lote recibido", out)
}

// ListBatches godoc
// @Summary      Listar lotes
// @Tags         inventory
// @Produce      json
// @Param        status   query  string  false  "ACTIVE o EXPIRED"
// @Param        storeId  query  string  false  "Tienda"
// @Param        page     query  int     false  "Página"  default(1)
// @Param        limit    query  int     false  "Límite"  default(20)
// @Success      200      {object}  dto.BatchListResponse
// @Router       /api/inventory/batches [get]
func (h *InventoryHandler) ListBatches(c *fiber.Ctx) error {
	page, limit := pageParams(c)
	out, err := h.movements.ListBatches(c.UserContext(), repository.BatchFilter{
		Status:  strings.ToUpper(c.Query("status")),
		StoreID: c.Query("storeId"),
	}, page, limit)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "lotes", out)
}

// ListItems GET /api/inventory/items con filtros storeId, productId, batchId y status.
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	page, limit := pageParams(c)
	out, err := h.movements.ListItems(c.UserContext(), repository.ItemFilter{
		StoreID:   c.Query("storeId"),
		ProductID: c.Query("productId"),
		BatchID:   c.Query("batchId"),
		Status:    strings.ToUpper(c.Query("status")),
	}, page, limit)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "ítems", out)
}

func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	out, err := h.movements.GetItem(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "ítem", out)
}

// PostMovement godoc
// @Summary      Registrar movimiento sobre un ítem
// @Description  OUTBOUND y RETURN con cantidad positiva; ADJUSTMENT con signo. Nunca deja stock negativo.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ítem"
// @Param        body  body  dto.PostMovementRequest  true  "movement_type, quantity, reason"
// @Success      201   {object}  dto.MovementPostedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/movements [post]
func (h *InventoryHandler) PostMovement(c *fiber.Ctx) error {
	var in dto.PostMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	in.MovementType = strings.ToUpper(strings.TrimSpace(in.MovementType))
	out, err := h.movements.PostMovement(c.UserContext(), actor(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "movimiento registrado", out)
}

// Transfer godoc
// @Summary      Trasladar stock entre ítems del mismo producto
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "from_item_id, to_item_id, quantity"
// @Success      201   {object}  dto.TransferResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfers [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	if in.FromItemID == "" || in.ToItemID == "" {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "from_item_id y to_item_id son requeridos")
	}
	out, err := h.movements.Transfer(c.UserContext(), actor(c), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "traslado registrado", out)
}

// ledgerQuery lee y valida los filtros del historial. Fechas mal formadas o rango invertido → false.
func ledgerQuery(c *fiber.Ctx) (inventory.LedgerQuery, string, bool) {
	from, ok := parseDateParam(c.Query("dateFrom"), false)
	if !ok {
		return inventory.LedgerQuery{}, "dateFrom inválido (use YYYY-MM-DD o RFC3339)", false
	}
	to, ok := parseDateParam(c.Query("dateTo"), true)
	if !ok {
		return inventory.LedgerQuery{}, "dateTo inválido (use YYYY-MM-DD o RFC3339)", false
	}
	if from != nil && to != nil && from.After(*to) {
		return inventory.LedgerQuery{}, "dateFrom no puede ser posterior a dateTo", false
	}
	page, limit := pageParams(c)
	return inventory.LedgerQuery{
		InventoryItemID: strings.TrimSpace(c.Query("inventoryItemId")),
		DateFrom:        from,
		DateTo:          to,
		Page:            page,
		Limit:           limit,
	}, "", true
}

// MovementHistory godoc
// @Summary      Historial de movimientos con saldo acumulado
// @Tags         inventory
// @Produce      json
// @Param        inventoryItemId  query  string  false  "Ítem"
// @Param        dateFrom         query  string  false  "YYYY-MM-DD o RFC3339"
// @Param        dateTo           query  string  false  "YYYY-MM-DD (día completo) o RFC3339"
// @Param        page             query  int     false  "Página"  default(1)
// @Param        limit            query  int     false  "Límite"  default(20)
// @Success      200              {object}  dto.MovementHistoryResponse
// @Failure      400              {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) MovementHistory(c *fiber.Ctx) error {
	q, msg, ok := ledgerQuery(c)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "INVALID_QUERY", msg)
	}
	out, err := h.ledger.MovementHistory(c.UserContext(), q)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "historial de movimientos", out)
}

// MovementReport mismo historial que MovementHistory, como PDF A4.
// GET /api/inventory/movements/report
func (h *InventoryHandler) MovementReport(c *fiber.Ctx) error {
	q, msg, ok := ledgerQuery(c)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "INVALID_QUERY", msg)
	}
	history, err := h.ledger.MovementHistory(c.UserContext(), q)
	if err != nil {
		return err
	}
	doc, err := h.pdf.RenderLedger(c.UserContext(), ports.LedgerReport{
		InventoryItemID: q.InventoryItemID,
		DateFrom:        q.DateFrom,
		DateTo:          q.DateTo,
		History:         history,
		GeneratedAt:     time.Now(),
	})
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="movimientos.pdf"`)
	return c.Send(doc)
}

// RunExpirySweep POST /api/inventory/expiry-sweep (admin). Disparo manual del barrido.
func (h *InventoryHandler) RunExpirySweep(c *fiber.Ctx) error {
	out, err := h.sweep.Run(c.UserContext(), actor(c), time.Now())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "barrido de vencimientos completado", out)
}
