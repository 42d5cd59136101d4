package dto

import "time"

// ReceiveBatchRequest body para POST /api/inventory/batches: crea lote, ítem y movimiento INBOUND.
type ReceiveBatchRequest struct {
	BatchNumber string    `json:"batch_number" validate:"required"`
	ProductID   string    `json:"product_id" validate:"required"`
	StoreID     string    `json:"store_id" validate:"required"`
	ExpiryDate  time.Time `json:"expiry_date" validate:"required"`
	Quantity    int64     `json:"quantity" validate:"required,gt=0"`
	Reason      string    `json:"reason"`
}

// PostMovementRequest body para POST /api/inventory/items/:id/movements.
type PostMovementRequest struct {
	MovementType string `json:"movement_type" validate:"required,oneof=OUTBOUND RETURN ADJUSTMENT"`
	Quantity     int64  `json:"quantity" validate:"required"`
	Reason       string `json:"reason"`
}

// TransferRequest body para POST /api/inventory/transfers.
type TransferRequest struct {
	FromItemID string `json:"from_item_id" validate:"required"`
	ToItemID   string `json:"to_item_id" validate:"required"`
	Quantity   int64  `json:"quantity" validate:"required,gt=0"`
	Reason     string `json:"reason"`
}

// BatchResponse salida de un lote.
type BatchResponse struct {
	ID          string    `json:"id"`
	BatchNumber string    `json:"batch_number"`
	ProductID   string    `json:"product_id"`
	StoreID     string    `json:"store_id"`
	ExpiryDate  time.Time `json:"expiry_date"`
	Status      string    `json:"status"`
	ReceivedAt  time.Time `json:"received_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// ItemResponse salida de un ítem de inventario.
type ItemResponse struct {
	ID              string    `json:"id"`
	BatchID         string    `json:"batch_id"`
	ProductID       string    `json:"product_id"`
	StoreID         string    `json:"store_id"`
	CurrentQuantity int64     `json:"current_quantity"`
	Status          string    `json:"status"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ReceiptResponse resultado de recibir un lote.
type ReceiptResponse struct {
	Batch    BatchResponse    `json:"batch"`
	Item     ItemResponse     `json:"item"`
	Movement MovementResponse `json:"movement"`
}

// TransferResponse los dos movimientos de una transferencia, con su referencia compartida.
type TransferResponse struct {
	ReferenceID string           `json:"reference_id"`
	Outbound    MovementResponse `json:"outbound"`
	Inbound     MovementResponse `json:"inbound"`
}

// BatchListResponse lista paginada de lotes.
type BatchListResponse struct {
	Items []BatchResponse `json:"items"`
	Page  PageMeta        `json:"page"`
}

// ItemListResponse lista paginada de ítems.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageMeta       `json:"page"`
}

// MovementResponse movimiento tal como se guardó.
type MovementResponse struct {
	ID              string    `json:"id"`
	InventoryItemID string    `json:"inventory_item_id"`
	MovementType    string    `json:"movement_type"`
	Quantity        int64     `json:"quantity"`
	Reason          string    `json:"reason"`
	ReferenceID     *string   `json:"reference_id"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
}

// LedgerEntryResponse fila del historial con su saldo acumulado.
type LedgerEntryResponse struct {
	MovementResponse
	Direction      string `json:"direction"`
	BalanceChange  int64  `json:"balance_change"`
	RunningBalance int64  `json:"running_balance"`
}

// LedgerSummary totales sobre todo el conjunto filtrado, no solo la página.
type LedgerSummary struct {
	TotalMovements int        `json:"total_movements"`
	OpeningBalance int64      `json:"opening_balance"`
	FinalBalance   int64      `json:"final_balance"`
	TotalInbound   int64      `json:"total_inbound"`
	TotalOutbound  int64      `json:"total_outbound"`
	NetAdjustment  int64      `json:"net_adjustment"`
	OldestAt       *time.Time `json:"oldest_at"`
	NewestAt       *time.Time `json:"newest_at"`
}

// MovementHistoryResponse respuesta de GET /api/inventory/movements.
type MovementHistoryResponse struct {
	Movements []LedgerEntryResponse `json:"movements"`
	Summary   LedgerSummary         `json:"summary"`
	Page      PageMeta              `json:"page"`
}

// ExpirySweepResult resumen de una pasada de vencimientos.
type ExpirySweepResult struct {
	BatchesExpired  int       `json:"batches_expired"`
	ItemsExpired    int       `json:"items_expired"`
	UnitsWrittenOff int64     `json:"units_written_off"`
	Failures        int       `json:"failures"`
	RanAt           time.Time `json:"ran_at"`
}

// MovementPostedResponse ítem con su nuevo stock más el movimiento registrado.
type MovementPostedResponse struct {
	Item     ItemResponse     `json:"item"`
	Movement MovementResponse `json:"movement"`
}
