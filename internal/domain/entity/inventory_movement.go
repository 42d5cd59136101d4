package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementInbound    = "INBOUND"    // recepción de lote
	MovementOutbound   = "OUTBOUND"   // venta / despacho
	MovementReturn     = "RETURN"     // devolución de cliente
	MovementTransfer   = "TRANSFER"   // entrada por traslado desde otra tienda
	MovementAdjustment = "ADJUSTMENT" // ajuste con signo
	MovementExpired    = "EXPIRED"    // baja por vencimiento
)

// InventoryMovement registro inmutable del libro de inventario (append-only).
type InventoryMovement struct {
	ID              string
	InventoryItemID string
	Quantity        int64
	MovementType    string
	Reason          string
	ReferenceID     *string
	CreatedBy       string
	CreatedAt       time.Time
}
