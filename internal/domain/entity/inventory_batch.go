package entity

import "time"

// Estados de lote e ítem.
const (
	StatusActive  = "ACTIVE"
	StatusExpired = "EXPIRED"
)

// InventoryBatch lote recibido con fecha de vencimiento. Pasa de ACTIVE a EXPIRED cuando
// el barrido de vencimientos encuentra expiry_date < ahora.
type InventoryBatch struct {
	ID          string
	BatchNumber string
	ProductID   string
	StoreID     string
	ExpiryDate  time.Time
	Status      string
	ReceivedAt  time.Time
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsExpiredAt indica si el lote ya venció en el instante now.
func (b *InventoryBatch) IsExpiredAt(now time.Time) bool {
	return b.ExpiryDate.Before(now)
}
