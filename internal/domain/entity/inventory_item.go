package entity

import "time"

// InventoryItem unidad de stock de un producto dentro de un lote.
// CurrentQuantity debe coincidir con el replay de todos sus movimientos desde cero.
type InventoryItem struct {
	ID              string
	BatchID         string
	ProductID       string
	StoreID         string
	CurrentQuantity int64
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
