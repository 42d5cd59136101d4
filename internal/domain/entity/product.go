package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un medicamento o artículo del catálogo.
type Product struct {
	ID          string
	SKU         string
	Name        string
	GenericName string
	Unit        string // unidad de despacho: caja, frasco, tableta...
	Price       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
