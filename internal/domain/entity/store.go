package entity

import "time"

// Store representa una tienda o farmacia de la red de distribución donde se almacena inventario.
type Store struct {
	ID        string
	Code      string
	Name      string
	Address   string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
