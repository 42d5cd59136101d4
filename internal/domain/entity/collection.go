package entity

import "time"

// Collection agrupación libre de registros (CRUD de soporte).
type Collection struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
