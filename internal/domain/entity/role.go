package entity

import "time"

// Roles sembrados por la migración inicial.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// Role catálogo de roles (admin, manager, staff y los que se creen).
type Role struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}
