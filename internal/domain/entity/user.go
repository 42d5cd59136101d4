package entity

import "time"

// Estados de User.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un usuario del sistema. Pertenece a un rol y opcionalmente a una tienda.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	RoleID       string
	RoleName     string // desnormalizado en lecturas (JOIN roles)
	StoreID      *string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive indica si la cuenta puede iniciar sesión.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
