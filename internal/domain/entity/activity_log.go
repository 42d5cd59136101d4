package entity

import (
	"encoding/json"
	"time"
)

// Acciones registradas en el log de actividad.
const (
	ActivityLogin         = "LOGIN"
	ActivityLogout        = "LOGOUT"
	ActivityRegister      = "REGISTER"
	ActivityPSRSync       = "PSR_SYNC"
	ActivityExpirySweep   = "EXPIRY_SWEEP"
	ActivityStockReceipt  = "STOCK_RECEIPT"
	ActivityStockMove     = "STOCK_MOVEMENT"
	ActivityStockTransfer = "STOCK_TRANSFER"
)

// ActivityLog quién hizo qué sobre qué recurso.
type ActivityLog struct {
	ID         string
	UserID     *string
	Action     string
	Resource   string
	ResourceID string
	Details    json.RawMessage
	IP         string
	CreatedAt  time.Time
}
