package dto

import "time"

// DashboardSummaryDTO respuesta de GET /api/dashboard.
type DashboardSummaryDTO struct {
	Products       int       `json:"products"`
	ActiveBatches  int       `json:"active_batches"`
	ExpiringSoon   int       `json:"expiring_soon"` // ACTIVE que vencen en los próximos 30 días
	ExpiredBatches int       `json:"expired_batches"`
	UnitsOnHand    int64     `json:"units_on_hand"`
	PSRs           int       `json:"psrs"`
	GeneratedAt    time.Time `json:"generated_at"`
}
