package repository

import (
	"context"
	"time"
)

// DashboardRepository consultas de solo lectura para el resumen de inventario.
type DashboardRepository interface {
	CountProducts(ctx context.Context) (int, error)
	// CountBatches cuenta lotes por estado; con expiringBefore != nil solo ACTIVE que vencen antes de esa fecha.
	CountBatches(ctx context.Context, status string, expiringBefore *time.Time) (int, error)
	UnitsOnHand(ctx context.Context) (int64, error)
	CountPSRs(ctx context.Context) (int, error)
}
