package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Farmadist-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo agregados de solo lectura para el tablero.
type DashboardRepo struct {
	q Querier
}

func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

func (r *DashboardRepo) CountProducts(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// CountBatches lotes en el estado dado; con expiringBefore solo los que vencen antes de esa fecha.
func (r *DashboardRepo) CountBatches(ctx context.Context, status string, expiringBefore *time.Time) (int, error) {
	query := `SELECT count(*) FROM inventory_batches WHERE status = $1`
	args := []any{status}
	if expiringBefore != nil {
		query += ` AND expiry_date < $2`
		args = append(args, *expiringBefore)
	}
	var n int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count batches: %w", err)
	}
	return n, nil
}

// UnitsOnHand suma de current_quantity de los ítems ACTIVE.
func (r *DashboardRepo) UnitsOnHand(ctx context.Context) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(current_quantity), 0)::bigint FROM inventory_items WHERE status = 'ACTIVE'`,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("sum units on hand: %w", err)
	}
	return n, nil
}

func (r *DashboardRepo) CountPSRs(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM psrs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count psrs: %w", err)
	}
	return n, nil
}
