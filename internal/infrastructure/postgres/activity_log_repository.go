package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Farmadist-api/internal/domain/entity"
	"github.com/jhoicas/Farmadist-api/internal/domain/repository"
)

var _ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)

// ActivityLogRepo log de actividad (append-only).
type ActivityLogRepo struct {
	q Querier
}

func NewActivityLogRepository(q Querier) *ActivityLogRepo {
	return &ActivityLogRepo{q: q}
}

func (r *ActivityLogRepo) Create(ctx context.Context, a *entity.ActivityLog) error {
	var details any
	if len(a.Details) > 0 {
		details = string(a.Details)
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO activity_logs (id, user_id, action, resource, resource_id, details, ip, created_at)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7, $8)`,
		a.ID, a.UserID, a.Action, a.Resource, a.ResourceID, details, a.IP, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	return nil
}

// List más reciente primero.
func (r *ActivityLogRepo) List(ctx context.Context, limit, offset int) ([]*entity.ActivityLog, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM activity_logs`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count activity logs: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, user_id, action, resource, resource_id, COALESCE(details::text, ''), ip, created_at
		FROM activity_logs ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.ActivityLog
	for rows.Next() {
		var a entity.ActivityLog
		var details string
		if err := rows.Scan(&a.ID, &a.UserID, &a.Action, &a.Resource, &a.ResourceID, &details, &a.IP, &a.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan activity log: %w", err)
		}
		if details != "" {
			a.Details = []byte(details)
		}
		list = append(list, &a)
	}
	return list, total, rows.Err()
}
