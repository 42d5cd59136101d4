package repository

import (
	"context"

	"github.com/jhoicas/Farmadist-api/internal/domain/entity"
)

// ActivityLogRepository persistencia del log de actividad.
type ActivityLogRepository interface {
	Create(ctx context.Context, log *entity.ActivityLog) error
	List(ctx context.Context, limit, offset int) ([]*entity.ActivityLog, int, error)
}
