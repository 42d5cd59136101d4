package repository

import (
	"context"

	"github.com/jhoicas/Farmadist-api/internal/domain/entity"
)

// CollectionRepository CRUD de colecciones.
type CollectionRepository interface {
	Create(ctx context.Context, c *entity.Collection) error
	GetByID(ctx context.Context, id string) (*entity.Collection, error)
	Update(ctx context.Context, c *entity.Collection) error
	List(ctx context.Context, limit, offset int) ([]*entity.Collection, int, error)
	Delete(ctx context.Context, id string) error
}
