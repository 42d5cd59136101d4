package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Farmadist-api/internal/domain"
	"github.com/jhoicas/Farmadist-api/internal/domain/entity"
	"github.com/jhoicas/Farmadist-api/internal/domain/repository"
)

var _ repository.CollectionRepository = (*CollectionRepo)(nil)

// CollectionRepo colecciones sobre PostgreSQL.
type CollectionRepo struct {
	q Querier
}

func NewCollectionRepository(q Querier) *CollectionRepo {
	return &CollectionRepo{q: q}
}

func (r *CollectionRepo) Create(ctx context.Context, c *entity.Collection) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO collections (id, name, description, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Name, c.Description, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert collection: %w", err)
	}
	return nil
}

func (r *CollectionRepo) GetByID(ctx context.Context, id string) (*entity.Collection, error) {
	var c entity.Collection
	err := r.q.QueryRow(ctx,
		`SELECT id, name, description, created_at, updated_at FROM collections WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get collection: %w", err)
	}
	return &c, nil
}

func (r *CollectionRepo) Update(ctx context.Context, c *entity.Collection) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE collections SET name = $2, description = $3, updated_at = $4 WHERE id = $1`,
		c.ID, c.Name, c.Description, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update collection: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CollectionRepo) List(ctx context.Context, limit, offset int) ([]*entity.Collection, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM collections`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count collections: %w", err)
	}
	rows, err := r.q.Query(ctx,
		`SELECT id, name, description, created_at, updated_at FROM collections ORDER BY name LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()
	var list []*entity.Collection
	for rows.Next() {
		var c entity.Collection
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan collection: %w", err)
		}
		list = append(list, &c)
	}
	return list, total, rows.Err()
}

func (r *CollectionRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM collections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
