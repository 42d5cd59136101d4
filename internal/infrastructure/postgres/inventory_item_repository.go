package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Farmadist-api/internal/domain"
	"github.com/jhoicas/Farmadist-api/internal/domain/entity"
	"github.com/jhoicas/Farmadist-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo ítems de inventario sobre PostgreSQL (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

const itemColumns = `id, batch_id, product_id, store_id, current_quantity, status, created_at, updated_at`

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	if err := row.Scan(&it.ID, &it.BatchID, &it.ProductID, &it.StoreID, &it.CurrentQuantity,
		&it.Status, &it.CreatedAt, &it.UpdatedAt); err != nil {
		return nil, err
	}
	return &it, nil
}

// Create persiste un ítem.
func (r *InventoryItemRepo) Create(ctx context.Context, it *entity.InventoryItem) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO inventory_items (`+itemColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		it.ID, it.BatchID, it.ProductID, it.StoreID, it.CurrentQuantity, it.Status, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem sin bloquear.
func (r *InventoryItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1`, id)
}

// GetForUpdate obtiene el ítem y bloquea la fila (SELECT FOR UPDATE). Llamar dentro de una tx.
func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1 FOR UPDATE`, id)
}

func (r *InventoryItemRepo) getOne(ctx context.Context, query, id string) (*entity.InventoryItem, error) {
	it, err := scanItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// ListActiveByBatchForUpdate ítems ACTIVE del lote, bloqueados en orden de id.
func (r *InventoryItemRepo) ListActiveByBatchForUpdate(ctx context.Context, batchID string) ([]*entity.InventoryItem, error) {
	return r.query(ctx,
		`SELECT `+itemColumns+` FROM inventory_items WHERE batch_id = $1 AND status = $2 ORDER BY id FOR UPDATE`,
		batchID, entity.StatusActive,
	)
}

// UpdateQuantity fija cantidad y estado del ítem.
func (r *InventoryItemRepo) UpdateQuantity(ctx context.Context, id string, quantity int64, status string, now time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE inventory_items SET current_quantity = $2, status = $3, updated_at = $4 WHERE id = $1`,
		id, quantity, status, now,
	)
	if err != nil {
		return fmt.Errorf("update item quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista ítems con filtros combinados con AND.
func (r *InventoryItemRepo) List(ctx context.Context, f repository.ItemFilter) ([]*entity.InventoryItem, int, error) {
	var conds []string
	var args []any
	add := func(col, val string) {
		if val == "" {
			return
		}
		args = append(args, val)
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	add("store_id", f.StoreID)
	add("product_id", f.ProductID)
	add("batch_id", f.BatchID)
	add("status", f.Status)
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM inventory_items`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}
	n := len(args)
	query := fmt.Sprintf(`SELECT %s FROM inventory_items%s ORDER BY updated_at DESC, id LIMIT $%d OFFSET $%d`,
		itemColumns, where, n+1, n+2)
	list, err := r.query(ctx, query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *InventoryItemRepo) query(ctx context.Context, query string, args ...any) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}
