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

var _ repository.InventoryBatchRepository = (*InventoryBatchRepo)(nil)

// InventoryBatchRepo lotes sobre PostgreSQL (usable con pool o tx).
type InventoryBatchRepo struct {
	q Querier
}

// NewInventoryBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryBatchRepository(q Querier) *InventoryBatchRepo {
	return &InventoryBatchRepo{q: q}
}

const batchColumns = `id, batch_number, product_id, store_id, expiry_date, status, received_at, created_by, created_at, updated_at`

func scanBatch(row pgx.Row) (*entity.InventoryBatch, error) {
	var b entity.InventoryBatch
	var createdBy *string
	if err := row.Scan(&b.ID, &b.BatchNumber, &b.ProductID, &b.StoreID, &b.ExpiryDate, &b.Status,
		&b.ReceivedAt, &createdBy, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	b.CreatedBy = deref(createdBy)
	return &b, nil
}

// Create persiste un lote. Mismo número de lote para producto y tienda → ErrDuplicate.
func (r *InventoryBatchRepo) Create(ctx context.Context, b *entity.InventoryBatch) error {
	query := `INSERT INTO inventory_batches (` + batchColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.BatchNumber, b.ProductID, b.StoreID, b.ExpiryDate, b.Status,
		b.ReceivedAt, nullable(b.CreatedBy), b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *InventoryBatchRepo) GetByID(ctx context.Context, id string) (*entity.InventoryBatch, error) {
	b, err := scanBatch(r.q.QueryRow(ctx, `SELECT `+batchColumns+` FROM inventory_batches WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return b, nil
}

// List lista lotes por fecha de vencimiento con filtros de estado y tienda.
func (r *InventoryBatchRepo) List(ctx context.Context, f repository.BatchFilter) ([]*entity.InventoryBatch, int, error) {
	var conds []string
	var args []any
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.StoreID != "" {
		args = append(args, f.StoreID)
		conds = append(conds, fmt.Sprintf("store_id = $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM inventory_batches`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count batches: %w", err)
	}
	n := len(args)
	query := fmt.Sprintf(`SELECT %s FROM inventory_batches%s ORDER BY expiry_date, batch_number LIMIT $%d OFFSET $%d`,
		batchColumns, where, n+1, n+2)
	list, err := r.query(ctx, query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListExpirable lotes ACTIVE cuyo vencimiento ya pasó.
func (r *InventoryBatchRepo) ListExpirable(ctx context.Context, now time.Time) ([]*entity.InventoryBatch, error) {
	return r.query(ctx,
		`SELECT `+batchColumns+` FROM inventory_batches WHERE status = $1 AND expiry_date < $2 ORDER BY expiry_date, id`,
		entity.StatusActive, now,
	)
}

// MarkExpired pasa el lote a EXPIRED solo si sigue ACTIVE.
func (r *InventoryBatchRepo) MarkExpired(ctx context.Context, id string, now time.Time) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE inventory_batches SET status = $2, updated_at = $3 WHERE id = $1 AND status = $4`,
		id, entity.StatusExpired, now, entity.StatusActive,
	)
	if err != nil {
		return false, fmt.Errorf("mark batch expired: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *InventoryBatchRepo) query(ctx context.Context, query string, args ...any) ([]*entity.InventoryBatch, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryBatch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}
