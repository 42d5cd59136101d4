package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Farmadist-api/internal/domain/entity"
	"github.com/jhoicas/Farmadist-api/internal/domain/repository"
)

var _ repository.PSRRepository = (*PSRRepo)(nil)

// PSRRepo copia local de los PSR del HRMS.
type PSRRepo struct {
	q Querier
}

// NewPSRRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPSRRepository(q Querier) *PSRRepo {
	return &PSRRepo{q: q}
}

// HashesByCode huella guardada por psr_code.
func (r *PSRRepo) HashesByCode(ctx context.Context) (map[string]string, error) {
	rows, err := r.q.Query(ctx, `SELECT psr_code, source_hash FROM psrs`)
	if err != nil {
		return nil, fmt.Errorf("load psr hashes: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var code, hash string
		if err := rows.Scan(&code, &hash); err != nil {
			return nil, fmt.Errorf("scan psr hash: %w", err)
		}
		out[code] = hash
	}
	return out, rows.Err()
}

// UpsertIfChanged inserta o actualiza solo si la huella difiere. Sin fila devuelta → sin cambios.
// xmax = 0 distingue la inserción de la actualización.
func (r *PSRRepo) UpsertIfChanged(ctx context.Context, p *entity.PSR) (repository.UpsertOutcome, error) {
	query := `
		INSERT INTO psrs (id, psr_code, full_name, area_code, source_hash, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (psr_code) DO UPDATE SET
			full_name   = EXCLUDED.full_name,
			area_code   = EXCLUDED.area_code,
			source_hash = EXCLUDED.source_hash,
			updated_by  = EXCLUDED.updated_by,
			updated_at  = EXCLUDED.updated_at
		WHERE psrs.source_hash IS DISTINCT FROM EXCLUDED.source_hash
		RETURNING (xmax = 0)`
	var inserted bool
	err := r.q.QueryRow(ctx, query,
		p.ID, p.PSRCode, p.FullName, p.AreaCode, p.SourceHash,
		p.CreatedByID, p.UpdatedByID, p.CreatedAt, p.UpdatedAt,
	).Scan(&inserted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.UpsertUnchanged, nil
		}
		return repository.UpsertUnchanged, fmt.Errorf("upsert psr %s: %w", p.PSRCode, err)
	}
	if inserted {
		return repository.UpsertInserted, nil
	}
	return repository.UpsertUpdated, nil
}

// List PSR ordenados por nombre con búsqueda y área opcionales (AND).
func (r *PSRRepo) List(ctx context.Context, f repository.PSRFilter) ([]*entity.PSR, error) {
	var conds []string
	var args []any
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, likePattern(s))
		n := len(args)
		conds = append(conds, fmt.Sprintf("(full_name ILIKE $%d OR area_code ILIKE $%d OR psr_code ILIKE $%d)", n, n, n))
	}
	if a := strings.TrimSpace(f.AreaCode); a != "" {
		args = append(args, a)
		conds = append(conds, fmt.Sprintf("area_code = $%d", len(args)))
	}
	query := `SELECT id, psr_code, full_name, area_code, source_hash, created_by, updated_by, created_at, updated_at FROM psrs`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY full_name, psr_code"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list psrs: %w", err)
	}
	defer rows.Close()
	var list []*entity.PSR
	for rows.Next() {
		var p entity.PSR
		if err := rows.Scan(&p.ID, &p.PSRCode, &p.FullName, &p.AreaCode, &p.SourceHash,
			&p.CreatedByID, &p.UpdatedByID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan psr: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
