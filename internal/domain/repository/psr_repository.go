package repository

import (
	"context"

	"github.com/jhoicas/Farmadist-api/internal/domain/entity"
)

// PSRFilter filtros del listado de PSR; se combinan con AND.
type PSRFilter struct {
	Search   string // ILIKE sobre full_name, area_code y psr_code
	AreaCode string // igualdad exacta
}

// UpsertOutcome resultado de una escritura condicional de PSR.
type UpsertOutcome int

const (
	UpsertUnchanged UpsertOutcome = iota // la huella coincidía, no se escribió
	UpsertInserted
	UpsertUpdated
)

// PSRRepository persistencia de la caché local de PSR.
type PSRRepository interface {
	// HashesByCode devuelve psr_code -> source_hash de toda la tabla.
	HashesByCode(ctx context.Context) (map[string]string, error)
	// UpsertIfChanged inserta si no existe o actualiza solo si source_hash difiere,
	// en una única sentencia (compare-and-swap sobre la huella).
	UpsertIfChanged(ctx context.Context, psr *entity.PSR) (UpsertOutcome, error)
	List(ctx context.Context, f PSRFilter) ([]*entity.PSR, error)
}
