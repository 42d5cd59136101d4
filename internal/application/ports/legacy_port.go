package ports

import (
	"context"

	"github.com/jhoicas/Farmadist-api/internal/domain/entity"
)

// LegacyPSRSource puerto de lectura del HRMS legado.
type LegacyPSRSource interface {
	FetchPSRs(ctx context.Context) ([]entity.LegacyPSR, error)
}
