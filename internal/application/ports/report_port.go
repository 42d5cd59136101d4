package ports

import (
	"context"
	"time"

	"github.com/jhoicas/Farmadist-api/internal/application/dto"
)

// LedgerReport datos del reporte PDF del historial de movimientos.
type LedgerReport struct {
	InventoryItemID string
	DateFrom        *time.Time
	DateTo          *time.Time
	History         *dto.MovementHistoryResponse
	GeneratedAt     time.Time
}

// LedgerPDFRenderer genera el PDF del historial.
type LedgerPDFRenderer interface {
	RenderLedger(ctx context.Context, report LedgerReport) ([]byte, error)
}
