package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Farmadist-api/internal/application/dto"
	"github.com/jhoicas/Farmadist-api/internal/domain"
	"github.com/jhoicas/Farmadist-api/internal/domain/entity"
	"github.com/jhoicas/Farmadist-api/internal/domain/inventory"
	"github.com/jhoicas/Farmadist-api/internal/domain/repository"
)

// LedgerQuery filtros del historial. Fechas nil = sin límite.
type LedgerQuery struct {
	InventoryItemID string
	DateFrom        *time.Time
	DateTo          *time.Time
	Page            int
	Limit           int
}

// Ledger historial completo (sin paginar) con su resumen.
type Ledger struct {
	Entries []inventory.LedgerEntry // más reciente primero
	Summary inventory.Summary
}

// LedgerUseCase historial de movimientos con saldo acumulado.
//
// La base de datos no pagina: el saldo de cada fila depende de todas las anteriores,
// así que se traen todos los movimientos del filtro, se calcula el saldo y se corta la página en memoria.
type LedgerUseCase struct {
	movRepo repository.InventoryMovementRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(movRepo repository.InventoryMovementRepository) *LedgerUseCase {
	return &LedgerUseCase{movRepo: movRepo}
}

// Build calcula el historial completo del filtro.
//
// Con DateFrom, los movimientos anteriores se traen igual y se reproducen como saldo de apertura;
// solo los del rango se muestran y entran en el resumen.
func (uc *LedgerUseCase) Build(ctx context.Context, q LedgerQuery) (*Ledger, error) {
	if q.DateFrom != nil && q.DateTo != nil && q.DateFrom.After(*q.DateTo) {
		return nil, domain.ErrInvalidInput
	}
	f := repository.MovementFilter{DateTo: q.DateTo}
	if q.InventoryItemID != "" {
		id := q.InventoryItemID
		f.InventoryItemID = &id
	}
	all, err := uc.movRepo.ListNewestFirst(ctx, f)
	if err != nil {
		return nil, err
	}

	inRange, before := splitAt(all, q.DateFrom)
	opening := inventory.OpeningBalance(before)
	entries := inventory.BuildLedger(inRange, opening)
	return &Ledger{Entries: entries, Summary: inventory.Summarize(entries, opening)}, nil
}

// MovementHistory devuelve la página pedida del historial más el resumen del conjunto completo.
func (uc *LedgerUseCase) MovementHistory(ctx context.Context, q LedgerQuery) (*dto.MovementHistoryResponse, error) {
	ledger, err := uc.Build(ctx, q)
	if err != nil {
		return nil, err
	}
	page, meta := dto.Paginate(ledger.Entries, q.Page, q.Limit)
	rows := make([]dto.LedgerEntryResponse, 0, len(page))
	for _, e := range page {
		rows = append(rows, ToLedgerEntryResponse(e))
	}
	return &dto.MovementHistoryResponse{
		Movements: rows,
		Summary:   ToLedgerSummary(ledger.Summary),
		Page:      meta,
	}, nil
}

// splitAt separa una lista más-reciente-primero en [created_at >= from] y [created_at < from].
func splitAt(newestFirst []*entity.InventoryMovement, from *time.Time) (inRange, before []*entity.InventoryMovement) {
	if from == nil {
		return newestFirst, nil
	}
	for i, m := range newestFirst {
		if m.CreatedAt.Before(*from) {
			return newestFirst[:i], newestFirst[i:]
		}
	}
	return newestFirst, nil
}

// ToLedgerEntryResponse mapea una fila del historial a DTO.
func ToLedgerEntryResponse(e inventory.LedgerEntry) dto.LedgerEntryResponse {
	return dto.LedgerEntryResponse{
		MovementResponse: ToMovementResponse(e.Movement),
		Direction:        string(e.Direction),
		BalanceChange:    e.BalanceChange,
		RunningBalance:   e.RunningBalance,
	}
}

// ToLedgerSummary mapea el resumen a DTO.
func ToLedgerSummary(s inventory.Summary) dto.LedgerSummary {
	return dto.LedgerSummary{
		TotalMovements: s.TotalMovements,
		OpeningBalance: s.OpeningBalance,
		FinalBalance:   s.FinalBalance,
		TotalInbound:   s.TotalInbound,
		TotalOutbound:  s.TotalOutbound,
		NetAdjustment:  s.NetAdjustment,
		OldestAt:       s.OldestAt,
		NewestAt:       s.NewestAt,
	}
}
