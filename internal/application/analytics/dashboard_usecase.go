// Package analytics contiene los casos de uso de reportes de solo lectura:
// el resumen del dashboard de inventario.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Farmadist-api/internal/application/dto"
	"github.com/jhoicas/Farmadist-api/internal/domain/entity"
	"github.com/jhoicas/Farmadist-api/internal/domain/repository"
)

const expiringWindow = 30 * 24 * time.Hour // ventana de "por vencer"

// DashboardUseCase genera el resumen de inventario.
//
// Fuente de datos: DashboardRepository (consultas read-only).
type DashboardUseCase struct {
	repo repository.DashboardRepository
	now  func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Seis conteos en paralelo:
//  1. productos
//  2. lotes ACTIVE
//  3. lotes ACTIVE que vencen en los próximos 30 días
//  4. lotes EXPIRED
//  5. unidades en existencia (ítems ACTIVE)
//  6. PSR sincronizados
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()
	expiringBefore := now.Add(expiringWindow)

	// ── Goroutines para paralelizar las consultas DB ──────────────────────────
	type countResult struct {
		n   int
		err error
	}
	type unitsResult struct {
		n   int64
		err error
	}

	productsCh := make(chan countResult, 1)
	activeCh := make(chan countResult, 1)
	expiringCh := make(chan countResult, 1)
	expiredCh := make(chan countResult, 1)
	unitsCh := make(chan unitsResult, 1)
	psrCh := make(chan countResult, 1)

	go func() {
		n, err := uc.repo.CountProducts(ctx)
		productsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.repo.CountBatches(ctx, entity.StatusActive, nil)
		activeCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.repo.CountBatches(ctx, entity.StatusActive, &expiringBefore)
		expiringCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.repo.CountBatches(ctx, entity.StatusExpired, nil)
		expiredCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.repo.UnitsOnHand(ctx)
		unitsCh <- unitsResult{n, err}
	}()
	go func() {
		n, err := uc.repo.CountPSRs(ctx)
		psrCh <- countResult{n, err}
	}()

	products := <-productsCh
	active := <-activeCh
	expiring := <-expiringCh
	expired := <-expiredCh
	units := <-unitsCh
	psrs := <-psrCh

	if products.err != nil {
		return nil, fmt.Errorf("dashboard: productos: %w", products.err)
	}
	if active.err != nil {
		return nil, fmt.Errorf("dashboard: lotes activos: %w", active.err)
	}
	if expiring.err != nil {
		return nil, fmt.Errorf("dashboard: lotes por vencer: %w", expiring.err)
	}
	if expired.err != nil {
		return nil, fmt.Errorf("dashboard: lotes vencidos: %w", expired.err)
	}
	if units.err != nil {
		return nil, fmt.Errorf("dashboard: unidades: %w", units.err)
	}
	if psrs.err != nil {
		return nil, fmt.Errorf("dashboard: psr: %w", psrs.err)
	}

	return &dto.DashboardSummaryDTO{
		Products:       products.n,
		ActiveBatches:  active.n,
		ExpiringSoon:   expiring.n,
		ExpiredBatches: expired.n,
		UnitsOnHand:    units.n,
		PSRs:           psrs.n,
		GeneratedAt:    now,
	}, nil
}
