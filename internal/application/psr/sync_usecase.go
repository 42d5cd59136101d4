// Package psr sincroniza la caché local de PSR con el HRMS legado.
package psr

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Farmadist-api/internal/application/dto"
	"github.com/jhoicas/Farmadist-api/internal/application/ports"
	"github.com/jhoicas/Farmadist-api/internal/domain"
	"github.com/jhoicas/Farmadist-api/internal/domain/entity"
	domainpsr "github.com/jhoicas/Farmadist-api/internal/domain/psr"
	"github.com/jhoicas/Farmadist-api/internal/domain/repository"
)

// SyncUseCase trae los PSR del HRMS y escribe solo las filas nuevas o cambiadas.
//
// Dos barreras contra escrituras duplicadas: las ejecuciones se serializan en el proceso
// (una llamada concurrente recibe ErrSyncInProgress) y el upsert compara la huella en la
// propia sentencia SQL, así que otra réplica sincronizando a la vez no pisa filas iguales.
type SyncUseCase struct {
	source   ports.LegacyPSRSource // nil si el HRMS no está configurado
	repo     repository.PSRRepository
	activity ports.ActivityRecorder
	log      zerolog.Logger
	running  sync.Mutex
	now      func() time.Time
}

// NewSyncUseCase construye el caso de uso. source puede ser nil: Sync devuelve ErrLegacyUnavailable.
func NewSyncUseCase(source ports.LegacyPSRSource, repo repository.PSRRepository, activity ports.ActivityRecorder, log zerolog.Logger) *SyncUseCase {
	return &SyncUseCase{source: source, repo: repo, activity: activity, log: log, now: time.Now}
}

// Sync ejecuta una sincronización completa. Cada upsert es independiente: si uno falla la
// sincronización se corta con ese error y las filas ya escritas quedan confirmadas.
// Failed solo cuenta filas del HRMS sin código.
func (uc *SyncUseCase) Sync(ctx context.Context, actor ports.Actor) (*dto.PSRSyncResult, error) {
	if uc.source == nil {
		return nil, domain.ErrLegacyUnavailable
	}
	if !uc.running.TryLock() {
		return nil, domain.ErrSyncInProgress
	}
	defer uc.running.Unlock()

	started := uc.now()
	rows, err := uc.source.FetchPSRs(ctx)
	if err != nil {
		uc.log.Error().Err(err).Msg("psr sync: lectura del HRMS falló")
		return nil, fmt.Errorf("psr sync: fetch: %w", err)
	}
	local, err := uc.repo.HashesByCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("psr sync: huellas locales: %w", err)
	}

	var actorID *string
	if actor.UserID != "" {
		id := actor.UserID
		actorID = &id
	}

	result := &dto.PSRSyncResult{Fetched: len(rows)}
	for _, raw := range rows {
		row := domainpsr.Normalize(raw)
		if row.Code == "" {
			result.Failed++
			uc.log.Warn().Str("full_name", row.FullName).Msg("psr sync: fila sin código, se omite")
			continue
		}
		hash := domainpsr.Fingerprint(row)
		if local[row.Code] == hash {
			result.Unchanged++
			continue
		}
		now := uc.now()
		outcome, err := uc.repo.UpsertIfChanged(ctx, &entity.PSR{
			ID:          uuid.New().String(),
			PSRCode:     row.Code,
			FullName:    row.FullName,
			AreaCode:    row.AreaCode,
			SourceHash:  hash,
			CreatedByID: actorID,
			UpdatedByID: actorID,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			uc.log.Error().Err(err).Str("psr_code", row.Code).
				Int("inserted", result.Inserted).Int("updated", result.Updated).
				Msg("psr sync: upsert falló, se aborta")
			return nil, fmt.Errorf("psr sync: upsert %s: %w", row.Code, err)
		}
		switch outcome {
		case repository.UpsertInserted:
			result.Inserted++
		case repository.UpsertUpdated:
			result.Updated++
		default:
			result.Unchanged++
		}
		local[row.Code] = hash
	}

	psrs, err := uc.List(ctx, repository.PSRFilter{})
	if err != nil {
		return nil, err
	}
	result.PSRs = psrs

	uc.log.Info().
		Int("fetched", result.Fetched).
		Int("inserted", result.Inserted).
		Int("updated", result.Updated).
		Int("unchanged", result.Unchanged).
		Int("failed", result.Failed).
		Dur("elapsed", uc.now().Sub(started)).
		Msg("psr sync terminado")
	uc.activity.Record(ctx, actor, entity.ActivityPSRSync, "psr", "", map[string]int{
		"fetched":   result.Fetched,
		"inserted":  result.Inserted,
		"updated":   result.Updated,
		"unchanged": result.Unchanged,
		"failed":    result.Failed,
	})
	return result, nil
}

// List devuelve la caché local ordenada por nombre, con filtros search/areaCode combinados con AND.
func (uc *SyncUseCase) List(ctx context.Context, f repository.PSRFilter) ([]dto.PSRResponse, error) {
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PSRResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.PSRResponse{
			ID:        p.ID,
			PSRCode:   p.PSRCode,
			FullName:  p.FullName,
			AreaCode:  p.AreaCode,
			UpdatedAt: p.UpdatedAt,
		})
	}
	return out, nil
}
