package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Farmadist-api/internal/application/dto"
	"github.com/jhoicas/Farmadist-api/internal/application/ports"
	"github.com/jhoicas/Farmadist-api/internal/domain/entity"
	"github.com/jhoicas/Farmadist-api/internal/domain/repository"
)

// ActivityUseCase registra y consulta el log de actividad. Implementa ports.ActivityRecorder.
type ActivityUseCase struct {
	repo repository.ActivityLogRepository
	log  zerolog.Logger
}

var _ ports.ActivityRecorder = (*ActivityUseCase)(nil)

// NewActivityUseCase construye el caso de uso.
func NewActivityUseCase(repo repository.ActivityLogRepository, log zerolog.Logger) *ActivityUseCase {
	return &ActivityUseCase{repo: repo, log: log}
}

// Record guarda una entrada. Un fallo al escribir el log no debe tumbar la operación auditada.
func (uc *ActivityUseCase) Record(ctx context.Context, actor ports.Actor, action, resource, resourceID string, details any) {
	entry := &entity.ActivityLog{
		ID:         uuid.New().String(),
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		IP:         actor.IP,
		CreatedAt:  time.Now(),
	}
	if actor.UserID != "" {
		id := actor.UserID
		entry.UserID = &id
	}
	if details != nil {
		raw, err := json.Marshal(details)
		if err != nil {
			uc.log.Warn().Err(err).Str("action", action).Msg("activity: detalles no serializables")
		} else {
			entry.Details = raw
		}
	}
	if err := uc.repo.Create(ctx, entry); err != nil {
		uc.log.Error().Err(err).Str("action", action).Str("resource", resource).Msg("activity: no se pudo registrar")
	}
}

// List lista el log más reciente primero.
func (uc *ActivityUseCase) List(ctx context.Context, page, limit int) (*dto.ActivityLogListResponse, error) {
	page, limit = dto.Normalize(page, limit)
	list, total, err := uc.repo.List(ctx, limit, dto.Offset(page, limit))
	if err != nil {
		return nil, err
	}
	items := make([]dto.ActivityLogResponse, 0, len(list))
	for _, a := range list {
		items = append(items, dto.ActivityLogResponse{
			ID:         a.ID,
			UserID:     a.UserID,
			Action:     a.Action,
			Resource:   a.Resource,
			ResourceID: a.ResourceID,
			Details:    a.Details,
			IP:         a.IP,
			CreatedAt:  a.CreatedAt,
		})
	}
	return &dto.ActivityLogListResponse{Items: items, Page: dto.NewPageMeta(page, limit, total)}, nil
}
