package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Farmadist-api/internal/application/dto"
	"github.com/jhoicas/Farmadist-api/internal/domain"
	"github.com/jhoicas/Farmadist-api/internal/domain/entity"
	"github.com/jhoicas/Farmadist-api/internal/domain/repository"
)

// CollectionUseCase CRUD de colecciones.
type CollectionUseCase struct {
	repo repository.CollectionRepository
}

// NewCollectionUseCase construye el caso de uso.
func NewCollectionUseCase(repo repository.CollectionRepository) *CollectionUseCase {
	return &CollectionUseCase{repo: repo}
}

// Create crea una colección.
func (uc *CollectionUseCase) Create(ctx context.Context, in dto.CollectionRequest) (*dto.CollectionResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	c := &entity.Collection{ID: uuid.New().String(), Name: name, Description: in.Description, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCollectionResponse(c), nil
}

// GetByID obtiene una colección.
func (uc *CollectionUseCase) GetByID(ctx context.Context, id string) (*dto.CollectionResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCollectionResponse(c), nil
}

// Update reemplaza nombre y descripción.
func (uc *CollectionUseCase) Update(ctx context.Context, id string, in dto.CollectionRequest) (*dto.CollectionResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	c.Name, c.Description, c.UpdatedAt = name, in.Description, time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCollectionResponse(c), nil
}

// List lista colecciones paginadas.
func (uc *CollectionUseCase) List(ctx context.Context, page, limit int) (*dto.CollectionListResponse, error) {
	page, limit = dto.Normalize(page, limit)
	list, total, err := uc.repo.List(ctx, limit, dto.Offset(page, limit))
	if err != nil {
		return nil, err
	}
	items := make([]dto.CollectionResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCollectionResponse(c))
	}
	return &dto.CollectionListResponse{Items: items, Page: dto.NewPageMeta(page, limit, total)}, nil
}

// Delete elimina una colección.
func (uc *CollectionUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toCollectionResponse(c *entity.Collection) *dto.CollectionResponse {
	return &dto.CollectionResponse{ID: c.ID, Name: c.Name, Description: c.Description, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}
