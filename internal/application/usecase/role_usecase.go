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

// RoleUseCase catálogo de roles.
type RoleUseCase struct {
	repo repository.RoleRepository
}

// NewRoleUseCase construye el caso de uso.
func NewRoleUseCase(repo repository.RoleRepository) *RoleUseCase {
	return &RoleUseCase{repo: repo}
}

// Create crea un rol; el nombre se guarda en minúsculas y es único.
func (uc *RoleUseCase) Create(ctx context.Context, in dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	name := strings.ToLower(strings.TrimSpace(in.Name))
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	role := &entity.Role{ID: uuid.New().String(), Name: name, Description: in.Description, CreatedAt: time.Now()}
	if err := uc.repo.Create(ctx, role); err != nil {
		return nil, err
	}
	r := toRoleResponse(role)
	return &r, nil
}

// List lista todos los roles.
func (uc *RoleUseCase) List(ctx context.Context) ([]dto.RoleResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoleResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toRoleResponse(r))
	}
	return out, nil
}

func toRoleResponse(r *entity.Role) dto.RoleResponse {
	return dto.RoleResponse{ID: r.ID, Name: r.Name, Description: r.Description, CreatedAt: r.CreatedAt}
}
