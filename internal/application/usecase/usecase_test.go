package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmadist-api/internal/application/dto"
	"github.com/jhoicas/Farmadist-api/internal/application/ports"
	"github.com/jhoicas/Farmadist-api/internal/application/usecase"
	"github.com/jhoicas/Farmadist-api/internal/domain"
	"github.com/jhoicas/Farmadist-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Mocks
// ──────────────────────────────────────────────────────────────────────────────

type productRepoMock struct{ mock.Mock }

func (m *productRepoMock) Create(ctx context.Context, p *entity.Product) error {
	return m.Called(ctx, p).Error(0)
}
func (m *productRepoMock) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*entity.Product)
	return p, args.Error(1)
}
func (m *productRepoMock) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	args := m.Called(ctx, sku)
	p, _ := args.Get(0).(*entity.Product)
	return p, args.Error(1)
}
func (m *productRepoMock) Update(ctx context.Context, p *entity.Product) error {
	return m.Called(ctx, p).Error(0)
}
func (m *productRepoMock) List(ctx context.Context, search string, limit, offset int) ([]*entity.Product, int, error) {
	args := m.Called(ctx, search, limit, offset)
	list, _ := args.Get(0).([]*entity.Product)
	return list, args.Int(1), args.Error(2)
}
func (m *productRepoMock) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type activityRepoMock struct{ mock.Mock }

func (m *activityRepoMock) Create(ctx context.Context, a *entity.ActivityLog) error {
	return m.Called(ctx, a).Error(0)
}
func (m *activityRepoMock) List(ctx context.Context, limit, offset int) ([]*entity.ActivityLog, int, error) {
	args := m.Called(ctx, limit, offset)
	list, _ := args.Get(0).([]*entity.ActivityLog)
	return list, args.Int(1), args.Error(2)
}

// ──────────────────────────────────────────────────────────────────────────────
// ProductUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_SKUDuplicado(t *testing.T) {
	repo := new(productRepoMock)
	repo.On("GetBySKU", mock.Anything, "AMOX-500").Return(&entity.Product{ID: "p1"}, nil)

	_, err := usecase.NewProductUseCase(repo).Create(context.Background(), dto.CreateProductRequest{SKU: "AMOX-500", Name: "Amoxicilina"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductCreate_UnidadPorDefecto(t *testing.T) {
	repo := new(productRepoMock)
	repo.On("GetBySKU", mock.Anything, "AMOX-500").Return(nil, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Product")).Return(nil)

	res, err := usecase.NewProductUseCase(repo).Create(context.Background(), dto.CreateProductRequest{
		SKU: " AMOX-500 ", Name: "Amoxicilina", Price: decimal.RequireFromString("12.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "AMOX-500", res.SKU)
	assert.Equal(t, "UND", res.Unit)
	assert.True(t, res.Price.Equal(decimal.RequireFromString("12.5")))
}

func TestProductCreate_PrecioNegativo(t *testing.T) {
	_, err := usecase.NewProductUseCase(new(productRepoMock)).Create(context.Background(), dto.CreateProductRequest{
		SKU: "X", Name: "X", Price: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductGetByID_NoEncontrado(t *testing.T) {
	repo := new(productRepoMock)
	repo.On("GetByID", mock.Anything, "nope").Return(nil, nil)
	_, err := usecase.NewProductUseCase(repo).GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductList_Paginacion(t *testing.T) {
	repo := new(productRepoMock)
	repo.On("List", mock.Anything, "amox", 10, 10).Return([]*entity.Product{{ID: "p1"}}, 11, nil)

	res, err := usecase.NewProductUseCase(repo).List(context.Background(), "amox", 2, 10)
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)
	assert.Equal(t, 2, res.Page.TotalPages)
	assert.False(t, res.Page.HasNextPage)
	assert.True(t, res.Page.HasPreviousPage)
}

// ──────────────────────────────────────────────────────────────────────────────
// ActivityUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestActivityRecord_SerializaDetalles(t *testing.T) {
	repo := new(activityRepoMock)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(a *entity.ActivityLog) bool {
		var d map[string]int
		return a.UserID != nil && *a.UserID == "u1" &&
			a.Action == entity.ActivityPSRSync &&
			json.Unmarshal(a.Details, &d) == nil && d["inserted"] == 3
	})).Return(nil)

	uc := usecase.NewActivityUseCase(repo, zerolog.Nop())
	uc.Record(context.Background(), ports.Actor{UserID: "u1", IP: "1.2.3.4"}, entity.ActivityPSRSync, "psr", "", map[string]int{"inserted": 3})
	repo.AssertExpectations(t)
}

func TestActivityRecord_ActorSistemaSinUsuario(t *testing.T) {
	repo := new(activityRepoMock)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(a *entity.ActivityLog) bool {
		return a.UserID == nil && a.IP == "system"
	})).Return(nil)

	usecase.NewActivityUseCase(repo, zerolog.Nop()).Record(context.Background(), ports.SystemActor, entity.ActivityExpirySweep, "inventory_batch", "", nil)
	repo.AssertExpectations(t)
}

func TestActivityRecord_FalloNoPropaga(t *testing.T) {
	repo := new(activityRepoMock)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db caída"))

	assert.NotPanics(t, func() {
		usecase.NewActivityUseCase(repo, zerolog.Nop()).Record(context.Background(), ports.Actor{}, entity.ActivityLogin, "session", "s1", nil)
	})
}
