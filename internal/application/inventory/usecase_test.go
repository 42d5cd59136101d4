package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/Farmadist-api/internal/application/inventory"
	"github.com/jhoicas/Farmadist-api/internal/application/dto"
	"github.com/jhoicas/Farmadist-api/internal/application/ports"
	"github.com/jhoicas/Farmadist-api/internal/domain"
	"github.com/jhoicas/Farmadist-api/internal/domain/entity"
	"github.com/jhoicas/Farmadist-api/internal/domain/inventory"
	"github.com/jhoicas/Farmadist-api/internal/domain/repository"
)

var errBoom = errors.New("boom")

var testActor = ports.Actor{UserID: "user-1", IP: "127.0.0.1"}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func newMovementUC(s *memStore) *appinv.RegisterMovementUseCase {
	products := productRepo{byID: map[string]*entity.Product{"prod-1": {ID: "prod-1", SKU: "AMOX-500"}}}
	stores := storeRepo{byID: map[string]*entity.Store{
		"store-1": {ID: "store-1", Code: "S1"},
		"store-2": {ID: "store-2", Code: "S2"},
	}}
	return appinv.NewRegisterMovementUseCase(s, products, stores, batchRepo{s}, itemRepo{s}, ports.NopRecorder{}, zerolog.Nop())
}

func receive(t *testing.T, uc *appinv.RegisterMovementUseCase, store string, qty int64) *dto.ReceiptResponse {
	t.Helper()
	res, err := uc.ReceiveBatch(context.Background(), testActor, dto.ReceiveBatchRequest{
		BatchNumber: "L-" + store,
		ProductID:   "prod-1",
		StoreID:     store,
		ExpiryDate:  time.Now().AddDate(1, 0, 0),
		Quantity:    qty,
	})
	require.NoError(t, err)
	return res
}

// replay suma los aportes de los movimientos de un ítem.
func replay(s *memStore, itemID string) int64 {
	var total int64
	for _, m := range s.movementsOf(itemID) {
		total += inventory.BalanceChange(m.MovementType, m.Quantity)
	}
	return total
}

// ──────────────────────────────────────────────────────────────────────────────
// ReceiveBatch
// ──────────────────────────────────────────────────────────────────────────────

func TestReceiveBatch_CreaLoteItemYMovimiento(t *testing.T) {
	s := newMemStore()
	res := receive(t, newMovementUC(s), "store-1", 100)

	assert.Equal(t, entity.StatusActive, res.Batch.Status)
	assert.Equal(t, int64(100), res.Item.CurrentQuantity)
	assert.Equal(t, entity.MovementInbound, res.Movement.MovementType)
	assert.Equal(t, "user-1", res.Movement.CreatedBy)
	assert.Equal(t, int64(100), replay(s, res.Item.ID))
}

func TestReceiveBatch_ProductoInexistente(t *testing.T) {
	_, err := newMovementUC(newMemStore()).ReceiveBatch(context.Background(), testActor, dto.ReceiveBatchRequest{
		BatchNumber: "L1", ProductID: "nope", StoreID: "store-1", ExpiryDate: time.Now(), Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReceiveBatch_CantidadInvalida(t *testing.T) {
	_, err := newMovementUC(newMemStore()).ReceiveBatch(context.Background(), testActor, dto.ReceiveBatchRequest{
		BatchNumber: "L1", ProductID: "prod-1", StoreID: "store-1", ExpiryDate: time.Now(), Quantity: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// PostMovement
// ──────────────────────────────────────────────────────────────────────────────

func TestPostMovement_SalidaYAjuste(t *testing.T) {
	s := newMemStore()
	uc := newMovementUC(s)
	itemID := receive(t, uc, "store-1", 100).Item.ID

	res, err := uc.PostMovement(context.Background(), testActor, itemID, dto.PostMovementRequest{
		MovementType: entity.MovementOutbound, Quantity: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(70), res.Item.CurrentQuantity)

	res, err = uc.PostMovement(context.Background(), testActor, itemID, dto.PostMovementRequest{
		MovementType: entity.MovementAdjustment, Quantity: -5,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(65), res.Item.CurrentQuantity)
	assert.Equal(t, int64(65), replay(s, itemID), "el stock del ítem coincide con la reproducción del libro")
}

func TestPostMovement_StockInsuficienteNoEscribe(t *testing.T) {
	s := newMemStore()
	uc := newMovementUC(s)
	itemID := receive(t, uc, "store-1", 10).Item.ID

	_, err := uc.PostMovement(context.Background(), testActor, itemID, dto.PostMovementRequest{
		MovementType: entity.MovementOutbound, Quantity: 11,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(10), s.item(itemID).CurrentQuantity)
	assert.Len(t, s.movementsOf(itemID), 1, "el rollback descarta el movimiento")
}

func TestPostMovement_TiposNoPermitidos(t *testing.T) {
	uc := newMovementUC(newMemStore())
	for _, typ := range []string{entity.MovementInbound, entity.MovementTransfer, entity.MovementExpired, "RECOUNT"} {
		_, err := uc.PostMovement(context.Background(), testActor, "x", dto.PostMovementRequest{MovementType: typ, Quantity: 1})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, typ)
	}
	_, err := uc.PostMovement(context.Background(), testActor, "x", dto.PostMovementRequest{MovementType: entity.MovementOutbound, Quantity: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPostMovement_ItemInexistente(t *testing.T) {
	_, err := newMovementUC(newMemStore()).PostMovement(context.Background(), testActor, "missing", dto.PostMovementRequest{
		MovementType: entity.MovementReturn, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transfer
// ──────────────────────────────────────────────────────────────────────────────

func TestTransfer_MueveStockConReferenciaCompartida(t *testing.T) {
	s := newMemStore()
	uc := newMovementUC(s)
	from := receive(t, uc, "store-1", 50).Item.ID
	to := receive(t, uc, "store-2", 5).Item.ID

	res, err := uc.Transfer(context.Background(), testActor, dto.TransferRequest{FromItemID: from, ToItemID: to, Quantity: 20})
	require.NoError(t, err)
	require.NotNil(t, res.Outbound.ReferenceID)
	require.NotNil(t, res.Inbound.ReferenceID)
	assert.Equal(t, res.ReferenceID, *res.Outbound.ReferenceID)
	assert.Equal(t, res.ReferenceID, *res.Inbound.ReferenceID)
	assert.Equal(t, entity.MovementOutbound, res.Outbound.MovementType)
	assert.Equal(t, entity.MovementTransfer, res.Inbound.MovementType)

	assert.Equal(t, int64(30), s.item(from).CurrentQuantity)
	assert.Equal(t, int64(25), s.item(to).CurrentQuantity)
	assert.Equal(t, int64(30), replay(s, from))
	assert.Equal(t, int64(25), replay(s, to))
}

func TestTransfer_SinStockSuficiente(t *testing.T) {
	s := newMemStore()
	uc := newMovementUC(s)
	from := receive(t, uc, "store-1", 5).Item.ID
	to := receive(t, uc, "store-2", 5).Item.ID

	_, err := uc.Transfer(context.Background(), testActor, dto.TransferRequest{FromItemID: from, ToItemID: to, Quantity: 6})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(5), s.item(to).CurrentQuantity)
}

func TestTransfer_MismoItem(t *testing.T) {
	_, err := newMovementUC(newMemStore()).Transfer(context.Background(), testActor, dto.TransferRequest{FromItemID: "a", ToItemID: "a", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Hora del movimiento
// ──────────────────────────────────────────────────────────────────────────────

// El reloj avanza al tomar el bloqueo: el movimiento debe llevar la hora posterior.
func lockingClock(s *memStore, uc *appinv.RegisterMovementUseCase) (before, after time.Time) {
	before = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	after = before.Add(time.Minute)
	current := before
	uc.SetClock(func() time.Time { return current })
	s.onLock = func(string) { current = after }
	return before, after
}

func TestPostMovement_HoraTomadaTrasElBloqueo(t *testing.T) {
	s := newMemStore()
	uc := newMovementUC(s)
	itemID := receive(t, uc, "store-1", 10).Item.ID
	_, after := lockingClock(s, uc)

	res, err := uc.PostMovement(context.Background(), testActor, itemID, dto.PostMovementRequest{
		MovementType: entity.MovementOutbound, Quantity: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, after, res.Movement.CreatedAt)
	assert.Equal(t, after, s.item(itemID).UpdatedAt)
}

func TestTransfer_HoraTomadaTrasLosBloqueos(t *testing.T) {
	s := newMemStore()
	uc := newMovementUC(s)
	from := receive(t, uc, "store-1", 10).Item.ID
	to := receive(t, uc, "store-2", 1).Item.ID
	_, after := lockingClock(s, uc)

	res, err := uc.Transfer(context.Background(), testActor, dto.TransferRequest{FromItemID: from, ToItemID: to, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, after, res.Outbound.CreatedAt)
	assert.Equal(t, after, res.Inbound.CreatedAt)
}

func TestListBatches_FiltraPorEstado(t *testing.T) {
	s := newMemStore()
	uc := newMovementUC(s)
	receive(t, uc, "store-1", 5)

	res, err := uc.ListBatches(context.Background(), repository.BatchFilter{Status: entity.StatusExpired}, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, res.Items)

	res, err = uc.ListBatches(context.Background(), repository.BatchFilter{Status: entity.StatusActive}, 1, 20)
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)
}
