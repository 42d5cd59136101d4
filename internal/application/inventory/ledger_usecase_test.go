package inventory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/Farmadist-api/internal/application/inventory"
	"github.com/jhoicas/Farmadist-api/internal/domain"
	"github.com/jhoicas/Farmadist-api/internal/domain/entity"
)

var day0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// seed escribe movimientos del ítem a day0 + i horas.
func seed(s *memStore, itemID string, moves ...entity.InventoryMovement) {
	for i, m := range moves {
		m.ID = fmt.Sprintf("%s-%03d", itemID, i)
		m.InventoryItemID = itemID
		m.CreatedAt = day0.Add(time.Duration(i) * time.Hour)
		s.movements = append(s.movements, m)
	}
}

func ptr(t time.Time) *time.Time { return &t }

// ──────────────────────────────────────────────────────────────────────────────
// MovementHistory
// ──────────────────────────────────────────────────────────────────────────────

func TestMovementHistory_Item42(t *testing.T) {
	s := newMemStore()
	seed(s, "42",
		entity.InventoryMovement{MovementType: entity.MovementInbound, Quantity: 100},
		entity.InventoryMovement{MovementType: entity.MovementOutbound, Quantity: 30},
		entity.InventoryMovement{MovementType: entity.MovementAdjustment, Quantity: -5},
	)
	seed(s, "other", entity.InventoryMovement{MovementType: entity.MovementInbound, Quantity: 999})

	res, err := appinv.NewLedgerUseCase(s.movRepo()).MovementHistory(context.Background(), appinv.LedgerQuery{InventoryItemID: "42", Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, res.Movements, 3)

	assert.Equal(t, int64(65), res.Movements[0].RunningBalance)
	assert.Equal(t, int64(70), res.Movements[1].RunningBalance)
	assert.Equal(t, int64(100), res.Movements[2].RunningBalance)
	assert.Equal(t, "OUTBOUND", res.Movements[1].Direction)

	assert.Equal(t, 3, res.Summary.TotalMovements)
	assert.Equal(t, int64(65), res.Summary.FinalBalance)
	assert.Equal(t, int64(100), res.Summary.TotalInbound)
	assert.Equal(t, int64(30), res.Summary.TotalOutbound)
	assert.Equal(t, int64(-5), res.Summary.NetAdjustment)
	assert.Equal(t, 3, res.Page.Total)
	assert.False(t, res.Page.HasNextPage)
}

// Concatenar todas las páginas da la lista completa, y el saldo de cada fila no depende de la página.
func TestMovementHistory_PaginasConcatenadas(t *testing.T) {
	s := newMemStore()
	var moves []entity.InventoryMovement
	for i := 0; i < 23; i++ {
		typ := entity.MovementInbound
		if i%3 == 2 {
			typ = entity.MovementOutbound
		}
		moves = append(moves, entity.InventoryMovement{MovementType: typ, Quantity: int64(i + 1)})
	}
	seed(s, "7", moves...)
	uc := appinv.NewLedgerUseCase(s.movRepo())

	full, err := uc.MovementHistory(context.Background(), appinv.LedgerQuery{InventoryItemID: "7", Page: 1, Limit: 100})
	require.NoError(t, err)
	require.Len(t, full.Movements, 23)

	var joined []int64
	var ids []string
	for page := 1; page <= 3; page++ {
		res, err := uc.MovementHistory(context.Background(), appinv.LedgerQuery{InventoryItemID: "7", Page: page, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, page < 3, res.Page.HasNextPage, "page %d", page)
		assert.Equal(t, full.Summary, res.Summary, "el resumen cubre todo el conjunto")
		for _, m := range res.Movements {
			joined = append(joined, m.RunningBalance)
			ids = append(ids, m.ID)
		}
	}
	for i, m := range full.Movements {
		assert.Equal(t, m.ID, ids[i])
		assert.Equal(t, m.RunningBalance, joined[i])
	}

	beyond, err := uc.MovementHistory(context.Background(), appinv.LedgerQuery{InventoryItemID: "7", Page: 9, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, beyond.Movements)
	assert.False(t, beyond.Page.HasNextPage)
}

func TestMovementHistory_SaldoAperturaConDateFrom(t *testing.T) {
	s := newMemStore()
	seed(s, "9",
		entity.InventoryMovement{MovementType: entity.MovementInbound, Quantity: 50},  // h0
		entity.InventoryMovement{MovementType: entity.MovementOutbound, Quantity: 10}, // h1
		entity.InventoryMovement{MovementType: entity.MovementOutbound, Quantity: 5},  // h2
		entity.InventoryMovement{MovementType: entity.MovementReturn, Quantity: 2},    // h3
	)

	res, err := appinv.NewLedgerUseCase(s.movRepo()).MovementHistory(context.Background(), appinv.LedgerQuery{
		InventoryItemID: "9",
		DateFrom:        ptr(day0.Add(2 * time.Hour)),
		DateTo:          ptr(day0.Add(2 * time.Hour)),
		Page:            1,
		Limit:           20,
	})
	require.NoError(t, err)
	require.Len(t, res.Movements, 1)
	assert.Equal(t, int64(40), res.Summary.OpeningBalance)
	assert.Equal(t, int64(35), res.Movements[0].RunningBalance)
	assert.Equal(t, int64(35), res.Summary.FinalBalance)
	assert.Equal(t, int64(5), res.Summary.TotalOutbound)
}

func TestMovementHistory_Vacio(t *testing.T) {
	res, err := appinv.NewLedgerUseCase(newMemStore().movRepo()).MovementHistory(context.Background(), appinv.LedgerQuery{InventoryItemID: "none"})
	require.NoError(t, err)
	assert.Empty(t, res.Movements)
	assert.Equal(t, 0, res.Summary.TotalMovements)
	assert.Equal(t, int64(0), res.Summary.FinalBalance)
	assert.Nil(t, res.Summary.OldestAt)
	assert.Equal(t, 0, res.Page.TotalPages)
}

func TestMovementHistory_RangoInvertido(t *testing.T) {
	_, err := appinv.NewLedgerUseCase(newMemStore().movRepo()).MovementHistory(context.Background(), appinv.LedgerQuery{
		DateFrom: ptr(day0.Add(time.Hour)),
		DateTo:   ptr(day0),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
