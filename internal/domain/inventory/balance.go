// Package inventory contiene las reglas de signo de los movimientos y el cálculo del saldo acumulado.
//
// Reglas (la cantidad almacenada no se usa para decidir la dirección):
//
//	INBOUND, RETURN, TRANSFER  → +|q|
//	OUTBOUND, EXPIRED          → -|q|
//	ADJUSTMENT                 → +q (con su signo)
//	cualquier otro tipo        →  0, dirección UNKNOWN
package inventory

import (
	"time"

	"github.com/jhoicas/Farmadist-api/internal/domain"
	"github.com/jhoicas/Farmadist-api/internal/domain/entity"
)

// Direction etiqueta de dirección de un movimiento.
type Direction string

const (
	DirectionInbound    Direction = "INBOUND"
	DirectionOutbound   Direction = "OUTBOUND"
	DirectionAdjustment Direction = "ADJUSTMENT"
	DirectionUnknown    Direction = "UNKNOWN"
)

// Classify devuelve la dirección de un tipo de movimiento.
func Classify(movementType string) Direction {
	switch movementType {
	case entity.MovementInbound, entity.MovementReturn, entity.MovementTransfer:
		return DirectionInbound
	case entity.MovementOutbound, entity.MovementExpired:
		return DirectionOutbound
	case entity.MovementAdjustment:
		return DirectionAdjustment
	default:
		return DirectionUnknown
	}
}

// BalanceChange variación de stock que aporta un movimiento.
func BalanceChange(movementType string, quantity int64) int64 {
	switch Classify(movementType) {
	case DirectionInbound:
		return abs(quantity)
	case DirectionOutbound:
		return -abs(quantity)
	case DirectionAdjustment:
		return quantity
	default:
		return 0
	}
}

// Apply calcula el nuevo stock de un ítem tras registrar el movimiento.
// Rechaza tipos desconocidos, cantidades cero y saldos negativos.
func Apply(current int64, movementType string, quantity int64) (int64, error) {
	if quantity == 0 || Classify(movementType) == DirectionUnknown {
		return 0, domain.ErrInvalidInput
	}
	next := current + BalanceChange(movementType, quantity)
	if next < 0 {
		return 0, domain.ErrInsufficientStock
	}
	return next, nil
}

// LedgerEntry movimiento anotado con su aporte y el saldo inmediatamente después.
type LedgerEntry struct {
	Movement       *entity.InventoryMovement
	Direction      Direction
	BalanceChange  int64
	RunningBalance int64
}

// BuildLedger recibe movimientos ordenados del más reciente al más antiguo, recorre en orden
// cronológico acumulando desde opening y devuelve las entradas otra vez del más reciente al más antiguo.
func BuildLedger(newestFirst []*entity.InventoryMovement, opening int64) []LedgerEntry {
	n := len(newestFirst)
	entries := make([]LedgerEntry, n)
	running := opening
	// i recorre de más antiguo (n-1) a más reciente (0); escribir en la misma posición
	// equivale a invertir, acumular e invertir de nuevo.
	for i := n - 1; i >= 0; i-- {
		m := newestFirst[i]
		change := BalanceChange(m.MovementType, m.Quantity)
		running += change
		entries[i] = LedgerEntry{
			Movement:       m,
			Direction:      Classify(m.MovementType),
			BalanceChange:  change,
			RunningBalance: running,
		}
	}
	return entries
}

// Summary agregados sobre el conjunto filtrado completo (no solo la página).
type Summary struct {
	TotalMovements int
	OpeningBalance int64
	FinalBalance   int64
	TotalInbound   int64
	TotalOutbound  int64
	NetAdjustment  int64
	OldestAt       *time.Time
	NewestAt       *time.Time
}

// Summarize calcula el resumen de entradas ordenadas del más reciente al más antiguo.
func Summarize(newestFirst []LedgerEntry, opening int64) Summary {
	s := Summary{
		TotalMovements: len(newestFirst),
		OpeningBalance: opening,
		FinalBalance:   opening,
	}
	if len(newestFirst) == 0 {
		return s
	}
	s.FinalBalance = newestFirst[0].RunningBalance
	newest := newestFirst[0].Movement.CreatedAt
	oldest := newestFirst[len(newestFirst)-1].Movement.CreatedAt
	s.NewestAt = &newest
	s.OldestAt = &oldest
	for _, e := range newestFirst {
		switch e.Direction {
		case DirectionInbound:
			s.TotalInbound += e.BalanceChange
		case DirectionOutbound:
			s.TotalOutbound += -e.BalanceChange
		case DirectionAdjustment:
			s.NetAdjustment += e.BalanceChange
		}
	}
	return s
}

// OpeningBalance suma los aportes de movimientos anteriores al rango mostrado.
func OpeningBalance(before []*entity.InventoryMovement) int64 {
	var total int64
	for _, m := range before {
		total += BalanceChange(m.MovementType, m.Quantity)
	}
	return total
}

func abs(q int64) int64 {
	if q < 0 {
		return -q
	}
	return q
}
