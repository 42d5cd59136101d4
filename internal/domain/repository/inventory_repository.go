package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Farmadist-api/internal/domain/entity"
)

// BatchFilter filtros del listado de lotes.
type BatchFilter struct {
	Status  string
	StoreID string
	Limit   int
	Offset  int
}

// InventoryBatchRepository persistencia de lotes.
type InventoryBatchRepository interface {
	Create(ctx context.Context, batch *entity.InventoryBatch) error
	GetByID(ctx context.Context, id string) (*entity.InventoryBatch, error)
	List(ctx context.Context, f BatchFilter) ([]*entity.InventoryBatch, int, error)
	// ListExpirable lotes ACTIVE con expiry_date < now.
	ListExpirable(ctx context.Context, now time.Time) ([]*entity.InventoryBatch, error)
	// MarkExpired pasa el lote a EXPIRED solo si sigue ACTIVE. Devuelve false si otro proceso ya lo hizo.
	MarkExpired(ctx context.Context, id string, now time.Time) (bool, error)
}

// ItemFilter filtros del listado de ítems.
type ItemFilter struct {
	StoreID   string
	ProductID string
	BatchID   string
	Status    string
	Limit     int
	Offset    int
}

// InventoryItemRepository persistencia de ítems de inventario.
type InventoryItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	// GetForUpdate obtiene el ítem y bloquea la fila (SELECT ... FOR UPDATE). Requiere tx.
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)
	// ListActiveByBatchForUpdate ítems ACTIVE del lote, bloqueados. Requiere tx.
	ListActiveByBatchForUpdate(ctx context.Context, batchID string) ([]*entity.InventoryItem, error)
	UpdateQuantity(ctx context.Context, id string, quantity int64, status string, now time.Time) error
	List(ctx context.Context, f ItemFilter) ([]*entity.InventoryItem, int, error)
}

// MovementFilter filtros del historial de movimientos. Nil = sin filtro.
type MovementFilter struct {
	InventoryItemID *string
	DateFrom        *time.Time
	DateTo          *time.Time
}

// InventoryMovementRepository libro de movimientos (append-only: no hay Update ni Delete).
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	// ListNewestFirst devuelve TODOS los movimientos que cumplen el filtro, ordenados
	// created_at DESC, id DESC. Sin paginación: el saldo acumulado necesita el contexto completo.
	ListNewestFirst(ctx context.Context, f MovementFilter) ([]*entity.InventoryMovement, error)
}
