package inventory

import (
	"context"

	"github.com/jhoicas/Farmadist-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		batchRepo repository.InventoryBatchRepository,
		itemRepo repository.InventoryItemRepository,
		movRepo repository.InventoryMovementRepository,
	) error) error
}
