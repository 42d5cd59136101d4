package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Farmadist-api/internal/application/dto"
	"github.com/jhoicas/Farmadist-api/internal/application/ports"
	"github.com/jhoicas/Farmadist-api/internal/domain/entity"
	"github.com/jhoicas/Farmadist-api/internal/domain/repository"
)

// errBatchTaken otro barrido ya venció el lote entre el listado y el bloqueo.
var errBatchTaken = errors.New("lote ya vencido por otro proceso")

// ExpirySweepUseCase vence lotes ACTIVE cuya fecha de vencimiento ya pasó.
// Cada lote se procesa en su propia transacción; un fallo se registra y no detiene el barrido.
type ExpirySweepUseCase struct {
	batchRepo repository.InventoryBatchRepository
	txRunner  TxRunner
	activity  ports.ActivityRecorder
	log       zerolog.Logger
}

// NewExpirySweepUseCase construye el caso de uso.
func NewExpirySweepUseCase(
	batchRepo repository.InventoryBatchRepository,
	txRunner TxRunner,
	activity ports.ActivityRecorder,
	log zerolog.Logger,
) *ExpirySweepUseCase {
	return &ExpirySweepUseCase{batchRepo: batchRepo, txRunner: txRunner, activity: activity, log: log}
}

// Run ejecuta un barrido con referencia now. Solo devuelve error si no pudo listar los lotes.
func (uc *ExpirySweepUseCase) Run(ctx context.Context, actor ports.Actor, now time.Time) (*dto.ExpirySweepResult, error) {
	result := &dto.ExpirySweepResult{RanAt: now}
	batches, err := uc.batchRepo.ListExpirable(ctx, now)
	if err != nil {
		uc.log.Error().Err(err).Msg("expiry sweep: no se pudieron listar lotes vencidos")
		return nil, err
	}

	for _, b := range batches {
		items, units, err := uc.expireBatch(ctx, b, now)
		switch {
		case errors.Is(err, errBatchTaken):
			uc.log.Debug().Str("batch_id", b.ID).Msg("expiry sweep: lote ya procesado")
		case err != nil:
			result.Failures++
			uc.log.Error().Err(err).Str("batch_id", b.ID).Str("batch_number", b.BatchNumber).Msg("expiry sweep: fallo al vencer lote")
		default:
			result.BatchesExpired++
			result.ItemsExpired += items
			result.UnitsWrittenOff += units
		}
	}

	uc.log.Info().
		Int("candidates", len(batches)).
		Int("batches", result.BatchesExpired).
		Int("items", result.ItemsExpired).
		Int64("units", result.UnitsWrittenOff).
		Int("failures", result.Failures).
		Msg("expiry sweep terminado")
	if result.BatchesExpired > 0 || result.Failures > 0 {
		uc.activity.Record(ctx, actor, entity.ActivityExpirySweep, "inventory_batch", "", result)
	}
	return result, nil
}

// expireBatch bloquea los ítems ACTIVE del lote, da de baja su stock con un movimiento EXPIRED
// y pasa ítems y lote a EXPIRED, todo en una transacción.
func (uc *ExpirySweepUseCase) expireBatch(ctx context.Context, b *entity.InventoryBatch, now time.Time) (int, int64, error) {
	var items int
	var units int64
	err := uc.txRunner.Run(ctx, func(
		batchRepo repository.InventoryBatchRepository,
		itemRepo repository.InventoryItemRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		items, units = 0, 0
		locked, err := itemRepo.ListActiveByBatchForUpdate(ctx, b.ID)
		if err != nil {
			return err
		}
		for _, it := range locked {
			qty := it.CurrentQuantity
			if qty > 0 {
				mov := &entity.InventoryMovement{
					ID:              newMovementID(),
					InventoryItemID: it.ID,
					Quantity:        qty,
					MovementType:    entity.MovementExpired,
					Reason:          "lote vencido " + b.BatchNumber,
					CreatedAt:       now,
				}
				if err := movRepo.Create(ctx, mov); err != nil {
					return err
				}
				units += qty
				qty = 0
			}
			if err := itemRepo.UpdateQuantity(ctx, it.ID, qty, entity.StatusExpired, now); err != nil {
				return err
			}
			items++
		}
		ok, err := batchRepo.MarkExpired(ctx, b.ID, now)
		if err != nil {
			return err
		}
		if !ok {
			return errBatchTaken
		}
		return nil
	})
	return items, units, err
}
