package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Farmadist-api/internal/application/dto"
	"github.com/jhoicas/Farmadist-api/internal/application/ports"
	"github.com/jhoicas/Farmadist-api/internal/domain"
	"github.com/jhoicas/Farmadist-api/internal/domain/entity"
	"github.com/jhoicas/Farmadist-api/internal/domain/inventory"
	"github.com/jhoicas/Farmadist-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos de inventario de forma transaccional
// (recepción de lote, salida/devolución/ajuste y transferencia) con bloqueo de fila
// (SELECT FOR UPDATE) y Commit/Rollback. Nunca deja un ítem con stock negativo.
type RegisterMovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	storeRepo   repository.StoreRepository
	batchRepo   repository.InventoryBatchRepository
	itemRepo    repository.InventoryItemRepository
	activity    ports.ActivityRecorder
	log         zerolog.Logger
	now         func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
	batchRepo repository.InventoryBatchRepository,
	itemRepo repository.InventoryItemRepository,
	activity ports.ActivityRecorder,
	log zerolog.Logger,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		storeRepo:   storeRepo,
		batchRepo:   batchRepo,
		itemRepo:    itemRepo,
		activity:    activity,
		log:         log,
		now:         time.Now,
	}
}

// newMovementID UUIDv7: ordenable por tiempo, desempata created_at iguales.
func newMovementID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// ReceiveBatch crea el lote, su ítem y el movimiento INBOUND inicial en una sola transacción.
func (uc *RegisterMovementUseCase) ReceiveBatch(ctx context.Context, actor ports.Actor, in dto.ReceiveBatchRequest) (*dto.ReceiptResponse, error) {
	in.BatchNumber = strings.TrimSpace(in.BatchNumber)
	if in.BatchNumber == "" || in.ProductID == "" || in.StoreID == "" || in.Quantity <= 0 || in.ExpiryDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	store, err := uc.storeRepo.GetByID(ctx, in.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.now()
	qty, err := inventory.Apply(0, entity.MovementInbound, in.Quantity)
	if err != nil {
		return nil, err
	}
	batch := &entity.InventoryBatch{
		ID:          uuid.New().String(),
		BatchNumber: in.BatchNumber,
		ProductID:   product.ID,
		StoreID:     store.ID,
		ExpiryDate:  in.ExpiryDate,
		Status:      entity.StatusActive,
		ReceivedAt:  now,
		CreatedBy:   actor.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	item := &entity.InventoryItem{
		ID:              uuid.New().String(),
		BatchID:         batch.ID,
		ProductID:       product.ID,
		StoreID:         store.ID,
		CurrentQuantity: qty,
		Status:          entity.StatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	mov := &entity.InventoryMovement{
		ID:              newMovementID(),
		InventoryItemID: item.ID,
		Quantity:        in.Quantity,
		MovementType:    entity.MovementInbound,
		Reason:          defaultReason(in.Reason, "recepción de lote"),
		CreatedBy:       actor.UserID,
		CreatedAt:       now,
	}

	err = uc.txRunner.Run(ctx, func(
		batchRepo repository.InventoryBatchRepository,
		itemRepo repository.InventoryItemRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		if err := batchRepo.Create(ctx, batch); err != nil {
			return err
		}
		if err := itemRepo.Create(ctx, item); err != nil {
			return err
		}
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("batch_id", batch.ID).Str("item_id", item.ID).Int64("quantity", in.Quantity).Msg("lote recibido")
	uc.activity.Record(ctx, actor, entity.ActivityStockReceipt, "inventory_batch", batch.ID, map[string]any{
		"batch_number": batch.BatchNumber,
		"item_id":      item.ID,
		"quantity":     in.Quantity,
	})
	return &dto.ReceiptResponse{
		Batch:    ToBatchResponse(batch),
		Item:     ToItemResponse(item),
		Movement: ToMovementResponse(mov),
	}, nil
}

// PostMovement registra una salida, devolución o ajuste sobre un ítem existente.
// INBOUND entra por ReceiveBatch, TRANSFER por Transfer y EXPIRED solo lo escribe el barrido.
func (uc *RegisterMovementUseCase) PostMovement(ctx context.Context, actor ports.Actor, itemID string, in dto.PostMovementRequest) (*dto.MovementPostedResponse, error) {
	switch in.MovementType {
	case entity.MovementOutbound, entity.MovementReturn, entity.MovementAdjustment:
	default:
		return nil, domain.ErrInvalidInput
	}
	if itemID == "" || in.Quantity == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.MovementType != entity.MovementAdjustment && in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}

	var (
		item *entity.InventoryItem
		mov  *entity.InventoryMovement
	)
	err := uc.txRunner.Run(ctx, func(
		_ repository.InventoryBatchRepository,
		itemRepo repository.InventoryItemRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		// Bloquea la fila del ítem para serializar movimientos concurrentes
		locked, err := itemRepo.GetForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		if locked.Status != entity.StatusActive {
			return domain.ErrConflict
		}
		next, err := inventory.Apply(locked.CurrentQuantity, in.MovementType, in.Quantity)
		if err != nil {
			return err
		}
		// La hora se toma con el bloqueo tomado: created_at sigue el orden en que se aplican.
		now := uc.now()
		if err := itemRepo.UpdateQuantity(ctx, locked.ID, next, locked.Status, now); err != nil {
			return err
		}
		locked.CurrentQuantity = next
		locked.UpdatedAt = now
		item = locked
		mov = &entity.InventoryMovement{
			ID:              newMovementID(),
			InventoryItemID: itemID,
			Quantity:        in.Quantity,
			MovementType:    in.MovementType,
			Reason:          strings.TrimSpace(in.Reason),
			CreatedBy:       actor.UserID,
			CreatedAt:       now,
		}
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("item_id", itemID).Str("type", mov.MovementType).Int64("quantity", mov.Quantity).Int64("balance", item.CurrentQuantity).Msg("movimiento registrado")
	uc.activity.Record(ctx, actor, entity.ActivityStockMove, "inventory_item", itemID, map[string]any{
		"movement_id":   mov.ID,
		"movement_type": mov.MovementType,
		"quantity":      mov.Quantity,
		"balance":       item.CurrentQuantity,
	})
	return &dto.MovementPostedResponse{Item: ToItemResponse(item), Movement: ToMovementResponse(mov)}, nil
}

// Transfer mueve unidades entre dos ítems del mismo producto: OUTBOUND en el origen y
// TRANSFER en el destino, con el mismo reference_id.
func (uc *RegisterMovementUseCase) Transfer(ctx context.Context, actor ports.Actor, in dto.TransferRequest) (*dto.TransferResponse, error) {
	if in.FromItemID == "" || in.ToItemID == "" || in.FromItemID == in.ToItemID || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	ref := uuid.New().String()
	reason := defaultReason(in.Reason, "transferencia")
	var out, inb *entity.InventoryMovement

	err := uc.txRunner.Run(ctx, func(
		_ repository.InventoryBatchRepository,
		itemRepo repository.InventoryItemRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		// Orden de bloqueo fijo (por id) para que dos transferencias cruzadas no se bloqueen mutuamente
		firstID, secondID := in.FromItemID, in.ToItemID
		if secondID < firstID {
			firstID, secondID = secondID, firstID
		}
		first, err := itemRepo.GetForUpdate(ctx, firstID)
		if err != nil {
			return err
		}
		second, err := itemRepo.GetForUpdate(ctx, secondID)
		if err != nil {
			return err
		}
		if first == nil || second == nil {
			return domain.ErrNotFound
		}
		from, to := first, second
		if from.ID != in.FromItemID {
			from, to = second, first
		}
		if from.ProductID != to.ProductID {
			return domain.ErrInvalidInput
		}
		if from.Status != entity.StatusActive || to.Status != entity.StatusActive {
			return domain.ErrConflict
		}

		fromQty, err := inventory.Apply(from.CurrentQuantity, entity.MovementOutbound, in.Quantity)
		if err != nil {
			return err
		}
		toQty, err := inventory.Apply(to.CurrentQuantity, entity.MovementTransfer, in.Quantity)
		if err != nil {
			return err
		}

		now := uc.now()
		out = &entity.InventoryMovement{
			ID:              newMovementID(),
			InventoryItemID: in.FromItemID,
			Quantity:        in.Quantity,
			MovementType:    entity.MovementOutbound,
			Reason:          reason,
			ReferenceID:     &ref,
			CreatedBy:       actor.UserID,
			CreatedAt:       now,
		}
		inb = &entity.InventoryMovement{
			ID:              newMovementID(),
			InventoryItemID: in.ToItemID,
			Quantity:        in.Quantity,
			MovementType:    entity.MovementTransfer,
			Reason:          reason,
			ReferenceID:     &ref,
			CreatedBy:       actor.UserID,
			CreatedAt:       now,
		}
		if err := itemRepo.UpdateQuantity(ctx, from.ID, fromQty, from.Status, now); err != nil {
			return err
		}
		if err := itemRepo.UpdateQuantity(ctx, to.ID, toQty, to.Status, now); err != nil {
			return err
		}
		if err := movRepo.Create(ctx, out); err != nil {
			return err
		}
		return movRepo.Create(ctx, inb)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("reference_id", ref).Str("from", in.FromItemID).Str("to", in.ToItemID).Int64("quantity", in.Quantity).Msg("transferencia registrada")
	uc.activity.Record(ctx, actor, entity.ActivityStockTransfer, "inventory_item", in.FromItemID, map[string]any{
		"reference_id": ref,
		"to_item_id":   in.ToItemID,
		"quantity":     in.Quantity,
	})
	return &dto.TransferResponse{
		ReferenceID: ref,
		Outbound:    ToMovementResponse(out),
		Inbound:     ToMovementResponse(inb),
	}, nil
}

// GetItem obtiene un ítem por ID.
func (uc *RegisterMovementUseCase) GetItem(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	r := ToItemResponse(item)
	return &r, nil
}

// ListItems lista ítems con filtros y paginación.
func (uc *RegisterMovementUseCase) ListItems(ctx context.Context, f repository.ItemFilter, page, limit int) (*dto.ItemListResponse, error) {
	page, limit = dto.Normalize(page, limit)
	f.Limit, f.Offset = limit, dto.Offset(page, limit)
	items, total, err := uc.itemRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ToItemResponse(it))
	}
	return &dto.ItemListResponse{Items: out, Page: dto.NewPageMeta(page, limit, total)}, nil
}

// ListBatches lista lotes filtrando por estado y tienda.
func (uc *RegisterMovementUseCase) ListBatches(ctx context.Context, f repository.BatchFilter, page, limit int) (*dto.BatchListResponse, error) {
	page, limit = dto.Normalize(page, limit)
	f.Limit, f.Offset = limit, dto.Offset(page, limit)
	batches, total, err := uc.batchRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, ToBatchResponse(b))
	}
	return &dto.BatchListResponse{Items: out, Page: dto.NewPageMeta(page, limit, total)}, nil
}

func defaultReason(reason, fallback string) string {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return fallback
	}
	return reason
}

// ToBatchResponse mapea entidad a DTO.
func ToBatchResponse(b *entity.InventoryBatch) dto.BatchResponse {
	return dto.BatchResponse{
		ID:          b.ID,
		BatchNumber: b.BatchNumber,
		ProductID:   b.ProductID,
		StoreID:     b.StoreID,
		ExpiryDate:  b.ExpiryDate,
		Status:      b.Status,
		ReceivedAt:  b.ReceivedAt,
		CreatedAt:   b.CreatedAt,
	}
}

// ToItemResponse mapea entidad a DTO.
func ToItemResponse(i *entity.InventoryItem) dto.ItemResponse {
	return dto.ItemResponse{
		ID:              i.ID,
		BatchID:         i.BatchID,
		ProductID:       i.ProductID,
		StoreID:         i.StoreID,
		CurrentQuantity: i.CurrentQuantity,
		Status:          i.Status,
		UpdatedAt:       i.UpdatedAt,
	}
}

// ToMovementResponse mapea entidad a DTO.
func ToMovementResponse(m *entity.InventoryMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:              m.ID,
		InventoryItemID: m.InventoryItemID,
		MovementType:    m.MovementType,
		Quantity:        m.Quantity,
		Reason:          m.Reason,
		ReferenceID:     m.ReferenceID,
		CreatedBy:       m.CreatedBy,
		CreatedAt:       m.CreatedAt,
	}
}
