package inventory_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Farmadist-api/internal/domain/entity"
	"github.com/jhoicas/Farmadist-api/internal/domain/repository"
)

// memStore almacén en memoria que implementa los repositorios de inventario y TxRunner.
// Run trabaja sobre una copia y solo la publica si fn no devuelve error (rollback implícito).
type memStore struct {
	mu        sync.Mutex
	batches   map[string]entity.InventoryBatch
	items     map[string]entity.InventoryItem
	movements []entity.InventoryMovement
	failOn    string              // id de lote cuyo MarkExpired falla
	onLock    func(itemID string) // se llama en cada GetForUpdate
}

func newMemStore() *memStore {
	return &memStore{
		batches: map[string]entity.InventoryBatch{},
		items:   map[string]entity.InventoryItem{},
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.batches {
		c.batches[k] = v
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	c.movements = append(c.movements, s.movements...)
	c.failOn = s.failOn
	c.onLock = s.onLock
	return c
}

func (s *memStore) Run(ctx context.Context, fn func(
	repository.InventoryBatchRepository,
	repository.InventoryItemRepository,
	repository.InventoryMovementRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := s.clone()
	if err := fn(batchRepo{tx}, itemRepo{tx}, movRepo{tx}); err != nil {
		return err
	}
	s.batches, s.items, s.movements = tx.batches, tx.items, tx.movements
	return nil
}

func (s *memStore) item(id string) entity.InventoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[id]
}

func (s *memStore) batch(id string) entity.InventoryBatch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batches[id]
}

func (s *memStore) movementsOf(itemID string) []entity.InventoryMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.InventoryMovement
	for _, m := range s.movements {
		if m.InventoryItemID == itemID {
			out = append(out, m)
		}
	}
	return out
}

// ── batches ───────────────────────────────────────────────────────────────────

type batchRepo struct{ s *memStore }

func (r batchRepo) Create(_ context.Context, b *entity.InventoryBatch) error {
	r.s.batches[b.ID] = *b
	return nil
}

func (r batchRepo) GetByID(_ context.Context, id string) (*entity.InventoryBatch, error) {
	b, ok := r.s.batches[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r batchRepo) List(_ context.Context, f repository.BatchFilter) ([]*entity.InventoryBatch, int, error) {
	var out []*entity.InventoryBatch
	for _, b := range r.s.batches {
		b := b
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		out = append(out, &b)
	}
	return out, len(out), nil
}

func (r batchRepo) ListExpirable(_ context.Context, now time.Time) ([]*entity.InventoryBatch, error) {
	var out []*entity.InventoryBatch
	for _, b := range r.s.batches {
		b := b
		if b.Status == entity.StatusActive && b.ExpiryDate.Before(now) {
			out = append(out, &b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r batchRepo) MarkExpired(_ context.Context, id string, now time.Time) (bool, error) {
	if id == r.s.failOn {
		return false, errBoom
	}
	b, ok := r.s.batches[id]
	if !ok || b.Status != entity.StatusActive {
		return false, nil
	}
	b.Status = entity.StatusExpired
	b.UpdatedAt = now
	r.s.batches[id] = b
	return true, nil
}

// ── items ─────────────────────────────────────────────────────────────────────

type itemRepo struct{ s *memStore }

func (r itemRepo) Create(_ context.Context, it *entity.InventoryItem) error {
	r.s.items[it.ID] = *it
	return nil
}

func (r itemRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (r itemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	if r.s.onLock != nil {
		r.s.onLock(id)
	}
	return r.GetByID(ctx, id)
}

func (r itemRepo) ListActiveByBatchForUpdate(_ context.Context, batchID string) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, it := range r.s.items {
		it := it
		if it.BatchID == batchID && it.Status == entity.StatusActive {
			out = append(out, &it)
		}
	}
	return out, nil
}

func (r itemRepo) UpdateQuantity(_ context.Context, id string, qty int64, status string, now time.Time) error {
	it := r.s.items[id]
	it.CurrentQuantity, it.Status, it.UpdatedAt = qty, status, now
	r.s.items[id] = it
	return nil
}

func (r itemRepo) List(_ context.Context, f repository.ItemFilter) ([]*entity.InventoryItem, int, error) {
	var out []*entity.InventoryItem
	for _, it := range r.s.items {
		it := it
		if f.BatchID != "" && it.BatchID != f.BatchID {
			continue
		}
		out = append(out, &it)
	}
	return out, len(out), nil
}

// ── movements ─────────────────────────────────────────────────────────────────

type movRepo struct{ s *memStore }

func (r movRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r movRepo) ListNewestFirst(_ context.Context, f repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.s.movements {
		m := m
		if f.InventoryItemID != nil && m.InventoryItemID != *f.InventoryItemID {
			continue
		}
		if f.DateFrom != nil && m.CreatedAt.Before(*f.DateFrom) {
			continue
		}
		if f.DateTo != nil && m.CreatedAt.After(*f.DateTo) {
			continue
		}
		out = append(out, &m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// movRepo expone el libro fuera de una transacción, con el lock del almacén.
func (s *memStore) movRepo() repository.InventoryMovementRepository { return lockedMov{s} }

type lockedMov struct{ s *memStore }

func (r lockedMov) Create(ctx context.Context, m *entity.InventoryMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return movRepo{r.s}.Create(ctx, m)
}

func (r lockedMov) ListNewestFirst(ctx context.Context, f repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return movRepo{r.s}.ListNewestFirst(ctx, f)
}

// ── products / stores ─────────────────────────────────────────────────────────

type productRepo struct{ byID map[string]*entity.Product }

func (r productRepo) Create(context.Context, *entity.Product) error { return nil }
func (r productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.byID[id], nil
}
func (r productRepo) GetBySKU(context.Context, string) (*entity.Product, error) { return nil, nil }
func (r productRepo) Update(context.Context, *entity.Product) error            { return nil }
func (r productRepo) List(context.Context, string, int, int) ([]*entity.Product, int, error) {
	return nil, 0, nil
}
func (r productRepo) Delete(context.Context, string) error { return nil }

type storeRepo struct{ byID map[string]*entity.Store }

func (r storeRepo) Create(context.Context, *entity.Store) error { return nil }
func (r storeRepo) GetByID(_ context.Context, id string) (*entity.Store, error) {
	return r.byID[id], nil
}
func (r storeRepo) Update(context.Context, *entity.Store) error { return nil }
func (r storeRepo) List(context.Context, int, int) ([]*entity.Store, int, error) {
	return nil, 0, nil
}
func (r storeRepo) Delete(context.Context, string) error { return nil }
