package auth_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/Farmadist-api/internal/domain/entity"
)

type userRepoMock struct{ mock.Mock }

func (m *userRepoMock) Create(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *userRepoMock) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *userRepoMock) Update(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *userRepoMock) List(ctx context.Context, limit, offset int) ([]*entity.User, int, error) {
	args := m.Called(ctx, limit, offset)
	list, _ := args.Get(0).([]*entity.User)
	return list, args.Int(1), args.Error(2)
}

func (m *userRepoMock) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type roleRepoMock struct{ mock.Mock }

func (m *roleRepoMock) Create(ctx context.Context, r *entity.Role) error {
	return m.Called(ctx, r).Error(0)
}

func (m *roleRepoMock) GetByID(ctx context.Context, id string) (*entity.Role, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*entity.Role)
	return r, args.Error(1)
}

func (m *roleRepoMock) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	args := m.Called(ctx, name)
	r, _ := args.Get(0).(*entity.Role)
	return r, args.Error(1)
}

func (m *roleRepoMock) List(ctx context.Context) ([]*entity.Role, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*entity.Role)
	return list, args.Error(1)
}

// memSessions repositorio de sesiones en memoria.
type memSessions struct {
	mu   sync.Mutex
	rows map[string]entity.Session
}

func newMemSessions() *memSessions { return &memSessions{rows: map[string]entity.Session{}} }

func (r *memSessions) Create(_ context.Context, s *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[s.ID] = *s
	return nil
}

func (r *memSessions) GetByID(_ context.Context, id string) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *memSessions) UpdateCSRF(_ context.Context, id, token string, exp time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.rows[id]
	s.CSRFToken, s.CSRFTokenExpiresAt = token, &exp
	r.rows[id] = s
	return nil
}

func (r *memSessions) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

func (r *memSessions) ClearExpiredCSRF(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, s := range r.rows {
		if s.CSRFTokenExpiresAt != nil && !now.Before(*s.CSRFTokenExpiresAt) {
			s.CSRFToken, s.CSRFTokenExpiresAt = "", nil
			r.rows[id] = s
			n++
		}
	}
	return n, nil
}

func (r *memSessions) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, s := range r.rows {
		if !now.Before(s.ExpiresAt) {
			delete(r.rows, id)
			n++
		}
	}
	return n, nil
}
