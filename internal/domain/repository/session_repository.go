package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Farmadist-api/internal/domain/entity"
)

// SessionRepository persistencia de sesiones y tokens CSRF.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	UpdateCSRF(ctx context.Context, sessionID, csrfToken string, expiresAt time.Time) error
	Delete(ctx context.Context, id string) error
	// ClearExpiredCSRF vacía csrf_token donde csrf_token_expires_at <= now. Devuelve filas afectadas.
	ClearExpiredCSRF(ctx context.Context, now time.Time) (int64, error)
	// DeleteExpired borra sesiones con expires_at <= now. Devuelve filas afectadas.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
