package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Farmadist-api/internal/domain/entity"
	"github.com/jhoicas/Farmadist-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo sesiones y tokens CSRF sobre PostgreSQL.
type SessionRepo struct {
	q Querier
}

// NewSessionRepository construye el adaptador.
func NewSessionRepository(q Querier) *SessionRepo {
	return &SessionRepo{q: q}
}

// Create persiste una sesión.
func (r *SessionRepo) Create(ctx context.Context, s *entity.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, token, csrf_token, csrf_token_expires_at, expires_at, user_agent, ip, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.UserID, s.Token, nullable(s.CSRFToken), s.CSRFTokenExpiresAt, s.ExpiresAt, s.UserAgent, s.IP, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// GetByID obtiene una sesión. Devuelve nil, nil si no existe.
func (r *SessionRepo) GetByID(ctx context.Context, id string) (*entity.Session, error) {
	query := `
		SELECT id, user_id, token, csrf_token, csrf_token_expires_at, expires_at, user_agent, ip, created_at
		FROM sessions WHERE id = $1`
	var s entity.Session
	var csrf *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.UserID, &s.Token, &csrf, &s.CSRFTokenExpiresAt, &s.ExpiresAt, &s.UserAgent, &s.IP, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	s.CSRFToken = deref(csrf)
	return &s, nil
}

// UpdateCSRF reemplaza el token CSRF y su expiración.
func (r *SessionRepo) UpdateCSRF(ctx context.Context, sessionID, csrfToken string, expiresAt time.Time) error {
	_, err := r.q.Exec(ctx,
		`UPDATE sessions SET csrf_token = $2, csrf_token_expires_at = $3 WHERE id = $1`,
		sessionID, csrfToken, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("update csrf: %w", err)
	}
	return nil
}

// Delete borra la sesión; borrar una inexistente no es error.
func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// ClearExpiredCSRF vacía tokens CSRF vencidos.
func (r *SessionRepo) ClearExpiredCSRF(ctx context.Context, now time.Time) (int64, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE sessions SET csrf_token = NULL, csrf_token_expires_at = NULL
		WHERE csrf_token_expires_at IS NOT NULL AND csrf_token_expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("clear expired csrf: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// DeleteExpired borra sesiones caducadas.
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return cmd.RowsAffected(), nil
}
