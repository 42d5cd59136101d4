package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Farmadist-api/internal/domain"
	"github.com/jhoicas/Farmadist-api/internal/domain/entity"
	"github.com/jhoicas/Farmadist-api/internal/domain/repository"
	pkgjwt "github.com/jhoicas/Farmadist-api/pkg/jwt"
)

// SessionConfig parámetros de emisión de sesiones.
type SessionConfig struct {
	JWTSecret string
	Issuer    string
	TTL       time.Duration
	CSRFTTL   time.Duration
}

// SessionMeta datos del cliente que abre la sesión.
type SessionMeta struct {
	UserAgent string
	IP        string
}

// IssuedSession sesión recién creada más el JWT que viaja en la cookie.
type IssuedSession struct {
	Session     *entity.Session
	SignedToken string
}

// SessionService emite, resuelve y revoca sesiones con token CSRF de doble envío.
// El JWT solo identifica la sesión; la fila en sessions decide si sigue viva.
type SessionService struct {
	repo repository.SessionRepository
	cfg  SessionConfig
	log  zerolog.Logger
	now  func() time.Time
}

// NewSessionService construye el servicio.
func NewSessionService(repo repository.SessionRepository, cfg SessionConfig, log zerolog.Logger) *SessionService {
	return &SessionService{repo: repo, cfg: cfg, log: log, now: time.Now}
}

// randomToken 32 bytes de crypto/rand en hexadecimal.
func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("token aleatorio: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Issue crea la sesión con su token CSRF y firma el JWT de la cookie.
func (s *SessionService) Issue(ctx context.Context, user *entity.User, meta SessionMeta) (*IssuedSession, error) {
	token, err := randomToken()
	if err != nil {
		return nil, err
	}
	csrf, err := randomToken()
	if err != nil {
		return nil, err
	}
	now := s.now()
	csrfExp := now.Add(s.cfg.CSRFTTL)
	sess := &entity.Session{
		ID:                 uuid.New().String(),
		UserID:             user.ID,
		Token:              token,
		CSRFToken:          csrf,
		CSRFTokenExpiresAt: &csrfExp,
		ExpiresAt:          now.Add(s.cfg.TTL),
		UserAgent:          meta.UserAgent,
		IP:                 meta.IP,
		CreatedAt:          now,
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return nil, err
	}
	signed, err := pkgjwt.Generate(s.cfg.JWTSecret, s.cfg.Issuer, user.ID, sess.ID, user.RoleName, sess.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return &IssuedSession{Session: sess, SignedToken: signed}, nil
}

// Resolve valida el JWT y carga la sesión. Una sesión borrada o caducada es ErrSessionExpired.
func (s *SessionService) Resolve(ctx context.Context, signed string) (*entity.Session, *pkgjwt.Claims, error) {
	if signed == "" {
		return nil, nil, domain.ErrUnauthorized
	}
	claims, err := pkgjwt.Parse(s.cfg.JWTSecret, signed)
	if err != nil {
		return nil, nil, domain.ErrUnauthorized
	}
	sess, err := s.repo.GetByID(ctx, claims.SessionID)
	if err != nil {
		return nil, nil, err
	}
	if sess == nil || sess.UserID != claims.UserID || sess.Expired(s.now()) {
		return nil, nil, domain.ErrSessionExpired
	}
	return sess, claims, nil
}

// RotateCSRF emite un token CSRF nuevo para la sesión.
func (s *SessionService) RotateCSRF(ctx context.Context, sess *entity.Session) error {
	csrf, err := randomToken()
	if err != nil {
		return err
	}
	exp := s.now().Add(s.cfg.CSRFTTL)
	if err := s.repo.UpdateCSRF(ctx, sess.ID, csrf, exp); err != nil {
		return err
	}
	sess.CSRFToken = csrf
	sess.CSRFTokenExpiresAt = &exp
	return nil
}

// ValidateCSRF comprobación de doble envío: cookie y cabecera iguales, iguales al token guardado y vigente.
func (s *SessionService) ValidateCSRF(sess *entity.Session, cookieValue, headerValue string) error {
	if sess == nil || cookieValue == "" || headerValue == "" {
		return domain.ErrCSRFMismatch
	}
	if sess.CSRFExpired(s.now()) {
		return domain.ErrCSRFMismatch
	}
	if subtle.ConstantTimeCompare([]byte(cookieValue), []byte(headerValue)) != 1 {
		return domain.ErrCSRFMismatch
	}
	if subtle.ConstantTimeCompare([]byte(headerValue), []byte(sess.CSRFToken)) != 1 {
		return domain.ErrCSRFMismatch
	}
	return nil
}

// Revoke borra la sesión (logout).
func (s *SessionService) Revoke(ctx context.Context, sessionID string) error {
	return s.repo.Delete(ctx, sessionID)
}

// CleanupExpiredCSRF retira tokens CSRF vencidos y borra sesiones caducadas.
func (s *SessionService) CleanupExpiredCSRF(ctx context.Context) (cleared, deleted int64, err error) {
	now := s.now()
	cleared, err = s.repo.ClearExpiredCSRF(ctx, now)
	if err != nil {
		s.log.Error().Err(err).Msg("csrf cleanup: no se pudieron limpiar tokens")
		return 0, 0, err
	}
	deleted, err = s.repo.DeleteExpired(ctx, now)
	if err != nil {
		s.log.Error().Err(err).Msg("csrf cleanup: no se pudieron borrar sesiones caducadas")
		return cleared, 0, err
	}
	s.log.Info().Int64("csrf_cleared", cleared).Int64("sessions_deleted", deleted).Msg("csrf cleanup terminado")
	return cleared, deleted, nil
}
