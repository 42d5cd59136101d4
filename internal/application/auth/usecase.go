package auth

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Farmadist-api/internal/application/dto"
	"github.com/jhoicas/Farmadist-api/internal/application/ports"
	"github.com/jhoicas/Farmadist-api/internal/domain"
	"github.com/jhoicas/Farmadist-api/internal/domain/entity"
	"github.com/jhoicas/Farmadist-api/internal/domain/repository"
)

// MinPasswordLength longitud mínima de contraseña.
const MinPasswordLength = 8

// LoginResult respuesta del login más lo que el handler necesita para las cookies.
type LoginResult struct {
	Response    dto.LoginResponse
	Session     *entity.Session
	SignedToken string
}

// AuthUseCase casos de uso de autenticación: registro, login, logout y sesión actual.
type AuthUseCase struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	sessions *SessionService
	activity ports.ActivityRecorder
	log      zerolog.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	sessions *SessionService,
	activity ports.ActivityRecorder,
	log zerolog.Logger,
) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, roleRepo: roleRepo, sessions: sessions, activity: activity, log: log}
}

// NormalizeEmail minúsculas y sin espacios.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateCredentials formato de email y longitud de contraseña.
func ValidateCredentials(email, password string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.ErrInvalidInput
	}
	if len(password) < MinPasswordLength {
		return domain.ErrInvalidInput
	}
	return nil
}

// Register crea un usuario: hashea password con bcrypt y persiste. Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) Register(ctx context.Context, actor ports.Actor, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if err := ValidateCredentials(email, in.Password); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	roleName := in.Role
	if roleName == "" {
		roleName = entity.RoleStaff
	}
	role, err := uc.roleRepo.GetByName(ctx, roleName)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		RoleID:       role.ID,
		RoleName:     role.Name,
		StoreID:      in.StoreID,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.activity.Record(ctx, actor, entity.ActivityRegister, "user", user.ID, map[string]string{"email": email, "role": role.Name})
	return toUserResponse(user), nil
}

// Login verifica email/password, abre una sesión y retorna el JWT de la cookie más el token CSRF.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest, meta SessionMeta) (*LoginResult, error) {
	user, err := uc.userRepo.GetByEmail(ctx, NormalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive() {
		return nil, domain.ErrForbidden
	}
	issued, err := uc.sessions.Issue(ctx, user, meta)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("ip", meta.IP).Msg("login")
	uc.activity.Record(ctx, ports.Actor{UserID: user.ID, IP: meta.IP}, entity.ActivityLogin, "session", issued.Session.ID, nil)
	return &LoginResult{
		Response: dto.LoginResponse{
			User:               *toUserResponse(user),
			CSRFToken:          issued.Session.CSRFToken,
			CSRFTokenExpiresAt: *issued.Session.CSRFTokenExpiresAt,
			ExpiresAt:          issued.Session.ExpiresAt,
		},
		Session:     issued.Session,
		SignedToken: issued.SignedToken,
	}, nil
}

// Logout revoca la sesión.
func (uc *AuthUseCase) Logout(ctx context.Context, actor ports.Actor, sessionID string) error {
	if err := uc.sessions.Revoke(ctx, sessionID); err != nil {
		return err
	}
	uc.activity.Record(ctx, actor, entity.ActivityLogout, "session", sessionID, nil)
	return nil
}

// Me devuelve el usuario de la sesión.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// RefreshCSRF rota el token CSRF de la sesión.
func (uc *AuthUseCase) RefreshCSRF(ctx context.Context, sess *entity.Session) (*dto.CSRFResponse, error) {
	if err := uc.sessions.RotateCSRF(ctx, sess); err != nil {
		return nil, err
	}
	return &dto.CSRFResponse{CSRFToken: sess.CSRFToken, CSRFTokenExpiresAt: *sess.CSRFTokenExpiresAt}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.RoleName,
		StoreID:   u.StoreID,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
