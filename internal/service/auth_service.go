package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/student-approval/internal/auth"
	"github.com/spec-kit/student-approval/internal/config"
	"github.com/spec-kit/student-approval/internal/domain"
	"github.com/spec-kit/student-approval/internal/repository"
	"github.com/spec-kit/student-approval/internal/session"
)

// ErrProfileNotFound is returned when an account authenticates but has no
// profile document. Sign-in must not establish a session in that case.
var ErrProfileNotFound = errors.New("user data not found")

// ErrInvalidCredentials covers unknown emails and wrong passwords alike.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService coordinates sign-up, sign-in and session lifecycle.
type AuthService struct {
	accounts   repository.AccountRepository
	profiles   repository.ProfileRepository
	sessions   session.Store
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	AccountRepo  repository.AccountRepository
	ProfileRepo  repository.ProfileRepository
	SessionStore session.Store
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		accounts:   deps.AccountRepo,
		profiles:   deps.ProfileRepo,
		sessions:   deps.SessionStore,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// SignUp creates the account plus its profile document and opens a session.
// Sign-up and sign-in both resolve to the same identity shape.
func (s *AuthService) SignUp(ctx context.Context, email, password string, role domain.Role) (*domain.Identity, string, time.Time, error) {
	if !role.Valid() {
		return nil, "", time.Time{}, errors.New("unknown role")
	}
	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, errors.New("email already registered")
	} else if err != nil && err != pgx.ErrNoRows {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	account := &domain.Account{Email: email, PasswordHash: hash}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, "", time.Time{}, err
	}

	profile := &domain.Profile{UID: account.ID, Email: email, Role: role}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, "", time.Time{}, err
	}

	return s.openSession(ctx, profile.Identity())
}

// SignIn authenticates credentials and restores the profile. An account
// without a profile row is a hard error and no session is opened.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.Identity, string, time.Time, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, ErrInvalidCredentials
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	profile, err := s.profiles.GetByUID(ctx, account.ID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, ErrProfileNotFound
		}
		return nil, "", time.Time{}, err
	}

	return s.openSession(ctx, profile.Identity())
}

// SignOut tears the session down.
func (s *AuthService) SignOut(ctx context.Context, sessionID string) error {
	return s.sessions.Clear(ctx, sessionID)
}

func (s *AuthService) openSession(ctx context.Context, identity *domain.Identity) (*domain.Identity, string, time.Time, error) {
	sessionID := uuid.NewString()
	if err := s.sessions.Save(ctx, sessionID, identity); err != nil {
		return nil, "", time.Time{}, err
	}
	token, exp, err := s.tokenMgr.GenerateToken(identity, sessionID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return identity, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
