package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/student-approval/internal/config"
	"github.com/spec-kit/student-approval/internal/domain"
)

func setupAuthService() (*AuthService, *mockAccountRepo, *mockProfileRepo, *memorySessionStore) {
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            bcrypt.MinCost,
		},
	}
	accounts := newMockAccountRepo()
	profiles := newMockProfileRepo()
	sessions := newMemorySessionStore()
	svc := NewAuthService(cfg, AuthDependencies{
		AccountRepo:  accounts,
		ProfileRepo:  profiles,
		SessionStore: sessions,
	})
	return svc, accounts, profiles, sessions
}

func TestSignUp_CreatesAccountProfileAndSession(t *testing.T) {
	svc, accounts, profiles, sessions := setupAuthService()

	identity, token, exp, err := svc.SignUp(context.Background(), "u1@test.com", "secret", domain.RoleUser)
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, "u1@test.com", identity.Email)
	assert.Equal(t, domain.RoleUser, identity.Role)
	assert.NotEmpty(t, token)
	assert.False(t, exp.IsZero())

	account, err := accounts.GetByEmail(context.Background(), "u1@test.com")
	require.NoError(t, err)
	profile, err := profiles.GetByUID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, profile.Role)
	assert.Len(t, sessions.sessions, 1)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	svc, _, _, _ := setupAuthService()
	_, _, _, err := svc.SignUp(context.Background(), "u1@test.com", "secret", domain.RoleUser)
	require.NoError(t, err)

	_, _, _, err = svc.SignUp(context.Background(), "u1@test.com", "other", domain.RoleManager)
	assert.Error(t, err)
}

func TestSignUp_UnknownRole(t *testing.T) {
	svc, _, _, _ := setupAuthService()
	_, _, _, err := svc.SignUp(context.Background(), "u1@test.com", "secret", domain.Role("admin"))
	assert.Error(t, err)
}

func TestSignIn_ResolvesSameIdentityShape(t *testing.T) {
	svc, _, _, _ := setupAuthService()
	signedUp, _, _, err := svc.SignUp(context.Background(), "m1@test.com", "secret", domain.RoleManager)
	require.NoError(t, err)

	signedIn, token, _, err := svc.SignIn(context.Background(), "m1@test.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, signedUp.UID, signedIn.UID)
	assert.Equal(t, signedUp.Email, signedIn.Email)
	assert.Equal(t, signedUp.Role, signedIn.Role)
	assert.NotEmpty(t, token)
}

func TestSignIn_WrongPassword(t *testing.T) {
	svc, _, _, _ := setupAuthService()
	_, _, _, err := svc.SignUp(context.Background(), "u1@test.com", "secret", domain.RoleUser)
	require.NoError(t, err)

	_, _, _, err = svc.SignIn(context.Background(), "u1@test.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignIn_UnknownEmail(t *testing.T) {
	svc, _, _, _ := setupAuthService()
	_, _, _, err := svc.SignIn(context.Background(), "ghost@test.com", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignIn_MissingProfileIsHardError(t *testing.T) {
	svc, accounts, _, sessions := setupAuthService()

	// Account exists but the profile document was never created.
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, accounts.Create(context.Background(), &domain.Account{
		Email:        "orphan@test.com",
		PasswordHash: string(hash),
	}))

	identity, _, _, err := svc.SignIn(context.Background(), "orphan@test.com", "secret")
	assert.ErrorIs(t, err, ErrProfileNotFound)
	assert.Nil(t, identity)
	assert.Empty(t, sessions.sessions, "no session may be established")
}

func TestSignOut_ClearsSession(t *testing.T) {
	svc, _, _, sessions := setupAuthService()
	_, token, _, err := svc.SignUp(context.Background(), "u1@test.com", "secret", domain.RoleUser)
	require.NoError(t, err)
	require.Len(t, sessions.sessions, 1)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(context.Background(), claims.SessionID))
	assert.Empty(t, sessions.sessions)

	restored, err := sessions.Restore(context.Background(), claims.SessionID)
	require.NoError(t, err)
	assert.Nil(t, restored, "a cleared session restores to logged out")
}
