package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/student-approval/internal/domain"
	"github.com/spec-kit/student-approval/internal/session"
	apperrors "github.com/spec-kit/student-approval/pkg/util"
)

const identityKey = "auth_identity"
const sessionKey = "auth_session_id"

// Middleware validates bearer tokens and restores session identities.
type Middleware struct {
	tokens   *TokenManager
	sessions session.Store
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, sessions session.Store) *Middleware {
	return &Middleware{tokens: tokens, sessions: sessions}
}

// Handle enforces authentication for protected routes. The token alone is not
// enough: the session it names must still exist, so logout takes effect
// before token expiry.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	identity, sessionID, err := m.restore(c)
	if err != nil {
		return err
	}
	if identity == nil {
		return apperrors.NewUnauthorized("session expired or cleared")
	}
	c.Locals(identityKey, identity)
	c.Locals(sessionKey, sessionID)
	return c.Next()
}

// Optional restores the identity when a valid token is present but lets
// anonymous callers through. Used by the navigation resolver, which must
// answer for logged-out callers too.
func (m *Middleware) Optional(c *fiber.Ctx) error {
	if c.Get(fiber.HeaderAuthorization) == "" {
		return c.Next()
	}
	identity, sessionID, err := m.restore(c)
	if err != nil || identity == nil {
		return c.Next()
	}
	c.Locals(identityKey, identity)
	c.Locals(sessionKey, sessionID)
	return c.Next()
}

func (m *Middleware) restore(c *fiber.Ctx) (*domain.Identity, string, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return nil, "", apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, "", apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return nil, "", apperrors.NewUnauthorized("invalid token")
	}

	identity, err := m.sessions.Restore(c.Context(), claims.SessionID)
	if err != nil {
		return nil, "", apperrors.MapError(err)
	}
	return identity, claims.SessionID, nil
}

// IdentityFromContext retrieves the restored identity, if any.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*domain.Identity)
	return identity, ok
}

// SessionIDFromContext retrieves the session id for the current request.
func SessionIDFromContext(c *fiber.Ctx) (string, bool) {
	val := c.Locals(sessionKey)
	if val == nil {
		return "", false
	}
	id, ok := val.(string)
	return id, ok
}
