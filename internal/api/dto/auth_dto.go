package dto

import (
	"time"

	"github.com/spec-kit/student-approval/internal/domain"
)

// SignUpRequest payload.
type SignUpRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// SignInRequest payload.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// IdentityResponse is the session identity shape shared by sign-up, sign-in
// and the session probe.
type IdentityResponse struct {
	UID   string      `json:"uid"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// AuthResponse wraps an issued token.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IdentityFromDomain maps the domain identity.
func IdentityFromDomain(identity *domain.Identity) IdentityResponse {
	return IdentityResponse{UID: identity.UID, Email: identity.Email, Role: identity.Role}
}
