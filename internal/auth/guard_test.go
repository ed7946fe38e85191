package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/student-approval/internal/domain"
)

func TestResolve(t *testing.T) {
	user := &domain.Identity{UID: "u1", Email: "u1@test.com", Role: domain.RoleUser}
	manager := &domain.Identity{UID: "m1", Email: "m1@test.com", Role: domain.RoleManager}

	tests := []struct {
		name     string
		identity *domain.Identity
		required domain.Role
		want     Route
	}{
		{"no identity, user view", nil, domain.RoleUser, RouteLogin},
		{"no identity, manager view", nil, domain.RoleManager, RouteLogin},
		{"user requesting user view", user, domain.RoleUser, RouteUser},
		{"user requesting manager view", user, domain.RoleManager, RouteUser},
		{"manager requesting manager view", manager, domain.RoleManager, RouteManager},
		{"manager requesting user view", manager, domain.RoleUser, RouteManager},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.identity, tt.required))
		})
	}
}

func TestResolve_IsPure(t *testing.T) {
	user := &domain.Identity{UID: "u1", Role: domain.RoleUser}

	first := Resolve(user, domain.RoleManager)
	second := Resolve(user, domain.RoleManager)

	assert.Equal(t, first, second)
	assert.Equal(t, domain.RoleUser, user.Role, "guard must not mutate the identity")
}

func TestRouteForRole_UnknownRoleFallsBackToManager(t *testing.T) {
	assert.Equal(t, RouteManager, RouteForRole(domain.Role("admin")))
}
