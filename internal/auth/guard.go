package auth

import "github.com/spec-kit/student-approval/internal/domain"

// Route identifies the view a caller ends up on after the guard runs.
type Route string

const (
	RouteLogin   Route = "/login"
	RouteUser    Route = "/user-dashboard"
	RouteManager Route = "/manager-dashboard"
)

// RouteForRole maps a role to its home view. Anything that is not the user
// role lands on the manager view.
func RouteForRole(role domain.Role) Route {
	if role == domain.RoleUser {
		return RouteUser
	}
	return RouteManager
}

// Resolve is the role-gated navigation guard. It is a pure function of the
// identity and the role the requested view demands:
//
//   - no identity: the caller is sent to login;
//   - role mismatch: the caller is redirected to the view matching their
//     actual role;
//   - match: the requested view is rendered.
//
// It must be re-evaluated on every navigation and has no side effects.
func Resolve(identity *domain.Identity, required domain.Role) Route {
	if identity == nil {
		return RouteLogin
	}
	if identity.Role != required {
		return RouteForRole(identity.Role)
	}
	return RouteForRole(required)
}
