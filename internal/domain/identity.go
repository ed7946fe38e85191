package domain

// Role distinguishes the two account kinds the application knows about.
type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleManager
}

// Identity is the authenticated caller's uid/email/role triple held for the
// duration of a session. A nil *Identity means logged out.
type Identity struct {
	UID   string
	Email string
	Role  Role
}
