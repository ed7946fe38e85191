package domain

import "time"

// Account holds the credential half of an identity.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Profile is the user profile document created once at sign-up. The role is
// never changed by the application afterwards. An account without a profile
// cannot establish a session.
type Profile struct {
	UID       string
	Email     string
	Role      Role
	CreatedAt time.Time
}

// Identity resolves the session identity shape from the profile.
func (p *Profile) Identity() *Identity {
	return &Identity{UID: p.UID, Email: p.Email, Role: p.Role}
}
