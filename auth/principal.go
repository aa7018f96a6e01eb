package auth

import (
	"context"
	"time"
)

// Principal is the stored identity the credential store hands back:
// credentials, role, and whether the account may authenticate at all.
type Principal struct {
	ID           int64
	FullName     string
	Email        string
	PasswordHash string
	Role         Role
	Active       bool
	CreatedAt    time.Time
}

// PrincipalStore is the lookup contract the core consumes. The concrete
// implementation lives in the store package; the core only ever reads.
type PrincipalStore interface {
	FindByEmail(ctx context.Context, email string) (*Principal, error)
}

// Subject is the in-memory representation of an authenticated principal
// for the life of a request or session. It is never persisted; it is
// recomputed from the Principal on every authentication.
type Subject struct {
	Email       string   `json:"email"`
	Authorities []string `json:"authorities"`
	Enabled     bool     `json:"enabled"`
}

// HasAuthority reports whether the subject carries the given authority
// string (e.g. ROLE_ADMIN).
func (s *Subject) HasAuthority(authority string) bool {
	if s == nil {
		return false
	}
	for _, a := range s.Authorities {
		if a == authority {
			return true
		}
	}
	return false
}

// HasRole is HasAuthority over the role's derived authority string.
func (s *Subject) HasRole(role Role) bool {
	return s.HasAuthority(role.Authority())
}
