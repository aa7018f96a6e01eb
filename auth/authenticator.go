package auth

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// Authenticator verifies submitted credentials against a resolved
// candidate and produces an authenticated Subject or a typed failure.
type Authenticator struct {
	resolver *Resolver
	logger   Logger
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(resolver *Resolver) *Authenticator {
	return &Authenticator{
		resolver: resolver,
		logger:   defLogger{},
	}
}

func (a *Authenticator) WithLogger(l Logger) *Authenticator {
	if l != nil {
		a.logger = l
	}
	return a
}

// Authenticate resolves the candidate, checks the active flag, then
// verifies the password. Unknown email and wrong password both come back
// as ErrBadCredentials so a caller cannot probe for registered addresses.
// A disabled account is ErrAccountDisabled internally; the login page
// renders it with the same generic banner.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (*Subject, error) {
	candidate, err := a.resolver.Resolve(ctx, email)
	if err != nil {
		if goerrors.IsNotFound(err) {
			a.logger.Debug("authenticate: unknown principal", "error", err)
			return nil, ErrBadCredentials
		}
		return nil, err
	}

	if !candidate.Enabled {
		a.logger.Warn("authenticate: blocked disabled account", "email", candidate.Email)
		return nil, ErrAccountDisabled
	}

	if err := ComparePasswordAndHash(password, candidate.PasswordHash); err != nil {
		return nil, ErrBadCredentials
	}

	return &Subject{
		Email:       candidate.Email,
		Authorities: candidate.Authorities,
		Enabled:     true,
	}, nil
}
