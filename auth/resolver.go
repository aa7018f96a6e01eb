package auth

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// Candidate is an authentication-ready view of a Principal: everything the
// provider needs to verify a login, nothing more.
type Candidate struct {
	Email        string
	PasswordHash string
	Authorities  []string
	Enabled      bool
}

// Resolver converts raw stored principals into authentication candidates.
type Resolver struct {
	store  PrincipalStore
	logger Logger
}

// NewResolver will create a new Resolver
func NewResolver(store PrincipalStore) *Resolver {
	return &Resolver{
		store:  store,
		logger: defLogger{},
	}
}

func (r *Resolver) WithLogger(l Logger) *Resolver {
	if l != nil {
		r.logger = l
	}
	return r
}

// Resolve looks up the principal by email and maps it into a Candidate.
// The not-found detail carries the submitted email; it is only ever
// surfaced to log sinks, the authenticator collapses it before the user
// sees anything.
func (r *Resolver) Resolve(ctx context.Context, email string) (*Candidate, error) {
	principal, err := r.store.FindByEmail(ctx, email)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return nil, notFoundError(email)
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve principal during resolution")
	}

	if principal == nil {
		return nil, notFoundError(email)
	}

	return &Candidate{
		Email:        principal.Email,
		PasswordHash: principal.PasswordHash,
		Authorities:  []string{principal.Role.Authority()},
		Enabled:      principal.Active,
	}, nil
}

func notFoundError(email string) *goerrors.Error {
	return goerrors.New("principal not found with email: "+email, goerrors.CategoryNotFound).
		WithTextCode(TextCodeInvalidCreds).
		WithCode(goerrors.CodeNotFound)
}

