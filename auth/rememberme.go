package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

// RememberMe issues and validates the long-lived token that lets a
// returning browser back in without a password.
//
// The token is a single signature over {email, expiry} keyed by a shared
// secret: there is no persisted series/token pair and no rotation, so a
// stolen token is usable until expiry. That is the documented trade-off,
// not an oversight.
type RememberMe struct {
	key      []byte
	validity time.Duration
	issuer   string
	resolver *Resolver
	logger   Logger
	now      func() time.Time
}

// RememberMeOption customizes RememberMe construction.
type RememberMeOption func(*RememberMe)

// WithRememberMeClock injects a custom clock (useful for tests).
func WithRememberMeClock(clock func() time.Time) RememberMeOption {
	return func(r *RememberMe) {
		if clock != nil {
			r.now = clock
		}
	}
}

// NewRememberMe creates a remember-me token manager
func NewRememberMe(cfg Config, resolver *Resolver, opts ...RememberMeOption) *RememberMe {
	r := &RememberMe{
		key:      []byte(cfg.RememberMeKey),
		validity: cfg.RememberMeValidity,
		issuer:   cfg.Issuer,
		resolver: resolver,
		logger:   defLogger{},
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *RememberMe) WithLogger(l Logger) *RememberMe {
	if l != nil {
		r.logger = l
	}
	return r
}

// Issue signs a remember-me token binding the subject's email to an
// expiry at the configured validity window.
func (r *RememberMe) Issue(subject *Subject) (string, error) {
	if subject == nil {
		return "", goerrors.New("subject must not be nil", goerrors.CategoryInternal)
	}

	now := r.now()
	claims := &jwt.RegisteredClaims{
		Issuer:    r.issuer,
		Subject:   subject.Email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(r.validity)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(r.key)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sign remember-me token")
	}
	return signed, nil
}

// Validate checks the token signature and expiry, then re-resolves the
// principal to make sure it still exists and is active. Every failure
// path degrades to ErrRememberMeInvalid: the guard treats that as "no
// cookie" and the request proceeds anonymously. The token value itself is
// never logged.
func (r *RememberMe) Validate(ctx context.Context, raw string) (*Subject, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return r.key, nil
	}, jwt.WithIssuer(r.issuer), jwt.WithTimeFunc(r.now))

	if err != nil || !token.Valid {
		r.logger.Debug("remember-me rejected", "reason", "signature or expiry")
		return nil, ErrRememberMeInvalid
	}

	candidate, err := r.resolver.Resolve(ctx, claims.Subject)
	if err != nil {
		r.logger.Debug("remember-me rejected", "reason", "principal lookup failed")
		return nil, ErrRememberMeInvalid
	}

	if !candidate.Enabled {
		r.logger.Warn("remember-me rejected for disabled account", "email", candidate.Email)
		return nil, ErrRememberMeInvalid
	}

	return &Subject{
		Email:       candidate.Email,
		Authorities: candidate.Authorities,
		Enabled:     true,
	}, nil
}

// Validity reports the configured validity window, which the guard uses
// for the cookie expiry.
func (r *RememberMe) Validity() time.Duration {
	return r.validity
}
