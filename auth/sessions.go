package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

// SessionClaims is the payload carried by the session cookie.
type SessionClaims struct {
	jwt.RegisteredClaims
	Authorities []string `json:"authorities,omitempty"`
}

// Sessions issues and parses the signed token the session cookie carries.
// The cookie is opaque to the browser; only this service can mint or read
// it.
type Sessions struct {
	signingKey []byte
	ttl        time.Duration
	issuer     string
	logger     Logger
	now        func() time.Time
}

// SessionsOption customizes Sessions construction.
type SessionsOption func(*Sessions)

// WithSessionsClock injects a custom clock (useful for tests).
func WithSessionsClock(clock func() time.Time) SessionsOption {
	return func(s *Sessions) {
		if clock != nil {
			s.now = clock
		}
	}
}

// NewSessions creates a new session token service
func NewSessions(cfg Config, opts ...SessionsOption) *Sessions {
	s := &Sessions{
		signingKey: []byte(cfg.SigningKey),
		ttl:        cfg.SessionTTL,
		issuer:     cfg.Issuer,
		logger:     defLogger{},
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Sessions) WithLogger(l Logger) *Sessions {
	if l != nil {
		s.logger = l
	}
	return s
}

// Issue signs a session token for the subject.
func (s *Sessions) Issue(subject *Subject) (string, error) {
	if subject == nil {
		return "", goerrors.New("subject must not be nil", goerrors.CategoryInternal)
	}

	now := s.now()
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subject.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Authorities: subject.Authorities,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sign session token")
	}
	return signed, nil
}

// Parse validates a session token and rebuilds the Subject it was issued
// for. Any signature, structure, or expiry problem comes back as
// ErrSessionInvalid.
func (s *Sessions) Parse(raw string) (*Subject, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			s.logger.Error("session parse encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithTimeFunc(s.now))

	if err != nil || !token.Valid {
		return nil, ErrSessionInvalid
	}

	return &Subject{
		Email:       claims.RegisteredClaims.Subject,
		Authorities: claims.Authorities,
		Enabled:     true,
	}, nil
}

// TTL reports the configured session lifetime, which the guard uses for
// the cookie expiry.
func (s *Sessions) TTL() time.Duration {
	return s.ttl
}
