// Package config loads Cartify's runtime configuration from environment
// variables into immutable structs handed to components at construction.
package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/cartify/cartify/auth"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Database DatabaseConfig
	Auth     AuthConfig
}

type DatabaseConfig struct {
	DSN string `env:"DATABASE_DSN, default=file:cartify.db?cache=shared&mode=rwc"`
}

type AuthConfig struct {
	// SigningKey signs session tokens. Change this value in production.
	SigningKey string `env:"AUTH_SIGNING_KEY, default=cartify-dev-session-key"`
	// RememberMeKey signs remember-me tokens. Change this value in
	// production.
	RememberMeKey string `env:"AUTH_REMEMBER_ME_KEY, default=cartify-dev-remember-me-key"`
	// CSRFKey keys the form-token HMAC.
	CSRFKey string `env:"AUTH_CSRF_KEY, default=cartify-dev-csrf-key"`

	SessionCookie    string `env:"AUTH_SESSION_COOKIE,     default=cartify_session"`
	RememberMeCookie string `env:"AUTH_REMEMBER_ME_COOKIE, default=cartify-remember-me"`

	SessionTTL         time.Duration `env:"AUTH_SESSION_TTL,          default=24h"`
	RememberMeValidity time.Duration `env:"AUTH_REMEMBER_ME_VALIDITY, default=168h"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// AuthConfig maps the environment values onto the access-control core's
// config struct.
func (c *Config) AuthCoreConfig() auth.Config {
	ac := auth.DefaultConfig()
	ac.SigningKey = c.Auth.SigningKey
	ac.RememberMeKey = c.Auth.RememberMeKey
	ac.SessionCookie = c.Auth.SessionCookie
	ac.RememberMeCookie = c.Auth.RememberMeCookie
	ac.SessionTTL = c.Auth.SessionTTL
	ac.RememberMeValidity = c.Auth.RememberMeValidity
	return ac
}
