package auth

import (
	"fmt"
	"strings"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Config holds every knob the access-control core needs. It is built once
// at startup and passed into constructors; nothing in this package reads
// ambient globals.
type Config struct {
	// SigningKey signs session tokens.
	SigningKey string
	// RememberMeKey signs remember-me tokens. Keep it distinct from
	// SigningKey so a leaked long-lived token never doubles as a session
	// signing oracle.
	RememberMeKey string

	SessionCookie    string
	RememberMeCookie string
	RedirectCookie   string

	SessionTTL         time.Duration
	RememberMeValidity time.Duration

	Issuer string

	LoginPath        string
	LogoutPath       string
	AdminHomePath    string
	CustomerHomePath string
	AccessDeniedPath string
}

// DefaultConfig mirrors the application defaults. Secrets intentionally
// have no default; wiring must provide them.
func DefaultConfig() Config {
	return Config{
		SessionCookie:      "cartify_session",
		RememberMeCookie:   "cartify-remember-me",
		RedirectCookie:     "cartify_redirect",
		SessionTTL:         24 * time.Hour,
		RememberMeValidity: 7 * 24 * time.Hour,
		Issuer:             "cartify",
		LoginPath:          "/login",
		LogoutPath:         "/logout",
		AdminHomePath:      "/admin/dashboard",
		CustomerHomePath:   "/home",
		AccessDeniedPath:   "/error/403",
	}
}

type defLogger struct{}

func (d defLogger) Error(msg string, args ...any) { fmt.Print(kvLine("[ERR] AUTH", msg, args)) }
func (d defLogger) Warn(msg string, args ...any)  { fmt.Print(kvLine("[WRN] AUTH", msg, args)) }
func (d defLogger) Info(msg string, args ...any)  { fmt.Print(kvLine("[INF] AUTH", msg, args)) }
func (d defLogger) Debug(msg string, args ...any) { fmt.Print(kvLine("[DBG] AUTH", msg, args)) }

// kvLine treats args as alternating key/value pairs, matching how the
// package calls its logger.
func kvLine(prefix, msg string, args []any) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteByte(' ')
	b.WriteString(msg)
	for i := 0; i+1 < len(args); i += 2 {
		fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
	}
	if len(args)%2 == 1 {
		fmt.Fprintf(&b, " %v", args[len(args)-1])
	}
	b.WriteByte('\n')
	return b.String()
}
