package web

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrCSRFTokenMismatch = errors.New("CSRF token mismatch")
	ErrCSRFTokenMissing  = errors.New("CSRF token missing")
	ErrCSRFTokenExpired  = errors.New("CSRF token expired")
)

// DefaultCSRFFormField is the form field carrying the token.
const DefaultCSRFFormField = "_token"

// CSRFContextKey is the request-local key the issued token is stored
// under so templates can embed it.
const CSRFContextKey = "csrf_token"

const csrfTokenTTL = 4 * time.Hour

// CSRFConfig defines the configuration for the CSRF middleware.
type CSRFConfig struct {
	// Key signs tokens. Stateless: the token is nonce|expiry|HMAC, no
	// server-side store.
	Key []byte
	// FormField overrides DefaultCSRFFormField.
	FormField string
	// ErrorHandler handles rejected requests. Defaults to 403.
	ErrorHandler fiber.Handler
}

// CSRF returns a double-submit token middleware for HTML forms: safe
// methods get a fresh token for the template, unsafe methods must echo a
// valid one back in the form body.
func CSRF(cfg CSRFConfig) fiber.Handler {
	if cfg.FormField == "" {
		cfg.FormField = DefaultCSRFFormField
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusForbidden).SendString("Forbidden")
		}
	}

	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			token, err := issueCSRFToken(cfg.Key)
			if err != nil {
				return err
			}
			c.Locals(CSRFContextKey, token)
			return c.Next()
		}

		if err := verifyCSRFToken(cfg.Key, c.FormValue(cfg.FormField)); err != nil {
			return cfg.ErrorHandler(c)
		}
		return c.Next()
	}
}

// issueCSRFToken builds nonce|expiry|HMAC(key, nonce|expiry).
func issueCSRFToken(key []byte) (string, error) {
	nonce := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("csrf nonce: %w", err)
	}

	expiry := time.Now().Add(csrfTokenTTL).Unix()
	payload := hex.EncodeToString(nonce) + "|" + strconv.FormatInt(expiry, 10)
	return payload + "|" + signCSRF(key, payload), nil
}

func verifyCSRFToken(key []byte, token string) error {
	if token == "" {
		return ErrCSRFTokenMissing
	}

	parts := strings.Split(token, "|")
	if len(parts) != 3 {
		return ErrCSRFTokenMismatch
	}

	payload := parts[0] + "|" + parts[1]
	expected := signCSRF(key, payload)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(parts[2])) != 1 {
		return ErrCSRFTokenMismatch
	}

	expiry, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || time.Now().Unix() > expiry {
		return ErrCSRFTokenExpired
	}
	return nil
}

func signCSRF(key []byte, payload string) string {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
