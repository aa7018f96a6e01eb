package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var csrfKey = []byte("test-csrf-key")

func TestCSRFTokenRoundTrip(t *testing.T) {
	token, err := issueCSRFToken(csrfKey)
	require.NoError(t, err)
	assert.NoError(t, verifyCSRFToken(csrfKey, token))
}

func TestCSRFTokenFailures(t *testing.T) {
	token, err := issueCSRFToken(csrfKey)
	require.NoError(t, err)

	t.Run("missing", func(t *testing.T) {
		assert.ErrorIs(t, verifyCSRFToken(csrfKey, ""), ErrCSRFTokenMissing)
	})

	t.Run("malformed", func(t *testing.T) {
		assert.ErrorIs(t, verifyCSRFToken(csrfKey, "just-one-part"), ErrCSRFTokenMismatch)
	})

	t.Run("tampered signature", func(t *testing.T) {
		tampered := token[:len(token)-2] + "xx"
		assert.ErrorIs(t, verifyCSRFToken(csrfKey, tampered), ErrCSRFTokenMismatch)
	})

	t.Run("tampered expiry breaks the signature", func(t *testing.T) {
		parts := strings.Split(token, "|")
		require.Len(t, parts, 3)
		future := strconv.FormatInt(time.Now().Add(100*time.Hour).Unix(), 10)
		tampered := parts[0] + "|" + future + "|" + parts[2]
		assert.ErrorIs(t, verifyCSRFToken(csrfKey, tampered), ErrCSRFTokenMismatch)
	})

	t.Run("expired", func(t *testing.T) {
		past := strconv.FormatInt(time.Now().Add(-time.Hour).Unix(), 10)
		payload := "00ff" + "|" + past
		expired := payload + "|" + signCSRF(csrfKey, payload)
		assert.ErrorIs(t, verifyCSRFToken(csrfKey, expired), ErrCSRFTokenExpired)
	})

	t.Run("wrong key", func(t *testing.T) {
		assert.ErrorIs(t, verifyCSRFToken([]byte("other-key"), token), ErrCSRFTokenMismatch)
	})
}

func TestCSRFMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(CSRF(CSRFConfig{Key: csrfKey}))
	app.Get("/form", func(c *fiber.Ctx) error {
		token, _ := c.Locals(CSRFContextKey).(string)
		return c.SendString(token)
	})
	app.Post("/submit", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	fetchToken := func(t *testing.T) string {
		t.Helper()
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/form", nil))
		require.NoError(t, err)
		defer resp.Body.Close()

		buf := make([]byte, 512)
		n, _ := resp.Body.Read(buf)
		token := string(buf[:n])
		require.NotEmpty(t, token)
		return token
	}

	submit := func(t *testing.T, token string) *http.Response {
		t.Helper()
		form := url.Values{}
		if token != "" {
			form.Set(DefaultCSRFFormField, token)
		}
		req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(form.Encode()))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	t.Run("issued token passes", func(t *testing.T) {
		resp := submit(t, fetchToken(t))
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("missing token is forbidden", func(t *testing.T) {
		resp := submit(t, "")
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("tampered token is forbidden", func(t *testing.T) {
		token := fetchToken(t)
		resp := submit(t, token[:len(token)-2]+"xx")
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("tokens survive more than one use", func(t *testing.T) {
		token := fetchToken(t)
		for i := 0; i < 2; i++ {
			resp := submit(t, token)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			resp.Body.Close()
		}
	})
}
