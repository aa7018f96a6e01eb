package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartify/cartify/auth"
)

func TestSuccessTarget(t *testing.T) {
	outcomes := auth.NewOutcomes(testConfig())

	t.Run("admin lands on the dashboard", func(t *testing.T) {
		assert.Equal(t, "/admin/dashboard", outcomes.SuccessTarget(adminSubject()))
	})

	t.Run("customer lands on home", func(t *testing.T) {
		assert.Equal(t, "/home", outcomes.SuccessTarget(customerSubject()))
	})

	t.Run("subject with both roles prefers the dashboard", func(t *testing.T) {
		subject := &auth.Subject{
			Email: "both@example.com",
			Authorities: []string{
				auth.RoleCustomer.Authority(),
				auth.RoleAdmin.Authority(),
			},
			Enabled: true,
		}
		assert.Equal(t, "/admin/dashboard", outcomes.SuccessTarget(subject))
	})
}

func TestDenied(t *testing.T) {
	cfg := testConfig()
	outcomes := auth.NewOutcomes(cfg).WithLogger(mockLogger{})

	app := fiber.New()
	app.Get("/admin/dashboard", func(c *fiber.Ctx) error {
		return outcomes.Denied(c, customerSubject())
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, cfg.AccessDeniedPath, resp.Header.Get("Location"))
}

func TestDeniedTargetMustBePublic(t *testing.T) {
	// The denied redirect lands on the error page; if that page were
	// gated the browser would bounce forever.
	m := auth.MustMatcher(storefrontRules())
	d := m.Authorize(testConfig().AccessDeniedPath, customerSubject())
	assert.True(t, d.Allowed)
	assert.True(t, m.Authorize(testConfig().AccessDeniedPath, nil).Allowed)
}

func TestLogout(t *testing.T) {
	cfg := testConfig()
	outcomes := auth.NewOutcomes(cfg)

	app := fiber.New()
	app.Post("/logout", func(c *fiber.Ctx) error {
		return outcomes.Logout(c)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/logout", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, cfg.LoginPath+"?logout", resp.Header.Get("Location"))

	expired := map[string]bool{}
	for _, cookie := range resp.Cookies() {
		if cookie.Name == cfg.SessionCookie || cookie.Name == cfg.RememberMeCookie {
			assert.Empty(t, cookie.Value)
			assert.True(t, cookie.Expires.Before(time.Now()))
			expired[cookie.Name] = true
		}
	}
	assert.True(t, expired[cfg.SessionCookie], "session cookie not expired")
	assert.True(t, expired[cfg.RememberMeCookie], "remember-me cookie not expired")
}
