package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartify/cartify/auth"
)

func testConfig() auth.Config {
	cfg := auth.DefaultConfig()
	cfg.SigningKey = "test-session-signing-key"
	cfg.RememberMeKey = "test-remember-me-key"
	return cfg
}

func customerSubject() *auth.Subject {
	return &auth.Subject{
		Email:       "carol@example.com",
		Authorities: []string{auth.RoleCustomer.Authority()},
		Enabled:     true,
	}
}

func TestSessionsRoundTrip(t *testing.T) {
	sessions := auth.NewSessions(testConfig())

	token, err := sessions.Issue(customerSubject())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := sessions.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "carol@example.com", subject.Email)
	assert.Equal(t, []string{"ROLE_CUSTOMER"}, subject.Authorities)
	assert.True(t, subject.Enabled)
}

func TestSessionsRejectsNilSubject(t *testing.T) {
	sessions := auth.NewSessions(testConfig())
	_, err := sessions.Issue(nil)
	assert.Error(t, err)
}

func TestSessionsRejectsTamperedToken(t *testing.T) {
	sessions := auth.NewSessions(testConfig())

	token, err := sessions.Issue(customerSubject())
	require.NoError(t, err)

	tampered := []byte(token)
	tampered[len(tampered)-1] ^= 0x01

	_, err = sessions.Parse(string(tampered))
	assert.ErrorIs(t, err, auth.ErrSessionInvalid)
}

func TestSessionsRejectsForeignKey(t *testing.T) {
	sessions := auth.NewSessions(testConfig())

	otherCfg := testConfig()
	otherCfg.SigningKey = "a-different-signing-key"
	other := auth.NewSessions(otherCfg)

	token, err := other.Issue(customerSubject())
	require.NoError(t, err)

	_, err = sessions.Parse(token)
	assert.ErrorIs(t, err, auth.ErrSessionInvalid)
}

func TestSessionsExpiry(t *testing.T) {
	issuedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	cfg := testConfig()

	issue := auth.NewSessions(cfg, auth.WithSessionsClock(func() time.Time { return issuedAt }))
	token, err := issue.Issue(customerSubject())
	require.NoError(t, err)

	t.Run("valid before the TTL elapses", func(t *testing.T) {
		at := issuedAt.Add(cfg.SessionTTL - time.Minute)
		parse := auth.NewSessions(cfg, auth.WithSessionsClock(func() time.Time { return at }))
		_, err := parse.Parse(token)
		assert.NoError(t, err)
	})

	t.Run("invalid after the TTL elapses", func(t *testing.T) {
		at := issuedAt.Add(cfg.SessionTTL + time.Minute)
		parse := auth.NewSessions(cfg, auth.WithSessionsClock(func() time.Time { return at }))
		_, err := parse.Parse(token)
		assert.ErrorIs(t, err, auth.ErrSessionInvalid)
	})
}

func TestSessionsRejectsGarbage(t *testing.T) {
	sessions := auth.NewSessions(testConfig())
	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := sessions.Parse(raw)
		assert.ErrorIs(t, err, auth.ErrSessionInvalid, "raw=%q", raw)
	}
}
