package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartify/cartify/auth"
)

func TestAccessRulesLogoutIsPublic(t *testing.T) {
	matcher, err := auth.NewMatcher(AccessRules())
	require.NoError(t, err)

	// Anonymous logout must not bounce through the login redirect,
	// or the remembered URL would point at a POST-only route.
	decision := matcher.Authorize("/logout", nil)
	assert.True(t, decision.Allowed)
}

func TestAccessRulesAdminSectionsPrecedeCatchAll(t *testing.T) {
	matcher, err := auth.NewMatcher(AccessRules())
	require.NoError(t, err)

	customer := &auth.Subject{
		Email:       "pia@example.com",
		Authorities: []string{auth.RoleCustomer.Authority()},
		Enabled:     true,
	}

	for _, path := range []string{"/admin", "/admin/dashboard", "/admin/products/new", "/admin/users"} {
		decision := matcher.Authorize(path, customer)
		assert.False(t, decision.Allowed, path)
		assert.Equal(t, auth.RoleAdmin, decision.RequiredRole, path)
	}
}

func TestAccessRulesDeniedTargetStaysPublic(t *testing.T) {
	matcher, err := auth.NewMatcher(AccessRules())
	require.NoError(t, err)

	assert.True(t, matcher.Authorize("/error/403", nil).Allowed)
}
