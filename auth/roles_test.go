package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cartify/cartify/auth"
)

func TestRoleAuthority(t *testing.T) {
	assert.Equal(t, "ROLE_ADMIN", auth.RoleAdmin.Authority())
	assert.Equal(t, "ROLE_CUSTOMER", auth.RoleCustomer.Authority())
}

func TestParseRole(t *testing.T) {
	t.Run("known roles parse", func(t *testing.T) {
		role, ok := auth.ParseRole("ADMIN")
		assert.True(t, ok)
		assert.Equal(t, auth.RoleAdmin, role)

		role, ok = auth.ParseRole("CUSTOMER")
		assert.True(t, ok)
		assert.Equal(t, auth.RoleCustomer, role)
	})

	t.Run("unknown or lowercase role is rejected", func(t *testing.T) {
		_, ok := auth.ParseRole("SUPERUSER")
		assert.False(t, ok)

		_, ok = auth.ParseRole("admin")
		assert.False(t, ok)
	})
}

func TestSubjectAuthorities(t *testing.T) {
	subject := &auth.Subject{
		Email:       "carol@example.com",
		Authorities: []string{"ROLE_CUSTOMER"},
		Enabled:     true,
	}

	assert.True(t, subject.HasAuthority("ROLE_CUSTOMER"))
	assert.False(t, subject.HasAuthority("ROLE_ADMIN"))
	assert.True(t, subject.HasRole(auth.RoleCustomer))
	assert.False(t, subject.HasRole(auth.RoleAdmin))

	t.Run("nil subject carries nothing", func(t *testing.T) {
		var nobody *auth.Subject
		assert.False(t, nobody.HasAuthority("ROLE_CUSTOMER"))
	})
}
