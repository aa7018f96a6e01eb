package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginFormValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		form := LoginForm{Username: "carol@example.com", Password: "secret123"}
		assert.NoError(t, form.Validate())
	})

	t.Run("username must be an email", func(t *testing.T) {
		form := LoginForm{Username: "not-an-email", Password: "secret123"}
		assert.Error(t, form.Validate())
	})

	t.Run("password required", func(t *testing.T) {
		form := LoginForm{Username: "carol@example.com"}
		assert.Error(t, form.Validate())
	})
}

func TestRegisterFormValidate(t *testing.T) {
	valid := RegisterForm{
		FullName: "Carol Example",
		Email:    "carol@example.com",
		Password: "secret123",
	}
	assert.NoError(t, valid.Validate())

	t.Run("short password rejected", func(t *testing.T) {
		form := valid
		form.Password = "short"
		assert.Error(t, form.Validate())
	})

	t.Run("phone is optional", func(t *testing.T) {
		form := valid
		form.Phone = "+15550001111"
		assert.NoError(t, form.Validate())
	})
}

func TestProductFormValidate(t *testing.T) {
	valid := ProductForm{
		Name:       "Mechanical Keyboard",
		PriceCents: 12999,
		Stock:      10,
		CategoryID: 1,
	}
	assert.NoError(t, valid.Validate())

	t.Run("zero price rejected", func(t *testing.T) {
		form := valid
		form.PriceCents = 0
		assert.Error(t, form.Validate())
	})

	t.Run("category required", func(t *testing.T) {
		form := valid
		form.CategoryID = 0
		assert.Error(t, form.Validate())
	})
}

func TestReviewFormValidate(t *testing.T) {
	assert.NoError(t, ReviewForm{Rating: 5}.Validate())
	assert.Error(t, ReviewForm{Rating: 0}.Validate())
	assert.Error(t, ReviewForm{Rating: 6}.Validate())
}
