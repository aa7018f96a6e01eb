// Package web holds Cartify's fiber controllers, the ordered
// authorization rule table, and the form plumbing between the django
// templates and the repositories.
package web

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// LoginForm is the login form payload. The remember-me checkbox name
// matches the login template.
type LoginForm struct {
	Username   string `form:"username"`
	Password   string `form:"password"`
	RememberMe bool   `form:"remember-me"`
}

// Validate will run validation rules
func (f LoginForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Username, validation.Required, is.Email),
		validation.Field(&f.Password, validation.Required),
	)
}

// RegisterForm is the public registration payload.
type RegisterForm struct {
	FullName string `form:"full_name"`
	Email    string `form:"email"`
	Phone    string `form:"phone"`
	Password string `form:"password"`
}

// Validate will run validation rules
func (f RegisterForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.FullName, validation.Required, validation.Length(1, 255)),
		validation.Field(&f.Email, validation.Required, is.Email, validation.Length(1, 255)),
		validation.Field(&f.Phone, validation.Length(0, 50)),
		validation.Field(&f.Password, validation.Required, validation.Length(8, 128)),
	)
}

// CategoryForm binds the admin category create/edit form.
type CategoryForm struct {
	Name        string `form:"name"`
	Description string `form:"description"`
}

// Validate will run validation rules
func (f CategoryForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&f.Description, validation.Length(0, 1000)),
	)
}

// ProductForm binds the admin product create/edit form. Price arrives in
// cents to keep the arithmetic exact end to end.
type ProductForm struct {
	Name        string `form:"name"`
	Description string `form:"description"`
	PriceCents  int64  `form:"price_cents"`
	Stock       int    `form:"stock"`
	ImagePath   string `form:"image_path"`
	CategoryID  int64  `form:"category_id"`
}

// Validate will run validation rules
func (f ProductForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&f.Description, validation.Length(0, 2000)),
		validation.Field(&f.PriceCents, validation.Required, validation.Min(int64(1))),
		validation.Field(&f.Stock, validation.Min(0)),
		validation.Field(&f.ImagePath, validation.Length(0, 500)),
		validation.Field(&f.CategoryID, validation.Required),
	)
}

// ReviewForm binds the product review form.
type ReviewForm struct {
	Rating  int    `form:"rating"`
	Comment string `form:"comment"`
}

// Validate will run validation rules
func (f ReviewForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Rating, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&f.Comment, validation.Length(0, 2000)),
	)
}
