package web

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cartify/cartify/auth"
	"github.com/cartify/cartify/store"
)

// AuthController drives login, logout, and registration.
type AuthController struct {
	authn  *auth.Authenticator
	guard  *auth.Guard
	users  store.Users
	logger auth.Logger
}

// NewAuthController creates the auth controller
func NewAuthController(authn *auth.Authenticator, guard *auth.Guard, users store.Users, logger auth.Logger) *AuthController {
	return &AuthController{
		authn:  authn,
		guard:  guard,
		users:  users,
		logger: logger,
	}
}

// LoginShow renders the login page. The error/logout banners key off
// query params, so a failed login is just a redirect back here.
func (a *AuthController) LoginShow(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{
		"error":  queryFlagPresent(c, "error"),
		"logout": queryFlagPresent(c, "logout"),
	})
}

// LoginPost verifies credentials and establishes the session. All
// authentication failures land on the same generic error banner,
// including the disabled-account case.
func (a *AuthController) LoginPost(c *fiber.Ctx) error {
	form := new(LoginForm)
	if err := c.BodyParser(form); err != nil {
		return c.Redirect("/login?error", fiber.StatusSeeOther)
	}

	if err := form.Validate(); err != nil {
		return render(c, "login", fiber.Map{
			"error":      true,
			"validation": err.Error(),
			"username":   form.Username,
		})
	}

	subject, err := a.authn.Authenticate(c.Context(), form.Username, form.Password)
	if err != nil {
		return c.Redirect("/login?error", fiber.StatusSeeOther)
	}

	if err := a.guard.EstablishSession(c, subject); err != nil {
		a.logger.Error("failed to establish session", "error", err)
		return c.Redirect("/login?error", fiber.StatusSeeOther)
	}

	if form.RememberMe {
		if err := a.guard.IssueRememberMe(c, subject); err != nil {
			// The login itself succeeded; skip the cookie and move on.
			a.logger.Error("failed to issue remember-me token", "error", err)
		}
	}

	target := a.guard.GetRedirect(c, a.guard.Outcomes().SuccessTarget(subject))
	return c.Redirect(target, fiber.StatusSeeOther)
}

// Logout tears down the session and both cookies.
func (a *AuthController) Logout(c *fiber.Ctx) error {
	return a.guard.Outcomes().Logout(c)
}

// RegisterShow renders the public registration page.
func (a *AuthController) RegisterShow(c *fiber.Ctx) error {
	return render(c, "register", fiber.Map{})
}

// RegisterPost creates a CUSTOMER account and logs it straight in.
func (a *AuthController) RegisterPost(c *fiber.Ctx) error {
	form := new(RegisterForm)
	if err := c.BodyParser(form); err != nil {
		return render(c, "register", fiber.Map{"validation": "invalid form submission"})
	}

	if err := form.Validate(); err != nil {
		return render(c, "register", fiber.Map{
			"validation": err.Error(),
			"form":       form,
		})
	}

	hash, err := auth.HashPassword(form.Password)
	if err != nil {
		return render(c, "register", fiber.Map{"validation": "unable to process password"})
	}

	user, err := a.users.Register(c.Context(), &store.User{
		FullName:     form.FullName,
		Email:        form.Email,
		Phone:        form.Phone,
		PasswordHash: hash,
		Role:         auth.RoleCustomer,
	})
	if err != nil {
		a.logger.Warn("registration failed", "email", form.Email, "error", err)
		return render(c, "register", fiber.Map{
			"validation": "that email address is already registered",
			"form":       form,
		})
	}

	subject, err := a.authn.Authenticate(c.Context(), user.Email, form.Password)
	if err != nil {
		// Account exists but auto-login failed; let them log in manually.
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	if err := a.guard.EstablishSession(c, subject); err != nil {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	return c.Redirect(a.guard.Outcomes().SuccessTarget(subject), fiber.StatusSeeOther)
}

// queryFlagPresent reports bare query flags like /login?logout where the
// param has no value.
func queryFlagPresent(c *fiber.Ctx, name string) bool {
	return c.Request().URI().QueryArgs().Has(name)
}
