package web

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/cartify/cartify/auth"
)

// render merges the request-scoped globals every template expects
// (current subject, CSRF token, flash banner) into the handler's data.
func render(c *fiber.Ctx, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}

	if subject := auth.SubjectFromCtx(c); subject != nil {
		data["subject"] = subject
		data["is_admin"] = subject.HasRole(auth.RoleAdmin)
		data["is_customer"] = subject.HasRole(auth.RoleCustomer)
	}

	if token, ok := c.Locals(CSRFContextKey).(string); ok {
		data["csrf_token"] = token
	}

	if flash := c.Query("flash"); flash != "" {
		data["flash"] = flash
	}
	if errFlash := c.Query("flash_error"); errFlash != "" {
		data["flash_error"] = errFlash
	}

	return c.Render(name, data)
}

// redirectFlash sends the browser to path with a success banner.
func redirectFlash(c *fiber.Ctx, path, message string) error {
	return c.Redirect(path+"?flash="+url.QueryEscape(message), fiber.StatusSeeOther)
}

// redirectFlashError sends the browser to path with an error banner.
func redirectFlashError(c *fiber.Ctx, path, message string) error {
	return c.Redirect(path+"?flash_error="+url.QueryEscape(message), fiber.StatusSeeOther)
}
