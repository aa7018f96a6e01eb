package web

import (
	"github.com/gofiber/fiber/v2"
)

// AccessDenied renders the friendly 403 page. The /error/** subtree is
// Public in the rule table so the denied handler's redirect can land
// here without looping.
func AccessDenied(c *fiber.Ctx) error {
	return render(c, "error/403", fiber.Map{})
}
