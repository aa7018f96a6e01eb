package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Outcomes decides post-auth navigation: where a fresh login lands, where
// denied requests go, and how logout tears the cookies down.
type Outcomes struct {
	cfg    Config
	logger Logger
}

// NewOutcomes creates the outcome handlers
func NewOutcomes(cfg Config) *Outcomes {
	return &Outcomes{
		cfg:    cfg,
		logger: defLogger{},
	}
}

func (o *Outcomes) WithLogger(l Logger) *Outcomes {
	if l != nil {
		o.logger = l
	}
	return o
}

// SuccessTarget picks the post-login destination from the authority set
// alone: admins land on the back-office dashboard, everyone else on the
// storefront home.
func (o *Outcomes) SuccessTarget(subject *Subject) string {
	if subject.HasRole(RoleAdmin) {
		return o.cfg.AdminHomePath
	}
	return o.cfg.CustomerHomePath
}

// Denied logs who was denied and what they tried to reach, then redirects
// to the access-denied page. That page must be Public under the rule
// matcher or this would loop.
func (o *Outcomes) Denied(c *fiber.Ctx, subject *Subject) error {
	who := "anonymous"
	if subject != nil {
		who = subject.Email
	}
	o.logger.Warn("access denied", "user", who, "path", c.Path())

	return c.Redirect(o.cfg.AccessDeniedPath, fiber.StatusFound)
}

// Logout invalidates the session by expiring both the session cookie and
// the remember-me cookie, then redirects to the login page with a
// logged-out indicator.
func (o *Outcomes) Logout(c *fiber.Ctx) error {
	expireCookie(c, o.cfg.SessionCookie)
	expireCookie(c, o.cfg.RememberMeCookie)
	return c.Redirect(o.cfg.LoginPath+"?logout", fiber.StatusSeeOther)
}

func setCookie(c *fiber.Ctx, name, value string, duration time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Expires:  time.Now().Add(duration),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func expireCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
