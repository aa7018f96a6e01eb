package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// SubjectKey is the request-local key the guard installs the Subject
// under.
const SubjectKey = "auth_subject"

// Guard is the per-request access-control pipeline: recover the subject
// from the session cookie, fall back to the remember-me cookie, then run
// the rule matcher and route denials through the outcome handlers.
//
// It holds no mutable state of its own; concurrent requests are fully
// independent.
type Guard struct {
	cfg        Config
	sessions   *Sessions
	rememberMe *RememberMe
	matcher    *Matcher
	outcomes   *Outcomes
	logger     Logger
}

// NewGuard wires the access-control pipeline
func NewGuard(cfg Config, sessions *Sessions, rememberMe *RememberMe, matcher *Matcher, outcomes *Outcomes) *Guard {
	return &Guard{
		cfg:        cfg,
		sessions:   sessions,
		rememberMe: rememberMe,
		matcher:    matcher,
		outcomes:   outcomes,
		logger:     defLogger{},
	}
}

func (g *Guard) WithLogger(l Logger) *Guard {
	if l != nil {
		g.logger = l
	}
	return g
}

// Middleware returns the fiber handler enforcing the rule table on every
// request.
func (g *Guard) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		subject := g.resolveSubject(c)
		if subject != nil {
			c.Locals(SubjectKey, subject)
		}

		decision := g.matcher.Authorize(c.Path(), subject)
		if decision.Allowed {
			return c.Next()
		}

		if subject == nil {
			// Remember where the browser was headed so the login flow can
			// send it back afterwards.
			g.SetRedirect(c)
			return c.Redirect(g.cfg.LoginPath, redirectStatus(c))
		}

		return g.outcomes.Denied(c, subject)
	}
}

// resolveSubject recovers the subject for this request: session cookie
// first, remember-me cookie second. A valid remember-me token installs a
// fresh session cookie so the next request takes the cheap path. Every
// failure degrades to anonymous.
func (g *Guard) resolveSubject(c *fiber.Ctx) *Subject {
	if raw := c.Cookies(g.cfg.SessionCookie); raw != "" {
		if subject, err := g.sessions.Parse(raw); err == nil {
			return subject
		}
		// Stale or tampered session cookie: drop it and fall through to
		// the remember-me path.
		expireCookie(c, g.cfg.SessionCookie)
	}

	raw := c.Cookies(g.cfg.RememberMeCookie)
	if raw == "" {
		return nil
	}

	subject, err := g.rememberMe.Validate(c.Context(), raw)
	if err != nil {
		g.logger.Debug("remember-me cookie ignored", "path", c.Path())
		return nil
	}

	if err := g.EstablishSession(c, subject); err != nil {
		g.logger.Error("failed to refresh session from remember-me", "error", err)
		return nil
	}

	return subject
}

// EstablishSession mints a session token for the subject and sets the
// session cookie.
func (g *Guard) EstablishSession(c *fiber.Ctx, subject *Subject) error {
	token, err := g.sessions.Issue(subject)
	if err != nil {
		return err
	}
	setCookie(c, g.cfg.SessionCookie, token, g.sessions.TTL())
	return nil
}

// IssueRememberMe mints a remember-me token for the subject and sets the
// remember-me cookie.
func (g *Guard) IssueRememberMe(c *fiber.Ctx, subject *Subject) error {
	token, err := g.rememberMe.Issue(subject)
	if err != nil {
		return err
	}
	setCookie(c, g.cfg.RememberMeCookie, token, g.rememberMe.Validity())
	return nil
}

// SetRedirect remembers the attempted URL in a short-lived cookie.
func (g *Guard) SetRedirect(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     g.cfg.RedirectCookie,
		Value:    c.OriginalURL(),
		Expires:  time.Now().Add(time.Minute * 5),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// GetRedirect consumes the remembered URL, falling back to def. The
// cookie is attacker-writable, so only same-origin paths are honoured;
// anything absolute or protocol-relative would be an open redirect.
func (g *Guard) GetRedirect(c *fiber.Ctx, def string) string {
	r := c.Cookies(g.cfg.RedirectCookie)
	if r == "" {
		return def
	}
	expireCookie(c, g.cfg.RedirectCookie)
	if !localPath(r) {
		return def
	}
	return r
}

// localPath accepts "/foo?bar" style targets only. "//host" is
// protocol-relative and "/\host" is its backslash spelling in some
// browsers, so both are rejected.
func localPath(r string) bool {
	if len(r) == 0 || r[0] != '/' {
		return false
	}
	if len(r) > 1 && (r[1] == '/' || r[1] == '\\') {
		return false
	}
	return !strings.ContainsAny(r, "\\\r\n")
}

// Outcomes exposes the outcome handlers to the controllers.
func (g *Guard) Outcomes() *Outcomes {
	return g.outcomes
}

// SubjectFromCtx returns the subject the guard installed for this
// request, or nil for anonymous.
func SubjectFromCtx(c *fiber.Ctx) *Subject {
	subject, _ := c.Locals(SubjectKey).(*Subject)
	return subject
}

func redirectStatus(c *fiber.Ctx) int {
	if c.Method() == fiber.MethodGet {
		return fiber.StatusFound
	}
	return fiber.StatusSeeOther
}
