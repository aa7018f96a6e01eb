package auth

import (
	"strings"

	"github.com/gobwas/glob"
	goerrors "github.com/goliatone/go-errors"
)

// RequirementKind discriminates what a rule demands of the subject.
type RequirementKind int

const (
	// RequirePublic allows anyone, authenticated or not.
	RequirePublic RequirementKind = iota
	// RequireAuthenticated allows any present subject.
	RequireAuthenticated
	// RequireRole allows subjects carrying the role's authority.
	RequireRole
)

// Requirement is what a matched rule demands.
type Requirement struct {
	Kind RequirementKind
	Role Role
}

// Public allows anyone.
func Public() Requirement {
	return Requirement{Kind: RequirePublic}
}

// Authenticated allows any logged-in subject.
func Authenticated() Requirement {
	return Requirement{Kind: RequireAuthenticated}
}

// HasRole allows subjects holding the role's authority.
func HasRole(role Role) Requirement {
	return Requirement{Kind: RequireRole, Role: role}
}

// Rule binds a path pattern to a requirement. Patterns use `*` for one
// path segment and `**` for any remainder; `/admin/**` also covers the
// bare `/admin`.
type Rule struct {
	Pattern     string
	Requirement Requirement
}

// Decision is the matcher's explicit result: no exceptions, callers
// branch on it.
type Decision struct {
	Allowed bool
	// Reason is ErrUnauthenticated or ErrForbidden when denied, nil when
	// allowed.
	Reason error
	// Pattern is the rule that decided, or "" for the implicit terminal
	// authenticated-required rule.
	Pattern string
	// RequiredRole is set when a role rule denied the request.
	RequiredRole Role
}

type compiledRule struct {
	rule       Rule
	matcher    glob.Glob
	barePrefix string
}

// Matcher evaluates an ordered rule list against request paths.
// Declaration order is the contract: the first matching pattern wins, so
// sub-path rules must be registered before their parent wildcards or the
// broader rule silently absorbs them. Paths matching no explicit rule
// fall through to an implicit authenticated-required rule.
type Matcher struct {
	rules []compiledRule
}

// NewMatcher compiles the rule list. Rules are evaluated in the order
// given.
func NewMatcher(rules []Rule) (*Matcher, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		g, err := glob.Compile(r.Pattern, '/')
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid rule pattern: "+r.Pattern)
		}

		cr := compiledRule{rule: r, matcher: g}
		if bare, ok := strings.CutSuffix(r.Pattern, "/**"); ok && bare != "" {
			cr.barePrefix = bare
		}
		compiled = append(compiled, cr)
	}
	return &Matcher{rules: compiled}, nil
}

// MustMatcher is NewMatcher for static rule tables.
func MustMatcher(rules []Rule) *Matcher {
	m, err := NewMatcher(rules)
	if err != nil {
		panic(err)
	}
	return m
}

func (c compiledRule) matches(path string) bool {
	if c.matcher.Match(path) {
		return true
	}
	return c.barePrefix != "" && path == c.barePrefix
}

// Authorize runs the deterministic ordered scan. A nil subject means
// anonymous.
func (m *Matcher) Authorize(path string, subject *Subject) Decision {
	for _, cr := range m.rules {
		if !cr.matches(path) {
			continue
		}
		return evaluate(cr.rule.Requirement, cr.rule.Pattern, subject)
	}

	// Terminal rule: everything unlisted requires authentication.
	return evaluate(Authenticated(), "", subject)
}

func evaluate(req Requirement, pattern string, subject *Subject) Decision {
	switch req.Kind {
	case RequirePublic:
		return Decision{Allowed: true, Pattern: pattern}
	case RequireAuthenticated:
		if subject == nil {
			return Decision{Reason: ErrUnauthenticated, Pattern: pattern}
		}
		return Decision{Allowed: true, Pattern: pattern}
	case RequireRole:
		if subject == nil {
			return Decision{Reason: ErrUnauthenticated, Pattern: pattern, RequiredRole: req.Role}
		}
		if !subject.HasRole(req.Role) {
			return Decision{Reason: ErrForbidden, Pattern: pattern, RequiredRole: req.Role}
		}
		return Decision{Allowed: true, Pattern: pattern}
	default:
		// Unknown requirement kinds fail closed.
		return Decision{Reason: ErrForbidden, Pattern: pattern}
	}
}
