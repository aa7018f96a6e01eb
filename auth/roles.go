package auth

// Role is a closed set: Cartify only knows back-office admins and
// storefront customers.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
)

// Authority returns the ROLE_-prefixed permission string the rule matcher
// evaluates (ROLE_ADMIN, ROLE_CUSTOMER).
func (r Role) Authority() string {
	return "ROLE_" + string(r)
}

// IsValid checks if the role is one of the predefined valid roles
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleCustomer:
		return true
	default:
		return false
	}
}

// AllRoles returns the predefined roles.
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleCustomer}
}

// ParseRole safely parses a string into a Role type
func ParseRole(roleStr string) (Role, bool) {
	role := Role(roleStr)
	return role, role.IsValid()
}
