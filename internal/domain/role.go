package domain

// Role is the closed set of access roles recognized by the platform.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
	RoleViewer  Role = "viewer"
)

// Roles lists every valid role.
func Roles() []Role {
	return []Role{RoleAdmin, RoleManager, RoleUser, RoleViewer}
}

// Valid reports whether r belongs to the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleUser, RoleViewer:
		return true
	}
	return false
}

// Rank maps each role to its seniority. Higher outranks lower. Adding a role
// requires extending this switch; unknown roles rank below every valid role.
func (r Role) Rank() int {
	switch r {
	case RoleAdmin:
		return 4
	case RoleManager:
		return 3
	case RoleUser:
		return 2
	case RoleViewer:
		return 1
	}
	return 0
}

// Satisfies reports exact membership of actual in the allowed set. Route
// allow-lists use this; it is NOT a seniority comparison.
func Satisfies(actual Role, allowed ...Role) bool {
	for _, role := range allowed {
		if actual == role {
			return true
		}
	}
	return false
}

// Dominates reports whether actual is at least as senior as required.
func Dominates(actual, required Role) bool {
	return actual.Rank() >= required.Rank()
}
