package rbac

import "strings"

// Role represents a staff access tier.
type Role string

const (
	// RoleAdmin has full access to the back-office.
	RoleAdmin Role = "admin"
	// RoleMechanic only reaches the pages relevant to work execution.
	RoleMechanic Role = "mechanic"
)

// Roles captures a set of roles and exposes the intersection checks used for
// authorization decisions.
type Roles []Role

// Has returns true if the provided role exists in the set.
func (rs Roles) Has(role Role) bool {
	for _, r := range rs {
		if r == role {
			return true
		}
	}
	return false
}

// Intersects returns true if any role in the candidate slice is also present
// in the set.
func (rs Roles) Intersects(candidate Roles) bool {
	for _, role := range candidate {
		if rs.Has(role) {
			return true
		}
	}
	return false
}

// Normalise converts raw role strings into canonical Role values, dropping
// blanks and duplicates.
func Normalise(raw []string) Roles {
	if len(raw) == 0 {
		return nil
	}
	seen := make(map[Role]struct{}, len(raw))
	roles := make(Roles, 0, len(raw))
	for _, val := range raw {
		role := Role(strings.ToLower(strings.TrimSpace(val)))
		if role == "" {
			continue
		}
		if _, ok := seen[role]; ok {
			continue
		}
		seen[role] = struct{}{}
		roles = append(roles, role)
	}
	return roles
}

// HasAnyRole reports whether the intersection between user roles and the
// requirement is non-empty. The requirement is arbitrary; nothing here is
// hard-wired to the two built-in roles.
func HasAnyRole(userRoles []string, required Roles) bool {
	if len(required) == 0 {
		return true
	}
	return required.Intersects(Normalise(userRoles))
}
