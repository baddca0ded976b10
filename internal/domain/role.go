package domain

import "fmt"

// Role is the closed set of access roles known to the system. Roles are
// seeded once at startup and compared with exact, case-sensitive matches.
type Role string

const (
	RoleReader Role = "Reader"
	RoleWriter Role = "Writer"
)

// AllRoles lists every role the system recognises.
func AllRoles() []Role {
	return []Role{RoleReader, RoleWriter}
}

// ParseRole maps a raw role name onto the known set. Unknown names are
// rejected here so a typo at registration time cannot mint a role that no
// authorization rule will ever match.
func ParseRole(name string) (Role, error) {
	switch Role(name) {
	case RoleReader:
		return RoleReader, nil
	case RoleWriter:
		return RoleWriter, nil
	default:
		return "", fmt.Errorf("unknown role %q", name)
	}
}

// ParseRoles validates a list of raw role names, returning the first error.
func ParseRoles(names []string) ([]Role, error) {
	roles := make([]Role, 0, len(names))
	for _, name := range names {
		role, err := ParseRole(name)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, nil
}
