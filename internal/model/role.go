package model

import "fmt"

// Role is the closed set of user types. The wire and storage representation
// stays the Spanish tag the front-end already sends.
type Role string

const (
	RoleStudent Role = "estudiante"
	RoleTeacher Role = "profesor"
	RoleAdmin   Role = "admin"
)

// ParseRole validates a raw role tag.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return Role(raw), nil
	}
	return "", fmt.Errorf("unknown user type %q", raw)
}

func (r Role) String() string { return string(r) }
