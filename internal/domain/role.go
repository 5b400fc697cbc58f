package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownRole means the role value is outside the closed set
var ErrUnknownRole = errors.New("unknown user role")

// UserRole identifies the caller's role. The set is closed:
// a value outside of it is a validation error, not a third state.
type UserRole string

const (
	RoleOwner    UserRole = "owner"
	RoleCustomer UserRole = "customer"
)

// ParseUserRole validates and converts a raw role string
func ParseUserRole(s string) (UserRole, error) {
	switch UserRole(s) {
	case RoleOwner:
		return RoleOwner, nil
	case RoleCustomer:
		return RoleCustomer, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// Valid reports whether the role belongs to the closed set
func (r UserRole) Valid() bool {
	return r == RoleOwner || r == RoleCustomer
}
