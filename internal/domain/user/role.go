package user

import (
	"errors"
	"strings"
)

// Role is a back-office user role as carried in JWT claims.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleAccountant Role = "ACCOUNTANT"
	RoleDriver     Role = "DRIVER"
)

var ErrInvalidRole = errors.New("invalid role")

// ParseRole normalizes (uppercases+trims) and validates a role string.
func ParseRole(s string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(s)))
	if role.Valid() {
		return role, nil
	}
	return "", ErrInvalidRole
}

// Valid reports whether role is one of the allowed role constants.
func (role Role) Valid() bool {
	switch role {
	case RoleAdmin, RoleAccountant, RoleDriver:
		return true
	default:
		return false
	}
}

// String returns the string representation of the Role.
func (role Role) String() string {
	return string(role)
}

// Convenience helpers.
func (role Role) IsAdmin() bool      { return role == RoleAdmin }
func (role Role) IsAccountant() bool { return role == RoleAccountant }
func (role Role) IsDriver() bool     { return role == RoleDriver }
