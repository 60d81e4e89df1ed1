package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Role determines the level of access granted to a user.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

var ErrInvalidRole = errors.New("invalid role")

// ParseRole converts a string into a Role, case-insensitively. Unrecognized
// input fails with ErrInvalidRole instead of silently defaulting.
func ParseRole(s string) (Role, error) {
	switch strings.ToUpper(s) {
	case string(RoleAdmin):
		return RoleAdmin, nil
	case string(RoleUser):
		return RoleUser, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrInvalidRole)
	}
}
