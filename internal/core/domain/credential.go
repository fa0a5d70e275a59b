package domain

import "strings"

// CredentialRecord is one row of the static credential table. The password is
// stored as a bcrypt hash, never in clear.
type CredentialRecord struct {
	Username         string   `yaml:"username"`
	PasswordHash     string   `yaml:"password_hash"`
	Role             string   `yaml:"role"`
	AllowedProcesses []string `yaml:"allowed_processes"`
}

// UserSummary is what login and session introspection expose about a user.
type UserSummary struct {
	Username string   `json:"username"`
	Role     string   `json:"role"`
	Allowed  []string `json:"allowed"`
}

// RoleMatch selects how role names are compared everywhere in the system.
type RoleMatch string

const (
	RoleMatchExact RoleMatch = "exact"
	RoleMatchFold  RoleMatch = "fold"
)

// Same compares two role names under the policy. Unknown policies compare exactly.
func (m RoleMatch) Same(a, b string) bool {
	if m == RoleMatchFold {
		return strings.EqualFold(a, b)
	}
	return a == b
}

// AnyOf reports whether role matches one of roles.
func (m RoleMatch) AnyOf(role string, roles []string) bool {
	for _, r := range roles {
		if m.Same(role, r) {
			return true
		}
	}
	return false
}
