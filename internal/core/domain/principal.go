package domain

import "slices"

// Principal is the authenticated identity reconstructed from a verified token.
// It only ever lives inside a signed token; nothing is kept server-side.
type Principal struct {
	Subject          string
	Role             string
	AllowedProcesses []string
}

// Claims is the fixed payload embedded in a token. IssuedAt and ExpiresAt are
// Unix seconds and ExpiresAt = IssuedAt + ttl for the issuing call.
type Claims struct {
	Subject          string
	Role             string
	AllowedProcesses []string
	IssuedAt         int64
	ExpiresAt        int64
}

// Principal maps verified claims to the identity used by handlers.
func (c Claims) Principal() Principal {
	return Principal{
		Subject:          c.Subject,
		Role:             c.Role,
		AllowedProcesses: slices.Clone(c.AllowedProcesses),
	}
}

// Summary is the redacted view returned to clients.
func (p Principal) Summary() UserSummary {
	allowed := p.AllowedProcesses
	if allowed == nil {
		allowed = []string{}
	}
	return UserSummary{Username: p.Subject, Role: p.Role, Allowed: allowed}
}

// Allows reports whether processID is in the principal's own list.
func (p Principal) Allows(processID string) bool {
	return slices.Contains(p.AllowedProcesses, processID)
}
