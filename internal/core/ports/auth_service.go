package ports

import (
	"context"
	"time"

	"github.com/cempulse/plant-ops/internal/core/domain"
)

// TokenCodec turns claims into a compact signed token and back.
type TokenCodec interface {
	// Encode stamps IssuedAt with the current time and ExpiresAt with
	// IssuedAt+ttl, then signs. The stamped claims are returned alongside.
	Encode(claims domain.Claims, ttl time.Duration) (string, domain.Claims, error)
	// Decode returns the claims of a well-formed, correctly signed, unexpired
	// token. Failures wrap ErrMalformedToken, ErrBadSignature or ErrTokenExpired.
	Decode(token string) (domain.Claims, error)
}

// CredentialStore maps a username/password pair to a credential record.
type CredentialStore interface {
	// FindByCredentials returns domain.ErrInvalidCredentials when no record
	// matches, without revealing which half of the pair was wrong.
	FindByCredentials(ctx context.Context, username, password string) (*domain.CredentialRecord, error)
}

// LoginResult is what a successful login hands back to the transport layer.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      domain.UserSummary
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	// Verify returns domain.ErrUnauthenticated for every kind of bad token.
	Verify(token string) (domain.Principal, error)
}
