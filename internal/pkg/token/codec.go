// Package token implements the compact HS256 token carried in the auth cookie.
//
// A token is header.payload.signature, each segment base64url without padding.
// The signature is HMAC-SHA256 over "header.payload" and is compared in
// constant time. Decoding is strict: a segment whose unused trailing bits are
// not zero is rejected, so every distinct string maps to distinct bytes.
package token

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"

	"github.com/cempulse/plant-ops/internal/core/domain"
)

// ClaimsVersion is stamped into every payload. Payloads with another version
// do not decode.
const ClaimsVersion = 1

// payload is the wire form of domain.Claims.
type payload struct {
	Version   int      `json:"ver" validate:"eq=1"`
	Subject   string   `json:"sub" validate:"required"`
	Role      string   `json:"role" validate:"required"`
	Allowed   []string `json:"allowed"`
	IssuedAt  int64    `json:"iat" validate:"required"`
	ExpiresAt int64    `json:"exp" validate:"required,gtefield=IssuedAt"`
}

func (p *payload) GetExpirationTime() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(p.ExpiresAt, 0)), nil
}

func (p *payload) GetIssuedAt() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(p.IssuedAt, 0)), nil
}

func (p *payload) GetNotBefore() (*jwt.NumericDate, error) { return nil, nil }
func (p *payload) GetIssuer() (string, error)             { return "", nil }
func (p *payload) GetSubject() (string, error)            { return p.Subject, nil }
func (p *payload) GetAudience() (jwt.ClaimStrings, error) { return nil, nil }

func (p *payload) claims() domain.Claims {
	return domain.Claims{
		Subject:          p.Subject,
		Role:             p.Role,
		AllowedProcesses: nonNil(p.Allowed),
		IssuedAt:         p.IssuedAt,
		ExpiresAt:        p.ExpiresAt,
	}
}

// Codec signs and verifies tokens with a single process-wide secret.
type Codec struct {
	secret   []byte
	now      func() time.Time
	parser   *jwt.Parser
	validate *validator.Validate
}

// Option configures a Codec.
type Option func(*Codec)

// WithClock replaces the wall clock used for stamping and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// NewCodec returns a Codec for secret. An empty secret is refused.
func NewCodec(secret []byte, opts ...Option) (*Codec, error) {
	if len(secret) == 0 {
		return nil, domain.ErrMissingSecret
	}
	c := &Codec{
		secret: slices.Clone(secret),
		now:    time.Now,
		// Expiry is checked below at second granularity (valid while now <= exp),
		// so the library's own claim validation is switched off.
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithStrictDecoding(),
			jwt.WithoutClaimsValidation(),
		),
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Encode stamps IssuedAt=now and ExpiresAt=now+ttl (whole seconds) and signs
// the result. The stamped claims are returned with the token.
func (c *Codec) Encode(claims domain.Claims, ttl time.Duration) (string, domain.Claims, error) {
	if ttl < time.Second {
		return "", domain.Claims{}, fmt.Errorf("encode token: ttl %s is shorter than one second", ttl)
	}

	iat := c.now().Unix()
	p := &payload{
		Version:   ClaimsVersion,
		Subject:   claims.Subject,
		Role:      claims.Role,
		Allowed:   nonNil(slices.Clone(claims.AllowedProcesses)),
		IssuedAt:  iat,
		ExpiresAt: iat + int64(ttl/time.Second),
	}
	if err := c.validate.Struct(p); err != nil {
		return "", domain.Claims{}, fmt.Errorf("encode token: %w", err)
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, p).SignedString(c.secret)
	if err != nil {
		return "", domain.Claims{}, fmt.Errorf("encode token: %w", err)
	}
	return signed, p.claims(), nil
}

// Decode verifies raw and returns its claims. Every failure wraps exactly one
// of domain.ErrMalformedToken, domain.ErrBadSignature or domain.ErrTokenExpired.
func (c *Codec) Decode(raw string) (domain.Claims, error) {
	var p payload
	if _, err := c.parser.ParseWithClaims(raw, &p, c.key); err != nil {
		return domain.Claims{}, classify(err)
	}
	if err := c.validate.Struct(&p); err != nil {
		return domain.Claims{}, fmt.Errorf("%w: %v", domain.ErrMalformedToken, err)
	}
	if c.now().Unix() > p.ExpiresAt {
		return domain.Claims{}, domain.ErrTokenExpired
	}
	return p.claims(), nil
}

func (c *Codec) key(*jwt.Token) (any, error) {
	return c.secret, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", domain.ErrBadSignature, err)
	default:
		return fmt.Errorf("%w: %v", domain.ErrMalformedToken, err)
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
