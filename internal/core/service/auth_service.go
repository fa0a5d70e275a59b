package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cempulse/plant-ops/internal/core/domain"
	"github.com/cempulse/plant-ops/internal/core/ports"
	"github.com/cempulse/plant-ops/internal/pkg/metrics"
)

// DefaultTokenTTL is the session lifetime when none is configured.
const DefaultTokenTTL = 8 * time.Hour

// AuthService implements login and token verification.
type AuthService struct {
	store    ports.CredentialStore
	codec    ports.TokenCodec
	audit    ports.AuditRecorder
	tokenTTL time.Duration
	log      zerolog.Logger
}

func NewAuthService(store ports.CredentialStore, codec ports.TokenCodec, audit ports.AuditRecorder, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &AuthService{store: store, codec: codec, audit: audit, tokenTTL: tokenTTL, log: log}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	rec, err := s.store.FindByCredentials(ctx, username, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			s.audit.Record(domain.AuditEvent{
				Action:    domain.AuditLoginFailed,
				Subject:   username,
				Timestamp: time.Now().UTC(),
			})
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	token, claims, err := s.codec.Encode(domain.Claims{
		Subject:          rec.Username,
		Role:             rec.Role,
		AllowedProcesses: rec.AllowedProcesses,
	}, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.audit.Record(domain.AuditEvent{
		Action:    domain.AuditLoginSucceeded,
		Subject:   claims.Subject,
		Role:      claims.Role,
		Processes: claims.AllowedProcesses,
		Timestamp: time.Unix(claims.IssuedAt, 0).UTC(),
	})

	return &ports.LoginResult{
		Token:     token,
		ExpiresAt: time.Unix(claims.ExpiresAt, 0).UTC(),
		User:      claims.Principal().Summary(),
	}, nil
}

// Verify collapses every decode failure into domain.ErrUnauthenticated. The
// underlying reason only reaches the debug log and the rejection counter.
func (s *AuthService) Verify(token string) (domain.Principal, error) {
	if token == "" {
		metrics.TokenRejectionsTotal.WithLabelValues("missing").Inc()
		return domain.Principal{}, domain.ErrUnauthenticated
	}

	claims, err := s.codec.Decode(token)
	if err != nil {
		reason := rejectionReason(err)
		metrics.TokenRejectionsTotal.WithLabelValues(reason).Inc()
		s.log.Debug().Str("reason", reason).Msg("session token rejected")
		return domain.Principal{}, domain.ErrUnauthenticated
	}
	return claims.Principal(), nil
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrBadSignature):
		return "bad_signature"
	default:
		return "malformed"
	}
}
