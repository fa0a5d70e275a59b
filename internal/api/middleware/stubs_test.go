package middleware

import (
	"context"

	"github.com/cempulse/plant-ops/internal/core/domain"
	"github.com/cempulse/plant-ops/internal/core/ports"
)

// stubAuthService accepts exactly one token.
type stubAuthService struct {
	validToken string
	principal  domain.Principal
	verified   []string
}

func (s *stubAuthService) Login(context.Context, string, string) (*ports.LoginResult, error) {
	return nil, domain.ErrInvalidCredentials
}

func (s *stubAuthService) Verify(token string) (domain.Principal, error) {
	s.verified = append(s.verified, token)
	if token == "" || token != s.validToken {
		return domain.Principal{}, domain.ErrUnauthenticated
	}
	return s.principal, nil
}
