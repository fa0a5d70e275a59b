package memory

import (
	"context"

	"github.com/cempulse/plant-ops/internal/core/domain"
)

// NoopAdvisoryCache never stores anything. It stands in when Redis is not configured.
type NoopAdvisoryCache struct{}

func (NoopAdvisoryCache) Get(context.Context, string) (*domain.Advice, bool, error) {
	return nil, false, nil
}

func (NoopAdvisoryCache) Set(context.Context, string, *domain.Advice) error {
	return nil
}
