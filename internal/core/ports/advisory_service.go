package ports

import (
	"context"

	"github.com/cempulse/plant-ops/internal/core/domain"
)

// AdvisoryInput is the body of an advisory request.
type AdvisoryInput struct {
	Processes []string
	Message   string
}

// TextGenerator is the external generative text API.
type TextGenerator interface {
	// Generate returns one text per candidate. An empty string means the
	// candidate carried no text.
	Generate(ctx context.Context, prompt string) ([]string, error)
}

// AdvisoryCache stores advice for identical requests for a short while.
type AdvisoryCache interface {
	Get(ctx context.Context, key string) (*domain.Advice, bool, error)
	Set(ctx context.Context, key string, advice *domain.Advice) error
}

type AdvisoryService interface {
	Advise(ctx context.Context, principal domain.Principal, in AdvisoryInput) (*domain.Advice, error)
}
