package ports

import "github.com/cempulse/plant-ops/internal/core/domain"

// ProcessAuthorizer decides which of the requested process identifiers a
// principal may act on.
type ProcessAuthorizer interface {
	// Authorize returns the granted identifiers, or a *domain.ForbiddenError
	// naming exactly the identifiers that were refused.
	Authorize(principal domain.Principal, requested []string) ([]string, error)
	// IsMaster reports whether the principal holds the super-role.
	IsMaster(principal domain.Principal) bool
}

// ProcessCatalog is the static table of plant stages.
type ProcessCatalog interface {
	All() []domain.Process
	Get(id string) (domain.Process, bool)
}

// ProcessDetail is a catalog entry with its sample series.
type ProcessDetail struct {
	Process domain.Process
	Series  []domain.ParameterSeries
}

type ProcessService interface {
	Visible(principal domain.Principal) ([]domain.Process, error)
	Detail(principal domain.Principal, processID string) (*ProcessDetail, error)
}
