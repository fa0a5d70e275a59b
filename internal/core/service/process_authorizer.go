package service

import (
	"slices"

	"github.com/cempulse/plant-ops/internal/core/domain"
	"github.com/cempulse/plant-ops/internal/pkg/metrics"
)

// ProcessAuthorizer grants process identifiers against a principal's own list.
// The master role bypasses the list entirely.
type ProcessAuthorizer struct {
	masterRole string
	defaults   []string
	match      domain.RoleMatch
}

// NewProcessAuthorizer returns an authorizer. defaults is what the master role
// receives when it names no processes.
func NewProcessAuthorizer(masterRole string, defaults []string, match domain.RoleMatch) *ProcessAuthorizer {
	return &ProcessAuthorizer{
		masterRole: masterRole,
		defaults:   slices.Clone(defaults),
		match:      match,
	}
}

func (a *ProcessAuthorizer) IsMaster(p domain.Principal) bool {
	return a.masterRole != "" && a.match.Same(p.Role, a.masterRole)
}

// Authorize never grants an identifier outside the principal's list unless the
// principal is master. A refusal names every refused identifier once, in
// request order.
func (a *ProcessAuthorizer) Authorize(p domain.Principal, requested []string) ([]string, error) {
	if a.IsMaster(p) {
		metrics.AuthorizationDecisionsTotal.WithLabelValues("master", "granted").Inc()
		if len(requested) == 0 {
			return nonNilClone(a.defaults), nil
		}
		return slices.Clone(requested), nil
	}

	if len(requested) == 0 {
		metrics.AuthorizationDecisionsTotal.WithLabelValues("scoped", "granted").Inc()
		return nonNilClone(p.AllowedProcesses), nil
	}

	allowed := make(map[string]struct{}, len(p.AllowedProcesses))
	for _, id := range p.AllowedProcesses {
		allowed[id] = struct{}{}
	}

	var denied []string
	for _, id := range requested {
		if _, ok := allowed[id]; ok || slices.Contains(denied, id) {
			continue
		}
		denied = append(denied, id)
	}
	if len(denied) > 0 {
		metrics.AuthorizationDecisionsTotal.WithLabelValues("scoped", "denied").Inc()
		return nil, &domain.ForbiddenError{Processes: denied}
	}

	metrics.AuthorizationDecisionsTotal.WithLabelValues("scoped", "granted").Inc()
	return slices.Clone(requested), nil
}

func nonNilClone(s []string) []string {
	if len(s) == 0 {
		return []string{}
	}
	return slices.Clone(s)
}
