// Package memory holds process-local adapters used when no external store is
// configured. State is lost on restart.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/cempulse/plant-ops/internal/core/domain"
	"github.com/cempulse/plant-ops/internal/core/ports"
)

type ApprovalRepository struct {
	mu    sync.RWMutex
	items map[string]*domain.ApprovalRequest
	order []string
}

func NewApprovalRepository() *ApprovalRepository {
	return &ApprovalRepository{items: make(map[string]*domain.ApprovalRequest)}
}

var _ ports.ApprovalRepository = (*ApprovalRepository)(nil)

func (r *ApprovalRepository) Create(_ context.Context, req *domain.ApprovalRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[req.ID] = clone(req)
	r.order = append(r.order, req.ID)
	return nil
}

func (r *ApprovalRepository) FindByID(_ context.Context, id string) (*domain.ApprovalRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.items[id]
	if !ok {
		return nil, domain.ErrApprovalNotFound
	}
	return clone(req), nil
}

// List returns matching requests, newest first.
func (r *ApprovalRepository) List(_ context.Context, f ports.ApprovalFilter) ([]*domain.ApprovalRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*domain.ApprovalRequest{}
	for i := len(r.order) - 1; i >= 0; i-- {
		req := r.items[r.order[i]]
		if !f.All && !slices.Contains(f.ProcessIDs, req.ProcessID) {
			continue
		}
		if f.Status != "" && req.Status != f.Status {
			continue
		}
		out = append(out, clone(req))
	}
	return out, nil
}

func (r *ApprovalRepository) Decide(_ context.Context, id string, d ports.ApprovalDecision) (*domain.ApprovalRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.items[id]
	if !ok {
		return nil, domain.ErrApprovalNotFound
	}
	if req.Status != domain.ApprovalPending {
		return nil, domain.ErrApprovalClosed
	}

	decidedAt := d.DecidedAt.UTC()
	req.Status = d.Status
	req.DecidedBy = d.DecidedBy
	req.DecidedAt = &decidedAt
	req.Note = d.Note
	return clone(req), nil
}

func clone(req *domain.ApprovalRequest) *domain.ApprovalRequest {
	c := *req
	if req.DecidedAt != nil {
		at := *req.DecidedAt
		c.DecidedAt = &at
	}
	return &c
}
