package service

import (
	"context"
	"slices"
	"sync"

	"github.com/cempulse/plant-ops/internal/core/domain"
	"github.com/cempulse/plant-ops/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Shared stubs
// ---------------------------------------------------------------------------

type recordingAudit struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (a *recordingAudit) Record(e domain.AuditEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, e)
}

func (a *recordingAudit) actions() []domain.AuditAction {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.AuditAction, 0, len(a.events))
	for _, e := range a.events {
		out = append(out, e.Action)
	}
	return out
}

type stubCatalog struct {
	processes []domain.Process
}

func (c *stubCatalog) All() []domain.Process {
	return slices.Clone(c.processes)
}

func (c *stubCatalog) Get(id string) (domain.Process, bool) {
	for _, p := range c.processes {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Process{}, false
}

func testCatalog() *stubCatalog {
	return &stubCatalog{processes: []domain.Process{
		{ID: "raw-material-extraction", Stage: 1, Name: "Raw Material Extraction", Parameters: []domain.Parameter{
			{Name: "Limestone Feed Rate", Unit: "t/h", Min: 0, Max: 500},
		}},
		{ID: "kiln-operation", Stage: 6, Name: "Kiln Operation", Parameters: []domain.Parameter{
			{Name: "Kiln Temperature", Unit: "°C", Min: 0, Max: 1500},
			{Name: "Rotation Speed", Unit: "rpm", Min: 0, Max: 5},
		}},
		{ID: "packing-dispatch", Stage: 11, Name: "Packing & Dispatch"},
		{ID: "quality-control", Stage: 12, Name: "Quality Control"},
	}}
}

type stubApprovalRepo struct {
	mu       sync.Mutex
	items    map[string]*domain.ApprovalRequest
	order    []string
	lastList ports.ApprovalFilter
	err      error
}

func newStubApprovalRepo() *stubApprovalRepo {
	return &stubApprovalRepo{items: make(map[string]*domain.ApprovalRequest)}
}

func cloneApproval(r *domain.ApprovalRequest) *domain.ApprovalRequest {
	c := *r
	return &c
}

func (r *stubApprovalRepo) Create(_ context.Context, req *domain.ApprovalRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.items[req.ID] = cloneApproval(req)
	r.order = append(r.order, req.ID)
	return nil
}

func (r *stubApprovalRepo) FindByID(_ context.Context, id string) (*domain.ApprovalRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, domain.ErrApprovalNotFound
	}
	return cloneApproval(item), nil
}

func (r *stubApprovalRepo) List(_ context.Context, f ports.ApprovalFilter) ([]*domain.ApprovalRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastList = f
	var out []*domain.ApprovalRequest
	for _, id := range r.order {
		item := r.items[id]
		if !f.All && !slices.Contains(f.ProcessIDs, item.ProcessID) {
			continue
		}
		if f.Status != "" && item.Status != f.Status {
			continue
		}
		out = append(out, cloneApproval(item))
	}
	return out, nil
}

func (r *stubApprovalRepo) Decide(_ context.Context, id string, d ports.ApprovalDecision) (*domain.ApprovalRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, domain.ErrApprovalNotFound
	}
	if item.Status != domain.ApprovalPending {
		return nil, domain.ErrApprovalClosed
	}
	at := d.DecidedAt
	item.Status = d.Status
	item.DecidedBy = d.DecidedBy
	item.DecidedAt = &at
	item.Note = d.Note
	return cloneApproval(item), nil
}
