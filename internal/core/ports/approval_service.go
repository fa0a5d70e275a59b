package ports

import (
	"context"
	"time"

	"github.com/cempulse/plant-ops/internal/core/domain"
)

// ApprovalFilter narrows a listing. An empty ProcessIDs with All=false
// matches nothing.
type ApprovalFilter struct {
	ProcessIDs []string
	All        bool
	Status     domain.ApprovalStatus
}

// ApprovalDecision is what an approver records on a request.
type ApprovalDecision struct {
	Status    domain.ApprovalStatus
	DecidedBy string
	Note      string
	DecidedAt time.Time
}

type ApprovalRepository interface {
	Create(ctx context.Context, req *domain.ApprovalRequest) error
	FindByID(ctx context.Context, id string) (*domain.ApprovalRequest, error)
	List(ctx context.Context, filter ApprovalFilter) ([]*domain.ApprovalRequest, error)
	// Decide atomically moves a pending request to its final status and
	// returns domain.ErrApprovalClosed when it was no longer pending.
	Decide(ctx context.Context, id string, decision ApprovalDecision) (*domain.ApprovalRequest, error)
}

// CreateApprovalInput carries a new approval request.
type CreateApprovalInput struct {
	ProcessID string
	Analysis  string
}

// DecideApprovalInput carries an approver's decision.
type DecideApprovalInput struct {
	ID       string
	Decision string
	Note     string
}

type ApprovalService interface {
	Request(ctx context.Context, principal domain.Principal, in CreateApprovalInput) (*domain.ApprovalRequest, error)
	List(ctx context.Context, principal domain.Principal, status string) ([]*domain.ApprovalRequest, error)
	Decide(ctx context.Context, principal domain.Principal, in DecideApprovalInput) (*domain.ApprovalRequest, error)
}
