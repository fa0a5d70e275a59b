package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cempulse/plant-ops/internal/core/domain"
	"github.com/cempulse/plant-ops/internal/core/ports"
	"github.com/cempulse/plant-ops/internal/pkg/metrics"
)

type approvalService struct {
	repo    ports.ApprovalRepository
	catalog ports.ProcessCatalog
	authz   ports.ProcessAuthorizer
	audit   ports.AuditRecorder
	log     zerolog.Logger
	now     func() time.Time
}

// NewApprovalService returns an ApprovalService implementation.
func NewApprovalService(
	repo ports.ApprovalRepository,
	catalog ports.ProcessCatalog,
	authz ports.ProcessAuthorizer,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) ports.ApprovalService {
	return &approvalService{
		repo:    repo,
		catalog: catalog,
		authz:   authz,
		audit:   audit,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *approvalService) Request(ctx context.Context, p domain.Principal, in ports.CreateApprovalInput) (*domain.ApprovalRequest, error) {
	if err := s.authorize(p, in.ProcessID, "approval_request"); err != nil {
		return nil, err
	}
	if _, ok := s.catalog.Get(in.ProcessID); !ok {
		return nil, domain.ErrProcessNotFound
	}

	req := &domain.ApprovalRequest{
		ID:            uuid.NewString(),
		ProcessID:     in.ProcessID,
		Analysis:      in.Analysis,
		RequestedBy:   p.Subject,
		RequesterRole: p.Role,
		Status:        domain.ApprovalPending,
		CreatedAt:     s.now(),
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("create approval: %w", err)
	}

	metrics.ApprovalsTotal.WithLabelValues(string(domain.ApprovalPending)).Inc()
	s.audit.Record(domain.AuditEvent{
		Action:    domain.AuditApprovalRequested,
		Subject:   p.Subject,
		Role:      p.Role,
		Processes: []string{req.ProcessID},
		Detail:    req.ID,
		Timestamp: req.CreatedAt,
	})
	s.log.Info().Str("approval_id", req.ID).Str("process", req.ProcessID).Msg("approval requested")

	return req, nil
}

// List returns requests for processes the principal may see. Master sees all.
func (s *approvalService) List(ctx context.Context, p domain.Principal, status string) ([]*domain.ApprovalRequest, error) {
	filter := ports.ApprovalFilter{Status: domain.ApprovalStatus(status)}
	if s.authz.IsMaster(p) {
		filter.All = true
	} else {
		granted, err := s.authz.Authorize(p, nil)
		if err != nil {
			return nil, err
		}
		filter.ProcessIDs = granted
	}

	list, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list approvals: %w", err)
	}
	return list, nil
}

// Decide records an approver's verdict. The caller's role is checked at the
// route; here the approver must still be allowed to act on the process.
func (s *approvalService) Decide(ctx context.Context, p domain.Principal, in ports.DecideApprovalInput) (*domain.ApprovalRequest, error) {
	next := domain.ApprovalStatus(in.Decision)
	if next != domain.ApprovalApproved && next != domain.ApprovalRejected {
		return nil, domain.ErrInvalidDecision
	}

	existing, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("decide approval: %w", err)
	}
	if err := s.authorize(p, existing.ProcessID, "approval_decision"); err != nil {
		return nil, err
	}
	if !existing.Status.CanTransitionTo(next) {
		return nil, domain.ErrApprovalClosed
	}

	decided, err := s.repo.Decide(ctx, in.ID, ports.ApprovalDecision{
		Status:    next,
		DecidedBy: p.Subject,
		Note:      in.Note,
		DecidedAt: s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("decide approval: %w", err)
	}

	metrics.ApprovalsTotal.WithLabelValues(string(next)).Inc()
	s.audit.Record(domain.AuditEvent{
		Action:    domain.AuditApprovalDecided,
		Subject:   p.Subject,
		Role:      p.Role,
		Processes: []string{decided.ProcessID},
		Detail:    decided.ID + ":" + string(next),
		Timestamp: s.now(),
	})
	s.log.Info().Str("approval_id", decided.ID).Str("status", string(next)).Msg("approval decided")

	return decided, nil
}

func (s *approvalService) authorize(p domain.Principal, processID, detail string) error {
	if _, err := s.authz.Authorize(p, []string{processID}); err != nil {
		s.audit.Record(domain.AuditEvent{
			Action:    domain.AuditProcessAccessDenied,
			Subject:   p.Subject,
			Role:      p.Role,
			Processes: []string{processID},
			Detail:    detail,
			Timestamp: s.now(),
		})
		return err
	}
	return nil
}
