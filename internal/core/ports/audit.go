package ports

import (
	"context"

	"github.com/cempulse/plant-ops/internal/core/domain"
)

// AuditRecorder accepts audit events without blocking the caller.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}

// AuditSink persists a single audit event.
type AuditSink interface {
	InsertEvent(ctx context.Context, event *domain.AuditEvent) error
}
