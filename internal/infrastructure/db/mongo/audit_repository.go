package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cempulse/plant-ops/internal/core/domain"
	"github.com/cempulse/plant-ops/internal/core/ports"
)

const collectionAuditEvents = "audit_events"

// AuditRepository implements ports.AuditSink using MongoDB.
type AuditRepository struct {
	col *mongo.Collection
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *mongo.Database) ports.AuditSink {
	return &AuditRepository{col: db.Collection(collectionAuditEvents)}
}

// InsertEvent persists an audit event to the audit_events collection.
func (r *AuditRepository) InsertEvent(ctx context.Context, event *domain.AuditEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"action":      string(event.Action),
		"subject":     event.Subject,
		"timestamp":   event.Timestamp.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if event.Role != "" {
		doc["role"] = event.Role
	}
	if len(event.Processes) > 0 {
		doc["processes"] = event.Processes
	}
	if event.Detail != "" {
		doc["detail"] = event.Detail
	}

	_, err := r.col.InsertOne(ctx, doc)
	return err
}
