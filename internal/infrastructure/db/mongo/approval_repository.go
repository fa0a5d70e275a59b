package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cempulse/plant-ops/internal/core/domain"
	"github.com/cempulse/plant-ops/internal/core/ports"
)

const (
	collectionApprovals = "approval_requests"
	listLimit           = 200
)

type ApprovalRepository struct {
	col *mongo.Collection
}

func NewApprovalRepository(db *mongo.Database) *ApprovalRepository {
	return &ApprovalRepository{col: db.Collection(collectionApprovals)}
}

var _ ports.ApprovalRepository = (*ApprovalRepository)(nil)

// Create inserts a new approval request document.
func (r *ApprovalRepository) Create(ctx context.Context, req *domain.ApprovalRequest) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("insert approval: %w", err)
	}
	return nil
}

func (r *ApprovalRepository) FindByID(ctx context.Context, id string) (*domain.ApprovalRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var req domain.ApprovalRequest
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&req); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrApprovalNotFound
		}
		return nil, err
	}
	return &req, nil
}

// List returns matching requests, newest first.
func (r *ApprovalRepository) List(ctx context.Context, f ports.ApprovalFilter) ([]*domain.ApprovalRequest, error) {
	if !f.All && len(f.ProcessIDs) == 0 {
		return []*domain.ApprovalRequest{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if !f.All {
		filter["process_id"] = bson.M{"$in": f.ProcessIDs}
	}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(listLimit)

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find approvals: %w", err)
	}
	defer cur.Close(ctx)

	out := []*domain.ApprovalRequest{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode approvals: %w", err)
	}
	return out, nil
}

// Decide only matches a pending document, so two concurrent decisions cannot
// both succeed.
func (r *ApprovalRepository) Decide(ctx context.Context, id string, d ports.ApprovalDecision) (*domain.ApprovalRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "status": string(domain.ApprovalPending)}
	update := bson.M{"$set": bson.M{
		"status":     string(d.Status),
		"decided_by": d.DecidedBy,
		"decided_at": d.DecidedAt.UTC(),
		"note":       d.Note,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var req domain.ApprovalRequest
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&req)
	if err == nil {
		return &req, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("decide approval: %w", err)
	}

	if _, findErr := r.FindByID(ctx, id); findErr != nil {
		return nil, findErr
	}
	return nil, domain.ErrApprovalClosed
}

// EnsureIndexes creates necessary indexes on the approvals collection.
func (r *ApprovalRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "process_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
