package domain

import "time"

// ApprovalStatus is the lifecycle state of an approval request.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

var validDecisions = map[ApprovalStatus][]ApprovalStatus{
	ApprovalPending: {ApprovalApproved, ApprovalRejected},
}

// CanTransitionTo reports whether a request in status s may move to next.
func (s ApprovalStatus) CanTransitionTo(next ApprovalStatus) bool {
	for _, allowed := range validDecisions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ApprovalRequest asks an approver to sign off on an AI-suggested action for
// one process.
type ApprovalRequest struct {
	ID            string         `json:"id" bson:"_id"`
	ProcessID     string         `json:"process_id" bson:"process_id"`
	Analysis      string         `json:"analysis" bson:"analysis"`
	RequestedBy   string         `json:"requested_by" bson:"requested_by"`
	RequesterRole string         `json:"requester_role" bson:"requester_role"`
	Status        ApprovalStatus `json:"status" bson:"status"`
	CreatedAt     time.Time      `json:"created_at" bson:"created_at"`
	DecidedBy     string         `json:"decided_by,omitempty" bson:"decided_by,omitempty"`
	DecidedAt     *time.Time     `json:"decided_at,omitempty" bson:"decided_at,omitempty"`
	Note          string         `json:"note,omitempty" bson:"note,omitempty"`
}
