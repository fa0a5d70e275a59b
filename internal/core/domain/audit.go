package domain

import "time"

// AuditAction names a security-relevant event.
type AuditAction string

const (
	AuditLoginSucceeded      AuditAction = "login_succeeded"
	AuditLoginFailed         AuditAction = "login_failed"
	AuditProcessAccessDenied AuditAction = "process_access_denied"
	AuditAdvisoryRequested   AuditAction = "advisory_requested"
	AuditApprovalRequested   AuditAction = "approval_requested"
	AuditApprovalDecided     AuditAction = "approval_decided"
)

// AuditEvent records who did what to which processes.
type AuditEvent struct {
	Action    AuditAction
	Subject   string
	Role      string
	Processes []string
	Detail    string
	Timestamp time.Time
}
