// Package metrics defines and registers all custom Prometheus metrics for the
// plant operations API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry when the
// package is loaded.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cempulse"

// ── Authentication metrics ────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenRejectionsTotal counts tokens refused during verification.
// Label:
//   - reason: "missing", "malformed", "bad_signature" or "expired"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of session tokens rejected, by reason.",
	},
	[]string{"reason"},
)

// GateDecisionsTotal counts page requests evaluated by the access gate.
// Label:
//   - result: "allowed" or "redirected"
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of protected page requests, by gate decision.",
	},
	[]string{"result"},
)

// ── Authorization metrics ─────────────────────────────────────────────────────

// AuthorizationDecisionsTotal counts process authorization decisions.
// Labels:
//   - scope: "master" or "scoped"
//   - result: "granted" or "denied"
var AuthorizationDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_decisions_total",
		Help:      "Total number of process authorization decisions.",
	},
	[]string{"scope", "result"},
)

// ── Advisory metrics ──────────────────────────────────────────────────────────

// AdvisoryRequestsTotal counts advisory requests by final outcome.
// Label:
//   - outcome: "ok", "cached", "forbidden", "misconfigured" or "upstream_error"
var AdvisoryRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "advisory_requests_total",
		Help:      "Total number of advisory requests, by outcome.",
	},
	[]string{"outcome"},
)

// AdvisoryUpstreamDuration measures calls to the generative text provider.
// Label:
//   - status: HTTP status code returned, or "error" when no response arrived
var AdvisoryUpstreamDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "advisory_upstream_duration_seconds",
		Help:      "Duration of generative text provider calls.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 20},
	},
	[]string{"status"},
)

// ── Approval metrics ──────────────────────────────────────────────────────────

// ApprovalsTotal counts approval lifecycle transitions.
// Label:
//   - status: "pending" on creation, then "approved" or "rejected"
var ApprovalsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "approvals_total",
		Help:      "Total number of approval requests created or decided, by status.",
	},
	[]string{"status"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditEventsTotal counts audit events handled by the dispatcher.
// Labels:
//   - action: the audit action (e.g. "login_failed")
//   - result: "stored", "failed" or "dropped"
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of audit events, by action and delivery result.",
	},
	[]string{"action", "result"},
)

// AuditQueueDepth tracks the current number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
