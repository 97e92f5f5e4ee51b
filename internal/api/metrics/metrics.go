// Package metrics defines and registers all custom Prometheus metrics
// for the association API. It is the single source of truth for metric
// names, labels, and help strings. Registration happens at import time
// via promauto against the default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "association"

// LoginAttemptsTotal counts login attempts by outcome.
// Label:
//   - result: "ok", "failed", or "throttled"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts by outcome.
// Label:
//   - result: "ok", "duplicate", or "invalid_role"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// MembershipOpsTotal counts membership mutations.
// Labels:
//   - op: "join" or "leave"
//   - result: "ok" or "conflict" (already-member / not-member)
var MembershipOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "membership_ops_total",
		Help:      "Total number of club membership operations, by op and result.",
	},
	[]string{"op", "result"},
)

// AuthRejectionsTotal counts requests rejected at the auth gate or role
// guard before reaching a handler.
// Label:
//   - reason: "missing_token", "invalid_token", or "role_mismatch"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by authentication or authorization middleware.",
	},
	[]string{"reason"},
)

// PasswordHashDuration measures bcrypt hash computation time at
// registration. Buckets skew high because the cost factor is tuned for
// tens of milliseconds.
var PasswordHashDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "password_hash_duration_seconds",
		Help:      "Duration of bcrypt password hashing.",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1},
	},
)

// ActivityQueueDepth tracks pending entries in each activity dispatcher
// worker channel.
// Label:
//   - worker_id: numeric worker index
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of membership activity entries pending per dispatcher worker.",
	},
	[]string{"worker_id"},
)
