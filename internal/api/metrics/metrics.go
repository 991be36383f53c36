// Package metrics defines and registers all custom Prometheus metrics for the
// people directory API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the router exposes the registry on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "people_directory"

// PersonMutationsTotal counts successful person mutations.
// Label:
//   - action: "create_user", "update_user", "delete_user" or "toggle_active"
var PersonMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "person_mutations_total",
		Help:      "Total number of successful person mutations, by action.",
	},
	[]string{"action"},
)

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

// AuditEntriesTotal counts audit entries written successfully.
// Label:
//   - action: the audit action tag (e.g. "login", "delete_user")
var AuditEntriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_entries_total",
		Help:      "Total number of audit entries written, by action.",
	},
	[]string{"action"},
)

// AuditDroppedTotal counts audit writes that failed and were discarded.
// Audit logging is best-effort, so drops surface only here and in the logs.
var AuditDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_dropped_total",
		Help:      "Total number of audit entries lost to storage failures.",
	},
)
