// Package metrics exposes the Prometheus instrumentation for the
// authorization core: permission-check latency, cache effectiveness,
// token verification, and policy issuance counters.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	permissionCheckDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fieldgate_permission_check_duration_seconds",
			Help:    "Wall-clock duration of permission checks.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resource", "allowed"},
	)

	permissionCacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fieldgate_permission_cache_events_total",
			Help: "Permission cache hits by tier, and misses.",
		},
		[]string{"event"},
	)

	tokenVerifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fieldgate_token_verifications_total",
			Help: "Token verification outcomes by token type.",
		},
		[]string{"type", "valid"},
	)

	boundaryDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fieldgate_boundary_decisions_total",
			Help: "Team boundary enforcement outcomes by reason.",
		},
		[]string{"reason", "allowed"},
	)

	policyIssues = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fieldgate_policy_issues_total",
			Help: "Device policy issuance outcomes.",
		},
		[]string{"result"},
	)
)

// Init registers all collectors with the default registry.
func Init() {
	prometheus.MustRegister(
		permissionCheckDuration,
		permissionCacheEvents,
		tokenVerifications,
		boundaryDecisions,
		policyIssues,
	)
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObservePermissionCheck records one permission check.
func ObservePermissionCheck(resource string, allowed bool, d time.Duration) {
	permissionCheckDuration.WithLabelValues(resource, boolLabel(allowed)).Observe(d.Seconds())
}

// PermissionCacheHit records a cache hit on the given tier.
func PermissionCacheHit(tier string) {
	permissionCacheEvents.WithLabelValues("hit_" + tier).Inc()
}

// PermissionCacheMiss records a full cache miss.
func PermissionCacheMiss() {
	permissionCacheEvents.WithLabelValues("miss").Inc()
}

// ObserveTokenVerification records one token verification outcome.
func ObserveTokenVerification(tokenType string, valid bool) {
	tokenVerifications.WithLabelValues(tokenType, boolLabel(valid)).Inc()
}

// ObserveBoundaryDecision records one boundary enforcement outcome.
func ObserveBoundaryDecision(reason string, allowed bool) {
	boundaryDecisions.WithLabelValues(reason, boolLabel(allowed)).Inc()
}

// ObservePolicyIssue records one policy issuance outcome.
func ObservePolicyIssue(result string) {
	policyIssues.WithLabelValues(result).Inc()
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
