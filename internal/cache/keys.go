package cache

import (
	"fmt"
	"time"

	"github.com/caseflow-hq/caseflow-api/internal/domain"
)

// Domain is the first segment of every cache key. Domains are a fixed
// enumeration per feature area.
type Domain string

const (
	// DomainStats holds the precomputed per-tenant case statistics views.
	DomainStats Domain = "stats"
)

// Cache TTLs. Standard views tolerate half an hour of staleness because
// every mutation invalidates them anyway; the SLA view is treated as
// volatile and expires after a minute.
const (
	StandardTTL = 30 * time.Minute
	UrgentTTL   = 60 * time.Second
)

// Key composes a cache key from its three fixed segments.
func Key(d Domain, tenantID, view string) string {
	return fmt.Sprintf("%s:%s:%s", d, tenantID, view)
}

// StatsKey returns the cache key for one tenant's stats view,
// e.g. "stats:org-42:overview".
func StatsKey(tenantID string, view domain.StatsView) string {
	return Key(DomainStats, tenantID, string(view))
}

// StatsTenantKeys returns the full, enumerated key set for one tenant's
// stats domain. Invalidation deletes exactly these; it never scans.
func StatsTenantKeys(tenantID string) []string {
	views := domain.AllStatsViews()
	keys := make([]string, 0, len(views))
	for _, v := range views {
		keys = append(keys, StatsKey(tenantID, v))
	}
	return keys
}

// DomainPattern returns the prefix-match pattern covering every key in a
// domain. Reserved for full-domain sweeps by housekeeping; per-tenant
// invalidation uses the enumerated keys instead.
func DomainPattern(d Domain) string {
	return string(d) + ":*"
}

// TTLForView returns the TTL the recompute handlers and the read path apply
// when populating a stats view.
func TTLForView(view domain.StatsView) time.Duration {
	if view == domain.StatsViewSLA {
		return UrgentTTL
	}
	return StandardTTL
}
