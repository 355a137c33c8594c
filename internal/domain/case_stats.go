package domain

import (
	"errors"
	"time"
)

// Stats-related errors
var (
	ErrStatsTenantIDEmpty = errors.New("stats tenant ID cannot be empty")
	ErrUnknownStatsView   = errors.New("unknown stats view")
)

// StatsView identifies one precomputed aggregate view of a tenant's cases.
// The set of views is a fixed enumeration: cache keys are always composed
// from these values, never from free-form strings.
type StatsView string

const (
	// StatsViewOverview is the headline counts view shown on dashboards.
	StatsViewOverview StatsView = "overview"

	// StatsViewWorkload breaks open cases down by assignee.
	StatsViewWorkload StatsView = "workload"

	// StatsViewSLA tracks cases approaching or past their SLA deadline.
	// It is far more volatile than the other views and is cached with a
	// much shorter TTL.
	StatsViewSLA StatsView = "sla"
)

// AllStatsViews lists every stats view in a stable order. Invalidation
// deletes exactly these keys for a tenant; it never scans.
func AllStatsViews() []StatsView {
	return []StatsView{StatsViewOverview, StatsViewWorkload, StatsViewSLA}
}

// ValidStatsView reports whether v is a member of the view enumeration.
func ValidStatsView(v StatsView) bool {
	switch v {
	case StatsViewOverview, StatsViewWorkload, StatsViewSLA:
		return true
	}
	return false
}

// CaseStats is one computed aggregate view for a single tenant.
// Only the fields relevant to the requested view are populated.
type CaseStats struct {
	TenantID      string         `json:"tenant_id"`
	View          StatsView      `json:"view"`
	TotalCases    int            `json:"total_cases"`
	OpenCases     int            `json:"open_cases"`
	ClosedCases   int            `json:"closed_cases"`
	OverdueCases  int            `json:"overdue_cases"`
	CasesByStatus map[string]int `json:"cases_by_status,omitempty"`
	CasesByOwner  map[string]int `json:"cases_by_owner,omitempty"`
	ComputedAt    time.Time      `json:"computed_at"`
}

// Validate checks that the stats satisfy all domain invariants.
func (s *CaseStats) Validate() error {
	if s.TenantID == "" {
		return ErrStatsTenantIDEmpty
	}
	if !ValidStatsView(s.View) {
		return ErrUnknownStatsView
	}
	return nil
}
