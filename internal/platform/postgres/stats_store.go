package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/caseflow-hq/caseflow-api/internal/domain"
	"github.com/caseflow-hq/caseflow-api/internal/store"
)

// StatsStore implements store.CaseStatsReader on PostgreSQL. Each view is a
// distinct aggregate query; all of them scope by tenant ID.
type StatsStore struct {
	db DBTX
}

// NewStatsStore creates the PostgreSQL stats reader.
func NewStatsStore(db DBTX) *StatsStore {
	return &StatsStore{db: db}
}

var _ store.CaseStatsReader = (*StatsStore)(nil)

// ComputeStats recomputes one aggregate view for a tenant from the case
// tables. A tenant with zero cases yields zero-valued stats, not an error.
func (s *StatsStore) ComputeStats(ctx context.Context, tenantID string, view domain.StatsView) (*domain.CaseStats, error) {
	if err := s.checkTenantExists(ctx, tenantID); err != nil {
		return nil, err
	}

	stats := &domain.CaseStats{
		TenantID:   tenantID,
		View:       view,
		ComputedAt: time.Now().UTC(),
	}

	var err error
	switch view {
	case domain.StatsViewOverview:
		err = s.fillOverview(ctx, stats)
	case domain.StatsViewWorkload:
		err = s.fillWorkload(ctx, stats)
	case domain.StatsViewSLA:
		err = s.fillSLA(ctx, stats)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownStatsView, view)
	}
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *StatsStore) checkTenantExists(ctx context.Context, tenantID string) error {
	var one int
	err := s.db.QueryRow(ctx, `SELECT 1 FROM tenants WHERE id = $1`, tenantID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.ErrTenantNotFound
		}
		return fmt.Errorf("check tenant %s: %w", tenantID, err)
	}
	return nil
}

// fillOverview computes the headline counts plus the per-status breakdown.
func (s *StatsStore) fillOverview(ctx context.Context, stats *domain.CaseStats) error {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status NOT IN ('closed', 'resolved')),
			COUNT(*) FILTER (WHERE status IN ('closed', 'resolved')),
			COUNT(*) FILTER (WHERE due_at < NOW() AND status NOT IN ('closed', 'resolved'))
		FROM cases
		WHERE tenant_id = $1
	`
	err := s.db.QueryRow(ctx, query, stats.TenantID).
		Scan(&stats.TotalCases, &stats.OpenCases, &stats.ClosedCases, &stats.OverdueCases)
	if err != nil {
		return fmt.Errorf("compute overview for tenant %s: %w", stats.TenantID, err)
	}

	byStatus, err := s.countBy(ctx, stats.TenantID, `
		SELECT status, COUNT(*)
		FROM cases
		WHERE tenant_id = $1
		GROUP BY status
	`)
	if err != nil {
		return fmt.Errorf("compute status breakdown for tenant %s: %w", stats.TenantID, err)
	}
	stats.CasesByStatus = byStatus
	return nil
}

// fillWorkload computes open-case counts per assignee. Unassigned cases
// group under the empty key.
func (s *StatsStore) fillWorkload(ctx context.Context, stats *domain.CaseStats) error {
	byOwner, err := s.countBy(ctx, stats.TenantID, `
		SELECT COALESCE(assignee_id, ''), COUNT(*)
		FROM cases
		WHERE tenant_id = $1 AND status NOT IN ('closed', 'resolved')
		GROUP BY assignee_id
	`)
	if err != nil {
		return fmt.Errorf("compute workload for tenant %s: %w", stats.TenantID, err)
	}
	stats.CasesByOwner = byOwner
	for _, n := range byOwner {
		stats.OpenCases += n
	}
	stats.TotalCases = stats.OpenCases
	return nil
}

// fillSLA computes the deadline-focused counts: open cases past due and
// open cases due within the next 24 hours.
func (s *StatsStore) fillSLA(ctx context.Context, stats *domain.CaseStats) error {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status NOT IN ('closed', 'resolved')),
			COUNT(*) FILTER (WHERE due_at < NOW() AND status NOT IN ('closed', 'resolved')),
			COUNT(*) FILTER (WHERE due_at >= NOW() AND due_at < NOW() + INTERVAL '24 hours'
				AND status NOT IN ('closed', 'resolved'))
		FROM cases
		WHERE tenant_id = $1
	`
	var dueSoon int
	err := s.db.QueryRow(ctx, query, stats.TenantID).
		Scan(&stats.OpenCases, &stats.OverdueCases, &dueSoon)
	if err != nil {
		return fmt.Errorf("compute sla view for tenant %s: %w", stats.TenantID, err)
	}
	stats.TotalCases = stats.OpenCases
	stats.CasesByStatus = map[string]int{
		"overdue":  stats.OverdueCases,
		"due_soon": dueSoon,
	}
	return nil
}

// countBy runs a two-column (key, count) grouped query.
func (s *StatsStore) countBy(ctx context.Context, tenantID, query string) (map[string]int, error) {
	rows, err := s.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, err
		}
		out[key] = n
	}
	return out, rows.Err()
}
