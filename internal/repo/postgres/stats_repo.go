package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StartupStats holds the dashboard aggregates computed in one query so the
// admin page never fans out N startup reads.
type StartupStats struct {
	Total             int64
	Approved          int64
	PendingApproval   int64
	CreatedThisMonth  int64
	TotalRevenue      float64
	TotalTeamMembers  int64
	LargestTeam       int64
	TopRevenueName    string
	TopRevenueAmount  float64
	FundingStageSplit map[string]int64
}

type MatchingStats struct {
	TotalRequests int64
	Matched       int64
	InProgress    int64
	Pending       int64
}

type StatsRepo struct {
	pool *pgxpool.Pool
}

func NewStatsRepo(pool *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

func (r *StatsRepo) StartupStats(ctx context.Context) (StartupStats, error) {
	if r.pool == nil {
		return StartupStats{}, fmt.Errorf("postgres pool is nil")
	}

	var stats StartupStats
	err := r.pool.QueryRow(ctx, `
SELECT
	COUNT(*),
	COUNT(*) FILTER (WHERE is_approved),
	COUNT(*) FILTER (WHERE NOT is_approved),
	COUNT(*) FILTER (WHERE created_at >= date_trunc('month', NOW())),
	COALESCE(SUM(monthly_revenue), 0),
	COALESCE(SUM(team_size), 0),
	COALESCE(MAX(team_size), 0)
FROM startups
`).Scan(
		&stats.Total,
		&stats.Approved,
		&stats.PendingApproval,
		&stats.CreatedThisMonth,
		&stats.TotalRevenue,
		&stats.TotalTeamMembers,
		&stats.LargestTeam,
	)
	if err != nil {
		return StartupStats{}, fmt.Errorf("aggregate startups: %w", err)
	}

	err = r.pool.QueryRow(ctx, `
SELECT name, monthly_revenue
FROM startups
ORDER BY monthly_revenue DESC, created_at ASC
LIMIT 1
`).Scan(&stats.TopRevenueName, &stats.TopRevenueAmount)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return StartupStats{}, fmt.Errorf("top revenue startup: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
SELECT COALESCE(funding_stage, 'Unspecified'), COUNT(*)
FROM startups
GROUP BY 1
`)
	if err != nil {
		return StartupStats{}, fmt.Errorf("funding stage split: %w", err)
	}
	defer rows.Close()

	stats.FundingStageSplit = make(map[string]int64)
	for rows.Next() {
		var stage string
		var count int64
		if err := rows.Scan(&stage, &count); err != nil {
			return StartupStats{}, fmt.Errorf("scan funding stage: %w", err)
		}
		stats.FundingStageSplit[stage] = count
	}
	if rows.Err() != nil {
		return StartupStats{}, fmt.Errorf("iterate funding stages: %w", rows.Err())
	}

	return stats, nil
}

func (r *StatsRepo) MatchingStats(ctx context.Context) (MatchingStats, error) {
	if r.pool == nil {
		return MatchingStats{}, fmt.Errorf("postgres pool is nil")
	}

	var stats MatchingStats
	err := r.pool.QueryRow(ctx, `
SELECT
	COUNT(*),
	COUNT(*) FILTER (WHERE status = 'matched'),
	COUNT(*) FILTER (WHERE status = 'in-progress'),
	COUNT(*) FILTER (WHERE status = 'pending')
FROM matching_requests
`).Scan(&stats.TotalRequests, &stats.Matched, &stats.InProgress, &stats.Pending)
	if err != nil {
		return MatchingStats{}, fmt.Errorf("aggregate matching requests: %w", err)
	}

	return stats, nil
}
