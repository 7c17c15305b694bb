package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sankalptw/incu-meta/internal/domain/model"
	pgrepo "github.com/Sankalptw/incu-meta/internal/repo/postgres"
)

var ErrValidation = errors.New("validation error")

type StatsStore interface {
	StartupStats(ctx context.Context) (pgrepo.StartupStats, error)
	MatchingStats(ctx context.Context) (pgrepo.MatchingStats, error)
}

type CountStore interface {
	CountAll(ctx context.Context) (int64, error)
}

type EventStore interface {
	CountAll(ctx context.Context) (int64, error)
	NextUpcoming(ctx context.Context) (model.Event, bool, error)
}

type MeetingStore interface {
	CountAll(ctx context.Context) (int64, error)
	CountToday(ctx context.Context) (int64, error)
}

type RequestStore interface {
	ListSummariesByStartup(ctx context.Context, startupID string) ([]pgrepo.StartupRequestSummary, error)
}

type Service struct {
	stats         StatsStore
	accounts      CountStore
	events        EventStore
	announcements CountStore
	meetings      MeetingStore
	requests      RequestStore
}

type Dependencies struct {
	Stats         StatsStore
	Accounts      CountStore
	Events        EventStore
	Announcements CountStore
	Meetings      MeetingStore
	Requests      RequestStore
}

func NewService(deps Dependencies) *Service {
	return &Service{
		stats:         deps.Stats,
		accounts:      deps.Accounts,
		events:        deps.Events,
		announcements: deps.Announcements,
		meetings:      deps.Meetings,
		requests:      deps.Requests,
	}
}

// AdminOverview is the aggregate block behind the admin dashboard. All
// numbers come from grouped queries, never from loading full collections.
type AdminOverview struct {
	Startups struct {
		Total            int64            `json:"total"`
		Approved         int64            `json:"approved"`
		PendingApproval  int64            `json:"pending_approval"`
		NewThisMonth     int64            `json:"new_this_month"`
		TotalRevenue     float64          `json:"total_revenue"`
		TotalTeamMembers int64            `json:"total_team_members"`
		LargestTeam      int64            `json:"largest_team"`
		TopRevenueName   string           `json:"top_revenue_name,omitempty"`
		TopRevenue       float64          `json:"top_revenue"`
		ByFundingStage   map[string]int64 `json:"by_funding_stage"`
	} `json:"startups"`
	Matching struct {
		TotalRequests int64 `json:"total_requests"`
		Matched       int64 `json:"matched"`
		InProgress    int64 `json:"in_progress"`
		Pending       int64 `json:"pending"`
	} `json:"matching"`
	Accounts      int64 `json:"accounts"`
	Events        int64 `json:"events"`
	Announcements int64 `json:"announcements"`
	Meetings      int64 `json:"meetings"`
	MeetingsToday int64 `json:"meetings_today"`
}

func (s *Service) AdminOverview(ctx context.Context) (AdminOverview, error) {
	var overview AdminOverview

	startupStats, err := s.stats.StartupStats(ctx)
	if err != nil {
		return AdminOverview{}, fmt.Errorf("startup stats: %w", err)
	}
	overview.Startups.Total = startupStats.Total
	overview.Startups.Approved = startupStats.Approved
	overview.Startups.PendingApproval = startupStats.PendingApproval
	overview.Startups.NewThisMonth = startupStats.CreatedThisMonth
	overview.Startups.TotalRevenue = startupStats.TotalRevenue
	overview.Startups.TotalTeamMembers = startupStats.TotalTeamMembers
	overview.Startups.LargestTeam = startupStats.LargestTeam
	overview.Startups.TopRevenueName = startupStats.TopRevenueName
	overview.Startups.TopRevenue = startupStats.TopRevenueAmount
	overview.Startups.ByFundingStage = startupStats.FundingStageSplit

	matchingStats, err := s.stats.MatchingStats(ctx)
	if err != nil {
		return AdminOverview{}, fmt.Errorf("matching stats: %w", err)
	}
	overview.Matching.TotalRequests = matchingStats.TotalRequests
	overview.Matching.Matched = matchingStats.Matched
	overview.Matching.InProgress = matchingStats.InProgress
	overview.Matching.Pending = matchingStats.Pending

	if overview.Accounts, err = s.accounts.CountAll(ctx); err != nil {
		return AdminOverview{}, fmt.Errorf("count accounts: %w", err)
	}
	if overview.Events, err = s.events.CountAll(ctx); err != nil {
		return AdminOverview{}, fmt.Errorf("count events: %w", err)
	}
	if overview.Announcements, err = s.announcements.CountAll(ctx); err != nil {
		return AdminOverview{}, fmt.Errorf("count announcements: %w", err)
	}
	if overview.Meetings, err = s.meetings.CountAll(ctx); err != nil {
		return AdminOverview{}, fmt.Errorf("count meetings: %w", err)
	}
	if overview.MeetingsToday, err = s.meetings.CountToday(ctx); err != nil {
		return AdminOverview{}, fmt.Errorf("count today meetings: %w", err)
	}

	return overview, nil
}

// StartupOverview summarizes one startup's matching activity plus the
// community counters shown on its home screen.
type StartupOverview struct {
	TotalRequests   int64   `json:"total_requests"`
	Matched         int64   `json:"matched"`
	InterestedTotal int64   `json:"interested_total"`
	BestScore       float64 `json:"best_score"`
	Events          int64   `json:"events"`
	Announcements   int64   `json:"announcements"`
	NextEventTitle  string  `json:"next_event_title,omitempty"`
}

func (s *Service) StartupOverview(ctx context.Context, startupID string) (StartupOverview, error) {
	if startupID == "" {
		return StartupOverview{}, ErrValidation
	}

	summaries, err := s.requests.ListSummariesByStartup(ctx, startupID)
	if err != nil {
		return StartupOverview{}, fmt.Errorf("list requests: %w", err)
	}

	var overview StartupOverview
	for _, summary := range summaries {
		overview.TotalRequests++
		if summary.Selected != nil {
			overview.Matched++
		}
		overview.InterestedTotal += int64(summary.InterestedCount)
		if summary.MatchScore > overview.BestScore {
			overview.BestScore = summary.MatchScore
		}
	}

	if overview.Events, err = s.events.CountAll(ctx); err != nil {
		return StartupOverview{}, fmt.Errorf("count events: %w", err)
	}
	if overview.Announcements, err = s.announcements.CountAll(ctx); err != nil {
		return StartupOverview{}, fmt.Errorf("count announcements: %w", err)
	}
	next, ok, err := s.events.NextUpcoming(ctx)
	if err != nil {
		return StartupOverview{}, fmt.Errorf("next event: %w", err)
	}
	if ok {
		overview.NextEventTitle = next.Title
	}

	return overview, nil
}
