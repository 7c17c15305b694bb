package dto

import (
	"time"

	"github.com/Sankalptw/incu-meta/internal/domain/model"
)

type BasicInfoRequest struct {
	Name        string     `json:"name"`
	Tagline     string     `json:"tagline,omitempty"`
	Website     string     `json:"website,omitempty"`
	Industry    string     `json:"industry"`
	Stage       string     `json:"stage"`
	FoundedDate *time.Time `json:"founded_date,omitempty"`
}

type ProblemSolutionRequest struct {
	ProblemStatement string `json:"problem_statement"`
	Solution         string `json:"solution"`
	UniqueApproach   string `json:"unique_approach,omitempty"`
}

type FounderPayload struct {
	Name       string `json:"name"`
	Role       string `json:"role,omitempty"`
	LinkedIn   string `json:"linkedin,omitempty"`
	Experience string `json:"experience,omitempty"`
}

type TeamRequest struct {
	Founders  []FounderPayload `json:"founders,omitempty"`
	TeamSize  int              `json:"team_size"`
	SkillTags []string         `json:"skill_tags,omitempty"`
}

type TractionRequest struct {
	ActiveUsers      int      `json:"active_users"`
	Customers        int      `json:"customers"`
	MonthlyRevenue   float64  `json:"monthly_revenue"`
	GrowthPercentage float64  `json:"growth_percentage"`
	Partnerships     []string `json:"partnerships,omitempty"`
}

type FinancialsRequest struct {
	AOV          float64 `json:"aov"`
	CAC          float64 `json:"cac"`
	BurnRate     float64 `json:"burn_rate"`
	GrossMargin  float64 `json:"gross_margin"`
	RunwayMonths int     `json:"runway_months"`
	TAM          float64 `json:"tam"`
	SAM          float64 `json:"sam"`
	SOM          float64 `json:"som"`
}

type FundingRequest struct {
	CurrentAsk    float64 `json:"current_ask"`
	EquityOffered float64 `json:"equity_offered"`
	FundingStage  string  `json:"funding_stage,omitempty"`
	TotalRaised   float64 `json:"total_raised"`
}

type SaveProfileRequest struct {
	Basic           BasicInfoRequest       `json:"basic"`
	ProblemSolution ProblemSolutionRequest `json:"problem_solution"`
	Team            TeamRequest            `json:"team"`
	Traction        TractionRequest        `json:"traction"`
	Financials      FinancialsRequest      `json:"financials"`
	Funding         FundingRequest         `json:"funding"`
}

type VisibilityRequest struct {
	Visibility string `json:"visibility"`
}

type ApproveRequest struct {
	Approved bool `json:"approved"`
}

type StartupProfileResponse struct {
	Startup model.Startup `json:"startup"`
}

type StartupListResponse struct {
	Items []model.Startup `json:"items"`
}
