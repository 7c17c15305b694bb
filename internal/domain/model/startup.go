package model

import (
	"time"

	"github.com/Sankalptw/incu-meta/internal/domain/enums"
)

type Founder struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	LinkedIn   string `json:"linkedin,omitempty"`
	Experience string `json:"experience,omitempty"`
}

type Traction struct {
	ActiveUsers      int      `json:"active_users"`
	Customers        int      `json:"customers"`
	MonthlyRevenue   float64  `json:"monthly_revenue"`
	GrowthPercentage float64  `json:"growth_percentage"`
	Partnerships     []string `json:"partnerships,omitempty"`
}

type Financials struct {
	AOV          float64 `json:"aov"`
	CAC          float64 `json:"cac"`
	BurnRate     float64 `json:"burn_rate"`
	GrossMargin  float64 `json:"gross_margin"`
	RunwayMonths int     `json:"runway_months"`
	TAM          float64 `json:"tam"`
	SAM          float64 `json:"sam"`
	SOM          float64 `json:"som"`
}

type Funding struct {
	CurrentAsk    float64            `json:"current_ask"`
	EquityOffered float64            `json:"equity_offered"`
	FundingStage  enums.FundingStage `json:"funding_stage,omitempty"`
	TotalRaised   float64            `json:"total_raised"`
}

type Startup struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"-"`
	LogoKey      string         `json:"logo_key,omitempty"`
	Website      string         `json:"website,omitempty"`
	Tagline      string         `json:"tagline,omitempty"`
	Industry     enums.Industry `json:"industry"`
	Stage        enums.Stage    `json:"stage"`
	FoundedDate  *time.Time     `json:"founded_date,omitempty"`

	ProblemStatement string `json:"problem_statement,omitempty"`
	Solution         string `json:"solution,omitempty"`
	UniqueApproach   string `json:"unique_approach,omitempty"`

	Founders  []Founder `json:"founders,omitempty"`
	TeamSize  int       `json:"team_size"`
	SkillTags []string  `json:"skill_tags,omitempty"`

	Traction   Traction   `json:"traction"`
	Financials Financials `json:"financials"`
	Funding    Funding    `json:"funding"`

	// Documents maps a document slot (pitchDeck, businessModelCanvas, ...)
	// to an object storage key.
	Documents map[string]string `json:"documents,omitempty"`

	Visibility          enums.Visibility `json:"visibility"`
	IsApproved          bool             `json:"is_approved"`
	IsProfileComplete   bool             `json:"is_profile_complete"`
	ProfileCompleteness int              `json:"profile_completeness"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
