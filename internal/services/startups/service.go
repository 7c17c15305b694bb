package startups

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Sankalptw/incu-meta/internal/domain/enums"
	"github.com/Sankalptw/incu-meta/internal/domain/model"
	pgrepo "github.com/Sankalptw/incu-meta/internal/repo/postgres"
)

var (
	ErrValidation      = errors.New("validation error")
	ErrStartupNotFound = errors.New("startup not found")
	ErrProfileHidden   = errors.New("profile hidden")
)

const completeThreshold = 80

type Store interface {
	GetByID(ctx context.Context, id string) (model.Startup, error)
	List(ctx context.Context, limit int) ([]model.Startup, error)
	SaveBasic(ctx context.Context, id string, name, tagline, website string, industry enums.Industry, stage enums.Stage, foundedDate *time.Time) error
	SaveProblemSolution(ctx context.Context, id, problem, solution, uniqueApproach string) error
	SaveTeam(ctx context.Context, id string, founders []model.Founder, teamSize int, skillTags []string) error
	SaveTraction(ctx context.Context, id string, t model.Traction) error
	SaveFinancials(ctx context.Context, id string, f model.Financials) error
	SaveFunding(ctx context.Context, id string, f model.Funding) error
	SaveVisibility(ctx context.Context, id string, visibility enums.Visibility) error
	SetApproved(ctx context.Context, id string, approved bool) error
	SetCompleteness(ctx context.Context, id string, completeness int, complete bool) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context, id string) (model.Startup, error) {
	if id == "" {
		return model.Startup{}, ErrValidation
	}

	startup, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgrepo.ErrStartupNotFound) {
			return model.Startup{}, ErrStartupNotFound
		}
		return model.Startup{}, fmt.Errorf("get startup: %w", err)
	}
	return startup, nil
}

func (s *Service) List(ctx context.Context, limit int) ([]model.Startup, error) {
	return s.store.List(ctx, limit)
}

// PublicProfile returns the startup as seen by another account. Visibility
// gates access, admins see everything, and financials are always elided
// from non-owner views.
func (s *Service) PublicProfile(ctx context.Context, id string, viewerRole enums.Role) (model.Startup, error) {
	startup, err := s.Get(ctx, id)
	if err != nil {
		return model.Startup{}, err
	}

	if viewerRole != enums.RoleAdmin {
		switch startup.Visibility {
		case enums.VisibilityPrivate:
			return model.Startup{}, ErrProfileHidden
		case enums.VisibilityIncubatorsOnly:
			if viewerRole != enums.RoleIncubator {
				return model.Startup{}, ErrProfileHidden
			}
		}
	}

	startup.PasswordHash = ""
	startup.Financials = model.Financials{}
	return startup, nil
}

type BasicInput struct {
	Name        string
	Tagline     string
	Website     string
	Industry    string
	Stage       string
	FoundedDate *time.Time
}

func (s *Service) UpdateBasic(ctx context.Context, id string, in BasicInput) (model.Startup, error) {
	name := strings.TrimSpace(in.Name)
	if id == "" || name == "" {
		return model.Startup{}, ErrValidation
	}
	industry, ok := enums.ParseIndustry(in.Industry)
	if !ok {
		return model.Startup{}, ErrValidation
	}
	stage, ok := enums.ParseStage(in.Stage)
	if !ok {
		return model.Startup{}, ErrValidation
	}

	err := s.store.SaveBasic(ctx, id, name, strings.TrimSpace(in.Tagline),
		strings.TrimSpace(in.Website), industry, stage, in.FoundedDate)
	if err != nil {
		return model.Startup{}, s.saveErr(err)
	}

	return s.refreshCompleteness(ctx, id)
}

type ProblemSolutionInput struct {
	ProblemStatement string
	Solution         string
	UniqueApproach   string
}

func (s *Service) UpdateProblemSolution(ctx context.Context, id string, in ProblemSolutionInput) (model.Startup, error) {
	if id == "" {
		return model.Startup{}, ErrValidation
	}

	err := s.store.SaveProblemSolution(ctx, id,
		strings.TrimSpace(in.ProblemStatement),
		strings.TrimSpace(in.Solution),
		strings.TrimSpace(in.UniqueApproach))
	if err != nil {
		return model.Startup{}, s.saveErr(err)
	}

	return s.refreshCompleteness(ctx, id)
}

type TeamInput struct {
	Founders  []model.Founder
	TeamSize  int
	SkillTags []string
}

func (s *Service) UpdateTeam(ctx context.Context, id string, in TeamInput) (model.Startup, error) {
	if id == "" || in.TeamSize < 0 {
		return model.Startup{}, ErrValidation
	}
	for _, f := range in.Founders {
		if strings.TrimSpace(f.Name) == "" {
			return model.Startup{}, ErrValidation
		}
	}

	if err := s.store.SaveTeam(ctx, id, in.Founders, in.TeamSize, in.SkillTags); err != nil {
		return model.Startup{}, s.saveErr(err)
	}

	return s.refreshCompleteness(ctx, id)
}

func (s *Service) UpdateTraction(ctx context.Context, id string, t model.Traction) (model.Startup, error) {
	if id == "" || t.ActiveUsers < 0 || t.Customers < 0 || t.MonthlyRevenue < 0 {
		return model.Startup{}, ErrValidation
	}

	if err := s.store.SaveTraction(ctx, id, t); err != nil {
		return model.Startup{}, s.saveErr(err)
	}

	return s.refreshCompleteness(ctx, id)
}

func (s *Service) UpdateFinancials(ctx context.Context, id string, f model.Financials) (model.Startup, error) {
	if id == "" {
		return model.Startup{}, ErrValidation
	}

	if err := s.store.SaveFinancials(ctx, id, f); err != nil {
		return model.Startup{}, s.saveErr(err)
	}

	return s.refreshCompleteness(ctx, id)
}

type FundingInput struct {
	CurrentAsk    float64
	EquityOffered float64
	FundingStage  string
	TotalRaised   float64
}

func (s *Service) UpdateFunding(ctx context.Context, id string, in FundingInput) (model.Startup, error) {
	if id == "" || in.CurrentAsk < 0 || in.EquityOffered < 0 || in.EquityOffered > 100 {
		return model.Startup{}, ErrValidation
	}

	funding := model.Funding{
		CurrentAsk:    in.CurrentAsk,
		EquityOffered: in.EquityOffered,
		TotalRaised:   in.TotalRaised,
	}
	if in.FundingStage != "" {
		stage, ok := enums.ParseFundingStage(in.FundingStage)
		if !ok {
			return model.Startup{}, ErrValidation
		}
		funding.FundingStage = stage
	}

	if err := s.store.SaveFunding(ctx, id, funding); err != nil {
		return model.Startup{}, s.saveErr(err)
	}

	return s.refreshCompleteness(ctx, id)
}

func (s *Service) UpdateVisibility(ctx context.Context, id, visibility string) (model.Startup, error) {
	if id == "" {
		return model.Startup{}, ErrValidation
	}
	v, ok := enums.ParseVisibility(visibility)
	if !ok {
		return model.Startup{}, ErrValidation
	}

	if err := s.store.SaveVisibility(ctx, id, v); err != nil {
		return model.Startup{}, s.saveErr(err)
	}

	return s.Get(ctx, id)
}

type ProfileInput struct {
	Basic           BasicInput
	ProblemSolution ProblemSolutionInput
	Team            TeamInput
	Traction        model.Traction
	Financials      model.Financials
	Funding         FundingInput
}

// UpdateAll writes every profile section in one call, the "save entire
// profile" path. Validation mirrors the per-section updates; completeness
// is recomputed once at the end.
func (s *Service) UpdateAll(ctx context.Context, id string, in ProfileInput) (model.Startup, error) {
	name := strings.TrimSpace(in.Basic.Name)
	if id == "" || name == "" {
		return model.Startup{}, ErrValidation
	}
	industry, ok := enums.ParseIndustry(in.Basic.Industry)
	if !ok {
		return model.Startup{}, ErrValidation
	}
	stage, ok := enums.ParseStage(in.Basic.Stage)
	if !ok {
		return model.Startup{}, ErrValidation
	}
	if in.Team.TeamSize < 0 || in.Traction.ActiveUsers < 0 || in.Traction.Customers < 0 ||
		in.Traction.MonthlyRevenue < 0 || in.Funding.CurrentAsk < 0 ||
		in.Funding.EquityOffered < 0 || in.Funding.EquityOffered > 100 {
		return model.Startup{}, ErrValidation
	}
	for _, f := range in.Team.Founders {
		if strings.TrimSpace(f.Name) == "" {
			return model.Startup{}, ErrValidation
		}
	}
	funding := model.Funding{
		CurrentAsk:    in.Funding.CurrentAsk,
		EquityOffered: in.Funding.EquityOffered,
		TotalRaised:   in.Funding.TotalRaised,
	}
	if in.Funding.FundingStage != "" {
		fundingStage, ok := enums.ParseFundingStage(in.Funding.FundingStage)
		if !ok {
			return model.Startup{}, ErrValidation
		}
		funding.FundingStage = fundingStage
	}

	if err := s.store.SaveBasic(ctx, id, name, strings.TrimSpace(in.Basic.Tagline),
		strings.TrimSpace(in.Basic.Website), industry, stage, in.Basic.FoundedDate); err != nil {
		return model.Startup{}, s.saveErr(err)
	}
	if err := s.store.SaveProblemSolution(ctx, id,
		strings.TrimSpace(in.ProblemSolution.ProblemStatement),
		strings.TrimSpace(in.ProblemSolution.Solution),
		strings.TrimSpace(in.ProblemSolution.UniqueApproach)); err != nil {
		return model.Startup{}, s.saveErr(err)
	}
	if err := s.store.SaveTeam(ctx, id, in.Team.Founders, in.Team.TeamSize, in.Team.SkillTags); err != nil {
		return model.Startup{}, s.saveErr(err)
	}
	if err := s.store.SaveTraction(ctx, id, in.Traction); err != nil {
		return model.Startup{}, s.saveErr(err)
	}
	if err := s.store.SaveFinancials(ctx, id, in.Financials); err != nil {
		return model.Startup{}, s.saveErr(err)
	}
	if err := s.store.SaveFunding(ctx, id, funding); err != nil {
		return model.Startup{}, s.saveErr(err)
	}

	return s.refreshCompleteness(ctx, id)
}

func (s *Service) Approve(ctx context.Context, id string, approved bool) error {
	if id == "" {
		return ErrValidation
	}
	if err := s.store.SetApproved(ctx, id, approved); err != nil {
		return s.saveErr(err)
	}
	return nil
}

// RefreshCompleteness recomputes the derived completeness fields from the
// stored profile. Media uploads call this too since documents count.
func (s *Service) RefreshCompleteness(ctx context.Context, id string) (model.Startup, error) {
	if id == "" {
		return model.Startup{}, ErrValidation
	}
	return s.refreshCompleteness(ctx, id)
}

func (s *Service) refreshCompleteness(ctx context.Context, id string) (model.Startup, error) {
	startup, err := s.Get(ctx, id)
	if err != nil {
		return model.Startup{}, err
	}

	completeness := Completeness(startup)
	complete := completeness >= completeThreshold
	if completeness != startup.ProfileCompleteness || complete != startup.IsProfileComplete {
		if err := s.store.SetCompleteness(ctx, id, completeness, complete); err != nil {
			return model.Startup{}, s.saveErr(err)
		}
		startup.ProfileCompleteness = completeness
		startup.IsProfileComplete = complete
	}

	return startup, nil
}

func (s *Service) saveErr(err error) error {
	if errors.Is(err, pgrepo.ErrStartupNotFound) {
		return ErrStartupNotFound
	}
	return fmt.Errorf("save startup: %w", err)
}

// Completeness scores the profile against a fixed checklist. Each filled
// item is worth an equal share of 100.
func Completeness(s model.Startup) int {
	checks := []bool{
		s.Name != "",
		s.Tagline != "",
		s.Website != "",
		s.LogoKey != "",
		s.ProblemStatement != "",
		s.Solution != "",
		s.UniqueApproach != "",
		len(s.Founders) > 0,
		s.TeamSize > 1,
		s.Traction.ActiveUsers > 0,
		s.Traction.MonthlyRevenue > 0,
		s.Financials.BurnRate > 0,
		s.Financials.TAM > 0,
		s.Funding.CurrentAsk > 0,
		s.Documents["pitchDeck"] != "",
		s.Documents["businessModelCanvas"] != "",
	}

	filled := 0
	for _, ok := range checks {
		if ok {
			filled++
		}
	}

	return int(float64(filled)/float64(len(checks))*100 + 0.5)
}
