package startups_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Sankalptw/incu-meta/internal/domain/enums"
	"github.com/Sankalptw/incu-meta/internal/domain/model"
	pgrepo "github.com/Sankalptw/incu-meta/internal/repo/postgres"
	"github.com/Sankalptw/incu-meta/internal/services/startups"
)

type fakeStore struct {
	byID map[string]*model.Startup
}

func newFakeStore(items ...model.Startup) *fakeStore {
	s := &fakeStore{byID: map[string]*model.Startup{}}
	for i := range items {
		item := items[i]
		s.byID[item.ID] = &item
	}
	return s
}

func (s *fakeStore) get(id string) (*model.Startup, error) {
	startup, ok := s.byID[id]
	if !ok {
		return nil, pgrepo.ErrStartupNotFound
	}
	return startup, nil
}

func (s *fakeStore) GetByID(_ context.Context, id string) (model.Startup, error) {
	startup, err := s.get(id)
	if err != nil {
		return model.Startup{}, err
	}
	return *startup, nil
}

func (s *fakeStore) List(_ context.Context, _ int) ([]model.Startup, error) {
	var items []model.Startup
	for _, startup := range s.byID {
		items = append(items, *startup)
	}
	return items, nil
}

func (s *fakeStore) SaveBasic(_ context.Context, id string, name, tagline, website string, industry enums.Industry, stage enums.Stage, foundedDate *time.Time) error {
	startup, err := s.get(id)
	if err != nil {
		return err
	}
	startup.Name = name
	startup.Tagline = tagline
	startup.Website = website
	startup.Industry = industry
	startup.Stage = stage
	startup.FoundedDate = foundedDate
	return nil
}

func (s *fakeStore) SaveProblemSolution(_ context.Context, id, problem, solution, uniqueApproach string) error {
	startup, err := s.get(id)
	if err != nil {
		return err
	}
	startup.ProblemStatement = problem
	startup.Solution = solution
	startup.UniqueApproach = uniqueApproach
	return nil
}

func (s *fakeStore) SaveTeam(_ context.Context, id string, founders []model.Founder, teamSize int, skillTags []string) error {
	startup, err := s.get(id)
	if err != nil {
		return err
	}
	startup.Founders = founders
	startup.TeamSize = teamSize
	startup.SkillTags = skillTags
	return nil
}

func (s *fakeStore) SaveTraction(_ context.Context, id string, t model.Traction) error {
	startup, err := s.get(id)
	if err != nil {
		return err
	}
	startup.Traction = t
	return nil
}

func (s *fakeStore) SaveFinancials(_ context.Context, id string, f model.Financials) error {
	startup, err := s.get(id)
	if err != nil {
		return err
	}
	startup.Financials = f
	return nil
}

func (s *fakeStore) SaveFunding(_ context.Context, id string, f model.Funding) error {
	startup, err := s.get(id)
	if err != nil {
		return err
	}
	startup.Funding = f
	return nil
}

func (s *fakeStore) SaveVisibility(_ context.Context, id string, visibility enums.Visibility) error {
	startup, err := s.get(id)
	if err != nil {
		return err
	}
	startup.Visibility = visibility
	return nil
}

func (s *fakeStore) SetApproved(_ context.Context, id string, approved bool) error {
	startup, err := s.get(id)
	if err != nil {
		return err
	}
	startup.IsApproved = approved
	return nil
}

func (s *fakeStore) SetCompleteness(_ context.Context, id string, completeness int, complete bool) error {
	startup, err := s.get(id)
	if err != nil {
		return err
	}
	startup.ProfileCompleteness = completeness
	startup.IsProfileComplete = complete
	return nil
}

func TestUpdateBasicValidatesEnums(t *testing.T) {
	store := newFakeStore(model.Startup{ID: "s1", Name: "Acme"})
	svc := startups.NewService(store)
	ctx := context.Background()

	_, err := svc.UpdateBasic(ctx, "s1", startups.BasicInput{Name: "Acme", Industry: "Banking", Stage: "MVP"})
	if !errors.Is(err, startups.ErrValidation) {
		t.Fatalf("unknown industry should be invalid, got %v", err)
	}

	updated, err := svc.UpdateBasic(ctx, "s1", startups.BasicInput{
		Name: "Acme Robotics", Tagline: "Robots for all", Industry: "AI", Stage: "MVP",
	})
	if err != nil {
		t.Fatalf("update basic: %v", err)
	}
	if updated.Name != "Acme Robotics" || updated.Tagline != "Robots for all" {
		t.Fatalf("fields not saved: %+v", updated)
	}
}

func TestUpdateUnknownStartup(t *testing.T) {
	svc := startups.NewService(newFakeStore())

	_, err := svc.UpdateTraction(context.Background(), "missing", model.Traction{ActiveUsers: 10})
	if !errors.Is(err, startups.ErrStartupNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCompletenessGrowsWithProfile(t *testing.T) {
	store := newFakeStore(model.Startup{ID: "s1", Name: "Acme", Industry: enums.IndustryAI, Stage: enums.StageMVP})
	svc := startups.NewService(store)
	ctx := context.Background()

	startup, err := svc.UpdateProblemSolution(ctx, "s1", startups.ProblemSolutionInput{
		ProblemStatement: "p", Solution: "s", UniqueApproach: "u",
	})
	if err != nil {
		t.Fatalf("update problem solution: %v", err)
	}
	first := startup.ProfileCompleteness
	if first <= 0 {
		t.Fatalf("completeness should be positive after filling sections, got %d", first)
	}
	if startup.IsProfileComplete {
		t.Fatalf("sparse profile should not be complete")
	}

	if _, err := svc.UpdateTeam(ctx, "s1", startups.TeamInput{
		Founders: []model.Founder{{Name: "Priya"}}, TeamSize: 4,
	}); err != nil {
		t.Fatalf("update team: %v", err)
	}
	startup, err = svc.UpdateTraction(ctx, "s1", model.Traction{ActiveUsers: 500, MonthlyRevenue: 10000})
	if err != nil {
		t.Fatalf("update traction: %v", err)
	}
	if startup.ProfileCompleteness <= first {
		t.Fatalf("completeness should grow, was %d now %d", first, startup.ProfileCompleteness)
	}
}

func TestCompletenessChecklistFull(t *testing.T) {
	full := model.Startup{
		Name: "Acme", Tagline: "t", Website: "w", LogoKey: "logo.png",
		ProblemStatement: "p", Solution: "s", UniqueApproach: "u",
		Founders: []model.Founder{{Name: "Priya"}}, TeamSize: 4,
		Traction:   model.Traction{ActiveUsers: 100, MonthlyRevenue: 5000},
		Financials: model.Financials{BurnRate: 2000, TAM: 1e9},
		Funding:    model.Funding{CurrentAsk: 250000},
		Documents:  map[string]string{"pitchDeck": "a.pdf", "businessModelCanvas": "b.pdf"},
	}
	if got := startups.Completeness(full); got != 100 {
		t.Fatalf("full profile should score 100, got %d", got)
	}
	if got := startups.Completeness(model.Startup{}); got != 0 {
		t.Fatalf("empty profile should score 0, got %d", got)
	}
}

func TestUpdateFundingValidation(t *testing.T) {
	store := newFakeStore(model.Startup{ID: "s1", Name: "Acme"})
	svc := startups.NewService(store)
	ctx := context.Background()

	if _, err := svc.UpdateFunding(ctx, "s1", startups.FundingInput{EquityOffered: 150}); !errors.Is(err, startups.ErrValidation) {
		t.Fatalf("equity over 100%% should be invalid, got %v", err)
	}
	if _, err := svc.UpdateFunding(ctx, "s1", startups.FundingInput{FundingStage: "Series Z"}); !errors.Is(err, startups.ErrValidation) {
		t.Fatalf("unknown stage should be invalid, got %v", err)
	}

	updated, err := svc.UpdateFunding(ctx, "s1", startups.FundingInput{
		CurrentAsk: 500000, EquityOffered: 10, FundingStage: "Seed", TotalRaised: 100000,
	})
	if err != nil {
		t.Fatalf("update funding: %v", err)
	}
	if updated.Funding.FundingStage != enums.FundingSeed {
		t.Fatalf("funding stage not saved: %+v", updated.Funding)
	}
}

func TestApproveAndVisibility(t *testing.T) {
	store := newFakeStore(model.Startup{ID: "s1", Name: "Acme"})
	svc := startups.NewService(store)
	ctx := context.Background()

	if err := svc.Approve(ctx, "s1", true); err != nil {
		t.Fatalf("approve: %v", err)
	}
	startup, err := svc.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !startup.IsApproved {
		t.Fatalf("startup should be approved")
	}

	if _, err := svc.UpdateVisibility(ctx, "s1", "Everyone"); !errors.Is(err, startups.ErrValidation) {
		t.Fatalf("unknown visibility should be invalid, got %v", err)
	}
	startup, err = svc.UpdateVisibility(ctx, "s1", "Public")
	if err != nil {
		t.Fatalf("update visibility: %v", err)
	}
	if startup.Visibility != enums.VisibilityPublic {
		t.Fatalf("visibility not saved: %q", startup.Visibility)
	}
}

func TestPublicProfileHonorsVisibility(t *testing.T) {
	store := newFakeStore(
		model.Startup{ID: "s1", Name: "Acme", Visibility: enums.VisibilityPrivate,
			PasswordHash: "hash", Financials: model.Financials{BurnRate: 9000}},
		model.Startup{ID: "s2", Name: "Beta", Visibility: enums.VisibilityIncubatorsOnly},
		model.Startup{ID: "s3", Name: "Gamma", Visibility: enums.VisibilityPublic},
	)
	svc := startups.NewService(store)
	ctx := context.Background()

	if _, err := svc.PublicProfile(ctx, "s1", enums.RoleIncubator); !errors.Is(err, startups.ErrProfileHidden) {
		t.Fatalf("private profile should be hidden, got %v", err)
	}
	if _, err := svc.PublicProfile(ctx, "s2", enums.RoleStartup); !errors.Is(err, startups.ErrProfileHidden) {
		t.Fatalf("incubators-only profile should hide from startups, got %v", err)
	}

	visible, err := svc.PublicProfile(ctx, "s2", enums.RoleIncubator)
	if err != nil {
		t.Fatalf("incubator view: %v", err)
	}
	if visible.Name != "Beta" {
		t.Fatalf("unexpected profile: %+v", visible)
	}

	admin, err := svc.PublicProfile(ctx, "s1", enums.RoleAdmin)
	if err != nil {
		t.Fatalf("admin view: %v", err)
	}
	if admin.PasswordHash != "" || admin.Financials.BurnRate != 0 {
		t.Fatalf("sensitive fields must be elided: %+v", admin)
	}

	if _, err := svc.PublicProfile(ctx, "s3", enums.RoleStartup); err != nil {
		t.Fatalf("public profile should be visible to startups: %v", err)
	}
}

func TestUpdateAllSavesEverySection(t *testing.T) {
	store := newFakeStore(model.Startup{ID: "s1", Name: "Acme"})
	svc := startups.NewService(store)
	ctx := context.Background()

	updated, err := svc.UpdateAll(ctx, "s1", startups.ProfileInput{
		Basic: startups.BasicInput{Name: "Acme Robotics", Industry: "AI", Stage: "Revenue"},
		ProblemSolution: startups.ProblemSolutionInput{
			ProblemStatement: "manual work", Solution: "robots",
		},
		Team: startups.TeamInput{
			Founders: []model.Founder{{Name: "Asha"}}, TeamSize: 4,
		},
		Traction:   model.Traction{ActiveUsers: 1200, MonthlyRevenue: 30000},
		Financials: model.Financials{BurnRate: 8000, TAM: 5_000_000},
		Funding:    startups.FundingInput{CurrentAsk: 250000, EquityOffered: 10, FundingStage: "Seed"},
	})
	if err != nil {
		t.Fatalf("update all: %v", err)
	}

	if updated.Name != "Acme Robotics" || updated.ProblemStatement != "manual work" {
		t.Fatalf("sections not saved: %+v", updated)
	}
	if updated.Traction.ActiveUsers != 1200 || updated.Financials.BurnRate != 8000 {
		t.Fatalf("numeric sections not saved: %+v", updated)
	}
	if updated.Funding.FundingStage != enums.FundingSeed {
		t.Fatalf("funding stage not saved: %q", updated.Funding.FundingStage)
	}
	if updated.ProfileCompleteness == 0 {
		t.Fatalf("completeness should be recomputed")
	}

	_, err = svc.UpdateAll(ctx, "s1", startups.ProfileInput{
		Basic:   startups.BasicInput{Name: "Acme", Industry: "AI", Stage: "Revenue"},
		Funding: startups.FundingInput{EquityOffered: 150},
	})
	if !errors.Is(err, startups.ErrValidation) {
		t.Fatalf("equity above 100 should be invalid, got %v", err)
	}
}
