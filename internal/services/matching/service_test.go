package matching_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Sankalptw/incu-meta/internal/domain/enums"
	"github.com/Sankalptw/incu-meta/internal/domain/model"
	pgrepo "github.com/Sankalptw/incu-meta/internal/repo/postgres"
	"github.com/Sankalptw/incu-meta/internal/services/matching"
)

type fakeTxRunner struct{}

func (fakeTxRunner) WithTx(ctx context.Context, fn func(context.Context, pgx.Tx) error) error {
	return fn(ctx, nil)
}

type storedRequest struct {
	req        model.MatchingRequest
	recipients []model.Recipient
	responses  []model.Response
}

type fakeRequestStore struct {
	requests map[string]*storedRequest
}

func newFakeRequestStore() *fakeRequestStore {
	return &fakeRequestStore{requests: map[string]*storedRequest{}}
}

func (s *fakeRequestStore) CreateRequest(_ context.Context, _ pgx.Tx, req model.MatchingRequest, recipients []model.Recipient, responses []model.Response) error {
	s.requests[req.ID] = &storedRequest{
		req:        req,
		recipients: append([]model.Recipient(nil), recipients...),
		responses:  append([]model.Response(nil), responses...),
	}
	return nil
}

func (s *fakeRequestStore) GetRequest(_ context.Context, id string) (model.MatchingRequest, error) {
	stored, ok := s.requests[id]
	if !ok {
		return model.MatchingRequest{}, pgrepo.ErrRequestNotFound
	}
	return stored.req, nil
}

func (s *fakeRequestStore) GetRequestForUpdate(ctx context.Context, _ pgx.Tx, id string) (model.MatchingRequest, error) {
	return s.GetRequest(ctx, id)
}

func (s *fakeRequestStore) ListResponses(_ context.Context, requestID string) ([]model.Response, error) {
	stored, ok := s.requests[requestID]
	if !ok {
		return nil, pgrepo.ErrRequestNotFound
	}
	return append([]model.Response(nil), stored.responses...), nil
}

func (s *fakeRequestStore) ListResponsesTx(ctx context.Context, _ pgx.Tx, requestID string) ([]model.Response, error) {
	return s.ListResponses(ctx, requestID)
}

func (s *fakeRequestStore) UpdateResponse(_ context.Context, _ pgx.Tx, requestID, incubatorID string, status enums.ResponseStatus, feedback, contactPerson, contactEmail string, respondedAt time.Time) (bool, error) {
	stored, ok := s.requests[requestID]
	if !ok {
		return false, nil
	}
	for i := range stored.responses {
		if stored.responses[i].IncubatorID == incubatorID {
			at := respondedAt
			stored.responses[i].Status = status
			stored.responses[i].Feedback = feedback
			stored.responses[i].ContactPerson = contactPerson
			stored.responses[i].ContactEmail = contactEmail
			stored.responses[i].RespondedAt = &at
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeRequestStore) SetScoreAndStatus(_ context.Context, _ pgx.Tx, requestID string, score float64, status enums.RequestStatus) error {
	stored, ok := s.requests[requestID]
	if !ok {
		return pgrepo.ErrRequestNotFound
	}
	stored.req.MatchScore = score
	stored.req.Status = status
	return nil
}

func (s *fakeRequestStore) SetSelection(_ context.Context, _ pgx.Tx, requestID string, sel model.Selection) error {
	stored, ok := s.requests[requestID]
	if !ok {
		return pgrepo.ErrRequestNotFound
	}
	stored.req.Selected = &sel
	stored.req.Status = enums.RequestMatched
	return nil
}

func (s *fakeRequestStore) ListSummariesByStartup(_ context.Context, startupID string) ([]pgrepo.StartupRequestSummary, error) {
	var items []pgrepo.StartupRequestSummary
	for _, stored := range s.requests {
		if stored.req.StartupID != startupID {
			continue
		}
		summary := pgrepo.StartupRequestSummary{
			ID:              stored.req.ID,
			Domain:          stored.req.StartupDomain,
			Status:          stored.req.Status,
			MatchScore:      stored.req.MatchScore,
			TotalIncubators: len(stored.responses),
			Selected:        stored.req.Selected,
			CreatedAt:       stored.req.CreatedAt,
		}
		for _, resp := range stored.responses {
			switch resp.Status {
			case enums.ResponseInterested:
				summary.InterestedCount++
			case enums.ResponseRejected:
				summary.RejectedCount++
			}
		}
		items = append(items, summary)
	}
	return items, nil
}

func (s *fakeRequestStore) ListByIncubator(_ context.Context, incubatorID string) ([]pgrepo.IncubatorRequestView, error) {
	var items []pgrepo.IncubatorRequestView
	for _, stored := range s.requests {
		for _, resp := range stored.responses {
			if resp.IncubatorID == incubatorID {
				items = append(items, pgrepo.IncubatorRequestView{Request: stored.req, MyResponse: resp})
			}
		}
	}
	return items, nil
}

type fakeStartupStore struct {
	byID map[string]model.Startup
}

func (s *fakeStartupStore) GetByID(_ context.Context, id string) (model.Startup, error) {
	startup, ok := s.byID[id]
	if !ok {
		return model.Startup{}, pgrepo.ErrStartupNotFound
	}
	return startup, nil
}

type fakeAccountStore struct {
	byID map[string]model.Account
}

func (s *fakeAccountStore) GetByID(_ context.Context, id string) (model.Account, error) {
	acc, ok := s.byID[id]
	if !ok {
		return model.Account{}, pgrepo.ErrAccountNotFound
	}
	return acc, nil
}

func (s *fakeAccountStore) ListIncubatorsBySpecialization(_ context.Context, domain enums.Domain) ([]model.Account, error) {
	var items []model.Account
	for _, acc := range s.byID {
		if acc.Role == enums.RoleIncubator && acc.Specialization == domain {
			items = append(items, acc)
		}
	}
	return items, nil
}

type fixture struct {
	svc      *matching.Service
	store    *fakeRequestStore
	startups *fakeStartupStore
	accounts *fakeAccountStore
}

func newFixture() *fixture {
	store := newFakeRequestStore()
	startups := &fakeStartupStore{byID: map[string]model.Startup{
		"startup-1": {
			ID:    "startup-1",
			Name:  "NeuroStack",
			Email: "founders@neurostack.io",
			Founders: []model.Founder{
				{Name: "Priya Sharma", Role: "CEO"},
			},
		},
	}}
	accounts := &fakeAccountStore{byID: map[string]model.Account{
		"inc-1": {
			ID: "inc-1", Name: "Alice", Email: "alice@ailab.io",
			Role: enums.RoleIncubator, Specialization: enums.DomainAIML,
			IncubatorName: "AI Lab", Location: "Bengaluru",
		},
		"inc-2": {
			ID: "inc-2", Name: "Bob", Email: "bob@mlworks.io",
			Role: enums.RoleIncubator, Specialization: enums.DomainAIML,
			IncubatorName: "ML Works",
		},
		"inc-fin": {
			ID: "inc-fin", Name: "Carol", Email: "carol@finhub.io",
			Role: enums.RoleIncubator, Specialization: enums.DomainFinance,
		},
	}}

	svc := matching.NewService(matching.Dependencies{
		Tx:       fakeTxRunner{},
		Requests: store,
		Startups: startups,
		Accounts: accounts,
	})
	return &fixture{svc: svc, store: store, startups: startups, accounts: accounts}
}

func createRequest(t *testing.T, f *fixture, domain string) string {
	t.Helper()
	res, err := f.svc.Create(context.Background(), "startup-1", matching.CreateInput{
		Domain:           domain,
		ProblemStatement: "Model deployment is slow",
		Solution:         "One-click inference hosting",
	})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	return res.RequestID
}

func TestCreateFailsWhenNoIncubatorsForDomain(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), "startup-1", matching.CreateInput{
		Domain:           "Healthcare",
		ProblemStatement: "p",
		Solution:         "s",
	})
	if !errors.Is(err, matching.ErrNoIncubators) {
		t.Fatalf("expected no-incubators error, got %v", err)
	}
	if len(f.store.requests) != 0 {
		t.Fatalf("nothing should be persisted, found %d requests", len(f.store.requests))
	}
}

func TestCreateRejectsUnknownDomain(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), "startup-1", matching.CreateInput{
		Domain:           "Quantum",
		ProblemStatement: "p",
		Solution:         "s",
	})
	if !errors.Is(err, matching.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateFansOutPendingResponses(t *testing.T) {
	f := newFixture()

	res, err := f.svc.Create(context.Background(), "startup-1", matching.CreateInput{
		Domain:           "AI/ML",
		ProblemStatement: "Model deployment is slow",
		Solution:         "One-click inference hosting",
	})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if res.IncubatorsCount != 2 {
		t.Fatalf("expected fan-out to 2 incubators, got %d", res.IncubatorsCount)
	}

	stored := f.store.requests[res.RequestID]
	if len(stored.recipients) != len(stored.responses) || len(stored.recipients) != 2 {
		t.Fatalf("recipients=%d responses=%d, want 2 and 2", len(stored.recipients), len(stored.responses))
	}
	for i, resp := range stored.responses {
		if resp.Status != enums.ResponsePending {
			t.Fatalf("response %d should start pending, got %q", i, resp.Status)
		}
		if resp.RespondedAt != nil {
			t.Fatalf("response %d should have no responded timestamp", i)
		}
		if resp.IncubatorID != stored.recipients[i].IncubatorID {
			t.Fatalf("response %d does not mirror recipient %d", i, i)
		}
	}
	if stored.req.Status != enums.RequestPending || stored.req.MatchScore != 0 {
		t.Fatalf("new request should be pending with zero score")
	}
}

func TestRespondRecomputesScoreAndAdvancesStatus(t *testing.T) {
	f := newFixture()
	reqID := createRequest(t, f, "AI/ML")
	ctx := context.Background()

	res, err := f.svc.Respond(ctx, "inc-1", reqID, matching.RespondInput{Decision: "interested"})
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if res.MatchScore != 100 {
		t.Fatalf("one interested of one responded should score 100, got %v", res.MatchScore)
	}
	if res.Status != enums.RequestInProgress {
		t.Fatalf("first interested response should advance status, got %q", res.Status)
	}

	res, err = f.svc.Respond(ctx, "inc-2", reqID, matching.RespondInput{Decision: "rejected"})
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if res.MatchScore != 50 {
		t.Fatalf("one of two responded interested should score 50, got %v", res.MatchScore)
	}
	if res.Status != enums.RequestInProgress {
		t.Fatalf("rejection must not revert status, got %q", res.Status)
	}
}

func TestRespondOverwritesOwnEntry(t *testing.T) {
	f := newFixture()
	reqID := createRequest(t, f, "AI/ML")
	ctx := context.Background()

	if _, err := f.svc.Respond(ctx, "inc-1", reqID, matching.RespondInput{Decision: "rejected"}); err != nil {
		t.Fatalf("first respond: %v", err)
	}
	res, err := f.svc.Respond(ctx, "inc-1", reqID, matching.RespondInput{Decision: "interested", Feedback: "changed my mind"})
	if err != nil {
		t.Fatalf("second respond: %v", err)
	}
	if res.MatchScore != 100 {
		t.Fatalf("overwrite should leave one interested of one responded, got %v", res.MatchScore)
	}

	responses, err := f.svc.ListForIncubator(ctx, "inc-1")
	if err != nil {
		t.Fatalf("list for incubator: %v", err)
	}
	if len(responses) != 1 {
		t.Fatalf("incubator should have exactly one response entry, got %d", len(responses))
	}
	if responses[0].MyResponse.Feedback != "changed my mind" {
		t.Fatalf("feedback not overwritten: %q", responses[0].MyResponse.Feedback)
	}
}

func TestRespondRejectsOutsiderAndBadDecision(t *testing.T) {
	f := newFixture()
	reqID := createRequest(t, f, "AI/ML")
	ctx := context.Background()

	if _, err := f.svc.Respond(ctx, "inc-fin", reqID, matching.RespondInput{Decision: "interested"}); !errors.Is(err, matching.ErrNotRecipient) {
		t.Fatalf("outsider should be rejected, got %v", err)
	}
	if _, err := f.svc.Respond(ctx, "inc-1", reqID, matching.RespondInput{Decision: "pending"}); !errors.Is(err, matching.ErrValidation) {
		t.Fatalf("pending is not a decision, got %v", err)
	}
	if _, err := f.svc.Respond(ctx, "inc-1", "missing", matching.RespondInput{Decision: "interested"}); !errors.Is(err, matching.ErrRequestNotFound) {
		t.Fatalf("unknown request should be not found, got %v", err)
	}
}

func TestSelectRequiresInterestedResponse(t *testing.T) {
	f := newFixture()
	reqID := createRequest(t, f, "AI/ML")
	ctx := context.Background()

	if _, err := f.svc.Select(ctx, "startup-1", reqID, "inc-1"); !errors.Is(err, matching.ErrNotInterested) {
		t.Fatalf("selecting a pending incubator should fail, got %v", err)
	}

	if _, err := f.svc.Respond(ctx, "inc-1", reqID, matching.RespondInput{Decision: "rejected"}); err != nil {
		t.Fatalf("respond: %v", err)
	}
	if _, err := f.svc.Select(ctx, "startup-1", reqID, "inc-1"); !errors.Is(err, matching.ErrNotInterested) {
		t.Fatalf("selecting a rejecting incubator should fail, got %v", err)
	}
	if f.store.requests[reqID].req.Selected != nil {
		t.Fatalf("failed selection must not persist a selection")
	}
}

func TestSelectChecksOwnershipAndTerminalState(t *testing.T) {
	f := newFixture()
	reqID := createRequest(t, f, "AI/ML")
	ctx := context.Background()

	if _, err := f.svc.Respond(ctx, "inc-1", reqID, matching.RespondInput{Decision: "interested"}); err != nil {
		t.Fatalf("respond: %v", err)
	}

	if _, err := f.svc.Select(ctx, "someone-else", reqID, "inc-1"); !errors.Is(err, matching.ErrNotOwner) {
		t.Fatalf("foreign startup should be forbidden, got %v", err)
	}

	sel, err := f.svc.Select(ctx, "startup-1", reqID, "inc-1")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if sel.IncubatorID != "inc-1" {
		t.Fatalf("selection snapshot has wrong incubator %q", sel.IncubatorID)
	}

	if _, err := f.svc.Select(ctx, "startup-1", reqID, "inc-1"); !errors.Is(err, matching.ErrAlreadyMatched) {
		t.Fatalf("re-selection should conflict, got %v", err)
	}
	if _, err := f.svc.Respond(ctx, "inc-2", reqID, matching.RespondInput{Decision: "interested"}); !errors.Is(err, matching.ErrAlreadyMatched) {
		t.Fatalf("responding to a matched request should conflict, got %v", err)
	}
}

func TestEndToEndMatchFlow(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	res, err := f.svc.Create(ctx, "startup-1", matching.CreateInput{
		Domain:           "AI/ML",
		ProblemStatement: "Model deployment is slow",
		Solution:         "One-click inference hosting",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := f.svc.Respond(ctx, "inc-1", res.RequestID, matching.RespondInput{
		Decision: "interested", ContactEmail: "deals@ailab.io",
	}); err != nil {
		t.Fatalf("inc-1 respond: %v", err)
	}
	if _, err := f.svc.Respond(ctx, "inc-2", res.RequestID, matching.RespondInput{Decision: "rejected"}); err != nil {
		t.Fatalf("inc-2 respond: %v", err)
	}

	req, _, err := f.svc.Get(ctx, res.RequestID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if req.MatchScore != 50 {
		t.Fatalf("expected score 50, got %v", req.MatchScore)
	}

	interested, err := f.svc.InterestedIncubators(ctx, "startup-1", res.RequestID)
	if err != nil {
		t.Fatalf("interested incubators: %v", err)
	}
	if len(interested) != 1 {
		t.Fatalf("expected 1 interested incubator, got %d", len(interested))
	}
	if interested[0].ContactEmail != "deals@ailab.io" {
		t.Fatalf("response contact email should win, got %q", interested[0].ContactEmail)
	}

	if _, err := f.svc.Select(ctx, "startup-1", res.RequestID, "inc-1"); err != nil {
		t.Fatalf("select: %v", err)
	}

	req, _, err = f.svc.Get(ctx, res.RequestID)
	if err != nil {
		t.Fatalf("get after select: %v", err)
	}
	if req.Status != enums.RequestMatched {
		t.Fatalf("expected matched status, got %q", req.Status)
	}
	if req.Selected == nil || req.Selected.IncubatorID != "inc-1" {
		t.Fatalf("selection snapshot missing or wrong")
	}
	if req.MatchScore != 50 {
		t.Fatalf("selection must not change the score, got %v", req.MatchScore)
	}

	summaries, err := f.svc.ListForStartup(ctx, "startup-1")
	if err != nil {
		t.Fatalf("list for startup: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}
	if summaries[0].InterestedCount != 1 || summaries[0].RejectedCount != 1 || summaries[0].TotalIncubators != 2 {
		t.Fatalf("unexpected summary counts: %+v", summaries[0])
	}
}

func TestInterestedIncubatorsFallsBackToOnFileContact(t *testing.T) {
	f := newFixture()
	reqID := createRequest(t, f, "AI/ML")
	ctx := context.Background()

	if _, err := f.svc.Respond(ctx, "inc-1", reqID, matching.RespondInput{Decision: "interested"}); err != nil {
		t.Fatalf("respond: %v", err)
	}

	interested, err := f.svc.InterestedIncubators(ctx, "startup-1", reqID)
	if err != nil {
		t.Fatalf("interested incubators: %v", err)
	}
	if len(interested) != 1 {
		t.Fatalf("expected 1 interested incubator, got %d", len(interested))
	}
	if interested[0].ContactEmail != "alice@ailab.io" {
		t.Fatalf("should fall back to on-file email, got %q", interested[0].ContactEmail)
	}

	if _, err := f.svc.InterestedIncubators(ctx, "someone-else", reqID); !errors.Is(err, matching.ErrNotOwner) {
		t.Fatalf("foreign startup should be forbidden, got %v", err)
	}
}

func TestGetForIncubatorRequiresFanOutMembership(t *testing.T) {
	f := newFixture()
	reqID := createRequest(t, f, "AI/ML")
	ctx := context.Background()

	req, myResponse, err := f.svc.GetForIncubator(ctx, "inc-1", reqID)
	if err != nil {
		t.Fatalf("get for incubator: %v", err)
	}
	if req.ID != reqID {
		t.Fatalf("unexpected request: %+v", req)
	}
	if myResponse.Status != enums.ResponsePending {
		t.Fatalf("fresh response should be pending, got %q", myResponse.Status)
	}

	if _, _, err := f.svc.GetForIncubator(ctx, "inc-fin", reqID); !errors.Is(err, matching.ErrNotRecipient) {
		t.Fatalf("outsider should be forbidden, got %v", err)
	}
	if _, _, err := f.svc.GetForIncubator(ctx, "inc-1", "missing"); !errors.Is(err, matching.ErrRequestNotFound) {
		t.Fatalf("unknown request should be not found, got %v", err)
	}
}
