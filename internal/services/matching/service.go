package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Sankalptw/incu-meta/internal/domain/enums"
	"github.com/Sankalptw/incu-meta/internal/domain/model"
	pgrepo "github.com/Sankalptw/incu-meta/internal/repo/postgres"
)

var (
	ErrValidation      = errors.New("validation error")
	ErrRequestNotFound = errors.New("matching request not found")
	ErrNoIncubators    = errors.New("no incubators for this domain")
	ErrNotRecipient    = errors.New("incubator is not part of this request")
	ErrNotOwner        = errors.New("request belongs to another startup")
	ErrAlreadyMatched  = errors.New("request is already matched")
	ErrNotInterested   = errors.New("incubator has not expressed interest")
)

type RequestStore interface {
	CreateRequest(ctx context.Context, tx pgx.Tx, req model.MatchingRequest, recipients []model.Recipient, responses []model.Response) error
	GetRequest(ctx context.Context, id string) (model.MatchingRequest, error)
	GetRequestForUpdate(ctx context.Context, tx pgx.Tx, id string) (model.MatchingRequest, error)
	ListResponses(ctx context.Context, requestID string) ([]model.Response, error)
	ListResponsesTx(ctx context.Context, tx pgx.Tx, requestID string) ([]model.Response, error)
	UpdateResponse(ctx context.Context, tx pgx.Tx, requestID, incubatorID string, status enums.ResponseStatus, feedback, contactPerson, contactEmail string, respondedAt time.Time) (bool, error)
	SetScoreAndStatus(ctx context.Context, tx pgx.Tx, requestID string, score float64, status enums.RequestStatus) error
	SetSelection(ctx context.Context, tx pgx.Tx, requestID string, sel model.Selection) error
	ListSummariesByStartup(ctx context.Context, startupID string) ([]pgrepo.StartupRequestSummary, error)
	ListByIncubator(ctx context.Context, incubatorID string) ([]pgrepo.IncubatorRequestView, error)
}

type StartupStore interface {
	GetByID(ctx context.Context, id string) (model.Startup, error)
}

type AccountStore interface {
	GetByID(ctx context.Context, id string) (model.Account, error)
	ListIncubatorsBySpecialization(ctx context.Context, domain enums.Domain) ([]model.Account, error)
}

type TxRunner interface {
	WithTx(ctx context.Context, fn func(context.Context, pgx.Tx) error) error
}

type Service struct {
	tx       TxRunner
	requests RequestStore
	startups StartupStore
	accounts AccountStore
	now      func() time.Time
}

type Dependencies struct {
	Tx       TxRunner
	Requests RequestStore
	Startups StartupStore
	Accounts AccountStore
}

func NewService(deps Dependencies) *Service {
	return &Service{
		tx:       deps.Tx,
		requests: deps.Requests,
		startups: deps.Startups,
		accounts: deps.Accounts,
		now:      time.Now,
	}
}

type CreateInput struct {
	Domain           string
	ProblemStatement string
	Solution         string
}

type CreateResult struct {
	RequestID       string
	IncubatorsCount int
}

// Create fans a startup's request out to every incubator specializing in
// the declared domain. The request, its recipient snapshots and one
// pending response per recipient are written in a single transaction, so
// the response set always mirrors the fan-out set.
func (s *Service) Create(ctx context.Context, startupID string, in CreateInput) (CreateResult, error) {
	if startupID == "" {
		return CreateResult{}, ErrValidation
	}

	domain, ok := enums.ParseDomain(in.Domain)
	if !ok {
		return CreateResult{}, ErrValidation
	}
	problem := strings.TrimSpace(in.ProblemStatement)
	solution := strings.TrimSpace(in.Solution)
	if problem == "" || solution == "" {
		return CreateResult{}, ErrValidation
	}

	startup, err := s.startups.GetByID(ctx, startupID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrStartupNotFound) {
			return CreateResult{}, ErrValidation
		}
		return CreateResult{}, fmt.Errorf("get startup: %w", err)
	}

	incubators, err := s.accounts.ListIncubatorsBySpecialization(ctx, domain)
	if err != nil {
		return CreateResult{}, fmt.Errorf("list incubators: %w", err)
	}
	if len(incubators) == 0 {
		return CreateResult{}, ErrNoIncubators
	}

	now := s.now().UTC()
	req := model.MatchingRequest{
		ID:               uuid.NewString(),
		StartupID:        startup.ID,
		StartupName:      startup.Name,
		StartupDomain:    domain,
		StartupLogo:      startup.LogoKey,
		FounderName:      founderName(startup),
		FounderEmail:     startup.Email,
		ProblemStatement: problem,
		Solution:         solution,
		MatchScore:       0,
		Status:           enums.RequestPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	recipients := make([]model.Recipient, 0, len(incubators))
	responses := make([]model.Response, 0, len(incubators))
	for _, inc := range incubators {
		recipients = append(recipients, model.Recipient{
			IncubatorID:    inc.ID,
			IncubatorName:  incubatorName(inc),
			Specialization: inc.Specialization,
			SentAt:         now,
		})
		responses = append(responses, model.Response{
			IncubatorID:   inc.ID,
			IncubatorName: incubatorName(inc),
			Status:        enums.ResponsePending,
		})
	}

	err = s.tx.WithTx(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		return s.requests.CreateRequest(txCtx, tx, req, recipients, responses)
	})
	if err != nil {
		return CreateResult{}, fmt.Errorf("create matching request: %w", err)
	}

	return CreateResult{RequestID: req.ID, IncubatorsCount: len(incubators)}, nil
}

type RespondInput struct {
	Decision      string
	Feedback      string
	ContactPerson string
	ContactEmail  string
}

type RespondResult struct {
	MatchScore float64
	Status     enums.RequestStatus
}

// Respond records one incubator's decision. The request row is locked for
// the whole transaction, so two incubators answering at once serialize
// and neither update is lost when the score is recomputed.
func (s *Service) Respond(ctx context.Context, incubatorID, requestID string, in RespondInput) (RespondResult, error) {
	if incubatorID == "" || requestID == "" {
		return RespondResult{}, ErrValidation
	}
	decision, ok := enums.ParseDecision(in.Decision)
	if !ok {
		return RespondResult{}, ErrValidation
	}

	var result RespondResult
	err := s.tx.WithTx(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		req, err := s.requests.GetRequestForUpdate(txCtx, tx, requestID)
		if err != nil {
			if errors.Is(err, pgrepo.ErrRequestNotFound) {
				return ErrRequestNotFound
			}
			return err
		}
		if req.Status == enums.RequestMatched {
			return ErrAlreadyMatched
		}

		found, err := s.requests.UpdateResponse(txCtx, tx, requestID, incubatorID,
			decision, strings.TrimSpace(in.Feedback), strings.TrimSpace(in.ContactPerson),
			strings.TrimSpace(in.ContactEmail), s.now().UTC())
		if err != nil {
			return err
		}
		if !found {
			return ErrNotRecipient
		}

		responses, err := s.requests.ListResponsesTx(txCtx, tx, requestID)
		if err != nil {
			return err
		}

		score := computeScore(responses)
		status := req.Status
		if status == enums.RequestPending && decision == enums.ResponseInterested {
			status = enums.RequestInProgress
		}

		if err := s.requests.SetScoreAndStatus(txCtx, tx, requestID, score, status); err != nil {
			return err
		}

		result = RespondResult{MatchScore: score, Status: status}
		return nil
	})
	if err != nil {
		return RespondResult{}, err
	}

	return result, nil
}

// Select finalizes the startup's choice. Only the owning startup may
// select, only an interested incubator may be chosen, and a matched
// request stays matched.
func (s *Service) Select(ctx context.Context, startupID, requestID, incubatorID string) (model.Selection, error) {
	if startupID == "" || requestID == "" || incubatorID == "" {
		return model.Selection{}, ErrValidation
	}

	var selection model.Selection
	err := s.tx.WithTx(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		req, err := s.requests.GetRequestForUpdate(txCtx, tx, requestID)
		if err != nil {
			if errors.Is(err, pgrepo.ErrRequestNotFound) {
				return ErrRequestNotFound
			}
			return err
		}
		if req.StartupID != startupID {
			return ErrNotOwner
		}
		if req.Status == enums.RequestMatched {
			return ErrAlreadyMatched
		}

		responses, err := s.requests.ListResponsesTx(txCtx, tx, requestID)
		if err != nil {
			return err
		}

		var chosen *model.Response
		for i := range responses {
			if responses[i].IncubatorID == incubatorID {
				chosen = &responses[i]
				break
			}
		}
		if chosen == nil {
			return ErrNotRecipient
		}
		if chosen.Status != enums.ResponseInterested {
			return ErrNotInterested
		}

		selection = model.Selection{
			IncubatorID:   chosen.IncubatorID,
			IncubatorName: chosen.IncubatorName,
			SelectedAt:    s.now().UTC(),
		}
		return s.requests.SetSelection(txCtx, tx, requestID, selection)
	})
	if err != nil {
		return model.Selection{}, err
	}

	return selection, nil
}

func (s *Service) ListForStartup(ctx context.Context, startupID string) ([]pgrepo.StartupRequestSummary, error) {
	if startupID == "" {
		return nil, ErrValidation
	}
	return s.requests.ListSummariesByStartup(ctx, startupID)
}

// ListForIncubator returns every request fanned out to the caller, not
// just the unanswered ones, with the caller's own response attached so
// the client can render both queues from one call.
func (s *Service) ListForIncubator(ctx context.Context, incubatorID string) ([]pgrepo.IncubatorRequestView, error) {
	if incubatorID == "" {
		return nil, ErrValidation
	}
	return s.requests.ListByIncubator(ctx, incubatorID)
}

func (s *Service) Get(ctx context.Context, requestID string) (model.MatchingRequest, []model.Response, error) {
	if requestID == "" {
		return model.MatchingRequest{}, nil, ErrValidation
	}

	req, err := s.requests.GetRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrRequestNotFound) {
			return model.MatchingRequest{}, nil, ErrRequestNotFound
		}
		return model.MatchingRequest{}, nil, err
	}

	responses, err := s.requests.ListResponses(ctx, requestID)
	if err != nil {
		return model.MatchingRequest{}, nil, err
	}

	return req, responses, nil
}

// GetForIncubator returns the request detail with the caller's own
// response. Callers outside the original fan-out are rejected.
func (s *Service) GetForIncubator(ctx context.Context, incubatorID, requestID string) (model.MatchingRequest, model.Response, error) {
	if incubatorID == "" {
		return model.MatchingRequest{}, model.Response{}, ErrValidation
	}

	req, responses, err := s.Get(ctx, requestID)
	if err != nil {
		return model.MatchingRequest{}, model.Response{}, err
	}

	for _, resp := range responses {
		if resp.IncubatorID == incubatorID {
			return req, resp, nil
		}
	}

	return model.MatchingRequest{}, model.Response{}, ErrNotRecipient
}

// InterestedIncubator is a contact snapshot for the startup. The contact
// email prefers the one supplied in the response over the incubator's
// on-file login email.
type InterestedIncubator struct {
	IncubatorID   string
	IncubatorName string
	ContactPerson string
	ContactEmail  string
	Feedback      string
	Location      string
	Website       string
	RespondedAt   *time.Time
}

func (s *Service) InterestedIncubators(ctx context.Context, startupID, requestID string) ([]InterestedIncubator, error) {
	if startupID == "" || requestID == "" {
		return nil, ErrValidation
	}

	req, err := s.requests.GetRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrRequestNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	if req.StartupID != startupID {
		return nil, ErrNotOwner
	}

	responses, err := s.requests.ListResponses(ctx, requestID)
	if err != nil {
		return nil, err
	}

	var items []InterestedIncubator
	for _, resp := range responses {
		if resp.Status != enums.ResponseInterested {
			continue
		}

		item := InterestedIncubator{
			IncubatorID:   resp.IncubatorID,
			IncubatorName: resp.IncubatorName,
			ContactPerson: resp.ContactPerson,
			ContactEmail:  resp.ContactEmail,
			Feedback:      resp.Feedback,
			RespondedAt:   resp.RespondedAt,
		}

		acc, err := s.accounts.GetByID(ctx, resp.IncubatorID)
		if err == nil {
			item.Location = acc.Location
			item.Website = acc.Website
			if item.ContactEmail == "" {
				item.ContactEmail = acc.Email
			}
			if item.ContactPerson == "" {
				item.ContactPerson = acc.Name
			}
		} else if !errors.Is(err, pgrepo.ErrAccountNotFound) {
			return nil, fmt.Errorf("get incubator: %w", err)
		}

		items = append(items, item)
	}

	return items, nil
}

// computeScore derives the match score from answered responses only.
// Incubators that have not responded yet do not dilute the score.
func computeScore(responses []model.Response) float64 {
	responded := 0
	interested := 0
	for _, resp := range responses {
		if resp.Status == enums.ResponsePending {
			continue
		}
		responded++
		if resp.Status == enums.ResponseInterested {
			interested++
		}
	}
	if responded == 0 {
		return 0
	}
	return float64(interested) / float64(responded) * 100
}

func founderName(s model.Startup) string {
	if len(s.Founders) > 0 && s.Founders[0].Name != "" {
		return s.Founders[0].Name
	}
	return s.Name
}

func incubatorName(acc model.Account) string {
	if acc.IncubatorName != "" {
		return acc.IncubatorName
	}
	return acc.Name
}
