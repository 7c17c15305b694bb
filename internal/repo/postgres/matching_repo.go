package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sankalptw/incu-meta/internal/domain/enums"
	"github.com/Sankalptw/incu-meta/internal/domain/model"
)

var ErrRequestNotFound = errors.New("matching request not found")

type MatchingRepo struct {
	pool *pgxpool.Pool
}

// StartupRequestSummary is the startup-facing projection: one row per
// request with the response counts already aggregated.
type StartupRequestSummary struct {
	ID              string
	Domain          enums.Domain
	Status          enums.RequestStatus
	MatchScore      float64
	InterestedCount int
	RejectedCount   int
	TotalIncubators int
	Selected        *model.Selection
	CreatedAt       time.Time
}

// IncubatorRequestView pairs a request with the viewing incubator's own
// response row.
type IncubatorRequestView struct {
	Request    model.MatchingRequest
	MyResponse model.Response
}

func NewMatchingRepo(pool *pgxpool.Pool) *MatchingRepo {
	return &MatchingRepo{pool: pool}
}

// CreateRequest inserts the request row plus one recipient and one pending
// response row per fanned-out incubator, all inside the caller's tx so a
// partial fan-out can never be observed.
func (r *MatchingRepo) CreateRequest(ctx context.Context, tx pgx.Tx, req model.MatchingRequest, recipients []model.Recipient, responses []model.Response) error {
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}
	if len(recipients) == 0 || len(recipients) != len(responses) {
		return fmt.Errorf("invalid fan-out payload")
	}

	_, err := tx.Exec(ctx, `
INSERT INTO matching_requests (
	id, startup_id, startup_name, startup_domain, startup_logo,
	founder_name, founder_email, problem_statement, solution,
	match_score, status, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
`, req.ID, req.StartupID, req.StartupName, string(req.StartupDomain),
		req.StartupLogo, req.FounderName, req.FounderEmail,
		req.ProblemStatement, req.Solution, req.MatchScore,
		string(req.Status), req.CreatedAt, req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert matching request: %w", err)
	}

	for i, rec := range recipients {
		_, err := tx.Exec(ctx, `
INSERT INTO matching_recipients (
	request_id, position, incubator_id, incubator_name, specialization, sent_at
) VALUES ($1, $2, $3, $4, $5, $6)
`, req.ID, i, rec.IncubatorID, rec.IncubatorName, string(rec.Specialization), rec.SentAt)
		if err != nil {
			return fmt.Errorf("insert recipient: %w", err)
		}
	}

	for _, resp := range responses {
		_, err := tx.Exec(ctx, `
INSERT INTO matching_responses (
	request_id, incubator_id, incubator_name, status
) VALUES ($1, $2, $3, $4)
`, req.ID, resp.IncubatorID, resp.IncubatorName, string(resp.Status))
		if err != nil {
			return fmt.Errorf("insert response: %w", err)
		}
	}

	return nil
}

const requestColumns = `
	id,
	startup_id,
	COALESCE(startup_name, ''),
	startup_domain,
	COALESCE(startup_logo, ''),
	COALESCE(founder_name, ''),
	COALESCE(founder_email, ''),
	COALESCE(problem_statement, ''),
	COALESCE(solution, ''),
	match_score,
	status,
	selected_incubator_id,
	selected_incubator_name,
	selected_at,
	created_at,
	updated_at`

func (r *MatchingRepo) GetRequest(ctx context.Context, id string) (model.MatchingRequest, error) {
	if r.pool == nil {
		return model.MatchingRequest{}, fmt.Errorf("postgres pool is nil")
	}

	row := r.pool.QueryRow(ctx, `SELECT`+requestColumns+`
FROM matching_requests
WHERE id = $1
`, id)
	return scanRequest(row)
}

// GetRequestForUpdate locks the request row for the rest of the tx.
// Respond and Select both take this lock first, so concurrent writers to
// the same request serialize instead of racing on the derived score.
func (r *MatchingRepo) GetRequestForUpdate(ctx context.Context, tx pgx.Tx, id string) (model.MatchingRequest, error) {
	if tx == nil {
		return model.MatchingRequest{}, fmt.Errorf("transaction is required")
	}

	row := tx.QueryRow(ctx, `SELECT`+requestColumns+`
FROM matching_requests
WHERE id = $1
FOR UPDATE
`, id)
	return scanRequest(row)
}

func scanRequest(row rowScanner) (model.MatchingRequest, error) {
	var req model.MatchingRequest
	var domain, status string
	var selID, selName *string
	var selAt *time.Time

	err := row.Scan(
		&req.ID,
		&req.StartupID,
		&req.StartupName,
		&domain,
		&req.StartupLogo,
		&req.FounderName,
		&req.FounderEmail,
		&req.ProblemStatement,
		&req.Solution,
		&req.MatchScore,
		&status,
		&selID,
		&selName,
		&selAt,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.MatchingRequest{}, ErrRequestNotFound
		}
		return model.MatchingRequest{}, fmt.Errorf("scan matching request: %w", err)
	}

	req.StartupDomain = enums.Domain(domain)
	req.Status = enums.RequestStatus(status)
	if selID != nil && selAt != nil {
		sel := model.Selection{IncubatorID: *selID, SelectedAt: *selAt}
		if selName != nil {
			sel.IncubatorName = *selName
		}
		req.Selected = &sel
	}

	return req, nil
}

func (r *MatchingRepo) ListRecipients(ctx context.Context, requestID string) ([]model.Recipient, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT incubator_id, incubator_name, specialization, sent_at
FROM matching_recipients
WHERE request_id = $1
ORDER BY position ASC
`, requestID)
	if err != nil {
		return nil, fmt.Errorf("list recipients: %w", err)
	}
	defer rows.Close()

	var items []model.Recipient
	for rows.Next() {
		var rec model.Recipient
		var specialization string
		if err := rows.Scan(&rec.IncubatorID, &rec.IncubatorName, &specialization, &rec.SentAt); err != nil {
			return nil, fmt.Errorf("scan recipient: %w", err)
		}
		rec.Specialization = enums.Domain(specialization)
		items = append(items, rec)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate recipients: %w", rows.Err())
	}

	return items, nil
}

func (r *MatchingRepo) ListResponses(ctx context.Context, requestID string) ([]model.Response, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	return listResponses(ctx, r.pool, requestID)
}

func (r *MatchingRepo) ListResponsesTx(ctx context.Context, tx pgx.Tx, requestID string) ([]model.Response, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction is required")
	}
	return listResponses(ctx, tx, requestID)
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func listResponses(ctx context.Context, q querier, requestID string) ([]model.Response, error) {
	rows, err := q.Query(ctx, `
SELECT
	r.incubator_id,
	r.incubator_name,
	r.status,
	COALESCE(r.feedback, ''),
	COALESCE(r.contact_person, ''),
	COALESCE(r.contact_email, ''),
	r.responded_at
FROM matching_responses r
JOIN matching_recipients rec
	ON rec.request_id = r.request_id AND rec.incubator_id = r.incubator_id
WHERE r.request_id = $1
ORDER BY rec.position ASC
`, requestID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	defer rows.Close()

	var items []model.Response
	for rows.Next() {
		var resp model.Response
		var status string
		if err := rows.Scan(
			&resp.IncubatorID,
			&resp.IncubatorName,
			&status,
			&resp.Feedback,
			&resp.ContactPerson,
			&resp.ContactEmail,
			&resp.RespondedAt,
		); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		resp.Status = enums.ResponseStatus(status)
		items = append(items, resp)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate responses: %w", rows.Err())
	}

	return items, nil
}

// UpdateResponse replaces the single (request_id, incubator_id) row in
// place. Returns false when the incubator is not part of the fan-out.
func (r *MatchingRepo) UpdateResponse(ctx context.Context, tx pgx.Tx, requestID, incubatorID string, status enums.ResponseStatus, feedback, contactPerson, contactEmail string, respondedAt time.Time) (bool, error) {
	if tx == nil {
		return false, fmt.Errorf("transaction is required")
	}

	tag, err := tx.Exec(ctx, `
UPDATE matching_responses SET
	status = $3,
	feedback = NULLIF($4, ''),
	contact_person = NULLIF($5, ''),
	contact_email = NULLIF($6, ''),
	responded_at = $7
WHERE request_id = $1 AND incubator_id = $2
`, requestID, incubatorID, string(status), feedback, contactPerson, contactEmail, respondedAt)
	if err != nil {
		return false, fmt.Errorf("update response: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *MatchingRepo) SetScoreAndStatus(ctx context.Context, tx pgx.Tx, requestID string, score float64, status enums.RequestStatus) error {
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}

	tag, err := tx.Exec(ctx, `
UPDATE matching_requests SET
	match_score = $2,
	status = $3,
	updated_at = NOW()
WHERE id = $1
`, requestID, score, string(status))
	if err != nil {
		return fmt.Errorf("update request score: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRequestNotFound
	}

	return nil
}

func (r *MatchingRepo) SetSelection(ctx context.Context, tx pgx.Tx, requestID string, sel model.Selection) error {
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}

	tag, err := tx.Exec(ctx, `
UPDATE matching_requests SET
	selected_incubator_id = $2,
	selected_incubator_name = $3,
	selected_at = $4,
	status = $5,
	updated_at = NOW()
WHERE id = $1
`, requestID, sel.IncubatorID, sel.IncubatorName, sel.SelectedAt, string(enums.RequestMatched))
	if err != nil {
		return fmt.Errorf("update request selection: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRequestNotFound
	}

	return nil
}

func (r *MatchingRepo) ListSummariesByStartup(ctx context.Context, startupID string) ([]StartupRequestSummary, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT
	q.id,
	q.startup_domain,
	q.status,
	q.match_score,
	COUNT(*) FILTER (WHERE r.status = 'interested'),
	COUNT(*) FILTER (WHERE r.status = 'rejected'),
	COUNT(*),
	q.selected_incubator_id,
	q.selected_incubator_name,
	q.selected_at,
	q.created_at
FROM matching_requests q
LEFT JOIN matching_responses r ON r.request_id = q.id
WHERE q.startup_id = $1
GROUP BY q.id
ORDER BY q.created_at DESC, q.id DESC
`, startupID)
	if err != nil {
		return nil, fmt.Errorf("list startup requests: %w", err)
	}
	defer rows.Close()

	var items []StartupRequestSummary
	for rows.Next() {
		var item StartupRequestSummary
		var domain, status string
		var selID, selName *string
		var selAt *time.Time
		if err := rows.Scan(
			&item.ID,
			&domain,
			&status,
			&item.MatchScore,
			&item.InterestedCount,
			&item.RejectedCount,
			&item.TotalIncubators,
			&selID,
			&selName,
			&selAt,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan startup request summary: %w", err)
		}
		item.Domain = enums.Domain(domain)
		item.Status = enums.RequestStatus(status)
		if selID != nil && selAt != nil {
			sel := model.Selection{IncubatorID: *selID, SelectedAt: *selAt}
			if selName != nil {
				sel.IncubatorName = *selName
			}
			item.Selected = &sel
		}
		items = append(items, item)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate startup request summaries: %w", rows.Err())
	}

	return items, nil
}

// ListByIncubator returns every request fanned out to the incubator, newest
// first, with the incubator's own response row attached.
func (r *MatchingRepo) ListByIncubator(ctx context.Context, incubatorID string) ([]IncubatorRequestView, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT
	q.id,
	q.startup_id,
	COALESCE(q.startup_name, ''),
	q.startup_domain,
	COALESCE(q.startup_logo, ''),
	COALESCE(q.founder_name, ''),
	COALESCE(q.founder_email, ''),
	COALESCE(q.problem_statement, ''),
	COALESCE(q.solution, ''),
	q.match_score,
	q.status,
	q.created_at,
	r.status,
	COALESCE(r.feedback, ''),
	COALESCE(r.contact_person, ''),
	COALESCE(r.contact_email, ''),
	r.responded_at
FROM matching_requests q
JOIN matching_responses r ON r.request_id = q.id
WHERE r.incubator_id = $1
ORDER BY q.created_at DESC, q.id DESC
`, incubatorID)
	if err != nil {
		return nil, fmt.Errorf("list incubator requests: %w", err)
	}
	defer rows.Close()

	var items []IncubatorRequestView
	for rows.Next() {
		var view IncubatorRequestView
		var domain, reqStatus, respStatus string
		if err := rows.Scan(
			&view.Request.ID,
			&view.Request.StartupID,
			&view.Request.StartupName,
			&domain,
			&view.Request.StartupLogo,
			&view.Request.FounderName,
			&view.Request.FounderEmail,
			&view.Request.ProblemStatement,
			&view.Request.Solution,
			&view.Request.MatchScore,
			&reqStatus,
			&view.Request.CreatedAt,
			&respStatus,
			&view.MyResponse.Feedback,
			&view.MyResponse.ContactPerson,
			&view.MyResponse.ContactEmail,
			&view.MyResponse.RespondedAt,
		); err != nil {
			return nil, fmt.Errorf("scan incubator request: %w", err)
		}
		view.Request.StartupDomain = enums.Domain(domain)
		view.Request.Status = enums.RequestStatus(reqStatus)
		view.MyResponse.IncubatorID = incubatorID
		view.MyResponse.Status = enums.ResponseStatus(respStatus)
		items = append(items, view)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate incubator requests: %w", rows.Err())
	}

	return items, nil
}
