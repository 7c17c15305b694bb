package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sankalptw/incu-meta/internal/domain/enums"
	"github.com/Sankalptw/incu-meta/internal/domain/model"
)

var ErrStartupNotFound = errors.New("startup not found")

type StartupRepo struct {
	pool *pgxpool.Pool
}

func NewStartupRepo(pool *pgxpool.Pool) *StartupRepo {
	return &StartupRepo{pool: pool}
}

const startupColumns = `
	id,
	name,
	email,
	password_hash,
	COALESCE(logo_key, ''),
	COALESCE(website, ''),
	COALESCE(tagline, ''),
	industry,
	stage,
	founded_date,
	COALESCE(problem_statement, ''),
	COALESCE(solution, ''),
	COALESCE(unique_approach, ''),
	COALESCE(founders, '[]'::jsonb),
	team_size,
	COALESCE(skill_tags, '{}'),
	active_users,
	customers,
	monthly_revenue,
	growth_percentage,
	COALESCE(partnerships, '{}'),
	aov,
	cac,
	burn_rate,
	gross_margin,
	runway_months,
	tam,
	sam,
	som,
	current_ask,
	equity_offered,
	COALESCE(funding_stage, ''),
	total_raised,
	COALESCE(documents, '{}'::jsonb),
	visibility,
	is_approved,
	is_profile_complete,
	profile_completeness,
	created_at,
	updated_at`

func (r *StartupRepo) Create(ctx context.Context, s model.Startup) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	_, err := r.pool.Exec(ctx, `
INSERT INTO startups (
	id, name, email, password_hash, industry, stage,
	monthly_revenue, team_size, visibility,
	created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`, s.ID, s.Name, s.Email, s.PasswordHash, string(s.Industry), string(s.Stage),
		s.Traction.MonthlyRevenue, s.TeamSize, string(s.Visibility),
		s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert startup: %w", err)
	}

	return nil
}

func (r *StartupRepo) GetByID(ctx context.Context, id string) (model.Startup, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *StartupRepo) GetByEmail(ctx context.Context, email string) (model.Startup, error) {
	return r.getOne(ctx, `WHERE email = $1`, email)
}

func (r *StartupRepo) getOne(ctx context.Context, where string, arg any) (model.Startup, error) {
	if r.pool == nil {
		return model.Startup{}, fmt.Errorf("postgres pool is nil")
	}

	row := r.pool.QueryRow(ctx, `SELECT`+startupColumns+`
FROM startups
`+where, arg)

	s, err := scanStartup(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Startup{}, ErrStartupNotFound
		}
		return model.Startup{}, fmt.Errorf("query startup: %w", err)
	}
	return s, nil
}

func (r *StartupRepo) List(ctx context.Context, limit int) ([]model.Startup, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.pool.Query(ctx, `SELECT`+startupColumns+`
FROM startups
ORDER BY created_at DESC, id DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list startups: %w", err)
	}
	defer rows.Close()

	var items []model.Startup
	for rows.Next() {
		s, err := scanStartup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan startup: %w", err)
		}
		items = append(items, s)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate startups: %w", rows.Err())
	}

	return items, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStartup(row rowScanner) (model.Startup, error) {
	var s model.Startup
	var industry, stage, fundingStage, visibility string
	var foundersJSON, documentsJSON []byte

	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Email,
		&s.PasswordHash,
		&s.LogoKey,
		&s.Website,
		&s.Tagline,
		&industry,
		&stage,
		&s.FoundedDate,
		&s.ProblemStatement,
		&s.Solution,
		&s.UniqueApproach,
		&foundersJSON,
		&s.TeamSize,
		&s.SkillTags,
		&s.Traction.ActiveUsers,
		&s.Traction.Customers,
		&s.Traction.MonthlyRevenue,
		&s.Traction.GrowthPercentage,
		&s.Traction.Partnerships,
		&s.Financials.AOV,
		&s.Financials.CAC,
		&s.Financials.BurnRate,
		&s.Financials.GrossMargin,
		&s.Financials.RunwayMonths,
		&s.Financials.TAM,
		&s.Financials.SAM,
		&s.Financials.SOM,
		&s.Funding.CurrentAsk,
		&s.Funding.EquityOffered,
		&fundingStage,
		&s.Funding.TotalRaised,
		&documentsJSON,
		&visibility,
		&s.IsApproved,
		&s.IsProfileComplete,
		&s.ProfileCompleteness,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return model.Startup{}, err
	}

	s.Industry = enums.Industry(industry)
	s.Stage = enums.Stage(stage)
	s.Funding.FundingStage = enums.FundingStage(fundingStage)
	s.Visibility = enums.Visibility(visibility)

	if len(foundersJSON) > 0 {
		if err := json.Unmarshal(foundersJSON, &s.Founders); err != nil {
			return model.Startup{}, fmt.Errorf("decode founders: %w", err)
		}
	}
	if len(documentsJSON) > 0 {
		if err := json.Unmarshal(documentsJSON, &s.Documents); err != nil {
			return model.Startup{}, fmt.Errorf("decode documents: %w", err)
		}
	}

	return s, nil
}

func (r *StartupRepo) SaveBasic(ctx context.Context, id string, name, tagline, website string, industry enums.Industry, stage enums.Stage, foundedDate *time.Time) error {
	return r.update(ctx, `
UPDATE startups SET
	name = $2,
	tagline = $3,
	website = $4,
	industry = $5,
	stage = $6,
	founded_date = $7,
	updated_at = NOW()
WHERE id = $1
`, id, name, tagline, website, string(industry), string(stage), foundedDate)
}

func (r *StartupRepo) SaveProblemSolution(ctx context.Context, id, problem, solution, uniqueApproach string) error {
	return r.update(ctx, `
UPDATE startups SET
	problem_statement = $2,
	solution = $3,
	unique_approach = $4,
	updated_at = NOW()
WHERE id = $1
`, id, problem, solution, uniqueApproach)
}

func (r *StartupRepo) SaveTeam(ctx context.Context, id string, founders []model.Founder, teamSize int, skillTags []string) error {
	foundersJSON, err := json.Marshal(founders)
	if err != nil {
		return fmt.Errorf("encode founders: %w", err)
	}

	return r.update(ctx, `
UPDATE startups SET
	founders = $2,
	team_size = $3,
	skill_tags = $4,
	updated_at = NOW()
WHERE id = $1
`, id, foundersJSON, teamSize, skillTags)
}

func (r *StartupRepo) SaveTraction(ctx context.Context, id string, t model.Traction) error {
	return r.update(ctx, `
UPDATE startups SET
	active_users = $2,
	customers = $3,
	monthly_revenue = $4,
	growth_percentage = $5,
	partnerships = $6,
	updated_at = NOW()
WHERE id = $1
`, id, t.ActiveUsers, t.Customers, t.MonthlyRevenue, t.GrowthPercentage, t.Partnerships)
}

func (r *StartupRepo) SaveFinancials(ctx context.Context, id string, f model.Financials) error {
	return r.update(ctx, `
UPDATE startups SET
	aov = $2,
	cac = $3,
	burn_rate = $4,
	gross_margin = $5,
	runway_months = $6,
	tam = $7,
	sam = $8,
	som = $9,
	updated_at = NOW()
WHERE id = $1
`, id, f.AOV, f.CAC, f.BurnRate, f.GrossMargin, f.RunwayMonths, f.TAM, f.SAM, f.SOM)
}

func (r *StartupRepo) SaveFunding(ctx context.Context, id string, f model.Funding) error {
	return r.update(ctx, `
UPDATE startups SET
	current_ask = $2,
	equity_offered = $3,
	funding_stage = NULLIF($4, ''),
	total_raised = $5,
	updated_at = NOW()
WHERE id = $1
`, id, f.CurrentAsk, f.EquityOffered, string(f.FundingStage), f.TotalRaised)
}

func (r *StartupRepo) SaveVisibility(ctx context.Context, id string, visibility enums.Visibility) error {
	return r.update(ctx, `
UPDATE startups SET
	visibility = $2,
	updated_at = NOW()
WHERE id = $1
`, id, string(visibility))
}

func (r *StartupRepo) SetLogoKey(ctx context.Context, id, objectKey string) error {
	return r.update(ctx, `
UPDATE startups SET
	logo_key = $2,
	updated_at = NOW()
WHERE id = $1
`, id, objectKey)
}

// SetDocumentKey records an uploaded document under its slot inside the
// documents jsonb map.
func (r *StartupRepo) SetDocumentKey(ctx context.Context, id, slot, objectKey string) error {
	return r.update(ctx, `
UPDATE startups SET
	documents = COALESCE(documents, '{}'::jsonb) || jsonb_build_object($2::text, $3::text),
	updated_at = NOW()
WHERE id = $1
`, id, slot, objectKey)
}

func (r *StartupRepo) SetApproved(ctx context.Context, id string, approved bool) error {
	return r.update(ctx, `
UPDATE startups SET
	is_approved = $2,
	updated_at = NOW()
WHERE id = $1
`, id, approved)
}

func (r *StartupRepo) SetCompleteness(ctx context.Context, id string, completeness int, complete bool) error {
	return r.update(ctx, `
UPDATE startups SET
	profile_completeness = $2,
	is_profile_complete = $3,
	updated_at = NOW()
WHERE id = $1
`, id, completeness, complete)
}

func (r *StartupRepo) update(ctx context.Context, query string, args ...any) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update startup: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrStartupNotFound
	}

	return nil
}
