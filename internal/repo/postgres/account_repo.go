package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sankalptw/incu-meta/internal/domain/enums"
	"github.com/Sankalptw/incu-meta/internal/domain/model"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrDuplicateEmail  = errors.New("email already registered")
)

type AccountRepo struct {
	pool *pgxpool.Pool
}

func NewAccountRepo(pool *pgxpool.Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

func (r *AccountRepo) Create(ctx context.Context, acc model.Account) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	_, err := r.pool.Exec(ctx, `
INSERT INTO accounts (
	id,
	name,
	email,
	password_hash,
	role,
	specialization,
	incubator_name,
	contact_number,
	location,
	website,
	created_at
) VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10, $11)
`, acc.ID, acc.Name, acc.Email, acc.PasswordHash, string(acc.Role),
		string(acc.Specialization), acc.IncubatorName, acc.ContactNumber,
		acc.Location, acc.Website, acc.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert account: %w", err)
	}

	return nil
}

func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	return r.getOne(ctx, `WHERE email = $1`, email)
}

func (r *AccountRepo) GetByID(ctx context.Context, id string) (model.Account, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *AccountRepo) getOne(ctx context.Context, where string, arg any) (model.Account, error) {
	if r.pool == nil {
		return model.Account{}, fmt.Errorf("postgres pool is nil")
	}

	row := r.pool.QueryRow(ctx, `
SELECT
	id,
	name,
	email,
	password_hash,
	role,
	COALESCE(specialization, ''),
	COALESCE(incubator_name, ''),
	COALESCE(contact_number, ''),
	COALESCE(location, ''),
	COALESCE(website, ''),
	created_at
FROM accounts
`+where, arg)

	var acc model.Account
	var role, specialization string
	err := row.Scan(
		&acc.ID,
		&acc.Name,
		&acc.Email,
		&acc.PasswordHash,
		&role,
		&specialization,
		&acc.IncubatorName,
		&acc.ContactNumber,
		&acc.Location,
		&acc.Website,
		&acc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, ErrAccountNotFound
		}
		return model.Account{}, fmt.Errorf("query account: %w", err)
	}

	acc.Role = enums.Role(role)
	acc.Specialization = enums.Domain(specialization)
	return acc, nil
}

// ListIncubatorsBySpecialization is the fan-out query: every incubator
// account whose specialization equals the request domain, oldest first so
// fan-out order is deterministic.
func (r *AccountRepo) ListIncubatorsBySpecialization(ctx context.Context, domain enums.Domain) ([]model.Account, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT
	id,
	name,
	email,
	COALESCE(specialization, ''),
	COALESCE(incubator_name, ''),
	COALESCE(location, ''),
	COALESCE(website, ''),
	created_at
FROM accounts
WHERE role = $1 AND specialization = $2
ORDER BY created_at ASC, id ASC
`, string(enums.RoleIncubator), string(domain))
	if err != nil {
		return nil, fmt.Errorf("list incubators: %w", err)
	}
	defer rows.Close()

	var items []model.Account
	for rows.Next() {
		var acc model.Account
		var specialization string
		if err := rows.Scan(
			&acc.ID,
			&acc.Name,
			&acc.Email,
			&specialization,
			&acc.IncubatorName,
			&acc.Location,
			&acc.Website,
			&acc.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan incubator: %w", err)
		}
		acc.Role = enums.RoleIncubator
		acc.Specialization = enums.Domain(specialization)
		items = append(items, acc)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate incubators: %w", rows.Err())
	}

	return items, nil
}

func (r *AccountRepo) CountAll(ctx context.Context) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return count, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
