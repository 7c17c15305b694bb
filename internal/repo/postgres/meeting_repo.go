package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sankalptw/incu-meta/internal/domain/model"
)

type MeetingRepo struct {
	pool *pgxpool.Pool
}

func NewMeetingRepo(pool *pgxpool.Pool) *MeetingRepo {
	return &MeetingRepo{pool: pool}
}

func (r *MeetingRepo) Create(ctx context.Context, m model.Meeting) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	_, err := r.pool.Exec(ctx, `
INSERT INTO meetings (id, startup_id, startup_name, date, time, description, created_at)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
`, m.ID, m.StartupID, m.StartupName, m.Date, m.Time, m.Description, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert meeting: %w", err)
	}

	return nil
}

func (r *MeetingRepo) List(ctx context.Context) ([]model.Meeting, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	return r.list(ctx, ``)
}

func (r *MeetingRepo) ListByStartup(ctx context.Context, startupID string) ([]model.Meeting, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	return r.list(ctx, `WHERE startup_id = $1`, startupID)
}

func (r *MeetingRepo) list(ctx context.Context, where string, args ...any) ([]model.Meeting, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, startup_id, COALESCE(startup_name, ''), date, time, COALESCE(description, ''), created_at
FROM meetings
`+where+`
ORDER BY date ASC, time ASC, id ASC
`, args...)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	defer rows.Close()

	var items []model.Meeting
	for rows.Next() {
		var m model.Meeting
		if err := rows.Scan(&m.ID, &m.StartupID, &m.StartupName, &m.Date, &m.Time, &m.Description, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan meeting: %w", err)
		}
		items = append(items, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate meetings: %w", rows.Err())
	}

	return items, nil
}

func (r *MeetingRepo) Delete(ctx context.Context, id string) (bool, error) {
	if r.pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM meetings WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete meeting: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *MeetingRepo) CountAll(ctx context.Context) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM meetings`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count meetings: %w", err)
	}
	return count, nil
}

func (r *MeetingRepo) CountToday(ctx context.Context) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var count int64
	err := r.pool.QueryRow(ctx, `
SELECT COUNT(*) FROM meetings WHERE date::date = CURRENT_DATE
`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count today meetings: %w", err)
	}
	return count, nil
}
