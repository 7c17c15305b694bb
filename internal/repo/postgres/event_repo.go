package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sankalptw/incu-meta/internal/domain/model"
)

type EventRepo struct {
	pool *pgxpool.Pool
}

func NewEventRepo(pool *pgxpool.Pool) *EventRepo {
	return &EventRepo{pool: pool}
}

func (r *EventRepo) Create(ctx context.Context, ev model.Event) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	_, err := r.pool.Exec(ctx, `
INSERT INTO events (id, title, description, location, date, created_at)
VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
`, ev.ID, ev.Title, ev.Description, ev.Location, ev.Date, ev.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	return nil
}

func (r *EventRepo) List(ctx context.Context) ([]model.Event, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, title, description, COALESCE(location, ''), date, created_at
FROM events
ORDER BY date ASC, id ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var items []model.Event
	for rows.Next() {
		var ev model.Event
		if err := rows.Scan(&ev.ID, &ev.Title, &ev.Description, &ev.Location, &ev.Date, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		items = append(items, ev)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate events: %w", rows.Err())
	}

	return items, nil
}

// NextUpcoming returns the closest event that has not happened yet. The
// second return is false when no upcoming event exists.
func (r *EventRepo) NextUpcoming(ctx context.Context) (model.Event, bool, error) {
	if r.pool == nil {
		return model.Event{}, false, fmt.Errorf("postgres pool is nil")
	}

	var ev model.Event
	err := r.pool.QueryRow(ctx, `
SELECT id, title, description, COALESCE(location, ''), date, created_at
FROM events
WHERE date >= NOW()
ORDER BY date ASC, id ASC
LIMIT 1
`).Scan(&ev.ID, &ev.Title, &ev.Description, &ev.Location, &ev.Date, &ev.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Event{}, false, nil
		}
		return model.Event{}, false, fmt.Errorf("next upcoming event: %w", err)
	}

	return ev, true, nil
}

func (r *EventRepo) Delete(ctx context.Context, id string) (bool, error) {
	if r.pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete event: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *EventRepo) CountAll(ctx context.Context) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return count, nil
}
