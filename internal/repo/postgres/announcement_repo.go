package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sankalptw/incu-meta/internal/domain/model"
)

type AnnouncementRepo struct {
	pool *pgxpool.Pool
}

func NewAnnouncementRepo(pool *pgxpool.Pool) *AnnouncementRepo {
	return &AnnouncementRepo{pool: pool}
}

func (r *AnnouncementRepo) Create(ctx context.Context, a model.Announcement) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	_, err := r.pool.Exec(ctx, `
INSERT INTO announcements (id, title, message, created_at)
VALUES ($1, $2, $3, $4)
`, a.ID, a.Title, a.Message, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert announcement: %w", err)
	}

	return nil
}

func (r *AnnouncementRepo) List(ctx context.Context) ([]model.Announcement, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, title, message, created_at
FROM announcements
ORDER BY created_at DESC, id DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	defer rows.Close()

	var items []model.Announcement
	for rows.Next() {
		var a model.Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Message, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan announcement: %w", err)
		}
		items = append(items, a)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate announcements: %w", rows.Err())
	}

	return items, nil
}

func (r *AnnouncementRepo) Delete(ctx context.Context, id string) (bool, error) {
	if r.pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete announcement: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *AnnouncementRepo) CountAll(ctx context.Context) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM announcements`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count announcements: %w", err)
	}
	return count, nil
}
