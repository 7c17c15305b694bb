package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Sankalptw/incu-meta/internal/domain/model"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

type EventStore interface {
	Create(ctx context.Context, ev model.Event) error
	List(ctx context.Context) ([]model.Event, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type AnnouncementStore interface {
	Create(ctx context.Context, a model.Announcement) error
	List(ctx context.Context) ([]model.Announcement, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type Service struct {
	events        EventStore
	announcements AnnouncementStore
	now           func() time.Time
}

func NewService(events EventStore, announcements AnnouncementStore) *Service {
	return &Service{
		events:        events,
		announcements: announcements,
		now:           time.Now,
	}
}

type EventInput struct {
	Title       string
	Description string
	Location    string
	Date        time.Time
}

func (s *Service) CreateEvent(ctx context.Context, in EventInput) (model.Event, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || in.Date.IsZero() {
		return model.Event{}, ErrValidation
	}

	ev := model.Event{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Location:    strings.TrimSpace(in.Location),
		Date:        in.Date.UTC(),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.events.Create(ctx, ev); err != nil {
		return model.Event{}, fmt.Errorf("create event: %w", err)
	}

	return ev, nil
}

func (s *Service) ListEvents(ctx context.Context) ([]model.Event, error) {
	return s.events.List(ctx)
}

func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	if id == "" {
		return ErrValidation
	}

	found, err := s.events.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

type AnnouncementInput struct {
	Title   string
	Message string
}

func (s *Service) CreateAnnouncement(ctx context.Context, in AnnouncementInput) (model.Announcement, error) {
	title := strings.TrimSpace(in.Title)
	message := strings.TrimSpace(in.Message)
	if title == "" || message == "" {
		return model.Announcement{}, ErrValidation
	}

	a := model.Announcement{
		ID:        uuid.NewString(),
		Title:     title,
		Message:   message,
		CreatedAt: s.now().UTC(),
	}
	if err := s.announcements.Create(ctx, a); err != nil {
		return model.Announcement{}, fmt.Errorf("create announcement: %w", err)
	}

	return a, nil
}

func (s *Service) ListAnnouncements(ctx context.Context) ([]model.Announcement, error) {
	return s.announcements.List(ctx)
}

func (s *Service) DeleteAnnouncement(ctx context.Context, id string) error {
	if id == "" {
		return ErrValidation
	}

	found, err := s.announcements.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	if !found {
		return ErrNotFound
	}
	return nil
}
