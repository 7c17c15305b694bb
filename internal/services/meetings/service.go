package meetings

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Sankalptw/incu-meta/internal/domain/model"
	pgrepo "github.com/Sankalptw/incu-meta/internal/repo/postgres"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

var timeOfDay = regexp.MustCompile(`^([01]?\d|2[0-3]):[0-5]\d$`)

type Store interface {
	Create(ctx context.Context, m model.Meeting) error
	List(ctx context.Context) ([]model.Meeting, error)
	ListByStartup(ctx context.Context, startupID string) ([]model.Meeting, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type StartupStore interface {
	GetByID(ctx context.Context, id string) (model.Startup, error)
}

type Service struct {
	store    Store
	startups StartupStore
	now      func() time.Time
}

func NewService(store Store, startups StartupStore) *Service {
	return &Service{
		store:    store,
		startups: startups,
		now:      time.Now,
	}
}

type ScheduleInput struct {
	StartupID   string
	Date        time.Time
	Time        string
	Description string
}

func (s *Service) Schedule(ctx context.Context, in ScheduleInput) (model.Meeting, error) {
	if in.StartupID == "" || in.Date.IsZero() || !timeOfDay.MatchString(in.Time) {
		return model.Meeting{}, ErrValidation
	}

	startup, err := s.startups.GetByID(ctx, in.StartupID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrStartupNotFound) {
			return model.Meeting{}, ErrNotFound
		}
		return model.Meeting{}, fmt.Errorf("get startup: %w", err)
	}

	meeting := model.Meeting{
		ID:          uuid.NewString(),
		StartupID:   startup.ID,
		StartupName: startup.Name,
		Date:        in.Date.UTC(),
		Time:        in.Time,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.store.Create(ctx, meeting); err != nil {
		return model.Meeting{}, fmt.Errorf("create meeting: %w", err)
	}

	return meeting, nil
}

func (s *Service) List(ctx context.Context) ([]model.Meeting, error) {
	return s.store.List(ctx)
}

func (s *Service) ListForStartup(ctx context.Context, startupID string) ([]model.Meeting, error) {
	if startupID == "" {
		return nil, ErrValidation
	}
	return s.store.ListByStartup(ctx, startupID)
}

func (s *Service) Cancel(ctx context.Context, id string) error {
	if id == "" {
		return ErrValidation
	}

	found, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete meeting: %w", err)
	}
	if !found {
		return ErrNotFound
	}
	return nil
}
