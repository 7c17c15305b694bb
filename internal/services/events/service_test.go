package events_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Sankalptw/incu-meta/internal/domain/model"
	eventsvc "github.com/Sankalptw/incu-meta/internal/services/events"
)

type fakeEventStore struct {
	items map[string]model.Event
}

func (f *fakeEventStore) Create(_ context.Context, ev model.Event) error {
	f.items[ev.ID] = ev
	return nil
}

func (f *fakeEventStore) List(_ context.Context) ([]model.Event, error) {
	out := make([]model.Event, 0, len(f.items))
	for _, ev := range f.items {
		out = append(out, ev)
	}
	return out, nil
}

func (f *fakeEventStore) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := f.items[id]; !ok {
		return false, nil
	}
	delete(f.items, id)
	return true, nil
}

type fakeAnnouncementStore struct {
	items map[string]model.Announcement
}

func (f *fakeAnnouncementStore) Create(_ context.Context, a model.Announcement) error {
	f.items[a.ID] = a
	return nil
}

func (f *fakeAnnouncementStore) List(_ context.Context) ([]model.Announcement, error) {
	out := make([]model.Announcement, 0, len(f.items))
	for _, a := range f.items {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAnnouncementStore) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := f.items[id]; !ok {
		return false, nil
	}
	delete(f.items, id)
	return true, nil
}

func newService() (*eventsvc.Service, *fakeEventStore, *fakeAnnouncementStore) {
	events := &fakeEventStore{items: map[string]model.Event{}}
	announcements := &fakeAnnouncementStore{items: map[string]model.Announcement{}}
	return eventsvc.NewService(events, announcements), events, announcements
}

func TestCreateEventTrimsAndStores(t *testing.T) {
	svc, store, _ := newService()

	date := time.Date(2026, 10, 1, 17, 0, 0, 0, time.UTC)
	ev, err := svc.CreateEvent(context.Background(), eventsvc.EventInput{
		Title:       "  Demo Day  ",
		Description: " pitch night ",
		Location:    " Bangalore ",
		Date:        date,
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if ev.ID == "" {
		t.Fatalf("expected generated id")
	}
	if ev.Title != "Demo Day" || ev.Location != "Bangalore" {
		t.Fatalf("fields not trimmed: %+v", ev)
	}
	if !ev.Date.Equal(date) {
		t.Fatalf("unexpected date: %v", ev.Date)
	}
	if _, ok := store.items[ev.ID]; !ok {
		t.Fatalf("event not persisted")
	}
}

func TestCreateEventRequiresTitleAndDate(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.CreateEvent(context.Background(), eventsvc.EventInput{
		Title: "",
		Date:  time.Now(),
	})
	if !errors.Is(err, eventsvc.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	_, err = svc.CreateEvent(context.Background(), eventsvc.EventInput{Title: "Demo Day"})
	if !errors.Is(err, eventsvc.ErrValidation) {
		t.Fatalf("expected ErrValidation for zero date, got %v", err)
	}
}

func TestDeleteEventNotFound(t *testing.T) {
	svc, _, _ := newService()

	err := svc.DeleteEvent(context.Background(), "missing")
	if !errors.Is(err, eventsvc.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAnnouncementLifecycle(t *testing.T) {
	svc, _, store := newService()

	a, err := svc.CreateAnnouncement(context.Background(), eventsvc.AnnouncementInput{
		Title:   "Office closed",
		Message: "Back on Monday",
	})
	if err != nil {
		t.Fatalf("create announcement: %v", err)
	}
	if _, ok := store.items[a.ID]; !ok {
		t.Fatalf("announcement not persisted")
	}

	if err := svc.DeleteAnnouncement(context.Background(), a.ID); err != nil {
		t.Fatalf("delete announcement: %v", err)
	}
	if len(store.items) != 0 {
		t.Fatalf("announcement not deleted")
	}

	_, err = svc.CreateAnnouncement(context.Background(), eventsvc.AnnouncementInput{Title: "x"})
	if !errors.Is(err, eventsvc.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
