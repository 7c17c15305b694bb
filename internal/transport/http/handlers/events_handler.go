package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	eventsvc "github.com/Sankalptw/incu-meta/internal/services/events"
	"github.com/Sankalptw/incu-meta/internal/transport/http/dto"
	httperrors "github.com/Sankalptw/incu-meta/internal/transport/http/errors"
)

type EventsHandler struct {
	service *eventsvc.Service
}

func NewEventsHandler(service *eventsvc.Service) *EventsHandler {
	return &EventsHandler{service: service}
}

func (h *EventsHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "EVENTS_SERVICE_UNAVAILABLE", "events service is unavailable")
		return
	}

	var req dto.CreateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	event, err := h.service.CreateEvent(r.Context(), eventsvc.EventInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Date:        req.Date,
	})
	if err != nil {
		handleEventsError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, event)
}

func (h *EventsHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "EVENTS_SERVICE_UNAVAILABLE", "events service is unavailable")
		return
	}

	items, err := h.service.ListEvents(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to list events")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.EventsResponse{Items: items})
}

func (h *EventsHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "EVENTS_SERVICE_UNAVAILABLE", "events service is unavailable")
		return
	}

	if err := h.service.DeleteEvent(r.Context(), chi.URLParam(r, "eventID")); err != nil {
		handleEventsError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, struct {
		OK bool `json:"ok"`
	}{OK: true})
}

func (h *EventsHandler) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "EVENTS_SERVICE_UNAVAILABLE", "events service is unavailable")
		return
	}

	var req dto.CreateAnnouncementRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	announcement, err := h.service.CreateAnnouncement(r.Context(), eventsvc.AnnouncementInput{
		Title:   req.Title,
		Message: req.Message,
	})
	if err != nil {
		handleEventsError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, announcement)
}

func (h *EventsHandler) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "EVENTS_SERVICE_UNAVAILABLE", "events service is unavailable")
		return
	}

	items, err := h.service.ListAnnouncements(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to list announcements")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.AnnouncementsResponse{Items: items})
}

func (h *EventsHandler) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "EVENTS_SERVICE_UNAVAILABLE", "events service is unavailable")
		return
	}

	if err := h.service.DeleteAnnouncement(r.Context(), chi.URLParam(r, "announcementID")); err != nil {
		handleEventsError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, struct {
		OK bool `json:"ok"`
	}{OK: true})
}

func handleEventsError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, eventsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid payload")
	case errors.Is(err, eventsvc.ErrNotFound):
		writeNotFound(w, "NOT_FOUND", "not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}
