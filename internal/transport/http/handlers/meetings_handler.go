package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	authsvc "github.com/Sankalptw/incu-meta/internal/services/auth"
	meetingsvc "github.com/Sankalptw/incu-meta/internal/services/meetings"
	"github.com/Sankalptw/incu-meta/internal/transport/http/dto"
	httperrors "github.com/Sankalptw/incu-meta/internal/transport/http/errors"
)

type MeetingsHandler struct {
	service *meetingsvc.Service
}

func NewMeetingsHandler(service *meetingsvc.Service) *MeetingsHandler {
	return &MeetingsHandler{service: service}
}

func (h *MeetingsHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MEETINGS_SERVICE_UNAVAILABLE", "meetings service is unavailable")
		return
	}

	var req dto.ScheduleMeetingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	meeting, err := h.service.Schedule(r.Context(), meetingsvc.ScheduleInput{
		StartupID:   req.StartupID,
		Date:        req.Date,
		Time:        req.Time,
		Description: req.Description,
	})
	if err != nil {
		handleMeetingsError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, meeting)
}

func (h *MeetingsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MEETINGS_SERVICE_UNAVAILABLE", "meetings service is unavailable")
		return
	}

	items, err := h.service.List(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to list meetings")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.MeetingsResponse{Items: items})
}

// ListMine serves the startup's own meetings.
func (h *MeetingsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MEETINGS_SERVICE_UNAVAILABLE", "meetings service is unavailable")
		return
	}

	items, err := h.service.ListForStartup(r.Context(), identity.AccountID)
	if err != nil {
		handleMeetingsError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.MeetingsResponse{Items: items})
}

func (h *MeetingsHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MEETINGS_SERVICE_UNAVAILABLE", "meetings service is unavailable")
		return
	}

	if err := h.service.Cancel(r.Context(), chi.URLParam(r, "meetingID")); err != nil {
		handleMeetingsError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, struct {
		OK bool `json:"ok"`
	}{OK: true})
}

func handleMeetingsError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, meetingsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid meeting payload")
	case errors.Is(err, meetingsvc.ErrNotFound):
		writeNotFound(w, "NOT_FOUND", "meeting or startup not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}
