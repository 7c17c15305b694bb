package handlers

import (
	"errors"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	authsvc "github.com/Sankalptw/incu-meta/internal/services/auth"
	matchingsvc "github.com/Sankalptw/incu-meta/internal/services/matching"
	"github.com/Sankalptw/incu-meta/internal/transport/http/dto"
	httperrors "github.com/Sankalptw/incu-meta/internal/transport/http/errors"
)

type MatchingHandler struct {
	service *matchingsvc.Service
}

func NewMatchingHandler(service *matchingsvc.Service) *MatchingHandler {
	return &MatchingHandler{service: service}
}

func (h *MatchingHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCHING_SERVICE_UNAVAILABLE", "matching service is unavailable")
		return
	}

	var req dto.CreateMatchingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	res, err := h.service.Create(r.Context(), identity.AccountID, matchingsvc.CreateInput{
		Domain:           req.Domain,
		ProblemStatement: req.ProblemStatement,
		Solution:         req.Solution,
	})
	if err != nil {
		handleMatchingError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.CreateMatchingResponse{
		RequestID:       res.RequestID,
		IncubatorsCount: res.IncubatorsCount,
	})
}

func (h *MatchingHandler) ListForStartup(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCHING_SERVICE_UNAVAILABLE", "matching service is unavailable")
		return
	}

	summaries, err := h.service.ListForStartup(r.Context(), identity.AccountID)
	if err != nil {
		handleMatchingError(w, err)
		return
	}

	items := make([]dto.StartupRequestItem, 0, len(summaries))
	for _, summary := range summaries {
		item := dto.StartupRequestItem{
			ID:              summary.ID,
			Domain:          string(summary.Domain),
			Status:          string(summary.Status),
			MatchScore:      roundScore(summary.MatchScore),
			InterestedCount: summary.InterestedCount,
			RejectedCount:   summary.RejectedCount,
			TotalIncubators: summary.TotalIncubators,
			CreatedAt:       summary.CreatedAt,
		}
		if summary.Selected != nil {
			item.Selected = &dto.SelectionResponse{
				IncubatorID:   summary.Selected.IncubatorID,
				IncubatorName: summary.Selected.IncubatorName,
				SelectedAt:    summary.Selected.SelectedAt,
			}
		}
		items = append(items, item)
	}

	httperrors.Write(w, http.StatusOK, dto.StartupRequestsResponse{Items: items})
}

func (h *MatchingHandler) ListForIncubator(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCHING_SERVICE_UNAVAILABLE", "matching service is unavailable")
		return
	}

	views, err := h.service.ListForIncubator(r.Context(), identity.AccountID)
	if err != nil {
		handleMatchingError(w, err)
		return
	}

	items := make([]dto.IncubatorRequestItem, 0, len(views))
	for _, view := range views {
		items = append(items, dto.IncubatorRequestItem{
			ID:               view.Request.ID,
			StartupID:        view.Request.StartupID,
			StartupName:      view.Request.StartupName,
			Domain:           string(view.Request.StartupDomain),
			StartupLogo:      view.Request.StartupLogo,
			FounderName:      view.Request.FounderName,
			FounderEmail:     view.Request.FounderEmail,
			ProblemStatement: view.Request.ProblemStatement,
			Solution:         view.Request.Solution,
			MatchScore:       roundScore(view.Request.MatchScore),
			Status:           string(view.Request.Status),
			MyResponse: dto.MyResponseView{
				Status:        string(view.MyResponse.Status),
				Feedback:      view.MyResponse.Feedback,
				ContactPerson: view.MyResponse.ContactPerson,
				ContactEmail:  view.MyResponse.ContactEmail,
				RespondedAt:   view.MyResponse.RespondedAt,
			},
			CreatedAt: view.Request.CreatedAt,
		})
	}

	httperrors.Write(w, http.StatusOK, dto.IncubatorRequestsResponse{Items: items})
}

// Detail serves a single request to an incubator in its fan-out.
func (h *MatchingHandler) Detail(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCHING_SERVICE_UNAVAILABLE", "matching service is unavailable")
		return
	}

	req, myResponse, err := h.service.GetForIncubator(r.Context(), identity.AccountID, chi.URLParam(r, "requestID"))
	if err != nil {
		handleMatchingError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.IncubatorRequestItem{
		ID:               req.ID,
		StartupID:        req.StartupID,
		StartupName:      req.StartupName,
		Domain:           string(req.StartupDomain),
		StartupLogo:      req.StartupLogo,
		FounderName:      req.FounderName,
		FounderEmail:     req.FounderEmail,
		ProblemStatement: req.ProblemStatement,
		Solution:         req.Solution,
		MatchScore:       roundScore(req.MatchScore),
		Status:           string(req.Status),
		MyResponse: dto.MyResponseView{
			Status:        string(myResponse.Status),
			Feedback:      myResponse.Feedback,
			ContactPerson: myResponse.ContactPerson,
			ContactEmail:  myResponse.ContactEmail,
			RespondedAt:   myResponse.RespondedAt,
		},
		CreatedAt: req.CreatedAt,
	})
}

func (h *MatchingHandler) Respond(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCHING_SERVICE_UNAVAILABLE", "matching service is unavailable")
		return
	}

	var req dto.RespondRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	res, err := h.service.Respond(r.Context(), identity.AccountID, chi.URLParam(r, "requestID"), matchingsvc.RespondInput{
		Decision:      req.Status,
		Feedback:      req.Feedback,
		ContactPerson: req.ContactPerson,
		ContactEmail:  req.ContactEmail,
	})
	if err != nil {
		handleMatchingError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.RespondResponse{
		OK:         true,
		MatchScore: roundScore(res.MatchScore),
		Status:     string(res.Status),
	})
}

func (h *MatchingHandler) Select(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCHING_SERVICE_UNAVAILABLE", "matching service is unavailable")
		return
	}

	var req dto.SelectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	selection, err := h.service.Select(r.Context(), identity.AccountID, chi.URLParam(r, "requestID"), req.IncubatorID)
	if err != nil {
		handleMatchingError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.SelectResponse{
		OK: true,
		Selected: dto.SelectionResponse{
			IncubatorID:   selection.IncubatorID,
			IncubatorName: selection.IncubatorName,
			SelectedAt:    selection.SelectedAt,
		},
	})
}

func (h *MatchingHandler) InterestedIncubators(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCHING_SERVICE_UNAVAILABLE", "matching service is unavailable")
		return
	}

	interested, err := h.service.InterestedIncubators(r.Context(), identity.AccountID, chi.URLParam(r, "requestID"))
	if err != nil {
		handleMatchingError(w, err)
		return
	}

	items := make([]dto.InterestedIncubatorItem, 0, len(interested))
	for _, item := range interested {
		items = append(items, dto.InterestedIncubatorItem{
			IncubatorID:   item.IncubatorID,
			IncubatorName: item.IncubatorName,
			ContactPerson: item.ContactPerson,
			ContactEmail:  item.ContactEmail,
			Feedback:      item.Feedback,
			Location:      item.Location,
			Website:       item.Website,
			RespondedAt:   item.RespondedAt,
		})
	}

	httperrors.Write(w, http.StatusOK, dto.InterestedIncubatorsResponse{Items: items})
}

func handleMatchingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, matchingsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid matching request")
	case errors.Is(err, matchingsvc.ErrNotInterested):
		writeBadRequest(w, "NOT_INTERESTED", "incubator has not expressed interest")
	case errors.Is(err, matchingsvc.ErrNoIncubators):
		writeNotFound(w, "NO_INCUBATORS", "no incubators for this domain")
	case errors.Is(err, matchingsvc.ErrRequestNotFound):
		writeNotFound(w, "REQUEST_NOT_FOUND", "matching request not found")
	case errors.Is(err, matchingsvc.ErrNotRecipient):
		writeForbidden(w, "NOT_RECIPIENT", "request was not sent to this incubator")
	case errors.Is(err, matchingsvc.ErrNotOwner):
		writeForbidden(w, "NOT_OWNER", "request belongs to another startup")
	case errors.Is(err, matchingsvc.ErrAlreadyMatched):
		writeConflict(w, "ALREADY_MATCHED", "request is already matched")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}

// roundScore keeps one decimal for presentation; the stored score stays
// a full float.
func roundScore(v float64) float64 {
	return math.Round(v*10) / 10
}
