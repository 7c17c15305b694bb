package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Sankalptw/incu-meta/internal/domain/model"
	authsvc "github.com/Sankalptw/incu-meta/internal/services/auth"
	startupsvc "github.com/Sankalptw/incu-meta/internal/services/startups"
	"github.com/Sankalptw/incu-meta/internal/transport/http/dto"
	httperrors "github.com/Sankalptw/incu-meta/internal/transport/http/errors"
)

type StartupHandler struct {
	service *startupsvc.Service
}

func NewStartupHandler(service *startupsvc.Service) *StartupHandler {
	return &StartupHandler{service: service}
}

func (h *StartupHandler) Profile(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "STARTUP_SERVICE_UNAVAILABLE", "startup service is unavailable")
		return
	}

	startup, err := h.service.Get(r.Context(), identity.AccountID)
	if err != nil {
		handleStartupError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.StartupProfileResponse{Startup: startup})
}

func (h *StartupHandler) UpdateBasic(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "STARTUP_SERVICE_UNAVAILABLE", "startup service is unavailable")
		return
	}

	var req dto.BasicInfoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	startup, err := h.service.UpdateBasic(r.Context(), identity.AccountID, startupsvc.BasicInput{
		Name:        req.Name,
		Tagline:     req.Tagline,
		Website:     req.Website,
		Industry:    req.Industry,
		Stage:       req.Stage,
		FoundedDate: req.FoundedDate,
	})
	if err != nil {
		handleStartupError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.StartupProfileResponse{Startup: startup})
}

func (h *StartupHandler) UpdateProblemSolution(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "STARTUP_SERVICE_UNAVAILABLE", "startup service is unavailable")
		return
	}

	var req dto.ProblemSolutionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	startup, err := h.service.UpdateProblemSolution(r.Context(), identity.AccountID, startupsvc.ProblemSolutionInput{
		ProblemStatement: req.ProblemStatement,
		Solution:         req.Solution,
		UniqueApproach:   req.UniqueApproach,
	})
	if err != nil {
		handleStartupError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.StartupProfileResponse{Startup: startup})
}

func (h *StartupHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "STARTUP_SERVICE_UNAVAILABLE", "startup service is unavailable")
		return
	}

	var req dto.TeamRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	founders := make([]model.Founder, 0, len(req.Founders))
	for _, f := range req.Founders {
		founders = append(founders, model.Founder{
			Name:       f.Name,
			Role:       f.Role,
			LinkedIn:   f.LinkedIn,
			Experience: f.Experience,
		})
	}

	startup, err := h.service.UpdateTeam(r.Context(), identity.AccountID, startupsvc.TeamInput{
		Founders:  founders,
		TeamSize:  req.TeamSize,
		SkillTags: req.SkillTags,
	})
	if err != nil {
		handleStartupError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.StartupProfileResponse{Startup: startup})
}

func (h *StartupHandler) UpdateTraction(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "STARTUP_SERVICE_UNAVAILABLE", "startup service is unavailable")
		return
	}

	var req dto.TractionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	startup, err := h.service.UpdateTraction(r.Context(), identity.AccountID, model.Traction{
		ActiveUsers:      req.ActiveUsers,
		Customers:        req.Customers,
		MonthlyRevenue:   req.MonthlyRevenue,
		GrowthPercentage: req.GrowthPercentage,
		Partnerships:     req.Partnerships,
	})
	if err != nil {
		handleStartupError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.StartupProfileResponse{Startup: startup})
}

func (h *StartupHandler) UpdateFinancials(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "STARTUP_SERVICE_UNAVAILABLE", "startup service is unavailable")
		return
	}

	var req dto.FinancialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	startup, err := h.service.UpdateFinancials(r.Context(), identity.AccountID, model.Financials{
		AOV:          req.AOV,
		CAC:          req.CAC,
		BurnRate:     req.BurnRate,
		GrossMargin:  req.GrossMargin,
		RunwayMonths: req.RunwayMonths,
		TAM:          req.TAM,
		SAM:          req.SAM,
		SOM:          req.SOM,
	})
	if err != nil {
		handleStartupError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.StartupProfileResponse{Startup: startup})
}

func (h *StartupHandler) UpdateFunding(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "STARTUP_SERVICE_UNAVAILABLE", "startup service is unavailable")
		return
	}

	var req dto.FundingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	startup, err := h.service.UpdateFunding(r.Context(), identity.AccountID, startupsvc.FundingInput{
		CurrentAsk:    req.CurrentAsk,
		EquityOffered: req.EquityOffered,
		FundingStage:  req.FundingStage,
		TotalRaised:   req.TotalRaised,
	})
	if err != nil {
		handleStartupError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.StartupProfileResponse{Startup: startup})
}

// UpdateAll saves every profile section at once.
func (h *StartupHandler) UpdateAll(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "STARTUP_SERVICE_UNAVAILABLE", "startup service is unavailable")
		return
	}

	var req dto.SaveProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	founders := make([]model.Founder, 0, len(req.Team.Founders))
	for _, f := range req.Team.Founders {
		founders = append(founders, model.Founder{
			Name:       f.Name,
			Role:       f.Role,
			LinkedIn:   f.LinkedIn,
			Experience: f.Experience,
		})
	}

	startup, err := h.service.UpdateAll(r.Context(), identity.AccountID, startupsvc.ProfileInput{
		Basic: startupsvc.BasicInput{
			Name:        req.Basic.Name,
			Tagline:     req.Basic.Tagline,
			Website:     req.Basic.Website,
			Industry:    req.Basic.Industry,
			Stage:       req.Basic.Stage,
			FoundedDate: req.Basic.FoundedDate,
		},
		ProblemSolution: startupsvc.ProblemSolutionInput{
			ProblemStatement: req.ProblemSolution.ProblemStatement,
			Solution:         req.ProblemSolution.Solution,
			UniqueApproach:   req.ProblemSolution.UniqueApproach,
		},
		Team: startupsvc.TeamInput{
			Founders:  founders,
			TeamSize:  req.Team.TeamSize,
			SkillTags: req.Team.SkillTags,
		},
		Traction: model.Traction{
			ActiveUsers:      req.Traction.ActiveUsers,
			Customers:        req.Traction.Customers,
			MonthlyRevenue:   req.Traction.MonthlyRevenue,
			GrowthPercentage: req.Traction.GrowthPercentage,
			Partnerships:     req.Traction.Partnerships,
		},
		Financials: model.Financials{
			AOV:          req.Financials.AOV,
			CAC:          req.Financials.CAC,
			BurnRate:     req.Financials.BurnRate,
			GrossMargin:  req.Financials.GrossMargin,
			RunwayMonths: req.Financials.RunwayMonths,
			TAM:          req.Financials.TAM,
			SAM:          req.Financials.SAM,
			SOM:          req.Financials.SOM,
		},
		Funding: startupsvc.FundingInput{
			CurrentAsk:    req.Funding.CurrentAsk,
			EquityOffered: req.Funding.EquityOffered,
			FundingStage:  req.Funding.FundingStage,
			TotalRaised:   req.Funding.TotalRaised,
		},
	})
	if err != nil {
		handleStartupError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.StartupProfileResponse{Startup: startup})
}

func (h *StartupHandler) UpdateVisibility(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "STARTUP_SERVICE_UNAVAILABLE", "startup service is unavailable")
		return
	}

	var req dto.VisibilityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	startup, err := h.service.UpdateVisibility(r.Context(), identity.AccountID, req.Visibility)
	if err != nil {
		handleStartupError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.StartupProfileResponse{Startup: startup})
}

// List serves the admin view of all startups.
func (h *StartupHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "STARTUP_SERVICE_UNAVAILABLE", "startup service is unavailable")
		return
	}

	items, err := h.service.List(r.Context(), parseIntOrDefault(r.URL.Query().Get("limit"), 100))
	if err != nil {
		handleStartupError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.StartupListResponse{Items: items})
}

// PublicProfile serves another account's view of a startup, gated by the
// profile's visibility setting.
func (h *StartupHandler) PublicProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "STARTUP_SERVICE_UNAVAILABLE", "startup service is unavailable")
		return
	}

	startup, err := h.service.PublicProfile(r.Context(), chi.URLParam(r, "startupID"), identity.Role)
	if err != nil {
		handleStartupError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.StartupProfileResponse{Startup: startup})
}

// GetByID serves the admin view of a single startup.
func (h *StartupHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "STARTUP_SERVICE_UNAVAILABLE", "startup service is unavailable")
		return
	}

	startup, err := h.service.Get(r.Context(), chi.URLParam(r, "startupID"))
	if err != nil {
		handleStartupError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.StartupProfileResponse{Startup: startup})
}

func (h *StartupHandler) Approve(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "STARTUP_SERVICE_UNAVAILABLE", "startup service is unavailable")
		return
	}

	var req dto.ApproveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	if err := h.service.Approve(r.Context(), chi.URLParam(r, "startupID"), req.Approved); err != nil {
		handleStartupError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, struct {
		OK bool `json:"ok"`
	}{OK: true})
}

func parseIntOrDefault(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func handleStartupError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, startupsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid startup payload")
	case errors.Is(err, startupsvc.ErrStartupNotFound):
		writeNotFound(w, "STARTUP_NOT_FOUND", "startup not found")
	case errors.Is(err, startupsvc.ErrProfileHidden):
		writeForbidden(w, "PROFILE_HIDDEN", "this profile is not visible to you")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}
