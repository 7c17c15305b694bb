package handlers

import (
	"net/http"

	authsvc "github.com/Sankalptw/incu-meta/internal/services/auth"
	dashboardsvc "github.com/Sankalptw/incu-meta/internal/services/dashboard"
	httperrors "github.com/Sankalptw/incu-meta/internal/transport/http/errors"
)

type DashboardHandler struct {
	service *dashboardsvc.Service
}

func NewDashboardHandler(service *dashboardsvc.Service) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) AdminOverview(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "DASHBOARD_SERVICE_UNAVAILABLE", "dashboard service is unavailable")
		return
	}

	overview, err := h.service.AdminOverview(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to build dashboard")
		return
	}

	httperrors.Write(w, http.StatusOK, overview)
}

func (h *DashboardHandler) StartupOverview(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "DASHBOARD_SERVICE_UNAVAILABLE", "dashboard service is unavailable")
		return
	}

	overview, err := h.service.StartupOverview(r.Context(), identity.AccountID)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to build dashboard")
		return
	}

	httperrors.Write(w, http.StatusOK, overview)
}
