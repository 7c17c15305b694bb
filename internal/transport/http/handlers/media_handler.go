package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	authsvc "github.com/Sankalptw/incu-meta/internal/services/auth"
	mediasvc "github.com/Sankalptw/incu-meta/internal/services/media"
	startupsvc "github.com/Sankalptw/incu-meta/internal/services/startups"
	"github.com/Sankalptw/incu-meta/internal/transport/http/dto"
	httperrors "github.com/Sankalptw/incu-meta/internal/transport/http/errors"
)

const maxUploadForm = 6 << 20 // payload limit plus multipart overhead

type MediaHandler struct {
	service  *mediasvc.Service
	startups *startupsvc.Service
}

func NewMediaHandler(service *mediasvc.Service, startups *startupsvc.Service) *MediaHandler {
	return &MediaHandler{service: service, startups: startups}
}

func (h *MediaHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MEDIA_SERVICE_UNAVAILABLE", "media service is unavailable")
		return
	}

	file, header, ok := formFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	upload, err := h.service.UploadLogo(r.Context(), identity.AccountID,
		header.Filename, header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		handleMediaError(w, err)
		return
	}

	h.refreshCompleteness(r, identity.AccountID)

	httperrors.Write(w, http.StatusOK, dto.UploadResponse{
		OK:        true,
		ObjectKey: upload.ObjectKey,
		URL:       upload.URL,
	})
}

func (h *MediaHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MEDIA_SERVICE_UNAVAILABLE", "media service is unavailable")
		return
	}

	file, header, ok := formFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	upload, err := h.service.UploadDocument(r.Context(), identity.AccountID,
		chi.URLParam(r, "slot"), header.Filename, header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		handleMediaError(w, err)
		return
	}

	h.refreshCompleteness(r, identity.AccountID)

	httperrors.Write(w, http.StatusOK, dto.UploadResponse{
		OK:        true,
		ObjectKey: upload.ObjectKey,
		URL:       upload.URL,
	})
}

// DownloadDocument presigns the object stored under the slot.
func (h *MediaHandler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil || h.startups == nil {
		writeInternal(w, "MEDIA_SERVICE_UNAVAILABLE", "media service is unavailable")
		return
	}

	startup, err := h.startups.Get(r.Context(), identity.AccountID)
	if err != nil {
		handleStartupError(w, err)
		return
	}

	url, err := h.service.PresignObject(r.Context(), startup.Documents[chi.URLParam(r, "slot")])
	if err != nil {
		handleMediaError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.PresignResponse{URL: url})
}

// refreshCompleteness is best-effort: documents and the logo count toward
// the profile checklist, but an upload must not fail if the recompute
// does.
func (h *MediaHandler) refreshCompleteness(r *http.Request, startupID string) {
	if h.startups == nil {
		return
	}
	_, _ = h.startups.RefreshCompleteness(r.Context(), startupID)
}

func formFile(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadForm)
	if err := r.ParseMultipartForm(maxUploadForm); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid multipart form")
		return nil, nil, false
	}

	f, fh, err := r.FormFile("file")
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "file is required")
		return nil, nil, false
	}
	if fh == nil || fh.Size <= 0 {
		_ = f.Close()
		writeBadRequest(w, "VALIDATION_ERROR", "file is empty")
		return nil, nil, false
	}

	return f, fh, true
}

func handleMediaError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, mediasvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid upload")
	case errors.Is(err, mediasvc.ErrFileTooBig):
		writeBadRequest(w, "FILE_TOO_BIG", "file exceeds the size limit")
	case errors.Is(err, mediasvc.ErrInvalidType):
		writeBadRequest(w, "INVALID_FILE_TYPE", "unsupported file type")
	case errors.Is(err, mediasvc.ErrUnknownSlot):
		writeBadRequest(w, "UNKNOWN_SLOT", "unknown document slot")
	case errors.Is(err, mediasvc.ErrNoObject):
		writeNotFound(w, "NOT_FOUND", "nothing uploaded for this slot")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}
