package handlers

import (
	"errors"
	"net/http"

	authsvc "github.com/Sankalptw/incu-meta/internal/services/auth"
	chatbotsvc "github.com/Sankalptw/incu-meta/internal/services/chatbot"
	"github.com/Sankalptw/incu-meta/internal/transport/http/dto"
	httperrors "github.com/Sankalptw/incu-meta/internal/transport/http/errors"
)

type ChatbotHandler struct {
	service *chatbotsvc.Service
}

func NewChatbotHandler(service *chatbotsvc.Service) *ChatbotHandler {
	return &ChatbotHandler{service: service}
}

func (h *ChatbotHandler) Chat(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "CHATBOT_SERVICE_UNAVAILABLE", "chatbot service is unavailable")
		return
	}

	var req dto.ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	reply, err := h.service.Chat(r.Context(), identity.AccountID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, chatbotsvc.ErrInvalidInput):
			writeBadRequest(w, "VALIDATION_ERROR", "message is required")
		case errors.Is(err, chatbotsvc.ErrRateLimited):
			httperrors.Write(w, http.StatusTooManyRequests, httperrors.RateLimitError{
				Code:          "RATE_LIMITED",
				Message:       "too many messages, slow down",
				RetryAfterSec: reply.RetryAfter,
			})
		default:
			writeInternal(w, "INTERNAL_ERROR", "internal server error")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ChatResponse{
		OK:          true,
		UserMessage: reply.UserMessage,
		BotResponse: reply.BotResponse,
		Timestamp:   reply.Timestamp,
	})
}

func (h *ChatbotHandler) History(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "CHATBOT_SERVICE_UNAVAILABLE", "chatbot service is unavailable")
		return
	}

	items, err := h.service.History(r.Context(), identity.AccountID)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load chat history")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ChatHistoryResponse{Items: items})
}

func (h *ChatbotHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "CHATBOT_SERVICE_UNAVAILABLE", "chatbot service is unavailable")
		return
	}

	if err := h.service.ClearHistory(r.Context(), identity.AccountID); err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to clear chat history")
		return
	}

	httperrors.Write(w, http.StatusOK, struct {
		OK bool `json:"ok"`
	}{OK: true})
}
