package dto

import (
	"time"

	"github.com/Sankalptw/incu-meta/internal/domain/model"
)

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	OK          bool      `json:"ok"`
	UserMessage string    `json:"user_message"`
	BotResponse string    `json:"bot_response"`
	Timestamp   time.Time `json:"timestamp"`
}

type ChatHistoryResponse struct {
	Items []model.ChatMessage `json:"items"`
}
