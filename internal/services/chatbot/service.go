package chatbot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Sankalptw/incu-meta/internal/domain/model"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrRateLimited  = errors.New("too many messages")
)

const maxMessageLen = 2000

type HistoryStore interface {
	Append(ctx context.Context, accountID string, messages ...model.ChatMessage) error
	History(ctx context.Context, accountID string) ([]model.ChatMessage, error)
	Clear(ctx context.Context, accountID string) error
}

type Limiter interface {
	Allow(ctx context.Context, key string) (int64, bool, error)
}

type Service struct {
	history HistoryStore
	limiter Limiter
	now     func() time.Time
}

func NewService(history HistoryStore, limiter Limiter) *Service {
	return &Service{
		history: history,
		limiter: limiter,
		now:     time.Now,
	}
}

type ChatReply struct {
	UserMessage string
	BotResponse string
	RetryAfter  int64
	Timestamp   time.Time
}

func (s *Service) Chat(ctx context.Context, accountID, message string) (ChatReply, error) {
	message = strings.TrimSpace(message)
	if accountID == "" || message == "" || len(message) > maxMessageLen {
		return ChatReply{}, ErrInvalidInput
	}

	if s.limiter != nil {
		retryAfter, ok, err := s.limiter.Allow(ctx, accountID)
		if err != nil {
			return ChatReply{}, fmt.Errorf("rate limit chat: %w", err)
		}
		if !ok {
			return ChatReply{RetryAfter: retryAfter}, ErrRateLimited
		}
	}

	now := s.now().UTC()
	reply := Respond(message)

	err := s.history.Append(ctx,
		accountID,
		model.ChatMessage{Role: "user", Content: message, Timestamp: now},
		model.ChatMessage{Role: "bot", Content: reply, Timestamp: now},
	)
	if err != nil {
		return ChatReply{}, fmt.Errorf("append chat history: %w", err)
	}

	return ChatReply{
		UserMessage: message,
		BotResponse: reply,
		Timestamp:   now,
	}, nil
}

func (s *Service) History(ctx context.Context, accountID string) ([]model.ChatMessage, error) {
	if accountID == "" {
		return nil, ErrInvalidInput
	}

	messages, err := s.history.History(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("read chat history: %w", err)
	}
	return messages, nil
}

func (s *Service) ClearHistory(ctx context.Context, accountID string) error {
	if accountID == "" {
		return ErrInvalidInput
	}

	if err := s.history.Clear(ctx, accountID); err != nil {
		return fmt.Errorf("clear chat history: %w", err)
	}
	return nil
}
