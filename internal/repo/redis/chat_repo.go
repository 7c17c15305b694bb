package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Sankalptw/incu-meta/internal/domain/model"
)

// ChatRepo keeps per-account chatbot transcripts in a capped redis list.
// History is non-authoritative: the TTL makes it self-expiring and a flush
// loses nothing the platform depends on.
type ChatRepo struct {
	client *goredis.Client
	limit  int64
	ttl    time.Duration
}

func NewChatRepo(client *goredis.Client, limit int, ttl time.Duration) *ChatRepo {
	if limit <= 0 {
		limit = 100
	}
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &ChatRepo{
		client: client,
		limit:  int64(limit),
		ttl:    ttl,
	}
}

func (r *ChatRepo) Append(ctx context.Context, accountID string, messages ...model.ChatMessage) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if accountID == "" || len(messages) == 0 {
		return fmt.Errorf("invalid chat append payload")
	}

	values := make([]interface{}, 0, len(messages))
	for _, msg := range messages {
		data, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("marshal chat message: %w", err)
		}
		values = append(values, data)
	}

	key := chatKey(accountID)
	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, key, values...)
	pipe.LTrim(ctx, key, -r.limit, -1)
	pipe.Expire(ctx, key, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append chat history: %w", err)
	}

	return nil
}

func (r *ChatRepo) History(ctx context.Context, accountID string) ([]model.ChatMessage, error) {
	if r.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	if accountID == "" {
		return nil, fmt.Errorf("account id is required")
	}

	raw, err := r.client.LRange(ctx, chatKey(accountID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read chat history: %w", err)
	}

	messages := make([]model.ChatMessage, 0, len(raw))
	for _, item := range raw {
		var msg model.ChatMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, fmt.Errorf("unmarshal chat message: %w", err)
		}
		messages = append(messages, msg)
	}

	return messages, nil
}

func (r *ChatRepo) Clear(ctx context.Context, accountID string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if accountID == "" {
		return fmt.Errorf("account id is required")
	}

	if err := r.client.Del(ctx, chatKey(accountID)).Err(); err != nil {
		return fmt.Errorf("clear chat history: %w", err)
	}
	return nil
}

func chatKey(accountID string) string {
	return "chat:legal:" + accountID
}
