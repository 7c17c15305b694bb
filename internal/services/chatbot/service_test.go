package chatbot_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	redrepo "github.com/Sankalptw/incu-meta/internal/repo/redis"
	"github.com/Sankalptw/incu-meta/internal/services/chatbot"
	"github.com/Sankalptw/incu-meta/internal/services/rate"
)

func newChatServiceForTest(t *testing.T, perMinute int) (*chatbot.Service, func()) {
	t.Helper()

	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}

	client := goredis.NewClient(&goredis.Options{Addr: mini.Addr()})
	history := redrepo.NewChatRepo(client, 100, 30*24*time.Hour)
	limiter := rate.NewLimiter(redrepo.NewRateRepo(client), "chat", perMinute, time.Minute)
	svc := chatbot.NewService(history, limiter)

	cleanup := func() {
		_ = client.Close()
		mini.Close()
	}
	return svc, cleanup
}

func TestChatStoresBothSidesOfExchange(t *testing.T) {
	svc, cleanup := newChatServiceForTest(t, 20)
	defer cleanup()

	ctx := context.Background()
	reply, err := svc.Chat(ctx, "acct-1", "How do I handle incorporation?")
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if !strings.Contains(reply.BotResponse, "articles of incorporation") {
		t.Fatalf("unexpected reply: %q", reply.BotResponse)
	}

	history, err := svc.History(ctx, "acct-1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(history))
	}
	if history[0].Role != "user" || history[1].Role != "bot" {
		t.Fatalf("unexpected roles %q, %q", history[0].Role, history[1].Role)
	}
}

func TestChatTopicRouting(t *testing.T) {
	svc, cleanup := newChatServiceForTest(t, 100)
	defer cleanup()

	cases := []struct {
		message string
		want    string
	}{
		{"tell me about contracts", "Terms of Service"},
		{"what about tax?", "income tax returns"},
		{"founder dispute", "Equity distribution"},
		{"hello", "What's your legal concern?"},
		{"how much does it cost?", "Costs vary by jurisdiction"},
		{"qwerty", "describe your specific legal issue"},
	}

	ctx := context.Background()
	for _, tc := range cases {
		reply, err := svc.Chat(ctx, "acct-topics", tc.message)
		if err != nil {
			t.Fatalf("chat %q: %v", tc.message, err)
		}
		if !strings.Contains(reply.BotResponse, tc.want) {
			t.Fatalf("message %q: reply %q does not contain %q", tc.message, reply.BotResponse, tc.want)
		}
	}
}

func TestChatRateLimited(t *testing.T) {
	svc, cleanup := newChatServiceForTest(t, 2)
	defer cleanup()

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := svc.Chat(ctx, "acct-1", "hello"); err != nil {
			t.Fatalf("chat %d: %v", i, err)
		}
	}

	reply, err := svc.Chat(ctx, "acct-1", "hello")
	if !errors.Is(err, chatbot.ErrRateLimited) {
		t.Fatalf("expected rate limited, got %v", err)
	}
	if reply.RetryAfter <= 0 {
		t.Fatalf("retry after should be positive, got %d", reply.RetryAfter)
	}

	history, err := svc.History(ctx, "acct-1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 4 {
		t.Fatalf("blocked message must not be stored, got %d entries", len(history))
	}
}

func TestClearHistory(t *testing.T) {
	svc, cleanup := newChatServiceForTest(t, 20)
	defer cleanup()

	ctx := context.Background()
	if _, err := svc.Chat(ctx, "acct-1", "privacy question"); err != nil {
		t.Fatalf("chat: %v", err)
	}
	if err := svc.ClearHistory(ctx, "acct-1"); err != nil {
		t.Fatalf("clear: %v", err)
	}

	history, err := svc.History(ctx, "acct-1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("history should be empty after clear, got %d", len(history))
	}
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	svc, cleanup := newChatServiceForTest(t, 20)
	defer cleanup()

	if _, err := svc.Chat(context.Background(), "acct-1", "   "); !errors.Is(err, chatbot.ErrInvalidInput) {
		t.Fatalf("blank message should be invalid, got %v", err)
	}
}
