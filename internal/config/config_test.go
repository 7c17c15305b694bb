package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadUsesDefaultsAndYAMLOverrides(t *testing.T) {
	clearConfigEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	yaml := `
http:
  addr: ":9191"
auth:
  jwt_access_ttl: 30m
chatbot:
  messages_per_minute: 5
  history_ttl: 48h
uploads:
  max_file_bytes: 1048576
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.HTTP.Addr != ":9191" {
		t.Fatalf("unexpected http addr: %s", cfg.HTTP.Addr)
	}
	if cfg.Auth.JWTAccessTTL != 30*time.Minute {
		t.Fatalf("unexpected jwt access ttl: %s", cfg.Auth.JWTAccessTTL)
	}
	if cfg.Chatbot.MessagesPerMinute != 5 {
		t.Fatalf("unexpected chatbot rate: %d", cfg.Chatbot.MessagesPerMinute)
	}
	if cfg.Chatbot.HistoryTTL != 48*time.Hour {
		t.Fatalf("unexpected chatbot history ttl: %s", cfg.Chatbot.HistoryTTL)
	}
	if cfg.Uploads.MaxFileBytes != 1<<20 {
		t.Fatalf("unexpected upload cap: %d", cfg.Uploads.MaxFileBytes)
	}

	if cfg.Chatbot.HistoryLimit != 100 {
		t.Fatalf("chatbot history_limit default should stay 100")
	}
	if cfg.Auth.BcryptCost != 10 {
		t.Fatalf("bcrypt_cost default should stay 10")
	}
	if cfg.Postgres.DSN == "" {
		t.Fatalf("postgres dsn default missing")
	}
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config with missing file: %v", err)
	}

	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("unexpected default addr: %s", cfg.HTTP.Addr)
	}
	if cfg.Chatbot.MessagesPerMinute != 20 {
		t.Fatalf("unexpected default chatbot rate: %d", cfg.Chatbot.MessagesPerMinute)
	}
	if cfg.Auth.JWTAccessTTL != time.Hour {
		t.Fatalf("unexpected default jwt access ttl: %s", cfg.Auth.JWTAccessTTL)
	}
	if cfg.Uploads.MaxFileBytes != 5<<20 {
		t.Fatalf("unexpected default upload cap: %d", cfg.Uploads.MaxFileBytes)
	}
}

func TestLoadEnvOverridesWin(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("HTTP_ADDR", ":7070")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("CHATBOT_MESSAGES_PER_MINUTE", "3")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.HTTP.Addr != ":7070" {
		t.Fatalf("env HTTP_ADDR not applied: %s", cfg.HTTP.Addr)
	}
	if cfg.Auth.JWTSecret != "env-secret" {
		t.Fatalf("env JWT_SECRET not applied")
	}
	if cfg.Chatbot.MessagesPerMinute != 3 {
		t.Fatalf("env chatbot rate not applied: %d", cfg.Chatbot.MessagesPerMinute)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("JWT_ACCESS_TTL", "not-a-duration")

	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for invalid JWT_ACCESS_TTL")
	}
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "HTTP_ADDR", "HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT",
		"HTTP_IDLE_TIMEOUT", "LOG_LEVEL", "POSTGRES_DSN", "REDIS_ADDR",
		"REDIS_PASSWORD", "REDIS_DB", "S3_ENDPOINT", "S3_ACCESS_KEY",
		"S3_SECRET_KEY", "S3_BUCKET", "S3_USE_SSL", "JWT_SECRET",
		"JWT_ACCESS_TTL", "BCRYPT_COST", "CHATBOT_MESSAGES_PER_MINUTE",
		"CHATBOT_HISTORY_TTL",
	} {
		t.Setenv(key, "")
	}
}
