package model

import "time"

type ChatMessage struct {
	Role      string    `json:"role"` // "user" or "bot"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
