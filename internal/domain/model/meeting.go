package model

import "time"

type Meeting struct {
	ID          string    `json:"id"`
	StartupID   string    `json:"startup_id"`
	StartupName string    `json:"startup_name,omitempty"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
