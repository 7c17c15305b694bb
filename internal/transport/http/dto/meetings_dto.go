package dto

import (
	"time"

	"github.com/Sankalptw/incu-meta/internal/domain/model"
)

type ScheduleMeetingRequest struct {
	StartupID   string    `json:"startup_id"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time"`
	Description string    `json:"description,omitempty"`
}

type MeetingsResponse struct {
	Items []model.Meeting `json:"items"`
}
