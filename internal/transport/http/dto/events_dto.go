package dto

import (
	"time"

	"github.com/Sankalptw/incu-meta/internal/domain/model"
)

type CreateEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Date        time.Time `json:"date"`
}

type EventsResponse struct {
	Items []model.Event `json:"items"`
}

type CreateAnnouncementRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

type AnnouncementsResponse struct {
	Items []model.Announcement `json:"items"`
}
