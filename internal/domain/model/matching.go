package model

import (
	"time"

	"github.com/Sankalptw/incu-meta/internal/domain/enums"
)

// Recipient snapshots one incubator the request fanned out to. Entries are
// immutable once created.
type Recipient struct {
	IncubatorID    string       `json:"incubator_id"`
	IncubatorName  string       `json:"incubator_name"`
	Specialization enums.Domain `json:"specialization"`
	SentAt         time.Time    `json:"sent_at"`
}

// Response is one incubator's answer. Exactly one exists per recipient,
// created as pending at fan-out time and updated in place by that
// incubator alone.
type Response struct {
	IncubatorID   string               `json:"incubator_id"`
	IncubatorName string               `json:"incubator_name"`
	Status        enums.ResponseStatus `json:"status"`
	Feedback      string               `json:"feedback,omitempty"`
	ContactPerson string               `json:"contact_person,omitempty"`
	ContactEmail  string               `json:"contact_email,omitempty"`
	RespondedAt   *time.Time           `json:"responded_at,omitempty"`
}

type Selection struct {
	IncubatorID   string    `json:"incubator_id"`
	IncubatorName string    `json:"incubator_name"`
	SelectedAt    time.Time `json:"selected_at"`
}

// MatchingRequest is the aggregate root of the matching workflow. The
// startup fields are denormalized at creation time so reads never join.
type MatchingRequest struct {
	ID               string              `json:"id"`
	StartupID        string              `json:"startup_id"`
	StartupName      string              `json:"startup_name"`
	StartupDomain    enums.Domain        `json:"startup_domain"`
	StartupLogo      string              `json:"startup_logo,omitempty"`
	FounderName      string              `json:"founder_name,omitempty"`
	FounderEmail     string              `json:"founder_email,omitempty"`
	ProblemStatement string              `json:"problem_statement,omitempty"`
	Solution         string              `json:"solution,omitempty"`
	MatchScore       float64             `json:"match_score"`
	Status           enums.RequestStatus `json:"status"`
	Selected         *Selection          `json:"selected_incubator,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}
