package dto

import "time"

type CreateMatchingRequest struct {
	Domain           string `json:"domain"`
	ProblemStatement string `json:"problem_statement"`
	Solution         string `json:"solution"`
}

type CreateMatchingResponse struct {
	RequestID       string `json:"request_id"`
	IncubatorsCount int    `json:"incubators_count"`
}

type RespondRequest struct {
	Status        string `json:"status"`
	Feedback      string `json:"feedback,omitempty"`
	ContactPerson string `json:"contact_person,omitempty"`
	ContactEmail  string `json:"contact_email,omitempty"`
}

type RespondResponse struct {
	OK         bool    `json:"ok"`
	MatchScore float64 `json:"match_score"`
	Status     string  `json:"status"`
}

type SelectRequest struct {
	IncubatorID string `json:"incubator_id"`
}

type SelectionResponse struct {
	IncubatorID   string    `json:"incubator_id"`
	IncubatorName string    `json:"incubator_name"`
	SelectedAt    time.Time `json:"selected_at"`
}

type SelectResponse struct {
	OK       bool              `json:"ok"`
	Selected SelectionResponse `json:"selected"`
}

type StartupRequestItem struct {
	ID              string             `json:"id"`
	Domain          string             `json:"domain"`
	Status          string             `json:"status"`
	MatchScore      float64            `json:"match_score"`
	InterestedCount int                `json:"interested_count"`
	RejectedCount   int                `json:"rejected_count"`
	TotalIncubators int                `json:"total_incubators"`
	Selected        *SelectionResponse `json:"selected,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
}

type StartupRequestsResponse struct {
	Items []StartupRequestItem `json:"items"`
}

type MyResponseView struct {
	Status        string     `json:"status"`
	Feedback      string     `json:"feedback,omitempty"`
	ContactPerson string     `json:"contact_person,omitempty"`
	ContactEmail  string     `json:"contact_email,omitempty"`
	RespondedAt   *time.Time `json:"responded_at,omitempty"`
}

type IncubatorRequestItem struct {
	ID               string         `json:"id"`
	StartupID        string         `json:"startup_id"`
	StartupName      string         `json:"startup_name"`
	Domain           string         `json:"domain"`
	StartupLogo      string         `json:"startup_logo,omitempty"`
	FounderName      string         `json:"founder_name,omitempty"`
	FounderEmail     string         `json:"founder_email,omitempty"`
	ProblemStatement string         `json:"problem_statement"`
	Solution         string         `json:"solution"`
	MatchScore       float64        `json:"match_score"`
	Status           string         `json:"status"`
	MyResponse       MyResponseView `json:"my_response"`
	CreatedAt        time.Time      `json:"created_at"`
}

type IncubatorRequestsResponse struct {
	Items []IncubatorRequestItem `json:"items"`
}

type InterestedIncubatorItem struct {
	IncubatorID   string     `json:"incubator_id"`
	IncubatorName string     `json:"incubator_name"`
	ContactPerson string     `json:"contact_person,omitempty"`
	ContactEmail  string     `json:"contact_email,omitempty"`
	Feedback      string     `json:"feedback,omitempty"`
	Location      string     `json:"location,omitempty"`
	Website       string     `json:"website,omitempty"`
	RespondedAt   *time.Time `json:"responded_at,omitempty"`
}

type InterestedIncubatorsResponse struct {
	Items []InterestedIncubatorItem `json:"items"`
}
