package dto

type RegisterStartupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Industry string `json:"industry"`
	Stage    string `json:"stage"`
}

type RegisterAccountRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Role           string `json:"role"`
	Specialization string `json:"specialization,omitempty"`
	IncubatorName  string `json:"incubator_name,omitempty"`
	ContactNumber  string `json:"contact_number,omitempty"`
	Location       string `json:"location,omitempty"`
	Website        string `json:"website,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthMeResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type AuthTokenResponse struct {
	AccessToken  string         `json:"access_token"`
	ExpiresInSec int64          `json:"expires_in_sec"`
	Me           AuthMeResponse `json:"me"`
}
