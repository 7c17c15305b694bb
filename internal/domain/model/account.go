package model

import (
	"time"

	"github.com/Sankalptw/incu-meta/internal/domain/enums"
)

// Account is an admin-side login. Incubators are accounts with
// Role == enums.RoleIncubator and a mandatory Specialization.
type Account struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	PasswordHash   string       `json:"-"`
	Role           enums.Role   `json:"role"`
	Specialization enums.Domain `json:"specialization,omitempty"`
	IncubatorName  string       `json:"incubator_name,omitempty"`
	ContactNumber  string       `json:"contact_number,omitempty"`
	Location       string       `json:"location,omitempty"`
	Website        string       `json:"website,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}
