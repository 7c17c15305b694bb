package auth

import (
	"errors"
	"time"

	"github.com/Sankalptw/incu-meta/internal/domain/enums"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrEmailTaken     = errors.New("email already registered")
	ErrBadCredentials = errors.New("invalid email or password")
)

type AccessClaims struct {
	AccountID string
	Role      enums.Role
	ExpiresAt time.Time
}

type Me struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  enums.Role `json:"role"`
}

type AuthResult struct {
	AccessToken   string
	AccessExpires time.Time
	Me            Me
}
