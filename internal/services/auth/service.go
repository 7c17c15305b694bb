package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Sankalptw/incu-meta/internal/domain/enums"
	"github.com/Sankalptw/incu-meta/internal/domain/model"
	"github.com/Sankalptw/incu-meta/internal/repo/postgres"
)

type StartupStore interface {
	Create(ctx context.Context, s model.Startup) error
	GetByEmail(ctx context.Context, email string) (model.Startup, error)
}

type AccountStore interface {
	Create(ctx context.Context, acc model.Account) error
	GetByEmail(ctx context.Context, email string) (model.Account, error)
}

type Service struct {
	jwt        *JWTManager
	startups   StartupStore
	accounts   AccountStore
	bcryptCost int
	now        func() time.Time
}

func NewService(jwtManager *JWTManager, startups StartupStore, accounts AccountStore, bcryptCost int) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}

	return &Service{
		jwt:        jwtManager,
		startups:   startups,
		accounts:   accounts,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

type RegisterStartupInput struct {
	Name     string
	Email    string
	Password string
	Industry string
	Stage    string
}

func (s *Service) RegisterStartup(ctx context.Context, in RegisterStartupInput) (AuthResult, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || !validEmail(email) || len(in.Password) < 6 {
		return AuthResult{}, ErrInvalidInput
	}

	industry, ok := enums.ParseIndustry(in.Industry)
	if !ok {
		return AuthResult{}, ErrInvalidInput
	}
	stage, ok := enums.ParseStage(in.Stage)
	if !ok {
		return AuthResult{}, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	startup := model.Startup{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Industry:     industry,
		Stage:        stage,
		Visibility:   enums.VisibilityIncubatorsOnly,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.startups.Create(ctx, startup); err != nil {
		if errors.Is(err, postgres.ErrDuplicateEmail) {
			return AuthResult{}, ErrEmailTaken
		}
		return AuthResult{}, fmt.Errorf("create startup: %w", err)
	}

	return s.issue(startup.ID, startup.Name, startup.Email, enums.RoleStartup)
}

func (s *Service) LoginStartup(ctx context.Context, email, password string) (AuthResult, error) {
	email = normalizeEmail(email)
	if !validEmail(email) || password == "" {
		return AuthResult{}, ErrInvalidInput
	}

	startup, err := s.startups.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, postgres.ErrStartupNotFound) {
			return AuthResult{}, ErrBadCredentials
		}
		return AuthResult{}, fmt.Errorf("get startup: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(startup.PasswordHash), []byte(password)) != nil {
		return AuthResult{}, ErrBadCredentials
	}

	return s.issue(startup.ID, startup.Name, startup.Email, enums.RoleStartup)
}

type RegisterAccountInput struct {
	Name           string
	Email          string
	Password       string
	Role           string
	Specialization string
	IncubatorName  string
	ContactNumber  string
	Location       string
	Website        string
}

// RegisterAccount creates an admin or incubator login. Incubators must
// declare a specialization, it is the fan-out key and cannot be changed
// afterwards.
func (s *Service) RegisterAccount(ctx context.Context, in RegisterAccountInput) (AuthResult, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || !validEmail(email) || len(in.Password) < 6 {
		return AuthResult{}, ErrInvalidInput
	}

	role, ok := enums.ParseRole(in.Role)
	if !ok || role == enums.RoleStartup {
		return AuthResult{}, ErrInvalidInput
	}

	var specialization enums.Domain
	if role == enums.RoleIncubator {
		specialization, ok = enums.ParseDomain(in.Specialization)
		if !ok {
			return AuthResult{}, ErrInvalidInput
		}
	} else if strings.TrimSpace(in.Specialization) != "" {
		return AuthResult{}, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	acc := model.Account{
		ID:             uuid.NewString(),
		Name:           name,
		Email:          email,
		PasswordHash:   string(hash),
		Role:           role,
		Specialization: specialization,
		IncubatorName:  strings.TrimSpace(in.IncubatorName),
		ContactNumber:  strings.TrimSpace(in.ContactNumber),
		Location:       strings.TrimSpace(in.Location),
		Website:        strings.TrimSpace(in.Website),
		CreatedAt:      s.now().UTC(),
	}

	if err := s.accounts.Create(ctx, acc); err != nil {
		if errors.Is(err, postgres.ErrDuplicateEmail) {
			return AuthResult{}, ErrEmailTaken
		}
		return AuthResult{}, fmt.Errorf("create account: %w", err)
	}

	return s.issue(acc.ID, acc.Name, acc.Email, acc.Role)
}

func (s *Service) LoginAccount(ctx context.Context, email, password string) (AuthResult, error) {
	email = normalizeEmail(email)
	if !validEmail(email) || password == "" {
		return AuthResult{}, ErrInvalidInput
	}

	acc, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, postgres.ErrAccountNotFound) {
			return AuthResult{}, ErrBadCredentials
		}
		return AuthResult{}, fmt.Errorf("get account: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
		return AuthResult{}, ErrBadCredentials
	}

	return s.issue(acc.ID, acc.Name, acc.Email, acc.Role)
}

func (s *Service) issue(id, name, email string, role enums.Role) (AuthResult, error) {
	token, expiresAt, err := s.jwt.GenerateAccessToken(id, role)
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue access token: %w", err)
	}

	return AuthResult{
		AccessToken:   token,
		AccessExpires: expiresAt,
		Me: Me{
			ID:    id,
			Name:  name,
			Email: email,
			Role:  role,
		},
	}, nil
}

func normalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func validEmail(email string) bool {
	if email == "" || len(email) > 254 {
		return false
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	if strings.Count(email, "@") != 1 {
		return false
	}
	domain := email[at+1:]
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}
