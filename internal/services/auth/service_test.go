package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Sankalptw/incu-meta/internal/domain/model"
	"github.com/Sankalptw/incu-meta/internal/repo/postgres"
	authsvc "github.com/Sankalptw/incu-meta/internal/services/auth"
)

type fakeStartupStore struct {
	byEmail map[string]model.Startup
}

func (s *fakeStartupStore) Create(_ context.Context, startup model.Startup) error {
	if _, ok := s.byEmail[startup.Email]; ok {
		return postgres.ErrDuplicateEmail
	}
	s.byEmail[startup.Email] = startup
	return nil
}

func (s *fakeStartupStore) GetByEmail(_ context.Context, email string) (model.Startup, error) {
	startup, ok := s.byEmail[email]
	if !ok {
		return model.Startup{}, postgres.ErrStartupNotFound
	}
	return startup, nil
}

type fakeAccountStore struct {
	byEmail map[string]model.Account
}

func (s *fakeAccountStore) Create(_ context.Context, acc model.Account) error {
	if _, ok := s.byEmail[acc.Email]; ok {
		return postgres.ErrDuplicateEmail
	}
	s.byEmail[acc.Email] = acc
	return nil
}

func (s *fakeAccountStore) GetByEmail(_ context.Context, email string) (model.Account, error) {
	acc, ok := s.byEmail[email]
	if !ok {
		return model.Account{}, postgres.ErrAccountNotFound
	}
	return acc, nil
}

func newAuthServiceForTest() (*authsvc.Service, *fakeStartupStore, *fakeAccountStore) {
	startups := &fakeStartupStore{byEmail: map[string]model.Startup{}}
	accounts := &fakeAccountStore{byEmail: map[string]model.Account{}}
	jwtManager := authsvc.NewJWTManager("test-secret", time.Hour)
	return authsvc.NewService(jwtManager, startups, accounts, 4), startups, accounts
}

func TestRegisterAndLoginStartup(t *testing.T) {
	svc, _, _ := newAuthServiceForTest()
	ctx := context.Background()

	reg, err := svc.RegisterStartup(ctx, authsvc.RegisterStartupInput{
		Name:     "Acme Robotics",
		Email:    "Founder@Acme.io",
		Password: "secret123",
		Industry: "AI",
		Stage:    "MVP",
	})
	if err != nil {
		t.Fatalf("register startup: %v", err)
	}
	if reg.AccessToken == "" {
		t.Fatalf("expected access token")
	}
	if reg.Me.Email != "founder@acme.io" {
		t.Fatalf("email not normalized: %q", reg.Me.Email)
	}

	login, err := svc.LoginStartup(ctx, "founder@acme.io", "secret123")
	if err != nil {
		t.Fatalf("login startup: %v", err)
	}
	if login.Me.ID != reg.Me.ID {
		t.Fatalf("login resolved a different account")
	}

	if _, err := svc.LoginStartup(ctx, "founder@acme.io", "wrong-pass"); !errors.Is(err, authsvc.ErrBadCredentials) {
		t.Fatalf("wrong password should fail with bad credentials, got %v", err)
	}
}

func TestRegisterStartupDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthServiceForTest()
	ctx := context.Background()

	in := authsvc.RegisterStartupInput{
		Name:     "Acme",
		Email:    "dup@acme.io",
		Password: "secret123",
		Industry: "SaaS",
		Stage:    "Idea",
	}
	if _, err := svc.RegisterStartup(ctx, in); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.RegisterStartup(ctx, in); !errors.Is(err, authsvc.ErrEmailTaken) {
		t.Fatalf("duplicate register should fail with email taken, got %v", err)
	}
}

func TestRegisterIncubatorRequiresSpecialization(t *testing.T) {
	svc, _, _ := newAuthServiceForTest()
	ctx := context.Background()

	_, err := svc.RegisterAccount(ctx, authsvc.RegisterAccountInput{
		Name:     "TechNest",
		Email:    "hello@technest.io",
		Password: "secret123",
		Role:     "incubator",
	})
	if !errors.Is(err, authsvc.ErrInvalidInput) {
		t.Fatalf("missing specialization should be invalid, got %v", err)
	}

	reg, err := svc.RegisterAccount(ctx, authsvc.RegisterAccountInput{
		Name:           "TechNest",
		Email:          "hello@technest.io",
		Password:       "secret123",
		Role:           "incubator",
		Specialization: "Technology",
		IncubatorName:  "TechNest Hub",
	})
	if err != nil {
		t.Fatalf("register incubator: %v", err)
	}
	if reg.Me.Role != "incubator" {
		t.Fatalf("unexpected role %q", reg.Me.Role)
	}
}

func TestRegisterAdminRejectsSpecialization(t *testing.T) {
	svc, _, _ := newAuthServiceForTest()

	_, err := svc.RegisterAccount(context.Background(), authsvc.RegisterAccountInput{
		Name:           "Ops",
		Email:          "ops@platform.io",
		Password:       "secret123",
		Role:           "admin",
		Specialization: "Finance",
	})
	if !errors.Is(err, authsvc.ErrInvalidInput) {
		t.Fatalf("admin with specialization should be invalid, got %v", err)
	}
}

func TestRegisterAccountRejectsStartupRole(t *testing.T) {
	svc, _, _ := newAuthServiceForTest()

	_, err := svc.RegisterAccount(context.Background(), authsvc.RegisterAccountInput{
		Name:     "Sneaky",
		Email:    "sneaky@x.io",
		Password: "secret123",
		Role:     "startup",
	})
	if !errors.Is(err, authsvc.ErrInvalidInput) {
		t.Fatalf("startup role via account register should be invalid, got %v", err)
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc, _, _ := newAuthServiceForTest()
	ctx := context.Background()

	reg, err := svc.RegisterAccount(ctx, authsvc.RegisterAccountInput{
		Name:           "GreenLab",
		Email:          "green@lab.io",
		Password:       "secret123",
		Role:           "incubator",
		Specialization: "ClimaTech",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	jwtManager := authsvc.NewJWTManager("test-secret", time.Hour)
	claims, err := jwtManager.ParseAccessToken(reg.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.AccountID != reg.Me.ID {
		t.Fatalf("claims subject %q != account %q", claims.AccountID, reg.Me.ID)
	}
	if claims.Role != "incubator" {
		t.Fatalf("unexpected role claim %q", claims.Role)
	}

	if _, err := jwtManager.ParseAccessToken("not-a-token"); !errors.Is(err, authsvc.ErrUnauthorized) {
		t.Fatalf("garbage token should be unauthorized, got %v", err)
	}

	other := authsvc.NewJWTManager("other-secret", time.Hour)
	if _, err := other.ParseAccessToken(reg.AccessToken); !errors.Is(err, authsvc.ErrUnauthorized) {
		t.Fatalf("token signed with different secret should be unauthorized, got %v", err)
	}
}
