package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/ward3d/wardprints/internal/domain/errors"
	pkgAuth "github.com/ward3d/wardprints/internal/pkg/auth"
	testhelpers "github.com/ward3d/wardprints/internal/test"
)

func newAuthUseCase() (*AuthUseCase, *testhelpers.CustomerRepositoryStub) {
	repo := testhelpers.NewCustomerRepositoryStub()
	uc := NewAuthUseCase(repo, pkgAuth.NewBcryptHasher(4), pkgAuth.NewHMACStrategy("test-secret", pkgAuth.Options{}))
	return uc, repo
}

func TestAuthRegisterAndAuthenticate(t *testing.T) {
	uc, _ := newAuthUseCase()
	ctx := context.Background()

	customer, token, err := uc.Register(ctx, "Jane@Example.com", "Jane Smith", "hunter22")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if customer.Email != "jane@example.com" {
		t.Fatalf("expected normalized email, got %s", customer.Email)
	}
	if token == "" {
		t.Fatal("expected token")
	}

	id, err := uc.ParseToken(token)
	if err != nil || id != customer.ID {
		t.Fatalf("token should resolve to customer %d, got %d (%v)", customer.ID, id, err)
	}

	if _, _, err := uc.Authenticate(ctx, "jane@example.com", "hunter22"); err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if _, _, err := uc.Authenticate(ctx, "jane@example.com", "wrong"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, _, err := uc.Authenticate(ctx, "nobody@example.com", "x"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("unknown email must not be distinguishable, got %v", err)
	}
}

func TestAuthRegisterRejectsEmptyCredentials(t *testing.T) {
	uc, _ := newAuthUseCase()
	if _, _, err := uc.Register(context.Background(), "", "name", "pw"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, _, err := uc.Register(context.Background(), "a@b.c", "name", ""); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestAuthRegisterDuplicateEmail(t *testing.T) {
	uc, _ := newAuthUseCase()
	ctx := context.Background()
	email := testhelpers.RandomEmail()

	if _, _, err := uc.Register(ctx, email, "first", "pw1"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, err := uc.Register(ctx, email, "second", "pw2"); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}
}

func TestAuthenticateDisabledAccount(t *testing.T) {
	uc, repo := newAuthUseCase()
	ctx := context.Background()

	customer, _, err := uc.Register(ctx, "gone@example.com", "gone", "pw")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	now := time.Now()
	repo.ByID[customer.ID].DisabledAt = &now

	if _, _, err := uc.Authenticate(ctx, "gone@example.com", "pw"); !errors.Is(err, domainErrors.ErrCustomerDisabled) {
		t.Fatalf("expected disabled error, got %v", err)
	}
}

func TestParseTokenEmpty(t *testing.T) {
	uc, _ := newAuthUseCase()
	if _, err := uc.ParseToken(""); !errors.Is(err, pkgAuth.ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestDisableCustomer(t *testing.T) {
	uc, repo := newAuthUseCase()
	ctx := context.Background()

	customer, _, err := uc.Register(ctx, testhelpers.RandomEmail(), "c", "pw")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := uc.Disable(ctx, customer.ID); err != nil {
		t.Fatalf("disable failed: %v", err)
	}
	if !repo.ByID[customer.ID].Disabled() {
		t.Fatal("customer should be disabled")
	}
	if err := uc.Disable(ctx, 404); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
