package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/ward3d/wardprints/internal/domain/errors"
	"github.com/ward3d/wardprints/internal/domain/model"
	"github.com/ward3d/wardprints/internal/domain/repository"
	pkgAuth "github.com/ward3d/wardprints/internal/pkg/auth"
)

// AuthUseCase handles customer signup, login, and token management.
type AuthUseCase struct {
	customers repository.CustomerRepository
	hasher    pkgAuth.PasswordHasher
	tokens    pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(customers repository.CustomerRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{customers: customers, hasher: hasher, tokens: strategy}
}

// Register creates a new customer account and returns an auth token.
func (u *AuthUseCase) Register(ctx context.Context, email, name, password string) (*model.Customer, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	customer, err := u.customers.Create(ctx, email, strings.TrimSpace(name), hash)
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(customer.ID)
	if err != nil {
		return nil, "", err
	}

	return customer, token, nil
}

// Authenticate validates credentials and returns an auth token. Disabled
// accounts cannot sign in even with valid credentials.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*model.Customer, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	customer, err := u.customers.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(customer.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}
	if customer.Disabled() {
		return nil, "", domainErrors.ErrCustomerDisabled
	}

	token, err := u.tokens.IssueToken(customer.ID)
	if err != nil {
		return nil, "", err
	}

	return customer, token, nil
}

// ParseToken extracts the customer ID from a token.
func (u *AuthUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches a customer by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	return u.customers.GetByID(ctx, id)
}

// ListCustomers returns every customer for the admin panel.
func (u *AuthUseCase) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	return u.customers.List(ctx)
}

// Disable soft-disables a customer account. Historical orders keep resolving
// the customer reference.
func (u *AuthUseCase) Disable(ctx context.Context, id int64) error {
	return u.customers.Disable(ctx, id)
}
