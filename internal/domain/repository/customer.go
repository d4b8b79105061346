package repository

import (
	"context"

	"github.com/ward3d/wardprints/internal/domain/model"
)

// CustomerRepository describes persistence operations for customers.
// Customers are soft-disabled, never deleted.
type CustomerRepository interface {
	Create(ctx context.Context, email, name, passwordHash string) (*model.Customer, error)
	GetByEmail(ctx context.Context, email string) (*model.Customer, error)
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
	List(ctx context.Context) ([]model.Customer, error)
	Disable(ctx context.Context, id int64) error
}
