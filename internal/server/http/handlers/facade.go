package handlers

import (
	"context"
	"io"

	"github.com/ward3d/wardprints/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, name, password string) (*model.Customer, string, error)
	Authenticate(ctx context.Context, email, password string) (*model.Customer, string, error)
	ParseToken(token string) (int64, error)
	Customer(ctx context.Context, id int64) (*model.Customer, error)
}

// OrderFacade encapsulates storefront order operations.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, customerID int64, modelID string, size model.Size, color model.Color, scale float64, paymentMethod, shippingAddress string) (*model.Order, error)
	Orders(ctx context.Context, customerID int64) ([]model.Order, error)
	TrackOrder(ctx context.Context, orderID string, customerID int64) (*model.Order, error)
	AdjustOrderScale(ctx context.Context, orderID string, customerID int64, scale float64) (*model.Order, error)
}

// GenerationFacade covers model generation and source image uploads.
type GenerationFacade interface {
	StartTextGeneration(ctx context.Context, customerID int64, name, prompt string) (*model.Generation, error)
	StartImageGeneration(ctx context.Context, customerID int64, name, imageKey string) (*model.Generation, error)
	Generation(ctx context.Context, customerID int64, id string) (*model.Generation, error)
	Generations(ctx context.Context, customerID int64) ([]model.Generation, error)
	UploadImage(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
}

// AdminFacade exposes the staff-only surface.
type AdminFacade interface {
	AllOrders(ctx context.Context) ([]model.Order, error)
	ChangeOrderStatus(ctx context.Context, orderID string, next model.OrderStatus, actorID int64) (*model.Order, error)
	OverrideOrderStatus(ctx context.Context, orderID string, target model.OrderStatus, actorID int64) (*model.Order, error)
	OrderAudit(ctx context.Context, orderID string) ([]model.StatusAudit, error)
	Customers(ctx context.Context) ([]model.Customer, error)
	DisableCustomer(ctx context.Context, id int64) error
	Models(ctx context.Context) ([]model.PrintModel, error)
	QueueStats(ctx context.Context) (*model.QueueStats, error)
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	AuthFacade
	OrderFacade
	GenerationFacade
	AdminFacade
}
