package repository

import (
	"context"
	"time"

	"github.com/ward3d/wardprints/internal/domain/model"
)

// NewOrder carries validated fields for order creation. Price is computed by
// the caller before the order is admitted.
type NewOrder struct {
	CustomerID      int64
	ModelID         string
	Size            model.Size
	Color           model.Color
	ScaleAdjustment float64
	Price           float64
	PaymentMethod   string
	ShippingAddress string
}

// StatusChange describes one lifecycle transition to apply atomically. The
// ExpectedUpdatedAt guard detects lost races; implementations must re-rank
// queue positions of the in-flight set within the same transaction.
type StatusChange struct {
	OrderID           string
	From              model.OrderStatus
	To                model.OrderStatus
	ExpectedUpdatedAt time.Time
	ActorID           int64
	Override          bool
	TrackingNumber    *string
	EstimatedDelivery *time.Time
}

// OrderRepository describes persistence operations with orders.
//
// Create performs the serialized admission check: it must reject with
// ErrQueueFull when the in-flight set is at capacity, and assign the new
// order a queue position, all within one transaction.
type OrderRepository interface {
	Create(ctx context.Context, order NewOrder) (*model.Order, error)
	GetByID(ctx context.Context, id string) (*model.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	CountInFlight(ctx context.Context) (int, error)
	ApplyStatusChange(ctx context.Context, change StatusChange) (*model.Order, error)
	UpdateScale(ctx context.Context, orderID string, customerID int64, scale, price float64) (*model.Order, error)
	ListAudit(ctx context.Context, orderID string) ([]model.StatusAudit, error)
}
