package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	domainErrors "github.com/ward3d/wardprints/internal/domain/errors"
	"github.com/ward3d/wardprints/internal/domain/model"
	"github.com/ward3d/wardprints/internal/domain/repository"
)

// transitionRetries bounds automatic retries after a lost optimistic race.
const transitionRetries = 3

const deliveryLeadTime = 5 * 24 * time.Hour

// OrderUseCase encapsulates order admission, pricing, and the lifecycle
// state machine.
type OrderUseCase struct {
	orders repository.OrderRepository
	now    func() time.Time
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders, now: time.Now}
}

// Place validates selections, prices the order, and admits it into the print
// queue. The storage layer performs the serialized capacity check; a full
// queue surfaces as ErrQueueFull and is never retried here.
func (u *OrderUseCase) Place(ctx context.Context, customerID int64, modelID string, size model.Size, color model.Color, scale float64, paymentMethod, shippingAddress string) (*model.Order, error) {
	if !model.ValidSize(size) {
		return nil, domainErrors.ErrInvalidSize
	}
	if !model.ValidColor(color) {
		return nil, domainErrors.ErrInvalidColor
	}
	if scale == 0 {
		scale = 1.0
	}

	price, err := ComputePrice(size, scale)
	if err != nil {
		return nil, err
	}

	return u.orders.Create(ctx, repository.NewOrder{
		CustomerID:      customerID,
		ModelID:         modelID,
		Size:            size,
		Color:           color,
		ScaleAdjustment: scale,
		Price:           price,
		PaymentMethod:   paymentMethod,
		ShippingAddress: shippingAddress,
	})
}

// Transition moves an order along the lifecycle state machine. Moving to the
// current status is an idempotent no-op. Queue positions of the in-flight set
// are re-ranked atomically with the status write; a lost race is retried a
// bounded number of times before ErrConcurrentModification reaches the caller.
func (u *OrderUseCase) Transition(ctx context.Context, orderID string, next model.OrderStatus, actorID int64) (*model.Order, error) {
	return u.applyChange(ctx, orderID, next, actorID, false)
}

// Override is the audited admin escape hatch: it may set any recognized
// status regardless of the allowed-edges table. Every override is recorded
// with its actor so out-of-order corrections stay traceable.
func (u *OrderUseCase) Override(ctx context.Context, orderID string, target model.OrderStatus, actorID int64) (*model.Order, error) {
	return u.applyChange(ctx, orderID, target, actorID, true)
}

func (u *OrderUseCase) applyChange(ctx context.Context, orderID string, next model.OrderStatus, actorID int64, override bool) (*model.Order, error) {
	if !model.ValidOrderStatus(next) {
		return nil, domainErrors.ErrInvalidStatus
	}

	for attempt := 0; attempt < transitionRetries; attempt++ {
		order, err := u.orders.GetByID(ctx, orderID)
		if err != nil {
			return nil, err
		}

		if order.Status == next {
			return order, nil
		}
		if !override && !order.Status.CanTransition(next) {
			return nil, domainErrors.ErrInvalidTransition
		}

		change := repository.StatusChange{
			OrderID:           orderID,
			From:              order.Status,
			To:                next,
			ExpectedUpdatedAt: order.UpdatedAt,
			ActorID:           actorID,
			Override:          override,
		}
		if next == model.OrderStatusShipped && order.TrackingNumber == nil {
			tracking := newTrackingNumber()
			eta := u.now().Add(deliveryLeadTime)
			change.TrackingNumber = &tracking
			change.EstimatedDelivery = &eta
		}

		updated, err := u.orders.ApplyStatusChange(ctx, change)
		if errors.Is(err, domainErrors.ErrConcurrentModification) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return updated, nil
	}

	return nil, domainErrors.ErrConcurrentModification
}

// AdjustScale changes the scale adjustment of a pending order owned by the
// customer and reprices it. Once the order leaves pending the scale is locked.
func (u *OrderUseCase) AdjustScale(ctx context.Context, orderID string, customerID int64, scale float64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, domainErrors.ErrNotFound
	}
	if order.Status != model.OrderStatusPending {
		return nil, domainErrors.ErrOrderNotEditable
	}

	price, err := ComputePrice(order.Size, scale)
	if err != nil {
		return nil, err
	}

	return u.orders.UpdateScale(ctx, orderID, customerID, scale, price)
}

// Track returns the order for the customer-facing tracking view.
func (u *OrderUseCase) Track(ctx context.Context, orderID string, customerID int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, domainErrors.ErrNotFound
	}
	return order, nil
}

// ListByCustomer returns the customer's orders sorted by creation time.
func (u *OrderUseCase) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	return u.orders.ListByCustomer(ctx, customerID)
}

// ListAll returns every order for the admin panel.
func (u *OrderUseCase) ListAll(ctx context.Context) ([]model.Order, error) {
	return u.orders.ListAll(ctx)
}

// Audit returns the status-change history of an order.
func (u *OrderUseCase) Audit(ctx context.Context, orderID string) ([]model.StatusAudit, error) {
	return u.orders.ListAudit(ctx, orderID)
}

// Stats reports print-queue load derived from the authoritative in-flight
// count, never simulated.
func (u *OrderUseCase) Stats(ctx context.Context) (*model.QueueStats, error) {
	inFlight, err := u.orders.CountInFlight(ctx)
	if err != nil {
		return nil, err
	}
	return &model.QueueStats{
		InFlight:    inFlight,
		Capacity:    PrintQueueCapacity,
		Utilization: float64(inFlight) / float64(PrintQueueCapacity) * 100,
	}, nil
}

func newTrackingNumber() string {
	return fmt.Sprintf("TRK%09d", rand.Int63n(1_000_000_000))
}
