package model

import "time"

// OrderStatus describes fulfillment lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusCrafting   OrderStatus = "crafting"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

// nextStatus maps each state to its linear successor.
var nextStatus = map[OrderStatus]OrderStatus{
	OrderStatusPending:    OrderStatusCrafting,
	OrderStatusCrafting:   OrderStatusProcessing,
	OrderStatusProcessing: OrderStatusShipped,
	OrderStatusShipped:    OrderStatusDelivered,
}

// ValidOrderStatus reports whether s is a recognized status literal.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusCrafting, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded:
		return true
	}
	return false
}

// Terminal reports whether s admits no further transitions.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled || s == OrderStatusRefunded
}

// InFlight reports whether an order in status s occupies a print-queue slot.
func (s OrderStatus) InFlight() bool {
	return s == OrderStatusPending || s == OrderStatusCrafting || s == OrderStatusProcessing
}

// CanTransition reports whether moving from s to next is a legal lifecycle edge.
// Each state may advance only to its linear successor; cancelled and refunded
// are reachable from any non-terminal state. Same-state moves are handled by
// the caller as idempotent no-ops, not edges.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if s.Terminal() {
		return false
	}
	if next == OrderStatusCancelled || next == OrderStatusRefunded {
		return true
	}
	return nextStatus[s] == next
}

// Size is a print size tier.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// ValidSize reports whether s is an enumerated size tier.
func ValidSize(s Size) bool {
	return s == SizeSmall || s == SizeMedium || s == SizeLarge
}

// Color is a resin color from the fixed palette.
type Color string

const (
	ColorBlack Color = "black"
	ColorBlue  Color = "blue"
	ColorGrey  Color = "grey"
	ColorRed   Color = "red"
	ColorClear Color = "clear"
	ColorGreen Color = "green"
)

// ValidColor reports whether c belongs to the resin palette.
func ValidColor(c Color) bool {
	switch c {
	case ColorBlack, ColorBlue, ColorGrey, ColorRed, ColorClear, ColorGreen:
		return true
	}
	return false
}

// QueueStats summarizes print-queue load for the admin dashboard.
type QueueStats struct {
	InFlight    int
	Capacity    int
	Utilization float64
}

// Order describes one customer purchase of a printed model.
type Order struct {
	ID                string
	CustomerID        int64
	ModelID           string
	Size              Size
	Color             Color
	ScaleAdjustment   float64
	Price             float64
	Status            OrderStatus
	QueuePosition     *int
	PaymentMethod     string
	ShippingAddress   string
	TrackingNumber    *string
	EstimatedDelivery *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
