package dto

import "time"

// PlaceOrderRequest describes the order placement payload.
type PlaceOrderRequest struct {
	ModelID         string  `json:"model_id"`
	Size            string  `json:"size"`
	Color           string  `json:"color"`
	Scale           float64 `json:"scale,omitempty"`
	PaymentMethod   string  `json:"payment_method"`
	ShippingAddress string  `json:"shipping_address"`
}

// AdjustScaleRequest changes the scale of a pending order.
type AdjustScaleRequest struct {
	Scale float64 `json:"scale"`
}

// OrderResponse is the customer-facing view of an order.
type OrderResponse struct {
	ID                string     `json:"id"`
	ModelID           string     `json:"model_id"`
	Size              string     `json:"size"`
	Color             string     `json:"color"`
	Scale             float64    `json:"scale"`
	Price             float64    `json:"price"`
	Status            string     `json:"status"`
	QueuePosition     *int       `json:"queue_position,omitempty"`
	TrackingNumber    *string    `json:"tracking_number,omitempty"`
	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}
