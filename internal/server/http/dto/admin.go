package dto

import "time"

// ChangeStatusRequest moves an order along the lifecycle.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// AdminOrderResponse extends the customer order view with ownership and
// payment details.
type AdminOrderResponse struct {
	OrderResponse
	CustomerID      int64  `json:"customer_id"`
	PaymentMethod   string `json:"payment_method"`
	ShippingAddress string `json:"shipping_address"`
}

// AuditEntryResponse is one recorded status change.
type AuditEntryResponse struct {
	From     string    `json:"from"`
	To       string    `json:"to"`
	ActorID  int64     `json:"actor_id"`
	Override bool      `json:"override,omitempty"`
	At       time.Time `json:"at"`
}

// ModelURLs mirrors the per-format download links of a print model.
type ModelURLs struct {
	GLB  string `json:"glb,omitempty"`
	USDZ string `json:"usdz,omitempty"`
	FBX  string `json:"fbx,omitempty"`
	OBJ  string `json:"obj,omitempty"`
}

// ModelResponse is the catalog view of a generated print model.
type ModelResponse struct {
	ID        string    `json:"id"`
	CreatorID int64     `json:"creator_id"`
	Name      string    `json:"name"`
	Source    string    `json:"source"`
	URLs      ModelURLs `json:"urls"`
	CreatedAt time.Time `json:"created_at"`
}

// StatsResponse summarizes printer load.
type StatsResponse struct {
	InFlight    int     `json:"in_flight"`
	Capacity    int     `json:"capacity"`
	Utilization float64 `json:"utilization"`
}
