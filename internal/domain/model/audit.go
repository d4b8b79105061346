package model

import "time"

// StatusAudit records one staff-driven order status change. Override entries
// mark jumps outside the regular lifecycle edges.
type StatusAudit struct {
	ID       int64
	OrderID  string
	From     OrderStatus
	To       OrderStatus
	ActorID  int64
	Override bool
	At       time.Time
}
