package model

import "time"

// Customer represents a registered storefront customer. Customers are never
// hard-deleted: historical orders keep resolving their customer reference, so
// removal is a soft disable.
type Customer struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	Staff        bool
	DisabledAt   *time.Time
	CreatedAt    time.Time
}

// Disabled reports whether the customer account has been soft-disabled.
func (c *Customer) Disabled() bool {
	return c.DisabledAt != nil
}
