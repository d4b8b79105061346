package auth

import "time"

// Strategy issues and verifies session tokens for a customer ID.
type Strategy interface {
	IssueToken(customerID int64) (string, error)
	ParseToken(token string) (int64, error)
	Name() string
}

// Options tunes token issuance; the zero value uses the strategy default TTL.
type Options struct {
	TTL time.Duration
}
