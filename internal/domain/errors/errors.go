package errors

import "errors"

var (
	ErrAlreadyExists          = errors.New("already exists")
	ErrNotFound               = errors.New("not found")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidSize            = errors.New("invalid size tier")
	ErrInvalidColor           = errors.New("invalid color")
	ErrInvalidScale           = errors.New("invalid scale adjustment")
	ErrInvalidStatus          = errors.New("invalid order status")
	ErrInvalidTransition      = errors.New("illegal status transition")
	ErrQueueFull              = errors.New("print queue is full")
	ErrConcurrentModification = errors.New("concurrent modification")
	ErrOrderNotEditable       = errors.New("order can no longer be edited")
	ErrInvalidPrompt          = errors.New("invalid generation prompt")
	ErrCustomerDisabled       = errors.New("customer account disabled")
)
