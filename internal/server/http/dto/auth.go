package dto

// RegisterRequest describes the signup payload.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest describes the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CustomerResponse is the public view of a customer account.
type CustomerResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Staff    bool   `json:"staff,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}
