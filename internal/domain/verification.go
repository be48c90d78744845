package domain

import "time"

// Status is the lifecycle state of a verification.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusDeclined Status = "declined"
)

// Terminal reports whether no further transition is permitted from s.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusDeclined
}

// Verification is a pending (or resolved) approval request. It lives only
// in process memory; a record past its TTL is treated as absent on every
// read, whether or not the sweeper has removed it yet.
type Verification struct {
	ID              string    `json:"id"`
	Status          Status    `json:"status"`
	PaymentMethodID string    `json:"payment_method_id"`
	UserID          string    `json:"user_id"`
	Code            string    `json:"code"`
	Phone           string    `json:"phone,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
