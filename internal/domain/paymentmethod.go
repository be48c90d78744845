package domain

import "time"

// PaymentMethod is a row in the external payment-methods table. The broker
// only ever reads one by id and flips Verified to true on approval; it
// never interprets the payment details themselves.
type PaymentMethod struct {
	PaymentMethodID string    `json:"id" dynamodbav:"payment_method_id"`
	UserID          string    `json:"user_id" dynamodbav:"user_id"`
	Label           string    `json:"label" dynamodbav:"label"`
	Verified        bool      `json:"verified" dynamodbav:"verified"`
	CreatedAt       time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt       time.Time `json:"updated" dynamodbav:"updated_at"`
}
