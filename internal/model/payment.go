package model

import "time"

// DefaultCurrency is used when the payment collaborator sends no currency.
const DefaultCurrency = "USD"

// Payment represents one closed/charged transaction attributed to a
// tracking link. Append-only from this service's perspective.
type Payment struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Email     string    `json:"email"`
	Amount    float64   `json:"amount"`   // never negative
	Currency  string    `json:"currency"` // ISO 4217, 3 letters
	Timestamp time.Time `json:"timestamp"`
}
