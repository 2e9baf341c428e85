package domain

import "time"

// Card is a payment-card account. AccountID is the 9-digit zero-padded
// identifier embedded in the card number; Balance is kept in the smallest
// currency unit. The clear PIN is never stored, only its bcrypt hash.
type Card struct {
	AccountID string
	Number    string
	PINHash   string
	Balance   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
