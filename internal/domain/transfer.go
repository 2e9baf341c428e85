package domain

import "time"

type TransferStatus string

const (
	TransferStatusSuccess TransferStatus = "SUCCESS"
	TransferStatusFailed  TransferStatus = "FAILED"
)

// Transfer is the ledger record written for every attempted funds move. The
// card balances remain the source of truth; this row is the audit trail.
type Transfer struct {
	ID              string
	Reference       string
	DebitAccountID  string
	CreditAccountID string
	Amount          int64
	Status          TransferStatus
	CreatedAt       time.Time
	ProcessedAt     *time.Time
}
