package repo_interfaces

import (
	"context"

	"github.com/api-sage/card-banking-system/internal/domain"
)

type TransferRepository interface {
	// PostTransfer debits one card and credits another inside a single store
	// transaction. Either both balance mutations persist or neither does.
	// Returns commons.ErrInsufficientBalance when the debit guard fails and
	// commons.ErrRecordNotFound when either card row is missing.
	PostTransfer(ctx context.Context, debitAccountID string, creditAccountID string, amount int64) error
	Create(ctx context.Context, transfer domain.Transfer) (domain.Transfer, error)
	GetByReference(ctx context.Context, reference string) (domain.Transfer, error)
}
