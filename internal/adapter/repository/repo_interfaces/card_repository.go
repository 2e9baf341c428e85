package repo_interfaces

import (
	"context"

	"github.com/api-sage/card-banking-system/internal/domain"
)

type CardRepository interface {
	// Create persists a new card row. Returns commons.ErrDuplicateAccountID
	// when the account id is already present.
	Create(ctx context.Context, card domain.Card) (domain.Card, error)
	GetByAccountID(ctx context.Context, accountID string) (domain.Card, error)
	ListAccountIDs(ctx context.Context) ([]string, error)
	UpdateBalance(ctx context.Context, accountID string, newBalance int64) error
	Delete(ctx context.Context, accountID string) error
}
