package memory

import (
	"context"
	"sync"
	"time"

	"github.com/api-sage/card-banking-system/internal/commons"
	"github.com/api-sage/card-banking-system/internal/domain"
)

// CardRepository keeps card rows in a map. It backs the no-database mode and
// doubles as the store used by the service tests. Semantics mirror the
// Postgres implementation, including the sentinel errors.
type CardRepository struct {
	mu    sync.Mutex
	cards map[string]domain.Card
}

func NewCardRepository() *CardRepository {
	return &CardRepository{cards: make(map[string]domain.Card)}
}

func (r *CardRepository) Create(_ context.Context, c domain.Card) (domain.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.cards[c.AccountID]; exists {
		return domain.Card{}, commons.ErrDuplicateAccountID
	}

	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	r.cards[c.AccountID] = c
	return c, nil
}

func (r *CardRepository) GetByAccountID(_ context.Context, accountID string) (domain.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.cards[accountID]
	if !ok {
		return domain.Card{}, commons.ErrRecordNotFound
	}
	return c, nil
}

func (r *CardRepository) ListAccountIDs(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(r.cards))
	for id := range r.cards {
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *CardRepository) UpdateBalance(_ context.Context, accountID string, newBalance int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.cards[accountID]
	if !ok {
		return commons.ErrRecordNotFound
	}
	c.Balance = newBalance
	c.UpdatedAt = time.Now()
	r.cards[accountID] = c
	return nil
}

func (r *CardRepository) Delete(_ context.Context, accountID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.cards[accountID]; !ok {
		return commons.ErrRecordNotFound
	}
	delete(r.cards, accountID)
	return nil
}

// post applies a guarded debit and a credit as one atomic step on behalf of
// the memory TransferRepository.
func (r *CardRepository) post(debitAccountID string, creditAccountID string, amount int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sender, ok := r.cards[debitAccountID]
	if !ok {
		return commons.ErrRecordNotFound
	}
	recipient, ok := r.cards[creditAccountID]
	if !ok {
		return commons.ErrRecordNotFound
	}
	if sender.Balance < amount {
		return commons.ErrInsufficientBalance
	}

	now := time.Now()
	sender.Balance -= amount
	sender.UpdatedAt = now
	r.cards[debitAccountID] = sender

	// Re-read so a self-transfer credits the already-debited row.
	recipient = r.cards[creditAccountID]
	recipient.Balance += amount
	recipient.UpdatedAt = now
	r.cards[creditAccountID] = recipient

	return nil
}
