package memory

import (
	"context"
	"sync"
	"time"

	"github.com/api-sage/card-banking-system/internal/commons"
	"github.com/api-sage/card-banking-system/internal/domain"
)

type TransferRepository struct {
	mu        sync.Mutex
	cards     *CardRepository
	transfers map[string]domain.Transfer
}

func NewTransferRepository(cards *CardRepository) *TransferRepository {
	return &TransferRepository{
		cards:     cards,
		transfers: make(map[string]domain.Transfer),
	}
}

func (r *TransferRepository) PostTransfer(_ context.Context, debitAccountID string, creditAccountID string, amount int64) error {
	return r.cards.post(debitAccountID, creditAccountID, amount)
}

func (r *TransferRepository) Create(_ context.Context, transfer domain.Transfer) (domain.Transfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	transfer.CreatedAt = now
	transfer.ProcessedAt = &now
	r.transfers[transfer.Reference] = transfer
	return transfer, nil
}

func (r *TransferRepository) GetByReference(_ context.Context, reference string) (domain.Transfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	transfer, ok := r.transfers[reference]
	if !ok {
		return domain.Transfer{}, commons.ErrRecordNotFound
	}
	return transfer, nil
}
