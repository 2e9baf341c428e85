package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/api-sage/card-banking-system/internal/card"
	"github.com/api-sage/card-banking-system/internal/commons"
	"github.com/api-sage/card-banking-system/internal/domain"
	"github.com/api-sage/card-banking-system/internal/logger"
)

type TransferRepository struct {
	db *sql.DB
}

func NewTransferRepository(db *sql.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

// PostTransfer runs the debit and the credit in one database transaction.
// The debit statement carries a balance guard, so a concurrent or stale view
// of the sender balance can never drive it negative.
func (r *TransferRepository) PostTransfer(ctx context.Context, debitAccountID string, creditAccountID string, amount int64) error {
	logger.Info("transfer repository post transfer", logger.Fields{
		"debitAccountId":  debitAccountID,
		"creditAccountId": creditAccountID,
		"amount":          amount,
	})

	debitID, err := parseAccountID(debitAccountID)
	if err != nil {
		return err
	}
	creditID, err := parseAccountID(creditAccountID)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("transfer repository begin tx failed", err, nil)
		return fmt.Errorf("begin transfer transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const debitQuery = `
UPDATE cards
SET balance = balance - $2,
    updated_at = NOW()
WHERE id = $1
  AND balance >= $2`

	var rows int64
	if rows, err = execRows(ctx, tx, debitQuery, debitID, amount); err != nil {
		return err
	}
	if rows == 0 {
		err = r.classifyDebitFailure(ctx, debitAccountID, amount)
		return err
	}

	const creditQuery = `
UPDATE cards
SET balance = balance + $2,
    updated_at = NOW()
WHERE id = $1`

	if rows, err = execRows(ctx, tx, creditQuery, creditID, amount); err != nil {
		return err
	}
	if rows == 0 {
		err = commons.ErrRecordNotFound
		return err
	}

	if err = tx.Commit(); err != nil {
		logger.Error("transfer repository commit tx failed", err, nil)
		return fmt.Errorf("commit transfer transaction: %w", err)
	}

	logger.Info("transfer repository post transfer success", logger.Fields{
		"debitAccountId":  debitAccountID,
		"creditAccountId": creditAccountID,
	})
	return nil
}

func (r *TransferRepository) Create(ctx context.Context, transfer domain.Transfer) (domain.Transfer, error) {
	logger.Info("transfer repository create", logger.Fields{
		"reference": transfer.Reference,
		"status":    transfer.Status,
	})

	const query = `
INSERT INTO transfers (
	id,
	reference,
	debit_account_id,
	credit_account_id,
	amount,
	status,
	processed_at
) VALUES ($1, $2, $3, $4, $5, $6, NOW())
RETURNING created_at, processed_at`

	debitID, err := parseAccountID(transfer.DebitAccountID)
	if err != nil {
		return domain.Transfer{}, err
	}
	creditID, err := parseAccountID(transfer.CreditAccountID)
	if err != nil {
		return domain.Transfer{}, err
	}

	var createdAt time.Time
	var processedAt sql.NullTime

	if err := r.db.QueryRowContext(
		ctx,
		query,
		transfer.ID,
		transfer.Reference,
		debitID,
		creditID,
		transfer.Amount,
		transfer.Status,
	).Scan(&createdAt, &processedAt); err != nil {
		logger.Error("transfer repository create failed", err, logger.Fields{
			"reference": transfer.Reference,
		})
		return domain.Transfer{}, fmt.Errorf("create transfer: %w", err)
	}

	transfer.CreatedAt = createdAt
	if processedAt.Valid {
		value := processedAt.Time
		transfer.ProcessedAt = &value
	}

	return transfer, nil
}

func (r *TransferRepository) GetByReference(ctx context.Context, reference string) (domain.Transfer, error) {
	const query = `
SELECT id, reference, debit_account_id, credit_account_id, amount, status, created_at, processed_at
FROM transfers
WHERE reference = $1`

	var (
		transfer    domain.Transfer
		debitID     int64
		creditID    int64
		processedAt sql.NullTime
	)
	if err := r.db.QueryRowContext(ctx, query, reference).Scan(
		&transfer.ID,
		&transfer.Reference,
		&debitID,
		&creditID,
		&transfer.Amount,
		&transfer.Status,
		&transfer.CreatedAt,
		&processedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Transfer{}, commons.ErrRecordNotFound
		}
		logger.Error("transfer repository get failed", err, logger.Fields{
			"reference": reference,
		})
		return domain.Transfer{}, fmt.Errorf("get transfer by reference: %w", err)
	}

	transfer.DebitAccountID = card.FormatAccountID(debitID)
	transfer.CreditAccountID = card.FormatAccountID(creditID)
	if processedAt.Valid {
		value := processedAt.Time
		transfer.ProcessedAt = &value
	}

	return transfer, nil
}

// classifyDebitFailure distinguishes a missing sender row from an
// insufficient balance after the guarded debit matched no rows.
func (r *TransferRepository) classifyDebitFailure(ctx context.Context, debitAccountID string, amount int64) error {
	cards := NewCardRepository(r.db)
	sender, err := cards.GetByAccountID(ctx, debitAccountID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrRecordNotFound
		}
		return err
	}
	if sender.Balance < amount {
		return commons.ErrInsufficientBalance
	}
	return fmt.Errorf("debit card %s failed for amount %d", debitAccountID, amount)
}

func execRows(ctx context.Context, tx *sql.Tx, query string, args ...any) (int64, error) {
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("execute transfer statement: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read rows affected: %w", err)
	}
	return rows, nil
}
