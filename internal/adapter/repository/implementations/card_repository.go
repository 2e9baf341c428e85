package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/api-sage/card-banking-system/internal/card"
	"github.com/api-sage/card-banking-system/internal/commons"
	"github.com/api-sage/card-banking-system/internal/domain"
	"github.com/api-sage/card-banking-system/internal/logger"
	"github.com/lib/pq"
)

type CardRepository struct {
	db *sql.DB
}

func NewCardRepository(db *sql.DB) *CardRepository {
	return &CardRepository{db: db}
}

func (r *CardRepository) Create(ctx context.Context, c domain.Card) (domain.Card, error) {
	logger.Info("card repository create", logger.Fields{
		"accountId": c.AccountID,
	})

	id, err := parseAccountID(c.AccountID)
	if err != nil {
		return domain.Card{}, err
	}

	const query = `
INSERT INTO cards (
	id,
	number,
	pin_hash,
	balance
) VALUES ($1, $2, $3, $4)
RETURNING created_at, updated_at`

	var createdAt time.Time
	var updatedAt time.Time

	if err := r.db.QueryRowContext(
		ctx,
		query,
		id,
		c.Number,
		c.PINHash,
		c.Balance,
	).Scan(&createdAt, &updatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			logger.Info("card repository duplicate account id", logger.Fields{
				"accountId": c.AccountID,
			})
			return domain.Card{}, commons.ErrDuplicateAccountID
		}
		logger.Error("card repository create failed", err, logger.Fields{
			"accountId": c.AccountID,
		})
		return domain.Card{}, fmt.Errorf("create card: %w", err)
	}

	c.CreatedAt = createdAt
	c.UpdatedAt = updatedAt
	logger.Info("card repository create success", logger.Fields{
		"accountId": c.AccountID,
	})

	return c, nil
}

func (r *CardRepository) GetByAccountID(ctx context.Context, accountID string) (domain.Card, error) {
	id, err := parseAccountID(accountID)
	if err != nil {
		return domain.Card{}, err
	}

	const query = `
SELECT id, number, pin_hash, balance, created_at, updated_at
FROM cards
WHERE id = $1`

	var (
		c     domain.Card
		rowID int64
	)
	if err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rowID,
		&c.Number,
		&c.PINHash,
		&c.Balance,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("card repository record not found", logger.Fields{
				"accountId": accountID,
			})
			return domain.Card{}, commons.ErrRecordNotFound
		}
		logger.Error("card repository get failed", err, logger.Fields{
			"accountId": accountID,
		})
		return domain.Card{}, fmt.Errorf("get card by account id: %w", err)
	}

	c.AccountID = card.FormatAccountID(rowID)
	return c, nil
}

func (r *CardRepository) ListAccountIDs(ctx context.Context) ([]string, error) {
	const query = `SELECT id FROM cards`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("card repository list account ids failed", err, nil)
		return nil, fmt.Errorf("list account ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan account id: %w", err)
		}
		ids = append(ids, card.FormatAccountID(id))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate account ids: %w", err)
	}

	return ids, nil
}

func (r *CardRepository) UpdateBalance(ctx context.Context, accountID string, newBalance int64) error {
	logger.Info("card repository update balance", logger.Fields{
		"accountId": accountID,
	})

	id, err := parseAccountID(accountID)
	if err != nil {
		return err
	}

	const query = `
UPDATE cards
SET balance = $2,
    updated_at = NOW()
WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, newBalance)
	if err != nil {
		logger.Error("card repository update balance failed", err, logger.Fields{
			"accountId": accountID,
		})
		return fmt.Errorf("update balance: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update balance rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return commons.ErrRecordNotFound
	}

	return nil
}

func (r *CardRepository) Delete(ctx context.Context, accountID string) error {
	logger.Info("card repository delete", logger.Fields{
		"accountId": accountID,
	})

	id, err := parseAccountID(accountID)
	if err != nil {
		return err
	}

	const query = `DELETE FROM cards WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("card repository delete failed", err, logger.Fields{
			"accountId": accountID,
		})
		return fmt.Errorf("delete card: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete card rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return commons.ErrRecordNotFound
	}

	logger.Info("card repository delete success", logger.Fields{
		"accountId": accountID,
	})
	return nil
}

func parseAccountID(accountID string) (int64, error) {
	id, err := strconv.ParseInt(accountID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse account id %q: %w", accountID, err)
	}
	return id, nil
}
