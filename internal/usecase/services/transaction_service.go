package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/api-sage/card-banking-system/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/card-banking-system/internal/adapter/terminal/models"
	"github.com/api-sage/card-banking-system/internal/card"
	"github.com/api-sage/card-banking-system/internal/commons"
	"github.com/api-sage/card-banking-system/internal/domain"
	"github.com/api-sage/card-banking-system/internal/logger"
	"github.com/google/uuid"
)

type TransactionService struct {
	cardRepo     repo_interfaces.CardRepository
	transferRepo repo_interfaces.TransferRepository
	issuerIIN    string
}

func NewTransactionService(
	cardRepo repo_interfaces.CardRepository,
	transferRepo repo_interfaces.TransferRepository,
	issuerIIN string,
) *TransactionService {
	return &TransactionService{
		cardRepo:     cardRepo,
		transferRepo: transferRepo,
		issuerIIN:    strings.TrimSpace(issuerIIN),
	}
}

var transferRefCounter uint32

func (s *TransactionService) Balance(ctx context.Context, accountID string) (commons.Response[models.BalanceResponse], error) {
	stored, err := s.cardRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.BalanceResponse]("Account not found"), err
		}
		logger.Error("transaction service balance failed", err, logger.Fields{
			"accountId": accountID,
		})
		return commons.ErrorResponse[models.BalanceResponse]("failed to fetch balance", "Unable to fetch balance right now"), err
	}

	return commons.SuccessResponse("balance fetched successfully", models.BalanceResponse{
		AccountID: stored.AccountID,
		Balance:   stored.Balance,
	}), nil
}

func (s *TransactionService) Deposit(ctx context.Context, req models.DepositRequest) (commons.Response[models.DepositResponse], error) {
	logger.Info("transaction service deposit request", logger.Fields{
		"accountId": req.AccountID,
		"amount":    req.Amount,
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.DepositResponse]("validation failed", err.Error()), err
	}

	accountID := strings.TrimSpace(req.AccountID)

	stored, err := s.cardRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.DepositResponse]("Account not found"), err
		}
		logger.Error("transaction service deposit get card failed", err, logger.Fields{
			"accountId": accountID,
		})
		return commons.ErrorResponse[models.DepositResponse]("failed to deposit", "Unable to deposit right now"), err
	}

	newBalance := stored.Balance + req.Amount
	if err := s.cardRepo.UpdateBalance(ctx, accountID, newBalance); err != nil {
		logger.Error("transaction service deposit update failed", err, logger.Fields{
			"accountId": accountID,
		})
		return commons.ErrorResponse[models.DepositResponse]("failed to deposit", "Unable to deposit right now"), err
	}

	logger.Info("transaction service deposit success", logger.Fields{
		"accountId": accountID,
		"amount":    req.Amount,
	})

	return commons.SuccessResponse("deposit posted successfully", models.DepositResponse{
		AccountID: accountID,
		Balance:   newBalance,
	}), nil
}

// Transfer applies the ordered checks: recipient checksum, recipient
// existence, then sender balance. The first failure wins and nothing is
// mutated before all three pass.
func (s *TransactionService) Transfer(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error) {
	logger.Info("transaction service transfer request", logger.Fields{
		"debitAccountId": req.DebitAccountID,
		"amount":         req.Amount,
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error()), err
	}

	debitAccountID := strings.TrimSpace(req.DebitAccountID)
	creditNumber := strings.TrimSpace(req.CreditCardNumber)

	if !card.VerifyNumber(creditNumber) {
		return commons.ErrorResponse[models.TransferResponse]("Invalid card number checksum"), commons.ErrInvalidChecksum
	}

	parts, err := card.Parse(creditNumber)
	if err != nil {
		return commons.ErrorResponse[models.TransferResponse]("Invalid card number checksum"), commons.ErrInvalidChecksum
	}
	if parts.IIN != s.issuerIIN {
		return commons.ErrorResponse[models.TransferResponse]("Recipient card not found"), commons.ErrRecordNotFound
	}

	if _, err := s.cardRepo.GetByAccountID(ctx, parts.AccountID); err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransferResponse]("Recipient card not found"), commons.ErrRecordNotFound
		}
		logger.Error("transaction service transfer get recipient failed", err, logger.Fields{
			"creditAccountId": parts.AccountID,
		})
		return commons.ErrorResponse[models.TransferResponse]("failed to transfer", "Unable to transfer right now"), err
	}

	sender, err := s.cardRepo.GetByAccountID(ctx, debitAccountID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransferResponse]("Account not found"), err
		}
		logger.Error("transaction service transfer get sender failed", err, logger.Fields{
			"debitAccountId": debitAccountID,
		})
		return commons.ErrorResponse[models.TransferResponse]("failed to transfer", "Unable to transfer right now"), err
	}

	if sender.Balance < req.Amount {
		return commons.ErrorResponse[models.TransferResponse]("Insufficient balance"), commons.ErrInsufficientBalance
	}

	reference := generateTransferReference()

	if err := s.transferRepo.PostTransfer(ctx, debitAccountID, parts.AccountID, req.Amount); err != nil {
		s.recordTransfer(ctx, reference, debitAccountID, parts.AccountID, req.Amount, domain.TransferStatusFailed)
		if errors.Is(err, commons.ErrInsufficientBalance) {
			return commons.ErrorResponse[models.TransferResponse]("Insufficient balance"), err
		}
		logger.Error("transaction service transfer posting failed", err, logger.Fields{
			"debitAccountId":  debitAccountID,
			"creditAccountId": parts.AccountID,
		})
		return commons.ErrorResponse[models.TransferResponse]("failed to transfer", "Unable to transfer right now"), err
	}

	s.recordTransfer(ctx, reference, debitAccountID, parts.AccountID, req.Amount, domain.TransferStatusSuccess)

	logger.Info("transaction service transfer success", logger.Fields{
		"reference":      reference,
		"debitAccountId": debitAccountID,
		"amount":         req.Amount,
	})

	return commons.SuccessResponse("transfer completed successfully", models.TransferResponse{
		Reference:      reference,
		DebitAccountID: debitAccountID,
		Amount:         req.Amount,
	}), nil
}

func (s *TransactionService) CloseAccount(ctx context.Context, accountID string) (commons.Response[models.CloseAccountResponse], error) {
	logger.Info("transaction service close account request", logger.Fields{
		"accountId": accountID,
	})

	if err := s.cardRepo.Delete(ctx, accountID); err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.CloseAccountResponse]("Account not found"), err
		}
		logger.Error("transaction service close account failed", err, logger.Fields{
			"accountId": accountID,
		})
		return commons.ErrorResponse[models.CloseAccountResponse]("failed to close account", "Unable to close account right now"), err
	}

	logger.Info("transaction service close account success", logger.Fields{
		"accountId": accountID,
	})

	return commons.SuccessResponse("account closed successfully", models.CloseAccountResponse{
		AccountID: accountID,
	}), nil
}

// recordTransfer writes the ledger row for an attempted posting. The card
// balances are the source of truth, so a ledger write failure is logged and
// swallowed rather than failing the transfer.
func (s *TransactionService) recordTransfer(ctx context.Context, reference, debitAccountID, creditAccountID string, amount int64, status domain.TransferStatus) {
	_, err := s.transferRepo.Create(ctx, domain.Transfer{
		ID:              uuid.NewString(),
		Reference:       reference,
		DebitAccountID:  debitAccountID,
		CreditAccountID: creditAccountID,
		Amount:          amount,
		Status:          status,
	})
	if err != nil {
		logger.Error("transaction service record transfer failed", err, logger.Fields{
			"reference": reference,
			"status":    status,
		})
	}
}

func generateTransferReference() string {
	return fmt.Sprintf("TRF%d%04d", time.Now().Unix(), atomic.AddUint32(&transferRefCounter, 1)%10_000)
}
