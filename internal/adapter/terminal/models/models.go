package models

import (
	"errors"
	"strings"

	"github.com/api-sage/card-banking-system/internal/card"
)

type CreateCardResponse struct {
	CardNumber string
	PIN        string
}

type LoginRequest struct {
	CardNumber string
	PIN        string
}

func (r LoginRequest) Validate() error {
	var errs []string

	if len(strings.TrimSpace(r.CardNumber)) != card.NumberLength {
		errs = append(errs, "card number must be exactly 16 digits")
	}
	if !card.IsPIN(strings.TrimSpace(r.PIN)) {
		errs = append(errs, "PIN must be exactly 4 digits")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type LoginResponse struct {
	AccountID  string
	CardNumber string
	Balance    int64
}

type BalanceResponse struct {
	AccountID string
	Balance   int64
}

type DepositRequest struct {
	AccountID string
	Amount    int64
}

func (r DepositRequest) Validate() error {
	var errs []string

	if !card.IsAccountID(strings.TrimSpace(r.AccountID)) {
		errs = append(errs, "accountId must be exactly 9 digits")
	}
	if r.Amount <= 0 {
		errs = append(errs, "amount must be greater than zero")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type DepositResponse struct {
	AccountID string
	Balance   int64
}

type TransferRequest struct {
	DebitAccountID   string
	CreditCardNumber string
	Amount           int64
}

func (r TransferRequest) Validate() error {
	var errs []string

	if !card.IsAccountID(strings.TrimSpace(r.DebitAccountID)) {
		errs = append(errs, "debitAccountId must be exactly 9 digits")
	}
	if len(strings.TrimSpace(r.CreditCardNumber)) != card.NumberLength {
		errs = append(errs, "credit card number must be exactly 16 digits")
	}
	if r.Amount <= 0 {
		errs = append(errs, "amount must be greater than zero")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type TransferResponse struct {
	Reference      string
	DebitAccountID string
	Amount         int64
}

type CloseAccountResponse struct {
	AccountID string
}
