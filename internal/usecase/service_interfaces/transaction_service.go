package service_interfaces

import (
	"context"

	"github.com/api-sage/card-banking-system/internal/adapter/terminal/models"
	"github.com/api-sage/card-banking-system/internal/commons"
)

type TransactionService interface {
	Balance(ctx context.Context, accountID string) (commons.Response[models.BalanceResponse], error)
	Deposit(ctx context.Context, req models.DepositRequest) (commons.Response[models.DepositResponse], error)
	Transfer(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error)
	CloseAccount(ctx context.Context, accountID string) (commons.Response[models.CloseAccountResponse], error)
}
