package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/api-sage/card-banking-system/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/card-banking-system/internal/adapter/terminal/models"
	"github.com/api-sage/card-banking-system/internal/card"
	"github.com/api-sage/card-banking-system/internal/commons"
	"github.com/api-sage/card-banking-system/internal/domain"
	"github.com/api-sage/card-banking-system/internal/logger"
	"golang.org/x/crypto/bcrypt"
)

// maxAllocationAttempts bounds the collision-retry loop. The id space holds
// 10^9 values, so hitting the bound means the store is effectively full or
// misbehaving.
const maxAllocationAttempts = 1000

type CardService struct {
	cardRepo  repo_interfaces.CardRepository
	issuerIIN string
}

func NewCardService(cardRepo repo_interfaces.CardRepository, issuerIIN string) *CardService {
	return &CardService{
		cardRepo:  cardRepo,
		issuerIIN: strings.TrimSpace(issuerIIN),
	}
}

func (s *CardService) CreateCard(ctx context.Context) (commons.Response[models.CreateCardResponse], error) {
	logger.Info("card service create card request", nil)

	accountID, err := s.allocateAccountID(ctx)
	if err != nil {
		logger.Error("card service allocate account id failed", err, nil)
		return commons.ErrorResponse[models.CreateCardResponse]("failed to create card", "Unable to create a card right now"), err
	}

	number := card.Compose(s.issuerIIN, accountID)

	// The PIN is drawn fresh on every issuance and its clear form exists only
	// in the response handed back to the caller.
	pin, err := card.RandomPIN()
	if err != nil {
		logger.Error("card service draw pin failed", err, nil)
		return commons.ErrorResponse[models.CreateCardResponse]("failed to create card", "Unable to create a card right now"), err
	}

	pinHash, err := hashPIN(pin)
	if err != nil {
		logger.Error("card service hash pin failed", err, nil)
		return commons.ErrorResponse[models.CreateCardResponse]("failed to create card", "Unable to create a card right now"), err
	}

	created, err := s.cardRepo.Create(ctx, domain.Card{
		AccountID: accountID,
		Number:    number,
		PINHash:   pinHash,
		Balance:   0,
	})
	if err != nil {
		logger.Error("card service create card repository failed", err, logger.Fields{
			"accountId": accountID,
		})
		return commons.ErrorResponse[models.CreateCardResponse]("failed to create card", "Unable to create a card right now"), err
	}

	logger.Info("card service create card success", logger.Fields{
		"accountId": created.AccountID,
	})

	return commons.SuccessResponse("card created successfully", models.CreateCardResponse{
		CardNumber: created.Number,
		PIN:        pin,
	}), nil
}

// allocateAccountID draws random 9-digit ids until one is absent from the
// store at call time.
func (s *CardService) allocateAccountID(ctx context.Context) (string, error) {
	ids, err := s.cardRepo.ListAccountIDs(ctx)
	if err != nil {
		return "", fmt.Errorf("list account ids: %w", err)
	}

	existing := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		existing[id] = struct{}{}
	}

	for attempt := 0; attempt < maxAllocationAttempts; attempt++ {
		accountID, err := card.RandomAccountID()
		if err != nil {
			return "", err
		}
		if _, taken := existing[accountID]; !taken {
			return accountID, nil
		}
	}

	return "", fmt.Errorf("account id space exhausted after %d attempts", maxAllocationAttempts)
}

func hashPIN(pin string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash pin: %w", err)
	}

	return string(hashed), nil
}
