package services

import (
	"context"
	"errors"
	"strings"

	"github.com/api-sage/card-banking-system/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/card-banking-system/internal/adapter/terminal/models"
	"github.com/api-sage/card-banking-system/internal/card"
	"github.com/api-sage/card-banking-system/internal/commons"
	"github.com/api-sage/card-banking-system/internal/logger"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	cardRepo  repo_interfaces.CardRepository
	issuerIIN string
}

func NewAuthService(cardRepo repo_interfaces.CardRepository, issuerIIN string) *AuthService {
	return &AuthService{
		cardRepo:  cardRepo,
		issuerIIN: strings.TrimSpace(issuerIIN),
	}
}

// Login validates a card number/PIN pair. Every rejection collapses into the
// same response so the caller learns nothing about which check failed.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (commons.Response[models.LoginResponse], error) {
	logger.Info("auth service login request", nil)

	if err := req.Validate(); err != nil {
		return rejectLogin(), commons.ErrInvalidCredentials
	}

	number := strings.TrimSpace(req.CardNumber)
	pin := strings.TrimSpace(req.PIN)

	parts, err := card.Parse(number)
	if err != nil {
		return rejectLogin(), commons.ErrInvalidCredentials
	}
	if parts.IIN != s.issuerIIN {
		return rejectLogin(), commons.ErrInvalidCredentials
	}

	stored, err := s.cardRepo.GetByAccountID(ctx, parts.AccountID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return rejectLogin(), commons.ErrInvalidCredentials
		}
		logger.Error("auth service get card failed", err, logger.Fields{
			"accountId": parts.AccountID,
		})
		return commons.ErrorResponse[models.LoginResponse]("failed to log in", "Unable to log in right now"), err
	}

	// Comparing the whole stored number covers the persisted check digit too.
	if stored.Number != number {
		return rejectLogin(), commons.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(stored.PINHash), []byte(pin)); err != nil {
		return rejectLogin(), commons.ErrInvalidCredentials
	}

	logger.Info("auth service login success", logger.Fields{
		"accountId": stored.AccountID,
	})

	return commons.SuccessResponse("logged in successfully", models.LoginResponse{
		AccountID:  stored.AccountID,
		CardNumber: stored.Number,
		Balance:    stored.Balance,
	}), nil
}

func rejectLogin() commons.Response[models.LoginResponse] {
	return commons.ErrorResponse[models.LoginResponse]("Wrong card number or PIN")
}
