package service_interfaces

import (
	"context"

	"github.com/api-sage/card-banking-system/internal/adapter/terminal/models"
	"github.com/api-sage/card-banking-system/internal/commons"
)

type CardService interface {
	CreateCard(ctx context.Context) (commons.Response[models.CreateCardResponse], error)
}
