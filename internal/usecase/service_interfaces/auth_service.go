package service_interfaces

import (
	"context"

	"github.com/api-sage/card-banking-system/internal/adapter/terminal/models"
	"github.com/api-sage/card-banking-system/internal/commons"
)

type AuthService interface {
	Login(ctx context.Context, req models.LoginRequest) (commons.Response[models.LoginResponse], error)
}
