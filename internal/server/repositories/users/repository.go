package users

import (
	"context"

	"github.com/DorLamesh/devops-web-app/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByToken(ctx context.Context, token string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
}
