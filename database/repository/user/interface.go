package userRepo

import (
	"context"

	"pitchbook/models"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Insert(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.User, error)
	Update(ctx context.Context, id string, update map[string]any) error
	Delete(ctx context.Context, id string) error
	AddFavorite(ctx context.Context, userID, futsalID string) error
	RemoveFavorite(ctx context.Context, userID, futsalID string) error
	ListAll(ctx context.Context, limit, offset int64) ([]models.User, error)
}
