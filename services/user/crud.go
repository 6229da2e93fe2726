package user

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"pitchbook/models"
	"pitchbook/utils"
)

// allowed profile fields for self-service updates
var updatableFields = map[string]bool{
	"username":     true,
	"phoneNumber":  true,
	"profileImage": true,
}

func (s *DefaultUserService) GetUserByID(userID string) (*models.User, error) {
	user, err := s.Repo.GetByID(context.Background(), userID)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch user", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch user")
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}
	return user, nil
}

// UpdateUser applies a whitelisted partial update to the profile.
func (s *DefaultUserService) UpdateUser(userID string, update map[string]any) (*models.User, error) {
	ctx := context.Background()

	filtered := make(map[string]any, len(update)+1)
	for k, v := range update {
		if !updatableFields[k] {
			return nil, fmt.Errorf("field %q cannot be updated", k)
		}
		filtered[k] = v
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("no updatable fields provided")
	}
	filtered["updatedAt"] = time.Now()

	if err := s.Repo.Update(ctx, userID, filtered); err != nil {
		utils.GetLogger().Error("Failed to update user", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to update profile")
	}
	s.clearAuthCache(ctx, userID)
	return s.GetUserByID(userID)
}

func (s *DefaultUserService) DeleteUser(userID string) error {
	ctx := context.Background()
	if err := s.Repo.Delete(ctx, userID); err != nil {
		utils.GetLogger().Error("Failed to delete user", zap.String("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to delete account")
	}
	s.clearAuthCache(ctx, userID)
	if s.Hub != nil {
		s.Hub.Disconnect(userID)
	}
	return nil
}

func (s *DefaultUserService) AddFavorite(userID, futsalID string) error {
	if futsalID == "" {
		return fmt.Errorf("futsal id is required")
	}
	return s.Repo.AddFavorite(context.Background(), userID, futsalID)
}

func (s *DefaultUserService) RemoveFavorite(userID, futsalID string) error {
	return s.Repo.RemoveFavorite(context.Background(), userID, futsalID)
}

func (s *DefaultUserService) ListFavorites(userID string) ([]string, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	return user.Favorites, nil
}

func (s *DefaultUserService) GetAllUsers(limit, offset int64) ([]models.User, error) {
	return s.Repo.ListAll(context.Background(), limit, offset)
}
