package user

import (
	userRepo "pitchbook/database/repository/user"
	"pitchbook/models"
	"pitchbook/services/notification"
)

// AuthResponse contains the user's ID, tokens, and profile details.
type AuthResponse struct {
	ID           string `json:"id"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
	Username     string `json:"username,omitempty"`
	Email        string `json:"email,omitempty"`
	Role         string `json:"role,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}

type UserService interface {
	RegisterUser(user models.User) (*AuthResponse, error)
	AuthenticateUser(email, password string) (*AuthResponse, error)
	RefreshAuthToken(refreshToken string) (*AuthResponse, error)
	RevokeUserAuthToken(userID string) error

	GetUserByID(userID string) (*models.User, error)
	UpdateUser(userID string, update map[string]any) (*models.User, error)
	DeleteUser(userID string) error

	AddFavorite(userID, futsalID string) error
	RemoveFavorite(userID, futsalID string) error
	ListFavorites(userID string) ([]string, error)

	GetAllUsers(limit, offset int64) ([]models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
	Hub  *notification.Hub
}
