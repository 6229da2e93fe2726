package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pitchbook/models"
	"pitchbook/services/user"
	"pitchbook/utils"
)

type UserHandler struct {
	UserService user.UserService
}

func NewUserHandler(svc user.UserService) *UserHandler {
	return &UserHandler{UserService: svc}
}

// RegisterUserHandler handles POST /users/register.
func (h *UserHandler) RegisterUserHandler(c *gin.Context) {
	var req models.User
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	resp, err := h.UserService.RegisterUser(req)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Registration failed", err.Error())
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AuthenticateUserHandler handles POST /users/login.
func (h *UserHandler) AuthenticateUserHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	resp, err := h.UserService.AuthenticateUser(req.Email, req.Password)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "Authentication failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RefreshTokenHandler handles POST /users/refresh-token.
func (h *UserHandler) RefreshTokenHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	resp, err := h.UserService.RefreshAuthToken(req.RefreshToken)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "Token refresh failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LogoutHandler handles POST /users/logout.
func (h *UserHandler) LogoutHandler(c *gin.Context) {
	userID := c.GetString("userID")
	if err := h.UserService.RevokeUserAuthToken(userID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Logout failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetProfileHandler handles GET /users/me.
func (h *UserHandler) GetProfileHandler(c *gin.Context) {
	userID := c.GetString("userID")
	usr, err := h.UserService.GetUserByID(userID)
	if err != nil {
		utils.GetLogger().Error("Failed to load profile", zap.String("userID", userID), zap.Error(err))
		utils.JSONError(c, http.StatusNotFound, "Profile not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, usr)
}

// UpdateProfileHandler handles PATCH /users/me.
func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	userID := c.GetString("userID")
	var update map[string]any
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	usr, err := h.UserService.UpdateUser(userID, update)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Profile update failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, usr)
}

// DeleteAccountHandler handles DELETE /users/me.
func (h *UserHandler) DeleteAccountHandler(c *gin.Context) {
	userID := c.GetString("userID")
	if err := h.UserService.DeleteUser(userID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Account deletion failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}

// AddFavoriteHandler handles POST /users/me/favorites/:futsalID.
func (h *UserHandler) AddFavoriteHandler(c *gin.Context) {
	userID := c.GetString("userID")
	if err := h.UserService.AddFavorite(userID, c.Param("futsalID")); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to add favorite", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Added to favorites"})
}

// RemoveFavoriteHandler handles DELETE /users/me/favorites/:futsalID.
func (h *UserHandler) RemoveFavoriteHandler(c *gin.Context) {
	userID := c.GetString("userID")
	if err := h.UserService.RemoveFavorite(userID, c.Param("futsalID")); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to remove favorite", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Removed from favorites"})
}

// ListFavoritesHandler handles GET /users/me/favorites.
func (h *UserHandler) ListFavoritesHandler(c *gin.Context) {
	userID := c.GetString("userID")
	favorites, err := h.UserService.ListFavorites(userID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list favorites", err.Error())
		return
	}
	if favorites == nil {
		favorites = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}
