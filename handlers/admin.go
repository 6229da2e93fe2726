package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	bookingRepo "pitchbook/database/repository/booking"
	futsalRepo "pitchbook/database/repository/futsal"
	"pitchbook/services/user"
	"pitchbook/utils"
)

// AdminHandler serves platform-wide listings for back-office use.
type AdminHandler struct {
	UserService user.UserService
	FutsalRepo  futsalRepo.FutsalRepository
	BookingRepo bookingRepo.BookingRepository
}

func NewAdminHandler(userSvc user.UserService, fr futsalRepo.FutsalRepository, br bookingRepo.BookingRepository) *AdminHandler {
	return &AdminHandler{UserService: userSvc, FutsalRepo: fr, BookingRepo: br}
}

// GetAllUsersHandler handles GET /admin/users.
func (h *AdminHandler) GetAllUsersHandler(c *gin.Context) {
	limit, offset := parsePagination(c)
	users, err := h.UserService.GetAllUsers(limit, offset)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list users", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GetAllFutsalsHandler handles GET /admin/futsals.
func (h *AdminHandler) GetAllFutsalsHandler(c *gin.Context) {
	limit, offset := parsePagination(c)
	futsals, err := h.FutsalRepo.ListAll(c.Request.Context(), limit, offset)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list venues", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"futsals": futsals})
}

// GetAllBookingsHandler handles GET /admin/bookings.
func (h *AdminHandler) GetAllBookingsHandler(c *gin.Context) {
	limit, offset := parsePagination(c)
	bookings, err := h.BookingRepo.ListAll(c.Request.Context(), limit, offset)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
