package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	bookingRepo "pitchbook/database/repository/booking"
	futsalRepo "pitchbook/database/repository/futsal"
	"pitchbook/models"
	"pitchbook/utils"
)

// OwnerHandler serves the owner dashboard: the owner's venues and the
// bookings placed across them.
type OwnerHandler struct {
	FutsalRepo  futsalRepo.FutsalRepository
	BookingRepo bookingRepo.BookingRepository
}

func NewOwnerHandler(fr futsalRepo.FutsalRepository, br bookingRepo.BookingRepository) *OwnerHandler {
	return &OwnerHandler{FutsalRepo: fr, BookingRepo: br}
}

// OwnerBookingsHandler handles GET /owner/bookings.
func (h *OwnerHandler) OwnerBookingsHandler(c *gin.Context) {
	ownerID := c.GetString("userID")
	limit, offset := parsePagination(c)

	venues, err := h.FutsalRepo.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list venues", err.Error())
		return
	}
	ids := make([]string, 0, len(venues))
	for _, v := range venues {
		ids = append(ids, v.ID)
	}

	bookings := []models.Booking{}
	if len(ids) > 0 {
		bookings, err = h.BookingRepo.ListByFutsals(c.Request.Context(), ids, limit, offset)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Failed to list bookings", err.Error())
			return
		}
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
