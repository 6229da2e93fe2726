package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pitchbook/models"
	"pitchbook/services/booking"
	"pitchbook/utils"
)

type BookingHandler struct {
	Sessions booking.SessionService
}

func NewBookingHandler(svc booking.SessionService) *BookingHandler {
	return &BookingHandler{Sessions: svc}
}

// bookingStatus maps service errors onto HTTP status codes.
func bookingStatus(err error) int {
	switch {
	case errors.Is(err, booking.ErrSessionNotFound),
		errors.Is(err, booking.ErrFutsalNotFound),
		errors.Is(err, booking.ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(err, booking.ErrSlotUnavailable),
		errors.Is(err, booking.ErrUnverifiedSlots),
		errors.Is(err, booking.ErrNotPayable),
		errors.Is(err, booking.ErrSessionNotEditable),
		errors.Is(err, booking.ErrWindowUnavailable):
		return http.StatusConflict
	case errors.Is(err, booking.ErrInvalidSlot):
		return http.StatusUnprocessableEntity
	}
	var slotErr *booking.SlotError
	if errors.As(err, &slotErr) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// StartSessionHandler handles POST /bookings/sessions.
func (h *BookingHandler) StartSessionHandler(c *gin.Context) {
	userID := c.GetString("userID")
	var req struct {
		FutsalID string `json:"futsalId" binding:"required"`
		Date     string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	sess, err := h.Sessions.StartSession(c.Request.Context(), userID, req.FutsalID, req.Date)
	if err != nil {
		utils.JSONError(c, bookingStatus(err), "Failed to start booking session", err.Error())
		return
	}
	c.JSON(http.StatusCreated, sess)
}

// GetSessionHandler handles GET /bookings/sessions/:sessionID.
func (h *BookingHandler) GetSessionHandler(c *gin.Context) {
	userID := c.GetString("userID")
	sess, err := h.Sessions.GetSession(c.Request.Context(), c.Param("sessionID"), userID)
	if err != nil {
		utils.JSONError(c, bookingStatus(err), "Failed to load booking session", err.Error())
		return
	}
	c.JSON(http.StatusOK, sess)
}

type slotEditRequest struct {
	Value string `json:"value" binding:"required"` // "HH:MM"
}

func (h *BookingHandler) updateSlotBound(c *gin.Context, end bool) {
	userID := c.GetString("userID")
	var req slotEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	candidate, err := models.ParseTimeOfDay(req.Value)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid time value", err.Error())
		return
	}

	var (
		sess   *models.BookingSession
		result booking.ValidationResult
	)
	if end {
		sess, result, err = h.Sessions.UpdateEndTime(c.Request.Context(), c.Param("sessionID"), userID, candidate)
	} else {
		sess, result, err = h.Sessions.UpdateStartTime(c.Request.Context(), c.Param("sessionID"), userID, candidate)
	}
	if err != nil {
		utils.JSONError(c, bookingStatus(err), "Failed to update slot", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": sess, "result": result})
}

// UpdateStartTimeHandler handles PATCH /bookings/sessions/:sessionID/start.
func (h *BookingHandler) UpdateStartTimeHandler(c *gin.Context) {
	h.updateSlotBound(c, false)
}

// UpdateEndTimeHandler handles PATCH /bookings/sessions/:sessionID/end.
func (h *BookingHandler) UpdateEndTimeHandler(c *gin.Context) {
	h.updateSlotBound(c, true)
}

// RefreshAvailabilityHandler handles POST /bookings/sessions/:sessionID/refresh.
func (h *BookingHandler) RefreshAvailabilityHandler(c *gin.Context) {
	userID := c.GetString("userID")
	sess, err := h.Sessions.RefreshAvailability(c.Request.Context(), c.Param("sessionID"), userID)
	if err != nil {
		utils.JSONError(c, bookingStatus(err), "Failed to refresh availability", err.Error())
		return
	}
	c.JSON(http.StatusOK, sess)
}

// ConfirmBookingHandler handles POST /bookings/sessions/:sessionID/confirm.
func (h *BookingHandler) ConfirmBookingHandler(c *gin.Context) {
	userID := c.GetString("userID")
	var req struct {
		BookingType string `json:"bookingType"`
	}
	_ = c.ShouldBindJSON(&req)

	b, err := h.Sessions.ConfirmBooking(c.Request.Context(), c.Param("sessionID"), userID, req.BookingType)
	if err != nil {
		utils.JSONError(c, bookingStatus(err), "Failed to confirm booking", err.Error())
		return
	}
	c.JSON(http.StatusCreated, b)
}

// CancelSessionHandler handles DELETE /bookings/sessions/:sessionID.
func (h *BookingHandler) CancelSessionHandler(c *gin.Context) {
	userID := c.GetString("userID")
	if err := h.Sessions.CancelSession(c.Request.Context(), c.Param("sessionID"), userID); err != nil {
		utils.JSONError(c, bookingStatus(err), "Failed to cancel session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session cancelled"})
}

// AvailableSlotsHandler handles GET /bookings/available-slots. Public:
// returns the reserved ranges for a venue and date so callers can render
// the day's availability.
func (h *BookingHandler) AvailableSlotsHandler(c *gin.Context) {
	futsalID := c.Query("futsalId")
	date := c.Query("date")
	if futsalID == "" || date == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "futsalId and date query parameters are required")
		return
	}

	slots, err := h.Sessions.GetBookedSlots(c.Request.Context(), futsalID, date)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch availability", err.Error())
		return
	}
	if slots == nil {
		slots = []models.BookedSlot{}
	}
	c.JSON(http.StatusOK, gin.H{"futsalId": futsalID, "date": date, "bookedSlots": slots})
}

// InitiatePaymentHandler handles POST /bookings/:bookingID/initiate-payment.
func (h *BookingHandler) InitiatePaymentHandler(c *gin.Context) {
	userID := c.GetString("userID")
	intent, err := h.Sessions.InitiatePayment(c.Request.Context(), c.Param("bookingID"), userID)
	if err != nil {
		utils.JSONError(c, bookingStatus(err), "Failed to initiate payment", err.Error())
		return
	}
	c.JSON(http.StatusOK, intent)
}

// CancelBookingHandler handles POST /bookings/:bookingID/cancel.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	userID := c.GetString("userID")
	if err := h.Sessions.CancelBooking(c.Request.Context(), c.Param("bookingID"), userID); err != nil {
		utils.JSONError(c, bookingStatus(err), "Failed to cancel booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled"})
}

// MyBookingsHandler handles GET /bookings/my.
func (h *BookingHandler) MyBookingsHandler(c *gin.Context) {
	userID := c.GetString("userID")
	limit, offset := parsePagination(c)
	bookings, err := h.Sessions.ListUserBookings(c.Request.Context(), userID, limit, offset)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list bookings", err.Error())
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func parsePagination(c *gin.Context) (limit, offset int64) {
	limit, _ = strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	offset, _ = strconv.ParseInt(c.DefaultQuery("offset", "0"), 10, 64)
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
