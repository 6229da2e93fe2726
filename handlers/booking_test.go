package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pitchbook/models"
	"pitchbook/services/booking"
)

// MockSessionService is a mock implementation of booking.SessionService.
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) StartSession(ctx context.Context, userID, futsalID, date string) (*models.BookingSession, error) {
	args := m.Called(ctx, userID, futsalID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingSession), args.Error(1)
}

func (m *MockSessionService) GetSession(ctx context.Context, sessionID, userID string) (*models.BookingSession, error) {
	args := m.Called(ctx, sessionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingSession), args.Error(1)
}

func (m *MockSessionService) UpdateStartTime(ctx context.Context, sessionID, userID string, candidate models.TimeOfDay) (*models.BookingSession, booking.ValidationResult, error) {
	args := m.Called(ctx, sessionID, userID, candidate)
	sess, _ := args.Get(0).(*models.BookingSession)
	return sess, args.Get(1).(booking.ValidationResult), args.Error(2)
}

func (m *MockSessionService) UpdateEndTime(ctx context.Context, sessionID, userID string, candidate models.TimeOfDay) (*models.BookingSession, booking.ValidationResult, error) {
	args := m.Called(ctx, sessionID, userID, candidate)
	sess, _ := args.Get(0).(*models.BookingSession)
	return sess, args.Get(1).(booking.ValidationResult), args.Error(2)
}

func (m *MockSessionService) RefreshAvailability(ctx context.Context, sessionID, userID string) (*models.BookingSession, error) {
	args := m.Called(ctx, sessionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingSession), args.Error(1)
}

func (m *MockSessionService) ConfirmBooking(ctx context.Context, sessionID, userID, bookingType string) (*models.Booking, error) {
	args := m.Called(ctx, sessionID, userID, bookingType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockSessionService) CancelSession(ctx context.Context, sessionID, userID string) error {
	args := m.Called(ctx, sessionID, userID)
	return args.Error(0)
}

func (m *MockSessionService) GetBookedSlots(ctx context.Context, futsalID, date string) ([]models.BookedSlot, error) {
	args := m.Called(ctx, futsalID, date)
	slots, _ := args.Get(0).([]models.BookedSlot)
	return slots, args.Error(1)
}

func (m *MockSessionService) InitiatePayment(ctx context.Context, bookingID, userID string) (*models.PaymentIntent, error) {
	args := m.Called(ctx, bookingID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentIntent), args.Error(1)
}

func (m *MockSessionService) CancelBooking(ctx context.Context, bookingID, userID string) error {
	args := m.Called(ctx, bookingID, userID)
	return args.Error(0)
}

func (m *MockSessionService) ListUserBookings(ctx context.Context, userID string, limit, offset int64) ([]models.Booking, error) {
	args := m.Called(ctx, userID, limit, offset)
	bookings, _ := args.Get(0).([]models.Booking)
	return bookings, args.Error(1)
}

func testContext(method, path string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	c.Request = httptest.NewRequest(method, path, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("userID", "u1")
	return c, w
}

func TestAvailableSlotsHandler(t *testing.T) {
	mockSvc := &MockSessionService{}
	handler := NewBookingHandler(mockSvc)

	c, w := testContext("GET", "/api/v1/bookings/available-slots?futsalId=f1&date=2026-09-02", nil)

	slots := []models.BookedSlot{{Start: 840, End: 900}}
	mockSvc.On("GetBookedSlots", c.Request.Context(), "f1", "2026-09-02").Return(slots, nil)

	handler.AvailableSlotsHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		FutsalID    string              `json:"futsalId"`
		Date        string              `json:"date"`
		BookedSlots []models.BookedSlot `json:"bookedSlots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "f1", resp.FutsalID)
	assert.Equal(t, slots, resp.BookedSlots)
	mockSvc.AssertExpectations(t)
}

func TestAvailableSlotsHandlerMissingParams(t *testing.T) {
	handler := NewBookingHandler(&MockSessionService{})
	c, w := testContext("GET", "/api/v1/bookings/available-slots?futsalId=f1", nil)

	handler.AvailableSlotsHandler(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConfirmBookingHandlerConflict(t *testing.T) {
	mockSvc := &MockSessionService{}
	handler := NewBookingHandler(mockSvc)

	c, w := testContext("POST", "/api/v1/bookings/sessions/s1/confirm", gin.H{"bookingType": "regular"})
	c.Params = gin.Params{{Key: "sessionID", Value: "s1"}}

	mockSvc.On("ConfirmBooking", c.Request.Context(), "s1", "u1", "regular").
		Return(nil, booking.ErrSlotUnavailable)

	handler.ConfirmBookingHandler(c)
	assert.Equal(t, http.StatusConflict, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestConfirmBookingHandlerUnverifiedBlocks(t *testing.T) {
	mockSvc := &MockSessionService{}
	handler := NewBookingHandler(mockSvc)

	c, w := testContext("POST", "/api/v1/bookings/sessions/s1/confirm", gin.H{})
	c.Params = gin.Params{{Key: "sessionID", Value: "s1"}}

	mockSvc.On("ConfirmBooking", c.Request.Context(), "s1", "u1", "").
		Return(nil, booking.ErrUnverifiedSlots)

	handler.ConfirmBookingHandler(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestConfirmBookingHandlerCreated(t *testing.T) {
	mockSvc := &MockSessionService{}
	handler := NewBookingHandler(mockSvc)

	c, w := testContext("POST", "/api/v1/bookings/sessions/s1/confirm", gin.H{"bookingType": "regular"})
	c.Params = gin.Params{{Key: "sessionID", Value: "s1"}}

	b := &models.Booking{
		ID: "b1", FutsalID: "f1", UserID: "u1",
		Date: "2026-09-02", Start: 1080, End: 1170,
		TotalPrice: 30, Status: models.BookingStatusPendingPayment,
	}
	mockSvc.On("ConfirmBooking", c.Request.Context(), "s1", "u1", "regular").Return(b, nil)

	handler.ConfirmBookingHandler(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var got models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "b1", got.ID)
	assert.Equal(t, models.BookingStatusPendingPayment, got.Status)
}

func TestUpdateStartTimeHandlerRejection(t *testing.T) {
	mockSvc := &MockSessionService{}
	handler := NewBookingHandler(mockSvc)

	c, w := testContext("PATCH", "/api/v1/bookings/sessions/s1/start", gin.H{"value": "05:00"})
	c.Params = gin.Params{{Key: "sessionID", Value: "s1"}}

	sess := &models.BookingSession{ID: "s1", UserID: "u1"}
	result := booking.ValidationResult{Accepted: false, Message: booking.MsgOutOfWindow}
	mockSvc.On("UpdateStartTime", c.Request.Context(), "s1", "u1", models.TimeOfDay(300)).
		Return(sess, result, nil)

	handler.UpdateStartTimeHandler(c)

	// A rejected edit is still a 200: the session remains in a valid state
	// and the result payload carries the message.
	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Result booking.ValidationResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Result.Accepted)
	assert.Equal(t, booking.MsgOutOfWindow, resp.Result.Message)
}

func TestUpdateStartTimeHandlerSessionNotEditable(t *testing.T) {
	mockSvc := &MockSessionService{}
	handler := NewBookingHandler(mockSvc)

	c, w := testContext("PATCH", "/api/v1/bookings/sessions/s1/start", gin.H{"value": "10:00"})
	c.Params = gin.Params{{Key: "sessionID", Value: "s1"}}

	mockSvc.On("UpdateStartTime", c.Request.Context(), "s1", "u1", models.TimeOfDay(600)).
		Return(nil, booking.ValidationResult{}, booking.ErrSessionNotEditable)

	handler.UpdateStartTimeHandler(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateStartTimeHandlerBadTime(t *testing.T) {
	handler := NewBookingHandler(&MockSessionService{})
	c, w := testContext("PATCH", "/api/v1/bookings/sessions/s1/start", gin.H{"value": "26:99"})
	c.Params = gin.Params{{Key: "sessionID", Value: "s1"}}

	handler.UpdateStartTimeHandler(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
