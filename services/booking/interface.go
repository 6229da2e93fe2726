package booking

import (
	"context"

	"pitchbook/models"
)

// SessionService manages the stateful slot-selection flow: one session per
// booking attempt, cached in Redis, validated on every edit, confirmed into
// a booking and handed to payment initiation.
type SessionService interface {
	StartSession(ctx context.Context, userID, futsalID, date string) (*models.BookingSession, error)
	GetSession(ctx context.Context, sessionID, userID string) (*models.BookingSession, error)
	UpdateStartTime(ctx context.Context, sessionID, userID string, candidate models.TimeOfDay) (*models.BookingSession, ValidationResult, error)
	UpdateEndTime(ctx context.Context, sessionID, userID string, candidate models.TimeOfDay) (*models.BookingSession, ValidationResult, error)
	RefreshAvailability(ctx context.Context, sessionID, userID string) (*models.BookingSession, error)
	ConfirmBooking(ctx context.Context, sessionID, userID, bookingType string) (*models.Booking, error)
	CancelSession(ctx context.Context, sessionID, userID string) error

	GetBookedSlots(ctx context.Context, futsalID, date string) ([]models.BookedSlot, error)
	InitiatePayment(ctx context.Context, bookingID, userID string) (*models.PaymentIntent, error)
	CancelBooking(ctx context.Context, bookingID, userID string) error
	ListUserBookings(ctx context.Context, userID string, limit, offset int64) ([]models.Booking, error)
}
