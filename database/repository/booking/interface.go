package bookingRepo

import (
	"context"

	"pitchbook/models"
)

// BookingRepository defines persistence operations for bookings.
type BookingRepository interface {
	Insert(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// GetBookedSlots returns the reserved time ranges for a venue on a
	// date, excluding cancelled bookings.
	GetBookedSlots(ctx context.Context, futsalID, date string) ([]models.BookedSlot, error)
	// HasOverlap reports whether any non-cancelled booking intersects the
	// half-open interval [start, end) on the given venue and date.
	HasOverlap(ctx context.Context, futsalID, date string, start, end models.TimeOfDay) (bool, error)
	UpdateStatus(ctx context.Context, id, status string) error
	SetPaymentRef(ctx context.Context, id, paymentRef string) error
	ListByUser(ctx context.Context, userID string, limit, offset int64) ([]models.Booking, error)
	ListByFutsals(ctx context.Context, futsalIDs []string, limit, offset int64) ([]models.Booking, error)
	ListAll(ctx context.Context, limit, offset int64) ([]models.Booking, error)
}
