package models

import "time"

// Booking statuses.
const (
	BookingStatusPendingPayment = "pendingPayment"
	BookingStatusConfirmed      = "confirmed"
	BookingStatusCancelled      = "cancelled"
)

// Booking represents a created booking record.
type Booking struct {
	ID          string    `bson:"id" json:"id"`
	FutsalID    string    `bson:"futsalId" json:"futsalId"`
	UserID      string    `bson:"userId" json:"userId"`
	Date        string    `bson:"date" json:"date"` // "YYYY-MM-DD"
	Start       TimeOfDay `bson:"start" json:"start"`
	End         TimeOfDay `bson:"end" json:"end"`
	BookingType string    `bson:"bookingType" json:"bookingType"` // "regular" or "tournament"
	TotalPrice  float64   `bson:"totalPrice" json:"totalPrice"`   // server-computed, never client-supplied
	Status      string    `bson:"status" json:"status"`
	PaymentRef  string    `bson:"paymentRef,omitempty" json:"paymentRef,omitempty"` // checkout session id once payment is initiated
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// DurationMinutes returns the booked span in minutes.
func (b *Booking) DurationMinutes() int {
	return b.Start.MinutesUntil(b.End)
}

// BookedSlot is an already-reserved time range on a specific date,
// treated as the half-open interval [Start, End).
type BookedSlot struct {
	Start TimeOfDay `bson:"start" json:"start"`
	End   TimeOfDay `bson:"end" json:"end"`
}

// Overlaps reports whether the half-open candidate interval [start, end)
// intersects this slot. Touching endpoints do not overlap.
func (s BookedSlot) Overlaps(start, end TimeOfDay) bool {
	return start < s.End && end > s.Start
}
