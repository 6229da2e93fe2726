package models

import "time"

// Booking session states. A session walks
// idle -> slotSelected -> submitting -> awaitingConfirmation -> payingRedirect,
// with creation failures dropping back to slotSelected and payment failures
// to awaitingConfirmation.
const (
	SessionStateIdle                 = "idle"
	SessionStateSlotSelected         = "slotSelected"
	SessionStateSubmitting           = "submitting"
	SessionStateAwaitingConfirmation = "awaitingConfirmation"
	SessionStatePayingRedirect       = "payingRedirect"
)

// BookingSession is the per-attempt slot-selection state, cached in Redis
// for the lifetime of the selection flow and discarded once a booking is
// created or the session expires.
type BookingSession struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	FutsalID string `json:"futsalId"`
	Date     string `json:"date"`

	Window OperatingWindow `json:"window"`
	Start  TimeOfDay       `json:"start"`
	End    TimeOfDay       `json:"end"`

	// BookedSlots is the last successfully fetched reserved-range list
	// for (FutsalID, Date). AvailabilityVerified is false until a fetch
	// succeeds; submission is blocked while unverified.
	BookedSlots          []BookedSlot `json:"bookedSlots"`
	AvailabilityVerified bool         `json:"availabilityVerified"`
	// FetchRevision increases with every issued booked-slots fetch;
	// responses carrying an older revision are discarded.
	FetchRevision int64 `json:"fetchRevision"`

	State     string `json:"state"`
	BookingID string `json:"bookingId,omitempty"`

	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// Initialized reports whether the operating window and candidate bounds
// have been loaded; validator edits are ignored before that.
func (s *BookingSession) Initialized() bool {
	return !s.Window.IsZero() && s.End > 0
}

// ResetToWindow restores the candidate slot to the full operating span.
func (s *BookingSession) ResetToWindow() {
	s.Start = s.Window.Open
	s.End = s.Window.Close
}
