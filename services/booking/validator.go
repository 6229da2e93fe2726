package booking

import (
	"pitchbook/models"
)

// Bookable durations in minutes. No other span may be submitted.
var allowedDurations = map[int]bool{30: true, 60: true, 90: true, 120: true}

// User-facing rejection messages.
const (
	MsgOverlap      = "Selected slot overlaps with a booked slot. Please pick another time."
	MsgBadDuration  = "Booking duration must be exactly 30, 60, 90 or 120 minutes."
	MsgOutOfWindow  = "Selected time is outside the venue's operating hours."
	MsgInvalidOrder = "Start time must be before end time."
)

// ValidationResult reports the outcome of a candidate-slot edit.
// Rejections always leave the session in a previously valid state.
type ValidationResult struct {
	Accepted bool   `json:"accepted"`
	Changed  bool   `json:"changed"`           // false for no-op edits (idempotent re-validation)
	Message  string `json:"message,omitempty"` // set only on rejection
}

func accepted(changed bool) ValidationResult {
	return ValidationResult{Accepted: true, Changed: changed}
}

func rejected(msg string) ValidationResult {
	return ValidationResult{Accepted: false, Message: msg}
}

// ValidateStartTimeChange applies a proposed start time to the session.
// Before the operating window and end time are initialized the edit is
// silently ignored. Out-of-window or out-of-order candidates are rejected
// keeping the previous values; a candidate that overlaps a booked slot is
// rejected and the whole candidate resets to the full operating window.
func ValidateStartTimeChange(sess *models.BookingSession, candidate models.TimeOfDay) ValidationResult {
	if !sess.Initialized() {
		return accepted(false)
	}
	if candidate == sess.Start {
		return accepted(false)
	}
	if candidate.Before(sess.Window.Open) || candidate.After(sess.Window.Close) || !candidate.Before(sess.End) {
		return rejected(boundsMessage(candidate, sess))
	}
	if overlapsAny(sess.BookedSlots, candidate, sess.End) {
		sess.ResetToWindow()
		return rejected(MsgOverlap)
	}
	sess.Start = candidate
	return accepted(true)
}

// ValidateEndTimeChange is the symmetric operation for the end time, with
// the duration whitelist checked before the overlap test. Duration and
// overlap failures both reset the candidate to the full window.
func ValidateEndTimeChange(sess *models.BookingSession, candidate models.TimeOfDay) ValidationResult {
	if !sess.Initialized() {
		return accepted(false)
	}
	if candidate == sess.End {
		return accepted(false)
	}
	if candidate.Before(sess.Window.Open) || candidate.After(sess.Window.Close) || !candidate.After(sess.Start) {
		return rejected(boundsMessage(candidate, sess))
	}
	if !allowedDurations[sess.Start.MinutesUntil(candidate)] {
		sess.ResetToWindow()
		return rejected(MsgBadDuration)
	}
	if overlapsAny(sess.BookedSlots, sess.Start, candidate) {
		sess.ResetToWindow()
		return rejected(MsgOverlap)
	}
	sess.End = candidate
	return accepted(true)
}

// IsSlotValid is the cheap predicate gating the "book now" action:
// date and bounds present, strict ordering, duration in the allowed set.
// It deliberately does not re-check window bounds or overlap; ConfirmBooking
// re-runs the full validation before anything is persisted.
func IsSlotValid(sess *models.BookingSession) bool {
	if sess.Date == "" || !sess.Start.Before(sess.End) {
		return false
	}
	return allowedDurations[sess.Start.MinutesUntil(sess.End)]
}

// ValidateSlot runs every invariant against the committed candidate:
// initialization, ordering, duration, window bounds, verified availability
// and overlap. This is the submit gate.
func ValidateSlot(sess *models.BookingSession) error {
	if !sess.Initialized() {
		return ErrWindowUnavailable
	}
	if !sess.Start.Before(sess.End) {
		return NewSlotError("invalidOrder", MsgInvalidOrder)
	}
	if !allowedDurations[sess.Start.MinutesUntil(sess.End)] {
		return NewSlotError("invalidDuration", MsgBadDuration)
	}
	if sess.Start.Before(sess.Window.Open) || sess.End.After(sess.Window.Close) {
		return NewSlotError("outOfWindow", MsgOutOfWindow)
	}
	if !sess.AvailabilityVerified {
		return ErrUnverifiedSlots
	}
	if overlapsAny(sess.BookedSlots, sess.Start, sess.End) {
		return NewSlotError("overlap", MsgOverlap)
	}
	return nil
}

// ApplyBookedSlots installs a fetched reserved-range list tagged with the
// revision the fetch was issued under. Responses superseded by a newer
// fetch are discarded so a slow, stale response cannot overwrite a fresh
// one.
func ApplyBookedSlots(sess *models.BookingSession, slots []models.BookedSlot, revision int64) bool {
	if revision < sess.FetchRevision {
		return false
	}
	sess.BookedSlots = slots
	sess.AvailabilityVerified = true
	return true
}

// MarkFetchFailed records a failed booked-slots fetch. The session keeps
// its last known list but submission is blocked until a fetch succeeds.
func MarkFetchFailed(sess *models.BookingSession) {
	sess.AvailabilityVerified = false
}

func overlapsAny(booked []models.BookedSlot, start, end models.TimeOfDay) bool {
	for _, s := range booked {
		if s.Overlaps(start, end) {
			return true
		}
	}
	return false
}

func boundsMessage(candidate models.TimeOfDay, sess *models.BookingSession) string {
	if candidate.Before(sess.Window.Open) || candidate.After(sess.Window.Close) {
		return MsgOutOfWindow
	}
	return MsgInvalidOrder
}
