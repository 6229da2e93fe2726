package booking

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitchbook/models"
)

// newTestSession returns a verified session over an 06:00-22:00 window
// with the candidate covering the full span, as StartSession leaves it.
func newTestSession(booked ...models.BookedSlot) *models.BookingSession {
	sess := &models.BookingSession{
		ID:       "s1",
		UserID:   "u1",
		FutsalID: "f1",
		Date:     "2026-09-02",
		Window:   models.OperatingWindow{Open: 360, Close: 1320},
		State:    models.SessionStateSlotSelected,
	}
	sess.ResetToWindow()
	sess.FetchRevision = 1
	ApplyBookedSlots(sess, booked, 1)
	return sess
}

func mustTime(t *testing.T, s string) models.TimeOfDay {
	t.Helper()
	v, err := models.ParseTimeOfDay(s)
	require.NoError(t, err)
	return v
}

func TestStartTimeChangeUninitializedIsIgnored(t *testing.T) {
	sess := &models.BookingSession{}
	res := ValidateStartTimeChange(sess, 600)
	assert.True(t, res.Accepted)
	assert.False(t, res.Changed)
	assert.Equal(t, models.TimeOfDay(0), sess.Start)

	res = ValidateEndTimeChange(sess, 660)
	assert.True(t, res.Accepted)
	assert.False(t, res.Changed)
}

func TestStartTimeChangeSameValueIsNoOp(t *testing.T) {
	sess := newTestSession()
	res := ValidateStartTimeChange(sess, sess.Start)
	assert.True(t, res.Accepted)
	assert.False(t, res.Changed)
}

func TestStartTimeChangeAccepted(t *testing.T) {
	sess := newTestSession()
	res := ValidateStartTimeChange(sess, mustTime(t, "18:00"))
	assert.True(t, res.Accepted)
	assert.True(t, res.Changed)
	assert.Equal(t, mustTime(t, "18:00"), sess.Start)
	assert.Equal(t, mustTime(t, "22:00"), sess.End)
}

func TestStartTimeChangeOutOfWindowKeepsPrevious(t *testing.T) {
	sess := newTestSession()
	ValidateStartTimeChange(sess, mustTime(t, "18:00"))

	res := ValidateStartTimeChange(sess, mustTime(t, "05:00"))
	assert.False(t, res.Accepted)
	assert.Equal(t, MsgOutOfWindow, res.Message)
	assert.Equal(t, mustTime(t, "18:00"), sess.Start, "rejection keeps the previous value")
}

func TestStartTimeChangeAfterEndRejected(t *testing.T) {
	sess := newTestSession()
	require.True(t, ValidateStartTimeChange(sess, mustTime(t, "11:00")).Accepted)
	require.True(t, ValidateEndTimeChange(sess, mustTime(t, "12:00")).Accepted)

	res := ValidateStartTimeChange(sess, mustTime(t, "12:00"))
	assert.False(t, res.Accepted)
	assert.Equal(t, MsgInvalidOrder, res.Message, "start == end is rejected")

	res = ValidateStartTimeChange(sess, mustTime(t, "13:00"))
	assert.False(t, res.Accepted)
	assert.Equal(t, MsgInvalidOrder, res.Message)
}

func TestStartTimeChangeOverlapResetsToWindow(t *testing.T) {
	// Booked 14:00-15:00. Moving the start to 13:30 makes the candidate
	// 13:30-22:00, which covers the booked range.
	sess := newTestSession(models.BookedSlot{Start: 840, End: 900})
	res := ValidateStartTimeChange(sess, mustTime(t, "13:30"))
	assert.False(t, res.Accepted)
	assert.Equal(t, MsgOverlap, res.Message)
	assert.Equal(t, sess.Window.Open, sess.Start, "overlap failure resets to the full window")
	assert.Equal(t, sess.Window.Close, sess.End)
}

func TestEndTimeChangeDurationWhitelist(t *testing.T) {
	sess := newTestSession()
	ValidateStartTimeChange(sess, mustTime(t, "10:00"))

	// 20 minutes: rejected, candidate resets to the full window.
	res := ValidateEndTimeChange(sess, mustTime(t, "10:20"))
	assert.False(t, res.Accepted)
	assert.Equal(t, MsgBadDuration, res.Message)
	assert.Equal(t, sess.Window.Open, sess.Start, "duration failure resets to the full window")
	assert.Equal(t, sess.Window.Close, sess.End)

	for _, minutes := range []string{"10:30", "11:00", "11:30", "12:00"} {
		sess := newTestSession()
		ValidateStartTimeChange(sess, mustTime(t, "10:00"))
		res := ValidateEndTimeChange(sess, mustTime(t, minutes))
		assert.True(t, res.Accepted, "duration ending %s", minutes)
	}
}

func TestEndTimeChangeOverlapResetsToWindow(t *testing.T) {
	// Booked 17:30-18:30, candidate settled on 16:00-17:00. Pushing the
	// end to 18:00 keeps a legal 120-minute duration but crosses the
	// booked range.
	sess := newTestSession(models.BookedSlot{Start: 1050, End: 1110})
	sess.Start, sess.End = mustTime(t, "16:00"), mustTime(t, "17:00")

	res := ValidateEndTimeChange(sess, mustTime(t, "18:00"))
	assert.False(t, res.Accepted)
	assert.Equal(t, MsgOverlap, res.Message)
	assert.Equal(t, sess.Window.Open, sess.Start)
	assert.Equal(t, sess.Window.Close, sess.End)
}

func TestBoundaryTouchingSlotsAccepted(t *testing.T) {
	// Booked 14:00-15:00. A slot ending exactly at 14:00 and one starting
	// exactly at 15:00 are both fine.
	sess := newTestSession(models.BookedSlot{Start: 840, End: 900})
	sess.Start = mustTime(t, "13:00")
	require.True(t, ValidateEndTimeChange(sess, mustTime(t, "14:00")).Accepted,
		"an end touching the booked start is not an overlap")
	assert.NoError(t, ValidateSlot(sess))

	sess = newTestSession(models.BookedSlot{Start: 840, End: 900})
	require.True(t, ValidateStartTimeChange(sess, mustTime(t, "15:00")).Accepted,
		"a start touching the booked end is not an overlap")
	require.True(t, ValidateEndTimeChange(sess, mustTime(t, "16:00")).Accepted)
	assert.NoError(t, ValidateSlot(sess))
}

func TestAcceptedSlotIsSubmittable(t *testing.T) {
	sess := newTestSession()
	require.True(t, ValidateStartTimeChange(sess, mustTime(t, "18:00")).Accepted)
	require.True(t, ValidateEndTimeChange(sess, mustTime(t, "19:30")).Accepted)

	assert.True(t, IsSlotValid(sess))
	assert.NoError(t, ValidateSlot(sess))
}

func TestIsSlotValid(t *testing.T) {
	sess := newTestSession()
	sess.Start, sess.End = 600, 660
	assert.True(t, IsSlotValid(sess))

	sess.End = 620
	assert.False(t, IsSlotValid(sess), "20 minutes is not bookable")

	sess.Start, sess.End = 660, 600
	assert.False(t, IsSlotValid(sess), "reversed bounds")

	sess.Date = ""
	assert.False(t, IsSlotValid(sess))
}

func TestValidateSlotFullGate(t *testing.T) {
	sess := newTestSession()
	sess.Start, sess.End = 600, 660
	assert.NoError(t, ValidateSlot(sess))

	var slotErr *SlotError

	bad := newTestSession()
	bad.Start, bad.End = 660, 660
	err := ValidateSlot(bad)
	require.Error(t, err)
	require.True(t, errors.As(err, &slotErr))
	assert.Equal(t, "invalidOrder", slotErr.Code)

	bad = newTestSession()
	bad.Start, bad.End = 600, 625
	err = ValidateSlot(bad)
	require.True(t, errors.As(err, &slotErr))
	assert.Equal(t, "invalidDuration", slotErr.Code)

	bad = newTestSession()
	bad.Start, bad.End = 300, 360 // 05:00-06:00, before opening
	err = ValidateSlot(bad)
	require.True(t, errors.As(err, &slotErr))
	assert.Equal(t, "outOfWindow", slotErr.Code)

	bad = newTestSession(models.BookedSlot{Start: 600, End: 660})
	bad.Start, bad.End = 630, 690
	err = ValidateSlot(bad)
	require.True(t, errors.As(err, &slotErr))
	assert.Equal(t, "overlap", slotErr.Code)

	assert.Equal(t, ErrWindowUnavailable, ValidateSlot(&models.BookingSession{}))
}

func TestValidateSlotBlocksUnverifiedAvailability(t *testing.T) {
	sess := newTestSession()
	sess.Start, sess.End = 600, 660
	require.NoError(t, ValidateSlot(sess))

	// A failed fetch keeps the last known list but blocks submission until
	// a fetch succeeds again.
	MarkFetchFailed(sess)
	assert.ErrorIs(t, ValidateSlot(sess), ErrUnverifiedSlots)

	ApplyBookedSlots(sess, nil, sess.FetchRevision)
	assert.NoError(t, ValidateSlot(sess))
}

func TestApplyBookedSlotsDiscardsStaleRevision(t *testing.T) {
	sess := newTestSession()
	sess.FetchRevision = 3

	// A response issued under revision 2 arrives after revision 3 was
	// installed: it must not overwrite the newer list.
	stale := []models.BookedSlot{{Start: 600, End: 660}}
	assert.False(t, ApplyBookedSlots(sess, stale, 2))
	assert.Empty(t, sess.BookedSlots)

	fresh := []models.BookedSlot{{Start: 900, End: 960}}
	assert.True(t, ApplyBookedSlots(sess, fresh, 3))
	assert.Equal(t, fresh, sess.BookedSlots)
	assert.True(t, sess.AvailabilityVerified)
}

func TestEditsAgainstBookedDayScenario(t *testing.T) {
	// Window 06:00-22:00 with bookings at 08:00-09:00 and 18:00-19:00.
	booked := []models.BookedSlot{
		{Start: 480, End: 540},
		{Start: 1080, End: 1140},
	}
	sess := newTestSession(booked...)

	// 10:00-11:00 sits between the bookings and passes the full gate.
	sess.Start, sess.End = mustTime(t, "10:00"), mustTime(t, "11:00")
	assert.NoError(t, ValidateSlot(sess))

	// Moving the start to 08:30 would cover 08:30-11:00 and hit the first
	// booking: rejected with a full reset.
	res := ValidateStartTimeChange(sess, mustTime(t, "08:30"))
	assert.False(t, res.Accepted)
	assert.Equal(t, MsgOverlap, res.Message)
	assert.Equal(t, sess.Window.Open, sess.Start)
	assert.Equal(t, sess.Window.Close, sess.End)
}
