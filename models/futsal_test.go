package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFutsal() *Futsal {
	return &Futsal{
		ID:           "f1",
		Name:         "Arena One",
		PricePerHour: 20,
		OperatingHours: OperatingHours{
			Weekday: OperatingWindow{Open: 360, Close: 1320}, // 06:00-22:00
			Weekend: OperatingWindow{Open: 420, Close: 1380}, // 07:00-23:00
			Holiday: OperatingWindow{Open: 480, Close: 1200}, // 08:00-20:00
		},
		Holidays: []string{"2026-12-25"},
	}
}

func TestResolveWindow(t *testing.T) {
	f := testFutsal()

	// 2026-09-02 is a Wednesday.
	w, err := f.ResolveWindow("2026-09-02")
	require.NoError(t, err)
	assert.Equal(t, f.OperatingHours.Weekday, w)

	// 2026-09-05 is a Saturday, 2026-09-06 a Sunday.
	w, err = f.ResolveWindow("2026-09-05")
	require.NoError(t, err)
	assert.Equal(t, f.OperatingHours.Weekend, w)

	w, err = f.ResolveWindow("2026-09-06")
	require.NoError(t, err)
	assert.Equal(t, f.OperatingHours.Weekend, w)

	// Holiday calendar wins over the weekday profile (2026-12-25 is a Friday).
	w, err = f.ResolveWindow("2026-12-25")
	require.NoError(t, err)
	assert.Equal(t, f.OperatingHours.Holiday, w)

	_, err = f.ResolveWindow("25/12/2026")
	assert.Error(t, err)
}

func TestPremiumDate(t *testing.T) {
	f := testFutsal()

	assert.False(t, f.PremiumDate("2026-09-02"), "plain weekday")
	assert.True(t, f.PremiumDate("2026-09-05"), "Saturday")
	assert.True(t, f.PremiumDate("2026-12-25"), "holiday on a Friday")
	assert.False(t, f.PremiumDate("not-a-date"))
}

func TestOperatingWindow(t *testing.T) {
	var zero OperatingWindow
	assert.True(t, zero.IsZero())

	w := OperatingWindow{Open: 360, Close: 1320}
	assert.False(t, w.IsZero())
	assert.Equal(t, 960, w.Span())
}

func TestBookingSessionResetToWindow(t *testing.T) {
	sess := &BookingSession{
		Window: OperatingWindow{Open: 360, Close: 1320},
		Start:  600,
		End:    660,
	}
	sess.ResetToWindow()
	assert.Equal(t, TimeOfDay(360), sess.Start)
	assert.Equal(t, TimeOfDay(1320), sess.End)
	assert.True(t, sess.Initialized())

	var blank BookingSession
	assert.False(t, blank.Initialized())
}
