package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{"00:00", 0, false},
		{"07:00", 420, false},
		{"18:30", 1110, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"-1:00", 0, true},
		{"noon", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseTimeOfDay(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestTimeOfDayString(t *testing.T) {
	assert.Equal(t, "06:00", TimeOfDay(360).String())
	assert.Equal(t, "00:05", TimeOfDay(5).String())
	assert.Equal(t, "22:00", TimeOfDay(1320).String())
}

func TestTimeOfDayRoundTrip(t *testing.T) {
	for _, s := range []string{"00:00", "06:30", "13:45", "23:59"} {
		v, err := ParseTimeOfDay(s)
		require.NoError(t, err)
		assert.Equal(t, s, v.String())
	}
}

func TestTimeOfDayComparisons(t *testing.T) {
	a, b := TimeOfDay(600), TimeOfDay(660)
	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.True(t, b.After(a))
	assert.False(t, a.Before(a))
	assert.Equal(t, 60, a.MinutesUntil(b))
	assert.Equal(t, -60, b.MinutesUntil(a))
}

func TestBookedSlotOverlaps(t *testing.T) {
	s := BookedSlot{Start: 840, End: 900} // 14:00-15:00

	assert.True(t, s.Overlaps(810, 870), "13:30-14:30 crosses the slot start")
	assert.True(t, s.Overlaps(870, 930), "14:30-15:30 crosses the slot end")
	assert.True(t, s.Overlaps(840, 900), "exact cover")
	assert.True(t, s.Overlaps(780, 960), "fully containing")

	// Touching endpoints are not overlaps: the intervals are half-open.
	assert.False(t, s.Overlaps(780, 840), "13:00-14:00 ends where the slot starts")
	assert.False(t, s.Overlaps(900, 960), "15:00-16:00 starts where the slot ends")
}
