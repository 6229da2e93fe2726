package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVerifyPasswordComplexity(t *testing.T) {
	tests := []struct {
		pw      string
		wantErr bool
	}{
		{"Str0ng!pass", false},
		{"An0ther_Good1", false},
		{"short1!", true},     // too short
		{"alllower1!", true},  // no uppercase
		{"ALLUPPER1!", true},  // no lowercase
		{"NoDigits!!", true},  // no number
		{"NoSymbols11", true}, // no symbol
	}
	for _, tt := range tests {
		err := verifyPasswordComplexity(tt.pw)
		if tt.wantErr {
			assert.Error(t, err, "password %q", tt.pw)
		} else {
			assert.NoError(t, err, "password %q", tt.pw)
		}
	}
}

func TestAllowRefreshThrottles(t *testing.T) {
	key := "user-throttle-test"

	assert.True(t, allowRefresh(key), "first attempt passes")
	assert.True(t, allowRefresh(key), "second attempt passes")
	assert.False(t, allowRefresh(key), "third attempt within the window is throttled")
	assert.False(t, allowRefresh(key))
}

func TestAllowRefreshIsPerKey(t *testing.T) {
	a, b := "throttle-user-a", "throttle-user-b"

	assert.True(t, allowRefresh(a))
	assert.True(t, allowRefresh(a))
	assert.False(t, allowRefresh(a))

	// A different account is unaffected.
	assert.True(t, allowRefresh(b))
}

func TestAllowRefreshWindowResets(t *testing.T) {
	key := "throttle-reset-test"

	refreshAttempts.Lock()
	refreshAttempts.m[key] = refreshWindow{start: time.Now().Add(-2 * refreshWindowLen), count: 5}
	refreshAttempts.Unlock()

	assert.True(t, allowRefresh(key), "an expired window starts fresh")
}
