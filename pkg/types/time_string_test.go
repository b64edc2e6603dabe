package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"09:00", true},
		{"00:00", true},
		{"23:59", true},
		{"24:00", false},
		{"9:00", false},
		{"09:60", false},
		{"0900", false},
		{"", false},
		{"ab:cd", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := TimeString(tt.value).Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestTimeString_AddMinutes_RollsIntoNextHour(t *testing.T) {
	ts := TimeString("10:45")

	got, err := ts.AddMinutes(30)

	require.NoError(t, err)
	assert.Equal(t, TimeString("11:15"), got)
}

func TestTimeString_AddMinutes_PastMidnightFails(t *testing.T) {
	ts := TimeString("23:45")

	_, err := ts.AddMinutes(30)

	assert.Error(t, err)
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:30"))
	assert.True(t, TimeString("18:30").IsAfter("09:30"))
	assert.False(t, TimeString("12:00").IsBefore("12:00"))
}

func TestTimeString_At(t *testing.T) {
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	instant, err := TimeString("10:30").At(date)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 10, 10, 30, 0, 0, time.UTC), instant)
}
