package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseEventDate(t *testing.T) {
	d, err := ParseEventDate("2026-03-09")
	assert.NoError(t, err)
	assert.Equal(t, time.March, d.Month())

	_, err = ParseEventDate("2026/03/09")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date format")
}

func TestValidateTimeRange(t *testing.T) {
	tests := []struct {
		start, end string
		errMsg     string
	}{
		{"09:00", "12:30", ""},
		{"9am", "12:30", "invalid start time"},
		{"09:00", "noon", "invalid end time"},
		{"12:00", "12:00", "end time must be after start time"},
		{"14:00", "09:00", "end time must be after start time"},
	}

	for _, tt := range tests {
		err := ValidateTimeRange(tt.start, tt.end)
		if tt.errMsg == "" {
			assert.NoError(t, err)
			continue
		}
		assert.Error(t, err)
		assert.Contains(t, err.Error(), tt.errMsg)
	}
}

func TestIsUpcoming(t *testing.T) {
	now := time.Date(2026, 10, 15, 18, 0, 0, 0, time.UTC)
	assert.True(t, IsUpcoming("2026-10-15", now))
	assert.True(t, IsUpcoming("2027-01-01", now))
	assert.False(t, IsUpcoming("2026-10-14", now))
	assert.False(t, IsUpcoming("garbage", now))
	assert.Equal(t, "2026-10-15", Today(now))
}
