package utils

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ParseEventDate parses a yyyy-mm-dd event date.
func ParseEventDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, expected yyyy-mm-dd")
	}
	return t, nil
}

// ValidateTimeRange checks that both HH:MM values parse and end is after start.
func ValidateTimeRange(start, end string) error {
	s, err := time.Parse(TimeLayout, start)
	if err != nil {
		return fmt.Errorf("invalid start time, expected HH:MM")
	}
	e, err := time.Parse(TimeLayout, end)
	if err != nil {
		return fmt.Errorf("invalid end time, expected HH:MM")
	}
	if !e.After(s) {
		return fmt.Errorf("end time must be after start time")
	}
	return nil
}

// Today returns now's calendar date in yyyy-mm-dd form.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// IsUpcoming reports whether an event on date has not yet passed as of now.
// Events dated today count as upcoming.
func IsUpcoming(date string, now time.Time) bool {
	d, err := ParseEventDate(date)
	if err != nil {
		return false
	}
	today, _ := ParseEventDate(Today(now))
	return !d.Before(today)
}
