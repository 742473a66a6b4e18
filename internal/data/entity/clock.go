package entity

import (
	"encoding/json"
	"fmt"
	"time"
)

// Clock is a time of day, stored as the offset from midnight.
type Clock time.Duration

const (
	clockLayout        = "15:04"
	clockLayoutSeconds = "15:04:05"
	DateLayout         = "2006-01-02"
)

// NewClock builds a Clock from hour, minute and second parts.
func NewClock(hour, min, sec int) Clock {
	return Clock(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute + time.Duration(sec)*time.Second)
}

// ParseClock accepts "15:04" or "15:04:05".
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		t, err = time.Parse(clockLayoutSeconds, s)
		if err != nil {
			return 0, fmt.Errorf("invalid time of day %q: expected HH:MM", s)
		}
	}
	return NewClock(t.Hour(), t.Minute(), t.Second()), nil
}

// Duration returns the offset from midnight.
func (c Clock) Duration() time.Duration {
	return time.Duration(c)
}

// Before reports whether c is strictly earlier than other.
func (c Clock) Before(other Clock) bool {
	return c < other
}

// Valid reports whether c lies within a single day.
func (c Clock) Valid() bool {
	return c >= 0 && time.Duration(c) < 24*time.Hour
}

func (c Clock) String() string {
	d := time.Duration(c)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	if s != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Clock) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("time of day must be a string: %w", err)
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// DateOf drops the time part of t, keeping its calendar day in t's location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}
