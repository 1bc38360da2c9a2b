package usecase

import (
	"errors"
	"time"
)

var (
	ErrPatientNotFound        = errors.New("patient not found")
	ErrAppointmentNotFound    = errors.New("appointment not found")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidDate            = errors.New("invalid date format, use YYYY-MM-DD")
)

// clock returns the current time as it will be persisted: UTC, truncated to
// the microsecond precision of the database.
type clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// nextTimestamp returns the current time, forced strictly after prev so that
// updated_at always moves forward.
func (c clock) nextTimestamp(prev time.Time) time.Time {
	now := c()
	if !now.After(prev) {
		now = prev.Add(time.Microsecond)
	}
	return now
}
