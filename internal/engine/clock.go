package engine

import "time"

// Clock supplies the current time to every deadline comparison.
// Production code uses SystemClock; tests substitute a manual clock so
// expiry behavior is exercised without sleeping.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
