package shared

import "time"

// Clock provides the current time. RealClock serves production; tests
// substitute a fixed implementation so rendered dates are stable.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time { return time.Now() }
