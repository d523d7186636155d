package clock

import "time"

// Clock abstracts wall time so journal dates and practice notes stay
// deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reports local time; journal dates are shown to the user as-is.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Fixed always reports the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}
