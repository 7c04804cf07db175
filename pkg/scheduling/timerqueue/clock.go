package timerqueue

import "time"

// Clock supplies the current time to a queue. Expiries are computed from and
// compared against Clock.Now, so tests can drive a queue with a controllable
// clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now. Times it returns carry a monotonic reading, so
// expiry arithmetic is immune to wall-clock adjustments.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time {
	return time.Now()
}
