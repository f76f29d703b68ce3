// Package clock is the time source the registry stamps participant changes with.
package clock

import "time"

// Clock reports the current time
type Clock interface {
	Now() time.Time
}

// Func adapts an ordinary function to Clock
type Func func() time.Time

// Now calls f
func (f Func) Now() time.Time {
	return f()
}

// New returns the wall clock in UTC
func New() Clock {
	return Func(func() time.Time {
		return time.Now().UTC()
	})
}
