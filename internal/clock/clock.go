// Package clock abstracts wall-clock access so time-window logic (token
// lifetimes, cooldowns, free-tier eligibility) is testable.
package clock

import "time"

// Clock yields the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// System returns a Clock backed by time.Now in UTC.
func System() Clock {
	return systemClock{}
}
