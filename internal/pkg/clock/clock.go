// Package clock abstracts wall time so booking rules that depend on "now",
// such as the cancellation window and checkout completion, stay testable.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func NewRealClock() Clock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

// FrozenClock reports a fixed instant until Set moves it. Tests use it to
// step a booking across the free-cancellation and checkout boundaries.
type FrozenClock struct {
	now time.Time
}

func NewFrozenClock(t time.Time) *FrozenClock {
	return &FrozenClock{now: t}
}

func (c *FrozenClock) Now() time.Time {
	return c.now
}

func (c *FrozenClock) Set(t time.Time) {
	c.now = t
}
