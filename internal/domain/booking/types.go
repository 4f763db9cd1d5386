package booking

import "errors"

var ErrInvalidTransition = errors.New("invalid status transition")

// Status is the closed set of booking lifecycle states. Transitions go
// through the table below only; terminal states are never re-entered.
type Status string

const (
	StatusPending          Status = "pending"
	StatusConfirmed        Status = "confirmed"
	StatusCompleted        Status = "completed"
	StatusDeclined         Status = "declined"
	StatusCancelledByGuest Status = "cancelled_by_guest"
	StatusCancelledByHost  Status = "cancelled_by_host"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusDeclined, StatusCancelledByGuest, StatusCancelledByHost},
	StatusConfirmed: {StatusCompleted, StatusCancelledByGuest, StatusCancelledByHost},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted,
		StatusDeclined, StatusCancelledByGuest, StatusCancelledByHost:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusDeclined, StatusCancelledByGuest, StatusCancelledByHost:
		return true
	default:
		return false
	}
}

// Occupies reports whether a booking in this status blocks its nights
// against other reservations.
func (s Status) Occupies() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
