package domain

import (
	"errors"
	"time"
)

// TimeRange is a half-open interval [From, To).
type TimeRange struct {
	From time.Time
	To   time.Time
}

func (t TimeRange) Validate() error {
	if t.From.IsZero() || t.To.IsZero() {
		return errors.New("both From and To must be set")
	}

	if t.To.Before(t.From) {
		return errors.New("to is before from")
	}

	return nil
}

func (t TimeRange) Contains(at time.Time) bool {
	return !at.Before(t.From) && at.Before(t.To)
}
