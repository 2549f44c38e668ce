// Package clock provides a minimal time source that services can depend on
// instead of calling time.Now directly, so time-sensitive logic stays testable.
package clock

import "time"

type Clock struct {
	loc *time.Location
}

func New() *Clock {
	return &Clock{}
}

// NewWithLocation returns a clock that reports time in loc.
func NewWithLocation(loc *time.Location) *Clock {
	return &Clock{loc: loc}
}

func (c *Clock) Now() time.Time {
	now := time.Now()
	if c.loc != nil {
		now = now.In(c.loc)
	}
	return now
}

// Mock is a fixed clock for tests.
type Mock struct {
	value func() time.Time
}

func NewMock(value time.Time) *Mock {
	return &Mock{
		value: func() time.Time {
			return value
		},
	}
}

func (m *Mock) Now() time.Time {
	return m.value()
}

func (m *Mock) Set(t time.Time) {
	m.value = func() time.Time {
		return t
	}
}
