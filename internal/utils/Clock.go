package utils

import "time"

// Clock abstracts "now" so week-window math and server-assigned creation
// dates can be pinned in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock, backed by time.Now.
type SystemClock struct{}

func (s SystemClock) Now() time.Time {
	return time.Now()
}

// MockClock reports a fixed instant. Test use only.
type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

// SetNow moves the fixed instant, e.g. to step a test across a week boundary.
func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}
