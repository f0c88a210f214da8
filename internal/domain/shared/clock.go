package shared

import (
	"context"
	"sync"
	"time"
)

// Clock supplies wall time and blocking waits. Plans are stamped with Now
// and upstream backoff waits through Sleep.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// Sleep waits for d or until ctx is done, whichever comes first
func (systemClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NewRealClock returns the system clock in UTC
func NewRealClock() Clock {
	return systemClock{}
}

// MockClock is a manually driven Clock. Sleep returns immediately after
// moving time forward and remembers the requested duration. A done context
// fails the sleep without recording it.
type MockClock struct {
	mu    sync.Mutex
	now   time.Time
	slept []time.Duration
}

// NewMockClock starts a MockClock at start, or at the current time when
// start is zero
func NewMockClock(start time.Time) *MockClock {
	if start.IsZero() {
		start = time.Now().UTC()
	}
	return &MockClock{now: start}
}

func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *MockClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slept = append(m.slept, d)
	m.now = m.now.Add(d)
	return nil
}

// Advance moves time forward without recording a sleep
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Slept returns the durations passed to Sleep, oldest first
func (m *MockClock) Slept() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]time.Duration, len(m.slept))
	copy(out, m.slept)
	return out
}
