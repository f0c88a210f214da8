package api

import (
	"errors"
	"sync"
	"time"

	"github.com/andrescamacho/vfrplanner-go/internal/adapters/metrics"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
)

// BreakerState is the position of a provider's circuit breaker
type BreakerState int

const (
	// BreakerClosed passes every call through
	BreakerClosed BreakerState = iota
	// BreakerOpen rejects calls until the cool-down has elapsed
	BreakerOpen
	// BreakerHalfOpen lets a single trial call decide
	BreakerHalfOpen
)

func (s BreakerState) String() string {
	switch s {
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half_open"
	default:
		return "closed"
	}
}

// ErrCircuitOpen is returned while a provider's breaker is open
var ErrCircuitOpen = errors.New("circuit breaker open")

// CircuitBreaker guards one upstream provider. After threshold consecutive
// counted failures it opens for coolDown; the next call after that is a
// trial whose outcome closes or reopens it.
type CircuitBreaker struct {
	provider  string
	threshold int
	coolDown  time.Duration
	clock     shared.Clock

	mu       sync.Mutex
	state    BreakerState
	failures int
	openedAt time.Time
}

// NewCircuitBreaker creates a closed breaker for provider. A nil clock uses
// the real clock.
func NewCircuitBreaker(provider string, threshold int, coolDown time.Duration, clock shared.Clock) *CircuitBreaker {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if threshold < 1 {
		threshold = 1
	}
	return &CircuitBreaker{
		provider:  provider,
		threshold: threshold,
		coolDown:  coolDown,
		clock:     clock,
	}
}

// Do runs fn unless the breaker is open. Errors for which counts returns
// false pass through without tripping the breaker; a nil counts treats
// every error as a failure.
func (cb *CircuitBreaker) Do(fn func() error, counts func(error) bool) error {
	if !cb.admit() {
		return ErrCircuitOpen
	}

	// fn may retry and sleep, so it runs unlocked
	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if err != nil && (counts == nil || counts(err)) {
		cb.failures++
		if cb.state == BreakerHalfOpen || cb.failures >= cb.threshold {
			cb.openedAt = cb.clock.Now()
			cb.transition(BreakerOpen)
		}
		return err
	}
	cb.failures = 0
	cb.transition(BreakerClosed)
	return err
}

func (cb *CircuitBreaker) admit() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.state != BreakerOpen {
		return true
	}
	if cb.clock.Now().Sub(cb.openedAt) < cb.coolDown {
		return false
	}
	cb.transition(BreakerHalfOpen)
	return true
}

// transition must be called with mu held
func (cb *CircuitBreaker) transition(to BreakerState) {
	if cb.state == to {
		return
	}
	cb.state = to
	metrics.RecordBreakerState(cb.provider, to.String(), int(to))
}

// State returns the current position
func (cb *CircuitBreaker) State() BreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Failures returns the consecutive counted failures
func (cb *CircuitBreaker) Failures() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.failures
}

// Trip opens the breaker as of now
func (cb *CircuitBreaker) Trip() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failures = cb.threshold
	cb.openedAt = cb.clock.Now()
	cb.transition(BreakerOpen)
}

// Reset closes the breaker and clears the failure count
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failures = 0
	cb.transition(BreakerClosed)
}
