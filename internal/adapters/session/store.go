package session

import (
	"context"
	"slices"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/andrescamacho/vfrplanner-go/internal/application/planning"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
)

const (
	defaultSize = 1024
	defaultTTL  = 5 * time.Minute
)

// MemoryStore keeps the latest plan per session in a bounded, expiring LRU.
// Plans are copied on the way in and out so callers cannot mutate stored
// state.
type MemoryStore struct {
	plans *expirable.LRU[string, *planning.Plan]
}

// NewMemoryStore creates a store holding at most size sessions for ttl each
func NewMemoryStore(size int, ttl time.Duration) *MemoryStore {
	if size <= 0 {
		size = defaultSize
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &MemoryStore{
		plans: expirable.NewLRU[string, *planning.Plan](size, nil, ttl),
	}
}

// Save replaces the session's plan and refreshes its expiry
func (s *MemoryStore) Save(ctx context.Context, plan *planning.Plan) error {
	if plan == nil {
		return shared.NewValidationError("plan", "cannot be nil")
	}
	if plan.SessionID == "" {
		return shared.NewValidationError("session_id", "cannot be empty")
	}
	s.plans.Add(plan.SessionID, clonePlan(plan))
	return nil
}

// Find returns a copy of the session's plan
func (s *MemoryStore) Find(ctx context.Context, sessionID string) (*planning.Plan, error) {
	plan, ok := s.plans.Get(sessionID)
	if !ok {
		return nil, shared.NewSessionNotFoundError(sessionID)
	}
	return clonePlan(plan), nil
}

// Delete drops the session's plan
func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.plans.Remove(sessionID)
	return nil
}

// Len returns the number of live sessions
func (s *MemoryStore) Len() int {
	return s.plans.Len()
}

// clonePlan copies the mutable parts of a plan. Routes are immutable and
// shared.
func clonePlan(p *planning.Plan) *planning.Plan {
	out := *p
	out.Notes = slices.Clone(p.Notes)
	out.Altitude.Profile = slices.Clone(p.Altitude.Profile)
	return &out
}
