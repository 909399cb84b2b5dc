package cooldown

import (
	"context"
	"sync"
	"time"

	"github.com/medvox-ai/intake-pipeline/internal/types"
)

// Gate rate-limits voice session initiation. Reserve claims the next slot
// atomically; the returned release rolls the claim back so a failed
// initiation does not burn the window.
type Gate interface {
	Reserve(ctx context.Context) (release func(), err error)
}

// MemoryGate is the single-process implementation, a mutex-guarded timestamp
// of the last admitted initiation.
type MemoryGate struct {
	window time.Duration

	mu   sync.Mutex
	last time.Time

	now func() time.Time
}

func NewMemoryGate(window time.Duration) *MemoryGate {
	return &MemoryGate{window: window, now: time.Now}
}

// Reserve admits the caller when at least the window has elapsed since the
// last admitted initiation and records the new timestamp. Exactly one of
// several concurrent callers wins the slot.
func (g *MemoryGate) Reserve(ctx context.Context) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if !g.last.IsZero() && now.Sub(g.last) < g.window {
		return nil, types.NewTooManyRequestsError()
	}
	prev := g.last
	g.last = now

	release := func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		// Roll back only while ours is still the newest reservation.
		if g.last.Equal(now) {
			g.last = prev
		}
	}
	return release, nil
}
