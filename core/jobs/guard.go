package jobs

import (
	"context"
	"sync"
	"sync/atomic"
)

// State is the run state of a guarded key.
type State int32

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// Guard serializes runs per key.
type Guard interface {
	// TryAcquire moves key to Running. It returns false when key is already running.
	TryAcquire(ctx context.Context, key string) (bool, error)
	// Release moves key back to Idle.
	Release(ctx context.Context, key string) error
	// State reports the last known state of key.
	State(key string) State
}

// MemoryGuard is an in-process Guard.
type MemoryGuard struct {
	states sync.Map // key -> *atomic.Int32
}

// NewMemoryGuard creates an empty MemoryGuard.
func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{}
}

func (g *MemoryGuard) slot(key string) *atomic.Int32 {
	if v, ok := g.states.Load(key); ok {
		return v.(*atomic.Int32)
	}
	v, _ := g.states.LoadOrStore(key, new(atomic.Int32))
	return v.(*atomic.Int32)
}

// TryAcquire implements Guard.
func (g *MemoryGuard) TryAcquire(_ context.Context, key string) (bool, error) {
	return g.slot(key).CompareAndSwap(int32(Idle), int32(Running)), nil
}

// Release implements Guard.
func (g *MemoryGuard) Release(_ context.Context, key string) error {
	g.slot(key).Store(int32(Idle))
	return nil
}

// State implements Guard.
func (g *MemoryGuard) State(key string) State {
	v, ok := g.states.Load(key)
	if !ok {
		return Idle
	}
	return State(v.(*atomic.Int32).Load())
}
