package syncutil

import "sync"

// OrderedGate lets a pool of workers perform a side effect (writing output,
// updating a running MAC) in strict position order even though the workers
// themselves may finish their independent work in any order. Each worker
// calls Enter(position), does its ordered work, then calls Leave(), which
// advances the expected position and wakes any worker waiting on it — the
// same scoped-condition-variable shape as original_source's
// scoped_condition_variable, adapted to Go's sync.Cond.
type OrderedGate struct {
	mu      sync.Mutex
	cond    *sync.Cond
	next    uint64
	aborted bool
}

// NewOrderedGate returns a gate whose first admitted position is start.
func NewOrderedGate(start uint64) *OrderedGate {
	g := &OrderedGate{next: start}
	g.cond = sync.NewCond(&g.mu)
	return g
}

// Enter blocks until position is the next position to be admitted, or the
// gate has been aborted. It reports whether the gate is still live; a
// caller that gets false must not perform its ordered work.
func (g *OrderedGate) Enter(position uint64) (ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for g.next != position && !g.aborted {
		g.cond.Wait()
	}
	return !g.aborted
}

// Leave advances the expected position by one and wakes any blocked
// workers so the next in line can proceed.
func (g *OrderedGate) Leave() {
	g.mu.Lock()
	g.next++
	g.cond.Broadcast()
	g.mu.Unlock()
}

// Abort releases every worker currently blocked in Enter and causes future
// Enter calls to return false immediately, used to unwind the pool
// promptly after any worker reports an error.
func (g *OrderedGate) Abort() {
	g.mu.Lock()
	g.aborted = true
	g.cond.Broadcast()
	g.mu.Unlock()
}
