package gol

import "sync"

// Barrier is a reusable rendezvous point for a fixed number of parties.
// Every phase completes once all current parties have arrived, after which
// the barrier resets for the next phase.
type Barrier struct {
	mu      sync.Mutex
	cond    *sync.Cond
	parties int
	arrived int
	phase   uint64
}

// NewBarrier returns a barrier expecting the given number of parties each phase
func NewBarrier(parties int) *Barrier {
	b := &Barrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Wait arrives at the current phase and blocks until every party has arrived
func (b *Barrier) Wait() {
	b.mu.Lock()
	defer b.mu.Unlock()

	phase := b.phase
	b.arrived++
	if b.arrived >= b.parties {
		b.advance()
		return
	}
	// Guard against spurious wakeups: only a phase change releases us
	for phase == b.phase {
		b.cond.Wait()
	}
}

// Drop arrives at the current phase without waiting and removes the caller
// from every later phase.
func (b *Barrier) Drop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.parties--
	if b.arrived >= b.parties {
		b.advance()
	}
}

// Parties returns how many parties the next phase expects
func (b *Barrier) Parties() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.parties
}

// must hold b.mu
func (b *Barrier) advance() {
	b.arrived = 0
	b.phase++
	b.cond.Broadcast()
}
