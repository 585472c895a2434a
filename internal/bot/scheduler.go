package bot

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Scheduler defers bot decisions by an artificial thinking delay. Each seat
// holds at most one pending task; scheduling again, or cancelling, stops the
// previous timer so a stale decision never fires after the turn has moved on.
type Scheduler struct {
	minDelay time.Duration
	maxDelay time.Duration

	mu      sync.Mutex
	pending map[int]*time.Timer
}

// NewScheduler creates a scheduler with the given think-delay bounds.
func NewScheduler(minDelay, maxDelay time.Duration) *Scheduler {
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return &Scheduler{
		minDelay: minDelay,
		maxDelay: maxDelay,
		pending:  make(map[int]*time.Timer),
	}
}

// Schedule queues run for the seat after a randomized delay, replacing any
// pending task for that seat. The caller is responsible for re-validating
// the turn (e.g. via the engine generation) inside run.
func (s *Scheduler) Schedule(seat int, run func()) {
	delay := s.minDelay
	if spread := s.maxDelay - s.minDelay; spread > 0 {
		delay += time.Duration(rand.Int64N(int64(spread)))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.pending[seat]; ok {
		t.Stop()
	}
	s.pending[seat] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.pending, seat)
		s.mu.Unlock()
		run()
	})
}

// Cancel stops the pending task for a seat, if any.
func (s *Scheduler) Cancel(seat int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.pending[seat]; ok {
		t.Stop()
		delete(s.pending, seat)
	}
}

// CancelAll stops every pending task.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for seat, t := range s.pending {
		t.Stop()
		delete(s.pending, seat)
	}
}
