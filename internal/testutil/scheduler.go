package testutil

import (
	"sync"
	"time"

	"lunacat/internal/game"
)

// ManualScheduler records deferred actions and runs them only when told to
type ManualScheduler struct {
	mu     sync.Mutex
	timers []*ManualTimer
}

// ManualTimer is a deferred action owned by ManualScheduler
type ManualTimer struct {
	Delay   time.Duration
	f       func()
	stopped bool
	fired   bool
}

// Stop cancels the timer if it has not fired yet
func (t *ManualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Stopped reports whether Stop cancelled the timer
func (t *ManualTimer) Stopped() bool {
	return t.stopped
}

// AfterFunc implements game.Scheduler
func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) game.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &ManualTimer{Delay: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

// Timers returns every timer scheduled so far
func (s *ManualScheduler) Timers() []*ManualTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*ManualTimer, len(s.timers))
	copy(out, s.timers)
	return out
}

// FirePending runs all timers that were neither stopped nor fired
func (s *ManualScheduler) FirePending() int {
	fired := 0
	for _, t := range s.Timers() {
		if t.stopped || t.fired {
			continue
		}
		t.fired = true
		t.f()
		fired++
	}
	return fired
}

// Fire runs a timer even if it was stopped, as a late-firing
// time.AfterFunc callback would
func (t *ManualTimer) Fire() {
	t.fired = true
	t.f()
}
