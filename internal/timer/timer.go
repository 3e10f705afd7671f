// Package timer runs a callback periodically on its own goroutine.
package timer

import (
	"sync"
	"time"
)

// Timer calls fn every interval while enabled. Ticks never overlap, and once
// Disable returns no callback is running or will run.
// fn must not call back into its own Timer.
type Timer struct {
	interval time.Duration
	fn       func()

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

func New(interval time.Duration, fn func()) *Timer {
	return &Timer{interval: interval, fn: fn}
}

// Enable starts the timer, restarting it if it already runs.
func (t *Timer) Enable() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()

	stop, done := make(chan struct{}), make(chan struct{})
	t.stop, t.done = stop, done
	go t.run(stop, done)
}

// Disable stops the timer and waits for an in-flight callback to finish.
func (t *Timer) Disable() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

func (t *Timer) Enabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stop != nil
}

func (t *Timer) stopLocked() {
	if t.stop == nil {
		return
	}
	close(t.stop)
	<-t.done
	t.stop, t.done = nil, nil
}

func (t *Timer) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			// Both may be ready at once; cancellation wins.
			select {
			case <-stop:
				return
			default:
			}
			t.fn()
		}
	}
}
