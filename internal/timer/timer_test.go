package timer

import (
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestTimerTicksUntilDisabled(t *testing.T) {
	var n atomic.Int64
	tm := New(time.Millisecond, func() { n.Add(1) })
	if tm.Enabled() {
		t.Fatal("new timer should be disabled")
	}

	tm.Enable()
	if !tm.Enabled() {
		t.Fatal("timer should be enabled")
	}
	waitFor(t, func() bool { return n.Load() >= 3 })

	tm.Disable()
	if tm.Enabled() {
		t.Fatal("timer should be disabled")
	}
	after := n.Load()
	time.Sleep(20 * time.Millisecond)
	if got := n.Load(); got != after {
		t.Errorf("ticks after Disable: %d -> %d", after, got)
	}
}

func TestTimerDisableWaitsForInflightTick(t *testing.T) {
	entered := make(chan struct{}, 1)
	release := make(chan struct{})
	var finished atomic.Bool

	tm := New(time.Millisecond, func() {
		select {
		case entered <- struct{}{}:
		default:
		}
		<-release
		finished.Store(true)
	})
	tm.Enable()
	<-entered

	disabled := make(chan struct{})
	go func() {
		tm.Disable()
		close(disabled)
	}()

	select {
	case <-disabled:
		t.Fatal("Disable returned while a tick was running")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	<-disabled
	if !finished.Load() {
		t.Error("in-flight tick did not complete before Disable returned")
	}
}

func TestTimersAreIndependent(t *testing.T) {
	var a, b atomic.Int64
	ta := New(time.Millisecond, func() { a.Add(1) })
	tb := New(time.Millisecond, func() { b.Add(1) })
	ta.Enable()
	tb.Enable()
	defer tb.Disable()

	ta.Disable()
	before := b.Load()
	waitFor(t, func() bool { return b.Load() > before+2 })
	if !tb.Enabled() {
		t.Error("disabling one timer stopped the other")
	}
}

func TestTimerEnableRestarts(t *testing.T) {
	var n atomic.Int64
	tm := New(time.Millisecond, func() { n.Add(1) })
	tm.Enable()
	tm.Enable()
	waitFor(t, func() bool { return n.Load() >= 2 })
	tm.Disable()
	tm.Disable()
	if tm.Enabled() {
		t.Error("timer should be disabled")
	}
}
