package anim

import (
	"testing"

	"github.com/Dicklesworthstone/cpumeter/internal/model"
)

func TestValueTickClampsOnRise(t *testing.T) {
	v := NewValue(4, 1)
	v.SetTarget(9)

	want := []float64{4, 8, 9}
	for i, w := range want {
		if !v.Tick() {
			t.Fatalf("tick %d reported no movement", i+1)
		}
		if v.Current() != w {
			t.Fatalf("tick %d: current = %v, want %v", i+1, v.Current(), w)
		}
	}
	if !v.Idle() {
		t.Error("value should be idle on its target")
	}
}

func TestValueTickFallsSlowly(t *testing.T) {
	v := NewValue(4, 1.5)
	v.SetTarget(4)
	for v.Tick() {
	}
	v.SetTarget(0)

	want := []float64{2.5, 1, 0}
	for i, w := range want {
		v.Tick()
		if v.Current() != w {
			t.Fatalf("tick %d: current = %v, want %v", i+1, v.Current(), w)
		}
	}
	if v.Level() != 0 {
		t.Errorf("Level = %d, want 0", v.Level())
	}
}

func TestValueTickIdempotentAtTarget(t *testing.T) {
	v := NewValue(DefaultIncSpeed, DefaultDecSpeed)
	v.SetTarget(3)
	for v.Tick() {
	}
	before := *v
	for i := 0; i < 5; i++ {
		if v.Tick() {
			t.Fatal("idle value moved")
		}
	}
	if *v != before {
		t.Errorf("state changed: %+v -> %+v", before, *v)
	}
}

func TestValueLevelFloors(t *testing.T) {
	v := NewValue(2.5, 1)
	v.SetTarget(9)
	v.Tick()
	if v.Level() != 2 {
		t.Errorf("Level at 2.5 = %d, want 2", v.Level())
	}
}

func TestMeterResetIgnoresUpdatesUntilSettled(t *testing.T) {
	m := NewMeter(DefaultIncSpeed, DefaultDecSpeed)
	m.Reset()
	if m.Mode() != Draining {
		t.Fatalf("mode = %v, want draining", m.Mode())
	}
	if m.Targets() != model.Full() {
		t.Fatalf("targets = %+v, want full", m.Targets())
	}

	live := model.Levels{Idle: 7, User: 2, System: 1}
	for !m.Settled() {
		if m.Retarget(live) {
			t.Fatal("retarget accepted while draining")
		}
		if m.Targets() != model.Full() {
			t.Fatalf("targets changed while draining: %+v", m.Targets())
		}
		m.Tick()
	}
	if m.Mode() != Normal {
		t.Fatalf("mode = %v after settling, want normal", m.Mode())
	}
	if m.Levels() != model.Full() {
		t.Fatalf("levels = %+v, want full bars", m.Levels())
	}

	if !m.Retarget(live) {
		t.Fatal("retarget rejected after settling")
	}
	if m.Retarget(live) {
		t.Error("identical levels should not retarget")
	}
}

func TestMeterDrainsMonotonically(t *testing.T) {
	m := NewMeter(DefaultIncSpeed, DefaultDecSpeed)
	m.Reset()
	for m.Tick() {
	}
	m.Retarget(model.Levels{})

	prev := m.Levels()
	for m.Tick() {
		cur := m.Levels()
		if cur.Idle > prev.Idle || cur.User > prev.User || cur.System > prev.System {
			t.Fatalf("levels rose while draining: %+v -> %+v", prev, cur)
		}
		prev = cur
	}
	if got := m.Levels(); got != (model.Levels{}) {
		t.Errorf("levels = %+v, want all zero", got)
	}
	if !m.Settled() {
		t.Error("meter should be settled")
	}
}

func TestMeterTickReportsMovement(t *testing.T) {
	m := NewMeter(DefaultIncSpeed, DefaultDecSpeed)
	if m.Tick() {
		t.Error("fresh meter should not move")
	}
	m.Retarget(model.Levels{User: 1})
	if !m.Tick() {
		t.Error("meter with a new target should move")
	}
	if m.Tick() {
		t.Error("settled meter should not move")
	}
}

func TestModeString(t *testing.T) {
	if Normal.String() != "normal" || Draining.String() != "draining" || Mode(7).String() != "unknown" {
		t.Error("unexpected Mode strings")
	}
}
