package anim

import "github.com/Dicklesworthstone/cpumeter/internal/model"

// Mode tells whether a meter follows live data.
type Mode int

const (
	// Normal meters accept new targets.
	Normal Mode = iota
	// Draining meters play the reset animation and ignore new targets until settled.
	Draining
)

func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Draining:
		return "draining"
	default:
		return "unknown"
	}
}

// Meter is the animated idle/user/system bar set.
type Meter struct {
	Idle   *Value
	User   *Value
	System *Value

	mode Mode
}

func NewMeter(incSpeed, decSpeed float64) *Meter {
	return &Meter{
		Idle:   NewValue(incSpeed, decSpeed),
		User:   NewValue(incSpeed, decSpeed),
		System: NewValue(incSpeed, decSpeed),
	}
}

func (m *Meter) values() [3]*Value { return [3]*Value{m.Idle, m.User, m.System} }

func (m *Meter) Mode() Mode { return m.mode }

// Reset sends every bar to the top and holds live data off until they settle.
func (m *Meter) Reset() {
	m.setTargets(model.Full())
	m.mode = Draining
}

// Retarget points the bars at new levels. It reports false when the meter is
// draining or the levels match the current targets.
func (m *Meter) Retarget(l model.Levels) bool {
	if m.mode == Draining || l == m.Targets() {
		return false
	}
	m.setTargets(l)
	return true
}

func (m *Meter) setTargets(l model.Levels) {
	m.Idle.SetTarget(l.Idle)
	m.User.SetTarget(l.User)
	m.System.SetTarget(l.System)
}

// Tick advances every bar one step and reports whether any of them moved.
// A draining meter switches back to Normal once all bars have settled.
func (m *Meter) Tick() bool {
	moved := false
	for _, v := range m.values() {
		if v.Tick() {
			moved = true
		}
	}
	if m.mode == Draining && m.Settled() {
		m.mode = Normal
	}
	return moved
}

// Settled reports whether every bar rests on its target.
func (m *Meter) Settled() bool {
	for _, v := range m.values() {
		if !v.Idle() {
			return false
		}
	}
	return true
}

// Levels returns the displayed levels.
func (m *Meter) Levels() model.Levels {
	return model.Levels{Idle: m.Idle.Level(), User: m.User.Level(), System: m.System.Level()}
}

func (m *Meter) Targets() model.Levels {
	return model.Levels{Idle: m.Idle.Target(), User: m.User.Target(), System: m.System.Target()}
}
