// Package anim eases displayed meter levels toward their targets.
package anim

import "math"

// Default step sizes per tick. Bars rise faster than they fall.
const (
	DefaultIncSpeed = 4.0
	DefaultDecSpeed = 1.0
)

// Value moves a displayed level toward an integer target by a fixed step per tick.
type Value struct {
	current  float64
	target   int
	incSpeed float64
	decSpeed float64
}

// NewValue returns a value at rest on level 0.
func NewValue(incSpeed, decSpeed float64) *Value {
	return &Value{incSpeed: incSpeed, decSpeed: decSpeed}
}

func (v *Value) SetTarget(level int) { v.target = level }
func (v *Value) Target() int { return v.target }
func (v *Value) Current() float64 { return v.current }

// Level is the displayed integer level.
func (v *Value) Level() int { return int(math.Floor(v.current)) }

// Idle reports whether the value rests on its target.
func (v *Value) Idle() bool { return v.current == float64(v.target) }

// Tick advances one step and reports whether current moved.
func (v *Value) Tick() bool {
	target := float64(v.target)
	switch {
	case v.current < target:
		v.current = math.Min(v.current+v.incSpeed, target)
	case v.current > target:
		v.current = math.Max(v.current-v.decSpeed, target)
	default:
		return false
	}
	return true
}
