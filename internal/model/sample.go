package model

import (
	"math"
	"time"
)

// LevelRange is the number of discrete levels a percentage is bucketed into.
const LevelRange = 10

// MaxLevel is the highest level a meter bar can show.
const MaxLevel = LevelRange - 1

// Counters is one reading of the cumulative CPU tick counters since boot.
type Counters struct {
	System uint64
	User   uint64
	Idle   uint64
	Nice   uint64
}

// Snapshot is the normalized CPU usage between two counter readings.
// Percentages are meaningless when Valid is false.
type Snapshot struct {
	Timestamp time.Time
	System    float64 // percent 0-100
	User      float64
	Idle      float64
	Nice      float64
	Valid     bool
}

// Levels holds one level index per displayed metric.
type Levels struct {
	Idle   int `json:"idle"`
	User   int `json:"user"`
	System int `json:"system"`
}

// Invalid returns a snapshot that carries no data.
func Invalid(now time.Time) Snapshot { return Snapshot{Timestamp: now} }

// Levels quantizes the snapshot percentages.
func (s Snapshot) Levels() Levels {
	return Levels{
		Idle:   LevelIndex(s.Idle),
		User:   LevelIndex(s.User),
		System: LevelIndex(s.System),
	}
}

// Equal reports whether both snapshots carry exactly the same percentages.
func (s Snapshot) Equal(o Snapshot) bool {
	return s.Valid == o.Valid &&
		s.System == o.System &&
		s.User == o.User &&
		s.Idle == o.Idle &&
		s.Nice == o.Nice
}

// EqualLevels reports whether both snapshots land in the same buckets.
func (s Snapshot) EqualLevels(o Snapshot) bool { return s.Levels() == o.Levels() }

// LevelIndex maps a percentage to [0, MaxLevel]. 100% lands on MaxLevel.
func LevelIndex(pct float64) int {
	if math.IsNaN(pct) || pct <= 0 {
		return 0
	}
	idx := int(math.Floor(pct * LevelRange / 100))
	if idx > MaxLevel {
		return MaxLevel
	}
	return idx
}

// Full returns levels with every bar at MaxLevel.
func Full() Levels { return Levels{Idle: MaxLevel, User: MaxLevel, System: MaxLevel} }
