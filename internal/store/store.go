// Package store holds the latest CPU snapshot shared between the sampler and
// the render scheduler.
package store

import (
	"sync"

	"github.com/Dicklesworthstone/cpumeter/internal/model"
)

// Store is a single mutex-guarded slot. Only valid snapshots replace the slot,
// so readers always see the last good reading.
type Store struct {
	mu   sync.Mutex
	snap model.Snapshot
	seq  uint64
}

func New() *Store { return &Store{} }

// Put records snap and reports whether it replaced the slot.
func (s *Store) Put(snap model.Snapshot) bool {
	if !snap.Valid {
		return false
	}
	s.mu.Lock()
	s.snap = snap
	s.seq++
	s.mu.Unlock()
	return true
}

// Latest returns the last valid snapshot and its sequence number.
// Sequence 0 means nothing has been stored yet.
func (s *Store) Latest() (model.Snapshot, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap, s.seq
}
