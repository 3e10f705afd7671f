// Package render drives the animated meter from the shared snapshot store.
package render

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/Dicklesworthstone/cpumeter/internal/anim"
	"github.com/Dicklesworthstone/cpumeter/internal/model"
	"github.com/Dicklesworthstone/cpumeter/internal/store"
	"github.com/Dicklesworthstone/cpumeter/internal/timer"
)

// Renderer draws the meter. Levels are within [0, model.MaxLevel].
type Renderer interface {
	Redraw(levels model.Levels)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(levels model.Levels)

func (f RendererFunc) Redraw(levels model.Levels) { f(levels) }

// Scheduler pulls the latest snapshot each tick, animates the meter and asks
// the renderer for a frame only while the meter moves.
type Scheduler struct {
	store    *store.Store
	renderer Renderer
	logger   *slog.Logger
	timer    *timer.Timer

	mu    sync.Mutex
	meter *anim.Meter
	seq   uint64 // last store sequence applied to the meter
}

// New creates a scheduler ticking every interval. If logger is nil, a no-op logger is used.
func New(st *store.Store, meter *anim.Meter, r Renderer, interval time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Scheduler{
		store:    st,
		renderer: r,
		logger:   logger,
		meter:    meter,
	}
	s.timer = timer.New(interval, func() { s.Tick() })
	return s
}

// Tick runs one frame and reports whether the renderer was called.
func (s *Scheduler) Tick() bool {
	s.mu.Lock()
	if snap, seq := s.store.Latest(); seq > s.seq && s.meter.Mode() == anim.Normal {
		s.seq = seq
		if s.meter.Retarget(snap.Levels()) {
			s.logger.Debug("meter retargeted", "levels", s.meter.Targets(), "seq", seq)
		}
	}
	moved := s.meter.Tick()
	levels := s.meter.Levels()
	s.mu.Unlock()

	if !moved {
		return false
	}
	s.renderer.Redraw(levels)
	return true
}

// Reset plays the full-bars animation; live data is held off until it settles.
func (s *Scheduler) Reset() {
	s.mu.Lock()
	s.meter.Reset()
	s.mu.Unlock()
	s.logger.Debug("meter reset")
}

// Levels returns the currently displayed levels.
func (s *Scheduler) Levels() model.Levels {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meter.Levels()
}

func (s *Scheduler) Mode() anim.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meter.Mode()
}

func (s *Scheduler) Enable() { s.timer.Enable() }
func (s *Scheduler) Disable() { s.timer.Disable() }
func (s *Scheduler) Enabled() bool { return s.timer.Enabled() }
