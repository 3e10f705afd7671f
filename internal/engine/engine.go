// Package engine wires the CPU sampler, the snapshot store and the render
// scheduler together behind the controls the application exposes.
package engine

import (
	"io"
	"log/slog"
	"time"

	"github.com/Dicklesworthstone/cpumeter/internal/anim"
	"github.com/Dicklesworthstone/cpumeter/internal/model"
	"github.com/Dicklesworthstone/cpumeter/internal/render"
	"github.com/Dicklesworthstone/cpumeter/internal/sampler"
	"github.com/Dicklesworthstone/cpumeter/internal/store"
	"github.com/Dicklesworthstone/cpumeter/internal/timer"
)

// Options tunes the two periodic activities and the animation speed.
type Options struct {
	SampleInterval time.Duration
	RenderInterval time.Duration
	IncSpeed       float64
	DecSpeed       float64
}

func DefaultOptions() Options {
	return Options{
		SampleInterval: 100 * time.Millisecond,
		RenderInterval: 100 * time.Millisecond,
		IncSpeed:       anim.DefaultIncSpeed,
		DecSpeed:       anim.DefaultDecSpeed,
	}
}

// Engine owns both timers. They can be enabled and disabled independently.
type Engine struct {
	logger    *slog.Logger
	sampler   *sampler.Sampler
	store     *store.Store
	scheduler *render.Scheduler
	sampling  *timer.Timer
}

// New builds an engine reading p and drawing through r. If logger is nil, a no-op logger is used.
func New(p sampler.Provider, r render.Renderer, opts Options, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	st := store.New()
	meter := anim.NewMeter(opts.IncSpeed, opts.DecSpeed)
	e := &Engine{
		logger:    logger,
		sampler:   sampler.New(p, opts.SampleInterval, logger.With("component", "sampler")),
		store:     st,
		scheduler: render.New(st, meter, r, opts.RenderInterval, logger.With("component", "render")),
	}
	e.sampling = timer.New(opts.SampleInterval, e.sampleOnce)
	return e
}

func (e *Engine) sampleOnce() {
	snap := e.sampler.Sample()
	if e.store.Put(snap) {
		e.logger.Debug("cpu sampled",
			"system", snap.System, "user", snap.User, "idle", snap.Idle, "nice", snap.Nice)
	}
}

// Start enables both timers, optionally playing the reset animation first.
func (e *Engine) Start(reset bool) {
	if reset {
		e.Reset()
	}
	e.EnableRender()
	e.EnableSampler()
	e.logger.Info("engine started", "reset", reset)
}

// Close stops both timers. No tick runs once it returns.
func (e *Engine) Close() {
	e.DisableSampler()
	e.DisableRender()
	e.logger.Info("engine stopped")
}

func (e *Engine) EnableSampler() { e.sampling.Enable() }
func (e *Engine) DisableSampler() { e.sampling.Disable() }

func (e *Engine) SamplerEnabled() bool { return e.sampling.Enabled() }

func (e *Engine) EnableRender() { e.scheduler.Enable() }
func (e *Engine) DisableRender() { e.scheduler.Disable() }

func (e *Engine) RenderEnabled() bool { return e.scheduler.Enabled() }

// Reset triggers the full-bars animation.
func (e *Engine) Reset() { e.scheduler.Reset() }

// Latest returns the last valid snapshot, if any.
func (e *Engine) Latest() (model.Snapshot, bool) {
	snap, seq := e.store.Latest()
	return snap, seq > 0
}

// Levels returns the levels currently on display.
func (e *Engine) Levels() model.Levels { return e.scheduler.Levels() }
