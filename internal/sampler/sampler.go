package sampler

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/Dicklesworthstone/cpumeter/internal/model"
)

// Provider reads the cumulative CPU tick counters of the host.
type Provider interface {
	Read(ctx context.Context) (model.Counters, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context) (model.Counters, error)

func (f ProviderFunc) Read(ctx context.Context) (model.Counters, error) { return f(ctx) }

// Sampler turns successive counter readings into Snapshots.
// It is not safe for concurrent use; one timer goroutine owns it.
type Sampler struct {
	provider Provider
	logger   *slog.Logger
	timeout  time.Duration
	now      func() time.Time

	prev    model.Counters
	hasPrev bool
}

// New creates a Sampler reading from p. Reads slower than timeout count as failures.
// If logger is nil, a no-op logger is used.
func New(p Provider, timeout time.Duration, logger *slog.Logger) *Sampler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Sampler{
		provider: p,
		logger:   logger,
		timeout:  timeout,
		now:      time.Now,
	}
}

// Sample reads the provider and returns the usage since the previous call.
// The first call, a failed read, a counter going backwards and a zero tick
// total all yield an invalid Snapshot.
func (s *Sampler) Sample() model.Snapshot {
	now := s.now()

	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	cur, err := s.provider.Read(ctx)
	if err != nil {
		s.logger.Debug("cpu counters unavailable", "error", err)
		return model.Invalid(now)
	}

	if !s.hasPrev {
		s.prev, s.hasPrev = cur, true
		return model.Invalid(now)
	}
	prev := s.prev
	s.prev = cur

	if cur.System < prev.System || cur.User < prev.User ||
		cur.Idle < prev.Idle || cur.Nice < prev.Nice {
		s.logger.Debug("cpu counters went backwards, rebasing",
			"prev", prev, "cur", cur)
		return model.Invalid(now)
	}

	return Usage(prev, cur, now)
}

// Usage computes percentages from two readings. cur must not be behind prev.
func Usage(prev, cur model.Counters, now time.Time) model.Snapshot {
	sys := float64(cur.System - prev.System)
	user := float64(cur.User - prev.User)
	idle := float64(cur.Idle - prev.Idle)
	nice := float64(cur.Nice - prev.Nice)

	total := sys + user + idle + nice
	if total == 0 {
		return model.Invalid(now)
	}
	return model.Snapshot{
		Timestamp: now,
		System:    100 * sys / total,
		User:      100 * user / total,
		Idle:      100 * idle / total,
		Nice:      100 * nice / total,
		Valid:     true,
	}
}
