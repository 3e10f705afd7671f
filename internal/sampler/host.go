package sampler

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/tklauser/go-sysconf"

	"github.com/Dicklesworthstone/cpumeter/internal/model"
)

// defaultClockTicks is USER_HZ on every platform gopsutil reads ticks from.
const defaultClockTicks = 100

var errNoCPUTimes = errors.New("no aggregate cpu times")

// HostProvider reads the aggregate CPU counters of this machine through gopsutil.
type HostProvider struct {
	clockTicks float64
	times      func(ctx context.Context, percpu bool) ([]cpu.TimesStat, error)
}

// NewHostProvider creates a provider for the local host.
func NewHostProvider() *HostProvider {
	return &HostProvider{
		clockTicks: clockTicks(),
		times:      cpu.TimesWithContext,
	}
}

// gopsutil reports seconds; turn them back into kernel ticks.
func clockTicks() float64 {
	clk, err := sysconf.Sysconf(sysconf.SC_CLK_TCK)
	if err != nil || clk <= 0 {
		return defaultClockTicks
	}
	return float64(clk)
}

func (p *HostProvider) Read(ctx context.Context) (model.Counters, error) {
	times, err := p.times(ctx, false)
	if err != nil {
		return model.Counters{}, fmt.Errorf("cpu times: %w", err)
	}
	if len(times) == 0 {
		return model.Counters{}, errNoCPUTimes
	}
	t := times[0]
	return model.Counters{
		System: p.ticks(t.System),
		User:   p.ticks(t.User),
		Idle:   p.ticks(t.Idle),
		Nice:   p.ticks(t.Nice),
	}, nil
}

func (p *HostProvider) ticks(seconds float64) uint64 {
	if seconds <= 0 || math.IsNaN(seconds) {
		return 0
	}
	return uint64(math.Round(seconds * p.clockTicks))
}

// HostInfo describes the machine for the start-up banner and the TUI header.
type HostInfo struct {
	Hostname      string
	Platform      string
	CPUModel      string
	PhysicalCores int
	LogicalCores  int
}

// Describe gathers host details best-effort; missing fields stay empty.
func Describe(ctx context.Context) HostInfo {
	var hi HostInfo
	if h, err := host.InfoWithContext(ctx); err == nil && h != nil {
		hi.Hostname = h.Hostname
		hi.Platform = h.Platform
		if h.PlatformVersion != "" {
			hi.Platform += " " + h.PlatformVersion
		}
	}
	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		hi.CPUModel = infos[0].ModelName
	}
	hi.PhysicalCores, _ = cpu.CountsWithContext(ctx, false)
	hi.LogicalCores, _ = cpu.CountsWithContext(ctx, true)
	return hi
}
