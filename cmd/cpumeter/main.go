package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dicklesworthstone/cpumeter/internal/config"
	"github.com/Dicklesworthstone/cpumeter/internal/engine"
	"github.com/Dicklesworthstone/cpumeter/internal/sampler"
	"github.com/Dicklesworthstone/cpumeter/internal/ui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.FromFlags(args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	tui := !cfg.JSON && !cfg.JSONStream
	logger, closer, err := cfg.Logger(tui)
	if err != nil {
		return err
	}
	defer closer.Close()
	if cfg.SettingsErr != nil {
		logger.Warn("ignoring unreadable settings", "path", cfg.SettingsPath, "error", cfg.SettingsErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	host := sampler.Describe(ctx)
	logger.Info("cpumeter starting",
		"cpu", host.CPUModel,
		"physical_cores", host.PhysicalCores,
		"logical_cores", host.LogicalCores,
		"sample_interval", cfg.SampleInterval,
		"render_interval", cfg.RenderInterval,
		"theme", cfg.Theme,
	)

	switch {
	case cfg.JSON:
		return runOnce(ctx, cfg, logger)
	case cfg.JSONStream:
		return runStream(ctx, cfg, logger)
	default:
		return runTUI(ctx, cfg, host, logger)
	}
}

func engineOptions(cfg config.Config) engine.Options {
	opts := engine.DefaultOptions()
	opts.SampleInterval = cfg.SampleInterval
	opts.RenderInterval = cfg.RenderInterval
	return opts
}

// runOnce prints a single snapshot. The first reading only seeds the sampler.
func runOnce(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	s := sampler.New(sampler.NewHostProvider(), cfg.SampleInterval, logger)
	s.Sample()
	t := time.NewTicker(cfg.SampleInterval)
	defer t.Stop()
	for attempt := 0; attempt < 3; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
		if snap := s.Sample(); snap.Valid {
			return ui.WriteSnapshot(os.Stdout, snap)
		}
	}
	return errors.New("no cpu usage data available")
}

func runStream(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	r := ui.NewStreamRenderer(os.Stdout, logger)
	e := engine.New(sampler.NewHostProvider(), r, engineOptions(cfg), logger)
	r.Attach(e.Latest)

	e.Start(!cfg.NoReset)
	<-ctx.Done()
	e.Close()
	return nil
}

func runTUI(ctx context.Context, cfg config.Config, host sampler.HostInfo, logger *slog.Logger) error {
	m := ui.New(cfg, host, logger)
	prog := ui.NewProgram(m)
	e := engine.New(sampler.NewHostProvider(), m.Frames(), engineOptions(cfg), logger)
	m.Attach(e)

	e.Start(!cfg.NoReset)
	defer e.Close()

	// The TUI reads ctrl+c as a key; SIGTERM still has to end the program.
	go func() {
		<-ctx.Done()
		prog.Quit()
	}()

	_, err := prog.Run()
	return err
}
