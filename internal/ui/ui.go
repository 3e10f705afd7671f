package ui

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/cpumeter/internal/config"
	"github.com/Dicklesworthstone/cpumeter/internal/model"
	"github.com/Dicklesworthstone/cpumeter/internal/sampler"
	"github.com/Dicklesworthstone/cpumeter/internal/theme"
)

// Controls is the part of the engine the TUI drives.
type Controls interface {
	Reset()
	EnableSampler()
	DisableSampler()
	SamplerEnabled() bool
	EnableRender()
	DisableRender()
	RenderEnabled() bool
	Latest() (model.Snapshot, bool)
}

// Model draws the meter frames the render scheduler sends it.
type Model struct {
	cfg    config.Config
	ctrl   Controls
	frames *Frames
	logger *slog.Logger
	host   sampler.HostInfo
	theme  theme.Theme
	help   help.Model

	levels  model.Levels
	snap    model.Snapshot
	hasSnap bool
	width   int
}

// New builds the TUI model. If logger is nil, a no-op logger is used.
func New(cfg config.Config, host sampler.HostInfo, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Model{
		cfg:    cfg,
		frames: NewFrames(),
		logger: logger,
		host:   host,
		theme:  theme.Get(theme.Name(cfg.Theme)),
		help:   help.New(),
		width:  80,
	}
}

// Attach connects the model to the engine. It must be called before the program runs.
func (m *Model) Attach(ctrl Controls) { m.ctrl = ctrl }

// Messages
type (
	frameMsg model.Levels
)

// Frames hands scheduler frames to the event loop. Redraw never blocks: an
// undelivered frame is replaced by the newer one.
type Frames struct {
	ch chan model.Levels
}

func NewFrames() *Frames { return &Frames{ch: make(chan model.Levels, 1)} }

// Redraw is called by the render timer only, so the slot is empty after the drain.
func (f *Frames) Redraw(levels model.Levels) {
	select {
	case <-f.ch:
	default:
	}
	select {
	case f.ch <- levels:
	default:
	}
}

func (f *Frames) wait() tea.Msg { return frameMsg(<-f.ch) }

// Frames is the renderer the engine draws through.
func (m *Model) Frames() *Frames { return m.frames }

func (m *Model) Init() tea.Cmd { return m.frames.wait }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	case frameMsg:
		m.levels = model.Levels(msg)
		if m.ctrl != nil {
			m.snap, m.hasSnap = m.ctrl.Latest()
		}
		return m, m.frames.wait
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case m.ctrl == nil:
	case key.Matches(msg, keys.Reset):
		m.ctrl.Reset()
	case key.Matches(msg, keys.Theme):
		m.nextTheme()
	case key.Matches(msg, keys.Sample):
		if m.ctrl.SamplerEnabled() {
			m.ctrl.DisableSampler()
		} else {
			m.ctrl.EnableSampler()
		}
	case key.Matches(msg, keys.Animate):
		if m.ctrl.RenderEnabled() {
			m.ctrl.DisableRender()
		} else {
			m.ctrl.EnableRender()
		}
	}
	return nil
}

func (m *Model) nextTheme() {
	m.theme = m.theme.Next()
	m.cfg.Theme = string(m.theme.Name)
	if m.cfg.SettingsPath == "" {
		return
	}
	if err := config.SaveSettings(m.cfg.SettingsPath, config.Settings{Theme: m.cfg.Theme}); err != nil {
		m.logger.Warn("failed to save theme", "theme", m.cfg.Theme, "error", err)
		return
	}
	m.logger.Info("theme saved", "theme", m.cfg.Theme)
}

// Styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
	gaugeFill   = "█"
	gaugeEmpty  = "░"
)

func (m *Model) View() string {
	header := titleStyle.Render("cpumeter") + "  " + subtleStyle.Render(truncate(hostLine(m.host), max(m.width-12, 12)))

	body := meterView(m.levels, m.theme)

	pcts := subtleStyle.Render("waiting for cpu data…")
	if m.hasSnap {
		s := m.snap
		pcts = fmt.Sprintf("sys %5.1f%%  usr %5.1f%%  idle %5.1f%%  nice %4.1f%%",
			s.System, s.User, s.Idle, s.Nice)
	}

	status := subtleStyle.Render(fmt.Sprintf("theme %s  sampling %s  animation %s",
		m.theme.Name, onOff(m.ctrl == nil || m.ctrl.SamplerEnabled()), onOff(m.ctrl == nil || m.ctrl.RenderEnabled())))

	return lipgloss.JoinVertical(lipgloss.Left, header, body, pcts, status, m.help.View(keys))
}

// meterView draws the system, user and idle bars, top to bottom. A bar at
// model.MaxLevel is fully lit.
func meterView(l model.Levels, th theme.Theme) string {
	rows := []string{
		bar("sys ", l.System, th.System, th),
		bar("usr ", l.User, th.User, th),
		bar("idle", l.Idle, th.Idle, th),
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Frame).
		Padding(0, 1).
		Render(strings.Join(rows, "\n"))
}

func bar(label string, level int, lit lipgloss.TerminalColor, th theme.Theme) string {
	if level < 0 {
		level = 0
	}
	if level > model.MaxLevel {
		level = model.MaxLevel
	}
	on := lipgloss.NewStyle().Foreground(lit).Background(th.Background)
	off := lipgloss.NewStyle().Foreground(th.Unlit).Background(th.Background)
	return labelStyle.Render(label) + " " +
		on.Render(strings.Repeat(gaugeFill, level)) +
		off.Render(strings.Repeat(gaugeEmpty, model.MaxLevel-level))
}

func hostLine(h sampler.HostInfo) string {
	var parts []string
	if h.Hostname != "" {
		parts = append(parts, h.Hostname)
	}
	if h.Platform != "" {
		parts = append(parts, h.Platform)
	}
	if h.CPUModel != "" {
		parts = append(parts, truncate(h.CPUModel, 32))
	}
	if h.LogicalCores > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d cores", h.PhysicalCores, h.LogicalCores))
	}
	return strings.Join(parts, " · ")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// NewProgram creates the Bubble Tea program for m.
func NewProgram(m *Model) *tea.Program {
	return tea.NewProgram(m, tea.WithAltScreen())
}
