// Package theme defines the colour sets the meter can be drawn with.
package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Name identifies a theme. Names are persisted in the settings file.
type Name string

const (
	System Name = "system"
	Color1 Name = "color1"
	Color2 Name = "color2"
	Gray   Name = "gray"
	Green  Name = "green"
	Orange Name = "orange"
	Blue   Name = "blue"
)

const Default = Orange

// Theme holds the colours of one meter style. Unlit cells use a faded tone
// that differs between light and dark terminals.
type Theme struct {
	Name       Name
	Frame      lipgloss.TerminalColor
	Background lipgloss.TerminalColor
	Idle       lipgloss.TerminalColor
	User       lipgloss.TerminalColor
	System     lipgloss.TerminalColor
	Unlit      lipgloss.TerminalColor
}

var order = []Name{System, Color1, Color2, Gray, Green, Orange, Blue}

var themes = map[Name]Theme{
	System: {
		Name:       System,
		Frame:      lipgloss.AdaptiveColor{Light: "0", Dark: "7"},
		Background: lipgloss.NoColor{},
		Idle:       lipgloss.AdaptiveColor{Light: "8", Dark: "7"},
		User:       lipgloss.AdaptiveColor{Light: "0", Dark: "15"},
		System:     lipgloss.AdaptiveColor{Light: "0", Dark: "15"},
		Unlit:      lipgloss.AdaptiveColor{Light: "254", Dark: "235"},
	},
	Color1: {
		Name:       Color1,
		Frame:      lipgloss.Color("#5f5f87"),
		Background: lipgloss.Color("#1c1c28"),
		Idle:       lipgloss.Color("#5fafff"),
		User:       lipgloss.Color("#87d75f"),
		System:     lipgloss.Color("#ff5f5f"),
		Unlit:      lipgloss.AdaptiveColor{Light: "#d0d0d0", Dark: "#303030"},
	},
	Color2: {
		Name:       Color2,
		Frame:      lipgloss.Color("#875f87"),
		Background: lipgloss.Color("#201a24"),
		Idle:       lipgloss.Color("#af87ff"),
		User:       lipgloss.Color("#ffd75f"),
		System:     lipgloss.Color("#ff5faf"),
		Unlit:      lipgloss.AdaptiveColor{Light: "#d7d0d7", Dark: "#322a35"},
	},
	Gray: {
		Name:       Gray,
		Frame:      lipgloss.Color("#6c6c6c"),
		Background: lipgloss.Color("#1c1c1c"),
		Idle:       lipgloss.Color("#8a8a8a"),
		User:       lipgloss.Color("#b2b2b2"),
		System:     lipgloss.Color("#e4e4e4"),
		Unlit:      lipgloss.AdaptiveColor{Light: "#dadada", Dark: "#303030"},
	},
	Green: {
		Name:       Green,
		Frame:      lipgloss.Color("#5f875f"),
		Background: lipgloss.Color("#121c12"),
		Idle:       lipgloss.Color("#5f8700"),
		User:       lipgloss.Color("#87d700"),
		System:     lipgloss.Color("#d7ff5f"),
		Unlit:      lipgloss.AdaptiveColor{Light: "#d0e0d0", Dark: "#263226"},
	},
	Orange: {
		Name:       Orange,
		Frame:      lipgloss.Color("#875f00"),
		Background: lipgloss.Color("#1f1406"),
		Idle:       lipgloss.Color("#af5f00"),
		User:       lipgloss.Color("#ff8700"),
		System:     lipgloss.Color("#ffd700"),
		Unlit:      lipgloss.AdaptiveColor{Light: "#f0dcc4", Dark: "#3a2a14"},
	},
	Blue: {
		Name:       Blue,
		Frame:      lipgloss.Color("#005f87"),
		Background: lipgloss.Color("#06141f"),
		Idle:       lipgloss.Color("#005faf"),
		User:       lipgloss.Color("#0087ff"),
		System:     lipgloss.Color("#5fd7ff"),
		Unlit:      lipgloss.AdaptiveColor{Light: "#c8dcf0", Dark: "#142a3a"},
	},
}

// Names lists every theme in menu order.
func Names() []Name {
	out := make([]Name, len(order))
	copy(out, order)
	return out
}

// Lookup returns the theme called name.
func Lookup(name string) (Theme, error) {
	t, ok := themes[Name(name)]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q", name)
	}
	return t, nil
}

// Get returns the theme called n, or the default theme when n is unknown.
func Get(n Name) Theme {
	if t, ok := themes[n]; ok {
		return t
	}
	return themes[Default]
}

// Next returns the theme after t in menu order, wrapping around.
func (t Theme) Next() Theme {
	for i, n := range order {
		if n == t.Name {
			return themes[order[(i+1)%len(order)]]
		}
	}
	return themes[Default]
}
