// Package theme defines the color themes the renderer can be switched to.
package theme

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var ErrUnknown = errors.New("unknown theme")

// Theme is a value: switching themes replaces the whole value, nothing is
// mutated in place.
type Theme struct {
	Name string

	Accent   lipgloss.Color
	Primary  lipgloss.Color
	Warm     lipgloss.Color
	Cool     lipgloss.Color
	Alert    lipgloss.Color
	Subtle   lipgloss.Color
	Dim      lipgloss.Color
	Fg       lipgloss.Color
	Selected lipgloss.Color

	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Divider    lipgloss.Style
	Item       lipgloss.Style
	ItemActive lipgloss.Style
	DimItem    lipgloss.Style
	Link       lipgloss.Style
	CursorLine lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Hint       lipgloss.Style
	Label      lipgloss.Style
	HUD        lipgloss.Style
	Panel      lipgloss.Style
	Input      lipgloss.Style
}

type palette struct {
	accent, primary, warm, cool, alert, subtle, dim, fg, selected string
}

var palettes = []struct {
	name string
	p    palette
}{
	// gruvbox-ish, warm brown accent
	{"grove", palette{"#7C6F64", "#98971A", "#D79921", "#458588", "#CC241D", "#665C54", "#504945", "#EBDBB2", "#3C3836"}},
	{"dracula", palette{"#6272A4", "#BD93F9", "#FFB86C", "#8BE9FD", "#FF5555", "#6272A4", "#44475A", "#F8F8F2", "#44475A"}},
	{"nord", palette{"#4C566A", "#88C0D0", "#EBCB8B", "#81A1C1", "#BF616A", "#616E88", "#3B4252", "#ECEFF4", "#434C5E"}},
	{"mono", palette{"#808080", "#FFFFFF", "#D0D0D0", "#A0A0A0", "#FFFFFF", "#808080", "#4E4E4E", "#D0D0D0", "#303030"}},
}

// Default is the theme used when none is configured.
const Default = "grove"

// Names lists the registered themes in menu order.
func Names() []string {
	out := make([]string, len(palettes))
	for i, p := range palettes {
		out[i] = p.name
	}
	return out
}

// Lookup returns the named theme.
func Lookup(name string) (Theme, error) {
	for _, p := range palettes {
		if p.name == name {
			return build(p.name, p.p), nil
		}
	}
	return Theme{}, fmt.Errorf("%w %q", ErrUnknown, name)
}

// MustLookup is Lookup for names known to be registered.
func MustLookup(name string) Theme {
	t, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return t
}

func build(name string, p palette) Theme {
	t := Theme{
		Name:     name,
		Accent:   lipgloss.Color(p.accent),
		Primary:  lipgloss.Color(p.primary),
		Warm:     lipgloss.Color(p.warm),
		Cool:     lipgloss.Color(p.cool),
		Alert:    lipgloss.Color(p.alert),
		Subtle:   lipgloss.Color(p.subtle),
		Dim:      lipgloss.Color(p.dim),
		Fg:       lipgloss.Color(p.fg),
		Selected: lipgloss.Color(p.selected),
	}

	t.Title = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	t.Subtitle = lipgloss.NewStyle().Foreground(t.Subtle)
	t.Divider = lipgloss.NewStyle().Foreground(t.Dim)
	t.Item = lipgloss.NewStyle().Foreground(t.Fg)
	t.ItemActive = lipgloss.NewStyle().Foreground(t.Warm).Bold(true)
	t.DimItem = lipgloss.NewStyle().Foreground(t.Subtle)
	t.Link = lipgloss.NewStyle().Foreground(t.Cool).Underline(true)
	t.CursorLine = lipgloss.NewStyle().Reverse(true)
	t.Error = lipgloss.NewStyle().Foreground(t.Alert)
	t.Success = lipgloss.NewStyle().Foreground(t.Primary)
	t.Hint = lipgloss.NewStyle().Foreground(t.Subtle)
	t.Label = lipgloss.NewStyle().Foreground(t.Cool).Bold(true)
	t.HUD = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), true, false).
		BorderForeground(t.Accent).
		Foreground(t.Fg)
	t.Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Cool)
	t.Input = lipgloss.NewStyle().Foreground(t.Warm)
	return t
}
