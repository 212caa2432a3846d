package viz

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors the field and the surrounding panels.
type Theme struct {
	Name   string
	Fox    lipgloss.Color
	Rabbit lipgloss.Color
	Empty  lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Accent lipgloss.Color
}

var (
	ThemeClassic = Theme{
		Name:   "classic",
		Fox:    lipgloss.Color("#3366ff"),
		Rabbit: lipgloss.Color("#ffaa00"),
		Empty:  lipgloss.Color("#1c1c1c"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#666688"),
		Accent: lipgloss.Color("#00ccff"),
	}

	ThemeMeadow = Theme{
		Name:   "meadow",
		Fox:    lipgloss.Color("#d9480f"),
		Rabbit: lipgloss.Color("#f1f3f5"),
		Empty:  lipgloss.Color("#2b8a3e"),
		Text:   lipgloss.Color("#ebfbee"),
		Muted:  lipgloss.Color("#69db7c"),
		Accent: lipgloss.Color("#ffd43b"),
	}

	ThemeMono = Theme{
		Name:   "mono",
		Fox:    lipgloss.Color("#ffffff"),
		Rabbit: lipgloss.Color("#888888"),
		Empty:  lipgloss.Color("#000000"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#555555"),
		Accent: lipgloss.Color("#cccccc"),
	}
)

var themes = map[string]Theme{
	ThemeClassic.Name: ThemeClassic,
	ThemeMeadow.Name:  ThemeMeadow,
	ThemeMono.Name:    ThemeMono,
}

// CurrentTheme is the theme new renders use.
var CurrentTheme = ThemeClassic

// SetTheme switches CurrentTheme and reports whether name was known.
func SetTheme(name string) bool {
	t, ok := themes[name]
	if ok {
		CurrentTheme = t
	}
	return ok
}

func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NextTheme returns the theme after name in ThemeNames order.
func NextTheme(name string) string {
	names := ThemeNames()
	for i, n := range names {
		if n == name {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}
