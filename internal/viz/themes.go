package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name     string
	Body     lipgloss.Color
	Title    lipgloss.Color
	Label    lipgloss.Color
	Value    lipgloss.Color
	Key      lipgloss.Color
	Selected lipgloss.Color
	Playhead lipgloss.Color
	Muted    lipgloss.Color
	Warning  lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:     "cyberpunk",
		Body:     lipgloss.Color("#00ffff"),
		Title:    lipgloss.Color("#ff00ff"),
		Label:    lipgloss.Color("#888899"),
		Value:    lipgloss.Color("#ffffff"),
		Key:      lipgloss.Color("#ffff00"),
		Selected: lipgloss.Color("#ff00ff"),
		Playhead: lipgloss.Color("#00ff88"),
		Muted:    lipgloss.Color("#444466"),
		Warning:  lipgloss.Color("#ff8800"),
	}

	ThemeRetroGreen = Theme{
		Name:     "retro",
		Body:     lipgloss.Color("#00ff00"),
		Title:    lipgloss.Color("#88ff88"),
		Label:    lipgloss.Color("#00aa00"),
		Value:    lipgloss.Color("#00ff00"),
		Key:      lipgloss.Color("#88ff88"),
		Selected: lipgloss.Color("#ffff00"),
		Playhead: lipgloss.Color("#ccffcc"),
		Muted:    lipgloss.Color("#005500"),
		Warning:  lipgloss.Color("#ffff00"),
	}

	ThemeOcean = Theme{
		Name:     "ocean",
		Body:     lipgloss.Color("#00a8cc"),
		Title:    lipgloss.Color("#ffd700"),
		Label:    lipgloss.Color("#4488aa"),
		Value:    lipgloss.Color("#e0f0ff"),
		Key:      lipgloss.Color("#ffd700"),
		Selected: lipgloss.Color("#ff4444"),
		Playhead: lipgloss.Color("#00ff88"),
		Muted:    lipgloss.Color("#224466"),
		Warning:  lipgloss.Color("#ffcc00"),
	}

	Themes = []Theme{ThemeCyberpunk, ThemeRetroGreen, ThemeOcean}
)

// GetTheme returns a theme by name, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// styles are the rendered forms of a theme.
type styles struct {
	body, title, label, value lipgloss.Style
	key, selected, playhead   lipgloss.Style
	muted, warning, graph     lipgloss.Style
	panel                     lipgloss.Style
}

func newStyles(t Theme) styles {
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	return styles{
		body:     fg(t.Body).Padding(0, 1),
		title:    fg(t.Title).Bold(true).MarginBottom(1),
		label:    fg(t.Label).Width(12),
		value:    fg(t.Value),
		key:      fg(t.Key).Bold(true),
		selected: fg(t.Selected).Bold(true).Reverse(true),
		playhead: fg(t.Playhead).Bold(true),
		muted:    fg(t.Muted),
		warning:  fg(t.Warning).Bold(true),
		graph:    fg(t.Body).Padding(1, 0),
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(0, 2),
	}
}
