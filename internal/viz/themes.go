package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the two spin states and the panel accents.
type Theme struct {
	Name   string
	Up     lipgloss.Color
	Down   lipgloss.Color
	Accent lipgloss.Color
	Muted  lipgloss.Color
}

var (
	ThemeClassic = Theme{
		Name:   "classic",
		Up:     lipgloss.Color("#f5f5f5"),
		Down:   lipgloss.Color("#1c1c1c"),
		Accent: lipgloss.Color("#00ccff"),
		Muted:  lipgloss.Color("#666688"),
	}

	ThemeThermal = Theme{
		Name:   "thermal",
		Up:     lipgloss.Color("#ff4757"),
		Down:   lipgloss.Color("#1e90ff"),
		Accent: lipgloss.Color("#feca57"),
		Muted:  lipgloss.Color("#8b6b8c"),
	}

	ThemeRetroGreen = Theme{
		Name:   "retro",
		Up:     lipgloss.Color("#00ff00"),
		Down:   lipgloss.Color("#001100"),
		Accent: lipgloss.Color("#88ff88"),
		Muted:  lipgloss.Color("#005500"),
	}

	Themes = []Theme{
		ThemeClassic,
		ThemeThermal,
		ThemeRetroGreen,
	}
)

// GetTheme returns a theme by name, falling back to classic.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// nextTheme returns the theme after name, wrapping around.
func nextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}
