package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the colour of every bar role and the surrounding chrome.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Bar       lipgloss.Color
	Highlight lipgloss.Color
	Compare   lipgloss.Color
	Swap      lipgloss.Color
	Found     lipgloss.Color
	Error     lipgloss.Color
}

var (
	ThemeDefault = Theme{
		Name:      "default",
		Primary:   lipgloss.Color("86"),
		Secondary: lipgloss.Color("252"),
		Text:      lipgloss.Color("255"),
		Muted:     lipgloss.Color("242"),
		Bar:       lipgloss.Color("39"),
		Highlight: lipgloss.Color("220"),
		Compare:   lipgloss.Color("213"),
		Swap:      lipgloss.Color("203"),
		Found:     lipgloss.Color("82"),
		Error:     lipgloss.Color("196"),
	}

	ThemeCyberpunk = Theme{
		Name:      "cyberpunk",
		Primary:   lipgloss.Color("#ff00ff"),
		Secondary: lipgloss.Color("#00ffff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#666666"),
		Bar:       lipgloss.Color("#00ffff"),
		Highlight: lipgloss.Color("#ffff00"),
		Compare:   lipgloss.Color("#ff00ff"),
		Swap:      lipgloss.Color("#ff8800"),
		Found:     lipgloss.Color("#00ff00"),
		Error:     lipgloss.Color("#ff0000"),
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Primary:   lipgloss.Color("#00ff00"),
		Secondary: lipgloss.Color("#00cc00"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Bar:       lipgloss.Color("#00aa00"),
		Highlight: lipgloss.Color("#88ff88"),
		Compare:   lipgloss.Color("#ccffcc"),
		Swap:      lipgloss.Color("#ffff00"),
		Found:     lipgloss.Color("#ffffff"),
		Error:     lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#0077be"),
		Secondary: lipgloss.Color("#00a8cc"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Bar:       lipgloss.Color("#00a8cc"),
		Highlight: lipgloss.Color("#ffd700"),
		Compare:   lipgloss.Color("#ff9ff3"),
		Swap:      lipgloss.Color("#ff4444"),
		Found:     lipgloss.Color("#00ff88"),
		Error:     lipgloss.Color("#ff4444"),
	}

	Themes = []Theme{ThemeDefault, ThemeCyberpunk, ThemeRetroGreen, ThemeOcean}
)

// GetTheme returns a theme by name, falling back to the default.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDefault
}

// NextTheme cycles through Themes after the named one.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
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
