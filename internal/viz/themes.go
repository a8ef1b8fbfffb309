package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme defines color scheme for the TUI
type Theme struct {
	Name       string
	Trace      lipgloss.Color // empty means the configured trace color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Warning    lipgloss.Color
}

var (
	ThemePhosphor = Theme{
		Name:       "phosphor",
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#e0f8ff"),
		Muted:      lipgloss.Color("#446677"),
		Accent:     lipgloss.Color("#3fcfff"),
		Warning:    lipgloss.Color("#ffaa00"),
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Trace:      lipgloss.Color("#33ff66"), // P1 green
		Background: lipgloss.Color("#001100"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Accent:     lipgloss.Color("#88ff88"),
		Warning:    lipgloss.Color("#ffff00"),
	}

	ThemeAmber = Theme{
		Name:       "amber",
		Trace:      lipgloss.Color("#ffb000"), // P3 amber
		Background: lipgloss.Color("#140a00"),
		Text:       lipgloss.Color("#ffd27f"),
		Muted:      lipgloss.Color("#6b4a10"),
		Accent:     lipgloss.Color("#ffcc33"),
		Warning:    lipgloss.Color("#ff5533"),
	}

	ThemeIce = Theme{
		Name:       "ice",
		Trace:      lipgloss.Color("#aaddff"),
		Background: lipgloss.Color("#001a33"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
		Accent:     lipgloss.Color("#ffd700"),
		Warning:    lipgloss.Color("#ffcc00"),
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Trace:      lipgloss.Color("#ffffff"),
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#888888"),
		Accent:     lipgloss.Color("#0088ff"),
		Warning:    lipgloss.Color("#ffaa00"),
	}

	Themes = []Theme{
		ThemePhosphor,
		ThemeRetroGreen,
		ThemeAmber,
		ThemeIce,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, falling back to phosphor.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemePhosphor
}

func themeIndex(name string) int {
	for i, t := range Themes {
		if t.Name == name {
			return i
		}
	}
	return 0
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// SlotStyles returns one foreground style per opacity: the trace color
// blended over the theme background. fallback is used when the theme has
// no trace color of its own.
func (t Theme) SlotStyles(opacities []float64, fallback colorful.Color) []lipgloss.Style {
	trace := fallback
	if t.Trace != "" {
		if c, err := colorful.Hex(string(t.Trace)); err == nil {
			trace = c
		}
	}
	bg, err := colorful.Hex(string(t.Background))
	if err != nil {
		bg = colorful.Color{}
	}

	styles := make([]lipgloss.Style, len(opacities))
	for i, a := range opacities {
		c := bg.BlendRgb(trace, a).Clamped()
		styles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex()))
	}
	return styles
}
