package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vocuz/vocuz/internal/domain"
)

// Palette is the set of colors a theme assigns to each role.
type Palette struct {
	Accent lipgloss.Color
	Good   lipgloss.Color
	Warn   lipgloss.Color
	Bad    lipgloss.Color
	Info   lipgloss.Color
	Muted  lipgloss.Color
	Fg     lipgloss.Color
}

var palettes = map[domain.Theme]Palette{
	domain.ThemeDark: {
		Accent: "#fe8019", Good: "#8ec07c", Warn: "#fabd2f", Bad: "#fb4934",
		Info: "#83a598", Muted: "#928374", Fg: "#ebdbb2",
	},
	domain.ThemeLight: {
		Accent: "#af3a03", Good: "#427b58", Warn: "#b57614", Bad: "#9d0006",
		Info: "#076678", Muted: "#7c6f64", Fg: "#3c3836",
	},
	domain.ThemeMint: {
		Accent: "#2ec4b6", Good: "#6ede8a", Warn: "#ffd166", Bad: "#ef476f",
		Info: "#80ffdb", Muted: "#7a9e9f", Fg: "#e0fbfc",
	},
	domain.ThemeBrown: {
		Accent: "#d4a373", Good: "#a3b18a", Warn: "#e9c46a", Bad: "#bc4749",
		Info: "#ccd5ae", Muted: "#8d7b68", Fg: "#faedcd",
	},
}

// Active colors and styles. ApplyTheme rebinds them.
var (
	ColorGreen, ColorYellow, ColorRed, ColorBlue lipgloss.Color
	ColorDim, ColorFg, ColorHeader               lipgloss.Color

	StyleGreen, StyleYellow, StyleRed, StyleBlue lipgloss.Style
	StyleDim, StyleFg, StyleHeader, StyleBold    lipgloss.Style

	activeTheme domain.Theme
)

func init() {
	ApplyTheme(domain.DefaultTheme)
}

// ApplyTheme switches every style to the theme's palette. Unknown themes
// fall back to the default one.
func ApplyTheme(theme domain.Theme) {
	p, ok := palettes[theme]
	if !ok {
		theme = domain.DefaultTheme
		p = palettes[theme]
	}
	activeTheme = theme

	ColorGreen, ColorYellow, ColorRed, ColorBlue = p.Good, p.Warn, p.Bad, p.Info
	ColorDim, ColorFg, ColorHeader = p.Muted, p.Fg, p.Accent

	StyleGreen = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
}

func ActiveTheme() domain.Theme { return activeTheme }

// ThemePalette returns the palette of theme and whether it exists.
func ThemePalette(theme domain.Theme) (Palette, bool) {
	p, ok := palettes[theme]
	return p, ok
}

// ModeColor is the accent used for a timer mode.
func ModeColor(mode domain.TimerMode) lipgloss.Color {
	switch mode {
	case domain.ModeShort:
		return ColorGreen
	case domain.ModeLong:
		return ColorBlue
	default:
		return ColorHeader
	}
}

// Header renders a section header with the header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
