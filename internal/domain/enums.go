package domain

import "fmt"

// TimerMode identifies one of the three countdown types.
type TimerMode string

const (
	ModeFocus TimerMode = "focus"
	ModeShort TimerMode = "short"
	ModeLong  TimerMode = "long"
)

// TimerModes lists every mode in display order.
var TimerModes = []TimerMode{ModeFocus, ModeShort, ModeLong}

// ParseTimerMode accepts the canonical mode names plus the long-form aliases
// used in the CLI ("short-break", "long-break").
func ParseTimerMode(s string) (TimerMode, error) {
	switch s {
	case "focus", "deep":
		return ModeFocus, nil
	case "short", "short-break", "shortBreak":
		return ModeShort, nil
	case "long", "long-break", "longBreak":
		return ModeLong, nil
	}
	return "", fmt.Errorf("%w %q (want focus, short or long)", ErrUnknownMode, s)
}

// Label returns the human name of the mode.
func (m TimerMode) Label() string {
	switch m {
	case ModeFocus:
		return "Deep Locked In"
	case ModeShort:
		return "Short Break"
	case ModeLong:
		return "Long Break"
	default:
		return string(m)
	}
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeMint  Theme = "mint"
	ThemeBrown Theme = "brown"
)

// DefaultTheme is applied when no preference has been saved.
const DefaultTheme = ThemeDark

// ValidThemes is the canonical set of accepted theme ids.
var ValidThemes = map[Theme]string{
	ThemeLight: "Light",
	ThemeDark:  "Dark",
	ThemeMint:  "Mint Focus",
	ThemeBrown: "Calm Brown",
}

// ParseTheme validates a theme id.
func ParseTheme(s string) (Theme, error) {
	t := Theme(s)
	if _, ok := ValidThemes[t]; !ok {
		return "", fmt.Errorf("unknown theme %q (want light, dark, mint or brown)", s)
	}
	return t, nil
}
