package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vocuz/vocuz/internal/domain"
)

// FormatTimerSettings lists the configured duration of each mode.
func FormatTimerSettings(s domain.TimerSettings, theme domain.Theme) string {
	rows := make([][]string, 0, len(domain.TimerModes))
	for _, mode := range domain.TimerModes {
		rows = append(rows, []string{ModeBadge(mode), fmt.Sprintf("%d min", s.Minutes(mode))})
	}
	var b strings.Builder
	b.WriteString(RenderTable([]string{"MODE", "DURATION"}, rows))
	b.WriteString("\n" + Dim("theme: ") + StyleFg.Render(domain.ValidThemes[theme]))
	return RenderBox("Settings", b.String())
}

// FormatThemes lists the available themes, marking the active one.
func FormatThemes(active domain.Theme) string {
	ids := make([]string, 0, len(domain.ValidThemes))
	for t := range domain.ValidThemes {
		ids = append(ids, string(t))
	}
	sort.Strings(ids)

	var b strings.Builder
	for _, id := range ids {
		t := domain.Theme(id)
		p, _ := ThemePalette(t)
		swatch := ""
		for _, c := range []lipgloss.Color{p.Accent, p.Good, p.Info, p.Fg} {
			swatch += lipgloss.NewStyle().Foreground(c).Render("■")
		}
		marker := "  "
		if t == active {
			marker = StyleGreen.Render("● ")
		}
		b.WriteString(fmt.Sprintf("%s%-6s %s %s\n", marker, id, swatch, Dim(domain.ValidThemes[t])))
	}
	return RenderBox("Themes", strings.TrimRight(b.String(), "\n"))
}
