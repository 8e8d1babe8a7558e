package formatter

import (
	"fmt"
	"strings"

	"github.com/vocuz/vocuz/internal/domain"
	"github.com/vocuz/vocuz/internal/service"
)

const statsBarWidth = 20

// FormatSessionList renders logged intervals. titles maps mission ids to
// titles; unknown ids are shown truncated.
func FormatSessionList(sessions []*domain.FocusSession, titles map[string]string) string {
	if len(sessions) == 0 {
		return RenderBox("Sessions", Dim("No sessions found."))
	}
	headers := []string{"WHEN", "MODE", "DURATION", "MISSION"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		mission := Dim("--")
		if s.MissionID != nil {
			if t, ok := titles[*s.MissionID]; ok {
				mission = StyleFg.Render(Truncate(t, 40))
			} else {
				mission = TruncID(*s.MissionID)
			}
		}
		rows = append(rows, []string{
			Dim(HumanTimestamp(s.CreatedAt)),
			ModeBadge(s.Mode),
			FormatMinutes(s.DurationMinutes),
			mission,
		})
	}
	return RenderBox("Sessions", RenderTable(headers, rows))
}

// FormatStats renders per-mode totals with a bar relative to the busiest mode.
func FormatStats(stats *service.SessionStats) string {
	var b strings.Builder

	most := 0
	for _, m := range stats.ByMode {
		most = max(most, m.TotalMinutes)
	}
	if most == 0 {
		b.WriteString(Dim("No completed intervals in this window.") + "\n")
	} else {
		headers := []string{"MODE", "SESSIONS", "TIME", ""}
		rows := make([][]string, 0, len(stats.ByMode))
		for _, m := range stats.ByMode {
			rows = append(rows, []string{
				ModeBadge(m.Mode),
				fmt.Sprintf("%d", m.SessionCount),
				FormatMinutes(m.TotalMinutes),
				RenderProgress(float64(m.TotalMinutes)/float64(most), statsBarWidth, ModeColor(m.Mode)),
			})
		}
		b.WriteString(RenderTable(headers, rows))
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s focused · %s · %s",
		Bold(FormatMinutes(stats.FocusMinutes)),
		StyleGreen.Render(fmt.Sprintf("%d missions done", stats.CompletedMissions)),
		StyleYellow.Render(fmt.Sprintf("%d pending", stats.PendingMissions)),
	))
	return RenderBox(fmt.Sprintf("Last %d days", stats.Days), b.String())
}

func FormatProfile(p *service.Profile) string {
	var b strings.Builder
	b.WriteString(Bold(p.User.DisplayName()) + "\n")
	b.WriteString(Dim(p.User.Email) + "\n")
	b.WriteString(Dim("member since "+p.User.CreatedAt.Format("Jan 2, 2006")) + "\n\n")
	b.WriteString(FormatStats(p.Stats))
	return RenderBox("Profile", b.String())
}
