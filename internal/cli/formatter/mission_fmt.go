package formatter

import (
	"fmt"
	"strings"

	"github.com/vocuz/vocuz/internal/domain"
)

// FormatMissionList renders missions as a numbered table. The numbers are the
// 1-based positions the CLI accepts in place of ids.
func FormatMissionList(missions []*domain.Mission) string {
	if len(missions) == 0 {
		return RenderBox("Missions", Dim("No missions yet. Add one with: vocuz mission add \"title\""))
	}

	headers := []string{"#", "", "MISSION", "ID", "ADDED"}
	rows := make([][]string, 0, len(missions))
	pending := 0
	for i, m := range missions {
		title := StyleFg.Render(m.Title)
		if m.IsCompleted {
			title = Dim(m.Title)
		} else {
			pending++
		}
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%d", i+1)),
			MissionCheck(m.IsCompleted),
			title,
			TruncID(m.ID),
			Dim(HumanTimestamp(m.CreatedAt)),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable(headers, rows))
	b.WriteString("\n")
	b.WriteString(StyleYellow.Render(fmt.Sprintf("%d pending", pending)))
	b.WriteString(Dim(fmt.Sprintf(" · %d done", len(missions)-pending)))
	return RenderBox("Missions", b.String())
}
