package formatter

import (
	"strings"

	"github.com/vocuz/vocuz/internal/domain"
)

const notePreviewLen = 48

func FormatNoteList(notes []*domain.Note) string {
	if len(notes) == 0 {
		return RenderBox("Second Brain", Dim("Nothing captured yet."))
	}
	headers := []string{"ID", "TITLE", "PREVIEW", "UPDATED"}
	rows := make([][]string, 0, len(notes))
	for _, n := range notes {
		preview := strings.Join(strings.Fields(n.Description), " ")
		rows = append(rows, []string{
			TruncID(n.ID),
			Bold(n.Title),
			Dim(Truncate(preview, notePreviewLen)),
			Dim(HumanTimestamp(n.UpdatedAt)),
		})
	}
	return RenderBox("Second Brain", RenderTable(headers, rows))
}

// FormatNote renders a single note in full.
func FormatNote(n *domain.Note) string {
	var b strings.Builder
	b.WriteString(Bold(n.Title) + "\n")
	b.WriteString(Dim("updated "+HumanTimestamp(n.UpdatedAt)) + "\n")
	if d := strings.TrimSpace(n.Description); d != "" {
		b.WriteString("\n" + StyleFg.Render(d))
	}
	return RenderBox("Note", b.String())
}
