package session

import (
	"fmt"
	"strings"

	"github.com/amonks/contestsim/internal/ui"
)

// ScoreLine renders "X / Max pts".
func (v View) ScoreLine() string {
	return fmt.Sprintf("%d / %d pts", v.Score, v.MaxScore)
}

// Markdown renders the results screen as a markdown document.
func (v View) Markdown() string {
	var b strings.Builder
	b.WriteString("# Contest results\n\n")
	fmt.Fprintf(&b, "- **Score:** %s\n", v.ScoreLine())
	fmt.Fprintf(&b, "- **Solved:** %d of %d\n", v.Solved, len(v.Rows))
	fmt.Fprintf(&b, "- **Effective time:** %d min\n", v.EffectiveTime)
	if v.Verdict != "" {
		fmt.Fprintf(&b, "- **Verdict:** %s\n", v.Verdict)
	}
	if v.Username != "" {
		fmt.Fprintf(&b, "- **User:** %s\n", v.Username)
	}

	b.WriteString("\n| # | Problem | Difficulty | Points | Time | Fails |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- |\n")
	for i, row := range v.Rows {
		title := escapeCell(row.Title)
		if !row.Solved {
			title = fmt.Sprintf("[%s](%s)", title, row.URL)
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %d/%d | %s | %d |\n",
			i+1,
			title,
			row.Difficulty,
			row.Earned,
			row.Points,
			ui.FormatMinutes(row.TimeTaken, row.Solved),
			row.Fails,
		)
	}
	return b.String()
}

func escapeCell(value string) string {
	return strings.ReplaceAll(value, "|", `\|`)
}
