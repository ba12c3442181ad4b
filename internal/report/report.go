// Package report renders the end-of-run summary of written score files.
// Pure presentation; a run's correctness never depends on it.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/zerospeech/zrc2021/internal/score"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A78BFA"))

	fileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981"))

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF"))
)

// Summary writes a compact listing of the score files a run produced.
// lipgloss degrades to plain text when w is not a color-capable terminal.
func Summary(w io.Writer, written []score.Written) {
	if len(written) == 0 {
		fmt.Fprintln(w, titleStyle.Render("no score files written"))
		return
	}

	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("wrote %d score file(s)", len(written))))
	for _, file := range written {
		fmt.Fprintf(w, "  %s %s\n",
			fileStyle.Render(file.Name),
			countStyle.Render(fmt.Sprintf("(%d rows)", file.Rows)))
	}
}
