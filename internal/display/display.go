// Package display renders the plain (non-TUI) command output: change
// previews, per-update progress lines, and the final summary.
package display

import (
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/finance-automation/rollover/internal/cycle"
	"github.com/finance-automation/rollover/internal/runner"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5F87AF"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#87AF87"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#AF5F5F"))
)

// PreviewLimit caps how many changes the preview prints in full.
const PreviewLimit = 10

// Preview prints the planned changes, at most PreviewLimit in full,
// then a count of the rest.
func Preview(w io.Writer, title string, changes []cycle.Change) {
	fmt.Fprintln(w, titleStyle.Render(title))

	shown := changes
	if len(shown) > PreviewLimit {
		shown = shown[:PreviewLimit]
	}

	for i, ch := range shown {
		kind := "task"
		if ch.Subtask {
			kind = "subtask"
		}
		fmt.Fprintf(w, "%2d. [%s] %s\n", i+1, kind, ch.Name)
		for _, note := range ch.Notes {
			fmt.Fprintf(w, "    %s\n", subtleStyle.Render(note))
		}
	}

	if rest := len(changes) - len(shown); rest > 0 {
		fmt.Fprintln(w, subtleStyle.Render(fmt.Sprintf("... and %d more", rest)))
	}
}

// Summary prints the final success/failure counts of a run.
func Summary(w io.Writer, s runner.Summary, reportPath string) {
	fmt.Fprintf(w, "\n%s %d updated", successStyle.Render("done:"), s.Succeeded)
	if s.Failed > 0 {
		fmt.Fprintf(w, ", %s", errorStyle.Render(fmt.Sprintf("%d failed", s.Failed)))
	}
	fmt.Fprintf(w, " (%s)\n", s.Duration.Round(time.Millisecond))
	if reportPath != "" {
		fmt.Fprintln(w, subtleStyle.Render("report: "+reportPath))
	}
}

// PlainEvents prints one line per update, for runs without the TUI.
type PlainEvents struct {
	W io.Writer
}

func (p *PlainEvents) OnApplyStart(total int) {
	fmt.Fprintf(p.W, "Applying %d updates...\n", total)
}

func (p *PlainEvents) OnChangeStart(num, total int, ch cycle.Change) {
	fmt.Fprintf(p.W, "[%d/%d] %s... ", num, total, truncate(ch.Name, 50))
}

func (p *PlainEvents) OnChangeDone(num, total int, ch cycle.Change, err error) {
	if err != nil {
		fmt.Fprintln(p.W, errorStyle.Render("failed: "+err.Error()))
		return
	}
	fmt.Fprintln(p.W, successStyle.Render("ok"))
}

func (p *PlainEvents) OnApplyDone(s runner.Summary) {}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max-3]) + "..."
}
