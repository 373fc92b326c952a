// Package tui renders the interactive apply view: a spinner, a progress
// bar, and the line currently being updated, fed by runner events.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/finance-automation/rollover/internal/cycle"
	"github.com/finance-automation/rollover/internal/runner"
	"github.com/finance-automation/rollover/internal/tui/components"
	"github.com/finance-automation/rollover/internal/tui/styles"
)

type applyState int

const (
	stateRunning applyState = iota
	stateCancelling
	stateDone
)

// ChangeStartedMsg is sent before each update.
type ChangeStartedMsg struct {
	Num   int
	Total int
	Name  string
}

// ChangeDoneMsg is sent after each update with its outcome.
type ChangeDoneMsg struct {
	Num  int
	Name string
	Err  error
}

// ApplyDoneMsg signals that the run has finished.
type ApplyDoneMsg struct {
	Summary runner.Summary
}

// Model is the bubbletea model for the apply view.
type Model struct {
	title   string
	state   applyState
	spinner spinner.Model

	total   int
	done    int
	failed  int
	current string
	errs    []string

	summary runner.Summary
	cancel  context.CancelFunc
}

// NewModel creates the apply view for a run of total changes. cancel is
// invoked when the user interrupts the run.
func NewModel(title string, total int, cancel context.CancelFunc) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SubtleStyle
	return Model{
		title:   title,
		spinner: sp,
		total:   total,
		cancel:  cancel,
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			switch m.state {
			case stateRunning:
				m.state = stateCancelling
				if m.cancel != nil {
					m.cancel()
				}
				return m, nil
			case stateCancelling:
				// The runner is still winding down; ApplyDoneMsg will
				// quit once its results are settled.
				return m, nil
			default:
				return m, tea.Quit
			}
		}

	case ChangeStartedMsg:
		m.current = msg.Name
		return m, nil

	case ChangeDoneMsg:
		m.done = msg.Num
		if msg.Err != nil {
			m.failed++
			m.errs = append(m.errs, fmt.Sprintf("%s: %v", msg.Name, msg.Err))
		}
		return m, nil

	case ApplyDoneMsg:
		m.state = stateDone
		m.summary = msg.Summary
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(m.title))
	b.WriteString("\n\n")

	bar := components.Progress{Current: m.done, Total: m.total, Width: 30}
	b.WriteString(bar.View())
	b.WriteString("\n")

	switch m.state {
	case stateRunning:
		b.WriteString(fmt.Sprintf("%s updating %s\n", m.spinner.View(), m.current))
		b.WriteString(styles.SubtleStyle.Render("press q to cancel"))
	case stateCancelling:
		b.WriteString(styles.SubtleStyle.Render("cancelling, finishing current update..."))
	case stateDone:
		b.WriteString(styles.SuccessStyle.Render(fmt.Sprintf("done: %d updated", m.summary.Succeeded)))
		if m.summary.Failed > 0 {
			b.WriteString(styles.ErrorStyle.Render(fmt.Sprintf(", %d failed", m.summary.Failed)))
		}
	}
	b.WriteString("\n")

	for _, e := range m.errs {
		b.WriteString(styles.ErrorStyle.Render("  " + e))
		b.WriteString("\n")
	}

	return b.String()
}

// programEvents forwards runner events into a running tea.Program.
type programEvents struct {
	p *tea.Program
}

func (e programEvents) OnApplyStart(total int) {}

func (e programEvents) OnChangeStart(num, total int, ch cycle.Change) {
	e.p.Send(ChangeStartedMsg{Num: num, Total: total, Name: ch.Name})
}

func (e programEvents) OnChangeDone(num, total int, ch cycle.Change, err error) {
	e.p.Send(ChangeDoneMsg{Num: num, Name: ch.Name, Err: err})
}

// OnApplyDone is a no-op; Run sends ApplyDoneMsg itself once Apply has
// returned, so the final message always carries the settled results.
func (e programEvents) OnApplyDone(s runner.Summary) {}

// Run drives an apply run under the interactive view and returns the
// runner's results once the view has exited.
func Run(ctx context.Context, title string, r *runner.Runner, changes []cycle.Change, opts ...tea.ProgramOption) (runner.Summary, []runner.Outcome, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewModel(title, len(changes), cancel), opts...)

	var (
		summary  runner.Summary
		outcomes []runner.Outcome
		runErr   error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		summary, outcomes, runErr = r.WithEvents(programEvents{p: p}).Apply(ctx, changes)
		p.Send(ApplyDoneMsg{Summary: summary})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		return summary, outcomes, fmt.Errorf("apply view failed: %w", err)
	}
	<-done
	return summary, outcomes, runErr
}
