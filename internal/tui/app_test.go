package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/finance-automation/rollover/internal/asana"
	"github.com/finance-automation/rollover/internal/cycle"
	"github.com/finance-automation/rollover/internal/runner"
)

func TestModelTracksProgress(t *testing.T) {
	m := NewModel("Shifting dates", 3, nil)

	var model tea.Model = m
	model, _ = model.Update(ChangeStartedMsg{Num: 1, Total: 3, Name: "first task"})
	model, _ = model.Update(ChangeDoneMsg{Num: 1, Name: "first task"})
	model, _ = model.Update(ChangeStartedMsg{Num: 2, Total: 3, Name: "second task"})

	view := model.View()
	for _, want := range []string{"Shifting dates", "1/3", "second task"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModelRecordsFailures(t *testing.T) {
	var model tea.Model = NewModel("Resetting", 2, nil)

	model, _ = model.Update(ChangeDoneMsg{Num: 1, Name: "bad task", Err: errors.New("rejected")})
	model, cmd := model.Update(ApplyDoneMsg{Summary: runner.Summary{Succeeded: 1, Failed: 1, Total: 2}})

	if cmd == nil {
		t.Fatal("ApplyDoneMsg did not quit the program")
	}

	view := model.View()
	for _, want := range []string{"1 updated", "1 failed", "bad task: rejected"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModelCancelsOnKeypress(t *testing.T) {
	cancelled := false
	cancel := context.CancelFunc(func() { cancelled = true })

	var model tea.Model = NewModel("Renaming", 2, cancel)
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	if !cancelled {
		t.Error("ctrl+c did not invoke cancel")
	}
	if view := model.View(); !strings.Contains(view, "cancelling") {
		t.Errorf("view does not show cancelling state:\n%s", view)
	}

	// Further keypresses while cancelling are ignored; the view only
	// exits once the runner has delivered its results.
	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd != nil {
		t.Error("keypress while cancelling should not quit")
	}
}

type countingUpdater struct {
	mu    sync.Mutex
	calls int
}

func (u *countingUpdater) UpdateTask(ctx context.Context, gid string, fields asana.UpdateFields) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.calls++
	return nil
}

func (u *countingUpdater) count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.calls
}

func TestRunReturnsSettledResults(t *testing.T) {
	updater := &countingUpdater{}
	r := runner.New(updater).WithDelay(0)

	changes := []cycle.Change{
		{GID: "1", Name: "first", Fields: asana.UpdateFields{Completed: asana.Bool(false)}},
		{GID: "2", Name: "second", Fields: asana.UpdateFields{Completed: asana.Bool(false)}},
	}

	summary, outcomes, err := Run(context.Background(), "Resetting", r, changes,
		tea.WithInput(strings.NewReader("")), tea.WithoutRenderer())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Succeeded != 2 || summary.Failed != 0 {
		t.Errorf("summary = %d succeeded, %d failed, want 2, 0", summary.Succeeded, summary.Failed)
	}
	if len(outcomes) != 2 {
		t.Errorf("got %d outcomes, want 2", len(outcomes))
	}
	if got := updater.count(); got != 2 {
		t.Errorf("updater called %d times, want 2", got)
	}
}
