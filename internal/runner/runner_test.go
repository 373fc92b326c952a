package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/finance-automation/rollover/internal/asana"
	"github.com/finance-automation/rollover/internal/cycle"
)

// fakeUpdater applies fn per call and records the order of GIDs.
type fakeUpdater struct {
	fn    func(gid string) error
	calls []string
}

func (f *fakeUpdater) UpdateTask(ctx context.Context, taskID string, fields asana.UpdateFields) error {
	f.calls = append(f.calls, taskID)
	if f.fn != nil {
		return f.fn(taskID)
	}
	return nil
}

type eventLog struct {
	started   int
	done      int
	applyDone bool
}

func (e *eventLog) OnApplyStart(total int)                                  {}
func (e *eventLog) OnChangeStart(num, total int, ch cycle.Change)           { e.started++ }
func (e *eventLog) OnChangeDone(num, total int, ch cycle.Change, err error) { e.done++ }
func (e *eventLog) OnApplyDone(s Summary)                                   { e.applyDone = true }

func changes(gids ...string) []cycle.Change {
	out := make([]cycle.Change, len(gids))
	for i, gid := range gids {
		out[i] = cycle.Change{GID: gid, Name: "task " + gid}
	}
	return out
}

func TestApplyCountsOutcomes(t *testing.T) {
	updater := &fakeUpdater{fn: func(gid string) error {
		if gid == "2" {
			return errors.New("rejected")
		}
		return nil
	}}
	events := &eventLog{}

	summary, outcomes, err := New(updater).WithDelay(0).WithEvents(events).
		Apply(context.Background(), changes("1", "2", "3"))
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	if summary.Succeeded != 2 || summary.Failed != 1 || summary.Total != 3 {
		t.Errorf("summary = %+v, want 2 succeeded, 1 failed of 3", summary)
	}
	if len(outcomes) != 3 {
		t.Fatalf("got %d outcomes, want 3", len(outcomes))
	}
	if outcomes[1].Err == nil {
		t.Error("failed change has no recorded error")
	}
	if outcomes[0].Err != nil || outcomes[2].Err != nil {
		t.Error("successful changes carry errors")
	}

	// A failure does not stop the run.
	if got := len(updater.calls); got != 3 {
		t.Errorf("updater called %d times, want 3", got)
	}
	if events.started != 3 || events.done != 3 || !events.applyDone {
		t.Errorf("events = %+v, want 3 starts, 3 dones, apply done", events)
	}
}

func TestApplyStopsOnCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	updater := &fakeUpdater{fn: func(gid string) error {
		if gid == "1" {
			cancel()
		}
		return nil
	}}

	summary, outcomes, err := New(updater).WithDelay(0).Apply(ctx, changes("1", "2", "3"))
	if err != context.Canceled {
		t.Fatalf("Apply = %v, want context.Canceled", err)
	}

	if len(updater.calls) != 1 {
		t.Errorf("updater called %d times after cancel, want 1", len(updater.calls))
	}
	if summary.Succeeded != 1 || summary.Failed != 0 {
		t.Errorf("summary = %+v, want the one completed update counted", summary)
	}
	if len(outcomes) != 1 {
		t.Errorf("got %d outcomes, want 1", len(outcomes))
	}
}

func TestApplyEmptyChangeSet(t *testing.T) {
	updater := &fakeUpdater{}
	events := &eventLog{}

	summary, outcomes, err := New(updater).WithDelay(0).WithEvents(events).
		Apply(context.Background(), nil)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if summary.Total != 0 || len(outcomes) != 0 {
		t.Errorf("summary = %+v with %d outcomes, want empty", summary, len(outcomes))
	}
	if !events.applyDone {
		t.Error("OnApplyDone not called for empty change set")
	}
}
