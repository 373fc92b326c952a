// Package runner applies a planned change set to Asana, one update at a
// time. Failures are counted and reported, never retried; the run keeps
// going with the next change.
package runner

import (
	"context"
	"time"

	"github.com/finance-automation/rollover/internal/asana"
	"github.com/finance-automation/rollover/internal/cycle"
	"github.com/finance-automation/rollover/internal/util"
)

// DefaultUpdateDelay is the pause between task updates, kept to stay
// under Asana's rate limits.
const DefaultUpdateDelay = 500 * time.Millisecond

// TaskUpdater is the single API operation the runner needs.
type TaskUpdater interface {
	UpdateTask(ctx context.Context, taskID string, fields asana.UpdateFields) error
}

// Events receives callbacks during an apply run. Implement this in the
// TUI or the plain printer to follow progress.
type Events interface {
	// OnApplyStart is called once before the first update.
	OnApplyStart(total int)

	// OnChangeStart is called before each update. num is 1-based.
	OnChangeStart(num, total int, change cycle.Change)

	// OnChangeDone is called after each update with its outcome.
	OnChangeDone(num, total int, change cycle.Change, err error)

	// OnApplyDone is called once after the last update, or after
	// cancellation.
	OnApplyDone(summary Summary)
}

// Summary is the outcome of an apply run.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Duration  time.Duration
}

// Outcome records what happened to a single change.
type Outcome struct {
	Change cycle.Change
	Err    error
}

// Runner applies changes sequentially.
type Runner struct {
	updater TaskUpdater
	delay   time.Duration
	events  Events
}

// New creates a Runner with the default inter-update delay.
func New(updater TaskUpdater) *Runner {
	return &Runner{updater: updater, delay: DefaultUpdateDelay}
}

// WithDelay overrides the pause between updates.
func (r *Runner) WithDelay(d time.Duration) *Runner {
	r.delay = d
	return r
}

// WithEvents sets the event receiver.
func (r *Runner) WithEvents(e Events) *Runner {
	r.events = e
	return r
}

// Apply sends every change to the API in order. It stops early when the
// context is cancelled and returns the context error along with the
// partial summary; individual update failures do not stop the run.
func (r *Runner) Apply(ctx context.Context, changes []cycle.Change) (Summary, []Outcome, error) {
	start := time.Now()
	summary := Summary{Total: len(changes)}
	outcomes := make([]Outcome, 0, len(changes))

	if r.events != nil {
		r.events.OnApplyStart(len(changes))
	}

	for i, ch := range changes {
		if ctx.Err() != nil {
			break
		}

		if r.events != nil {
			r.events.OnChangeStart(i+1, len(changes), ch)
		}

		err := r.updater.UpdateTask(ctx, ch.GID, ch.Fields)
		if err != nil && ctx.Err() != nil {
			// Cancelled mid-request; don't count it as a failure.
			break
		}
		if err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
		outcomes = append(outcomes, Outcome{Change: ch, Err: err})

		if r.events != nil {
			r.events.OnChangeDone(i+1, len(changes), ch, err)
		}

		if i < len(changes)-1 {
			if err := util.Sleep(ctx, r.delay); err != nil {
				break
			}
		}
	}

	summary.Duration = time.Since(start)
	if r.events != nil {
		r.events.OnApplyDone(summary)
	}
	return summary, outcomes, ctx.Err()
}
