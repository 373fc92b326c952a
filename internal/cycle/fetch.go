package cycle

import (
	"context"
	"fmt"
	"time"

	"github.com/finance-automation/rollover/internal/asana"
	"github.com/finance-automation/rollover/internal/util"
)

// DefaultSubtaskDelay is the pause between subtask list requests while
// scanning a project, kept to stay under Asana's rate limits.
const DefaultSubtaskDelay = 150 * time.Millisecond

// FetchProgress receives callbacks while a project is being read.
// The subtask scan dominates the runtime on large projects.
type FetchProgress interface {
	// OnTasksListed is called once the project's top-level tasks are in.
	OnTasksListed(count int)

	// OnSubtaskScan is called after each task's subtasks were fetched.
	OnSubtaskScan(done, total int)

	// OnSubtaskError is called when one task's subtasks could not be
	// fetched; the scan skips the task and continues.
	OnSubtaskError(taskName string, err error)
}

// Fetcher reads all tasks and subtasks of a project into a flat item
// list.
type Fetcher struct {
	client *asana.Client
	delay  time.Duration
}

// NewFetcher creates a Fetcher with the default inter-request delay.
func NewFetcher(client *asana.Client) *Fetcher {
	return &Fetcher{client: client, delay: DefaultSubtaskDelay}
}

// WithDelay overrides the pause between subtask requests.
func (f *Fetcher) WithDelay(d time.Duration) *Fetcher {
	f.delay = d
	return f
}

// Items lists the project's tasks, then each task's subtasks, in order.
// fields selects the opt_fields requested for both. A failing subtask
// fetch is reported through progress and skipped; a failing task list
// aborts the fetch.
func (f *Fetcher) Items(ctx context.Context, projectID string, fields []string, progress FetchProgress) ([]Item, error) {
	tasks, err := f.client.ListTasks(ctx, projectID, fields)
	if err != nil {
		return nil, fmt.Errorf("list tasks of project %s: %w", projectID, err)
	}
	if progress != nil {
		progress.OnTasksListed(len(tasks))
	}

	items := make([]Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, Item{Task: t})
	}

	for i, t := range tasks {
		subs, err := f.client.ListSubtasks(ctx, t.GID, fields)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if progress != nil {
				progress.OnSubtaskError(t.Name, err)
			}
		}
		for _, s := range subs {
			items = append(items, Item{Task: s, Subtask: true, ParentName: t.Name})
		}

		if progress != nil {
			progress.OnSubtaskScan(i+1, len(tasks))
		}
		if i < len(tasks)-1 {
			if err := util.Sleep(ctx, f.delay); err != nil {
				return nil, err
			}
		}
	}

	return items, nil
}
