// Package cycle builds the change sets for the rollover commands. It
// gathers every task and subtask of a project into a flat item list,
// then plans the reset, rename, or shift changes without touching the
// API; applying the changes is the runner's job.
package cycle

import (
	"fmt"
	"strings"

	"github.com/finance-automation/rollover/internal/asana"
	"github.com/finance-automation/rollover/internal/workday"
)

// Item is a task or subtask pulled from the project, with enough
// context to present it in previews.
type Item struct {
	Task       asana.Task
	Subtask    bool
	ParentName string
}

// Change is one pending update to a task or subtask.
type Change struct {
	GID     string
	Name    string
	Subtask bool
	Fields  asana.UpdateFields
	Notes   []string
}

// PlanReset returns a change for every completed item, marking it
// incomplete. Items that are already incomplete are left alone.
func PlanReset(items []Item) []Change {
	var changes []Change
	for _, it := range items {
		if !it.Task.Completed {
			continue
		}
		ch := Change{
			GID:     it.Task.GID,
			Name:    it.Task.Name,
			Subtask: it.Subtask,
			Fields:  asana.UpdateFields{Completed: asana.Bool(false)},
		}
		if it.ParentName != "" {
			ch.Notes = append(ch.Notes, "under: "+it.ParentName)
		}
		changes = append(changes, ch)
	}
	return changes
}

// PlanRename returns a change for every item whose name contains from,
// with every occurrence replaced by to.
func PlanRename(items []Item, from, to string) []Change {
	var changes []Change
	for _, it := range items {
		if !strings.Contains(it.Task.Name, from) {
			continue
		}
		newName := strings.ReplaceAll(it.Task.Name, from, to)
		changes = append(changes, Change{
			GID:     it.Task.GID,
			Name:    it.Task.Name,
			Subtask: it.Subtask,
			Fields:  asana.UpdateFields{Name: asana.String(newName)},
			Notes:   []string{"new name: " + newName},
		})
	}
	return changes
}

// PlanShift returns a change for every item carrying a start or due
// date, moving each date one month forward on the same working-day
// ordinal. A date whose target month has too few working days is left
// out of the change and annotated; an item where neither date can move
// produces no change at all.
func PlanShift(items []Item) []Change {
	var changes []Change
	for _, it := range items {
		if it.Task.StartOn == "" && it.Task.DueOn == "" {
			continue
		}

		ch := Change{
			GID:     it.Task.GID,
			Name:    it.Task.Name,
			Subtask: it.Subtask,
		}
		if shifted, note := shiftField("start", it.Task.StartOn); note != "" {
			ch.Fields.StartOn = shifted
			ch.Notes = append(ch.Notes, note)
		}
		if shifted, note := shiftField("due", it.Task.DueOn); note != "" {
			ch.Fields.DueOn = shifted
			ch.Notes = append(ch.Notes, note)
		}

		if !ch.Fields.IsZero() {
			changes = append(changes, ch)
		}
	}
	return changes
}

// shiftField shifts a single ISO date field. The returned pointer is
// nil when the field is empty, unparseable, or cannot keep its ordinal
// in the next month; the note explains what happened.
func shiftField(label, value string) (*string, string) {
	if value == "" {
		return nil, ""
	}

	date, err := workday.Parse(value)
	if err != nil {
		return nil, fmt.Sprintf("%s %s left unchanged: %v", label, value, err)
	}

	n := workday.Ordinal(date)
	shifted, ok := workday.ShiftToNextMonth(date)
	if !ok {
		return nil, fmt.Sprintf("%s %s (working day %d) left unchanged: next month has too few working days", label, value, n)
	}
	return asana.String(shifted.String()), fmt.Sprintf("%s %s (working day %d) -> %s", label, value, n, shifted)
}
