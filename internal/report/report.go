// Package report persists a JSON record of every apply run under
// .rollover/runs/, so a month's maintenance leaves an audit trail and
// the history command has something to list.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/finance-automation/rollover/internal/runner"
	"github.com/finance-automation/rollover/internal/util"
)

const (
	rolloverDir = ".rollover"
	runsDir     = "runs"
)

// Outcome records what happened to one task during a run.
type Outcome struct {
	GID   string `json:"gid"`
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Report is the durable record of one apply run.
type Report struct {
	ID         string    `json:"id"`
	Command    string    `json:"command"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Succeeded  int       `json:"succeeded"`
	Failed     int       `json:"failed"`
	Outcomes   []Outcome `json:"outcomes"`
}

// New builds a Report from a runner summary and its per-change
// outcomes.
func New(command string, summary runner.Summary, outcomes []runner.Outcome) (*Report, error) {
	id, err := util.ShortID()
	if err != nil {
		return nil, fmt.Errorf("generate report id: %w", err)
	}

	finished := time.Now()
	r := &Report{
		ID:         id,
		Command:    command,
		StartedAt:  finished.Add(-summary.Duration),
		FinishedAt: finished,
		Succeeded:  summary.Succeeded,
		Failed:     summary.Failed,
	}
	for _, o := range outcomes {
		out := Outcome{GID: o.Change.GID, Name: o.Change.Name, OK: o.Err == nil}
		if o.Err != nil {
			out.Error = o.Err.Error()
		}
		r.Outcomes = append(r.Outcomes, out)
	}
	return r, nil
}

// Storage reads and writes reports in a directory.
type Storage struct {
	dir string
}

// DefaultDir is the runs directory relative to the working directory.
func DefaultDir() string {
	return filepath.Join(rolloverDir, runsDir)
}

// NewStorage creates a Storage rooted at dir.
func NewStorage(dir string) *Storage {
	return &Storage{dir: dir}
}

// Save writes the report as <id>-<command>.json, creating the directory
// as needed, and returns the file path.
func (s *Storage) Save(r *Report) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("create runs directory: %w", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	path := filepath.Join(s.dir, fmt.Sprintf("%s-%s.json", r.ID, r.Command))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// List returns all stored reports, newest first. Files that are not
// readable reports are skipped.
func (s *Storage) List() ([]Report, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read runs directory: %w", err)
	}

	var reports []Report
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			continue
		}
		var r Report
		if err := json.Unmarshal(data, &r); err != nil {
			continue
		}
		reports = append(reports, r)
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].StartedAt.After(reports[j].StartedAt)
	})
	return reports, nil
}
