// Package testutil provides testing utilities for the rollover project.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/finance-automation/rollover/internal/asana"
)

// FakeAsana is an in-memory stand-in for the Asana API serving the
// three endpoints the tool uses. Updates are recorded per task GID.
type FakeAsana struct {
	Tasks    []asana.Task            // top level tasks of the single project
	Subtasks map[string][]asana.Task // keyed by parent task GID
	FailSubs map[string]bool         // task GIDs whose subtask listing returns 500
	FailPut  map[string]bool         // task GIDs whose update returns 400

	mu      sync.Mutex
	updates map[string]asana.UpdateFields
	server  *httptest.Server
}

// Start brings up the fake server and registers its shutdown with t.
func (f *FakeAsana) Start(t *testing.T) *httptest.Server {
	t.Helper()

	f.updates = make(map[string]asana.UpdateFields)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /tasks", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, f.Tasks)
	})
	mux.HandleFunc("GET /tasks/{gid}/subtasks", func(w http.ResponseWriter, r *http.Request) {
		gid := r.PathValue("gid")
		if f.FailSubs[gid] {
			http.Error(w, `{"errors":[{"message":"boom"}]}`, http.StatusInternalServerError)
			return
		}
		writeData(w, f.Subtasks[gid])
	})
	mux.HandleFunc("PUT /tasks/{gid}", func(w http.ResponseWriter, r *http.Request) {
		gid := r.PathValue("gid")
		if f.FailPut[gid] {
			http.Error(w, `{"errors":[{"message":"update rejected"}]}`, http.StatusBadRequest)
			return
		}
		var body struct {
			Data asana.UpdateFields `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		f.updates[gid] = body.Data
		f.mu.Unlock()
		writeData(w, asana.Task{GID: gid})
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f.server
}

// Client returns an asana.Client pointed at the fake with delays
// disabled.
func (f *FakeAsana) Client() *asana.Client {
	return asana.New("test-token").WithBaseURL(f.server.URL).WithPageDelay(0)
}

// Update returns the recorded update for a task GID, if any.
func (f *FakeAsana) Update(gid string) (asana.UpdateFields, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.updates[gid]
	return u, ok
}

// UpdateCount returns how many distinct tasks were updated.
func (f *FakeAsana) UpdateCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.updates)
}

func writeData(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		Data any `json:"data"`
	}{Data: data})
}
