package asana

// Task is a task or subtask as returned by the Asana API, restricted to
// the fields this tool requests via opt_fields. Date fields are ISO
// calendar dates (YYYY-MM-DD); empty means unset.
type Task struct {
	GID       string   `json:"gid"`
	Name      string   `json:"name"`
	Completed bool     `json:"completed"`
	Parent    *TaskRef `json:"parent,omitempty"`
	DueOn     string   `json:"due_on,omitempty"`
	StartOn   string   `json:"start_on,omitempty"`
}

// TaskRef is a compact reference to another task.
type TaskRef struct {
	GID string `json:"gid"`
}

// UpdateFields is a partial task update. Nil fields are left untouched
// by the API.
type UpdateFields struct {
	Name      *string `json:"name,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
	DueOn     *string `json:"due_on,omitempty"`
	StartOn   *string `json:"start_on,omitempty"`
}

// IsZero reports whether the update would change nothing.
func (f UpdateFields) IsZero() bool {
	return f.Name == nil && f.Completed == nil && f.DueOn == nil && f.StartOn == nil
}

// String returns a pointer to s, for building UpdateFields literals.
func String(s string) *string { return &s }

// Bool returns a pointer to b, for building UpdateFields literals.
func Bool(b bool) *bool { return &b }
