package display

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// StatusLine keeps a single terminal line updated while the project is
// being read, which can take minutes on large projects. It doubles as
// the fetch progress receiver.
type StatusLine struct {
	mu       sync.Mutex
	writer   io.Writer
	phase    string
	done     int
	total    int
	start    time.Time
	ticker   *time.Ticker
	quit     chan struct{}
	wg       sync.WaitGroup
	active   bool
	lastLine string
}

// NewStatusLine creates a StatusLine writing to w.
func NewStatusLine(w io.Writer) *StatusLine {
	return &StatusLine{writer: w, quit: make(chan struct{})}
}

// Start begins redrawing the line once per second for the elapsed time.
func (s *StatusLine) Start(phase string) {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return
	}
	s.active = true
	s.phase = phase
	s.start = time.Now()
	s.ticker = time.NewTicker(time.Second)
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		for {
			select {
			case <-s.quit:
				return
			case <-s.ticker.C:
				s.redraw()
			}
		}
	}()
	s.redraw()
}

// Stop clears the line and waits for the redraw goroutine to exit.
func (s *StatusLine) Stop() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	s.ticker.Stop()
	close(s.quit)
	s.mu.Unlock()

	s.wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastLine != "" {
		fmt.Fprintf(s.writer, "\r%s\r", strings.Repeat(" ", len(s.lastLine)))
		s.lastLine = ""
	}
}

// OnTasksListed implements cycle.FetchProgress.
func (s *StatusLine) OnTasksListed(count int) {
	s.mu.Lock()
	s.phase = "fetching subtasks"
	s.done = 0
	s.total = count
	s.mu.Unlock()
	s.redraw()
}

// OnSubtaskScan implements cycle.FetchProgress.
func (s *StatusLine) OnSubtaskScan(done, total int) {
	s.mu.Lock()
	s.done = done
	s.total = total
	s.mu.Unlock()
	s.redraw()
}

// OnSubtaskError implements cycle.FetchProgress. The warning goes on
// its own line so the status line can keep overwriting itself.
func (s *StatusLine) OnSubtaskError(taskName string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastLine != "" {
		fmt.Fprintf(s.writer, "\r%s\r", strings.Repeat(" ", len(s.lastLine)))
		s.lastLine = ""
	}
	fmt.Fprintf(s.writer, "warning: skipping subtasks of %q: %v\n", taskName, err)
}

func (s *StatusLine) redraw() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}

	elapsed := time.Since(s.start).Round(time.Second)
	line := s.phase
	if s.total > 0 {
		line = fmt.Sprintf("%s %d/%d", s.phase, s.done, s.total)
	}
	line = fmt.Sprintf("%s (%s)", line, elapsed)

	// Pad so a shrinking line leaves no residue.
	padded := line
	if len(s.lastLine) > len(line) {
		padded = line + strings.Repeat(" ", len(s.lastLine)-len(line))
	}
	fmt.Fprintf(s.writer, "\r%s", padded)
	s.lastLine = line
}
