// Package shutdown coordinates graceful termination of the extraction
// service: it tracks in-flight document jobs, runs registered cleanup
// functions in priority order, and maps the terminating signal to the
// process exit code.
package shutdown

import (
	"errors"
	"sync"
	"time"
)

// ErrTrackerClosed is returned when a job is started after shutdown has
// begun.
var ErrTrackerClosed = errors.New("tracker closed: shutting down")

// JobTracker counts in-flight extraction jobs so shutdown can wait for
// them to drain before cleanup runs.
type JobTracker struct {
	mu     sync.Mutex
	active int64
	closed bool
	idle   chan struct{}
}

// NewJobTracker creates an open JobTracker with no active jobs.
func NewJobTracker() *JobTracker {
	t := &JobTracker{idle: make(chan struct{})}
	close(t.idle)
	return t
}

// Start registers a new job. It reports false once the tracker is
// closed; callers must not run the job in that case.
func (t *JobTracker) Start() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return false
	}
	if t.active == 0 {
		t.idle = make(chan struct{})
	}
	t.active++
	return true
}

// Done marks one job as finished. Every successful Start must be paired
// with exactly one Done.
func (t *JobTracker) Done() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == 0 {
		return
	}
	t.active--
	if t.active == 0 {
		close(t.idle)
	}
}

// Close stops the tracker from accepting new jobs. Jobs already started
// keep running.
func (t *JobTracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
}

// IsClosed reports whether the tracker has stopped accepting jobs.
func (t *JobTracker) IsClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

// ActiveCount returns the number of jobs currently in flight.
func (t *JobTracker) ActiveCount() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Wait blocks until all in-flight jobs finish or the timeout elapses.
// A timeout returns an error with jobs still running.
func (t *JobTracker) Wait(timeout time.Duration) error {
	t.mu.Lock()
	idle := t.idle
	t.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-time.After(timeout):
		return errors.New("timeout waiting for in-flight jobs")
	}
}
