package shutdown

import (
	"context"
	"errors"
	"syscall"
	"testing"
	"time"

	"go.uber.org/zap"

	"agency_backend/core"
)

func newTestManager(t *testing.T, opts ...ManagerOption) *Manager {
	t.Helper()
	return NewManager(zap.NewNop(), opts...)
}

func TestManagerWrapJob(t *testing.T) {
	m := newTestManager(t)

	var ran bool
	err := m.WrapJob(context.Background(), "job", func(context.Context) error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("WrapJob returned %v", err)
	}
	if !ran {
		t.Error("job did not run")
	}
	if got := m.ActiveJobs(); got != 0 {
		t.Errorf("ActiveJobs = %d after completion, want 0", got)
	}
}

func TestManagerWrapJobPropagatesError(t *testing.T) {
	m := newTestManager(t)
	boom := errors.New("boom")

	err := m.WrapJob(context.Background(), "job", func(context.Context) error { return boom })
	if !errors.Is(err, boom) {
		t.Errorf("WrapJob error = %v, want boom", err)
	}
}

func TestManagerRejectsJobsAfterShutdown(t *testing.T) {
	m := newTestManager(t)
	if err := m.Shutdown(); err != nil {
		t.Fatalf("Shutdown returned %v", err)
	}

	err := m.WrapJob(context.Background(), "late", func(context.Context) error {
		t.Error("job ran after shutdown")
		return nil
	})
	if !errors.Is(err, ErrTrackerClosed) {
		t.Errorf("WrapJob error = %v, want ErrTrackerClosed", err)
	}
}

func TestManagerWrapJobCancelledContext(t *testing.T) {
	m := newTestManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.WrapJob(ctx, "job", func(context.Context) error {
		t.Error("job ran with cancelled context")
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("WrapJob error = %v, want context.Canceled", err)
	}
}

func TestManagerShutdownRunsCleanups(t *testing.T) {
	m := newTestManager(t)
	var order []string

	m.Register("files", 30, func(context.Context) error {
		order = append(order, "files")
		return nil
	})
	m.Register("logger", 5, func(context.Context) error {
		order = append(order, "logger")
		return nil
	})

	if err := m.Shutdown(); err != nil {
		t.Fatalf("Shutdown returned %v", err)
	}
	if len(order) != 2 || order[0] != "logger" || order[1] != "files" {
		t.Errorf("cleanup order = %v, want [logger files]", order)
	}

	select {
	case <-m.Context().Done():
	default:
		t.Error("context not cancelled after Shutdown")
	}
}

func TestManagerShutdownIdempotent(t *testing.T) {
	m := newTestManager(t)
	var runs int
	m.Register("once", 1, func(context.Context) error { runs++; return nil })

	if err := m.Shutdown(); err != nil {
		t.Fatalf("first Shutdown returned %v", err)
	}
	if err := m.Shutdown(); err != nil {
		t.Errorf("second Shutdown returned %v", err)
	}
	if runs != 1 {
		t.Errorf("cleanup ran %d times, want 1", runs)
	}
}

func TestManagerShutdownReportsCleanupErrors(t *testing.T) {
	m := newTestManager(t)
	m.Register("broken", 1, func(context.Context) error { return errors.New("bad") })

	if err := m.Shutdown(); err == nil {
		t.Error("Shutdown returned nil with a failing cleanup")
	}
}

func TestManagerShutdownDrainsJobs(t *testing.T) {
	m := newTestManager(t, WithTimeout(time.Second))
	release := make(chan struct{})
	started := make(chan struct{})
	finished := make(chan struct{})

	go func() {
		_ = m.WrapJob(context.Background(), "slow", func(context.Context) error {
			close(started)
			<-release
			return nil
		})
		close(finished)
	}()

	<-started
	go func() {
		time.Sleep(20 * time.Millisecond)
		close(release)
	}()

	if err := m.Shutdown(); err != nil {
		t.Fatalf("Shutdown returned %v", err)
	}
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Error("in-flight job did not finish before Shutdown returned")
	}
}

func TestManagerSignalHandling(t *testing.T) {
	m := newTestManager(t)
	forced := false
	m.forceExit = func() { forced = true }

	m.handleSignal(syscall.SIGTERM)
	if !m.IsShuttingDown() {
		t.Error("first signal did not cancel the context")
	}
	if forced {
		t.Error("first signal forced exit")
	}
	if got := m.ExitCode(); got != core.ExitCodeSIGTERM {
		t.Errorf("ExitCode = %d, want %d", got, core.ExitCodeSIGTERM)
	}

	m.handleSignal(syscall.SIGTERM)
	if !forced {
		t.Error("second signal did not force exit")
	}
}

func TestManagerExitCode(t *testing.T) {
	m := newTestManager(t)
	if got := m.ExitCode(); got != core.ExitCodeSuccess {
		t.Errorf("ExitCode without signal = %d, want %d", got, core.ExitCodeSuccess)
	}

	m.handleSignal(syscall.SIGINT)
	if got := m.ExitCode(); got != core.ExitCodeSIGINT {
		t.Errorf("ExitCode after SIGINT = %d, want %d", got, core.ExitCodeSIGINT)
	}
}

func TestManagerTrigger(t *testing.T) {
	m := newTestManager(t)
	m.Trigger()

	if !m.IsShuttingDown() {
		t.Error("Trigger did not cancel the context")
	}
	if got := m.ExitCode(); got != core.ExitCodeSuccess {
		t.Errorf("ExitCode after Trigger = %d, want %d", got, core.ExitCodeSuccess)
	}
}
