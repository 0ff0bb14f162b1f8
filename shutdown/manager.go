package shutdown

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"agency_backend/core"
)

// Manager coordinates graceful shutdown of the extraction service. It
// owns the service context, cancels it on SIGINT/SIGTERM, drains
// in-flight jobs through a JobTracker, and then runs registered cleanup
// functions. A second signal forces immediate exit.
//
// Usage:
//
//	mgr := shutdown.NewManager(logger)
//	mgr.Register("logger", 5, func(ctx context.Context) error {
//	    return logger.Sync()
//	})
//	mgr.Start()
//
//	runService(mgr.Context())
//
//	mgr.Shutdown()
//	os.Exit(mgr.ExitCode())
type Manager struct {
	logger  *zap.Logger
	timeout time.Duration

	mu         sync.Mutex
	started    bool
	done       bool
	lastSignal os.Signal
	sigCount   int

	ctx    context.Context
	cancel context.CancelFunc

	tracker  *JobTracker
	registry *Registry
	sigChan  chan os.Signal

	// forceExit is called on the second signal; overridable in tests
	forceExit func()
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithTimeout sets how long Shutdown waits for in-flight jobs and
// cleanup combined. Default is 30 seconds.
func WithTimeout(timeout time.Duration) ManagerOption {
	return func(m *Manager) {
		m.timeout = timeout
	}
}

// NewManager creates a Manager ready to coordinate shutdown. The logger
// is required.
func NewManager(logger *zap.Logger, opts ...ManagerOption) *Manager {
	ctx, cancel := context.WithCancel(context.Background())

	m := &Manager{
		logger:    logger,
		timeout:   30 * time.Second,
		ctx:       ctx,
		cancel:    cancel,
		tracker:   NewJobTracker(),
		registry:  NewRegistry(),
		sigChan:   make(chan os.Signal, 1),
		forceExit: func() { os.Exit(core.ExitCodeError) },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Context returns the service context, cancelled when shutdown begins.
func (m *Manager) Context() context.Context {
	return m.ctx
}

// Register adds a cleanup function run during Shutdown. Lower priorities
// run first.
func (m *Manager) Register(name string, priority int, fn CleanupFunc) {
	m.registry.Register(name, priority, fn)
	m.logger.Debug("registered cleanup handler",
		zap.String("name", name),
		zap.Int("priority", priority))
}

// Start begins listening for SIGINT and SIGTERM. The first signal
// cancels the service context; the second forces immediate exit. Start
// is idempotent.
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return
	}
	m.started = true

	signal.Notify(m.sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		for sig := range m.sigChan {
			m.handleSignal(sig)
		}
	}()
}

// handleSignal records a received signal: the first triggers graceful
// shutdown, the second forces exit.
func (m *Manager) handleSignal(sig os.Signal) {
	m.mu.Lock()
	m.sigCount++
	count := m.sigCount
	if count == 1 {
		m.lastSignal = sig
	}
	m.mu.Unlock()

	if count == 1 {
		m.logger.Info("received shutdown signal, stopping gracefully",
			zap.String("signal", sig.String()))
		m.cancel()
		return
	}
	m.logger.Warn("received second signal, forcing exit",
		zap.String("signal", sig.String()))
	m.forceExit()
}

// Trigger initiates shutdown without an OS signal, for error paths that
// need the same drain-and-cleanup sequence.
func (m *Manager) Trigger() {
	m.cancel()
}

// WrapJob runs fn as a tracked in-flight job. Once shutdown has begun,
// new jobs are rejected with ErrTrackerClosed and fn does not run.
func (m *Manager) WrapJob(ctx context.Context, name string, fn func(context.Context) error) error {
	if !m.tracker.Start() {
		m.logger.Debug("job rejected, shutting down", zap.String("job", name))
		return ErrTrackerClosed
	}
	defer m.tracker.Done()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-m.ctx.Done():
		return context.Canceled
	default:
	}
	return fn(ctx)
}

// ActiveJobs returns the number of jobs currently in flight.
func (m *Manager) ActiveJobs() int64 {
	return m.tracker.ActiveCount()
}

// Shutdown drains in-flight jobs and runs the cleanup functions in
// priority order. It is idempotent and returns an error when any cleanup
// fails.
func (m *Manager) Shutdown() error {
	m.mu.Lock()
	if m.done {
		m.mu.Unlock()
		return nil
	}
	m.done = true
	started := m.started
	m.mu.Unlock()

	start := time.Now()
	m.cancel()
	m.tracker.Close()

	if active := m.tracker.ActiveCount(); active > 0 {
		m.logger.Info("waiting for in-flight jobs",
			zap.Int64("active", active),
			zap.Duration("timeout", m.timeout))
	}
	if err := m.tracker.Wait(m.timeout); err != nil {
		m.logger.Warn("gave up waiting for in-flight jobs",
			zap.Int64("remaining", m.tracker.ActiveCount()),
			zap.Duration("waited", time.Since(start)))
	}

	remaining := m.timeout - time.Since(start)
	if remaining < time.Second {
		remaining = time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), remaining)
	defer cancel()

	errs := m.registry.Run(ctx)
	for _, err := range errs {
		m.logger.Error("cleanup failed", zap.Error(err))
	}

	if started {
		signal.Stop(m.sigChan)
	}

	m.logger.Info("shutdown complete",
		zap.Duration("duration", time.Since(start)),
		zap.Int("cleanup_errors", len(errs)))

	if len(errs) > 0 {
		return fmt.Errorf("shutdown finished with %d cleanup errors", len(errs))
	}
	return nil
}

// IsShuttingDown reports whether shutdown has been initiated, either by
// a signal or by Shutdown itself.
func (m *Manager) IsShuttingDown() bool {
	select {
	case <-m.ctx.Done():
		return true
	default:
		return false
	}
}

// ExitCode maps the terminating signal to the conventional process exit
// code: 130 for SIGINT, 143 for SIGTERM, 0 when no signal was received.
func (m *Manager) ExitCode() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.lastSignal {
	case syscall.SIGTERM:
		return core.ExitCodeSIGTERM
	case syscall.SIGINT, os.Interrupt:
		return core.ExitCodeSIGINT
	}
	return core.ExitCodeSuccess
}
