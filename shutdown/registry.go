package shutdown

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// CleanupFunc releases one resource during shutdown. The context carries
// the remaining shutdown deadline.
type CleanupFunc func(ctx context.Context) error

type cleanupEntry struct {
	name     string
	priority int
	seq      int
	fn       CleanupFunc
}

// Registry holds cleanup functions ordered by priority. Lower priorities
// run first; ties run in registration order.
type Registry struct {
	mu      sync.Mutex
	entries []cleanupEntry
	run     bool
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a named cleanup function at the given priority.
// Registrations after Run are ignored.
func (r *Registry) Register(name string, priority int, fn CleanupFunc) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.run {
		return
	}
	r.entries = append(r.entries, cleanupEntry{
		name:     name,
		priority: priority,
		seq:      len(r.entries),
		fn:       fn,
	})
}

// Count returns the number of registered cleanup functions.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Names returns the registered names in execution order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ordered := r.ordered()
	names := make([]string, len(ordered))
	for i, e := range ordered {
		names[i] = e.name
	}
	return names
}

// Run executes every cleanup function in priority order and collects
// their errors. A failing function does not stop later ones; a panic in
// one is converted to an error. Run executes at most once.
func (r *Registry) Run(ctx context.Context) []error {
	r.mu.Lock()
	if r.run {
		r.mu.Unlock()
		return nil
	}
	r.run = true
	ordered := r.ordered()
	r.mu.Unlock()

	var errs []error
	for _, e := range ordered {
		if err := runCleanup(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func runCleanup(ctx context.Context, e cleanupEntry) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cleanup %q panicked: %v", e.name, r)
		}
	}()
	if err := e.fn(ctx); err != nil {
		return fmt.Errorf("cleanup %q: %w", e.name, err)
	}
	return nil
}

// ordered returns a priority-sorted copy of the entries. Caller holds
// the lock.
func (r *Registry) ordered() []cleanupEntry {
	ordered := make([]cleanupEntry, len(r.entries))
	copy(ordered, r.entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].priority != ordered[j].priority {
			return ordered[i].priority < ordered[j].priority
		}
		return ordered[i].seq < ordered[j].seq
	})
	return ordered
}
