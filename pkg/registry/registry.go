package registry

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/aretw0/formwizard/internal/logging"
)

// Flag names one of the per-step conditions tracked by the registry.
type Flag string

const (
	HasInputs          Flag = "has_inputs"
	ShowValidation     Flag = "show_validation"
	HasValidationError Flag = "has_validation_error"
)

// Flags lists every tracked condition.
var Flags = []Flag{HasInputs, ShowValidation, HasValidationError}

// SetFlagFunc announces the value of a flag for a step.
// A setter is bound to the registry generation it was obtained in; once the registry
// is reset, calls through an older setter are dropped.
type SetFlagFunc func(stepID string, value bool)

// Snapshot is a read-only copy of the three maps. A key is present iff the flag is true.
type Snapshot map[Flag]map[string]bool

// Has reports whether flag is true for stepID.
func (s Snapshot) Has(flag Flag, stepID string) bool {
	return s[flag][stepID]
}

// Registry tracks per-step aggregates for the lifetime of a wizard.
type Registry struct {
	mu         sync.RWMutex
	flags      map[Flag]map[string]bool
	generation uint64
	steps      map[string]func()
	logger     *slog.Logger
}

// Option configures the Registry.
type Option func(*Registry)

// WithLogger configures a logger for the Registry.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		flags:  newMaps(),
		steps:  make(map[string]func()),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func newMaps() map[Flag]map[string]bool {
	m := make(map[Flag]map[string]bool, len(Flags))
	for _, f := range Flags {
		m[f] = make(map[string]bool)
	}
	return m
}

// Register records a mounted step. reannounce is invoked after every Reset so the step
// publishes its current state through a fresh setter.
// The returned function unregisters the step and removes it from every map.
func (r *Registry) Register(stepID string, reannounce func()) (unregister func()) {
	r.mu.Lock()
	r.steps[stepID] = reannounce
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.steps, stepID)
		for _, m := range r.flags {
			delete(m, stepID)
		}
	}
}

// Setter returns the setFlag function of the current generation.
func (r *Registry) Setter(flag Flag) SetFlagFunc {
	r.mu.RLock()
	gen := r.generation
	r.mu.RUnlock()

	return func(stepID string, value bool) {
		r.mu.Lock()
		defer r.mu.Unlock()
		if gen != r.generation {
			r.logger.Debug("dropping stale registry update",
				"flag", flag,
				"step_id", stepID,
				"generation", gen,
				"current", r.generation)
			return
		}
		if value {
			r.flags[flag][stepID] = true
		} else {
			delete(r.flags[flag], stepID)
		}
	}
}

// Reset clears the three maps at once, publishes a new generation and asks every
// registered step to re-announce. No step can announce between the clear and the
// generation bump.
func (r *Registry) Reset() {
	r.mu.Lock()
	r.flags = newMaps()
	r.generation++
	ids := make([]string, 0, len(r.steps))
	for id := range r.steps {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	callbacks := make([]func(), 0, len(ids))
	for _, id := range ids {
		callbacks = append(callbacks, r.steps[id])
	}
	gen := r.generation
	r.mu.Unlock()

	r.logger.Debug("registry reset", "generation", gen, "steps", len(callbacks))

	for _, fn := range callbacks {
		if fn != nil {
			fn()
		}
	}
}

// Get reports whether flag is currently true for stepID.
func (r *Registry) Get(flag Flag, stepID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.flags[flag][stepID]
}

// Snapshot returns a copy of the three maps.
func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(Snapshot, len(r.flags))
	for f, m := range r.flags {
		cp := make(map[string]bool, len(m))
		for k, v := range m {
			cp[k] = v
		}
		out[f] = cp
	}
	return out
}

// Generation returns the number of resets performed so far.
func (r *Registry) Generation() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.generation
}
