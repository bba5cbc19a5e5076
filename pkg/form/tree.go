package form

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/formwizard/internal/logging"
	"github.com/aretw0/formwizard/pkg/domain"
	"github.com/aretw0/formwizard/pkg/i18n"
	"github.com/aretw0/formwizard/pkg/item"
	"github.com/aretw0/formwizard/pkg/registry"
	"github.com/aretw0/formwizard/pkg/scope"
)

// maxPasses bounds Reconcile when components keep writing the item
// (DisallowEmpty arrays, OnValueChange side effects).
const maxPasses = 8

// Tree is the mounted form of a wizard over one owned item.
type Tree struct {
	doc      *item.Document
	registry *registry.Registry
	strings  *i18n.Strings
	logger   *slog.Logger

	root  scopeSet
	show  *scope.Broadcaster
	steps []*stepNode
	byID  map[string]*stepNode

	fields []*binding
	index  map[string]*binding
}

// Option configures a Tree.
type Option func(*Tree)

// WithLogger configures a logger for the Tree.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tree) {
		t.logger = logger
	}
}

// WithStrings configures the localization table.
func WithStrings(s *i18n.Strings) Option {
	return func(t *Tree) {
		t.strings = s
	}
}

// WithRegistry shares a step registry with the caller.
func WithRegistry(r *registry.Registry) Option {
	return func(t *Tree) {
		t.registry = r
	}
}

// NewTree mounts steps over a copy of initial and runs the first update pass.
func NewTree(steps []*Step, initial any, opts ...Option) (*Tree, error) {
	if len(steps) == 0 {
		return nil, domain.ErrNoSteps
	}

	t := &Tree{
		strings: i18n.Default(),
		logger:  logging.NewNop(),
		root:    newScopeSet(),
		show:    scope.NewBroadcaster(),
		byID:    make(map[string]*stepNode, len(steps)),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.registry == nil {
		t.registry = registry.New(registry.WithLogger(t.logger))
	}

	seen := make(map[string]bool, len(steps))
	for i, s := range steps {
		switch {
		case s == nil || s.ID == "":
			return nil, fmt.Errorf("step %d: %w", i, domain.ErrEmptyStepID)
		case s.ID == domain.ReviewStepID:
			return nil, fmt.Errorf("step %q: %w", s.ID, domain.ErrReservedStepID)
		case seen[s.ID]:
			return nil, fmt.Errorf("step %q: %w", s.ID, domain.ErrDuplicateStep)
		}
		seen[s.ID] = true
	}

	t.doc = item.NewDocument(initial)
	for _, s := range steps {
		n := t.mountStep(s)
		t.steps = append(t.steps, n)
		t.byID[s.ID] = n
	}
	t.Reconcile()
	return t, nil
}

// Reconcile runs update passes until no pass writes the item, then verifies the
// aggregates with a full bottom-up recomputation.
func (t *Tree) Reconcile() {
	for pass := 1; ; pass++ {
		rev := t.doc.Revision()
		for _, s := range t.steps {
			s.reconcile()
		}
		if t.doc.Revision() == rev {
			break
		}
		if pass == maxPasses {
			t.logger.Warn("reconcile did not settle", "passes", pass)
			break
		}
	}
	t.root.recompute()
	t.reindex()
}

func (t *Tree) reindex() {
	t.fields = t.fields[:0]
	t.index = make(map[string]*binding)
	for _, s := range t.steps {
		s.walk(func(b *binding) {
			t.fields = append(t.fields, b)
			if _, ok := t.index[b.key.String()]; !ok {
				t.index[b.key.String()] = b
			}
		})
	}
}

// Close unmounts every step and unregisters it from the registry.
func (t *Tree) Close() {
	for _, s := range t.steps {
		s.unmount()
	}
	t.steps = nil
	t.fields = nil
	t.index = map[string]*binding{}
}

// Item returns the edited item.
func (t *Tree) Item() any {
	return t.doc.Root()
}

// Document returns the owned document.
func (t *Tree) Document() *item.Document {
	return t.doc
}

// Registry returns the step registry the tree announces to.
func (t *Tree) Registry() *registry.Registry {
	return t.registry
}

func (t *Tree) lookup(key string) (*binding, error) {
	b, ok := t.index[key]
	if !ok {
		return nil, fmt.Errorf("%q: %w", key, domain.ErrFieldNotFound)
	}
	return b, nil
}

// SetValue writes an input value through the binding mounted at key.
func (t *Tree) SetValue(key string, v any) error {
	b, err := t.lookup(key)
	if err != nil {
		return err
	}
	b.set(v)
	t.Reconcile()
	return nil
}

func (t *Tree) lookupArray(key string) (*arrayNode, []any, error) {
	b, err := t.lookup(key)
	if err != nil {
		return nil, nil, err
	}
	if b.array == nil {
		return nil, nil, fmt.Errorf("%q: %w", key, domain.ErrNotAnArray)
	}
	return b.array, item.Elements(t.doc.Get(b.key, nil)), nil
}

// AddItem appends values to the array at key, or one NewValue when none is given.
func (t *Tree) AddItem(key string, values ...any) error {
	arr, elems, err := t.lookupArray(key)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		values = []any{arr.def.newValue()}
	}
	t.doc.Set(arr.key, append(elems, values...))
	t.Reconcile()
	return nil
}

// RemoveItem removes the element at index. A DisallowEmpty array gets a fresh
// NewValue back when its last element goes.
func (t *Tree) RemoveItem(key string, index int) error {
	arr, elems, err := t.lookupArray(key)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(elems) {
		return fmt.Errorf("%q[%d]: %w", key, index, domain.ErrIndexOutOfRange)
	}
	t.doc.Set(arr.key, append(elems[:index], elems[index+1:]...))
	t.Reconcile()
	return nil
}

// MoveItem moves the element at from to position to.
func (t *Tree) MoveItem(key string, from, to int) error {
	arr, elems, err := t.lookupArray(key)
	if err != nil {
		return err
	}
	if from < 0 || from >= len(elems) || to < 0 || to >= len(elems) {
		return fmt.Errorf("%q[%d->%d]: %w", key, from, to, domain.ErrIndexOutOfRange)
	}
	if from == to {
		return nil
	}
	v := elems[from]
	elems = append(elems[:from], elems[from+1:]...)
	elems = append(elems[:to], append([]any{v}, elems[to:]...)...)
	t.doc.Set(arr.key, elems)
	t.Reconcile()
	return nil
}

// ReplaceItem swaps the item wholesale. The registry is reset after the update pass
// so that no entry computed against the old item survives.
func (t *Tree) ReplaceItem(root any) {
	t.doc.Replace(root)
	t.Reconcile()
	t.registry.Reset()
	t.logger.Debug("item replaced",
		"identity", t.doc.Identity(),
		"generation", t.registry.Generation())
}

// ShowStepValidation turns on error display for one step.
func (t *Tree) ShowStepValidation(stepID string) error {
	n, ok := t.byID[stepID]
	if !ok {
		return fmt.Errorf("%q: %w", stepID, domain.ErrStepNotFound)
	}
	n.showValidation()
	return nil
}

// ShowAllValidation turns on error display for every step at once.
func (t *Tree) ShowAllValidation() {
	t.show.SetOverride(true)
}

// ShowingAllValidation reports whether the global override is set.
func (t *Tree) ShowingAllValidation() bool {
	return t.show.Override()
}

// HasValidationError reports the global validation aggregate.
func (t *Tree) HasValidationError() bool {
	return t.root.validation.Aggregate()
}

// StepHasValidationError reports the validation aggregate of one step.
func (t *Tree) StepHasValidationError(stepID string) (bool, error) {
	n, ok := t.byID[stepID]
	if !ok {
		return false, fmt.Errorf("%q: %w", stepID, domain.ErrStepNotFound)
	}
	return n.ctx.scopes.validation.Aggregate(), nil
}

// Fields returns every mounted input in definition order.
func (t *Tree) Fields() []FieldState {
	out := make([]FieldState, 0, len(t.fields))
	for _, b := range t.fields {
		out = append(out, b.state())
	}
	return out
}

// StepFields returns the mounted inputs of one step.
func (t *Tree) StepFields(stepID string) ([]FieldState, error) {
	n, ok := t.byID[stepID]
	if !ok {
		return nil, fmt.Errorf("%q: %w", stepID, domain.ErrStepNotFound)
	}
	var out []FieldState
	n.walk(func(b *binding) {
		out = append(out, b.state())
	})
	return out, nil
}

// Field returns the input mounted at key.
func (t *Tree) Field(key string) (FieldState, error) {
	b, err := t.lookup(key)
	if err != nil {
		return FieldState{}, err
	}
	return b.state(), nil
}

// Steps returns the state of every step, read from the registry.
func (t *Tree) Steps() []StepState {
	snap := t.registry.Snapshot()
	global := t.show.Override()
	out := make([]StepState, 0, len(t.steps))
	for _, n := range t.steps {
		out = append(out, n.state(snap, global))
	}
	return out
}

// Step returns the state of one step.
func (t *Tree) Step(stepID string) (StepState, error) {
	n, ok := t.byID[stepID]
	if !ok {
		return StepState{}, fmt.Errorf("%q: %w", stepID, domain.ErrStepNotFound)
	}
	return n.state(t.registry.Snapshot(), t.show.Override()), nil
}

func (n *stepNode) state(snap registry.Snapshot, global bool) StepState {
	id := n.def.ID
	st := StepState{
		ID:                 id,
		Label:              labelOr(n.def.Label, id),
		Hidden:             n.hidden,
		HasInputs:          snap.Has(registry.HasInputs, id),
		HasValidationError: snap.Has(registry.HasValidationError, id),
		ShowValidation:     snap.Has(registry.ShowValidation, id),
	}
	st.ShowErrorIcon = (global || st.ShowValidation) && st.HasValidationError
	return st
}

// Review returns the read-only rendering of the item. Steps, sections and arrays
// without any value are left out.
func (t *Tree) Review() []ReviewNode {
	var out []ReviewNode
	for _, n := range t.steps {
		out = append(out, n.review()...)
	}
	return out
}

// Errors returns an *AggregateError with every current field error, or nil.
func (t *Tree) Errors() error {
	var errs []error
	for _, b := range t.fields {
		if b.err == "" {
			continue
		}
		errs = append(errs, &FieldError{Key: b.key.String(), StepID: b.ctx.stepID, Reason: b.err})
	}
	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
