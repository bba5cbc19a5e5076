package formwizard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/formwizard/internal/logging"
	"github.com/aretw0/formwizard/internal/runtime"
	"github.com/aretw0/formwizard/pkg/definition"
	"github.com/aretw0/formwizard/pkg/domain"
	"github.com/aretw0/formwizard/pkg/editor"
	"github.com/aretw0/formwizard/pkg/form"
	"github.com/aretw0/formwizard/pkg/i18n"
	"github.com/aretw0/formwizard/pkg/observability"
)

// Wizard is the high-level entry point of the library.
// It mounts the form tree over the initial data and drives it with the runtime engine.
type Wizard struct {
	tree    *form.Tree
	runtime *runtime.Engine

	initial  any
	strings  *i18n.Strings
	format   editor.Format
	hooks    domain.LifecycleHooks
	submit   domain.SubmitFunc
	cancel   domain.CancelFunc
	registry prometheus.Registerer
	logger   *slog.Logger

	Title string
}

// Option defines a functional option for configuring the Wizard.
type Option func(*Wizard)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Wizard) {
		w.logger = logger
	}
}

// WithStrings sets the localization table.
func WithStrings(s *i18n.Strings) Option {
	return func(w *Wizard) {
		w.strings = s
	}
}

// WithInitialData sets the item edited by the wizard. It is copied on mount.
func WithInitialData(v any) Option {
	return func(w *Wizard) {
		w.initial = v
	}
}

// WithSubmit sets the callback receiving a copy of the item on submit.
// A returned error (or a panic) is shown on the review step.
func WithSubmit(fn domain.SubmitFunc) Option {
	return func(w *Wizard) {
		w.submit = fn
	}
}

// WithCancel sets the callback invoked by Cancel.
func WithCancel(fn domain.CancelFunc) Option {
	return func(w *Wizard) {
		w.cancel = fn
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(w *Wizard) {
		w.hooks = observability.Combine(w.hooks, hooks)
	}
}

// WithFormat selects the text format of the raw document editor.
func WithFormat(f editor.Format) Option {
	return func(w *Wizard) {
		w.format = f
	}
}

// WithMetrics registers the wizard metrics on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(w *Wizard) {
		w.registry = reg
	}
}

// WithTitle sets a descriptive name, also attached to the log records.
func WithTitle(title string) Option {
	return func(w *Wizard) {
		w.Title = title
	}
}

// New mounts steps and positions the wizard on the first visible step.
func New(steps []*form.Step, opts ...Option) (*Wizard, error) {
	w := &Wizard{
		format: editor.FormatYAML,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.strings == nil {
		w.strings = i18n.Default()
	}
	if w.logger == nil {
		w.logger = logging.NewNop()
	}
	if w.Title != "" {
		w.logger = w.logger.With("wizard", w.Title)
	}

	if w.registry != nil {
		m, err := observability.NewMetrics(w.registry)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		w.hooks = observability.Combine(w.hooks, m.Hooks())
	}

	tree, err := form.NewTree(steps, w.initial,
		form.WithLogger(w.logger),
		form.WithStrings(w.strings),
	)
	if err != nil {
		return nil, err
	}
	w.tree = tree

	w.runtime = runtime.NewEngine(tree,
		runtime.WithLogger(w.logger),
		runtime.WithStrings(w.strings),
		runtime.WithLifecycleHooks(w.hooks),
		runtime.WithSubmit(w.submit),
		runtime.WithCancel(w.cancel),
		runtime.WithEditor(editor.New(
			editor.WithFormat(w.format),
			editor.WithStrings(w.strings),
		)),
	)
	return w, nil
}

// NewFromDefinition creates a wizard from a compiled definition. Its title and
// localization table apply unless overridden by opts.
func NewFromDefinition(def *definition.Definition, opts ...Option) (*Wizard, error) {
	base := []Option{WithTitle(def.Title)}
	if def.Strings != nil {
		base = append(base, WithStrings(def.Strings))
	}
	return New(def.Steps, append(base, opts...)...)
}

// Start emits the entry of the initial step and returns the state.
func (w *Wizard) Start(ctx context.Context) domain.State {
	return w.runtime.Start(ctx)
}

// State returns the current orchestrator state.
func (w *Wizard) State() domain.State {
	return w.runtime.State()
}

// Next validates the active step and advances when it has no error.
func (w *Wizard) Next(ctx context.Context) domain.Outcome {
	return w.runtime.Next(ctx)
}

// Back returns to the previous visible step.
func (w *Wizard) Back(ctx context.Context) domain.Outcome {
	return w.runtime.Back(ctx)
}

// CanSubmit reports whether Submit would reach the submit callback.
func (w *Wizard) CanSubmit() bool {
	return w.runtime.CanSubmit()
}

// Submit hands a copy of the item to the submit callback.
func (w *Wizard) Submit(ctx context.Context) (domain.Outcome, error) {
	return w.runtime.Submit(ctx)
}

// Cancel invokes the cancel callback.
func (w *Wizard) Cancel() {
	w.runtime.Cancel()
}

// Alerts returns the footer messages of the active step.
func (w *Wizard) Alerts() []string {
	return w.runtime.Alerts()
}

// SetValue writes the input at key.
func (w *Wizard) SetValue(key string, v any) error {
	return w.runtime.SetValue(key, v)
}

// AddItem appends values (or the array's new element) to the array input at key.
func (w *Wizard) AddItem(key string, values ...any) error {
	return w.runtime.AddItem(key, values...)
}

// RemoveItem removes element index of the array input at key.
func (w *Wizard) RemoveItem(key string, index int) error {
	return w.runtime.RemoveItem(key, index)
}

// MoveItem moves element from to position to in the array input at key.
func (w *Wizard) MoveItem(key string, from, to int) error {
	return w.runtime.MoveItem(key, from, to)
}

// ReplaceItem replaces the whole edited item.
func (w *Wizard) ReplaceItem(ctx context.Context, root any) {
	w.runtime.ReplaceItem(ctx, root)
}

// Text renders the item for the raw document editor.
func (w *Wizard) Text() (string, error) {
	return w.runtime.Text()
}

// SetText parses edited text and replaces the item when it parses.
func (w *Wizard) SetText(ctx context.Context, text string) bool {
	return w.runtime.SetText(ctx, text)
}

// SetEditorStatus records a validity status computed by the host.
func (w *Wizard) SetEditorStatus(s domain.EditorStatus) {
	w.runtime.SetEditorStatus(s)
}

// EditorStatus returns the syntax-validity status of the raw document editor.
func (w *Wizard) EditorStatus() domain.EditorStatus {
	return w.runtime.EditorStatus()
}

// EditorMessage returns the parse error of the last edited text.
func (w *Wizard) EditorMessage() string {
	return w.runtime.EditorMessage()
}

// Item returns the edited item. It must be treated as read-only.
func (w *Wizard) Item() (v any) {
	w.runtime.Inspect(func(t *form.Tree) { v = t.Item() })
	return v
}

// Steps returns the state of every wizard step.
func (w *Wizard) Steps() (out []form.StepState) {
	w.runtime.Inspect(func(t *form.Tree) { out = t.Steps() })
	return out
}

// Fields returns the mounted inputs of a step.
func (w *Wizard) Fields(stepID string) (out []form.FieldState, err error) {
	w.runtime.Inspect(func(t *form.Tree) { out, err = t.StepFields(stepID) })
	return out, err
}

// Field returns the input mounted at key.
func (w *Wizard) Field(key string) (st form.FieldState, err error) {
	w.runtime.Inspect(func(t *form.Tree) { st, err = t.Field(key) })
	return st, err
}

// Review returns the read-only rendering of the item.
func (w *Wizard) Review() (out []form.ReviewNode) {
	w.runtime.Inspect(func(t *form.Tree) { out = t.Review() })
	return out
}

// Errors returns a *form.AggregateError with every field error, or nil.
func (w *Wizard) Errors() (err error) {
	w.runtime.Inspect(func(t *form.Tree) { err = t.Errors() })
	return err
}

// Strings returns the localization table in use.
func (w *Wizard) Strings() *i18n.Strings {
	return w.strings
}

// Close unmounts the form tree. The wizard must not be used afterwards.
func (w *Wizard) Close() {
	w.runtime.Inspect(func(t *form.Tree) { t.Close() })
}
