package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/formwizard/internal/logging"
	"github.com/aretw0/formwizard/pkg/domain"
	"github.com/aretw0/formwizard/pkg/editor"
	"github.com/aretw0/formwizard/pkg/form"
	"github.com/aretw0/formwizard/pkg/i18n"
	"github.com/aretw0/formwizard/pkg/item"
)

// Engine is the wizard state machine: step sequencing, the review step and the
// submit/cancel flow, gated by the aggregates of a form tree.
//
// Calls are serialised. The host submit callback is the only suspension point and
// runs without holding the lock; the Submitting flag turns re-entrant calls into
// OutcomeIgnored.
type Engine struct {
	mu     sync.Mutex
	tree   *form.Tree
	editor *editor.Editor
	state  domain.State

	onSubmit domain.SubmitFunc
	onCancel domain.CancelFunc
	strings  *i18n.Strings
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger configures a logger for the Engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks. Hooks run synchronously and must
// not call back into the Engine.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithSubmit sets the host submit callback.
func WithSubmit(fn domain.SubmitFunc) EngineOption {
	return func(e *Engine) {
		e.onSubmit = fn
	}
}

// WithCancel sets the host cancel callback.
func WithCancel(fn domain.CancelFunc) EngineOption {
	return func(e *Engine) {
		e.onCancel = fn
	}
}

// WithStrings configures the localization table.
func WithStrings(s *i18n.Strings) EngineOption {
	return func(e *Engine) {
		e.strings = s
	}
}

// WithEditor attaches the raw-text document editor.
func WithEditor(ed *editor.Editor) EngineOption {
	return func(e *Engine) {
		e.editor = ed
	}
}

// NewEngine creates an engine positioned on the first visible step of tree.
func NewEngine(tree *form.Tree, opts ...EngineOption) *Engine {
	e := &Engine{
		tree:    tree,
		strings: i18n.Default(),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.editor == nil {
		e.editor = editor.New(editor.WithStrings(e.strings))
	}

	steps := tree.Steps()
	if first := nextVisible(steps, 0); first >= 0 {
		e.state = *domain.NewState(steps[first].ID, first)
	} else {
		e.enterReview(len(steps))
	}
	return e
}

// Start emits the enter event of the initial step and returns the state.
func (e *Engine) Start(ctx context.Context) domain.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.emitStep(ctx, e.hooks.OnStepEnter, domain.EventStepEnter)
	return e.state
}

// State returns a copy of the current state.
func (e *Engine) State() domain.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Tree returns the form tree driven by the engine.
// Callers must not use it concurrently with the Engine.
func (e *Engine) Tree() *form.Tree {
	return e.tree
}

// Inspect runs fn with the form tree while holding the engine lock. fn must not
// call back into the Engine.
func (e *Engine) Inspect(fn func(t *form.Tree)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.tree)
}

func nextVisible(steps []form.StepState, from int) int {
	for i := from; i < len(steps); i++ {
		if !steps[i].Hidden {
			return i
		}
	}
	return -1
}

func prevVisible(steps []form.StepState, from int) int {
	for i := from; i >= 0; i-- {
		if !steps[i].Hidden {
			return i
		}
	}
	return -1
}

func (e *Engine) enterReview(index int) {
	e.state.Phase = domain.PhaseReview
	e.state.StepID = domain.ReviewStepID
	e.state.StepIndex = index
	e.tree.ShowAllValidation()
}

// Next shows the validation of the active step and advances unless the step has an
// error. The last visible step advances to review.
func (e *Engine) Next(ctx context.Context) domain.Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Submitting || e.state.Phase == domain.PhaseReview {
		return domain.OutcomeIgnored
	}

	id := e.state.StepID
	if err := e.tree.ShowStepValidation(id); err != nil {
		e.logger.Error("active step is not mounted", "step_id", id, "err", err)
		return domain.OutcomeIgnored
	}
	if blocked, _ := e.tree.StepHasValidationError(id); blocked {
		e.logger.Debug("next blocked by validation errors", "step_id", id)
		e.emitStep(ctx, e.hooks.OnStepBlocked, domain.EventStepBlocked)
		return domain.OutcomeBlocked
	}

	e.emitStep(ctx, e.hooks.OnStepLeave, domain.EventStepLeave)
	steps := e.tree.Steps()
	if next := nextVisible(steps, e.state.StepIndex+1); next >= 0 {
		e.state.StepID = steps[next].ID
		e.state.StepIndex = next
	} else {
		e.enterReview(len(steps))
	}
	e.logger.Debug("advanced", "step_id", e.state.StepID, "phase", e.state.Phase)
	e.emitStep(ctx, e.hooks.OnStepEnter, domain.EventStepEnter)
	return domain.OutcomeAdvanced
}

// Back moves one visible step back without any validation gate. Leaving review
// clears the last submit error.
func (e *Engine) Back(ctx context.Context) domain.Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Submitting {
		return domain.OutcomeIgnored
	}
	steps := e.tree.Steps()
	prev := prevVisible(steps, e.state.StepIndex-1)
	if prev < 0 {
		return domain.OutcomeIgnored
	}

	e.emitStep(ctx, e.hooks.OnStepLeave, domain.EventStepLeave)
	e.state.Phase = domain.PhaseEditing
	e.state.StepID = steps[prev].ID
	e.state.StepIndex = prev
	e.state.SubmitError = ""
	e.logger.Debug("went back", "step_id", e.state.StepID)
	e.emitStep(ctx, e.hooks.OnStepEnter, domain.EventStepEnter)
	return domain.OutcomeAdvanced
}

// CanSubmit reports whether Submit would invoke the host callback: no validation
// error anywhere, a valid document and no submit in flight.
func (e *Engine) CanSubmit() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.canSubmit()
}

func (e *Engine) canSubmit() bool {
	return !e.tree.HasValidationError() &&
		e.editor.Status() == domain.EditorSuccess &&
		!e.state.Submitting
}

// Submit hands a copy of the item to the host callback. It only acts on the review
// step. A rejection is stored as the displayed submit error, returned as a
// *domain.SubmitRejectedError and leaves the wizard on review.
func (e *Engine) Submit(ctx context.Context) (domain.Outcome, error) {
	e.mu.Lock()
	if e.state.Phase != domain.PhaseReview || e.state.Submitting {
		e.mu.Unlock()
		return domain.OutcomeIgnored, nil
	}
	if !e.canSubmit() {
		e.mu.Unlock()
		return domain.OutcomeBlocked, nil
	}
	e.state.Submitting = true
	e.state.SubmitError = ""
	payload := item.Clone(e.tree.Item())
	e.emitSubmit(ctx, e.hooks.OnSubmit, &domain.SubmitEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventSubmit},
	})
	e.mu.Unlock()

	start := time.Now()
	err := e.invokeSubmit(ctx, payload)
	elapsed := time.Since(start)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Submitting = false

	ev := &domain.SubmitEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventSubmitResult},
		Outcome:   domain.OutcomeSubmitted,
		Duration:  elapsed,
	}
	if err != nil {
		msg := err.Error()
		var unknown *unknownPanic
		if msg == "" || errors.As(err, &unknown) {
			msg = e.strings.UnknownError
		}
		e.state.SubmitError = msg
		ev.Outcome = domain.OutcomeRejected
		ev.Message = msg
		e.logger.Warn("submit rejected", "err", err, "duration", elapsed)
		e.emitSubmit(ctx, e.hooks.OnSubmitResult, ev)
		return domain.OutcomeRejected, &domain.SubmitRejectedError{Message: msg, Cause: err}
	}

	e.logger.Info("submitted", "duration", elapsed)
	e.emitSubmit(ctx, e.hooks.OnSubmitResult, ev)
	return domain.OutcomeSubmitted, nil
}

// unknownPanic wraps a panic value that carries no error message.
type unknownPanic struct {
	value any
}

func (p *unknownPanic) Error() string {
	return fmt.Sprintf("submit panicked: %v", p.value)
}

func (e *Engine) invokeSubmit(ctx context.Context, payload any) (err error) {
	if e.onSubmit == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			if perr, ok := r.(error); ok {
				err = perr
				return
			}
			err = &unknownPanic{value: r}
		}
	}()
	return e.onSubmit(ctx, payload)
}

// Cancel invokes the host cancel callback. The wizard state is unchanged.
func (e *Engine) Cancel() {
	e.mu.Lock()
	fn := e.onCancel
	e.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Alerts returns the footer messages for the active step.
func (e *Engine) Alerts() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []string
	if e.state.Phase != domain.PhaseReview {
		st, err := e.tree.Step(e.state.StepID)
		if err == nil && st.HasValidationError && st.ShowValidation {
			out = append(out, e.strings.FixValidationErrors)
		}
		return out
	}

	show := e.tree.ShowingAllValidation()
	if show && e.editor.Status() == domain.EditorFailure {
		out = append(out, e.strings.FixEditorValidationErrors)
	}
	if show && e.tree.HasValidationError() {
		out = append(out, e.strings.FixValidationErrors)
	}
	if show && e.editor.Status() == domain.EditorPending {
		out = append(out, e.strings.WaitForEditorValidation)
	}
	if e.state.SubmitError != "" {
		out = append(out, e.state.SubmitError)
	}
	return out
}

// SetValue writes an input value, addressed by its absolute key.
func (e *Engine) SetValue(key string, v any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tree.SetValue(key, v)
}

// AddItem appends to an array input.
func (e *Engine) AddItem(key string, values ...any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tree.AddItem(key, values...)
}

// RemoveItem removes an array element.
func (e *Engine) RemoveItem(key string, index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tree.RemoveItem(key, index)
}

// MoveItem moves an array element.
func (e *Engine) MoveItem(key string, from, to int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tree.MoveItem(key, from, to)
}

// ReplaceItem swaps the edited item wholesale and resets the step registry.
func (e *Engine) ReplaceItem(ctx context.Context, root any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.replaceItem(ctx, root)
}

func (e *Engine) replaceItem(ctx context.Context, root any) {
	e.tree.ReplaceItem(root)
	if e.hooks.OnItemReplaced != nil {
		e.hooks.OnItemReplaced(ctx, &domain.ItemEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventItemReplaced},
			Identity:  e.tree.Document().Identity(),
		})
	}
}

// Text renders the item for the raw-text editor.
func (e *Engine) Text() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editor.Render(e.tree.Item())
}

// SetText parses editor text and, when it parses, replaces the item with it.
// A failed parse keeps the current item and sets the editor status to failure.
func (e *Engine) SetText(ctx context.Context, text string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.editor.Parse(text)
	if !ok {
		e.logger.Debug("editor text rejected", "err", e.editor.Err())
		return false
	}
	e.replaceItem(ctx, v)
	return true
}

// SetEditorStatus records a validity status computed by the host.
func (e *Engine) SetEditorStatus(s domain.EditorStatus) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.editor.SetStatus(s)
}

// EditorStatus returns the current editor status.
func (e *Engine) EditorStatus() domain.EditorStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editor.Status()
}

// EditorMessage returns the localized parse error of the editor, "" when it parses.
func (e *Engine) EditorMessage() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editor.Message()
}

func (e *Engine) emitStep(ctx context.Context, hook func(context.Context, *domain.StepEvent), typ domain.EventType) {
	if hook == nil {
		return
	}
	hook(ctx, &domain.StepEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: typ},
		StepID:    e.state.StepID,
		Index:     e.state.StepIndex,
	})
}

func (e *Engine) emitSubmit(ctx context.Context, hook func(context.Context, *domain.SubmitEvent), ev *domain.SubmitEvent) {
	if hook != nil {
		hook(ctx, ev)
	}
}
