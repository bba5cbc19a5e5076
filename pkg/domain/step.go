package domain

import "context"

// HiddenFunc decides from the bound item whether a step, section or input is hidden.
type HiddenFunc func(item any) bool

// ValidationFunc is a per-field custom validator.
// It receives the field value and the bound item and returns an error message, or "" when valid.
// Validators must be pure and synchronous.
type ValidationFunc func(value any, item any) string

// StepDescriptor describes one wizard step.
type StepDescriptor struct {
	ID     string
	Label  string
	Hidden HiddenFunc
}

// ValidationState is the derived validation view of one field.
type ValidationState struct {
	// Error is the current error message ("" when valid or hidden).
	Error string

	// ShouldDisplay is true when the error must be rendered: the show-validation
	// signal is effective at the field and Error is not empty.
	ShouldDisplay bool
}

// SubmitFunc is the host callback invoked by Submit.
type SubmitFunc func(ctx context.Context, item any) error

// CancelFunc is the host callback invoked by Cancel.
type CancelFunc func()
