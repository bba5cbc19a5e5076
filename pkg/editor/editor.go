package editor

import (
	"errors"

	"github.com/aretw0/formwizard/pkg/domain"
	"github.com/aretw0/formwizard/pkg/i18n"
)

// Editor is the core side of the raw-text document editor: it renders the item as text,
// parses edited text back and exposes the tri-state syntax-validity signal consumed by
// the Submit gate.
type Editor struct {
	format  Format
	status  domain.EditorStatus
	err     *ParseError
	strings *i18n.Strings
}

// Option configures the Editor.
type Option func(*Editor)

// WithFormat selects the text format (YAML by default).
func WithFormat(f Format) Option {
	return func(e *Editor) {
		e.format = f
	}
}

// WithStrings sets the localization table used for parse messages.
func WithStrings(s *i18n.Strings) Option {
	return func(e *Editor) {
		e.strings = s
	}
}

// New creates an editor whose status starts as success.
func New(opts ...Option) *Editor {
	e := &Editor{
		format:  FormatYAML,
		status:  domain.EditorSuccess,
		strings: i18n.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Format returns the text format in use.
func (e *Editor) Format() Format {
	return e.format
}

// Render returns the text of item.
func (e *Editor) Render(item any) (string, error) {
	return ObjectToText(item, e.format)
}

// Parse converts edited text into an item. On failure the status becomes failure, the
// returned item is empty and ok is false; callers keep their last good item.
func (e *Editor) Parse(text string) (v any, ok bool) {
	v, err := TextToObject(text)
	if err != nil {
		var perr *ParseError
		if !errors.As(err, &perr) {
			perr = &ParseError{Line: 1, Message: err.Error(), Err: err}
		}
		e.err = perr
		e.status = domain.EditorFailure
		return v, false
	}
	e.err = nil
	e.status = domain.EditorSuccess
	return v, true
}

// Status returns the current syntax-validity signal.
func (e *Editor) Status() domain.EditorStatus {
	return e.status
}

// SetStatus lets a host that validates asynchronously report pending or a result.
func (e *Editor) SetStatus(s domain.EditorStatus) {
	e.status = s
	if s != domain.EditorFailure {
		e.err = nil
	}
}

// Err returns the last parse error, nil when the text is valid.
func (e *Editor) Err() *ParseError {
	return e.err
}

// Message returns the localized description of the last parse error, "" when valid.
func (e *Editor) Message() string {
	if e.err == nil {
		return ""
	}
	return e.strings.SyntaxError(e.err.Line, e.err.Message)
}
