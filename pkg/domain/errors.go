package domain

import (
	"errors"
	"fmt"
)

// ErrNoSteps is returned when a wizard is built without any step.
var ErrNoSteps = errors.New("wizard has no steps")

// ErrDuplicateStep is returned when two steps share the same id.
var ErrDuplicateStep = errors.New("duplicate step id")

// ErrEmptyStepID is returned when a step has no id.
var ErrEmptyStepID = errors.New("step id is empty")

// ErrReservedStepID is returned when a step uses the id reserved for the review step.
var ErrReservedStepID = errors.New("step id is reserved")

// ErrStepNotFound is returned when a step id is not part of the wizard.
var ErrStepNotFound = errors.New("step not found")

// ErrFieldNotFound is returned when no mounted field matches a key.
var ErrFieldNotFound = errors.New("field not found")

// ErrNotAnArray is returned when an array operation targets a key that is not a mounted array.
var ErrNotAnArray = errors.New("not an array input")

// ErrIndexOutOfRange is returned by array operations with an invalid index.
var ErrIndexOutOfRange = errors.New("index out of range")

// SubmitRejectedError is returned when the host submit callback fails.
// Message is what the review step displays.
type SubmitRejectedError struct {
	Message string
	Cause   error
}

func (e *SubmitRejectedError) Error() string {
	return fmt.Sprintf("submit rejected: %s", e.Message)
}

func (e *SubmitRejectedError) Unwrap() error {
	return e.Cause
}
