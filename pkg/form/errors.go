package form

import "fmt"

// FieldError is one field failing its required rule or its custom validator.
type FieldError struct {
	Key    string
	StepID string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Key, e.Reason)
}

// AggregateError collects every visible field error of a tree.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// FieldErrors returns the collected errors if err is an AggregateError, nil otherwise.
func FieldErrors(err error) []error {
	if aggr, ok := err.(*AggregateError); ok {
		return aggr.Errors
	}
	return nil
}
