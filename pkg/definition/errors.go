package definition

import (
	"fmt"
	"strings"
)

// CompileError is one problem found in a definition.
type CompileError struct {
	// Path locates the offending entry, e.g. "steps[1].inputs[0]".
	Path   string
	Reason string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// CompileErrors collects every problem found in one pass over a definition.
type CompileErrors []*CompileError

func (e CompileErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	lines := make([]string, len(e))
	for i, ce := range e {
		lines[i] = ce.Error()
	}
	return fmt.Sprintf("found %d errors:\n- %s", len(e), strings.Join(lines, "\n- "))
}
