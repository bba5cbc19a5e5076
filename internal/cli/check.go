package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/formwizard"
	"github.com/aretw0/formwizard/internal/presentation/tui"
	"github.com/aretw0/formwizard/pkg/definition"
	"github.com/aretw0/formwizard/pkg/form"
)

// ErrInvalidDocument is returned by Check when the data fails the definition.
var ErrInvalidDocument = errors.New("document has validation errors")

// CheckOptions configures a non-interactive validation.
type CheckOptions struct {
	Definition string
	Data       string
	Config     Config
	Out        io.Writer
}

// Check mounts the definition over a data file and reports every field error of the
// visible inputs, grouped by step.
func Check(opts CheckOptions) error {
	def, err := definition.LoadFile(opts.Definition)
	if err != nil {
		return err
	}
	initial, err := readDocument(opts.Data)
	if err != nil {
		return err
	}

	wopts := []formwizard.Option{
		formwizard.WithLogger(createLogger(opts.Config.LogLevel)),
		formwizard.WithInitialData(initial),
	}
	if s, err := loadStrings(opts.Config.Strings); err != nil {
		return err
	} else if s != nil {
		wopts = append(wopts, formwizard.WithStrings(s))
	}

	wiz, err := formwizard.NewFromDefinition(def, wopts...)
	if err != nil {
		return err
	}
	defer wiz.Close()

	errs := form.FieldErrors(wiz.Errors())
	if len(errs) == 0 {
		fmt.Fprintln(opts.Out, tui.Success("Document is valid."))
		return nil
	}

	labels := make(map[string]string)
	for _, s := range wiz.Steps() {
		labels[s.ID] = s.Label
	}
	step := ""
	for _, err := range errs {
		var fe *form.FieldError
		if !errors.As(err, &fe) {
			continue
		}
		if fe.StepID != step {
			step = fe.StepID
			fmt.Fprintf(opts.Out, "%s:\n", labels[step])
		}
		fmt.Fprintf(opts.Out, "  %s: %s\n", fe.Key, tui.Failure(fe.Reason))
	}
	return fmt.Errorf("%d errors: %w", len(errs), ErrInvalidDocument)
}
