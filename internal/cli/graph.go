package cli

import (
	"fmt"
	"io"

	"github.com/aretw0/formwizard"
	"github.com/aretw0/formwizard/internal/presentation/graph"
	"github.com/aretw0/formwizard/pkg/definition"
)

// GraphOptions configures the graph export.
type GraphOptions struct {
	Definition string
	// Data, when set, decides which steps are hidden and which show errors.
	Data   string
	Config Config
	Out    io.Writer
}

// Graph prints the Mermaid flowchart of a definition's steps.
func Graph(opts GraphOptions) error {
	def, err := definition.LoadFile(opts.Definition)
	if err != nil {
		return err
	}
	initial, err := readDocument(opts.Data)
	if err != nil {
		return err
	}

	wiz, err := formwizard.NewFromDefinition(def,
		formwizard.WithLogger(createLogger(opts.Config.LogLevel)),
		formwizard.WithInitialData(initial),
	)
	if err != nil {
		return err
	}
	defer wiz.Close()

	_, err = fmt.Fprint(opts.Out, graph.GenerateMermaid(wiz.Steps(), wiz.Strings().ReviewLabel, &graph.Overlay{
		CurrentStep: wiz.State().StepID,
	}))
	return err
}
