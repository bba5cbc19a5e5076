package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/formwizard"
	"github.com/aretw0/formwizard/internal/presentation/tui"
	"github.com/aretw0/formwizard/pkg/definition"
	"github.com/aretw0/formwizard/pkg/editor"
	"github.com/aretw0/formwizard/pkg/observability"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	Definition string
	Data       string
	// Out receives the submitted document. Empty means Stdout.
	Out      string
	Headless bool
	Config   Config

	Stdin  io.Reader
	Stdout io.Writer
}

// Execute runs an interactive wizard session over a definition file.
func Execute(ctx context.Context, opts RunOptions) error {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	cfg := opts.Config
	logger := createLogger(cfg.LogLevel)

	def, err := definition.LoadFile(opts.Definition)
	if err != nil {
		return err
	}
	initial, err := readDocument(opts.Data)
	if err != nil {
		return err
	}
	format := editor.Format(cfg.Format)

	wopts := []formwizard.Option{
		formwizard.WithLogger(logger),
		formwizard.WithInitialData(initial),
		formwizard.WithFormat(format),
		formwizard.WithLifecycleHooks(observability.LoggingHooks(logger)),
		formwizard.WithSubmit(func(_ context.Context, item any) error {
			return writeDocument(opts, item, format)
		}),
	}
	if s, err := loadStrings(cfg.Strings); err != nil {
		return err
	} else if s != nil {
		wopts = append(wopts, formwizard.WithStrings(s))
	}
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		wopts = append(wopts, formwizard.WithMetrics(reg))
		mctx, stop := context.WithCancel(ctx)
		defer stop()
		serveMetrics(mctx, cfg.MetricsAddr, reg, logger)
	}

	wiz, err := formwizard.NewFromDefinition(def, wopts...)
	if err != nil {
		return err
	}
	defer wiz.Close()

	sc := NewSignalContext(ctx)
	defer sc.Cancel()

	runner := formwizard.NewRunner()
	runner.Input = NewInterruptibleReader(opts.Stdin, sc.Done())
	runner.Output = opts.Stdout
	runner.Headless = opts.Headless

	if out, ok := opts.Stdout.(*os.File); ok && tui.IsTerminal(out) && !opts.Headless {
		runner.Renderer = tui.NewRenderer()
		tui.PrintBanner(out, formwizard.Version)
	}
	if !opts.Headless && def.Description != "" {
		printSystemMessage(opts.Stdout, "%s", def.Description)
	}

	err = runner.Run(sc, wiz)
	if isInterrupted(err) && !opts.Headless {
		verb := "Interrupted"
		if sig := sc.Signal(); sig != nil && sig != os.Interrupt {
			verb = "Terminated"
		}
		fmt.Fprintln(opts.Stdout)
		printSystemMessage(opts.Stdout, "%s at '%s' step.", verb, wiz.State().StepID)
	}
	return handleExecutionError(err)
}

func writeDocument(opts RunOptions, item any, format editor.Format) error {
	text, err := editor.ObjectToText(item, format)
	if err != nil {
		return err
	}
	if opts.Out == "" {
		_, err = io.WriteString(opts.Stdout, text)
		return err
	}
	if err := os.WriteFile(opts.Out, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.Out, err)
	}
	return nil
}
