package formwizard

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/formwizard/pkg/domain"
	"github.com/aretw0/formwizard/pkg/form"
)

// Runner drives a Wizard from line-based commands read from Input.
// This allows for easy testing and integration with different frontends (CLI, scripts, pipes).
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	Renderer ContentRenderer
}

// ContentRenderer transforms the markdown of a step before it is written.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// NewRunner creates a Runner. Input and Output must be set before Run.
func NewRunner() *Runner {
	return &Runner{}
}

const runnerHelp = `Commands:
  set <key> <value>    write an input (value is read as YAML: 3, true, "text"; null clears it)
  unset <key>          clear an input
  add <key> [value]    append an element to an array input
  rm <key> <index>     remove an array element
  mv <key> <from> <to> move an array element
  next | back          navigate between steps
  submit               submit the document (review step only)
  show                 print the active step again
  text                 print the document
  edit                 replace the document: paste it, then end with a line containing "."
  cancel | quit        leave without submitting
  help                 print this help`

// Run executes the command loop until the wizard is submitted, cancelled, the input
// ends or ctx is done.
func (r *Runner) Run(ctx context.Context, w *Wizard) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	lines := bufio.NewReader(r.Input)

	w.Start(ctx)
	if !r.Headless && w.Title != "" {
		fmt.Fprintf(r.Output, "--- %s ---\n", w.Title)
	}
	r.show(w)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !r.Headless {
			fmt.Fprint(r.Output, "> ")
		}
		text, err := lines.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || text == "") {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}

		line, err := SanitizeInput(text)
		if err != nil {
			fmt.Fprintf(r.Output, "error: %v\n", err)
			continue
		}
		done, err := r.exec(ctx, w, lines, strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintf(r.Output, "error: %v\n", err)
		}
		if done {
			return nil
		}
	}
}

// exec runs one command line and reports whether the session is over.
func (r *Runner) exec(ctx context.Context, w *Wizard, lines *bufio.Reader, line string) (bool, error) {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	args := strings.Fields(rest)

	switch cmd {
	case "":
		return false, nil
	case "help":
		fmt.Fprintln(r.Output, runnerHelp)
	case "show":
		r.show(w)
	case "set":
		key, raw, ok := strings.Cut(rest, " ")
		if !ok || key == "" {
			return false, fmt.Errorf("usage: set <key> <value>")
		}
		if err := w.SetValue(key, parseScalar(strings.TrimSpace(raw))); err != nil {
			return false, err
		}
		r.show(w)
	case "unset":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: unset <key>")
		}
		if err := w.SetValue(args[0], nil); err != nil {
			return false, err
		}
		r.show(w)
	case "add":
		if len(args) == 0 {
			return false, fmt.Errorf("usage: add <key> [value]")
		}
		var values []any
		if _, raw, ok := strings.Cut(rest, " "); ok {
			values = append(values, parseScalar(strings.TrimSpace(raw)))
		}
		if err := w.AddItem(args[0], values...); err != nil {
			return false, err
		}
		r.show(w)
	case "rm":
		idx, err := intArgs(args, 2, "usage: rm <key> <index>")
		if err != nil {
			return false, err
		}
		if err := w.RemoveItem(args[0], idx[0]); err != nil {
			return false, err
		}
		r.show(w)
	case "mv":
		idx, err := intArgs(args, 3, "usage: mv <key> <from> <to>")
		if err != nil {
			return false, err
		}
		if err := w.MoveItem(args[0], idx[0], idx[1]); err != nil {
			return false, err
		}
		r.show(w)
	case "next":
		if w.Next(ctx) == domain.OutcomeIgnored {
			return false, ignored(w, "already on the review step")
		}
		r.show(w)
	case "back":
		if w.Back(ctx) == domain.OutcomeIgnored {
			return false, ignored(w, "no previous step")
		}
		r.show(w)
	case "submit":
		outcome, err := w.Submit(ctx)
		switch outcome {
		case domain.OutcomeSubmitted:
			fmt.Fprintln(r.Output, "Submitted.")
			return true, nil
		case domain.OutcomeIgnored:
			return false, ignored(w, "submit is only available on the review step")
		}
		r.show(w)
		return false, err
	case "text":
		text, err := w.Text()
		if err != nil {
			return false, err
		}
		fmt.Fprint(r.Output, text)
	case "edit":
		return false, r.edit(ctx, w, lines)
	case "cancel", "quit", "exit":
		w.Cancel()
		if !r.Headless {
			fmt.Fprintln(r.Output, "Bye!")
		}
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q (try help)", cmd)
	}
	return false, nil
}

func (r *Runner) edit(ctx context.Context, w *Wizard, lines *bufio.Reader) error {
	var buf strings.Builder
	for {
		text, err := lines.ReadString('\n')
		if strings.TrimRight(text, "\r\n") == "." {
			break
		}
		buf.WriteString(text)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("input error: %w", err)
		}
	}
	text, err := SanitizeInput(buf.String())
	if err != nil {
		return err
	}
	if !w.SetText(ctx, text) {
		return errors.New(w.EditorMessage())
	}
	r.show(w)
	return nil
}

func (r *Runner) show(w *Wizard) {
	md := Markdown(w)
	if r.Renderer != nil {
		if rendered, err := r.Renderer(md); err == nil {
			md = rendered
		}
	}
	fmt.Fprintln(r.Output, strings.TrimSpace(md))
}

// Markdown renders the active step (or the review) with its alerts.
func Markdown(w *Wizard) string {
	var b strings.Builder
	state := w.State()
	steps := w.Steps()

	if state.Phase == domain.PhaseReview {
		fmt.Fprintf(&b, "# %s\n\n", w.Strings().ReviewLabel)
		writeReview(&b, w.Review(), 0)
	} else {
		visible, pos := 0, 0
		for i, s := range steps {
			if s.Hidden {
				continue
			}
			visible++
			if i == state.StepIndex {
				pos = visible
			}
		}
		fmt.Fprintf(&b, "# %s (%d/%d)\n\n", steps[state.StepIndex].Label, pos, visible)
		fields, _ := w.Fields(state.StepID)
		for _, f := range fields {
			writeField(&b, w, f)
		}
	}

	if alerts := w.Alerts(); len(alerts) > 0 {
		b.WriteString("\n")
		for _, a := range alerts {
			fmt.Fprintf(&b, "> **%s**\n", a)
		}
	}
	return b.String()
}

func writeField(b *strings.Builder, w *Wizard, f form.FieldState) {
	if f.Hidden {
		return
	}
	label := f.Label
	if label == "" {
		label = f.ID
	}
	if f.Required {
		label += " *"
	}

	if f.IsArray {
		fmt.Fprintf(b, "- %s `%s`: %d item(s)", label, f.Key, len(f.ItemErrors))
		for i, bad := range f.ItemErrors {
			if bad {
				fmt.Fprintf(b, " [#%d: %s]", i, w.Strings().ExpandToFixValidationErrors)
			}
		}
	} else {
		fmt.Fprintf(b, "- %s `%s`: %s", label, f.Key, formatValue(f.Value))
	}
	if f.Validation.ShouldDisplay {
		fmt.Fprintf(b, " _(%s)_", f.Validation.Error)
	}
	b.WriteString("\n")
}

func writeReview(b *strings.Builder, nodes []form.ReviewNode, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		switch n.Kind {
		case form.ReviewStep:
			fmt.Fprintf(b, "%s- **%s**\n", indent, n.Label)
		case form.ReviewField:
			fmt.Fprintf(b, "%s- %s: %s\n", indent, n.Label, formatValue(n.Value))
		default:
			fmt.Fprintf(b, "%s- %s\n", indent, n.Label)
		}
		writeReview(b, n.Children, depth+1)
	}
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "_empty_"
	case string:
		if x == "" {
			return "_empty_"
		}
		return x
	case map[string]any, []any:
		out, err := yaml.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return strings.ReplaceAll(strings.TrimSpace(string(out)), "\n", "; ")
	default:
		return fmt.Sprint(x)
	}
}

// ignored explains why the engine ignored a command. A submit in flight takes precedence
// over the command's own reason.
func ignored(w *Wizard, reason string) error {
	if w.State().Submitting {
		return errors.New("a submission is in progress")
	}
	return errors.New(reason)
}

// parseScalar reads a command argument as a YAML value so numbers and booleans keep
// their type and null clears the input like unset. Text that is not valid YAML, or
// holds only a comment, is kept verbatim.
func parseScalar(raw string) any {
	if raw == "" {
		return ""
	}
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &doc); err != nil || len(doc.Content) == 0 {
		return raw
	}
	var v any
	if err := doc.Content[0].Decode(&v); err != nil {
		return raw
	}
	return v
}

func intArgs(args []string, n int, usage string) ([]int, error) {
	if len(args) != n {
		return nil, errors.New(usage)
	}
	out := make([]int, 0, n-1)
	for _, a := range args[1:] {
		i, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", usage, err)
		}
		out = append(out, i)
	}
	return out, nil
}
