package dsl

import (
	"fmt"

	"github.com/aretw0/formwizard/pkg/domain"
	"github.com/aretw0/formwizard/pkg/form"
)

// Builder collects steps in declaration order.
type Builder struct {
	steps []*StepBuilder
	index map[string]*StepBuilder
}

// New creates a new step builder.
func New() *Builder {
	return &Builder{
		index: make(map[string]*StepBuilder),
	}
}

// Add creates a new step.
// If the step already exists, it returns the existing builder.
func (b *Builder) Add(id string) *StepBuilder {
	if sb, ok := b.index[id]; ok {
		return sb
	}
	sb := &StepBuilder{step: &form.Step{ID: id}}
	b.steps = append(b.steps, sb)
	b.index[id] = sb
	return sb
}

// Build returns the declared steps.
func (b *Builder) Build() ([]*form.Step, error) {
	if len(b.steps) == 0 {
		return nil, fmt.Errorf("failed to build steps: %w", domain.ErrNoSteps)
	}
	out := make([]*form.Step, 0, len(b.steps))
	for _, sb := range b.steps {
		out = append(out, sb.step)
	}
	return out, nil
}

// StepBuilder provides a fluent API for configuring a step.
type StepBuilder struct {
	step *form.Step
}

// Label sets the step label.
func (s *StepBuilder) Label(label string) *StepBuilder {
	s.step.Label = label
	return s
}

// HiddenWhen hides the step (and skips it in navigation) while fn holds for the item.
func (s *StepBuilder) HiddenWhen(fn domain.HiddenFunc) *StepBuilder {
	s.step.Hidden = fn
	return s
}

// Field appends an editable field.
func (s *StepBuilder) Field(id string, opts ...InputOption) *StepBuilder {
	return s.With(Field(id, opts...))
}

// Display appends a display-only field.
func (s *StepBuilder) Display(id string, opts ...InputOption) *StepBuilder {
	return s.With(Display(id, opts...))
}

// Section appends a section rebinding its children to path.
func (s *StepBuilder) Section(id, path string, children ...form.Component) *StepBuilder {
	return s.With(&form.Section{ID: id, Path: path, Children: children})
}

// Array appends an array input.
func (s *StepBuilder) Array(a *form.Array) *StepBuilder {
	return s.With(a)
}

// With appends prebuilt components.
func (s *StepBuilder) With(components ...form.Component) *StepBuilder {
	s.step.Children = append(s.step.Children, components...)
	return s
}
