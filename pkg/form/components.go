package form

import (
	"github.com/aretw0/formwizard/pkg/domain"
	"github.com/aretw0/formwizard/pkg/item"
)

// Component is anything that can be placed inside a Step: *Field, *Section or *Array.
type Component interface {
	mount(ctx mountCtx) node
}

// Input is the binding shared by every value-carrying component.
type Input struct {
	// ID identifies the input. It doubles as the path when Path is empty.
	ID string

	// Path is the dotted path of the value, relative to the bound item.
	Path string

	Label    string
	Required bool

	// Validation runs after the required rule, with the value and the bound item.
	Validation domain.ValidationFunc

	// Hidden makes the input inert: no error, no contribution to any aggregate.
	Hidden domain.HiddenFunc

	// Default is returned when the path is missing. It is never written back.
	Default any

	InputValueToPathValue func(input, pathValue any) any
	PathValueToInputValue func(pathValue any) any

	// OnValueChange runs after a write with the new input value and the bound item.
	OnValueChange func(value, item any)

	// DisableAutohide makes the input report "has inputs" even when it is not a
	// standard input, so the enclosing step is never auto-hidden.
	DisableAutohide bool
}

func (in *Input) path() item.Path {
	if in.Path != "" {
		return item.ParsePath(in.Path)
	}
	return item.ParsePath(in.ID)
}

// Field is a leaf input.
type Field struct {
	Input

	// DisplayOnly marks a component that shows a value without being edited
	// (a summary, a read-only label). It does not count as an input unless
	// DisableAutohide is set.
	DisplayOnly bool
}

func (f *Field) mount(ctx mountCtx) node {
	return &fieldNode{binding: newBinding(&f.Input, !f.DisplayOnly, ctx, ctx.scopes.child())}
}

// Section groups components under a nested scope and may rebind the item.
type Section struct {
	ID    string
	Label string

	// Path rebinds the item of the children to a descendant of the current item.
	Path string

	// Hidden is evaluated against the item bound outside the section.
	// A hidden section unmounts its children.
	Hidden domain.HiddenFunc

	DisableAutohide bool
	Children        []Component
}

func (s *Section) mount(ctx mountCtx) node {
	inner := ctx
	inner.scopes = ctx.scopes.child()
	if s.Path != "" {
		inner.base = ctx.base.Join(item.ParsePath(s.Path))
	}
	return &sectionNode{def: s, outer: ctx, ctx: inner}
}

// Array edits a sequence. Children are mounted once per element with the element as
// their bound item, each element under its own validation scope.
type Array struct {
	Input

	Children []Component

	// NewValue builds the element appended by AddItem when no value is given.
	// A nil NewValue appends an empty map.
	NewValue func() any

	// DisallowEmpty appends NewValue whenever the sequence becomes empty.
	DisallowEmpty bool

	// Summary labels an element in review and in collapsed views.
	Summary func(element any, index int) string
}

func (a *Array) newValue() any {
	if a.NewValue != nil {
		return a.NewValue()
	}
	return map[string]any{}
}

func (a *Array) mount(ctx mountCtx) node {
	scopes := ctx.scopes.child()
	n := &arrayNode{def: a, scopes: scopes}
	n.binding = newBinding(&a.Input, true, ctx, scopes.child())
	n.binding.array = n
	return n
}

// Step is a top level page of the wizard.
type Step struct {
	ID    string
	Label string

	// Hidden is evaluated against the root item. Hidden steps unmount their children
	// and are skipped by navigation.
	Hidden domain.HiddenFunc

	Children []Component
}

// Descriptor returns the step descriptor.
func (s *Step) Descriptor() domain.StepDescriptor {
	return domain.StepDescriptor{ID: s.ID, Label: s.Label, Hidden: s.Hidden}
}
