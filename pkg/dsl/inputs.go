package dsl

import (
	"github.com/aretw0/formwizard/pkg/domain"
	"github.com/aretw0/formwizard/pkg/form"
	"github.com/aretw0/formwizard/pkg/validators"
)

// InputOption configures the binding of a field or array.
type InputOption func(*form.Input)

// Label sets the input label.
func Label(label string) InputOption {
	return func(in *form.Input) { in.Label = label }
}

// Path binds the input to a dotted path other than its id.
func Path(path string) InputOption {
	return func(in *form.Input) { in.Path = path }
}

// Required applies the required rule.
func Required() InputOption {
	return func(in *form.Input) { in.Required = true }
}

// Default sets the value read when the path is missing.
func Default(v any) InputOption {
	return func(in *form.Input) { in.Default = v }
}

// Validate chains custom validators after any already set.
func Validate(fns ...domain.ValidationFunc) InputOption {
	return func(in *form.Input) {
		all := fns
		if in.Validation != nil {
			all = append([]domain.ValidationFunc{in.Validation}, fns...)
		}
		in.Validation = validators.Chain(all...)
	}
}

// HiddenWhen makes the input inert while fn holds for the bound item.
func HiddenWhen(fn domain.HiddenFunc) InputOption {
	return func(in *form.Input) { in.Hidden = fn }
}

// OnChange registers a side effect run after every write.
func OnChange(fn func(value, item any)) InputOption {
	return func(in *form.Input) { in.OnValueChange = fn }
}

// Transform converts between the input value and the stored path value.
func Transform(toPath func(input, pathValue any) any, fromPath func(pathValue any) any) InputOption {
	return func(in *form.Input) {
		in.InputValueToPathValue = toPath
		in.PathValueToInputValue = fromPath
	}
}

// KeepVisible sets DisableAutohide.
func KeepVisible() InputOption {
	return func(in *form.Input) { in.DisableAutohide = true }
}

func input(id string, opts []InputOption) form.Input {
	in := form.Input{ID: id}
	for _, opt := range opts {
		opt(&in)
	}
	return in
}

// Field builds an editable field.
func Field(id string, opts ...InputOption) *form.Field {
	return &form.Field{Input: input(id, opts)}
}

// Display builds a display-only field.
func Display(id string, opts ...InputOption) *form.Field {
	return &form.Field{Input: input(id, opts), DisplayOnly: true}
}

// Section builds a section with an optional label.
func Section(id, label, path string, children ...form.Component) *form.Section {
	return &form.Section{ID: id, Label: label, Path: path, Children: children}
}

// ArrayOption configures an array beyond its binding.
type ArrayOption func(*form.Array)

// NewValue sets the element appended by AddItem.
func NewValue(fn func() any) ArrayOption {
	return func(a *form.Array) { a.NewValue = fn }
}

// DisallowEmpty keeps at least one element in the array.
func DisallowEmpty() ArrayOption {
	return func(a *form.Array) { a.DisallowEmpty = true }
}

// Summary labels elements in review.
func Summary(fn func(element any, index int) string) ArrayOption {
	return func(a *form.Array) { a.Summary = fn }
}

// Binding applies input options to the array binding.
func Binding(opts ...InputOption) ArrayOption {
	return func(a *form.Array) {
		for _, opt := range opts {
			opt(&a.Input)
		}
	}
}

// Array builds an array whose elements are edited by children.
func Array(id string, children []form.Component, opts ...ArrayOption) *form.Array {
	a := &form.Array{Input: form.Input{ID: id}, Children: children}
	for _, opt := range opts {
		opt(a)
	}
	return a
}
