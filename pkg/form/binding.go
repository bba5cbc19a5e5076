package form

import (
	"github.com/aretw0/formwizard/pkg/domain"
	"github.com/aretw0/formwizard/pkg/item"
)

// binding is the path-addressed accessor of one input plus its derived state.
type binding struct {
	in       *Input
	ctx      mountCtx
	key      item.Path
	leaf     scopeSet
	standard bool
	array    *arrayNode

	derived bool
	value   any
	hidden  bool
	err     string
}

func newBinding(in *Input, standard bool, ctx mountCtx, leaf scopeSet) *binding {
	return &binding{
		in:       in,
		ctx:      ctx,
		key:      ctx.base.Join(in.path()),
		leaf:     leaf,
		standard: standard,
	}
}

// derive recomputes (value, hidden, error) and reports to the leaf scopes only when
// one of the three changed.
func (b *binding) derive() {
	bound := b.ctx.bound()
	value := b.ctx.tree.doc.Get(b.key, b.in.Default)
	hidden := b.in.Hidden != nil && b.in.Hidden(bound)

	var msg string
	if !hidden {
		msg = b.validate(value, bound)
	}

	if b.derived && item.Same(value, b.value) && hidden == b.hidden && msg == b.err {
		return
	}
	b.derived = true
	b.value, b.hidden, b.err = value, hidden, msg

	b.leaf.validation.Revalidate(msg != "")
	b.leaf.inputs.DeclareLocal(!hidden && (b.standard || b.in.DisableAutohide))
	b.leaf.value.DeclareLocal(!hidden && item.HasValue(value))
}

func (b *binding) validate(value, bound any) string {
	if b.in.Required && item.IsMissing(value) {
		return b.ctx.tree.strings.Required
	}
	if b.in.Validation != nil {
		return b.in.Validation(value, bound)
	}
	return ""
}

// set writes an input value back to the item.
func (b *binding) set(v any) {
	doc := b.ctx.tree.doc
	pv := v
	if b.in.InputValueToPathValue != nil {
		pv = b.in.InputValueToPathValue(v, doc.Get(b.key, nil))
	}
	doc.Set(b.key, pv)
	if b.in.OnValueChange != nil {
		b.in.OnValueChange(v, b.ctx.bound())
	}
}

func (b *binding) inputValue() any {
	if b.in.PathValueToInputValue != nil {
		return b.in.PathValueToInputValue(b.value)
	}
	return b.value
}

func (b *binding) validationState() domain.ValidationState {
	return domain.ValidationState{
		Error:         b.err,
		ShouldDisplay: b.err != "" && b.ctx.show.Effective(),
	}
}

func (b *binding) state() FieldState {
	st := FieldState{
		Key:        b.key.String(),
		ID:         b.in.ID,
		Label:      b.in.Label,
		StepID:     b.ctx.stepID,
		Value:      b.inputValue(),
		Hidden:     b.hidden,
		Required:   b.in.Required,
		Validation: b.validationState(),
	}
	if b.array != nil {
		st.IsArray = true
		st.ItemErrors = b.array.itemErrors()
	}
	return st
}

// FieldState is the read-only view of one mounted input.
type FieldState struct {
	// Key is the absolute dotted path of the value; it addresses the input in Tree methods.
	Key    string
	ID     string
	Label  string
	StepID string

	// Value is the input value, after PathValueToInputValue.
	Value any

	Hidden     bool
	Required   bool
	Validation domain.ValidationState

	IsArray bool

	// ItemErrors marks, per array element, whether the element holds a validation error.
	ItemErrors []bool
}

type fieldNode struct {
	*binding
}

func (f *fieldNode) reconcile() {
	f.derive()
}

func (f *fieldNode) unmount() {
	f.leaf.detach()
}

func (f *fieldNode) walk(fn func(*binding)) {
	fn(f.binding)
}

func (f *fieldNode) review() []ReviewNode {
	if f.hidden || !item.HasValue(f.value) {
		return nil
	}
	return []ReviewNode{{
		Kind:  ReviewField,
		Key:   f.key.String(),
		Label: labelOr(f.in.Label, f.in.ID),
		Value: f.inputValue(),
	}}
}

func labelOr(label, id string) string {
	if label != "" {
		return label
	}
	return id
}
