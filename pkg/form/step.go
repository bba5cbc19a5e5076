package form

import (
	"github.com/aretw0/formwizard/pkg/registry"
)

type stepNode struct {
	def      *Step
	ctx      mountCtx
	hidden   bool
	mounted  bool
	children []node

	setters    map[registry.Flag]registry.SetFlagFunc
	cancels    []func()
	unregister func()
}

func (t *Tree) mountStep(s *Step) *stepNode {
	n := &stepNode{def: s}
	n.ctx = mountCtx{
		tree:   t,
		scopes: t.root.child(),
		show:   t.show.Child(),
		stepID: s.ID,
	}
	n.refreshSetters()
	n.cancels = append(n.cancels,
		n.ctx.scopes.inputs.Watch(func(v bool) { n.announce(registry.HasInputs, v) }),
		n.ctx.scopes.validation.Watch(func(v bool) { n.announce(registry.HasValidationError, v) }),
	)
	n.unregister = t.registry.Register(s.ID, n.reannounce)
	return n
}

func (n *stepNode) refreshSetters() {
	reg := n.ctx.tree.registry
	n.setters = make(map[registry.Flag]registry.SetFlagFunc, len(registry.Flags))
	for _, f := range registry.Flags {
		n.setters[f] = reg.Setter(f)
	}
}

func (n *stepNode) announce(flag registry.Flag, v bool) {
	n.setters[flag](n.def.ID, v)
}

// reannounce runs after a registry reset. The step override is dropped with the old
// item; the aggregates are published again through the new setters.
func (n *stepNode) reannounce() {
	n.refreshSetters()
	n.ctx.show.SetOverride(false)
	n.announce(registry.HasInputs, n.ctx.scopes.inputs.Aggregate())
	n.announce(registry.HasValidationError, n.ctx.scopes.validation.Aggregate())
}

func (n *stepNode) showValidation() {
	n.ctx.show.SetOverride(true)
	n.announce(registry.ShowValidation, true)
}

func (n *stepNode) reconcile() {
	n.hidden = n.def.Hidden != nil && n.def.Hidden(n.ctx.tree.doc.Root())
	if n.hidden {
		if n.mounted {
			unmountAll(n.children)
			n.children = nil
			n.mounted = false
		}
		return
	}
	if !n.mounted {
		n.children = mountAll(n.ctx, n.def.Children)
		n.mounted = true
	}
	reconcileAll(n.children)
}

func (n *stepNode) unmount() {
	for _, cancel := range n.cancels {
		cancel()
	}
	n.cancels = nil
	n.ctx.scopes.detach()
	n.ctx.show.Detach()
	unmountAll(n.children)
	n.children = nil
	n.mounted = false
	n.unregister()
}

func (n *stepNode) walk(fn func(*binding)) {
	walkAll(n.children, fn)
}

func (n *stepNode) review() []ReviewNode {
	if n.hidden || !n.ctx.scopes.value.Aggregate() {
		return nil
	}
	return []ReviewNode{{
		Kind:     ReviewStep,
		Key:      n.def.ID,
		Label:    labelOr(n.def.Label, n.def.ID),
		Children: reviewAll(n.children),
	}}
}

// StepState is the registry view of one step.
type StepState struct {
	ID     string
	Label  string
	Hidden bool

	HasInputs          bool
	HasValidationError bool
	ShowValidation     bool

	// ShowErrorIcon is (global show || step show) && step has an error.
	ShowErrorIcon bool
}
