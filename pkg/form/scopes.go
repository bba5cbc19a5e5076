package form

import (
	"github.com/aretw0/formwizard/pkg/item"
	"github.com/aretw0/formwizard/pkg/scope"
)

// scopeSet is one node per aggregate kind, mounted together.
type scopeSet struct {
	inputs     *scope.Aggregator
	value      *scope.Aggregator
	validation *scope.Aggregator
}

func newScopeSet() scopeSet {
	return scopeSet{
		inputs:     scope.NewAggregator(scope.HasInputs),
		value:      scope.NewAggregator(scope.HasValue),
		validation: scope.NewAggregator(scope.HasValidationError),
	}
}

func (s scopeSet) child() scopeSet {
	return scopeSet{
		inputs:     s.inputs.Child(),
		value:      s.value.Child(),
		validation: s.validation.Child(),
	}
}

func (s scopeSet) detach() {
	s.inputs.Detach()
	s.value.Detach()
	s.validation.Detach()
}

func (s scopeSet) recompute() {
	s.inputs.Recompute()
	s.value.Recompute()
	s.validation.Recompute()
}

// mountCtx is what a component sees from its ancestors.
type mountCtx struct {
	tree   *Tree
	base   item.Path
	scopes scopeSet
	show   *scope.Broadcaster
	stepID string
}

// bound returns the item the component is bound to.
func (c mountCtx) bound() any {
	return c.tree.doc.Get(c.base, nil)
}

type node interface {
	reconcile()
	unmount()
	walk(fn func(*binding))
	review() []ReviewNode
}

func mountAll(ctx mountCtx, comps []Component) []node {
	nodes := make([]node, 0, len(comps))
	for _, c := range comps {
		if c == nil {
			continue
		}
		nodes = append(nodes, c.mount(ctx))
	}
	return nodes
}

func reconcileAll(nodes []node) {
	for _, n := range nodes {
		n.reconcile()
	}
}

func unmountAll(nodes []node) {
	for _, n := range nodes {
		n.unmount()
	}
}

func walkAll(nodes []node, fn func(*binding)) {
	for _, n := range nodes {
		n.walk(fn)
	}
}

func reviewAll(nodes []node) []ReviewNode {
	var out []ReviewNode
	for _, n := range nodes {
		out = append(out, n.review()...)
	}
	return out
}
