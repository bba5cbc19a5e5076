package scope

// Kind names the condition an Aggregator tracks.
type Kind string

const (
	HasInputs          Kind = "has_inputs"
	HasValue           Kind = "has_value"
	HasValidationError Kind = "has_validation_error"
)

// Kinds lists every aggregate kind mounted by a structural wrapper.
var Kinds = []Kind{HasInputs, HasValue, HasValidationError}

// Aggregator is one bottom-up OR aggregate of a given kind.
type Aggregator struct {
	kind     Kind
	parent   *Aggregator
	children []*Aggregator
	local    bool
	value    bool
	attached bool

	watchers map[int]func(bool)
	nextID   int
}

// NewAggregator creates a root aggregator.
func NewAggregator(kind Kind) *Aggregator {
	return &Aggregator{kind: kind, attached: true}
}

// Kind returns the condition tracked by the aggregator.
func (a *Aggregator) Kind() Kind {
	return a.kind
}

// Child mounts a nested scope. The new node reports into a.
func (a *Aggregator) Child() *Aggregator {
	c := &Aggregator{kind: a.kind, parent: a, attached: true}
	a.children = append(a.children, c)
	return c
}

// Parent returns the propagation entry point of the node, nil for roots and detached nodes.
func (a *Aggregator) Parent() *Aggregator {
	return a.parent
}

// Aggregate returns local OR any attached child aggregate.
func (a *Aggregator) Aggregate() bool {
	return a.value
}

// Local returns the flag declared by the owner of this node.
func (a *Aggregator) Local() bool {
	return a.local
}

// Attached reports whether the node still contributes to its parent.
func (a *Aggregator) Attached() bool {
	return a.attached
}

// Len returns the number of attached children.
func (a *Aggregator) Len() int {
	return len(a.children)
}

// DeclareLocal sets the local flag. Nothing propagates unless the aggregate flips.
func (a *Aggregator) DeclareLocal(v bool) {
	if a.local == v {
		return
	}
	a.local = v
	if v {
		a.set(true)
		return
	}
	a.recompute()
}

// Revalidate clears the local state, declares v and recomputes the node from its
// children even when neither flag appears to have changed.
func (a *Aggregator) Revalidate(v bool) {
	a.local = v
	a.recompute()
}

// Detach unmounts the node. Its contribution is removed from the parent first.
func (a *Aggregator) Detach() {
	if !a.attached {
		return
	}
	a.attached = false
	p := a.parent
	a.parent = nil
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == a {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	if a.value {
		p.childReports(false)
	}
}

// Recompute rebuilds the whole subtree bottom-up, ignoring cached child values,
// and returns the resulting aggregate. Transitions are propagated as usual.
func (a *Aggregator) Recompute() bool {
	v := a.local
	for _, c := range a.children {
		if c.Recompute() {
			v = true
		}
	}
	a.set(v)
	return a.value
}

// Watch registers fn to be called with the new aggregate on every transition.
func (a *Aggregator) Watch(fn func(bool)) (cancel func()) {
	if a.watchers == nil {
		a.watchers = make(map[int]func(bool))
	}
	id := a.nextID
	a.nextID++
	a.watchers[id] = fn
	return func() { delete(a.watchers, id) }
}

func (a *Aggregator) childReports(v bool) {
	if v {
		a.set(true)
		return
	}
	if !a.value {
		return
	}
	a.recompute()
}

func (a *Aggregator) recompute() {
	v := a.local
	if !v {
		for _, c := range a.children {
			if c.value {
				v = true
				break
			}
		}
	}
	a.set(v)
}

func (a *Aggregator) set(v bool) {
	if a.value == v {
		return
	}
	a.value = v
	for _, id := range sortedIDs(a.watchers) {
		if fn, ok := a.watchers[id]; ok {
			fn(v)
		}
	}
	if a.parent != nil && a.attached {
		a.parent.childReports(v)
	}
}
