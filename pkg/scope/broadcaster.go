package scope

import "sort"

// Broadcaster is a top-down flag with a local override at every node.
type Broadcaster struct {
	parent   *Broadcaster
	children []*Broadcaster
	override bool

	watchers map[int]func(bool)
	nextID   int
}

// NewBroadcaster creates a root broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{}
}

// Child mounts a nested override point.
func (b *Broadcaster) Child() *Broadcaster {
	c := &Broadcaster{parent: b}
	b.children = append(b.children, c)
	return c
}

// Override returns the local override of the node.
func (b *Broadcaster) Override() bool {
	return b.override
}

// Effective returns local override OR the nearest ancestor's effective value.
func (b *Broadcaster) Effective() bool {
	for n := b; n != nil; n = n.parent {
		if n.override {
			return true
		}
	}
	return false
}

// SetOverride sets the local override and broadcasts the change to the subtree
// when the effective value flips.
func (b *Broadcaster) SetOverride(v bool) {
	if b.override == v {
		return
	}
	before := b.Effective()
	b.override = v
	if after := b.Effective(); after != before {
		b.broadcast(after)
	}
}

// Detach unmounts the node from its parent.
func (b *Broadcaster) Detach() {
	p := b.parent
	if p == nil {
		return
	}
	b.parent = nil
	for i, c := range p.children {
		if c == b {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
}

// Watch registers fn to be called with the new effective value on every transition.
func (b *Broadcaster) Watch(fn func(bool)) (cancel func()) {
	if b.watchers == nil {
		b.watchers = make(map[int]func(bool))
	}
	id := b.nextID
	b.nextID++
	b.watchers[id] = fn
	return func() { delete(b.watchers, id) }
}

func (b *Broadcaster) broadcast(v bool) {
	for _, id := range sortedIDs(b.watchers) {
		if fn, ok := b.watchers[id]; ok {
			fn(v)
		}
	}
	for _, c := range b.children {
		// A child with its own override keeps seeing true.
		if !c.override {
			c.broadcast(v)
		}
	}
}

func sortedIDs(m map[int]func(bool)) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
