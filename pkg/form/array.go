package form

import (
	"fmt"

	"github.com/aretw0/formwizard/pkg/item"
)

type arrayNode struct {
	*binding
	def    *Array
	scopes scopeSet
	items  []*arrayItem
}

type arrayItem struct {
	ctx      mountCtx
	children []node
}

func (n *arrayNode) reconcile() {
	n.derive()
	if n.hidden {
		n.truncate(0)
		return
	}
	if n.def.DisallowEmpty && item.IsMissing(n.value) {
		n.ctx.tree.doc.Set(n.key, []any{n.def.newValue()})
		n.derive()
	}

	length := item.Len(n.value)
	n.truncate(length)
	for i := len(n.items); i < length; i++ {
		n.items = append(n.items, n.mountItem(i))
	}
	for _, it := range n.items {
		reconcileAll(it.children)
	}
}

func (n *arrayNode) mountItem(i int) *arrayItem {
	ctx := n.ctx
	ctx.base = n.key.Index(i)
	ctx.scopes = n.scopes.child()
	return &arrayItem{ctx: ctx, children: mountAll(ctx, n.def.Children)}
}

func (n *arrayNode) truncate(length int) {
	for len(n.items) > length {
		last := n.items[len(n.items)-1]
		last.ctx.scopes.detach()
		unmountAll(last.children)
		n.items = n.items[:len(n.items)-1]
	}
}

func (n *arrayNode) unmount() {
	n.scopes.detach()
	n.truncate(0)
	n.leaf.detach()
}

func (n *arrayNode) walk(fn func(*binding)) {
	fn(n.binding)
	for _, it := range n.items {
		walkAll(it.children, fn)
	}
}

func (n *arrayNode) itemErrors() []bool {
	out := make([]bool, len(n.items))
	for i, it := range n.items {
		out[i] = it.ctx.scopes.validation.Aggregate()
	}
	return out
}

func (n *arrayNode) summary(i int) string {
	element := n.ctx.tree.doc.Get(n.key.Index(i), nil)
	if n.def.Summary != nil {
		return n.def.Summary(element, i)
	}
	return fmt.Sprintf("#%d", i+1)
}

// review suppresses the whole array when it has no value, zero-length included.
func (n *arrayNode) review() []ReviewNode {
	if n.hidden || !n.scopes.value.Aggregate() {
		return nil
	}
	out := ReviewNode{
		Kind:  ReviewArray,
		Key:   n.key.String(),
		Label: labelOr(n.in.Label, n.in.ID),
	}
	for i, it := range n.items {
		child := ReviewNode{
			Kind:     ReviewItem,
			Key:      it.ctx.base.String(),
			Label:    n.summary(i),
			Children: reviewAll(it.children),
		}
		if len(n.def.Children) == 0 {
			child.Value = n.ctx.tree.doc.Get(it.ctx.base, nil)
		}
		out.Children = append(out.Children, child)
	}
	return []ReviewNode{out}
}
