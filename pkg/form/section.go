package form

type sectionNode struct {
	def      *Section
	outer    mountCtx
	ctx      mountCtx
	hidden   bool
	mounted  bool
	children []node
}

func (n *sectionNode) reconcile() {
	n.hidden = n.def.Hidden != nil && n.def.Hidden(n.outer.bound())
	if n.hidden {
		n.unmountChildren()
		n.ctx.scopes.inputs.DeclareLocal(false)
		return
	}
	if !n.mounted {
		n.children = mountAll(n.ctx, n.def.Children)
		n.mounted = true
	}
	n.ctx.scopes.inputs.DeclareLocal(n.def.DisableAutohide)
	reconcileAll(n.children)
}

func (n *sectionNode) unmountChildren() {
	if !n.mounted {
		return
	}
	unmountAll(n.children)
	n.children = nil
	n.mounted = false
}

func (n *sectionNode) unmount() {
	n.ctx.scopes.detach()
	n.unmountChildren()
}

func (n *sectionNode) walk(fn func(*binding)) {
	walkAll(n.children, fn)
}

func (n *sectionNode) review() []ReviewNode {
	if n.hidden || !n.ctx.scopes.value.Aggregate() {
		return nil
	}
	children := reviewAll(n.children)
	if n.def.Label == "" {
		return children
	}
	return []ReviewNode{{
		Kind:     ReviewSection,
		Key:      n.ctx.base.String(),
		Label:    n.def.Label,
		Children: children,
	}}
}
