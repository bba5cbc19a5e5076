package item

// Document owns the single mutable Item edited by a wizard.
// Field writes mutate it in place; Replace swaps it wholesale and changes its identity.
// Document is not safe for concurrent use; the wizard serialises access.
type Document struct {
	root     any
	identity uint64
	revision uint64
}

// NewDocument creates a document from a deep copy of initial.
// A nil initial value starts from an empty map.
func NewDocument(initial any) *Document {
	root := Clone(initial)
	if root == nil {
		root = map[string]any{}
	}
	return &Document{root: root}
}

// Root returns the current item.
func (d *Document) Root() any {
	return d.root
}

// Identity changes only when the item is replaced wholesale.
func (d *Document) Identity() uint64 {
	return d.identity
}

// Revision changes on every write and replacement.
func (d *Document) Revision() uint64 {
	return d.revision
}

// Get resolves p against the item.
func (d *Document) Get(p Path, def any) any {
	return GetPath(d.root, p, def)
}

// Set writes v at p, creating intermediate containers.
func (d *Document) Set(p Path, v any) {
	d.root = SetPath(d.root, p, v)
	d.revision++
}

// Replace swaps the item for root.
func (d *Document) Replace(root any) {
	if root == nil {
		root = map[string]any{}
	}
	d.root = root
	d.identity++
	d.revision++
}
