package form

// ReviewKind tells what a ReviewNode was produced from.
type ReviewKind string

const (
	ReviewStep    ReviewKind = "step"
	ReviewSection ReviewKind = "section"
	ReviewArray   ReviewKind = "array"
	ReviewItem    ReviewKind = "item"
	ReviewField   ReviewKind = "field"
)

// ReviewNode is one entry of the read-only rendering of the item.
// Only subtrees whose has-value aggregate is true produce nodes.
type ReviewNode struct {
	Kind     ReviewKind
	Key      string
	Label    string
	Value    any
	Children []ReviewNode
}
