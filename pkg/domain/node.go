package domain

// Node is the flat record form of a tree node. ParentID is nil for roots.
type Node struct {
	ID       int    `json:"id"`
	Label    string `json:"label"`
	ParentID *int   `json:"parent_id,omitempty"`
}

// TreeNode is the nested form returned by tree queries. Children is never
// nil so empty child lists serialize as [].
type TreeNode struct {
	ID       int         `json:"id"`
	Label    string      `json:"label"`
	Children []*TreeNode `json:"children"`
}

// NewTreeNode creates a nested node with an empty child list.
func NewTreeNode(id int, label string) *TreeNode {
	return &TreeNode{
		ID:       id,
		Label:    label,
		Children: []*TreeNode{},
	}
}

// AddChild appends a child, preserving insertion order among siblings.
func (n *TreeNode) AddChild(child *TreeNode) {
	n.Children = append(n.Children, child)
}
