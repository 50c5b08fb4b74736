package javacst

import tree_sitter "github.com/tree-sitter/go-tree-sitter"

// Tree is a parsed Java source file: the CST root plus the buffer it was
// parsed from. Callers keep the *tree_sitter.Tree alive for the Tree's
// lifetime (it owns the underlying C memory the Node views point into).
type Tree struct {
	tree   *tree_sitter.Tree
	source []byte
}

// NewTree wraps a tree-sitter parse result.
func NewTree(tree *tree_sitter.Tree, source []byte) *Tree {
	return &Tree{tree: tree, source: source}
}

// Root returns the CST root node.
func (t *Tree) Root() Node {
	root := t.tree.RootNode()
	return wrap(&root, t.source)
}

// Close releases the underlying tree-sitter tree.
func (t *Tree) Close() {
	t.tree.Close()
}

// Visit is called once per CST node during a Walk, in pre-order
// (parent before children) and source order (children left to right).
// Returning false skips the node's subtree; true continues into it.
type Visit func(n Node) bool

// Walk performs a pre-order, source-order traversal of the subtree rooted
// at root, matching the order the check driver dispatches rules in: a
// node is visited fully before any of its children, and siblings are
// visited in the order they appear in the source.
func Walk(root Node, visit Visit) {
	if root.IsZero() {
		return
	}
	if !visit(root) {
		return
	}
	for i := 0; i < root.ChildCount(); i++ {
		Walk(root.Child(i), visit)
	}
}

// WalkNamed is Walk restricted to named nodes, skipping anonymous token
// nodes (punctuation, keywords) that rules never need to dispatch on.
func WalkNamed(root Node, visit Visit) {
	if root.IsZero() {
		return
	}
	if root.IsNamed() {
		if !visit(root) {
			return
		}
	}
	for i := 0; i < root.ChildCount(); i++ {
		WalkNamed(root.Child(i), visit)
	}
}
