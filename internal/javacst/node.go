// Package javacst provides a thin, byte-range-oriented view over a Java
// concrete syntax tree produced by tree-sitter. Apart from
// internal/javaparser, which owns the parsers, it is the only package that
// imports github.com/tree-sitter/go-tree-sitter directly; everything above
// it (dispatch, suppress, rules, linter) works in terms of Node and Walk.
package javacst

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/eleventy7/lintal/internal/textrange"
)

// Node is a CST node bound to the source buffer it was parsed from, so that
// Text and Range never require a second argument at call sites.
type Node struct {
	n      *tree_sitter.Node
	source []byte
}

// wrap builds a Node, or the zero Node if n is nil.
func wrap(n *tree_sitter.Node, source []byte) Node {
	if n == nil {
		return Node{}
	}
	return Node{n: n, source: source}
}

// IsZero reports whether the node is the zero value (no underlying CST
// node), the Go equivalent of a missing optional child.
func (n Node) IsZero() bool { return n.n == nil }

// Kind returns the grammar's symbolic name for this node's production,
// e.g. "method_declaration", "block", "identifier".
func (n Node) Kind() string {
	if n.IsZero() {
		return ""
	}
	return n.n.Kind()
}

// KindID returns the grammar's numeric id for Kind(). Stable within one
// parse of one Language, and is what dispatch.Table is keyed on.
func (n Node) KindID() uint16 {
	if n.IsZero() {
		return 0
	}
	return uint16(n.n.KindId())
}

// IsNamed reports whether this is a named (grammar rule) node rather than
// an anonymous token node (punctuation, keywords).
func (n Node) IsNamed() bool {
	return !n.IsZero() && n.n.IsNamed()
}

// Range returns the node's half-open byte range within the source buffer.
func (n Node) Range() textrange.Range {
	if n.IsZero() {
		return textrange.Range{}
	}
	return textrange.NewRange(textrange.Size(n.n.StartByte()), textrange.Size(n.n.EndByte()))
}

// Text returns the source text this node spans.
func (n Node) Text() []byte {
	if n.IsZero() {
		return nil
	}
	return n.Range().Slice(n.source)
}

// ChildCount returns the number of direct children (named and anonymous).
func (n Node) ChildCount() int {
	if n.IsZero() {
		return 0
	}
	return int(n.n.ChildCount())
}

// Child returns the i-th direct child.
func (n Node) Child(i int) Node {
	if n.IsZero() {
		return Node{}
	}
	return wrap(n.n.Child(uint(i)), n.source)
}

// NamedChildCount returns the number of named direct children.
func (n Node) NamedChildCount() int {
	if n.IsZero() {
		return 0
	}
	return int(n.n.NamedChildCount())
}

// NamedChild returns the i-th named direct child.
func (n Node) NamedChild(i int) Node {
	if n.IsZero() {
		return Node{}
	}
	return wrap(n.n.NamedChild(uint(i)), n.source)
}

// ChildByFieldName returns the child bound to the given grammar field
// (e.g. "name", "body", "parameters"), or the zero Node if absent.
func (n Node) ChildByFieldName(name string) Node {
	if n.IsZero() {
		return Node{}
	}
	return wrap(n.n.ChildByFieldName(name), n.source)
}

// Parent returns the node's parent, or the zero Node at the tree root.
func (n Node) Parent() Node {
	if n.IsZero() {
		return Node{}
	}
	return wrap(n.n.Parent(), n.source)
}

// HasError reports whether this node is, or contains, a parse error.
func (n Node) HasError() bool {
	return !n.IsZero() && n.n.HasError()
}

// IsError reports whether this specific node is a parse error node.
func (n Node) IsError() bool {
	return !n.IsZero() && n.n.IsError()
}
