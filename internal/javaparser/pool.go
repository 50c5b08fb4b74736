// Package javaparser manages tree-sitter parser instances for Java source,
// reused across files within a worker rather than allocated per file.
//
// A tree_sitter.Parser owns non-trivial C-side state; allocating and
// freeing one per file would dominate the cost of linting small files. The
// Pool hands out a parser to a worker goroutine for the lifetime of one
// file check and returns it to the pool afterward, mirroring the
// thread-local parser reuse the original linter's file-parallel driver
// relies on.
package javaparser

import (
	"fmt"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter-grammars/tree-sitter-java/bindings/go"

	"github.com/eleventy7/lintal/internal/javacst"
)

// Pool vends reusable tree-sitter parsers configured for the Java grammar.
type Pool struct {
	pool sync.Pool
}

// javaLanguage is the bound Java grammar, shared by every parser the pool
// creates and exposed via Language() for dispatch-table construction.
var javaLanguage = tree_sitter.NewLanguage(tree_sitter_java.Language())

// Language returns the Java grammar's kind table.
func Language() javacst.Language {
	return javacst.NewLanguage(javaLanguage)
}

// NewPool creates an empty Pool. Parsers are created lazily on first use.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				p := tree_sitter.NewParser()
				if err := p.SetLanguage(javaLanguage); err != nil {
					// The grammar is fixed at build time; a failure here means
					// the bound grammar package is incompatible with this
					// go-tree-sitter version, not a per-call error.
					panic(fmt.Sprintf("javaparser: set language: %v", err))
				}
				return p
			},
		},
	}
}

// Parse parses source and returns the resulting CST. The returned Tree must
// be Closed when the caller is done inspecting it; the underlying parser is
// returned to the pool automatically once parsing completes (the parser
// and the parsed tree have independent lifetimes in tree-sitter).
func (p *Pool) Parse(source []byte) (*javacst.Tree, error) {
	parser := p.pool.Get().(*tree_sitter.Parser)
	defer p.pool.Put(parser)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("javaparser: parse returned no tree")
	}
	return javacst.NewTree(tree, source), nil
}
