package javacst

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// Language wraps a tree-sitter grammar's kind table: the name<->id mapping
// the dispatch table uses to turn a rule's RelevantKinds (grammar kind
// names, e.g. "method_declaration") into the numeric ids tree-sitter
// actually tags nodes with.
type Language struct {
	lang *tree_sitter.Language
}

// NewLanguage wraps a tree_sitter.Language.
func NewLanguage(lang *tree_sitter.Language) Language {
	return Language{lang: lang}
}

// KindCount returns the number of distinct node kind ids the grammar
// defines, suitable for sizing a dispatch table indexed by kind id.
func (l Language) KindCount() int {
	return int(l.lang.NodeKindCount())
}

// LookupKind resolves a named node kind (e.g. "method_declaration") to its
// numeric id. Returns ok=false for names the grammar doesn't define, or
// for anonymous/literal kinds (keywords, punctuation) that rules dispatch
// on by text rather than kind.
func (l Language) LookupKind(name string) (uint16, bool) {
	id := l.lang.IdForNodeKind(name, true)
	if id == 0 {
		return 0, false
	}
	return id, true
}
