// Package sourcemap provides line/column indexing over a source buffer.
//
// A SourceMap precomputes line start offsets once per file so that every
// diagnostic, suppression region, and edit in the check/fix pipeline can be
// converted between a textrange.Size byte offset and a 1-based line/column
// pair in O(log n) time, without re-scanning the buffer.
package sourcemap

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/eleventy7/lintal/internal/textrange"
)

// Position is a 1-based line/column pair. Column counts Unicode scalar
// values (runes) from the start of the line, not raw bytes, so diagnostics
// report the same column a checkstyle-compatible reader would see for
// non-ASCII source.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// SourceMap indexes a source buffer's line boundaries.
//
// Line endings follow the convention the dispatch/check driver assumes
// throughout: a line terminates at the first '\n' it contains; a preceding
// '\r' (CRLF) belongs to that same line rather than starting the next one.
// A trailing '\r' with no following '\n' is ordinary line content.
type SourceMap struct {
	source []byte
	// lineStarts[i] is the byte offset where line i+1 (1-based) starts.
	lineStarts []textrange.Size
}

// New builds a SourceMap from source content.
func New(source []byte) *SourceMap {
	starts := []textrange.Size{0}
	for i, b := range source {
		if b == '\n' {
			starts = append(starts, textrange.Size(i+1))
		}
	}
	return &SourceMap{source: source, lineStarts: starts}
}

// Source returns the raw source content. Callers must not mutate it.
func (sm *SourceMap) Source() []byte { return sm.source }

// LineCount returns the total number of lines, counting a trailing partial
// line (no final newline) as one line.
func (sm *SourceMap) LineCount() int { return len(sm.lineStarts) }

// LineStart returns the byte offset at which a 1-based line begins.
// Returns 0 if line is out of range.
func (sm *SourceMap) LineStart(line int) textrange.Size {
	if line < 1 || line > len(sm.lineStarts) {
		return 0
	}
	return sm.lineStarts[line-1]
}

// LineRange returns the byte range of a 1-based line, including its
// terminating newline if present.
func (sm *SourceMap) LineRange(line int) textrange.Range {
	start := sm.LineStart(line)
	var end textrange.Size
	if line < len(sm.lineStarts) {
		end = sm.lineStarts[line]
	} else {
		end = textrange.Size(len(sm.source))
	}
	return textrange.NewRange(start, end)
}

// Line returns the text of a 1-based line, excluding its line terminator(s).
func (sm *SourceMap) Line(line int) string {
	r := sm.LineRange(line)
	text := string(r.Slice(sm.source))
	if strings.HasSuffix(text, "\n") {
		text = strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r")
	}
	return text
}

// Position converts a byte offset into a 1-based line/column pair.
// Offsets past the end of the source clamp to the final position.
func (sm *SourceMap) Position(offset textrange.Size) Position {
	if int(offset) > len(sm.source) {
		offset = textrange.Size(len(sm.source))
	}
	// Find the first line start strictly greater than offset; the line
	// containing offset is the one immediately before it.
	line := sort.Search(len(sm.lineStarts), func(i int) bool {
		return sm.lineStarts[i] > offset
	})
	lineStart := sm.lineStarts[line-1]
	column := utf8.RuneCount(sm.source[lineStart:offset]) + 1
	return Position{Line: line, Column: column}
}

// Offset converts a 1-based Position back into a byte offset, interpreting
// Column as a rune count from the start of the line (the inverse of
// Position). Out-of-range lines/columns clamp to the nearest valid offset
// within the buffer.
func (sm *SourceMap) Offset(pos Position) textrange.Size {
	lineStart := int(sm.LineStart(pos.Line))
	lineEnd := int(sm.LineRange(pos.Line).End())
	remaining := pos.Column - 1
	offset := lineStart
	for remaining > 0 && offset < lineEnd {
		_, size := utf8.DecodeRune(sm.source[offset:])
		offset += size
		remaining--
	}
	if offset < 0 {
		offset = 0
	}
	if offset > len(sm.source) {
		offset = len(sm.source)
	}
	return textrange.Size(offset)
}

// Snippet extracts 1-based, inclusive line range startLine..endLine joined
// by newlines, clamped to the available lines. Used to render diagnostic
// context in the text reporter.
func (sm *SourceMap) Snippet(startLine, endLine int) string {
	if startLine < 1 {
		startLine = 1
	}
	if endLine > sm.LineCount() {
		endLine = sm.LineCount()
	}
	if startLine > endLine {
		return ""
	}
	lines := make([]string, 0, endLine-startLine+1)
	for l := startLine; l <= endLine; l++ {
		lines = append(lines, sm.Line(l))
	}
	return strings.Join(lines, "\n")
}

// SnippetAround extracts context lines around a target 1-based line.
func (sm *SourceMap) SnippetAround(line, before, after int) string {
	return sm.Snippet(line-before, line+after)
}
