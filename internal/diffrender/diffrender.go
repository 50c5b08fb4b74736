// Package diffrender renders unified diffs between a file's original and
// fixed content, for lintal fix --diff.
package diffrender

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const contextLines = 3

// op is one line-level edit between before and after.
type op struct {
	kind byte // ' ', '-', '+'
	text string
}

// Unified renders a git-style unified diff for a single file. path is
// used verbatim in the a/ and b/ headers (callers pass a repo-relative or
// absolute path consistent with how they address the file elsewhere).
// An empty string means before and after are identical; no diff is
// produced.
func Unified(path string, before, after []byte) string {
	beforeStr, afterStr := string(before), string(after)
	if beforeStr == afterStr {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(beforeStr, afterStr)
	charDiffs := dmp.DiffMain(a, b, false)
	lineDiffs := dmp.DiffCharsToLines(charDiffs, lines)

	ops := flatten(lineDiffs)
	hunks := buildHunks(ops)
	if len(hunks) == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n", path)
	fmt.Fprintf(&sb, "+++ b/%s\n", path)
	for _, h := range hunks {
		writeHunk(&sb, h)
	}
	return sb.String()
}

// flatten splits each diffmatchpatch.Diff's multi-line Text into one op
// per line, preserving the original line terminators so reassembly is
// exact.
func flatten(diffs []diffmatchpatch.Diff) []op {
	var ops []op
	for _, d := range diffs {
		var kind byte
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			kind = '-'
		case diffmatchpatch.DiffInsert:
			kind = '+'
		default:
			kind = ' '
		}
		for _, line := range splitKeepEmpty(d.Text) {
			ops = append(ops, op{kind: kind, text: line})
		}
	}
	return ops
}

// splitKeepEmpty splits s into lines without a trailing empty element
// when s ends in "\n", matching how DiffLinesToChars reassembles whole
// lines (each line in d.Text already ends in "\n" except possibly the
// file's last line).
func splitKeepEmpty(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for len(s) > 0 {
		idx := strings.IndexByte(s, '\n')
		if idx < 0 {
			out = append(out, s)
			break
		}
		out = append(out, s[:idx+1])
		s = s[idx+1:]
	}
	return out
}

// hunk is a contiguous run of ops plus the 1-based starting line number
// of the first op in each side.
type hunk struct {
	ops      []op
	oldStart int
	newStart int
}

// buildHunks groups ops into hunks, each padded with up to contextLines
// unchanged lines on either side, merging hunks whose context windows
// overlap.
func buildHunks(ops []op) []hunk {
	changedIdx := make([]int, 0)
	for i, o := range ops {
		if o.kind != ' ' {
			changedIdx = append(changedIdx, i)
		}
	}
	if len(changedIdx) == 0 {
		return nil
	}

	type span struct{ lo, hi int }
	var spans []span
	for _, i := range changedIdx {
		lo := i - contextLines
		if lo < 0 {
			lo = 0
		}
		hi := i + contextLines
		if hi >= len(ops) {
			hi = len(ops) - 1
		}
		if n := len(spans); n > 0 && lo <= spans[n-1].hi+1 {
			if hi > spans[n-1].hi {
				spans[n-1].hi = hi
			}
			continue
		}
		spans = append(spans, span{lo, hi})
	}

	oldLine, newLine := 1, 1
	var hunks []hunk
	spanIdx := 0
	for i := 0; i < len(ops); i++ {
		if spanIdx < len(spans) && i == spans[spanIdx].lo {
			sp := spans[spanIdx]
			h := hunk{oldStart: oldLine, newStart: newLine}
			for j := sp.lo; j <= sp.hi; j++ {
				h.ops = append(h.ops, ops[j])
			}
			hunks = append(hunks, h)
			// Advance counters and i past this span in one pass below.
			for j := sp.lo; j <= sp.hi; j++ {
				advance(ops[j], &oldLine, &newLine)
			}
			i = sp.hi
			spanIdx++
			continue
		}
		advance(ops[i], &oldLine, &newLine)
	}
	return hunks
}

func advance(o op, oldLine, newLine *int) {
	switch o.kind {
	case '-':
		*oldLine++
	case '+':
		*newLine++
	default:
		*oldLine++
		*newLine++
	}
}

func writeHunk(sb *strings.Builder, h hunk) {
	oldCount, newCount := 0, 0
	for _, o := range h.ops {
		switch o.kind {
		case '-':
			oldCount++
		case '+':
			newCount++
		default:
			oldCount++
			newCount++
		}
	}
	fmt.Fprintf(sb, "@@ -%d,%d +%d,%d @@\n", h.oldStart, oldCount, h.newStart, newCount)
	for _, o := range h.ops {
		text := strings.TrimSuffix(o.text, "\n")
		fmt.Fprintf(sb, "%c%s\n", o.kind, text)
	}
}
