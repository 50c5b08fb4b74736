// Package suppress implements the two independent suppression mechanisms
// a checkstyle-compatible engine must honor: comment-based off/on regions
// scanned over the raw source, and @SuppressWarnings annotations scoped to
// the declaration they decorate. A third, file-granularity table loaded
// from a SuppressionFilter's XML skips whole files or whole rules before
// any per-node work happens.
package suppress

import (
	"regexp"

	"github.com/eleventy7/lintal/internal/textrange"
)

// Filter describes one off/on comment pair a SuppressWithPlainTextCommentFilter
// module contributes. CaptureGroup selects which regex capture group of
// both OffPattern and OnPattern names the suppressed rule; group 1 by
// convention.
type Filter struct {
	OffPattern   *regexp.Regexp
	OnPattern    *regexp.Regexp
	CaptureGroup int
}

// DefaultFilter is always active, matching checkstyle's built-in
// "CHECKSTYLE:OFF:Rule" / "CHECKSTYLE:ON:Rule" comment convention.
func DefaultFilter() Filter {
	return Filter{
		OffPattern:   regexp.MustCompile(`CHECKSTYLE:OFF:(\w+)`),
		OnPattern:    regexp.MustCompile(`CHECKSTYLE:ON:(\w+)`),
		CaptureGroup: 1,
	}
}

// Region is a suppression interval: rule "*" suppresses every rule.
type Region struct {
	Rule  string
	Range textrange.Range
}

// Contains reports whether offset lies within the region (half-open).
func (r Region) Contains(offset textrange.Size) bool {
	return r.Range.Contains(offset)
}

// Suppresses reports whether this region silences ruleCode.
func (r Region) Suppresses(ruleCode string) bool {
	return r.Rule == "*" || r.Rule == ruleCode
}

type openRegion struct {
	rule  string
	start textrange.Size
}

// ScanComments walks source's comments (// to end of line, /* to */,
// ignoring string/char literal content) and turns off/on directive pairs
// into closed Regions. An OFF with no matching ON implicitly closes at
// end of file; an ON with no matching open OFF is ignored.
func ScanComments(source []byte, filters []Filter) []Region {
	var regions []Region
	open := map[string]openRegion{} // rule -> still-open region, keyed per filter+rule pair would over-complicate; last OFF wins per rule.

	i := 0
	n := len(source)
	for i < n {
		switch {
		case source[i] == '"' || source[i] == '\'':
			i = skipQuoted(source, i)
			continue
		case i+1 < n && source[i] == '/' && source[i+1] == '/':
			start := i
			end := lineCommentEnd(source, i)
			scanDirectives(source[start:end], textrange.Size(start), filters, open, &regions)
			i = end
			continue
		case i+1 < n && source[i] == '/' && source[i+1] == '*':
			start := i
			end := blockCommentEnd(source, i)
			scanDirectives(source[start:end], textrange.Size(start), filters, open, &regions)
			i = end
			continue
		default:
			i++
		}
	}

	for rule, o := range open {
		regions = append(regions, Region{Rule: rule, Range: textrange.NewRange(o.start, textrange.Size(n))})
	}

	return regions
}

func scanDirectives(comment []byte, commentStart textrange.Size, filters []Filter, open map[string]openRegion, regions *[]Region) {
	for _, f := range filters {
		if m := f.OffPattern.FindSubmatch(comment); m != nil {
			rule := captureGroupRule(m, f.CaptureGroup)
			open[rule] = openRegion{rule: rule, start: commentStart}
		}
		if m := f.OnPattern.FindSubmatch(comment); m != nil {
			rule := captureGroupRule(m, f.CaptureGroup)
			if o, ok := open[rule]; ok {
				*regions = append(*regions, Region{Rule: rule, Range: textrange.NewRange(o.start, commentStart)})
				delete(open, rule)
			}
		}
	}
}

// captureGroupRule extracts the suppressed rule name from a regex match.
// CaptureGroup 0 means the checkFormat spec referenced "$0" (the whole
// match), which checkstyle treats as matching every rule; report that as
// the wildcard "*" rather than the literal matched text.
func captureGroupRule(m [][]byte, captureGroup int) string {
	if captureGroup == 0 {
		return "*"
	}
	return string(m[captureGroup])
}

func skipQuoted(source []byte, i int) int {
	quote := source[i]
	i++
	for i < len(source) {
		if source[i] == '\\' && i+1 < len(source) {
			i += 2
			continue
		}
		if source[i] == quote {
			return i + 1
		}
		if source[i] == '\n' {
			return i // unterminated literal: bail without consuming the newline
		}
		i++
	}
	return i
}

func lineCommentEnd(source []byte, start int) int {
	i := start
	for i < len(source) && source[i] != '\n' {
		i++
	}
	return i
}

func blockCommentEnd(source []byte, start int) int {
	i := start + 2
	for i+1 < len(source) {
		if source[i] == '*' && source[i+1] == '/' {
			return i + 2
		}
		i++
	}
	return len(source)
}
