package suppress

import (
	"encoding/xml"
	"fmt"
	"io"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
)

// fileEntry is one <suppress files="glob" checks="regex-or-name"/> record
// from a checkstyle SuppressionFilter XML document.
type fileEntry struct {
	XMLName xml.Name `xml:"suppress"`
	Files   string   `xml:"files,attr"`
	Checks  string   `xml:"checks,attr"`
}

type suppressionsDoc struct {
	XMLName  xml.Name    `xml:"suppressions"`
	Suppress []fileEntry `xml:"suppress"`
}

// fileRule pairs a compiled glob with the rule matcher it suppresses.
type fileRule struct {
	glob       string
	checksExpr *regexp.Regexp // nil when Checks is the literal "*"
	wildcard   bool
}

// FileTable is the file-granularity suppression table a SuppressionFilter
// module loads: a list of (path glob, rule name-or-regex) records
// consulted before a file is even parsed.
type FileTable struct {
	entries []fileRule
}

// ParseFileTable parses a checkstyle suppressions XML document.
func ParseFileTable(r io.Reader) (*FileTable, error) {
	var doc suppressionsDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("suppress: parse suppressions file: %w", err)
	}

	table := &FileTable{entries: make([]fileRule, 0, len(doc.Suppress))}
	for _, e := range doc.Suppress {
		fr := fileRule{glob: e.Files}
		if e.Checks == "*" || e.Checks == "" {
			fr.wildcard = true
		} else {
			expr, err := regexp.Compile(e.Checks)
			if err != nil {
				return nil, fmt.Errorf("suppress: invalid checks pattern %q: %w", e.Checks, err)
			}
			fr.checksExpr = expr
		}
		table.entries = append(table.entries, fr)
	}
	return table, nil
}

// IsFileFullySuppressed reports whether path matches an entry whose rule
// set is the wildcard "*", meaning the whole file is skipped before
// parsing.
func (t *FileTable) IsFileFullySuppressed(path string) bool {
	if t == nil {
		return false
	}
	for _, e := range t.entries {
		if e.wildcard && matchGlob(e.glob, path) {
			return true
		}
	}
	return false
}

// IsSuppressed reports whether path matches an entry whose rule set
// covers ruleCode.
func (t *FileTable) IsSuppressed(path, ruleCode string) bool {
	if t == nil {
		return false
	}
	for _, e := range t.entries {
		if !matchGlob(e.glob, path) {
			continue
		}
		if e.wildcard || e.checksExpr.MatchString(ruleCode) {
			return true
		}
	}
	return false
}

func matchGlob(pattern, path string) bool {
	matched, err := doublestar.Match(pattern, path)
	return err == nil && matched
}
