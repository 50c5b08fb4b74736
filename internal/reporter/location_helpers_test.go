package reporter

import (
	"github.com/eleventy7/lintal/internal/rules"
	"github.com/eleventy7/lintal/internal/sourcemap"
)

// newLineLocation builds a point location at the start of a 0-based line
// number, mirroring how a dispatch-driven rule reports a single line.
func newLineLocation(file string, line0 int) rules.Location {
	return rules.Location{
		File:  file,
		Start: sourcemap.Position{Line: line0 + 1, Column: 1},
		End:   sourcemap.Position{Line: line0 + 1, Column: 1},
	}
}

// newRangeLocation builds a location spanning 0-based start/end line and
// column pairs, as reporter tests need fine control over the rendered range
// without constructing a real source map.
func newRangeLocation(file string, startLine0, startCol0, endLine0, endCol0 int) rules.Location {
	return rules.Location{
		File:  file,
		Start: sourcemap.Position{Line: startLine0 + 1, Column: startCol0 + 1},
		End:   sourcemap.Position{Line: endLine0 + 1, Column: endCol0 + 1},
	}
}
