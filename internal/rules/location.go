package rules

import (
	"github.com/eleventy7/lintal/internal/sourcemap"
	"github.com/eleventy7/lintal/internal/textrange"
)

// Location represents a range in a source file: the byte range CST nodes
// and edits are naturally expressed in, plus the 1-based line/column pair
// reporters display. Start is inclusive and End is exclusive.
type Location struct {
	// File is the path to the source file.
	File string `json:"file"`

	// Range is the half-open byte range within File. Zero-valued for
	// file-level diagnostics.
	Range textrange.Range `json:"-"`

	// Start is the starting position (1-based line, 1-based column counted
	// in runes).
	// Line 0 is the file-level sentinel: no specific line applies.
	Start sourcemap.Position `json:"start"`

	// End is the ending position (exclusive). Equal to Start for a point
	// location.
	End sourcemap.Position `json:"end"`
}

// NewFileLocation creates a location for file-level issues (no specific line).
func NewFileLocation(file string) Location {
	return Location{File: file}
}

// NewLocation creates a location from a byte range, resolving line/column
// positions from sm.
func NewLocation(file string, r textrange.Range, sm *sourcemap.SourceMap) Location {
	return Location{
		File:  file,
		Range: r,
		Start: sm.Position(r.Start()),
		End:   sm.Position(r.End()),
	}
}

// NewPointLocation creates a zero-length location at offset.
func NewPointLocation(file string, offset textrange.Size, sm *sourcemap.SourceMap) Location {
	return NewLocation(file, textrange.PointRange(offset), sm)
}

// IsFileLevel returns true if this is a file-level location (no specific line).
func (l Location) IsFileLevel() bool {
	return l.Start.Line == 0
}

// IsPointLocation returns true if this is a single-point location (no range).
func (l Location) IsPointLocation() bool {
	return l.Start == l.End
}
