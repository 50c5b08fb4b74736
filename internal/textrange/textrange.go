// Package textrange provides the byte-offset primitives the CST, diagnostic,
// and fix-applier layers share: a Size in UTF-8 bytes from the start of a
// file, and a half-open Range built from two Sizes.
//
// These mirror the text-size crate the original linter's Rust core is built
// on. Every other component in this module (source indexing, CST node
// spans, diagnostics, edits) is expressed in terms of Size/Range rather than
// line/column pairs, so that overlap and ordering comparisons are simple
// integer comparisons.
package textrange

import "fmt"

// Size is a byte offset into a source buffer.
type Size uint32

// Range is a half-open byte range [Start, End) into a source buffer.
type Range struct {
	start Size
	end   Size
}

// NewRange builds a Range from start and end offsets.
// It panics if end < start, mirroring the original crate's debug assertion:
// callers construct ranges from trusted offsets (CST node spans, edit
// bounds), never from unvalidated external input.
func NewRange(start, end Size) Range {
	if end < start {
		panic(fmt.Sprintf("textrange: invalid range [%d, %d)", start, end))
	}
	return Range{start: start, end: end}
}

// PointRange returns a zero-length range at offset.
func PointRange(offset Size) Range {
	return Range{start: offset, end: offset}
}

// Start returns the range's inclusive start offset.
func (r Range) Start() Size { return r.start }

// End returns the range's exclusive end offset.
func (r Range) End() Size { return r.end }

// Len returns the number of bytes covered by the range.
func (r Range) Len() Size { return r.end - r.start }

// IsEmpty reports whether the range covers zero bytes.
func (r Range) IsEmpty() bool { return r.start == r.end }

// Contains reports whether offset falls within [Start, End).
func (r Range) Contains(offset Size) bool {
	return offset >= r.start && offset < r.end
}

// ContainsRange reports whether other is fully contained within r.
func (r Range) ContainsRange(other Range) bool {
	return other.start >= r.start && other.end <= r.end
}

// IntersectsRange reports whether r and other overlap: each starts before
// the other ends. Two empty ranges at the same offset, or an empty range at
// the boundary of a non-empty one, do not intersect; an empty range strictly
// inside a non-empty one does. This is the overlap test the fix applier uses
// to decide whether two edits conflict (see internal/fix).
func (r Range) IntersectsRange(other Range) bool {
	return r.start < other.end && other.start < r.end
}

// Slice returns the substring of src covered by r.
func (r Range) Slice(src []byte) []byte {
	return src[r.start:r.end]
}

func (r Range) String() string {
	return fmt.Sprintf("%d..%d", r.start, r.end)
}
