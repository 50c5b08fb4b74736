package fix

import "github.com/eleventy7/lintal/internal/rules"

// editsOverlap reports whether two edits touch overlapping byte ranges.
// Overlapping edits cannot both be applied in the same pass.
func editsOverlap(a, b rules.Edit) bool {
	if a.Location.File != b.Location.File {
		return false
	}
	return a.Location.Range.IntersectsRange(b.Location.Range)
}

// compareEdits reports whether edit a starts before edit b in the file.
func compareEdits(a, b rules.Edit) bool {
	return a.Location.Range.Start() < b.Location.Range.Start()
}
