package fix

import (
	"bytes"
	"path/filepath"
	"slices"
	"sort"

	"github.com/eleventy7/lintal/internal/rules"
)

// normalizePath ensures consistent path format for map lookups across
// platforms.
func normalizePath(path string) string {
	return filepath.Clean(path)
}

// Fixer applies Diagnostic Fixes to source files.
type Fixer struct {
	// Mode controls which fixes this run is willing to apply.
	Mode Mode

	// RuleFilter limits fixes to specific rule codes (checkstyle
	// module/check names). Empty means every rule is eligible.
	RuleFilter []string
}

// Result contains the outcome of applying fixes across a set of files.
type Result struct {
	Changes map[string]*FileChange
}

// TotalApplied returns the total number of fixes applied across all files.
func (r *Result) TotalApplied() int {
	count := 0
	for _, fc := range r.Changes {
		count += len(fc.FixesApplied)
	}
	return count
}

// TotalSkipped returns the total number of fixes skipped across all files.
func (r *Result) TotalSkipped() int {
	count := 0
	for _, fc := range r.Changes {
		count += len(fc.FixesSkipped)
	}
	return count
}

// FilesModified returns the number of files with actual changes.
func (r *Result) FilesModified() int {
	count := 0
	for _, fc := range r.Changes {
		if fc.HasChanges() {
			count++
		}
	}
	return count
}

// Apply applies the fixes attached to diagnostics against sources, which
// maps file path to original file content. Within each file, fixes are
// gated by Mode and RuleFilter, then resolved for overlap: fixes are
// considered in descending order of their first edit's start offset
// (ties broken by ascending Fix.Priority), a fix is kept unless any of
// its edits overlaps an edit already reserved by a previously-kept fix,
// and the kept edits are spliced into the content in a single
// descending pass so earlier offsets are never invalidated by a later
// (already-applied) edit.
func (f *Fixer) Apply(diagnostics []rules.Diagnostic, sources map[string][]byte) *Result {
	result := &Result{Changes: make(map[string]*FileChange, len(sources))}
	for path, content := range sources {
		result.Changes[normalizePath(path)] = &FileChange{
			Path:            path,
			OriginalContent: content,
			ModifiedContent: bytes.Clone(content),
		}
	}

	byFile := make(map[string][]*rules.Diagnostic)
	for i := range diagnostics {
		d := &diagnostics[i]
		if d.Fix == nil {
			continue
		}
		if !f.ruleAllowed(d.RuleCode) {
			recordSkipped(result.Changes, d, SkipRuleFilter)
			continue
		}
		if !f.modeAllowed(d.Fix.Safety) {
			recordSkipped(result.Changes, d, SkipSafety)
			continue
		}
		if len(d.Fix.Edits) == 0 {
			recordSkipped(result.Changes, d, SkipNoEdits)
			continue
		}
		file := normalizePath(d.File())
		byFile[file] = append(byFile[file], d)
	}

	for file, diags := range byFile {
		fc := result.Changes[file]
		if fc == nil {
			continue
		}
		f.applyToFile(fc, diags)
	}

	return result
}

func (f *Fixer) ruleAllowed(ruleCode string) bool {
	if len(f.RuleFilter) == 0 {
		return true
	}
	return slices.Contains(f.RuleFilter, ruleCode)
}

func (f *Fixer) modeAllowed(safety rules.FixSafety) bool {
	switch f.Mode {
	case ModeNever:
		return false
	case ModeSafeOnly, ModeExplicitRules:
		return safety.Applicability() == ApplicabilitySafe
	case ModeIncludeUnsafe:
		return true
	default:
		return false
	}
}

func recordSkipped(changes map[string]*FileChange, d *rules.Diagnostic, reason SkipReason) {
	fc := changes[normalizePath(d.File())]
	if fc == nil {
		return
	}
	fc.FixesSkipped = append(fc.FixesSkipped, SkippedFix{
		RuleCode: d.RuleCode,
		Reason:   reason,
		Location: d.Location,
	})
}

// applyToFile applies the non-conflicting, gate-passing fixes attached to
// diags to a single file's content.
func (f *Fixer) applyToFile(fc *FileChange, diags []*rules.Diagnostic) {
	ordered := make([]*rules.Diagnostic, len(diags))
	copy(ordered, diags)
	sort.Slice(ordered, func(i, j int) bool {
		si, sj := ordered[i].Fix.Edits[0].Location.Range.Start(), ordered[j].Fix.Edits[0].Location.Range.Start()
		if si != sj {
			return si > sj
		}
		return ordered[i].Fix.Priority < ordered[j].Fix.Priority
	})

	var kept []*rules.Diagnostic
	var reserved []rules.Edit
	for _, d := range ordered {
		edits := d.Fix.Edits
		conflict := false
		for _, e := range edits {
			for _, r := range reserved {
				if editsOverlap(e, r) {
					conflict = true
					break
				}
			}
			if conflict {
				break
			}
		}
		if conflict {
			fc.FixesSkipped = append(fc.FixesSkipped, SkippedFix{
				RuleCode: d.RuleCode,
				Reason:   SkipOverlap,
				Location: d.Location,
			})
			continue
		}
		reserved = append(reserved, edits...)
		kept = append(kept, d)
	}

	var allEdits []rules.Edit
	allEdits = append(allEdits, reserved...)
	sort.Slice(allEdits, func(i, j int) bool {
		return compareEdits(allEdits[j], allEdits[i]) // descending
	})

	content := fc.ModifiedContent
	for _, edit := range allEdits {
		content = applyEdit(content, edit)
	}
	fc.ModifiedContent = content

	for _, d := range kept {
		fc.FixesApplied = append(fc.FixesApplied, AppliedFix{
			RuleCode:    d.RuleCode,
			Description: d.Fix.Description,
			Location:    d.Location,
			Edits:       d.Fix.Edits,
		})
	}
}

// applyEdit replaces the byte range [edit.Location.Range.Start(),
// edit.Location.Range.End()) of content with edit.NewText. Offsets
// reference the content as it stood before any edit at a higher offset
// was applied; callers must apply edits in descending order of start
// offset within a single content buffer for this to stay correct.
func applyEdit(content []byte, edit rules.Edit) []byte {
	r := edit.Location.Range
	start, end := int(r.Start()), int(r.End())
	if start < 0 || end > len(content) || start > end {
		return content
	}
	out := make([]byte, 0, len(content)-(end-start)+len(edit.NewText))
	out = append(out, content[:start]...)
	out = append(out, edit.NewText...)
	out = append(out, content[end:]...)
	return out
}
