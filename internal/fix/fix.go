// Package fix applies rule-produced Fixes to source files: it gates each
// fix by applicability and configured mode, resolves overlaps between
// fixes that touch the same byte range, and produces the final edited
// content plus a record of what was applied and what was skipped.
package fix

import (
	"github.com/eleventy7/lintal/internal/rules"
)

// Re-export rules' fix-safety vocabulary for convenience so callers of
// this package don't need a second import for FixSafe/FixSuggestion/
// FixUnsafe and rules.Applicability.
type FixSafety = rules.FixSafety

const (
	FixSafe       = rules.FixSafe
	FixSuggestion = rules.FixSuggestion
	FixUnsafe     = rules.FixUnsafe
)

type Applicability = rules.Applicability

const (
	ApplicabilitySafe   = rules.ApplicabilitySafe
	ApplicabilityUnsafe = rules.ApplicabilityUnsafe
)

// Mode controls which fixes a run is willing to apply, independent of
// their intrinsic safety. The fix subcommand uses ModeSafeOnly, or
// ModeIncludeUnsafe with --unsafe; a host override string maps onto a Mode
// via hostconfig.ParseFixMode.
type Mode int

const (
	// ModeNever disables fixing entirely; Apply returns no changes.
	ModeNever Mode = iota

	// ModeSafeOnly applies fixes whose Applicability gate is Safe (the
	// fix subcommand's default).
	ModeSafeOnly

	// ModeIncludeUnsafe applies both Safe and Unsafe fixes (fix --unsafe).
	ModeIncludeUnsafe

	// ModeExplicitRules applies Safe fixes only, the same gate as
	// ModeSafeOnly. Limiting fixes to particular rule codes is done by
	// Fixer.RuleFilter, which applies in every mode.
	ModeExplicitRules
)

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	// RuleCode identifies which rule produced this fix.
	RuleCode string

	// Description explains what the fix did.
	Description string

	// Location is where the fix was applied, in the original document.
	Location rules.Location

	// Edits are the original (pre-adjustment) text edits of this fix.
	// Offsets reference the original document content.
	Edits []rules.Edit
}

// SkipReason explains why a fix was not applied.
type SkipReason int

const (
	// SkipOverlap means the fix's range overlapped an edit from a fix
	// that was kept instead.
	SkipOverlap SkipReason = iota

	// SkipSafety means the fix's Applicability didn't clear the run's Mode.
	SkipSafety

	// SkipRuleFilter means the rule is not in the Fixer's RuleFilter.
	SkipRuleFilter

	// SkipNoEdits means the fix carried no edits and was dropped as invalid.
	SkipNoEdits
)

func (r SkipReason) String() string {
	switch r {
	case SkipOverlap:
		return "overlaps a fix that was applied instead"
	case SkipSafety:
		return "below the configured fix safety threshold"
	case SkipRuleFilter:
		return "rule not in --fix-rule allowlist"
	case SkipNoEdits:
		return "fix has no edits"
	default:
		return "unknown reason"
	}
}

// SkippedFix records a fix that was not applied.
type SkippedFix struct {
	RuleCode string
	Reason   SkipReason
	Location rules.Location
}

// FileChange describes the result of applying fixes to a single file.
type FileChange struct {
	Path            string
	FixesApplied    []AppliedFix
	FixesSkipped    []SkippedFix
	OriginalContent []byte
	ModifiedContent []byte
}

// HasChanges reports whether any fixes were applied to this file.
func (fc *FileChange) HasChanges() bool {
	return len(fc.FixesApplied) > 0
}
