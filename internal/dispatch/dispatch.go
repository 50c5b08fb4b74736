// Package dispatch builds and queries the node-kind dispatch table the
// check driver uses to avoid invoking every rule on every CST node.
//
// A Java compilation unit routinely has 10^4-10^5 CST nodes; running every
// registered rule's Check against every node would make per-file checking
// scale with rules*nodes instead of nodes+relevant-checks. The Table
// precomputes, for each grammar node-kind id, exactly which rule indices
// care about that kind, plus a separate bucket of catch-all rules (those
// with an empty RelevantKinds) that run on every node regardless of kind.
package dispatch

import (
	"slices"

	"github.com/eleventy7/lintal/internal/rules"
)

// KindLookup resolves a grammar kind name (as a rule's RelevantKinds
// entries are spelled) to the grammar's numeric kind id. Returns ok=false
// for names the grammar doesn't recognize.
type KindLookup func(kindName string) (id uint16, ok bool)

// UnknownKindHandler is invoked once per (rule, unknown kind name) pair
// found while building a Table. The default Build behavior silently skips
// unknown kinds, since a rule naming a kind that doesn't exist in the
// bound grammar must never abort the whole check run; callers that want
// the original crate's debug-build warning can pass a handler that logs.
type UnknownKindHandler func(ruleCode, kindName string)

// Table maps CST node-kind ids to the rule indices that should run on
// nodes of that kind.
type Table struct {
	// PerKind[id] lists rule indices whose RelevantKinds names resolved to
	// kind id. Indexed by the grammar's numeric kind id.
	PerKind [][]int

	// CatchAll lists rule indices with empty RelevantKinds: these run on
	// every node regardless of kind.
	CatchAll []int

	// combined[id] is PerKind[id] followed by CatchAll, precomputed once
	// at Build time so RulesFor never allocates on the check driver's hot
	// path.
	combined [][]int

	// Rules is the rule list the indices above index into, in the order
	// passed to Build.
	Rules []rules.Rule
}

// Build constructs a Table for ruleList against a grammar with
// nodeKindCount possible kind ids. lookup resolves each rule's
// RelevantKinds entries to kind ids; entries that don't resolve are
// skipped (optionally reported via onUnknown, which may be nil).
func Build(ruleList []rules.Rule, nodeKindCount int, lookup KindLookup, onUnknown UnknownKindHandler) *Table {
	t := &Table{
		PerKind:  make([][]int, nodeKindCount),
		Rules:    ruleList,
		combined: make([][]int, nodeKindCount),
	}

	for idx, rule := range ruleList {
		kinds := rule.RelevantKinds()
		if len(kinds) == 0 {
			t.CatchAll = append(t.CatchAll, idx)
			continue
		}
		for _, kindName := range kinds {
			id, ok := lookup(kindName)
			if !ok {
				if onUnknown != nil {
					onUnknown(rule.Metadata().Code, kindName)
				}
				continue
			}
			if !slices.Contains(t.PerKind[id], idx) {
				t.PerKind[id] = append(t.PerKind[id], idx)
			}
		}
	}

	for id := range t.combined {
		if len(t.PerKind[id]) == 0 {
			t.combined[id] = t.CatchAll
			continue
		}
		merged := make([]int, 0, len(t.PerKind[id])+len(t.CatchAll))
		merged = append(merged, t.PerKind[id]...)
		merged = append(merged, t.CatchAll...)
		t.combined[id] = merged
	}

	return t
}

// RulesFor returns the rule indices that should run against a node of the
// given kind id: the kind-specific rules followed by every catch-all rule.
// A kind id outside the table's range gets only the catch-all rules. The
// result is empty (not an error) when no rule is interested; the checker
// must treat that as "skip dispatch for this node, not stop".
func (t *Table) RulesFor(kindID uint16) []int {
	if int(kindID) >= len(t.combined) {
		return t.CatchAll
	}
	return t.combined[kindID]
}

// HasRules reports whether RulesFor(kindID) would return anything.
func (t *Table) HasRules(kindID uint16) bool {
	return len(t.RulesFor(kindID)) > 0
}
