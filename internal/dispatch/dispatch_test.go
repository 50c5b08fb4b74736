package dispatch

import (
	"testing"

	"github.com/eleventy7/lintal/internal/javacst"
	"github.com/eleventy7/lintal/internal/rules"
)

type fakeRule struct {
	code  string
	kinds []string
}

func (r fakeRule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{Code: r.code}
}

func (r fakeRule) RelevantKinds() []string { return r.kinds }

func (r fakeRule) Check(ctx *rules.CheckContext, node javacst.Node) []rules.Diagnostic {
	return nil
}

func fakeLookup(kinds map[string]uint16) KindLookup {
	return func(name string) (uint16, bool) {
		id, ok := kinds[name]
		return id, ok
	}
}

func TestBuild_ScopedRule(t *testing.T) {
	kinds := map[string]uint16{"method_declaration": 3, "class_declaration": 5}
	ruleList := []rules.Rule{fakeRule{code: "R1", kinds: []string{"method_declaration"}}}

	table := Build(ruleList, 10, fakeLookup(kinds), nil)

	if got := table.RulesFor(3); len(got) != 1 || got[0] != 0 {
		t.Fatalf("RulesFor(3) = %v, want [0]", got)
	}
	if got := table.RulesFor(5); len(got) != 0 {
		t.Fatalf("RulesFor(5) = %v, want empty", got)
	}
}

func TestBuild_CatchAllAppliesEverywhere(t *testing.T) {
	kinds := map[string]uint16{"method_declaration": 3}
	ruleList := []rules.Rule{
		fakeRule{code: "Scoped", kinds: []string{"method_declaration"}},
		fakeRule{code: "CatchAll"},
	}

	table := Build(ruleList, 10, fakeLookup(kinds), nil)

	scopedKind := table.RulesFor(3)
	if len(scopedKind) != 2 || scopedKind[0] != 0 || scopedKind[1] != 1 {
		t.Fatalf("RulesFor(3) = %v, want [0, 1]", scopedKind)
	}

	otherKind := table.RulesFor(7)
	if len(otherKind) != 1 || otherKind[0] != 1 {
		t.Fatalf("RulesFor(7) = %v, want [1]", otherKind)
	}
}

func TestBuild_UnknownKindSkippedNotFatal(t *testing.T) {
	kinds := map[string]uint16{}
	var seen []string
	ruleList := []rules.Rule{fakeRule{code: "R1", kinds: []string{"bogus_kind"}}}

	table := Build(ruleList, 5, fakeLookup(kinds), func(ruleCode, kindName string) {
		seen = append(seen, ruleCode+":"+kindName)
	})

	if len(seen) != 1 || seen[0] != "R1:bogus_kind" {
		t.Fatalf("onUnknown calls = %v", seen)
	}
	if table.HasRules(0) {
		t.Fatal("expected no rules dispatched for any kind")
	}
}

func TestRulesFor_OutOfRangeKindIDReturnsCatchAll(t *testing.T) {
	ruleList := []rules.Rule{fakeRule{code: "CatchAll"}}
	table := Build(ruleList, 3, fakeLookup(nil), nil)

	if got := table.RulesFor(999); len(got) != 1 || got[0] != 0 {
		t.Fatalf("RulesFor(999) = %v, want [0]", got)
	}
}

func TestBuild_DuplicateRelevantKindDeduplicated(t *testing.T) {
	kinds := map[string]uint16{"method_declaration": 3}
	ruleList := []rules.Rule{
		fakeRule{code: "R1", kinds: []string{"method_declaration", "method_declaration"}},
	}

	table := Build(ruleList, 10, fakeLookup(kinds), nil)

	got := table.RulesFor(3)
	if len(got) != 1 || got[0] != 0 {
		t.Fatalf("RulesFor(3) = %v, want [0] (single visit, not duplicated)", got)
	}
}

func TestHasRules(t *testing.T) {
	kinds := map[string]uint16{"method_declaration": 2}
	ruleList := []rules.Rule{fakeRule{code: "R1", kinds: []string{"method_declaration"}}}
	table := Build(ruleList, 5, fakeLookup(kinds), nil)

	if !table.HasRules(2) {
		t.Error("HasRules(2) = false, want true")
	}
	if table.HasRules(4) {
		t.Error("HasRules(4) = true, want false")
	}
}
