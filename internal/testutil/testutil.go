// Package testutil provides test helpers for exercising lint rules
// against Java source fixtures.
package testutil

import (
	"strings"
	"testing"

	"github.com/eleventy7/lintal/internal/dispatch"
	"github.com/eleventy7/lintal/internal/javacst"
	"github.com/eleventy7/lintal/internal/javaparser"
	"github.com/eleventy7/lintal/internal/rules"
)

var pool = javaparser.NewPool()

// MakeCheckContext parses content as Java source and returns a
// CheckContext ready to pass to a rule's Check method.
func MakeCheckContext(tb testing.TB, file, content string) *rules.CheckContext {
	tb.Helper()

	tree, err := pool.Parse([]byte(content))
	if err != nil {
		tb.Fatalf("failed to parse Java source: %v", err)
	}
	tb.Cleanup(tree.Close)

	return &rules.CheckContext{
		File:   file,
		Source: []byte(content),
		Root:   tree.Root(),
	}
}

// MakeCheckContextWithConfig is MakeCheckContext with rule configuration attached.
func MakeCheckContextWithConfig(tb testing.TB, file, content string, config any) *rules.CheckContext {
	tb.Helper()
	ctx := MakeCheckContext(tb, file, content)
	ctx.Config = config
	return ctx
}

// RunRule runs rule against every node of content's CST reachable by
// rule.RelevantKinds (or every node, if RelevantKinds is empty) and
// returns the diagnostics in traversal order.
func RunRule(tb testing.TB, rule rules.Rule, file, content string, config any) []rules.Diagnostic {
	tb.Helper()

	ctx := MakeCheckContextWithConfig(tb, file, content, config)
	table := dispatch.Build([]rules.Rule{rule}, javaparser.Language().KindCount(), javaparser.Language().LookupKind, nil)

	var diagnostics []rules.Diagnostic
	javacst.Walk(ctx.Root, func(node javacst.Node) bool {
		if !table.HasRules(node.KindID()) {
			return true
		}
		diagnostics = append(diagnostics, rule.Check(ctx, node)...)
		return true
	})
	return diagnostics
}

// RuleTestCase defines a table-driven test case for a single rule.
type RuleTestCase struct {
	// Name is the test case name.
	Name string

	// Content is the Java source to lint.
	Content string

	// Config is the optional rule configuration.
	Config any

	// WantViolations is the expected number of diagnostics. Use -1 to
	// skip the count check.
	WantViolations int

	// WantMessages are substrings expected in diagnostic messages, in order.
	WantMessages []string
}

// RunRuleTests runs a table of test cases against a rule.
func RunRuleTests(t *testing.T, rule rules.Rule, cases []RuleTestCase) {
	t.Helper()

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			diagnostics := RunRule(t, rule, "Test.java", tc.Content, tc.Config)

			if tc.WantViolations >= 0 && len(diagnostics) != tc.WantViolations {
				t.Errorf("got %d diagnostics, want %d", len(diagnostics), tc.WantViolations)
				for i, d := range diagnostics {
					t.Logf("  [%d] %s: %s", i, d.RuleCode, d.Message)
				}
			}

			for i, msg := range tc.WantMessages {
				if i >= len(diagnostics) {
					t.Errorf("expected diagnostic[%d] with message containing %q, but only got %d diagnostics",
						i, msg, len(diagnostics))
					continue
				}
				if !strings.Contains(diagnostics[i].Message, msg) {
					t.Errorf("diagnostic[%d].Message = %q, want substring %q", i, diagnostics[i].Message, msg)
				}
			}
		})
	}
}

// AssertNoDiagnostics fails the test if there are any diagnostics.
func AssertNoDiagnostics(tb testing.TB, diagnostics []rules.Diagnostic) {
	tb.Helper()
	if len(diagnostics) > 0 {
		tb.Errorf("expected no diagnostics, got %d:", len(diagnostics))
		for _, d := range diagnostics {
			tb.Logf("  - %s at %v: %s", d.RuleCode, d.Location, d.Message)
		}
	}
}

// AssertDiagnosticCount fails if the diagnostic count doesn't match want.
func AssertDiagnosticCount(tb testing.TB, diagnostics []rules.Diagnostic, want int) {
	tb.Helper()
	if len(diagnostics) != want {
		tb.Errorf("got %d diagnostics, want %d", len(diagnostics), want)
		for _, d := range diagnostics {
			tb.Logf("  - %s at %v: %s", d.RuleCode, d.Location, d.Message)
		}
	}
}

// AssertDiagnosticAt fails if there's no diagnostic at byte offset start with the given code.
func AssertDiagnosticAt(tb testing.TB, diagnostics []rules.Diagnostic, start uint32, code string) {
	tb.Helper()
	for _, d := range diagnostics {
		if uint32(d.Location.Range.Start()) == start && d.RuleCode == code {
			return
		}
	}
	tb.Errorf("expected diagnostic %q at offset %d, not found", code, start)
	tb.Logf("diagnostics:")
	for _, d := range diagnostics {
		tb.Logf("  - %s at %v: %s", d.RuleCode, d.Location, d.Message)
	}
}
