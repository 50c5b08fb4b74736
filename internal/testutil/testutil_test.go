package testutil

import (
	"testing"

	"github.com/eleventy7/lintal/internal/javacst"
	"github.com/eleventy7/lintal/internal/rules"
)

const sampleClass = `public class Sample {
    private int x = 1;
}
`

type fakeRule struct {
	code string
	want int // diagnostics per node visited
}

func (r fakeRule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{Code: r.code, DefaultSeverity: rules.SeverityWarning, EnabledByDefault: true}
}

func (r fakeRule) RelevantKinds() []string { return []string{"class_declaration"} }

func (r fakeRule) Check(ctx *rules.CheckContext, node javacst.Node) []rules.Diagnostic {
	diags := make([]rules.Diagnostic, 0, r.want)
	for i := 0; i < r.want; i++ {
		diags = append(diags, rules.NewDiagnostic(ctx.Location(node), r.code, "example violation", rules.SeverityWarning))
	}
	return diags
}

func TestMakeCheckContext(t *testing.T) {
	ctx := MakeCheckContext(t, "Sample.java", sampleClass)
	if ctx.File != "Sample.java" {
		t.Errorf("File = %q, want %q", ctx.File, "Sample.java")
	}
	if string(ctx.Source) != sampleClass {
		t.Error("Source does not match input content")
	}
	if ctx.Root.IsZero() {
		t.Error("Root should not be zero")
	}
}

func TestMakeCheckContextWithConfig(t *testing.T) {
	config := struct{ Max int }{Max: 100}
	ctx := MakeCheckContextWithConfig(t, "Sample.java", sampleClass, config)

	cfg, ok := ctx.Config.(struct{ Max int })
	if !ok {
		t.Fatalf("Config type = %T, want struct{Max int}", ctx.Config)
	}
	if cfg.Max != 100 {
		t.Errorf("Config.Max = %d, want 100", cfg.Max)
	}
}

func TestRunRule(t *testing.T) {
	diagnostics := RunRule(t, fakeRule{code: "Fake", want: 2}, "Sample.java", sampleClass, nil)
	if len(diagnostics) != 2 {
		t.Fatalf("got %d diagnostics, want 2", len(diagnostics))
	}
	for _, d := range diagnostics {
		if d.RuleCode != "Fake" {
			t.Errorf("RuleCode = %q, want Fake", d.RuleCode)
		}
	}
}

func TestRunRuleTests(t *testing.T) {
	RunRuleTests(t, fakeRule{code: "Fake", want: 1}, []RuleTestCase{
		{
			Name:           "single class",
			Content:        sampleClass,
			WantViolations: 1,
			WantMessages:   []string{"example violation"},
		},
	})
}

func TestAssertNoDiagnostics(t *testing.T) {
	AssertNoDiagnostics(t, nil)
	AssertNoDiagnostics(t, []rules.Diagnostic{})
}

func TestAssertDiagnosticCount(t *testing.T) {
	diagnostics := RunRule(t, fakeRule{code: "Fake", want: 1}, "Sample.java", sampleClass, nil)
	AssertDiagnosticCount(t, diagnostics, 1)
	AssertDiagnosticCount(t, nil, 0)
}

func TestAssertDiagnosticAt(t *testing.T) {
	diagnostics := RunRule(t, fakeRule{code: "Fake", want: 1}, "Sample.java", sampleClass, nil)
	if len(diagnostics) != 1 {
		t.Fatalf("setup: got %d diagnostics, want 1", len(diagnostics))
	}
	start := uint32(diagnostics[0].Location.Range.Start())
	AssertDiagnosticAt(t, diagnostics, start, "Fake")
}
