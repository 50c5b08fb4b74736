package hostconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/eleventy7/lintal/internal/checkstylecfg"
	"github.com/eleventy7/lintal/internal/fix"
)

func TestDefault(t *testing.T) {
	d := Default()
	if d.Output.Format != "text" || d.Output.Path != "stdout" || d.Output.FailLevel != "style" {
		t.Errorf("unexpected defaults: %+v", d.Output)
	}
}

func TestLoadFromFile_Defaults(t *testing.T) {
	overrides, err := LoadFromFile("")
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if overrides.Output.Format != "text" {
		t.Errorf("Output.Format = %q, want text", overrides.Output.Format)
	}
	if overrides.ConfigFile != "" {
		t.Errorf("ConfigFile = %q, want empty", overrides.ConfigFile)
	}
}

func TestLoadFromFile_TOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lintal.toml")
	content := `
include = ["MagicNumber"]
exclude = ["*"]

[output]
format = "json"
fail-level = "error"

[rules.MagicNumber]
severity = "off"
fix = "never"
exclude = ["**/*_test.java"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	overrides, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if overrides.Output.Format != "json" {
		t.Errorf("Output.Format = %q, want json", overrides.Output.Format)
	}
	if overrides.Output.FailLevel != "error" {
		t.Errorf("Output.FailLevel = %q, want error", overrides.Output.FailLevel)
	}
	if len(overrides.Include) != 1 || overrides.Include[0] != "MagicNumber" {
		t.Errorf("Include = %v", overrides.Include)
	}
	ro, ok := overrides.Rules["MagicNumber"]
	if !ok {
		t.Fatal("expected MagicNumber rule override")
	}
	if ro.Severity != "off" || ro.Fix != "never" {
		t.Errorf("unexpected MagicNumber override: %+v", ro)
	}
	if len(ro.ExcludePaths) != 1 || ro.ExcludePaths[0] != "**/*_test.java" {
		t.Errorf("ExcludePaths = %v", ro.ExcludePaths)
	}
	if overrides.ConfigFile != path {
		t.Errorf("ConfigFile = %q, want %q", overrides.ConfigFile, path)
	}
}

func TestLoadFromFile_EnvOverride(t *testing.T) {
	t.Setenv("LINTAL_OUTPUT_FORMAT", "sarif")
	overrides, err := LoadFromFile("")
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if overrides.Output.Format != "sarif" {
		t.Errorf("Output.Format = %q, want sarif (env override)", overrides.Output.Format)
	}
}

func TestDiscover_WalksUpDirectoryTree(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	cfgPath := filepath.Join(root, "a", ".lintal.toml")
	if err := os.WriteFile(cfgPath, []byte(""), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	found := Discover(filepath.Join(sub, "Main.java"))
	if found != cfgPath {
		t.Errorf("Discover() = %q, want %q", found, cfgPath)
	}
}

func TestDiscover_NoneFound(t *testing.T) {
	root := t.TempDir()
	found := Discover(filepath.Join(root, "Main.java"))
	if found != "" {
		t.Errorf("Discover() = %q, want empty", found)
	}
}

func TestMergedConfig_IsEnabled(t *testing.T) {
	cs := &checkstylecfg.Config{RuleModules: map[string]checkstylecfg.Module{
		"MagicNumber": {Name: "MagicNumber", Properties: map[string]string{}},
	}}
	overrides := Default()
	overrides.Rules = map[string]RuleOverride{
		"FinalParameters": {Severity: "off"},
	}
	merged := Merge(cs, overrides)

	if !merged.IsEnabled("MagicNumber", false) {
		t.Error("MagicNumber is declared in the checkstyle config, should be enabled")
	}
	if merged.IsEnabled("FinalParameters", true) {
		t.Error("FinalParameters has severity=off override, should be disabled")
	}
	if merged.IsEnabled("EmptyBlock", false) {
		t.Error("EmptyBlock is neither declared nor default-enabled")
	}
	if !merged.IsEnabled("EmptyBlock", true) {
		t.Error("EmptyBlock should fall back to enabledByDefault")
	}
}

func TestMergedConfig_IncludeExcludeWildcard(t *testing.T) {
	cs := &checkstylecfg.Config{RuleModules: map[string]checkstylecfg.Module{}}
	overrides := Default()
	overrides.Exclude = []string{"*"}
	overrides.Include = []string{"MagicNumber"}
	merged := Merge(cs, overrides)

	if !merged.IsEnabled("MagicNumber", false) {
		t.Error("explicit Include should win over wildcard Exclude")
	}
	if merged.IsEnabled("FinalParameters", true) {
		t.Error("wildcard Exclude should disable everything else")
	}
}

func TestMergedConfig_NilArgs(t *testing.T) {
	merged := Merge(nil, nil)
	if merged.Checkstyle == nil || merged.Overrides == nil {
		t.Fatal("Merge(nil, nil) should substitute empty defaults, not leave nils")
	}
	if merged.IsEnabled("Anything", false) {
		t.Error("empty merged config should not enable undeclared rules")
	}
}

func TestParseFixMode(t *testing.T) {
	cases := []struct {
		in            string
		includeUnsafe bool
		want          fix.Mode
	}{
		{"never", false, fix.ModeNever},
		{"unsafe-only", true, fix.ModeIncludeUnsafe},
		{"unsafe-only", false, fix.ModeNever},
		{"explicit", false, fix.ModeExplicitRules},
		{"", false, fix.ModeSafeOnly},
		{"", true, fix.ModeIncludeUnsafe},
	}
	for _, c := range cases {
		if got := ParseFixMode(c.in, c.includeUnsafe); got != c.want {
			t.Errorf("ParseFixMode(%q, %v) = %v, want %v", c.in, c.includeUnsafe, got, c.want)
		}
	}
}
