// Package hostconfig loads the host TOML overrides layer and merges it
// with a parsed checkstyle configuration into the engine's MergedConfig,
// the way the teacher's own internal/config package layers TOML over its
// defaults via koanf.
package hostconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/eleventy7/lintal/internal/checkstylecfg"
	"github.com/eleventy7/lintal/internal/fix"
	"github.com/eleventy7/lintal/internal/ruleschema"
)

// ConfigFileNames are searched for, in priority order, during discovery.
var ConfigFileNames = []string{".lintal.toml", "lintal.toml"}

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "LINTAL_"

// RuleOverride is the host-side override for a single checkstyle module.
type RuleOverride struct {
	// Severity overrides the rule's default severity ("off" disables it).
	Severity string `koanf:"severity"`

	// Fix controls when auto-fixes are applied for this rule.
	Fix string `koanf:"fix"`

	// ExcludePaths are glob patterns where this rule should not run.
	ExcludePaths []string `koanf:"exclude"`
}

// Overrides is the host TOML configuration layer.
type Overrides struct {
	// Include/Exclude select rules by name or "*" wildcard, Ruff-style;
	// Include takes precedence over Exclude.
	Include []string `koanf:"include"`
	Exclude []string `koanf:"exclude"`

	// Rules holds per-rule overrides keyed by checkstyle module name.
	Rules map[string]RuleOverride `koanf:"rules"`

	// Output configures reporter format/destination.
	Output OutputOverride `koanf:"output"`

	// ConfigFile records which file was loaded, if any; not itself loaded.
	ConfigFile string `koanf:"-"`
}

// OutputOverride configures output formatting and behavior.
type OutputOverride struct {
	Format     string `koanf:"format"`
	Path       string `koanf:"path"`
	ShowSource bool   `koanf:"show-source"`
	FailLevel  string `koanf:"fail-level"`
}

// Default returns the built-in defaults applied before any file/env layer.
func Default() *Overrides {
	return &Overrides{
		Include: []string{},
		Exclude: []string{},
		Rules:   map[string]RuleOverride{},
		Output: OutputOverride{
			Format:     "text",
			Path:       "stdout",
			ShowSource: true,
			FailLevel:  "style",
		},
	}
}

// Discover walks up from targetPath's directory looking for a host config
// file, returning the closest match or "" if none exists.
func Discover(targetPath string) string {
	dir := filepath.Dir(targetPath)
	abs, err := filepath.Abs(dir)
	if err == nil {
		dir = abs
	}
	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Load loads host overrides for targetPath: defaults, then the discovered
// config file, then environment variables.
func Load(targetPath string) (*Overrides, error) {
	return LoadFromFile(Discover(targetPath))
}

// LoadFromFile loads host overrides from a specific file path (possibly
// empty, meaning defaults + environment only).
func LoadFromFile(configPath string) (*Overrides, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, err
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, err
		}
	}
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envKeyTransform,
	}), nil); err != nil {
		return nil, err
	}

	if validator, err := ruleschema.Default(); err == nil {
		if err := validator.ValidateHostConfig(k.Raw()); err != nil {
			return nil, fmt.Errorf("validate host config: %w", err)
		}
	}

	overrides := &Overrides{}
	if err := k.Unmarshal("", overrides); err != nil {
		return nil, err
	}
	overrides.ConfigFile = configPath
	return overrides, nil
}

func envKeyTransform(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.ReplaceAll(s, "-", ".") // flatten remaining separators into nesting
	for pattern, replacement := range knownHyphenatedKeys {
		s = strings.ReplaceAll(s, pattern, replacement)
	}
	return s
}

var knownHyphenatedKeys = map[string]string{
	"show.source": "show-source",
	"fail.level":  "fail-level",
}

// MergedConfig is the engine's resolved configuration: the checkstyle
// module tree as overridden by the host TOML layer.
type MergedConfig struct {
	Checkstyle *checkstylecfg.Config
	Overrides  *Overrides
}

// Merge combines a checkstyle configuration with host overrides. Either
// argument may be nil (an empty checkstyle config or the zero Overrides
// is substituted).
func Merge(cs *checkstylecfg.Config, overrides *Overrides) *MergedConfig {
	if cs == nil {
		cs = &checkstylecfg.Config{RuleModules: map[string]checkstylecfg.Module{}}
	}
	if overrides == nil {
		overrides = Default()
	}
	return &MergedConfig{Checkstyle: cs, Overrides: overrides}
}

// IsEnabled reports whether ruleCode is enabled considering, in order:
// host Include/Exclude patterns, a host severity override of "off", and
// finally whether the checkstyle config declares the module at all.
func (m *MergedConfig) IsEnabled(ruleCode string, enabledByDefault bool) bool {
	if matchesAny(ruleCode, m.Overrides.Include) {
		return true
	}
	if matchesAny(ruleCode, m.Overrides.Exclude) {
		return false
	}
	if ro, ok := m.Overrides.Rules[ruleCode]; ok && ro.Severity == "off" {
		return false
	}
	if _, declared := m.Checkstyle.RuleModules[ruleCode]; declared {
		return true
	}
	return enabledByDefault
}

// Severity returns the host severity override for ruleCode, or "" if none
// is configured.
func (m *MergedConfig) Severity(ruleCode string) string {
	return m.Overrides.Rules[ruleCode].Severity
}

// FixMode returns the host fix-mode override for ruleCode, or "" if none.
func (m *MergedConfig) FixMode(ruleCode string) string {
	return m.Overrides.Rules[ruleCode].Fix
}

// ExcludePaths returns the glob patterns where ruleCode should not run.
func (m *MergedConfig) ExcludePaths(ruleCode string) []string {
	return m.Overrides.Rules[ruleCode].ExcludePaths
}

// Properties returns the checkstyle module's property map for ruleCode,
// or nil if the module wasn't declared.
func (m *MergedConfig) Properties(ruleCode string) map[string]string {
	return m.Checkstyle.RuleModules[ruleCode].Properties
}

func matchesAny(ruleCode string, patterns []string) bool {
	for _, p := range patterns {
		if p == "*" || p == ruleCode {
			return true
		}
	}
	return false
}

// ParseFixMode converts a host override's Fix string into a fix.Mode.
func ParseFixMode(s string, includeUnsafe bool) fix.Mode {
	switch s {
	case "never":
		return fix.ModeNever
	case "unsafe-only":
		if includeUnsafe {
			return fix.ModeIncludeUnsafe
		}
		return fix.ModeNever
	case "explicit":
		return fix.ModeExplicitRules
	default:
		if includeUnsafe {
			return fix.ModeIncludeUnsafe
		}
		return fix.ModeSafeOnly
	}
}
