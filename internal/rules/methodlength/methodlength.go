// Package methodlength implements checkstyle's MethodLength check: flags
// methods and constructors whose body spans more lines than allowed.
package methodlength

import (
	"bytes"
	"fmt"

	"github.com/eleventy7/lintal/internal/javacst"
	"github.com/eleventy7/lintal/internal/rules"
)

// Config is the configuration for the MethodLength rule.
type Config struct {
	// Max is the maximum number of lines a method body may span.
	Max int

	// CountEmpty controls whether blank lines within the body count
	// toward the line total.
	CountEmpty bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Max: 150, CountEmpty: true}
}

// Rule implements the MethodLength linting rule.
type Rule struct{}

// Metadata returns the rule metadata.
func (r *Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "MethodLength",
		Name:             "Method Length",
		Description:      "Checks for long methods and constructors",
		DocURL:           "https://checkstyle.org/checks/sizes/methodlength.html",
		DefaultSeverity:  rules.SeverityWarning,
		Category:         "sizes",
		EnabledByDefault: false,
	}
}

// RelevantKinds returns the node kinds this rule dispatches on.
func (r *Rule) RelevantKinds() []string {
	return []string{"method_declaration", "constructor_declaration"}
}

// DefaultConfig returns the default configuration for this rule.
func (r *Rule) DefaultConfig() any {
	return DefaultConfig()
}

// ValidateConfig checks if a configuration is valid for this rule.
func (r *Rule) ValidateConfig(config any) error {
	if config == nil {
		return nil
	}
	cfg, ok := resolveConfig(config)
	if !ok {
		return fmt.Errorf("expected Config, got %T", config)
	}
	if cfg.Max < 1 {
		return fmt.Errorf("max must be at least 1, got %d", cfg.Max)
	}
	return nil
}

func resolveConfig(config any) (Config, bool) {
	switch v := config.(type) {
	case Config:
		return v, true
	case *Config:
		if v == nil {
			return DefaultConfig(), true
		}
		return *v, true
	case nil:
		return DefaultConfig(), true
	default:
		return Config{}, false
	}
}

// Check inspects node and returns any diagnostics it produces.
func (r *Rule) Check(ctx *rules.CheckContext, node javacst.Node) []rules.Diagnostic {
	cfg, _ := resolveConfig(ctx.Config)
	if cfg.Max == 0 {
		cfg = DefaultConfig()
	}

	body := node.ChildByFieldName("body")
	if body.IsZero() {
		return nil
	}

	lines := countLines(ctx.Source, body, cfg.CountEmpty)
	if lines <= cfg.Max {
		return nil
	}

	name := "<init>"
	if node.Kind() == "method_declaration" {
		if nameNode := node.ChildByFieldName("name"); !nameNode.IsZero() {
			name = string(nameNode.Text())
		}
	}

	loc := ctx.Location(node)
	return []rules.Diagnostic{
		rules.NewDiagnostic(
			loc,
			"MethodLength",
			fmt.Sprintf("Method '%s' has too many lines: %d (max allowed is %d).", name, lines, cfg.Max),
			rules.SeverityWarning,
		),
	}
}

// countLines returns the number of source lines spanned by body's range,
// inclusive of both the opening and closing brace lines. When
// countEmpty is false, blank (whitespace-only) lines inside the body are
// excluded from the count.
func countLines(source []byte, body javacst.Node, countEmpty bool) int {
	r := body.Range()
	start, end := int(r.Start()), int(r.End())
	if end > len(source) {
		end = len(source)
	}
	if start > end {
		return 0
	}
	span := source[start:end]

	total := bytes.Count(span, []byte("\n")) + 1
	if countEmpty {
		return total
	}

	blank := 0
	for _, line := range bytes.Split(span, []byte("\n")) {
		if len(bytes.TrimSpace(line)) == 0 {
			blank++
		}
	}
	if total-blank < 1 {
		return 1
	}
	return total - blank
}

// New creates a new MethodLength rule instance.
func New() *Rule {
	return &Rule{}
}

func init() {
	rules.Register(New())
}
