// Package magicnumber implements checkstyle's MagicNumber check: numeric
// literals used directly in code, rather than through a named constant.
package magicnumber

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/eleventy7/lintal/internal/javacst"
	"github.com/eleventy7/lintal/internal/rules"
)

// Config is the configuration for the MagicNumber rule.
type Config struct {
	// IgnoreNumbers lists integer values that are never reported.
	IgnoreNumbers []int64

	// IgnoreHashCodeMethod skips literals inside a method named hashCode.
	IgnoreHashCodeMethod bool

	// IgnoreAnnotation skips literals used as annotation element values.
	IgnoreAnnotation bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		IgnoreNumbers:        []int64{-1, 0, 1, 2},
		IgnoreHashCodeMethod: true,
		IgnoreAnnotation:     false,
	}
}

func (c Config) ignores(v int64) bool {
	for _, n := range c.IgnoreNumbers {
		if n == v {
			return true
		}
	}
	return false
}

// Rule implements the MagicNumber linting rule.
type Rule struct{}

// Metadata returns the rule metadata.
func (r *Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "MagicNumber",
		Name:             "Magic Number",
		Description:      "Checks for magic numbers that are not defined as named constants",
		DocURL:           "https://checkstyle.org/checks/coding/magicnumber.html",
		DefaultSeverity:  rules.SeverityWarning,
		Category:         "coding",
		EnabledByDefault: false,
	}
}

var literalKinds = []string{
	"decimal_integer_literal",
	"hex_integer_literal",
	"octal_integer_literal",
	"binary_integer_literal",
	"decimal_floating_point_literal",
	"hex_floating_point_literal",
}

// RelevantKinds returns the node kinds this rule dispatches on.
func (r *Rule) RelevantKinds() []string {
	return literalKinds
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
	if _, ok := resolveConfig(config); !ok {
		return fmt.Errorf("expected Config, got %T", config)
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
	if cfg.IgnoreNumbers == nil {
		cfg = DefaultConfig()
	}

	value, sign, ok := literalValue(node)
	if !ok {
		return nil
	}

	if isIgnoredConstantField(node) {
		return nil
	}
	if cfg.IgnoreHashCodeMethod && isInsideHashCodeMethod(node) {
		return nil
	}
	if cfg.IgnoreAnnotation && isAnnotationValue(node) {
		return nil
	}

	if intVal, isInt := value.(int64); isInt {
		signed := intVal
		if sign < 0 {
			signed = -intVal
		}
		if cfg.ignores(signed) {
			return nil
		}
	}

	display := string(node.Text())
	if sign < 0 {
		display = "-" + display
	}

	loc := ctx.Location(node)
	return []rules.Diagnostic{
		rules.NewDiagnostic(
			loc,
			"MagicNumber",
			fmt.Sprintf("Magic number '%s' should be a named constant.", display),
			rules.SeverityWarning,
		),
	}
}

// literalValue parses the literal's numeric value, reporting the sign
// separately since unary minus is a sibling node in the CST, not part of
// the literal token itself. ok is false for literals this rule doesn't
// attempt to parse (e.g. malformed text).
func literalValue(node javacst.Node) (value any, sign int, ok bool) {
	sign = 1
	if parent := node.Parent(); !parent.IsZero() && parent.Kind() == "unary_expression" {
		if op := parent.Child(0); !op.IsZero() && string(op.Text()) == "-" {
			sign = -1
		}
	}

	text := strings.ReplaceAll(string(node.Text()), "_", "")
	text = strings.TrimSuffix(text, "L")
	text = strings.TrimSuffix(text, "l")

	switch node.Kind() {
	case "decimal_floating_point_literal", "hex_floating_point_literal":
		t := strings.TrimSuffix(strings.TrimSuffix(text, "f"), "F")
		t = strings.TrimSuffix(strings.TrimSuffix(t, "d"), "D")
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return nil, sign, false
		}
		if f == float64(int64(f)) {
			return int64(f), sign, true
		}
		return f, sign, true
	case "hex_integer_literal":
		n, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimPrefix(text, "0x"), "0X"), 16, 64)
		if err != nil {
			return nil, sign, false
		}
		return n, sign, true
	case "binary_integer_literal":
		n, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimPrefix(text, "0b"), "0B"), 2, 64)
		if err != nil {
			return nil, sign, false
		}
		return n, sign, true
	case "octal_integer_literal":
		n, err := strconv.ParseInt(text, 8, 64)
		if err != nil {
			return nil, sign, false
		}
		return n, sign, true
	case "decimal_integer_literal":
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, sign, false
		}
		return n, sign, true
	}
	return nil, sign, false
}

// isIgnoredConstantField reports whether node sits within a field
// declaration whose modifiers include final, which checkstyle always
// exempts regardless of IgnoreNumbers.
func isIgnoredConstantField(node javacst.Node) bool {
	for p := node.Parent(); !p.IsZero(); p = p.Parent() {
		if p.Kind() != "field_declaration" {
			continue
		}
		for i := 0; i < p.ChildCount(); i++ {
			child := p.Child(i)
			if child.Kind() != "modifiers" {
				continue
			}
			for j := 0; j < child.ChildCount(); j++ {
				if child.Child(j).Kind() == "final" {
					return true
				}
			}
		}
		return false
	}
	return false
}

func isInsideHashCodeMethod(node javacst.Node) bool {
	for p := node.Parent(); !p.IsZero(); p = p.Parent() {
		if p.Kind() != "method_declaration" {
			continue
		}
		name := p.ChildByFieldName("name")
		return !name.IsZero() && string(name.Text()) == "hashCode"
	}
	return false
}

func isAnnotationValue(node javacst.Node) bool {
	for p := node.Parent(); !p.IsZero(); p = p.Parent() {
		switch p.Kind() {
		case "annotation", "marker_annotation", "annotation_argument_list", "element_value_pair", "element_value_array_initializer":
			return true
		case "method_declaration", "class_declaration":
			return false
		}
	}
	return false
}

// New creates a new MagicNumber rule instance.
func New() *Rule {
	return &Rule{}
}

func init() {
	rules.Register(New())
}
