// Package finalparams implements the checkstyle FinalParameters check:
// method, constructor, catch and enhanced-for parameters must carry the
// final modifier unless explicitly exempted.
package finalparams

import (
	"fmt"
	"strings"

	"github.com/eleventy7/lintal/internal/javacst"
	"github.com/eleventy7/lintal/internal/rules"
	"github.com/eleventy7/lintal/internal/textrange"
)

// Config is the configuration for the FinalParameters rule.
type Config struct {
	// Tokens selects which parameter sites to check: any of "METHOD_DEF",
	// "CTOR_DEF", "LITERAL_CATCH", "FOR_EACH_CLAUSE". Defaults to
	// METHOD_DEF and CTOR_DEF.
	Tokens []string

	// IgnorePrimitiveTypes skips parameters of a primitive type.
	IgnorePrimitiveTypes bool

	// IgnoreUnnamedParameters skips parameters named "_".
	IgnoreUnnamedParameters bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Tokens:                  []string{"METHOD_DEF", "CTOR_DEF"},
		IgnorePrimitiveTypes:    false,
		IgnoreUnnamedParameters: true,
	}
}

func (c Config) checks(token string) bool {
	for _, t := range c.Tokens {
		if t == token {
			return true
		}
	}
	return false
}

// Rule implements the FinalParameters linting rule.
type Rule struct{}

// Metadata returns the rule metadata.
func (r *Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             "FinalParameters",
		Name:             "Final Parameters",
		Description:      "Requires method, constructor, catch and for-each parameters to be declared final",
		DocURL:           "https://checkstyle.org/checks/modifier/finalparameters.html",
		DefaultSeverity:  rules.SeverityWarning,
		Category:         "modifier",
		EnabledByDefault: false,
	}
}

// RelevantKinds returns the node kinds this rule dispatches on.
func (r *Rule) RelevantKinds() []string {
	return []string{"method_declaration", "constructor_declaration", "catch_clause", "enhanced_for_statement"}
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

// Check inspects node and returns any diagnostics it produces.
func (r *Rule) Check(ctx *rules.CheckContext, node javacst.Node) []rules.Diagnostic {
	cfg, _ := resolveConfig(ctx.Config)
	if cfg.Tokens == nil {
		cfg = DefaultConfig()
	}

	switch node.Kind() {
	case "method_declaration":
		if cfg.checks("METHOD_DEF") {
			return checkParameterList(ctx, cfg, node)
		}
	case "constructor_declaration":
		if cfg.checks("CTOR_DEF") {
			return checkParameterList(ctx, cfg, node)
		}
	case "catch_clause":
		if cfg.checks("LITERAL_CATCH") {
			return checkCatch(ctx, cfg, node)
		}
	case "enhanced_for_statement":
		if cfg.checks("FOR_EACH_CLAUSE") {
			return checkForEach(ctx, cfg, node)
		}
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

// checkParameterList checks every formal_parameter of a method or
// constructor declaration. Declarations with no body (abstract/interface
// methods) are skipped.
func checkParameterList(ctx *rules.CheckContext, cfg Config, decl javacst.Node) []rules.Diagnostic {
	if decl.Kind() == "method_declaration" && decl.ChildByFieldName("body").IsZero() {
		return nil
	}

	params := decl.ChildByFieldName("parameters")
	if params.IsZero() {
		return nil
	}

	var diagnostics []rules.Diagnostic
	for i := 0; i < params.ChildCount(); i++ {
		child := params.Child(i)
		if child.Kind() != "formal_parameter" && child.Kind() != "spread_parameter" {
			continue
		}
		if d, ok := checkParam(ctx, cfg, child); ok {
			diagnostics = append(diagnostics, d)
		}
	}
	return diagnostics
}

func checkCatch(ctx *rules.CheckContext, cfg Config, catchClause javacst.Node) []rules.Diagnostic {
	for i := 0; i < catchClause.ChildCount(); i++ {
		child := catchClause.Child(i)
		if child.Kind() == "catch_formal_parameter" {
			if d, ok := checkParam(ctx, cfg, child); ok {
				return []rules.Diagnostic{d}
			}
			return nil
		}
	}
	return nil
}

func checkForEach(ctx *rules.CheckContext, cfg Config, forEach javacst.Node) []rules.Diagnostic {
	var modifiers, typeNode, identifier javacst.Node
	for i := 0; i < forEach.ChildCount(); i++ {
		child := forEach.Child(i)
		switch child.Kind() {
		case "modifiers":
			modifiers = child
		case "type_identifier", "generic_type", "array_type", "integral_type", "floating_point_type", "boolean_type":
			if typeNode.IsZero() {
				typeNode = child
			}
		case "identifier", "underscore_pattern":
			if identifier.IsZero() {
				identifier = child
			}
		}
	}

	if !modifiers.IsZero() && hasFinalModifier(modifiers) {
		return nil
	}
	if identifier.IsZero() {
		return nil
	}

	name := string(identifier.Text())
	if cfg.IgnoreUnnamedParameters && name == "_" {
		return nil
	}
	if !typeNode.IsZero() && cfg.IgnorePrimitiveTypes && isPrimitiveType(ctx, typeNode) {
		return nil
	}

	firstNode := identifier
	if !modifiers.IsZero() {
		firstNode = modifiers
	} else if !typeNode.IsZero() {
		firstNode = typeNode
	}
	firstLeaf := firstLeafNode(firstNode)

	insertOffset := firstLeaf.Range().Start()
	if !modifiers.IsZero() {
		insertOffset = modifiers.Range().End()
	} else if !typeNode.IsZero() {
		insertOffset = typeNode.Range().Start()
	}

	return []rules.Diagnostic{newDiagnostic(ctx, firstLeaf, name, insertOffset)}
}

func checkParam(ctx *rules.CheckContext, cfg Config, param javacst.Node) (rules.Diagnostic, bool) {
	var modifiers javacst.Node
	for i := 0; i < param.ChildCount(); i++ {
		child := param.Child(i)
		if child.Kind() == "modifiers" {
			modifiers = child
			break
		}
	}
	if !modifiers.IsZero() && hasFinalModifier(modifiers) {
		return rules.Diagnostic{}, false
	}

	if isReceiverParameter(ctx, param) {
		return rules.Diagnostic{}, false
	}

	nameNode := param.ChildByFieldName("name")
	if nameNode.IsZero() {
		return rules.Diagnostic{}, false
	}
	name := string(nameNode.Text())
	if cfg.IgnoreUnnamedParameters && name == "_" {
		return rules.Diagnostic{}, false
	}

	typeNode := param.ChildByFieldName("type")
	if !typeNode.IsZero() && cfg.IgnorePrimitiveTypes && isPrimitiveType(ctx, typeNode) {
		return rules.Diagnostic{}, false
	}

	firstNode := firstLeafNode(param)

	insertOffset := firstNode.Range().Start()
	if !modifiers.IsZero() {
		insertOffset = modifiers.Range().End()
	} else if !typeNode.IsZero() {
		insertOffset = typeNode.Range().Start()
	}

	return newDiagnostic(ctx, firstNode, name, insertOffset), true
}

func newDiagnostic(ctx *rules.CheckContext, reportNode javacst.Node, paramName string, insertOffset textrange.Size) rules.Diagnostic {
	loc := ctx.Location(reportNode)
	edit := rules.Edit{
		Location: rules.NewPointLocation(ctx.File, insertOffset, ctx.SourceMap()),
		NewText:  "final ",
	}
	return rules.NewDiagnostic(
		loc,
		"FinalParameters",
		fmt.Sprintf("Parameter %s should be final.", paramName),
		rules.SeverityWarning,
	).WithFix(&rules.Fix{
		Description: "insert final modifier",
		Edits:       []rules.Edit{edit},
		Safety:      rules.FixSafe,
	})
}

func hasFinalModifier(modifiers javacst.Node) bool {
	for i := 0; i < modifiers.ChildCount(); i++ {
		if modifiers.Child(i).Kind() == "final" {
			return true
		}
	}
	return false
}

func isReceiverParameter(ctx *rules.CheckContext, param javacst.Node) bool {
	if param.Kind() == "receiver_parameter" {
		return true
	}
	nameNode := param.ChildByFieldName("name")
	if nameNode.IsZero() {
		return false
	}
	name := string(nameNode.Text())
	return name == "this" || strings.HasSuffix(name, ".this")
}

func isPrimitiveType(ctx *rules.CheckContext, typeNode javacst.Node) bool {
	if typeNode.Kind() == "array_type" {
		return false
	}
	switch typeNode.Kind() {
	case "integral_type", "floating_point_type", "boolean_type":
		return true
	}
	text := string(typeNode.Text())
	switch text {
	case "byte", "short", "int", "long", "float", "double", "boolean", "char":
		return true
	}
	return false
}

// firstLeafNode returns the leftmost descendant of node, matching
// checkstyle's CheckUtil.getFirstNode.
func firstLeafNode(node javacst.Node) javacst.Node {
	current := node
	for current.ChildCount() > 0 {
		leftmost := current.Child(0)
		for i := 1; i < current.ChildCount(); i++ {
			if child := current.Child(i); child.Range().Start() < leftmost.Range().Start() {
				leftmost = child
			}
		}
		current = leftmost
	}
	return current
}

// New creates a new FinalParameters rule instance.
func New() *Rule {
	return &Rule{}
}

func init() {
	rules.Register(New())
}
