package rules

import (
	"github.com/eleventy7/lintal/internal/javacst"
	"github.com/eleventy7/lintal/internal/sourcemap"
)

// CheckContext is the read-only, per-file state a rule's Check method sees.
// The checker driver builds one CheckContext per file and reuses it across
// every node and every rule invoked against that file; rules must not
// mutate any of its fields.
type CheckContext struct {
	// File is the path to the Java source file being linted.
	File string

	// Source is the raw source content of the file.
	Source []byte

	// Root is the CST root node for Source.
	Root javacst.Node

	// Config is rule-specific configuration resolved from the merged
	// checkstyle/host configuration (type depends on the rule).
	Config any
}

// SourceMap builds a SourceMap for snippet extraction and position
// resolution. Not cached; callers that need it more than once should hold
// onto the result.
func (ctx *CheckContext) SourceMap() *sourcemap.SourceMap {
	return sourcemap.New(ctx.Source)
}

// Location builds a Location for a CST node's range within this file.
func (ctx *CheckContext) Location(n javacst.Node) Location {
	return NewLocation(ctx.File, n.Range(), ctx.SourceMap())
}

// RuleMetadata contains static information about a rule.
type RuleMetadata struct {
	// Code is the unique identifier (e.g. "EmptyBlock", "FinalParameters").
	Code string

	// Name is the human-readable rule name.
	Name string

	// Description explains what the rule checks.
	Description string

	// DocURL links to detailed documentation.
	DocURL string

	// DefaultSeverity is the severity when not overridden.
	DefaultSeverity Severity

	// Category groups related rules (e.g. "blocks", "whitespace", "naming").
	Category string

	// EnabledByDefault indicates if the rule runs without explicit opt-in.
	EnabledByDefault bool

	// IsExperimental marks rules that may change or be removed.
	IsExperimental bool
}

// Rule is the interface every lint rule implements. A Rule is invoked once
// per CST node whose kind is in RelevantKinds (or once per node at all, if
// RelevantKinds is empty): see internal/dispatch for how the check driver
// uses RelevantKinds to avoid invoking every rule on every node.
//
// Check must be pure: given the same ctx and node it must return the same
// diagnostics, with no observable side effects. This is what lets the
// checker run rules in any order and, across files, in parallel.
type Rule interface {
	// Metadata returns static information about the rule.
	Metadata() RuleMetadata

	// RelevantKinds returns the CST node kind names this rule dispatches
	// on. An empty slice marks the rule as a catch-all, invoked on every
	// node regardless of kind.
	RelevantKinds() []string

	// Check inspects node and returns any diagnostics it produces. node's
	// kind is guaranteed to be one of RelevantKinds (or RelevantKinds was
	// empty). ctx.Root is the whole file's CST, available for rules that
	// need surrounding context beyond node itself.
	Check(ctx *CheckContext, node javacst.Node) []Diagnostic
}

// ConfigurableRule is an optional interface for rules that accept
// configuration (checkstyle module properties, merged with host overrides).
type ConfigurableRule interface {
	Rule

	// DefaultConfig returns the default configuration for this rule.
	DefaultConfig() any

	// ValidateConfig checks if a configuration is valid for this rule.
	ValidateConfig(config any) error
}
