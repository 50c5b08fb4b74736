// Package linter drives a single file through the check pipeline: parse,
// build the suppression index, walk the CST once dispatching only the
// rules relevant to each node's kind, and collect the diagnostics that
// survive suppression.
package linter

import (
	"os"

	"github.com/eleventy7/lintal/internal/dispatch"
	"github.com/eleventy7/lintal/internal/javacst"
	"github.com/eleventy7/lintal/internal/javaparser"
	"github.com/eleventy7/lintal/internal/rules"
	"github.com/eleventy7/lintal/internal/suppress"
)

// Level is a log level for the Channel interface.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Channel receives diagnostic output from the check/fix pipeline.
// Implementations map to environment-specific UX (CLI stderr, CI
// annotations, etc.).
type Channel interface {
	Log(level Level, msg string)
	Progress(title string, pct int) // -1 = indeterminate
	Warn(msg string)
}

// Input configures a single invocation of CheckFile.
type Input struct {
	// FilePath is used for suppression-table lookups and diagnostic locations.
	FilePath string

	// Content is the file content to check. If nil, CheckFile reads from FilePath.
	Content []byte

	// Rules is the set of rules to run, in registration order.
	Rules []rules.Rule

	// RuleConfig resolves a rule's configuration by code, or returns nil
	// for rules with no configured overrides.
	RuleConfig func(ruleCode string) any

	// SuppressionFilters are additional comment-directive filters beyond
	// the built-in CHECKSTYLE:OFF/ON convention.
	SuppressionFilters []suppress.Filter

	// FileSuppressions is the XML-loaded file-granularity suppression
	// table; may be nil.
	FileSuppressions *suppress.FileTable

	// Channel receives progress and diagnostic output. Nil means silent.
	Channel Channel
}

// Result contains the output of CheckFile.
type Result struct {
	// Diagnostics are the diagnostics that survived suppression, in CST
	// traversal order.
	Diagnostics []rules.Diagnostic

	// Skipped is true when the whole file was skipped by a file-level
	// suppression, without being parsed.
	Skipped bool
}

var defaultPool = javaparser.NewPool()

// CheckFile runs the full check pipeline for one file: it returns the
// diagnostics that survive both suppression mechanisms.
func CheckFile(input Input) (*Result, error) {
	if input.FileSuppressions.IsFileFullySuppressed(input.FilePath) {
		return &Result{Skipped: true}, nil
	}

	content := input.Content
	if content == nil {
		var err error
		content, err = os.ReadFile(input.FilePath)
		if err != nil {
			diag := rules.NewDiagnostic(rules.NewFileLocation(input.FilePath), "ReadError", "Failed to read "+input.FilePath, rules.SeverityError)
			return &Result{Diagnostics: []rules.Diagnostic{diag}}, nil
		}
	}

	tree, err := defaultPool.Parse(content)
	if err != nil {
		diag := rules.NewDiagnostic(rules.NewFileLocation(input.FilePath), "ParseError", "Failed to parse", rules.SeverityError)
		return &Result{Diagnostics: []rules.Diagnostic{diag}}, nil
	}
	defer tree.Close()

	root := tree.Root()
	if root.HasError() {
		diag := rules.NewDiagnostic(rules.NewFileLocation(input.FilePath), "ParseError", "Failed to parse", rules.SeverityError)
		return &Result{Diagnostics: []rules.Diagnostic{diag}}, nil
	}

	suppressionCtx := suppress.NewContext(content, input.SuppressionFilters, root)

	table := dispatch.Build(input.Rules, javaparser.Language().KindCount(), javaparser.Language().LookupKind, nil)

	var suppressedRuleMask []bool
	if input.FileSuppressions != nil {
		suppressedRuleMask = make([]bool, len(input.Rules))
		for i, rule := range input.Rules {
			suppressedRuleMask[i] = input.FileSuppressions.IsSuppressed(input.FilePath, rule.Metadata().Code)
		}
	}

	checkCtx := &rules.CheckContext{
		File:   input.FilePath,
		Source: content,
		Root:   root,
	}

	hasSuppressions := suppressionCtx.HasSuppressions()
	var diagnostics []rules.Diagnostic

	javacst.Walk(root, func(node javacst.Node) bool {
		kindID := node.KindID()
		if !table.HasRules(kindID) {
			return true
		}
		for _, ruleIdx := range table.RulesFor(kindID) {
			if suppressedRuleMask != nil && suppressedRuleMask[ruleIdx] {
				continue
			}
			rule := input.Rules[ruleIdx]
			if input.RuleConfig != nil {
				checkCtx.Config = input.RuleConfig(rule.Metadata().Code)
			} else {
				checkCtx.Config = nil
			}
			for _, d := range rule.Check(checkCtx, node) {
				if hasSuppressions && suppressionCtx.IsSuppressed(rule.Metadata().Code, d.Location.Range.Start()) {
					continue
				}
				diagnostics = append(diagnostics, d)
			}
		}
		return true
	})

	return &Result{Diagnostics: diagnostics}, nil
}
