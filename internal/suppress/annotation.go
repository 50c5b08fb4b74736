package suppress

import (
	"strings"

	"github.com/eleventy7/lintal/internal/javacst"
)

// declarationKinds are the CST node kinds that may carry modifiers
// (including annotations) and so may be the target of a @SuppressWarnings.
var declarationKinds = map[string]bool{
	"class_declaration":           true,
	"interface_declaration":       true,
	"enum_declaration":            true,
	"record_declaration":          true,
	"annotation_type_declaration": true,
	"method_declaration":          true,
	"constructor_declaration":     true,
	"field_declaration":           true,
	"local_variable_declaration":  true,
}

// ScanAnnotations walks the CST rooted at root and returns one Region per
// "checkstyle:<Rule>" string literal found inside a @SuppressWarnings
// annotation on a declaration, the region spanning the entire declaration.
func ScanAnnotations(root javacst.Node) []Region {
	var regions []Region
	javacst.WalkNamed(root, func(n javacst.Node) bool {
		if !declarationKinds[n.Kind()] {
			return true
		}
		for _, rule := range suppressWarningsRules(n) {
			regions = append(regions, Region{Rule: rule, Range: n.Range()})
		}
		return true
	})
	return regions
}

// suppressWarningsRules extracts the "checkstyle:<Name>" rule names from
// any @SuppressWarnings annotation directly modifying declaration node n.
func suppressWarningsRules(n javacst.Node) []string {
	var rules []string
	for i := 0; i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child.Kind() != "modifiers" {
			continue
		}
		for j := 0; j < child.NamedChildCount(); j++ {
			ann := child.NamedChild(j)
			if ann.Kind() != "annotation" && ann.Kind() != "marker_annotation" {
				continue
			}
			name := ann.ChildByFieldName("name")
			if name.IsZero() || string(name.Text()) != "SuppressWarnings" {
				continue
			}
			rules = append(rules, checkstyleRuleNames(ann)...)
		}
	}
	return rules
}

// checkstyleRuleNames extracts rule names from a @SuppressWarnings
// annotation's arguments: a bare string literal, or a brace-enclosed array
// of string literals, each matching "checkstyle:<Name>".
func checkstyleRuleNames(ann javacst.Node) []string {
	args := ann.ChildByFieldName("arguments")
	if args.IsZero() {
		return nil
	}
	var names []string
	javacst.WalkNamed(args, func(n javacst.Node) bool {
		if n.Kind() != "string_literal" {
			return true
		}
		if rule, ok := parseCheckstyleTag(n.Text()); ok {
			names = append(names, rule)
		}
		return true
	})
	return names
}

// parseCheckstyleTag extracts Rule from a quoted string literal's text
// matching `"checkstyle:Rule"`.
func parseCheckstyleTag(literal []byte) (string, bool) {
	s := strings.Trim(string(literal), `"`)
	rule, ok := strings.CutPrefix(s, "checkstyle:")
	if !ok || rule == "" {
		return "", false
	}
	return rule, true
}
