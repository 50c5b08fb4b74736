package linter

import (
	"sort"

	"github.com/eleventy7/lintal/internal/hostconfig"
	"github.com/eleventy7/lintal/internal/rules"
)

// EnabledRuleCodes returns the sorted set of rule codes active for the
// given merged configuration, drawn from the default rule registry.
func EnabledRuleCodes(merged *hostconfig.MergedConfig) []string {
	registry := rules.DefaultRegistry()

	enabled := make([]string, 0, len(registry.Codes()))
	for _, rule := range registry.All() {
		meta := rule.Metadata()
		if isRuleEnabled(meta, merged) {
			enabled = append(enabled, meta.Code)
		}
	}
	sort.Strings(enabled)
	return enabled
}

// isRuleEnabled resolves whether a rule is active: host Include/Exclude
// and severity overrides take precedence, then checkstyle module
// declaration, then the rule's own EnabledByDefault.
func isRuleEnabled(meta rules.RuleMetadata, merged *hostconfig.MergedConfig) bool {
	if merged == nil {
		return meta.EnabledByDefault
	}
	return merged.IsEnabled(meta.Code, meta.EnabledByDefault)
}

// RulesFor resolves the Rule implementations for the given merged
// configuration, in registration order.
func RulesFor(merged *hostconfig.MergedConfig) []rules.Rule {
	registry := rules.DefaultRegistry()
	enabled := make(map[string]struct{})
	for _, code := range EnabledRuleCodes(merged) {
		enabled[code] = struct{}{}
	}

	var selected []rules.Rule
	for _, rule := range registry.All() {
		if _, ok := enabled[rule.Metadata().Code]; ok {
			selected = append(selected, rule)
		}
	}
	return selected
}
