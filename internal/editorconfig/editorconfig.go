// Package editorconfig resolves .editorconfig-derived defaults for a
// source file, giving indentation- and line-length-sensitive rules a
// non-hardcoded fallback when neither the checkstyle XML nor the host
// TOML config sets a property explicitly.
package editorconfig

import (
	"strconv"

	"github.com/editorconfig/editorconfig-core-go/v2"
)

// Defaults is the subset of a resolved .editorconfig definition lintal's
// rules care about, as checkstyle-style string properties keyed the same
// way a rule's Config would expect them from XML/TOML.
type Defaults map[string]string

// Resolve walks up from path's directory looking for .editorconfig files
// and returns the properties they define for path, translated into the
// checkstyle property names a rule's resolveConfig already knows how to
// read: "indentSize", "indentStyle" (tab/space), "maxLineLength". Any
// property .editorconfig doesn't define for this path is simply absent
// from the result, leaving the rule's own DefaultConfig as the final
// fallback.
func Resolve(path string) Defaults {
	def, err := editorconfig.GetDefinitionForFilename(path)
	if err != nil || def == nil {
		return nil
	}

	out := make(Defaults, 3)
	if def.IndentStyle != "" {
		out["indentStyle"] = def.IndentStyle
	}
	if size, ok := indentSize(def); ok {
		out["indentSize"] = size
	}
	if def.MaxLineLength != "" && def.MaxLineLength != "off" {
		out["maxLineLength"] = def.MaxLineLength
	}
	return out
}

// indentSize extracts a usable indent width: indent_size if numeric,
// falling back to tab_width when indent_size is "tab".
func indentSize(def *editorconfig.Definition) (string, bool) {
	if def.IndentSize == "" {
		return "", false
	}
	if _, err := strconv.Atoi(def.IndentSize); err == nil {
		return def.IndentSize, true
	}
	if def.IndentSize == "tab" && def.TabWidth > 0 {
		return strconv.Itoa(def.TabWidth), true
	}
	return "", false
}

// ApplyDefaults merges d into properties for every key properties doesn't
// already set, so an explicit checkstyle or host override always wins.
func (d Defaults) ApplyDefaults(properties map[string]string) map[string]string {
	if len(d) == 0 {
		return properties
	}
	merged := make(map[string]string, len(properties)+len(d))
	for k, v := range d {
		merged[k] = v
	}
	for k, v := range properties {
		merged[k] = v
	}
	return merged
}
