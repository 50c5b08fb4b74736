// Package schemas embeds the JSON Schema documents used to validate the
// host config file and individual rule option blocks.
package schemas

import (
	"embed"
	"fmt"
	"io/fs"
	"maps"
)

// HostConfigSchemaID is the $id of the embedded host-config schema.
const HostConfigSchemaID = "https://schemas.lintal.dev/root/host-config.schema.json"

// ruleSchemaIDs maps a checkstyle rule code to its schema $id. Rules
// without an entry here have no options schema; ruleschema's
// ValidateRuleOptions reports ErrUnknownRuleSchema for them, and
// HasRuleSchema lets a caller check first.
var ruleSchemaIDs = map[string]string{
	"MagicNumber":  "https://schemas.lintal.dev/rules/magic_number.schema.json",
	"MethodLength": "https://schemas.lintal.dev/rules/method_length.schema.json",
}

var schemaFilesByID = map[string]string{
	HostConfigSchemaID: "root/host-config.schema.json",

	"https://schemas.lintal.dev/rules/magic_number.schema.json":  "rules/magic_number.schema.json",
	"https://schemas.lintal.dev/rules/method_length.schema.json": "rules/method_length.schema.json",
}

//go:embed root/*.json rules/*.json
var schemasFS embed.FS

// RuleSchemaID returns the schema $id registered for ruleCode, if any.
func RuleSchemaID(ruleCode string) (string, bool) {
	id, ok := ruleSchemaIDs[ruleCode]
	return id, ok
}

// RuleSchemaIDs returns a copy of the rule-code -> schema-$id table.
func RuleSchemaIDs() map[string]string {
	out := make(map[string]string, len(ruleSchemaIDs))
	maps.Copy(out, ruleSchemaIDs)
	return out
}

// SchemaFileByID returns the embedded file path for a schema $id.
func SchemaFileByID(schemaID string) (string, bool) {
	path, ok := schemaFilesByID[schemaID]
	return path, ok
}

// AllSchemaIDs returns every embedded schema's $id.
func AllSchemaIDs() []string {
	ids := make([]string, 0, len(schemaFilesByID))
	for id := range schemaFilesByID {
		ids = append(ids, id)
	}
	return ids
}

// ReadSchemaByID returns the raw JSON bytes for a schema $id.
func ReadSchemaByID(schemaID string) ([]byte, error) {
	path, ok := SchemaFileByID(schemaID)
	if !ok {
		return nil, fmt.Errorf("unknown schema ID %q", schemaID)
	}
	return fs.ReadFile(schemasFS, path)
}
