// Package ruleschema validates rule option blocks and the host config
// file against the JSON Schema documents embedded in internal/schemas,
// using google/jsonschema-go.
package ruleschema

import (
	"errors"
	jsonv2 "encoding/json/v2"
	"fmt"
	"net/url"
	"strings"
	"sync"

	gjsonschema "github.com/google/jsonschema-go/jsonschema"

	"github.com/eleventy7/lintal/internal/schemas"
)

// ErrUnknownRuleSchema is returned when validating options for a rule
// with no registered schema.
var ErrUnknownRuleSchema = errors.New("ruleschema: unknown rule schema")

// Validator validates rule options and the host config document against
// their embedded JSON Schemas.
type Validator struct {
	hostResolved *gjsonschema.Resolved
	ruleResolved map[string]*gjsonschema.Resolved
}

var (
	defaultOnce      sync.Once
	defaultValidator *Validator
	defaultErr       error
)

// Default returns the process-wide Validator built from the schemas
// embedded in internal/schemas, built once and reused.
func Default() (*Validator, error) {
	defaultOnce.Do(func() {
		defaultValidator, defaultErr = New()
	})
	return defaultValidator, defaultErr
}

// New builds a Validator from the embedded schema set.
func New() (*Validator, error) {
	parsed := make(map[string]*gjsonschema.Schema)
	for _, id := range schemas.AllSchemaIDs() {
		data, err := schemas.ReadSchemaByID(id)
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", id, err)
		}
		var schema gjsonschema.Schema
		if err := jsonv2.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parse schema %s: %w", id, err)
		}
		parsed[id] = &schema
	}

	loader := func(uri *url.URL) (*gjsonschema.Schema, error) {
		id := normalizeID(uri.String())
		schema, ok := parsed[id]
		if !ok {
			return nil, fmt.Errorf("ruleschema: schema loader: unknown URI %q", uri.String())
		}
		return schema.CloneSchemas(), nil
	}

	hostSchema, ok := parsed[schemas.HostConfigSchemaID]
	if !ok {
		return nil, fmt.Errorf("ruleschema: missing embedded schema %q", schemas.HostConfigSchemaID)
	}
	hostResolved, err := hostSchema.CloneSchemas().Resolve(&gjsonschema.ResolveOptions{
		BaseURI: schemas.HostConfigSchemaID,
		Loader:  loader,
	})
	if err != nil {
		return nil, fmt.Errorf("ruleschema: resolve host config schema: %w", err)
	}

	ruleResolved := make(map[string]*gjsonschema.Resolved)
	for ruleCode, id := range schemas.RuleSchemaIDs() {
		schema, ok := parsed[id]
		if !ok {
			return nil, fmt.Errorf("ruleschema: missing embedded schema for %s (%s)", ruleCode, id)
		}
		resolved, err := schema.CloneSchemas().Resolve(&gjsonschema.ResolveOptions{
			BaseURI: id,
			Loader:  loader,
		})
		if err != nil {
			return nil, fmt.Errorf("ruleschema: resolve schema for %s: %w", ruleCode, err)
		}
		ruleResolved[ruleCode] = resolved
	}

	return &Validator{hostResolved: hostResolved, ruleResolved: ruleResolved}, nil
}

// HasRuleSchema reports whether ruleCode has a registered options schema.
func (v *Validator) HasRuleSchema(ruleCode string) bool {
	_, ok := v.ruleResolved[ruleCode]
	return ok
}

// ValidateRuleOptions validates raw (typically a map[string]any decoded
// from TOML) against ruleCode's options schema.
func (v *Validator) ValidateRuleOptions(ruleCode string, raw any) error {
	if raw == nil {
		return nil
	}
	resolved, ok := v.ruleResolved[ruleCode]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRuleSchema, ruleCode)
	}
	value, err := toJSONValue(raw)
	if err != nil {
		return fmt.Errorf("ruleschema: convert options for %s: %w", ruleCode, err)
	}
	if err := resolved.Validate(value); err != nil {
		return fmt.Errorf("rule %s: invalid options: %w", ruleCode, err)
	}
	return nil
}

// ValidateHostConfig validates a decoded host config document (the raw
// map koanf produces before Unmarshal) against the host config schema.
func (v *Validator) ValidateHostConfig(raw map[string]any) error {
	if raw == nil {
		return nil
	}
	value, err := toJSONValue(raw)
	if err != nil {
		return fmt.Errorf("ruleschema: convert host config: %w", err)
	}
	if err := v.hostResolved.Validate(value); err != nil {
		return fmt.Errorf("host config: %w", err)
	}
	return nil
}

func toJSONValue(value any) (any, error) {
	data, err := jsonv2.Marshal(value)
	if err != nil {
		return nil, err
	}
	var out any
	if err := jsonv2.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeID(uri string) string {
	if before, _, ok := strings.Cut(uri, "#"); ok {
		return before
	}
	return uri
}
