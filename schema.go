// File: confstack/schema.go
package confstack

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Keyword is a symbolic configuration value, the coerced form of recognized
// tokens such as ":info" or "info" under a keyword-typed field.
type Keyword string

// FieldType names the coercion target of a schema leaf.
type FieldType string

const (
	TypeString   FieldType = "string"
	TypeInt      FieldType = "int"
	TypeFloat    FieldType = "float"
	TypeBool     FieldType = "bool"
	TypeDuration FieldType = "duration"
	TypeKeyword  FieldType = "keyword"
)

// FieldSpec declares one schema leaf: the coercion target, whether the field
// must be present, and an optional post-coercion constraint.
type FieldSpec struct {
	Type     FieldType
	Required bool
	Check    func(value any) error
}

// Schema is a nested descriptor mirroring the configuration shape. Interior
// nodes are maps; leaves are FieldSpec values or shorthand type tokens
// ("string", "int", "float", "bool", "duration", "keyword").
type Schema map[string]any

// MergeSchemas deep-merges component-declared schema fragments into one
// effective schema, using the same engine as configuration documents.
// Fragments are normalized first: the merge engine dispatches on concrete
// map types, and interior nodes may be written as either Schema or plain
// map[string]any.
func MergeSchemas(fragments ...Schema) (Schema, error) {
	docs := make([]any, len(fragments))
	for i, fragment := range fragments {
		docs[i] = normalizeSchemaTree(map[string]any(fragment))
	}

	merged, err := MergeAll(docs...)
	if err != nil {
		return nil, fmt.Errorf("failed to merge schema fragments: %w", err)
	}
	return Schema(merged.(map[string]any)), nil
}

// normalizeSchemaTree rewrites interior Schema nodes as plain maps so the
// merge engine recurses into them instead of treating them as scalars.
func normalizeSchemaTree(node map[string]any) map[string]any {
	out := make(map[string]any, len(node))
	for key, value := range node {
		if sub, ok := asSchemaNode(value); ok {
			out[key] = normalizeSchemaTree(sub)
			continue
		}
		out[key] = value
	}
	return out
}

// Validator applies a schema to a fully merged configuration map, producing
// a coerced copy or a structured failure. It is an injected strategy; the
// assembly engine has no schema language of its own.
type Validator interface {
	Validate(config map[string]any, schema Schema) (map[string]any, error)
}

// TokenValidator is the default Validator. It coerces strings toward the
// declared leaf types (numeric strings to numbers, "true"/"false" to bools,
// duration strings to time.Duration, tokens to Keyword), then checks
// structure and constraints. Every violation is collected, not just the
// first, and coercion is all-or-nothing: on any failure the input map is
// returned untouched inside the error.
type TokenValidator struct{}

func (TokenValidator) Validate(config map[string]any, schema Schema) (map[string]any, error) {
	coerced := deepCopy(config).(map[string]any)

	var fields []FieldError
	validateNode("", map[string]any(schema), coerced, &fields)

	if len(fields) > 0 {
		sort.Slice(fields, func(i, j int) bool { return fields[i].Path < fields[j].Path })
		return nil, &ConfigurationInvalidError{Schema: schema, Config: config, Fields: fields}
	}
	return coerced, nil
}

// validateNode walks one schema level, coercing configNode in place.
// configNode is always a private deep copy, so partial coercion is never
// observable by the caller.
func validateNode(prefix string, schemaNode, configNode map[string]any, fields *[]FieldError) {
	keys := make([]string, 0, len(schemaNode))
	for key := range schemaNode {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		path := joinFieldPath(prefix, key)
		spec := schemaNode[key]

		if sub, ok := asSchemaNode(spec); ok {
			child, exists := configNode[key]
			if !exists {
				reportMissing(path, sub, fields)
				continue
			}
			childMap, isMap := child.(map[string]any)
			if !isMap {
				*fields = append(*fields, FieldError{
					Path:     path,
					Expected: "map",
					Value:    child,
					Reason:   fmt.Sprintf("got %T", child),
				})
				continue
			}
			validateNode(path, sub, childMap, fields)
			continue
		}

		leaf, err := normalizeSpec(spec)
		if err != nil {
			*fields = append(*fields, FieldError{Path: path, Expected: "field spec", Reason: err.Error()})
			continue
		}

		value, exists := configNode[key]
		if !exists {
			if leaf.Required {
				*fields = append(*fields, FieldError{
					Path:     path,
					Expected: string(leaf.Type),
					Reason:   "required field missing",
				})
			}
			continue
		}

		out, err := coerceValue(value, leaf.Type)
		if err != nil {
			*fields = append(*fields, FieldError{
				Path:     path,
				Expected: string(leaf.Type),
				Value:    value,
				Reason:   err.Error(),
			})
			continue
		}

		if leaf.Check != nil {
			if err := leaf.Check(out); err != nil {
				*fields = append(*fields, FieldError{
					Path:     path,
					Expected: string(leaf.Type),
					Value:    value,
					Reason:   err.Error(),
				})
				continue
			}
		}

		configNode[key] = out
	}
}

// reportMissing records every required leaf beneath an absent subtree.
func reportMissing(prefix string, schemaNode map[string]any, fields *[]FieldError) {
	for key, spec := range schemaNode {
		path := joinFieldPath(prefix, key)
		if sub, ok := asSchemaNode(spec); ok {
			reportMissing(path, sub, fields)
			continue
		}
		if leaf, err := normalizeSpec(spec); err == nil && leaf.Required {
			*fields = append(*fields, FieldError{
				Path:     path,
				Expected: string(leaf.Type),
				Reason:   "required field missing",
			})
		}
	}
}

func asSchemaNode(spec any) (map[string]any, bool) {
	switch v := spec.(type) {
	case Schema:
		return map[string]any(v), true
	case map[string]any:
		return v, true
	default:
		return nil, false
	}
}

func normalizeSpec(spec any) (FieldSpec, error) {
	switch v := spec.(type) {
	case FieldSpec:
		return v, checkFieldType(v.Type)
	case *FieldSpec:
		return *v, checkFieldType(v.Type)
	case FieldType:
		return FieldSpec{Type: v}, checkFieldType(v)
	case string:
		t := FieldType(v)
		return FieldSpec{Type: t}, checkFieldType(t)
	default:
		return FieldSpec{}, fmt.Errorf("unsupported schema leaf %T", spec)
	}
}

func checkFieldType(t FieldType) error {
	switch t {
	case TypeString, TypeInt, TypeFloat, TypeBool, TypeDuration, TypeKeyword:
		return nil
	default:
		return fmt.Errorf("unknown field type %q", t)
	}
}

// coerceValue converts a raw document value toward the declared type.
// Strings are parsed; numeric widenings are accepted; anything else fails.
func coerceValue(value any, t FieldType) (any, error) {
	switch t {
	case TypeString:
		switch v := value.(type) {
		case string:
			return v, nil
		case Keyword:
			return string(v), nil
		}

	case TypeInt:
		switch v := value.(type) {
		case int:
			return int64(v), nil
		case int64:
			return v, nil
		case uint64:
			if v > math.MaxInt64 {
				return nil, fmt.Errorf("value %d overflows int64", v)
			}
			return int64(v), nil
		case float64:
			if v != math.Trunc(v) {
				return nil, fmt.Errorf("value %v is not an integer", v)
			}
			return int64(v), nil
		case json.Number:
			return v.Int64()
		case string:
			return strconv.ParseInt(v, 10, 64)
		}

	case TypeFloat:
		switch v := value.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		case int64:
			return float64(v), nil
		case json.Number:
			return v.Float64()
		case string:
			return strconv.ParseFloat(v, 64)
		}

	case TypeBool:
		switch v := value.(type) {
		case bool:
			return v, nil
		case string:
			return strconv.ParseBool(v)
		}

	case TypeDuration:
		switch v := value.(type) {
		case time.Duration:
			return v, nil
		case string:
			return time.ParseDuration(v)
		}

	case TypeKeyword:
		switch v := value.(type) {
		case Keyword:
			return v, nil
		case string:
			return Keyword(strings.TrimPrefix(v, ":")), nil
		}
	}

	return nil, fmt.Errorf("cannot coerce %T to %s", value, t)
}

func joinFieldPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "/" + key
}
