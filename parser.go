// File: confstack/parser.go
package confstack

import (
	"bytes"
	"encoding/json"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Parser turns expanded document text into a nested tree of maps, sequences,
// and scalars. Parsing itself is pluggable; the extension table maps file
// extensions to parsers.
type Parser func(data []byte) (any, error)

// DefaultParsers returns the standard extension table: YAML, TOML, and JSON.
// Callers register more formats by adding entries before assembly.
func DefaultParsers() map[string]Parser {
	return map[string]Parser{
		"yaml": ParseYAML,
		"yml":  ParseYAML,
		"toml": ParseTOML,
		"json": ParseJSON,
	}
}

// ParseYAML parses a YAML document into a generic tree.
func ParseYAML(data []byte) (any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseTOML parses a TOML document into a generic tree.
func ParseTOML(data []byte) (any, error) {
	doc := make(map[string]any)
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseJSON parses a JSON document. UseNumber preserves numeric precision;
// the coercion layer understands json.Number.
func ParseJSON(data []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var doc any
	if err := decoder.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}
