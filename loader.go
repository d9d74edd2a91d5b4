// File: confstack/loader.go
package confstack

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Document is one parsed configuration layer.
type Document struct {
	LogicalName string
	Origin      string
	Value       any
}

// LoadDocuments resolves a logical name to zero or more raw sources, expands
// each against the snapshot, and parses the expanded text. A missing
// resource yields no documents and no error; optional variant and profile
// files depend on that. Expansion and parse failures are fatal.
func LoadDocuments(name string, parser Parser, res Resolver, snap *Snapshot) ([]Document, error) {
	sources, err := res.Resolve(name)
	if err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(sources))
	for _, src := range sources {
		doc, err := parseSource(name, src, parser, snap)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// LoadFile loads one explicitly requested configuration file, picking the
// parser by file extension. Unlike enumerated resources, a missing explicit
// file is an error: the caller asked for it by name.
func LoadFile(path string, parsers map[string]Parser, snap *Snapshot) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	parser, ok := parsers[ext]
	if !ok {
		return Document{}, &DocumentParseError{
			LogicalName: path,
			Origin:      path,
			Err:         fmt.Errorf("no parser registered for extension %q", ext),
		}
	}

	return parseSource(path, RawSource{Origin: path, Data: data}, parser, snap)
}

func parseSource(name string, src RawSource, parser Parser, snap *Snapshot) (Document, error) {
	expanded, err := Expand(string(src.Data), snap)
	if err != nil {
		return Document{}, err
	}

	value, err := parser([]byte(expanded))
	if err != nil {
		return Document{}, &DocumentParseError{LogicalName: name, Origin: src.Origin, Err: err}
	}

	return Document{LogicalName: name, Origin: src.Origin, Value: value}, nil
}
