// File: confstack/assemble.go
package confstack

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultParallelism bounds concurrent resource retrieval and parsing.
const DefaultParallelism = 4

// Options configures one assembly run. Prefix is the only required field;
// every other field has a usable zero value.
type Options struct {
	// Prefix is the leading segment of every enumerated logical name.
	Prefix string

	// Schemas are the component-declared schema fragments; they are
	// deep-merged into the effective schema before validation.
	Schemas []Schema

	// Overrides is the explicit caller-supplied override map, merged above
	// all loaded documents and below CLI overrides.
	Overrides map[string]any

	// Profiles iterate in order; the null profile is appended last.
	Profiles []string

	// Variants iterate in order with the null variant first; an empty list
	// defaults to ["", "local"].
	Variants []string

	// PathTemplate computes logical names; nil means DefaultPathTemplate.
	PathTemplate PathTemplate

	// Parsers maps file extensions to parsing functions; nil means
	// DefaultParsers.
	Parsers map[string]Parser

	// AdditionalFiles are explicit configuration files layered above the
	// enumerated documents, in list order.
	AdditionalFiles []string

	// Args is the raw CLI token list: "--load <path>" and "path=value".
	Args []string

	// Properties are explicit dynamic properties, the highest-precedence
	// band of the environment snapshot.
	Properties map[string]string

	// Resolver retrieves raw sources for logical names; nil means a
	// DirResolver over the working directory.
	Resolver Resolver

	// Validator applies the effective schema; nil means TokenValidator.
	Validator Validator

	// Parallelism bounds concurrent document retrieval; merge order is
	// restored to the enumeration order before merging regardless.
	// Zero means DefaultParallelism.
	Parallelism int

	// Logger receives debug-level assembly traces; nil means no logging.
	Logger *zap.Logger
}

// Assemble runs the full pipeline: enumerate resources, load and expand
// documents, deep-merge the layers in precedence order, and validate the
// result against the effective schema. It is synchronous and independent
// per call; any failure aborts the run with no partial result.
func Assemble(opts Options) (*Config, error) {
	if opts.Prefix == "" {
		return nil, ErrPrefixRequired
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	parsers := opts.Parsers
	if parsers == nil {
		parsers = DefaultParsers()
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = NewDirResolver(".")
	}
	validator := opts.Validator
	if validator == nil {
		validator = TokenValidator{}
	}
	tmpl := opts.PathTemplate

	snap := CaptureSnapshot(opts.Properties)

	loadFiles, cliOverrides, err := ParseArgs(opts.Args)
	if err != nil {
		return nil, err
	}

	extensions := make([]string, 0, len(parsers))
	for ext := range parsers {
		extensions = append(extensions, ext)
	}
	entries := Enumerate(opts.Prefix, opts.Profiles, opts.Variants, extensions, tmpl)
	logger.Debug("enumerated resources",
		zap.String("prefix", opts.Prefix),
		zap.Int("entries", len(entries)))

	docs, err := loadEntries(entries, parsers, resolver, snap, opts.Parallelism, logger)
	if err != nil {
		return nil, err
	}

	// Explicit file layers: AdditionalFiles option first, then --load files.
	for _, path := range append(append([]string{}, opts.AdditionalFiles...), loadFiles...) {
		doc, err := LoadFile(path, parsers, snap)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded additional file", zap.String("path", path))
		docs = append(docs, doc)
	}

	layers := make([]any, 0, len(docs)+2)
	for _, doc := range docs {
		// Empty or comment-only files parse to nil; they layer like a
		// missing resource, not a scalar overwriting the tree.
		if doc.Value == nil {
			logger.Debug("skipped empty document", zap.String("origin", doc.Origin))
			continue
		}
		layers = append(layers, doc.Value)
	}
	if opts.Overrides != nil {
		layers = append(layers, opts.Overrides)
	}
	if len(cliOverrides) > 0 {
		layers = append(layers, cliOverrides)
	}

	merged, err := MergeAll(layers...)
	if err != nil {
		return nil, err
	}
	mergedMap, ok := merged.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("merged configuration is %T, expected a map", merged)
	}
	logger.Debug("merged configuration layers",
		zap.Int("documents", len(docs)),
		zap.Int("layers", len(layers)))

	schema, err := MergeSchemas(opts.Schemas...)
	if err != nil {
		return nil, err
	}

	validated, err := validator.Validate(mergedMap, schema)
	if err != nil {
		logger.Debug("configuration validation failed", zap.Error(err))
		return nil, err
	}
	logger.Debug("configuration validated", zap.Int("keys", len(validated)))

	return &Config{data: validated}, nil
}

// loadEntries retrieves and parses enumerated resources with bounded
// parallelism. Results are indexed by entry so the deterministic merge
// order survives out-of-order retrieval: order after retrieval, not order
// of retrieval, is the contract.
func loadEntries(entries []Entry, parsers map[string]Parser, resolver Resolver, snap *Snapshot, parallelism int, logger *zap.Logger) ([]Document, error) {
	if parallelism <= 0 {
		parallelism = DefaultParallelism
	}

	results := make([][]Document, len(entries))

	var g errgroup.Group
	g.SetLimit(parallelism)
	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			loaded, err := LoadDocuments(entry.Name, parsers[entry.Extension], resolver, snap)
			if err != nil {
				return err
			}
			results[i] = loaded
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var docs []Document
	for i, entry := range entries {
		for _, doc := range results[i] {
			logger.Debug("loaded resource",
				zap.String("name", entry.Name),
				zap.String("origin", doc.Origin),
				zap.String("profile", entry.Profile),
				zap.String("variant", entry.Variant))
			docs = append(docs, doc)
		}
	}
	return docs, nil
}
