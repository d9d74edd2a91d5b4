// File: confstack/builder.go
package confstack

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Builder provides a fluent interface for assembling configurations.
type Builder struct {
	opts Options
}

// NewBuilder creates a builder seeded with the process CLI arguments.
func NewBuilder(prefix string) *Builder {
	return &Builder{
		opts: Options{
			Prefix: prefix,
			Args:   os.Args[1:],
		},
	}
}

// WithProfiles sets the ordered profile list.
func (b *Builder) WithProfiles(profiles ...string) *Builder {
	b.opts.Profiles = profiles
	return b
}

// WithVariants sets the ordered variant list.
func (b *Builder) WithVariants(variants ...string) *Builder {
	b.opts.Variants = variants
	return b
}

// WithSchema appends a schema fragment.
func (b *Builder) WithSchema(fragment Schema) *Builder {
	b.opts.Schemas = append(b.opts.Schemas, fragment)
	return b
}

// WithOverrides sets the explicit override map.
func (b *Builder) WithOverrides(overrides map[string]any) *Builder {
	b.opts.Overrides = overrides
	return b
}

// WithArgs replaces the CLI token list.
func (b *Builder) WithArgs(args []string) *Builder {
	b.opts.Args = args
	return b
}

// WithProperties sets the explicit dynamic properties.
func (b *Builder) WithProperties(properties map[string]string) *Builder {
	b.opts.Properties = properties
	return b
}

// WithAdditionalFiles appends explicit configuration file paths.
func (b *Builder) WithAdditionalFiles(paths ...string) *Builder {
	b.opts.AdditionalFiles = append(b.opts.AdditionalFiles, paths...)
	return b
}

// WithResolver sets the resource resolver.
func (b *Builder) WithResolver(resolver Resolver) *Builder {
	b.opts.Resolver = resolver
	return b
}

// WithPathTemplate sets a custom logical-name template.
func (b *Builder) WithPathTemplate(tmpl PathTemplate) *Builder {
	b.opts.PathTemplate = tmpl
	return b
}

// WithParser registers a parser for a file extension, on top of the
// defaults.
func (b *Builder) WithParser(extension string, parser Parser) *Builder {
	if b.opts.Parsers == nil {
		b.opts.Parsers = DefaultParsers()
	}
	b.opts.Parsers[extension] = parser
	return b
}

// WithValidator sets the schema validation strategy.
func (b *Builder) WithValidator(validator Validator) *Builder {
	b.opts.Validator = validator
	return b
}

// WithParallelism bounds concurrent document retrieval.
func (b *Builder) WithParallelism(n int) *Builder {
	b.opts.Parallelism = n
	return b
}

// WithLogger sets the assembly trace logger.
func (b *Builder) WithLogger(logger *zap.Logger) *Builder {
	b.opts.Logger = logger
	return b
}

// Build runs the assembly with the accumulated options.
func (b *Builder) Build() (*Config, error) {
	return Assemble(b.opts)
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Config {
	cfg, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("configuration assembly failed: %v", err))
	}
	return cfg
}

// BuildAndScan assembles and decodes the full configuration into the target
// struct pointer.
func (b *Builder) BuildAndScan(target any) error {
	cfg, err := b.Build()
	if err != nil {
		return err
	}
	if err := cfg.Scan("", target); err != nil {
		return fmt.Errorf("failed to scan assembled config into target: %w", err)
	}
	return nil
}
