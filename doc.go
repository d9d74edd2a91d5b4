// File: confstack/doc.go

// Package confstack assembles a single validated configuration map for a
// multi-component application from layered document sources: bundled
// defaults, profile and variant overlays, explicit overrides, and
// command-line overrides.
//
// Pipeline:
//  1. Enumerate logical resource names from (profile, variant, extension)
//     coordinates, in deterministic order.
//  2. Load each resource (zero or more sources per name), expand embedded
//     ${NAME} / ${NAME:default} references against an environment snapshot,
//     and parse with the extension's parser.
//  3. Deep-merge all documents: maps merge key-wise, sequences accumulate,
//     scalars take the last write.
//  4. Layer additional files, explicit overrides, and CLI overrides, each
//     deep-merged above the previous layer.
//  5. Validate and coerce the merged map against the effective schema.
//
// Quick Start:
//
//	schema := confstack.Schema{
//	    "web": confstack.Schema{
//	        "port": confstack.FieldSpec{Type: confstack.TypeInt, Required: true},
//	    },
//	}
//
//	cfg, err := confstack.Quick("app", schema)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	port, _ := cfg.Int64("web/port")
//
// CLI overrides use two token grammars only: "--load <path>" adds a
// configuration file, and "<slash/path>=<value>" sets a single value
// ("web/port=7777"). Anything else is a hard parse error.
//
// Assembly is all-or-nothing: unresolved property references, parse
// failures, malformed CLI tokens, and schema violations each abort the run
// with a structured error; a half-assembled configuration is never
// returned. Only "resource not found" is expected and non-fatal, which is
// what makes variant and profile files optional.
package confstack
