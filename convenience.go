// File: confstack/convenience.go
package confstack

import (
	"fmt"
	"os"
)

// Quick assembles configuration for the common case: default parsers,
// default variants, resources resolved from the working directory, and the
// process CLI arguments. This is the recommended entry point for most
// applications.
func Quick(prefix string, schemas ...Schema) (*Config, error) {
	return Assemble(Options{
		Prefix:  prefix,
		Schemas: schemas,
		Args:    os.Args[1:],
	})
}

// MustQuick is like Quick but panics on error.
func MustQuick(prefix string, schemas ...Schema) *Config {
	cfg, err := Quick(prefix, schemas...)
	if err != nil {
		panic(fmt.Sprintf("configuration assembly failed: %v", err))
	}
	return cfg
}

// QuickScan assembles like Quick and decodes the result into the target
// struct pointer.
func QuickScan(prefix string, target any, schemas ...Schema) error {
	cfg, err := Quick(prefix, schemas...)
	if err != nil {
		return err
	}
	return cfg.Scan("", target)
}
