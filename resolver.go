// File: confstack/resolver.go
package confstack

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// RawSource is one byte blob resolved for a logical resource name.
type RawSource struct {
	Origin string // concrete identity for diagnostics, e.g. a file path
	Data   []byte
}

// Resolver retrieves zero or more raw sources for a logical name. Multiple
// sources per name are legal (the same resource bundled in several roots)
// and the set is unordered-but-complete; only the absence of an I/O failure
// is promised, not a relative order. Zero sources is not an error.
type Resolver interface {
	Resolve(name string) ([]RawSource, error)
}

// DirResolver resolves logical names against a list of directory roots.
// Every root containing the name contributes a source, so duplicates across
// roots all load.
type DirResolver struct {
	Roots []string
}

// NewDirResolver builds a resolver over the given directory roots.
func NewDirResolver(roots ...string) *DirResolver {
	return &DirResolver{Roots: roots}
}

func (r *DirResolver) Resolve(name string) ([]RawSource, error) {
	var sources []RawSource
	for _, root := range r.Roots {
		path := filepath.Join(root, name)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read resource %q from %s: %w", name, root, err)
		}
		sources = append(sources, RawSource{Origin: path, Data: data})
	}
	return sources, nil
}

// FSResolver resolves logical names against any fs.FS, which lets bundled
// defaults ship inside the binary via embed.FS.
type FSResolver struct {
	FS    fs.FS
	Label string // origin prefix for diagnostics
}

// NewFSResolver builds a resolver over an fs.FS. The label identifies the
// filesystem in error messages and load traces.
func NewFSResolver(fsys fs.FS, label string) *FSResolver {
	return &FSResolver{FS: fsys, Label: label}
}

func (r *FSResolver) Resolve(name string) ([]RawSource, error) {
	data, err := fs.ReadFile(r.FS, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read resource %q from %s: %w", name, r.Label, err)
	}
	return []RawSource{{Origin: r.Label + ":" + name, Data: data}}, nil
}

// MultiResolver concatenates the results of several resolvers, earlier
// resolvers first. It is the usual way to layer bundled defaults under
// on-disk configuration directories.
type MultiResolver []Resolver

func (r MultiResolver) Resolve(name string) ([]RawSource, error) {
	var sources []RawSource
	for _, resolver := range r {
		found, err := resolver.Resolve(name)
		if err != nil {
			return nil, err
		}
		sources = append(sources, found...)
	}
	return sources, nil
}

// DefaultRoots returns the conventional search roots for an application:
// the working directory followed by XDG configuration directories.
func DefaultRoots(appName string) []string {
	var roots []string

	if cwd, err := os.Getwd(); err == nil {
		roots = append(roots, cwd)
	}

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		roots = append(roots, filepath.Join(xdgHome, appName))
	} else if home := os.Getenv("HOME"); home != "" {
		roots = append(roots, filepath.Join(home, ".config", appName))
	}

	if xdgDirs := os.Getenv("XDG_CONFIG_DIRS"); xdgDirs != "" {
		for _, dir := range filepath.SplitList(xdgDirs) {
			roots = append(roots, filepath.Join(dir, appName))
		}
	} else {
		roots = append(roots,
			filepath.Join("/etc/xdg", appName),
			filepath.Join("/etc", appName),
		)
	}

	return roots
}
