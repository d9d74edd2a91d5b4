// File: confstack/property.go
package confstack

import (
	"os"
	"sort"
	"strings"
	"sync"
)

// Process-wide properties sit between environment variables and explicit
// caller properties in lookup precedence. They are the moral equivalent of
// JVM system properties: set once during bootstrap, read by every assembly.
var (
	propMu       sync.RWMutex
	processProps = make(map[string]string)
)

// SetProperty sets a process-wide property visible to every subsequent
// snapshot capture.
func SetProperty(name, value string) {
	propMu.Lock()
	defer propMu.Unlock()
	processProps[name] = value
}

// Property returns a process-wide property and whether it is set.
func Property(name string) (string, bool) {
	propMu.RLock()
	defer propMu.RUnlock()
	v, ok := processProps[name]
	return v, ok
}

// ClearProperties removes all process-wide properties.
func ClearProperties() {
	propMu.Lock()
	defer propMu.Unlock()
	processProps = make(map[string]string)
}

// Snapshot is an immutable view of the dynamic property environment,
// captured exactly once at the start of an assembly run. Keys are compared
// by exact string identity; no case folding is applied.
type Snapshot struct {
	values map[string]string
}

// CaptureSnapshot builds a snapshot from the current process state.
// Precedence, lowest to highest: environment variables, process-wide
// properties, explicit caller-supplied properties.
func CaptureSnapshot(explicit map[string]string) *Snapshot {
	values := make(map[string]string, len(os.Environ())+len(explicit))

	for _, kv := range os.Environ() {
		if name, value, ok := strings.Cut(kv, "="); ok {
			values[name] = value
		}
	}

	propMu.RLock()
	for name, value := range processProps {
		values[name] = value
	}
	propMu.RUnlock()

	for name, value := range explicit {
		values[name] = value
	}

	return &Snapshot{values: values}
}

// NewSnapshot builds a synthetic snapshot from the given table. Tests use
// this to avoid touching process state.
func NewSnapshot(values map[string]string) *Snapshot {
	copied := make(map[string]string, len(values))
	for name, value := range values {
		copied[name] = value
	}
	return &Snapshot{values: copied}
}

// Resolve looks up a property by name. A nil def means no fallback exists
// and a missing name is an *UnresolvedPropertyError; a non-nil def (even
// pointing at an empty string) is always a legal fallback.
func (s *Snapshot) Resolve(name string, def *string) (string, error) {
	if value, ok := s.values[name]; ok {
		return value, nil
	}
	if def != nil {
		return *def, nil
	}
	return "", &UnresolvedPropertyError{
		Name:   name,
		Known:  s.Keys(),
		Source: "${" + name + "}",
	}
}

// Keys returns the sorted property names known to the snapshot.
func (s *Snapshot) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for name := range s.values {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	return keys
}
