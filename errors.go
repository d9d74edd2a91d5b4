// File: confstack/errors.go
package confstack

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPrefixRequired is returned by Assemble when Options.Prefix is empty.
var ErrPrefixRequired = errors.New("assembly options require a non-empty prefix")

// UnresolvedPropertyError reports a ${NAME} reference that has no value in
// the environment snapshot and no inline default.
type UnresolvedPropertyError struct {
	Name   string   // referenced property name
	Known  []string // property names available in the snapshot
	Source string   // the offending reference text, e.g. "${DB_HOST}"
}

func (e *UnresolvedPropertyError) Error() string {
	return fmt.Sprintf("unresolved property %q in %s (%d known properties)",
		e.Name, e.Source, len(e.Known))
}

// DocumentParseError reports a document that failed to parse after expansion.
// It is fatal for the whole assembly; no partial configuration is returned.
type DocumentParseError struct {
	LogicalName string // enumerated resource name or explicit file path
	Origin      string // concrete source identity (file path, fs label)
	Err         error
}

func (e *DocumentParseError) Error() string {
	return fmt.Sprintf("failed to parse document %q from %s: %v", e.LogicalName, e.Origin, e.Err)
}

func (e *DocumentParseError) Unwrap() error { return e.Err }

// InvalidArgumentError reports a CLI token that is neither "--load" nor a
// "path=value" override.
type InvalidArgumentError struct {
	Token string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: expected --load <path> or <slash/path>=<value>", e.Token)
}

// MergeTypeMismatchError reports a merge where one side of a key is an
// aggregate (map or sequence) and the other side is not of the same kind.
// The merge never silently picks a side for these collisions.
type MergeTypeMismatchError struct {
	Path     []string
	Existing any
	Incoming any
}

func (e *MergeTypeMismatchError) Error() string {
	at := strings.Join(e.Path, "/")
	if at == "" {
		at = "<root>"
	}
	return fmt.Sprintf("cannot merge %T into %T at %s", e.Incoming, e.Existing, at)
}

// FieldError describes a single schema violation.
type FieldError struct {
	Path     string // slash-delimited path of the field
	Expected string // expected type or constraint
	Value    any    // pre-coercion value, nil if absent
	Reason   string
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: expected %s, %s", e.Path, e.Expected, e.Reason)
}

// ConfigurationInvalidError carries the effective schema, the pre-coercion
// merged map, and every violated field. Validation is all-or-nothing, so the
// presence of this error means no coerced configuration exists.
type ConfigurationInvalidError struct {
	Schema Schema
	Config map[string]any
	Fields []FieldError
}

func (e *ConfigurationInvalidError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return fmt.Sprintf("configuration invalid (%d field(s)): %s",
		len(e.Fields), strings.Join(parts, "; "))
}
