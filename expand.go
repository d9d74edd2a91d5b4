// File: confstack/expand.go
package confstack

import (
	"errors"
	"regexp"
	"strings"
)

// refPattern matches ${...} references whose inner content carries no
// braces, so nested references are never expanded.
var refPattern = regexp.MustCompile(`\$\{([^{}]*)\}`)

// Expand rewrites every ${NAME} and ${NAME:default} reference in raw text
// using the snapshot. Expansion runs once, on the pre-parse text, so
// references may sit anywhere in the document grammar: inside string
// literals, numeric positions, even map keys. The first resolution failure
// aborts the whole document.
func Expand(raw string, snap *Snapshot) (string, error) {
	var expandErr error

	expanded := refPattern.ReplaceAllStringFunc(raw, func(match string) string {
		if expandErr != nil {
			return match
		}

		inner := match[2 : len(match)-1]
		name, def, hasDefault := strings.Cut(inner, ":")

		var fallback *string
		if hasDefault {
			fallback = &def
		}

		value, err := snap.Resolve(name, fallback)
		if err != nil {
			var unresolved *UnresolvedPropertyError
			if errors.As(err, &unresolved) {
				unresolved.Source = match
			}
			expandErr = err
			return match
		}
		return value
	})

	if expandErr != nil {
		return "", expandErr
	}
	return expanded, nil
}
