// File: confstack/args.go
package confstack

import "strings"

// loadFlag introduces an additional configuration file path.
const loadFlag = "--load"

// ParseArgs consumes a flat CLI token list, left to right. "--load" takes
// the following token as a file path, collected in encounter order. Every
// other token must be "<slash/delimited/path>=<value>"; the key is split on
// "/" into path segments (every segment must be non-empty) and assoc'd into
// the override map with the value
// kept as a raw string (coercion belongs to the schema layer). Identical
// paths across tokens overwrite: this layer builds a map directly, the
// aggregate-accumulation rule of the merge engine does not apply here.
func ParseArgs(argv []string) (files []string, overrides map[string]any, err error) {
	overrides = make(map[string]any)

	for i := 0; i < len(argv); i++ {
		token := argv[i]

		if token == loadFlag {
			if i+1 >= len(argv) {
				return nil, nil, &InvalidArgumentError{Token: token}
			}
			i++
			files = append(files, argv[i])
			continue
		}

		key, value, ok := strings.Cut(token, "=")
		if !ok || key == "" {
			return nil, nil, &InvalidArgumentError{Token: token}
		}

		segments := strings.Split(key, "/")
		for _, segment := range segments {
			if segment == "" {
				return nil, nil, &InvalidArgumentError{Token: token}
			}
		}

		setPath(overrides, segments, value)
	}

	return files, overrides, nil
}
