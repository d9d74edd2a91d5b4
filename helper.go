// File: confstack/helper.go
package confstack

import "strings"

// splitPath cuts a slash-delimited path into its segments.
func splitPath(path string) []string {
	return strings.Split(strings.Trim(path, "/"), "/")
}

// setPath sets a value in a nested map under slash-path segments, creating
// intermediate maps as needed. A non-map intermediate value is replaced by a
// new map; repeated writes to the same path overwrite (last write wins).
func setPath(nested map[string]any, segments []string, value any) {
	current := nested

	for i := 0; i < len(segments)-1; i++ {
		segment := segments[i]

		next, exists := current[segment]
		if !exists {
			child := make(map[string]any)
			current[segment] = child
			current = child
			continue
		}

		if childMap, isMap := next.(map[string]any); isMap {
			current = childMap
		} else {
			child := make(map[string]any)
			current[segment] = child
			current = child
		}
	}

	current[segments[len(segments)-1]] = value
}

// getPath navigates a nested map along slash-path segments. Returns false if
// any intermediate segment is missing or not a map.
func getPath(nested map[string]any, path string) (any, bool) {
	if path == "" {
		return nested, true
	}

	current := any(nested)
	for _, segment := range splitPath(path) {
		currentMap, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		value, exists := currentMap[segment]
		if !exists {
			return nil, false
		}
		current = value
	}
	return current, true
}

// deepCopy clones maps and slices recursively; scalars pass through.
// The merge engine relies on this to keep every input document immutable.
func deepCopy(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = deepCopy(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = deepCopy(item)
		}
		return out
	default:
		return value
	}
}
