// File: confstack/merge.go
package confstack

// Merge combines incoming into existing and returns a new tree; neither
// input is ever mutated. Dispatch, applied recursively top-down:
//
//   - map + map: key-wise recursive merge; keys present on one side only
//     pass through unchanged.
//   - sequence + sequence: concatenation, existing first. Sequence-valued
//     keys accumulate across layers rather than replace; overlay files rely
//     on this to append entries.
//   - scalar existing: incoming fully replaces it (last write wins).
//
// A map or sequence meeting a value of a different kind is a
// *MergeTypeMismatchError rather than a silent pick of either side.
func Merge(existing, incoming any) (any, error) {
	return mergeAt(nil, existing, incoming)
}

// MergeAll left-folds an ordered document sequence; later documents take
// precedence. An empty sequence yields an empty map.
func MergeAll(docs ...any) (any, error) {
	if len(docs) == 0 {
		return map[string]any{}, nil
	}

	acc := deepCopy(docs[0])
	for _, doc := range docs[1:] {
		merged, err := mergeAt(nil, acc, doc)
		if err != nil {
			return nil, err
		}
		acc = merged
	}
	return acc, nil
}

func mergeAt(path []string, existing, incoming any) (any, error) {
	switch ev := existing.(type) {
	case map[string]any:
		iv, ok := incoming.(map[string]any)
		if !ok {
			return nil, &MergeTypeMismatchError{Path: copyPath(path), Existing: existing, Incoming: incoming}
		}

		out := make(map[string]any, len(ev)+len(iv))
		for key, value := range ev {
			out[key] = deepCopy(value)
		}
		for key, value := range iv {
			current, exists := out[key]
			if !exists {
				out[key] = deepCopy(value)
				continue
			}
			merged, err := mergeAt(append(path, key), current, value)
			if err != nil {
				return nil, err
			}
			out[key] = merged
		}
		return out, nil

	case []any:
		iv, ok := incoming.([]any)
		if !ok {
			return nil, &MergeTypeMismatchError{Path: copyPath(path), Existing: existing, Incoming: incoming}
		}

		out := make([]any, 0, len(ev)+len(iv))
		for _, item := range ev {
			out = append(out, deepCopy(item))
		}
		for _, item := range iv {
			out = append(out, deepCopy(item))
		}
		return out, nil

	default:
		return deepCopy(incoming), nil
	}
}

func copyPath(path []string) []string {
	out := make([]string, len(path))
	copy(out, path)
	return out
}
