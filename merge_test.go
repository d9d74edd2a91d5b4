// File: confstack/merge_test.go
package confstack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeScalarLastWriteWins(t *testing.T) {
	a := map[string]any{"port": 8080, "host": "a"}
	b := map[string]any{"port": 9090}
	c := map[string]any{"port": 7070}

	merged, err := MergeAll(a, b, c)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"port": 7070, "host": "a"}, merged)
}

func TestMergeAggregateAccumulation(t *testing.T) {
	a := map[string]any{"plugins": []any{"a"}}
	b := map[string]any{"plugins": []any{"b"}}

	merged, err := Merge(a, b)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"plugins": []any{"a", "b"}}, merged)
}

func TestMergeStructuralDepth(t *testing.T) {
	a := map[string]any{"db": map[string]any{"host": "x", "port": 1}}
	b := map[string]any{"db": map[string]any{"port": 2}}

	merged, err := Merge(a, b)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"db": map[string]any{"host": "x", "port": 2}}, merged)
}

func TestMergeScalarReplacedByAggregate(t *testing.T) {
	// Dispatch is on the existing side: a scalar is replaced by whatever
	// comes in, including maps and sequences.
	merged, err := Merge(
		map[string]any{"value": "scalar"},
		map[string]any{"value": map[string]any{"nested": true}},
	)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"value": map[string]any{"nested": true}}, merged)
}

func TestMergeTypeMismatch(t *testing.T) {
	t.Run("MapMeetsScalar", func(t *testing.T) {
		_, err := Merge(
			map[string]any{"db": map[string]any{"host": "x"}},
			map[string]any{"db": "oops"},
		)
		var mismatch *MergeTypeMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, []string{"db"}, mismatch.Path)
	})

	t.Run("SequenceMeetsScalar", func(t *testing.T) {
		_, err := Merge(
			map[string]any{"plugins": []any{"a"}},
			map[string]any{"plugins": "b"},
		)
		var mismatch *MergeTypeMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, []string{"plugins"}, mismatch.Path)
	})

	t.Run("SequenceMeetsMap", func(t *testing.T) {
		_, err := Merge(
			map[string]any{"plugins": []any{"a"}},
			map[string]any{"plugins": map[string]any{"x": 1}},
		)
		var mismatch *MergeTypeMismatchError
		require.ErrorAs(t, err, &mismatch)
	})

	t.Run("NestedPathReported", func(t *testing.T) {
		_, err := Merge(
			map[string]any{"a": map[string]any{"b": map[string]any{"c": []any{1}}}},
			map[string]any{"a": map[string]any{"b": map[string]any{"c": 2}}},
		)
		var mismatch *MergeTypeMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, []string{"a", "b", "c"}, mismatch.Path)
	})
}

func TestMergeNeverMutatesInputs(t *testing.T) {
	a := map[string]any{
		"db":      map[string]any{"host": "x"},
		"plugins": []any{"a"},
	}
	b := map[string]any{
		"db":      map[string]any{"port": 2},
		"plugins": []any{"b"},
	}

	merged, err := Merge(a, b)
	require.NoError(t, err)

	// Inputs untouched.
	assert.Equal(t, map[string]any{"db": map[string]any{"host": "x"}, "plugins": []any{"a"}}, a)
	assert.Equal(t, map[string]any{"db": map[string]any{"port": 2}, "plugins": []any{"b"}}, b)

	// Mutating the result does not leak back either.
	merged.(map[string]any)["db"].(map[string]any)["host"] = "mutated"
	assert.Equal(t, "x", a["db"].(map[string]any)["host"])
}

func TestMergeAllLeftFold(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		merged, err := MergeAll()
		require.NoError(t, err)
		assert.Equal(t, map[string]any{}, merged)
	})

	t.Run("Single", func(t *testing.T) {
		merged, err := MergeAll(map[string]any{"a": 1})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": 1}, merged)
	})

	t.Run("FoldOrderForAggregates", func(t *testing.T) {
		merged, err := MergeAll(
			map[string]any{"xs": []any{1}},
			map[string]any{"xs": []any{2}},
			map[string]any{"xs": []any{3}},
		)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"xs": []any{1, 2, 3}}, merged)
	})
}
