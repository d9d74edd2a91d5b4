// File: confstack/property_test.go
package confstack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotPrecedence(t *testing.T) {
	t.Run("EnvironmentLowest", func(t *testing.T) {
		t.Setenv("CONFSTACK_TEST_HOST", "from-env")

		snap := CaptureSnapshot(nil)
		value, err := snap.Resolve("CONFSTACK_TEST_HOST", nil)
		require.NoError(t, err)
		assert.Equal(t, "from-env", value)
	})

	t.Run("ProcessPropertyShadowsEnvironment", func(t *testing.T) {
		t.Setenv("CONFSTACK_TEST_HOST", "from-env")
		SetProperty("CONFSTACK_TEST_HOST", "from-prop")
		t.Cleanup(ClearProperties)

		snap := CaptureSnapshot(nil)
		value, err := snap.Resolve("CONFSTACK_TEST_HOST", nil)
		require.NoError(t, err)
		assert.Equal(t, "from-prop", value)
	})

	t.Run("ExplicitShadowsEverything", func(t *testing.T) {
		t.Setenv("CONFSTACK_TEST_HOST", "from-env")
		SetProperty("CONFSTACK_TEST_HOST", "from-prop")
		t.Cleanup(ClearProperties)

		snap := CaptureSnapshot(map[string]string{"CONFSTACK_TEST_HOST": "from-explicit"})
		value, err := snap.Resolve("CONFSTACK_TEST_HOST", nil)
		require.NoError(t, err)
		assert.Equal(t, "from-explicit", value)
	})
}

func TestSnapshotResolve(t *testing.T) {
	snap := NewSnapshot(map[string]string{
		"DB_HOST": "prod",
		"DB_NAME": "orders",
	})

	t.Run("KnownName", func(t *testing.T) {
		value, err := snap.Resolve("DB_HOST", nil)
		require.NoError(t, err)
		assert.Equal(t, "prod", value)
	})

	t.Run("MissingWithDefault", func(t *testing.T) {
		def := "5432"
		value, err := snap.Resolve("DB_PORT", &def)
		require.NoError(t, err)
		assert.Equal(t, "5432", value)
	})

	t.Run("EmptyDefaultIsLegal", func(t *testing.T) {
		def := ""
		value, err := snap.Resolve("DB_PORT", &def)
		require.NoError(t, err)
		assert.Equal(t, "", value)
	})

	t.Run("MissingWithoutDefault", func(t *testing.T) {
		_, err := snap.Resolve("DB_PORT", nil)
		require.Error(t, err)

		var unresolved *UnresolvedPropertyError
		require.ErrorAs(t, err, &unresolved)
		assert.Equal(t, "DB_PORT", unresolved.Name)
		assert.Equal(t, []string{"DB_HOST", "DB_NAME"}, unresolved.Known)
		assert.Contains(t, unresolved.Source, "DB_PORT")
	})

	t.Run("ExactStringIdentity", func(t *testing.T) {
		// No case folding: db_host is not DB_HOST.
		_, err := snap.Resolve("db_host", nil)
		assert.Error(t, err)
	})
}

func TestSnapshotImmutableAfterCapture(t *testing.T) {
	source := map[string]string{"KEY": "original"}
	snap := NewSnapshot(source)

	source["KEY"] = "mutated"
	value, err := snap.Resolve("KEY", nil)
	require.NoError(t, err)
	assert.Equal(t, "original", value)
}
