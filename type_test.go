// File: confstack/type_test.go
package confstack

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return NewConfig(map[string]any{
		"web": map[string]any{
			"port":    int64(8080),
			"host":    "localhost",
			"debug":   true,
			"ratio":   0.5,
			"level":   Keyword("info"),
			"timeout": 30 * time.Second,
		},
		"tags": []any{"a", "b"},
	})
}

func TestConfigGet(t *testing.T) {
	cfg := testConfig()

	t.Run("NestedPath", func(t *testing.T) {
		value, ok := cfg.Get("web/port")
		require.True(t, ok)
		assert.Equal(t, int64(8080), value)
	})

	t.Run("MissingPath", func(t *testing.T) {
		_, ok := cfg.Get("web/absent")
		assert.False(t, ok)
	})

	t.Run("ThroughScalar", func(t *testing.T) {
		_, ok := cfg.Get("web/port/deeper")
		assert.False(t, ok)
	})

	t.Run("RootPath", func(t *testing.T) {
		value, ok := cfg.Get("")
		require.True(t, ok)
		assert.Contains(t, value.(map[string]any), "web")
	})
}

func TestConfigTypedAccessors(t *testing.T) {
	cfg := testConfig()

	t.Run("String", func(t *testing.T) {
		host, err := cfg.String("web/host")
		require.NoError(t, err)
		assert.Equal(t, "localhost", host)

		// Numbers and keywords convert.
		port, err := cfg.String("web/port")
		require.NoError(t, err)
		assert.Equal(t, "8080", port)

		level, err := cfg.String("web/level")
		require.NoError(t, err)
		assert.Equal(t, "info", level)
	})

	t.Run("Int64", func(t *testing.T) {
		port, err := cfg.Int64("web/port")
		require.NoError(t, err)
		assert.Equal(t, int64(8080), port)

		_, err = cfg.Int64("web/host")
		assert.Error(t, err)
	})

	t.Run("Bool", func(t *testing.T) {
		debug, err := cfg.Bool("web/debug")
		require.NoError(t, err)
		assert.True(t, debug)
	})

	t.Run("Float64", func(t *testing.T) {
		ratio, err := cfg.Float64("web/ratio")
		require.NoError(t, err)
		assert.Equal(t, 0.5, ratio)
	})

	t.Run("Duration", func(t *testing.T) {
		timeout, err := cfg.Duration("web/timeout")
		require.NoError(t, err)
		assert.Equal(t, 30*time.Second, timeout)
	})

	t.Run("MissingPathErrors", func(t *testing.T) {
		_, err := cfg.String("absent")
		assert.Error(t, err)
	})
}

func TestConfigImmutability(t *testing.T) {
	cfg := testConfig()

	m := cfg.Map()
	m["web"].(map[string]any)["port"] = int64(1)

	port, err := cfg.Int64("web/port")
	require.NoError(t, err)
	assert.Equal(t, int64(8080), port)

	value, _ := cfg.Get("tags")
	value.([]any)[0] = "mutated"
	fresh, _ := cfg.Get("tags")
	assert.Equal(t, []any{"a", "b"}, fresh)
}

func TestConfigScan(t *testing.T) {
	t.Run("Section", func(t *testing.T) {
		type WebConfig struct {
			Port    int           `conf:"port"`
			Host    string        `conf:"host"`
			Level   string        `conf:"level"`
			Timeout time.Duration `conf:"timeout"`
		}

		var web WebConfig
		require.NoError(t, testConfig().Scan("web", &web))

		assert.Equal(t, 8080, web.Port)
		assert.Equal(t, "localhost", web.Host)
		assert.Equal(t, "info", web.Level)
		assert.Equal(t, 30*time.Second, web.Timeout)
	})

	t.Run("MissingSectionScansEmpty", func(t *testing.T) {
		type Empty struct {
			Value string `conf:"value"`
		}
		var out Empty
		require.NoError(t, testConfig().Scan("absent", &out))
		assert.Equal(t, "", out.Value)
	})

	t.Run("NonMapSection", func(t *testing.T) {
		var out struct{}
		err := testConfig().Scan("web/port", &out)
		assert.Error(t, err)
	})

	t.Run("NonPointerTarget", func(t *testing.T) {
		var out struct{}
		err := testConfig().Scan("web", out)
		assert.Error(t, err)
	})

	t.Run("DurationFromString", func(t *testing.T) {
		cfg := NewConfig(map[string]any{"timeout": "5s"})
		var out struct {
			Timeout time.Duration `conf:"timeout"`
		}
		require.NoError(t, cfg.Scan("", &out))
		assert.Equal(t, 5*time.Second, out.Timeout)
	})
}
