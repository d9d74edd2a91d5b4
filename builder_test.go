// File: confstack/builder_test.go
package confstack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	t.Run("BasicBuild", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "app-web-configuration.yaml", "web:\n  port: 8080\n")

		cfg, err := NewBuilder("app").
			WithProfiles("web").
			WithVariants("").
			WithResolver(NewDirResolver(dir)).
			WithArgs(nil).
			Build()
		require.NoError(t, err)

		port, err := cfg.Int64("web/port")
		require.NoError(t, err)
		assert.Equal(t, int64(8080), port)
	})

	t.Run("BuilderWithAllOptions", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "web.yaml", "web:\n  port: 8080\n  host: ${HOST:filehost}\n")
		extra := writeFile(t, dir, "extra.yaml", "web:\n  tls: true\n")

		cfg, err := NewBuilder("app").
			WithProfiles("web").
			WithVariants("").
			WithPathTemplate(flatTemplate).
			WithResolver(NewDirResolver(dir)).
			WithSchema(Schema{"web": Schema{"port": "int", "tls": "bool"}}).
			WithOverrides(map[string]any{"web": map[string]any{"env": "test"}}).
			WithAdditionalFiles(extra).
			WithArgs([]string{"web/port=7777"}).
			WithProperties(map[string]string{"HOST": "prophost"}).
			WithParallelism(2).
			Build()
		require.NoError(t, err)

		// CLI takes precedence, coerced by the schema.
		port, err := cfg.Int64("web/port")
		require.NoError(t, err)
		assert.Equal(t, int64(7777), port)

		host, err := cfg.String("web/host")
		require.NoError(t, err)
		assert.Equal(t, "prophost", host)

		tls, err := cfg.Bool("web/tls")
		require.NoError(t, err)
		assert.True(t, tls)

		env, err := cfg.String("web/env")
		require.NoError(t, err)
		assert.Equal(t, "test", env)
	})

	t.Run("BuildAndScan", func(t *testing.T) {
		type WebConfig struct {
			Port int    `conf:"port"`
			Host string `conf:"host"`
		}
		type AppConfig struct {
			Web WebConfig `conf:"web"`
		}

		dir := t.TempDir()
		writeFile(t, dir, "web.yaml", "web:\n  port: 8080\n  host: localhost\n")

		var target AppConfig
		err := NewBuilder("app").
			WithProfiles("web").
			WithVariants("").
			WithPathTemplate(flatTemplate).
			WithResolver(NewDirResolver(dir)).
			WithArgs(nil).
			BuildAndScan(&target)
		require.NoError(t, err)

		assert.Equal(t, 8080, target.Web.Port)
		assert.Equal(t, "localhost", target.Web.Host)
	})

	t.Run("CustomParser", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "global.props", "ignored")

		propsParser := func(data []byte) (any, error) {
			return map[string]any{"format": "props"}, nil
		}

		cfg, err := NewBuilder("app").
			WithVariants("").
			WithPathTemplate(flatTemplate).
			WithResolver(NewDirResolver(dir)).
			WithParser("props", propsParser).
			WithArgs(nil).
			Build()
		require.NoError(t, err)

		format, err := cfg.String("format")
		require.NoError(t, err)
		assert.Equal(t, "props", format)
	})

	t.Run("MustBuildPanicsOnError", func(t *testing.T) {
		assert.Panics(t, func() {
			NewBuilder("").WithArgs(nil).MustBuild()
		})
	})
}
