package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tickbind.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "resources/bindings", cfg.Bindings.Dir)
	assert.Equal(t, "window", cfg.Bindings.Window)
	assert.True(t, cfg.Bindings.Watch)
	assert.Equal(t, 16, cfg.Loop.TickMS)
	assert.Empty(t, cfg.Metrics.Addr)
	require.NoError(t, cfg.Validate())
}

func TestLoad_NoPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"
file = "tickbind.log"

[bindings]
dir = "/etc/tickbind"
window = "main.yaml"
watch = false

[scripts]
files = ["player.lua", "hud.lua"]

[metrics]
addr = "127.0.0.1:9090"

[loop]
tick_ms = 33
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "tickbind.log", cfg.Log.File)
	assert.Equal(t, 10, cfg.Log.MaxSize, "unset keys keep defaults")
	assert.Equal(t, "/etc/tickbind", cfg.Bindings.Dir)
	assert.False(t, cfg.Bindings.Watch)
	assert.Equal(t, []string{"player.lua", "hud.lua"}, cfg.Scripts.Files)
	assert.Equal(t, "127.0.0.1:9090", cfg.Metrics.Addr)
	assert.Equal(t, 33, cfg.Loop.TickMS)
	assert.Equal(t, "/etc/tickbind/main.yaml", cfg.WindowBindings())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("TICKBIND_LOG_LEVEL", "warn")
	t.Setenv("TICKBIND_SCRIPTS_FILES", "a.lua,b.lua")
	t.Setenv("TICKBIND_LOOP_TICK_MS", "50")

	path := writeConfig(t, "[log]\nlevel = \"debug\"\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level, "environment wins over file")
	assert.Equal(t, []string{"a.lua", "b.lua"}, cfg.Scripts.Files)
	assert.Equal(t, 50, cfg.Loop.TickMS)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("syntax error has a position", func(t *testing.T) {
		path := writeConfig(t, "[log]\nlevel = \n")
		_, err := Load(path)

		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, path, perr.Path)
		assert.Equal(t, 2, perr.Line)
	})

	t.Run("unknown key", func(t *testing.T) {
		path := writeConfig(t, "[log]\ncolour = true\n")
		_, err := Load(path)

		var perr *ParseError
		require.ErrorAs(t, err, &perr)
	})

	t.Run("bad env value", func(t *testing.T) {
		t.Setenv("TICKBIND_LOOP_TICK_MS", "fast")
		_, err := Load("")
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"bad level", func(c *Config) { c.Log.Level = "verbose" }, "log.level"},
		{"zero tick", func(c *Config) { c.Loop.TickMS = 0 }, "loop.tick_ms"},
		{"no bindings dir", func(c *Config) { c.Bindings.Dir = "" }, "bindings.dir"},
		{"no window file", func(c *Config) { c.Bindings.Window = "" }, "bindings.window"},
		{"bad metrics addr", func(c *Config) { c.Metrics.Addr = "not an address" }, "metrics.addr"},
		{"kinds without keys", func(c *Config) { c.Codecs.Kinds = "kinds.txt" }, "codecs.keys"},
		{"negative backups", func(c *Config) { c.Log.MaxBackups = -1 }, "log.max_backups"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidationFailed)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.NotEmpty(t, verr.Fields)
			assert.Equal(t, tt.path, verr.Fields[0].Path)
			assert.Contains(t, err.Error(), tt.path)
		})
	}
}

func TestBindingPath(t *testing.T) {
	cfg := Default()
	cfg.Bindings.Dir = "data"

	assert.Equal(t, filepath.Join("data", "player"), cfg.BindingPath("player"))
	assert.Equal(t, "/abs/player", cfg.BindingPath("/abs/player"))
}

func TestParseError(t *testing.T) {
	err := &ParseError{Path: "a.toml", Line: 3, Column: 7, Err: assert.AnError}
	assert.Equal(t, "parse error in a.toml at line 3, column 7: "+assert.AnError.Error(), err.Error())
	assert.ErrorIs(t, err, assert.AnError)

	err = &ParseError{Path: "a.toml", Err: assert.AnError}
	assert.Equal(t, "parse error in a.toml: "+assert.AnError.Error(), err.Error())
}
