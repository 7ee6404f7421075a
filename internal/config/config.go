// Package config loads the tickbind configuration.
//
// Settings come from three places, later ones winning: built-in defaults,
// an optional TOML file, and TICKBIND_* environment variables. The result
// is validated before use.
//
//	[log]
//	level = "debug"
//
//	[bindings]
//	dir = "resources/bindings"
//	window = "window"
//	watch = true
package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "TICKBIND_"

// Config is the complete application configuration.
type Config struct {
	Log      LogConfig      `toml:"log" envPrefix:"LOG_"`
	Bindings BindingsConfig `toml:"bindings" envPrefix:"BINDINGS_"`
	Codecs   CodecsConfig   `toml:"codecs" envPrefix:"CODECS_"`
	Scripts  ScriptsConfig  `toml:"scripts" envPrefix:"SCRIPTS_"`
	Metrics  MetricsConfig  `toml:"metrics" envPrefix:"METRICS_"`
	Loop     LoopConfig     `toml:"loop" envPrefix:"LOOP_"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `toml:"level" env:"LEVEL" validate:"oneof=debug info warn error"`

	// File, when set, receives logs instead of stderr, rotated by size.
	File       string `toml:"file" env:"FILE"`
	MaxSize    int    `toml:"max_size" env:"MAX_SIZE" validate:"gte=0"`
	MaxBackups int    `toml:"max_backups" env:"MAX_BACKUPS" validate:"gte=0"`
	MaxAge     int    `toml:"max_age" env:"MAX_AGE" validate:"gte=0"`
	Compress   bool   `toml:"compress" env:"COMPRESS"`
}

// BindingsConfig locates binding files.
type BindingsConfig struct {
	// Dir is the directory relative binding file names resolve against.
	Dir string `toml:"dir" env:"DIR" validate:"required"`

	// Window is the binding file of the window owner.
	Window string `toml:"window" env:"WINDOW" validate:"required"`

	// Watch enables reloading binding files when they change on disk.
	Watch bool `toml:"watch" env:"WATCH"`

	// DebounceMS is how long a file must stay quiet before it is reloaded.
	DebounceMS int `toml:"debounce_ms" env:"DEBOUNCE_MS" validate:"gte=0,lte=10000"`
}

// CodecsConfig optionally points at external codec tables. Empty paths
// use the built-in tables.
type CodecsConfig struct {
	Kinds string `toml:"kinds" env:"KINDS" validate:"required_with=Keys"`
	Keys  string `toml:"keys" env:"KEYS" validate:"required_with=Kinds"`
}

// ScriptsConfig lists Lua owners to start.
type ScriptsConfig struct {
	Files     []string `toml:"files" env:"FILES" envSeparator:","`
	TimeoutMS int      `toml:"timeout_ms" env:"TIMEOUT_MS" validate:"gte=0"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	// Addr is the listen address; empty disables the endpoint.
	Addr string `toml:"addr" env:"ADDR" validate:"omitempty,hostname_port"`
}

// LoopConfig controls the tick loop.
type LoopConfig struct {
	// TickMS is the target tick period.
	TickMS int `toml:"tick_ms" env:"TICK_MS" validate:"gte=1,lte=1000"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:      "info",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
		Bindings: BindingsConfig{
			Dir:        "resources/bindings",
			Window:     "window",
			Watch:      true,
			DebounceMS: 100,
		},
		Scripts: ScriptsConfig{
			TimeoutMS: 1000,
		},
		Loop: LoopConfig{
			TickMS: 16,
		},
	}
}

// Load builds a configuration from defaults, the TOML file at path and the
// environment. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.mergeEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFile overlays settings present in a TOML file.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &ParseError{Path: path, Err: ErrFileNotFound}
		}
		return &ParseError{Path: path, Err: err}
	}

	dec := toml.NewDecoder(strings.NewReader(string(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			line, col := derr.Position()
			return &ParseError{Path: path, Line: line, Column: col, Err: err}
		}
		return &ParseError{Path: path, Err: err}
	}
	return nil
}

// mergeEnv overlays TICKBIND_* environment variables.
func (c *Config) mergeEnv() error {
	return env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix})
}

// Validate checks every setting.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return newValidationError(verrs)
		}
		return err
	}
	return nil
}

// BindingPath resolves a binding file name against the bindings directory.
func (c *Config) BindingPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Bindings.Dir, name)
}

// WindowBindings returns the path of the window owner's binding file.
func (c *Config) WindowBindings() string {
	return c.BindingPath(c.Bindings.Window)
}
