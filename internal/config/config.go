// Package config handles shaderc configuration loading and management.
package config

import (
	"fmt"

	"go.uber.org/multierr"
)

// Config holds all tool settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Shaders ShadersConfig `yaml:"shaders"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds the settings of the window that owns the GL context.
type WindowConfig struct {
	Title   string `yaml:"title"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Visible bool   `yaml:"visible"` // Hidden windows are enough for validation
	GLMajor int    `yaml:"gl_major"`
	GLMinor int    `yaml:"gl_minor"`
}

// ShadersConfig holds shader lookup and build settings.
type ShadersConfig struct {
	Dirs      []string        `yaml:"dirs"`      // Searched before the embedded workshop set, last wins
	Translate bool            `yaml:"translate"` // Translate WebGL source to desktop GLSL
	Dialect   string          `yaml:"dialect"`   // webgl (ESSL 1.00) or webgl2 (ESSL 3.00)
	Watch     bool            `yaml:"watch"`
	Only      string          `yaml:"only"`     // Build a single variant by name
	Variants  []VariantConfig `yaml:"variants"` // Empty means the workshop variants
}

// VariantConfig describes a shader variant and the names its draw code binds.
type VariantConfig struct {
	Name       string   `yaml:"name"`
	Vertex     string   `yaml:"vertex"`
	Fragment   string   `yaml:"fragment"`
	Attributes []string `yaml:"attributes"`
	Uniforms   []string `yaml:"uniforms"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:   "glworkshop",
			Width:   640,
			Height:  480,
			Visible: false,
			GLMajor: 4,
			GLMinor: 1,
		},
		Shaders: ShadersConfig{
			Translate: true,
			Dialect:   "webgl",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports every problem in the config at once.
func (c *Config) Validate() error {
	var err error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("window: size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.GLMajor < 2 {
		err = multierr.Append(err, fmt.Errorf("window: OpenGL %d.%d has no programmable pipeline", c.Window.GLMajor, c.Window.GLMinor))
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		err = multierr.Append(err, fmt.Errorf("logging: unknown level %q", c.Logging.Level))
	}

	switch c.Shaders.Dialect {
	case "", "webgl", "webgl2":
	default:
		err = multierr.Append(err, fmt.Errorf("shaders: unknown dialect %q", c.Shaders.Dialect))
	}

	seen := make(map[string]bool, len(c.Shaders.Variants))
	for i, v := range c.Shaders.Variants {
		if v.Name == "" {
			err = multierr.Append(err, fmt.Errorf("shaders.variants[%d]: missing name", i))
		} else if seen[v.Name] {
			err = multierr.Append(err, fmt.Errorf("shaders.variants[%d]: duplicate name %q", i, v.Name))
		}
		seen[v.Name] = true
		if v.Vertex == "" {
			err = multierr.Append(err, fmt.Errorf("shaders.variants[%d]: missing vertex file", i))
		}
		if v.Fragment == "" {
			err = multierr.Append(err, fmt.Errorf("shaders.variants[%d]: missing fragment file", i))
		}
	}

	return err
}
