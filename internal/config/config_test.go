package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"go.uber.org/multierr"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 640 {
		t.Errorf("expected width 640, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 480 {
		t.Errorf("expected height 480, got %d", cfg.Window.Height)
	}
	if cfg.Window.Visible {
		t.Error("expected window to be hidden by default")
	}
	if cfg.Window.GLMajor != 4 || cfg.Window.GLMinor != 1 {
		t.Errorf("expected OpenGL 4.1, got %d.%d", cfg.Window.GLMajor, cfg.Window.GLMinor)
	}

	if !cfg.Shaders.Translate {
		t.Error("expected translation to be enabled by default")
	}
	if cfg.Shaders.Dialect != "webgl" {
		t.Errorf("expected webgl dialect, got %q", cfg.Shaders.Dialect)
	}
	if len(cfg.Shaders.Variants) != 0 {
		t.Errorf("expected no configured variants, got %d", len(cfg.Shaders.Variants))
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  visible: true
  gl_major: 3
  gl_minor: 3

shaders:
  dirs: ["shaders", "/opt/shaders"]
  translate: false
  only: "flat"
  variants:
    - name: flat
      vertex: flat.vert
      fragment: flat.frag
      attributes: [position]
      uniforms: [projMat, modelViewMat]

logging:
  level: "debug"
  log_file: "shaderc.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 1080 {
		t.Errorf("expected height 1080, got %d", cfg.Window.Height)
	}
	if !cfg.Window.Visible {
		t.Error("expected visible to be true")
	}
	if cfg.Window.GLMajor != 3 || cfg.Window.GLMinor != 3 {
		t.Errorf("expected OpenGL 3.3, got %d.%d", cfg.Window.GLMajor, cfg.Window.GLMinor)
	}
	// Title was not in the file, so the default survives the merge
	if cfg.Window.Title != "glworkshop" {
		t.Errorf("expected default title, got %s", cfg.Window.Title)
	}

	if cfg.Shaders.Translate {
		t.Error("expected translate to be false")
	}
	if cfg.Shaders.Only != "flat" {
		t.Errorf("expected only 'flat', got %s", cfg.Shaders.Only)
	}
	if got := cfg.Shaders.Dirs[0]; got != filepath.Join(tmpDir, "shaders") {
		t.Errorf("expected relative dir resolved against config, got %s", got)
	}
	if got := cfg.Shaders.Dirs[1]; got != "/opt/shaders" {
		t.Errorf("expected absolute dir unchanged, got %s", got)
	}

	if len(cfg.Shaders.Variants) != 1 {
		t.Fatalf("expected 1 variant, got %d", len(cfg.Shaders.Variants))
	}
	v := cfg.Shaders.Variants[0]
	if v.Name != "flat" || v.Vertex != "flat.vert" || v.Fragment != "flat.frag" {
		t.Errorf("unexpected variant %+v", v)
	}
	if len(v.Attributes) != 1 || v.Attributes[0] != "position" {
		t.Errorf("unexpected attributes %v", v.Attributes)
	}
	if len(v.Uniforms) != 2 {
		t.Errorf("expected 2 uniforms, got %v", v.Uniforms)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "shaderc.log" {
		t.Errorf("expected log file 'shaderc.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errs   int
		want   string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:   "zero size",
			mutate: func(c *Config) { c.Window.Width = 0 },
			errs:   1,
			want:   "must be positive",
		},
		{
			name:   "fixed function GL",
			mutate: func(c *Config) { c.Window.GLMajor = 1 },
			errs:   1,
			want:   "no programmable pipeline",
		},
		{
			name:   "unknown level",
			mutate: func(c *Config) { c.Logging.Level = "verbose" },
			errs:   1,
			want:   "unknown level",
		},
		{
			name:   "unknown dialect",
			mutate: func(c *Config) { c.Shaders.Dialect = "hlsl" },
			errs:   1,
			want:   "unknown dialect",
		},
		{
			name: "broken variants",
			mutate: func(c *Config) {
				c.Shaders.Variants = []VariantConfig{
					{Name: "a", Vertex: "a.vert", Fragment: "a.frag"},
					{Name: "a", Vertex: "b.vert"},
					{Fragment: "c.frag", Vertex: "c.vert"},
				}
			},
			errs: 3,
			want: "duplicate name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()

			if got := len(multierr.Errors(err)); got != tt.errs {
				t.Fatalf("expected %d errors, got %d: %v", tt.errs, got, err)
			}
			if tt.want != "" && !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "glworkshop.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find glworkshop.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "variant flag",
			setup: func() { *flagVariant = "lighting" },
			verify: func(cfg *Config) {
				if cfg.Shaders.Only != "lighting" {
					t.Errorf("expected only 'lighting', got %s", cfg.Shaders.Only)
				}
			},
			teardown: func() { *flagVariant = "" },
		},
		{
			name:  "shader dir flag",
			setup: func() { *flagShaderDir = "/tmp/shaders" },
			verify: func(cfg *Config) {
				if n := len(cfg.Shaders.Dirs); n != 1 || cfg.Shaders.Dirs[0] != "/tmp/shaders" {
					t.Errorf("expected dir appended, got %v", cfg.Shaders.Dirs)
				}
			},
			teardown: func() { *flagShaderDir = "" },
		},
		{
			name:  "watch flag",
			setup: func() { *flagWatch = true },
			verify: func(cfg *Config) {
				if !cfg.Shaders.Watch {
					t.Error("expected watch to be enabled")
				}
			},
			teardown: func() { *flagWatch = false },
		},
		{
			name:  "no-translate flag",
			setup: func() { *flagNoTranslate = true },
			verify: func(cfg *Config) {
				if cfg.Shaders.Translate {
					t.Error("expected translation to be disabled")
				}
			},
			teardown: func() { *flagNoTranslate = false },
		},
		{
			name:  "show flag",
			setup: func() { *flagShow = true },
			verify: func(cfg *Config) {
				if !cfg.Window.Visible {
					t.Error("expected window to be visible")
				}
			},
			teardown: func() { *flagShow = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Window.Width = 1024
	cfg.Shaders.Variants = []VariantConfig{{Name: "flat", Vertex: "flat.vert", Fragment: "flat.frag"}}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Window.Width != 1024 {
		t.Errorf("expected width 1024, got %d", loaded.Window.Width)
	}
	if len(loaded.Shaders.Variants) != 1 || loaded.Shaders.Variants[0].Name != "flat" {
		t.Errorf("expected saved variant, got %+v", loaded.Shaders.Variants)
	}
}

func TestSaveWritesDefaultPath(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("config dir is not redirectable on this OS")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.Shaders.Dialect = "webgl2"
	if err := cfg.Save(); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	if dir := filepath.Dir(DefaultPath()); dir != ConfigDir() {
		t.Errorf("expected default path inside %s, got %s", ConfigDir(), DefaultPath())
	}
	loaded := Default()
	if err := loadFromFile(loaded, DefaultPath()); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Shaders.Dialect != "webgl2" {
		t.Errorf("expected saved dialect, got %q", loaded.Shaders.Dialect)
	}
}

func TestActionFlags(t *testing.T) {
	if ListOnly() || WriteConfig() {
		t.Fatal("expected action flags off by default")
	}

	*flagList = true
	*flagWriteConfig = true
	defer func() {
		*flagList = false
		*flagWriteConfig = false
	}()

	if !ListOnly() || !WriteConfig() {
		t.Error("expected action flags to be reported")
	}
	cfg := Default()
	applyFlags(cfg)
	if cfg.Shaders.Watch || cfg.Window.Visible {
		t.Error("action flags must not change the config")
	}
}
