package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_missingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.PagesDir != "pages" || cfg.Theme != "grove" || cfg.Overlay.SideThreshold != DefaultSideThreshold {
		t.Errorf("defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_fileOverridesAndExpandsEnv(t *testing.T) {
	t.Setenv("THICKET_TEST_KEY", "k-123")
	path := writeConfig(t, `
pages_dir: wiki
theme: nord
overlay:
  side_threshold: 120
  portrait_dir: faces
ai:
  provider: gemini
  api_key: ${THICKET_TEST_KEY}
log:
  path: /tmp/thicket.log
  level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.PagesDir != "wiki" || cfg.Theme != "nord" {
		t.Errorf("top level: %+v", cfg)
	}
	if cfg.Overlay.SideThreshold != 120 || cfg.Overlay.PortraitDir != "faces" {
		t.Errorf("overlay: %+v", cfg.Overlay)
	}
	if cfg.AI.APIKey != "k-123" {
		t.Errorf("env not expanded: %q", cfg.AI.APIKey)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log: %+v", cfg.Log)
	}
	if cfg.Editor == "" {
		t.Error("editor default lost")
	}
}

func TestLoad_badYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "theme: [unclosed")); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"unknown theme", func(c *Config) { c.Theme = "neon" }, true},
		{"empty pages dir", func(c *Config) { c.PagesDir = "" }, true},
		{"narrow threshold", func(c *Config) { c.Overlay.SideThreshold = 20 }, true},
		{"unknown provider", func(c *Config) { c.AI.Provider = "oracle" }, true},
		{"empty provider means none", func(c *Config) { c.AI.Provider = "" }, false},
		{"anthropic", func(c *Config) { c.AI.Provider = "anthropic" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultPath_xdg(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	if got := DefaultPath(); got != filepath.Join("/cfg", "thicket", "config.yaml") {
		t.Errorf("DefaultPath() = %q", got)
	}
}
