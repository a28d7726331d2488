// Package config loads thicket's settings from a YAML file, with defaults
// for everything the file leaves out.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/yash-srivastava19/thicket/internal/ai"
	"github.com/yash-srivastava19/thicket/internal/theme"
)

// DefaultSideThreshold is the narrowest terminal that still gets the overlay
// beside the primary pane instead of below it.
const DefaultSideThreshold = 100

type Config struct {
	PagesDir  string        `yaml:"pages_dir"`
	Theme     string        `yaml:"theme"`
	NoOverlay bool          `yaml:"no_overlay"`
	Editor    string        `yaml:"editor"`
	Overlay   OverlayConfig `yaml:"overlay"`
	AI        AIConfig      `yaml:"ai"`
	Log       LogConfig     `yaml:"log"`
}

type OverlayConfig struct {
	SideThreshold int    `yaml:"side_threshold"`
	PortraitDir   string `yaml:"portrait_dir"`
}

type AIConfig struct {
	Provider string `yaml:"provider"`
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
}

// LogConfig: an empty Path discards log output.
type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

func Default() *Config {
	return &Config{
		PagesDir: "pages",
		Theme:    theme.Default,
		Editor:   defaultEditor(),
		Overlay: OverlayConfig{
			SideThreshold: DefaultSideThreshold,
		},
		AI: AIConfig{
			Provider: ai.ProviderNone,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks the settings that can be wrong in a config file.
func (c *Config) Validate() error {
	if c.AI.Provider == "" {
		c.AI.Provider = ai.ProviderNone
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.PagesDir, validation.Required),
		validation.Field(&c.Theme, validation.Required, validation.In(toAny(theme.Names())...)),
		validation.Field(&c.Overlay),
		validation.Field(&c.AI),
	)
}

func (c OverlayConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.SideThreshold, validation.Required, validation.Min(40)),
	)
}

func (c AIConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Provider, validation.In(toAny(ai.Providers)...)),
	)
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err := loadYAML(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadYAML decodes filename into target after expanding ${VAR} references.
func loadYAML[T any](filename string, target *T) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", filename, err)
	}
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), target); err != nil {
		return fmt.Errorf("config: parse %s: %w", filename, err)
	}
	return nil
}

// DefaultPath is $XDG_CONFIG_HOME/thicket/config.yaml.
func DefaultPath() string {
	return filepath.Join(xdgConfig(), "thicket", "config.yaml")
}

func xdgConfig() string {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return d
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

func defaultEditor() string {
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	if e := os.Getenv("VISUAL"); e != "" {
		return e
	}
	return "vim"
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
