package ui

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

var (
	embeddedConfigOnce sync.Once
	embeddedConfig     Config
	embeddedConfigErr  error
)

// AboutConfig contains application metadata.
type AboutConfig struct {
	Name          string `yaml:"name,omitempty" toml:"name,omitempty"`
	Description   string `yaml:"description,omitempty" toml:"description,omitempty"`
	License       string `yaml:"license,omitempty" toml:"license,omitempty"`
	RepositoryURL string `yaml:"repository_url,omitempty" toml:"repository_url,omitempty"`
}

// DebugConfig holds logging settings.
type DebugConfig struct {
	LogFile string `yaml:"log_file,omitempty" toml:"log_file,omitempty"`
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	About AboutConfig `yaml:"about" toml:"about"`
	Debug DebugConfig `yaml:"debug" toml:"debug"`
}

// ThemeSelectionConfig holds theme selection configuration.
type ThemeSelectionConfig struct {
	Default string `yaml:"default,omitempty" toml:"default,omitempty"`
}

// MenuConfig holds the menu defaults. Nil fields are unset so a user file
// only overrides what it names.
type MenuConfig struct {
	Lines      *int    `yaml:"lines,omitempty" toml:"lines,omitempty"`
	Height     *int    `yaml:"height,omitempty" toml:"height,omitempty"`
	Width      *int    `yaml:"width,omitempty" toml:"width,omitempty"`
	Prompt     *string `yaml:"prompt,omitempty" toml:"prompt,omitempty"`
	Strategy   *string `yaml:"strategy,omitempty" toml:"strategy,omitempty"`
	IgnoreCase *bool   `yaml:"ignore_case,omitempty" toml:"ignore_case,omitempty"`
	Bottom     *bool   `yaml:"bottom,omitempty" toml:"bottom,omitempty"`
	VertFull   *bool   `yaml:"vertfull,omitempty" toml:"vertfull,omitempty"`
	ScrollOff  *int    `yaml:"scrolloff,omitempty" toml:"scrolloff,omitempty"`
	MaxInput   *int    `yaml:"max_input,omitempty" toml:"max_input,omitempty"`
}

// UIConfig holds UI configuration.
type UIConfig struct {
	Theme  ThemeSelectionConfig   `yaml:"theme" toml:"theme"`
	Menu   MenuConfig             `yaml:"menu" toml:"menu"`
	Keys   map[string][]string    `yaml:"keys,omitempty" toml:"keys,omitempty"`
	Themes map[string]ThemeConfig `yaml:"themes" toml:"themes"`
}

// Config is the complete configuration file layout.
type Config struct {
	App AppConfig `yaml:"app" toml:"app"`
	UI  UIConfig  `yaml:"ui" toml:"ui"`
}

// DefaultConfigYAML returns a copy of the embedded default config YAML bytes.
func DefaultConfigYAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// EmbeddedDefaultConfig parses and returns the embedded default configuration.
func EmbeddedDefaultConfig() (Config, error) {
	embeddedConfigOnce.Do(func() {
		if len(embeddedDefaultConfig) == 0 {
			embeddedConfigErr = fmt.Errorf("embedded default config is empty")
			return
		}
		if err := yaml.Unmarshal(embeddedDefaultConfig, &embeddedConfig); err != nil {
			embeddedConfigErr = fmt.Errorf("decode embedded default config: %w", err)
			return
		}
		if embeddedConfig.UI.Themes == nil {
			embeddedConfig.UI.Themes = map[string]ThemeConfig{}
		}
	})
	return embeddedConfig, embeddedConfigErr
}

// Merge overlays every field set in override onto c.
func (c Config) Merge(override Config) Config {
	out := c
	if override.App.About.Name != "" {
		out.App.About.Name = override.App.About.Name
	}
	if override.App.About.Description != "" {
		out.App.About.Description = override.App.About.Description
	}
	if override.App.Debug.LogFile != "" {
		out.App.Debug.LogFile = override.App.Debug.LogFile
	}
	if override.UI.Theme.Default != "" {
		out.UI.Theme.Default = override.UI.Theme.Default
	}
	out.UI.Menu = mergeMenuConfig(c.UI.Menu, override.UI.Menu)

	if len(override.UI.Keys) > 0 {
		keys := make(map[string][]string, len(c.UI.Keys)+len(override.UI.Keys))
		for k, v := range c.UI.Keys {
			keys[k] = v
		}
		for k, v := range override.UI.Keys {
			keys[k] = v
		}
		out.UI.Keys = keys
	}

	if len(override.UI.Themes) > 0 {
		themes := make(map[string]ThemeConfig, len(c.UI.Themes)+len(override.UI.Themes))
		for name, th := range c.UI.Themes {
			themes[name] = th
		}
		for name, th := range override.UI.Themes {
			themes[name] = mergeThemeConfig(themes[name], th)
		}
		out.UI.Themes = themes
	}
	return out
}

func mergeMenuConfig(base, override MenuConfig) MenuConfig {
	out := base
	if override.Lines != nil {
		out.Lines = override.Lines
	}
	if override.Height != nil {
		out.Height = override.Height
	}
	if override.Width != nil {
		out.Width = override.Width
	}
	if override.Prompt != nil {
		out.Prompt = override.Prompt
	}
	if override.Strategy != nil {
		out.Strategy = override.Strategy
	}
	if override.IgnoreCase != nil {
		out.IgnoreCase = override.IgnoreCase
	}
	if override.Bottom != nil {
		out.Bottom = override.Bottom
	}
	if override.VertFull != nil {
		out.VertFull = override.VertFull
	}
	if override.ScrollOff != nil {
		out.ScrollOff = override.ScrollOff
	}
	if override.MaxInput != nil {
		out.MaxInput = override.MaxInput
	}
	return out
}

func mergeThemeConfig(base, override ThemeConfig) ThemeConfig {
	out := base
	pick := func(dst *ColorValue, v ColorValue) {
		if v != "" {
			*dst = v
		}
	}
	pick(&out.NormalFG, override.NormalFG)
	pick(&out.NormalBG, override.NormalBG)
	pick(&out.SelectedFG, override.SelectedFG)
	pick(&out.SelectedBG, override.SelectedBG)
	pick(&out.PromptFG, override.PromptFG)
	pick(&out.PromptBG, override.PromptBG)
	pick(&out.ArrowFG, override.ArrowFG)
	pick(&out.RuleFG, override.RuleFG)
	pick(&out.HelpKey, override.HelpKey)
	pick(&out.HelpValue, override.HelpValue)
	return out
}

// IntValue dereferences an optional int.
func IntValue(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}

// BoolValue dereferences an optional bool.
func BoolValue(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}

// StringValue dereferences an optional string.
func StringValue(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}
