package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/tmenu/internal/formatter"
	"github.com/oakwood-commons/tmenu/internal/ui"
)

// configLoader centralizes config loading so callers avoid duplicating merge logic.
type configLoader struct {
	defaultConfig func() (ui.Config, error)
}

var cfgLoader = configLoader{defaultConfig: ui.EmbeddedDefaultConfig}

func loadMergedConfig(cfgPath string) (ui.Config, error) {
	return cfgLoader.loadMergedConfig(cfgPath)
}

// loadMergedConfig returns the embedded defaults with the file at cfgPath
// merged on top. An empty path returns the defaults.
func (l configLoader) loadMergedConfig(cfgPath string) (ui.Config, error) {
	cfg, err := l.defaultConfig()
	if err != nil {
		return cfg, fmt.Errorf("load default config: %w", err)
	}
	if cfg.UI.Theme.Default == "" || len(cfg.UI.Themes) == 0 {
		return cfg, fmt.Errorf("default config is missing required theme defaults")
	}
	if cfgPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(cfgPath) //nolint:gosec // user-chosen config path
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	user, err := decodeConfig(cfgPath, data)
	if err != nil {
		return cfg, err
	}
	return cfg.Merge(user), nil
}

// decodeConfig picks the decoder from the file extension; anything that is
// not .toml is read as YAML.
func decodeConfig(path string, data []byte) (ui.Config, error) {
	var cfg ui.Config
	if isTOML(path) {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
		}
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// encodeConfig renders cfg as yaml or toml.
func encodeConfig(cfg ui.Config, format string) ([]byte, error) {
	f, err := formatter.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return formatter.Encode(cfg, f)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// resolveConfigPath returns the explicit path if set, otherwise the first of
// config.yaml, config.yml and config.toml found in $XDG_CONFIG_HOME/tmenu
// (or ~/.config/tmenu).
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	dir := ""
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dir = filepath.Join(xdg, "tmenu")
	} else if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".config", "tmenu")
	}
	if dir == "" {
		return ""
	}
	for _, name := range []string{"config.yaml", "config.yml", "config.toml"} {
		candidate := filepath.Join(dir, name)
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}
