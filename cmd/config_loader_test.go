package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/tmenu/internal/ui"
)

func TestConfigLoaderLoadMergedConfigDefaults(t *testing.T) {
	cfg, err := loadMergedConfig("")
	require.NoError(t, err)
	assert.Equal(t, "tmenu", cfg.App.About.Name)
	assert.Equal(t, "dark", cfg.UI.Theme.Default)
	assert.Contains(t, cfg.UI.Themes, "light")
	assert.Equal(t, 4, ui.IntValue(cfg.UI.Menu.ScrollOff, -1))
	assert.NotEmpty(t, cfg.UI.Keys["accept"])
}

func TestConfigLoaderLoadMergedConfigYAMLOverrides(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	configYAML := `app:
  debug:
    log_file: /tmp/tmenu.log
ui:
  theme:
    default: midnight
  menu:
    lines: 12
    ignore_case: true
  keys:
    accept: [enter, ctrl+o]
  themes:
    midnight:
      selected_bg: "#000080"
    dark:
      normal_bg: 0
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(configYAML), 0o600))

	cfg, err := loadMergedConfig(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/tmenu.log", cfg.App.Debug.LogFile)
	assert.Equal(t, "midnight", cfg.UI.Theme.Default)
	assert.Equal(t, 12, ui.IntValue(cfg.UI.Menu.Lines, 0))
	assert.True(t, ui.BoolValue(cfg.UI.Menu.IgnoreCase, false))
	// Unset fields keep the defaults.
	assert.Equal(t, "ranked", ui.StringValue(cfg.UI.Menu.Strategy, ""))
	assert.Equal(t, []string{"enter", "ctrl+o"}, cfg.UI.Keys["accept"])
	assert.NotEmpty(t, cfg.UI.Keys["cancel"])

	require.Contains(t, cfg.UI.Themes, "midnight")
	assert.Equal(t, ui.ColorValue("#000080"), cfg.UI.Themes["midnight"].SelectedBG)
	// Theme overrides merge field by field.
	assert.Equal(t, ui.ColorValue("0"), cfg.UI.Themes["dark"].NormalBG)
	assert.NotEmpty(t, cfg.UI.Themes["dark"].SelectedBG)
}

func TestConfigLoaderLoadMergedConfigTOML(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	configTOML := `[ui.theme]
default = "light"

[ui.menu]
strategy = "fuzzy"
bottom = true
prompt = "run:"

[ui.keys]
cancel = ["esc"]

[ui.themes.light]
selected_bg = "#ff8700"
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(configTOML), 0o600))

	cfg, err := loadMergedConfig(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.UI.Theme.Default)
	assert.Equal(t, "fuzzy", ui.StringValue(cfg.UI.Menu.Strategy, ""))
	assert.True(t, ui.BoolValue(cfg.UI.Menu.Bottom, false))
	assert.Equal(t, "run:", ui.StringValue(cfg.UI.Menu.Prompt, ""))
	assert.Equal(t, []string{"esc"}, cfg.UI.Keys["cancel"])
	assert.Equal(t, ui.ColorValue("#ff8700"), cfg.UI.Themes["light"].SelectedBG)
}

func TestConfigLoaderErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := loadMergedConfig(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("ui: [unclosed"), 0o600))
	_, err = loadMergedConfig(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode bad.yaml")

	badTOML := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(badTOML, []byte("[ui\n"), 0o600))
	_, err = loadMergedConfig(badTOML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode bad.toml")
}

func TestConfigLoaderDefaultFailures(t *testing.T) {
	broken := configLoader{defaultConfig: func() (ui.Config, error) {
		return ui.Config{}, errors.New("boom")
	}}
	_, err := broken.loadMergedConfig("")
	require.ErrorContains(t, err, "load default config: boom")

	empty := configLoader{defaultConfig: func() (ui.Config, error) { return ui.Config{}, nil }}
	_, err = empty.loadMergedConfig("")
	require.ErrorContains(t, err, "missing required theme defaults")
}

func TestResolveConfigPath(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	assert.Equal(t, "/explicit.yaml", resolveConfigPath("/explicit.yaml"))
	assert.Empty(t, resolveConfigPath(""))

	dir := filepath.Join(xdg, "tmenu")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	tomlPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(""), 0o600))
	assert.Equal(t, tomlPath, resolveConfigPath(""))

	yamlPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(""), 0o600))
	assert.Equal(t, yamlPath, resolveConfigPath(""), "yaml wins over toml")
}

func TestEncodeConfig(t *testing.T) {
	cfg, err := loadMergedConfig("")
	require.NoError(t, err)

	for _, format := range []string{"", "yaml", "YML", "toml"} {
		out, err := encodeConfig(cfg, format)
		require.NoError(t, err, format)
		assert.NotEmpty(t, out, format)
	}
	_, err = encodeConfig(cfg, "json")
	require.Error(t, err)
}
