package ui

import (
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func intPtr(v int) *int { return &v }
func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool { return &v }

func TestEmbeddedDefaultConfig(t *testing.T) {
	cfg, err := EmbeddedDefaultConfig()
	require.NoError(t, err)
	assert.Equal(t, "tmenu", cfg.App.About.Name)
	assert.Equal(t, "dark", cfg.UI.Theme.Default)
	assert.Equal(t, "ranked", StringValue(cfg.UI.Menu.Strategy, ""))
	assert.Equal(t, 8191, IntValue(cfg.UI.Menu.MaxInput, 0))
	assert.ElementsMatch(t, []string{"dark", "light", "terminal"}, keysOf(cfg.UI.Themes))

	// The embedded key table must agree with the built-in bindings.
	km, err := DefaultKeyMap().ApplyOverrides(cfg.UI.Keys)
	require.NoError(t, err)
	for _, d := range defaultBindings {
		b, ok := km.Binding(d.cmd)
		require.True(t, ok)
		assert.Equal(t, d.keys, b.Keys(), d.cmd.String())
	}

	// DefaultConfigYAML hands out a copy.
	raw := DefaultConfigYAML()
	raw[0] = 'X'
	assert.NotEqual(t, raw[0], DefaultConfigYAML()[0])
}

func keysOf(m map[string]ThemeConfig) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestConfigMerge(t *testing.T) {
	base := Config{
		App: AppConfig{About: AboutConfig{Name: "tmenu", Description: "menu"}},
		UI: UIConfig{
			Theme: ThemeSelectionConfig{Default: "dark"},
			Menu:  MenuConfig{Lines: intPtr(0), Prompt: strPtr(""), Bottom: boolPtr(false)},
			Keys:  map[string][]string{"accept": {"enter"}, "cancel": {"esc"}},
			Themes: map[string]ThemeConfig{
				"dark": {NormalFG: "7", NormalBG: "0"},
			},
		},
	}
	override := Config{
		App: AppConfig{Debug: DebugConfig{LogFile: "/tmp/x.log"}},
		UI: UIConfig{
			Menu: MenuConfig{Lines: intPtr(10), Bottom: boolPtr(true)},
			Keys: map[string][]string{"cancel": {"ctrl+q"}},
			Themes: map[string]ThemeConfig{
				"dark":  {NormalBG: "235"},
				"solar": {SelectedBG: "#b58900"},
			},
		},
	}

	got := base.Merge(override)
	assert.Equal(t, "tmenu", got.App.About.Name)
	assert.Equal(t, "menu", got.App.About.Description)
	assert.Equal(t, "/tmp/x.log", got.App.Debug.LogFile)
	assert.Equal(t, "dark", got.UI.Theme.Default)
	assert.Equal(t, 10, IntValue(got.UI.Menu.Lines, -1))
	assert.True(t, BoolValue(got.UI.Menu.Bottom, false))
	assert.Equal(t, "", StringValue(got.UI.Menu.Prompt, "unset"))
	assert.Equal(t, map[string][]string{"accept": {"enter"}, "cancel": {"ctrl+q"}}, got.UI.Keys)
	assert.Equal(t, ThemeConfig{NormalFG: "7", NormalBG: "235"}, got.UI.Themes["dark"])
	assert.Equal(t, ColorValue("#b58900"), got.UI.Themes["solar"].SelectedBG)

	// The receiver is untouched.
	assert.Equal(t, ColorValue("0"), base.UI.Themes["dark"].NormalBG)
	assert.Equal(t, []string{"esc"}, base.UI.Keys["cancel"])
}

func TestOptionalValues(t *testing.T) {
	assert.Equal(t, 3, IntValue(nil, 3))
	assert.Equal(t, 0, IntValue(intPtr(0), 3))
	assert.True(t, BoolValue(nil, true))
	assert.False(t, BoolValue(boolPtr(false), true))
	assert.Equal(t, "x", StringValue(nil, "x"))
	assert.Equal(t, "", StringValue(strPtr(""), "x"))
}

func TestThemeByName(t *testing.T) {
	cfg, err := EmbeddedDefaultConfig()
	require.NoError(t, err)

	def, err := ThemeByName(cfg, "")
	require.NoError(t, err)
	dark, err := ThemeByName(cfg, "dark")
	require.NoError(t, err)
	assert.Equal(t, dark, def)
	assert.Equal(t, lipgloss.Color("#005577"), dark.SelectedBG)

	none, err := ThemeByName(cfg, "none")
	require.NoError(t, err)
	assert.True(t, none.Plain())

	_, err = ThemeByName(cfg, "neon")
	require.ErrorContains(t, err, `unknown theme "neon"`)
	assert.Contains(t, err.Error(), "dark, light, none, terminal")

	// Without any configured default "dark" is used.
	cfg.UI.Theme.Default = ""
	def, err = ThemeByName(cfg, " ")
	require.NoError(t, err)
	assert.Equal(t, dark, def)
}

func TestThemeFromConfigKeepsFallbackColors(t *testing.T) {
	th := ThemeFromConfig(ThemeConfig{SelectedBG: "1"})
	assert.Equal(t, lipgloss.Color("1"), th.SelectedBG)
	assert.Equal(t, fallbackTheme().NormalFG, th.NormalFG)
	assert.False(t, th.Plain())
}

func TestThemeWithOverrides(t *testing.T) {
	th := DefaultTheme().WithOverrides("1", "", " ", "4")
	assert.Equal(t, lipgloss.Color("1"), th.NormalFG)
	assert.Equal(t, DefaultTheme().NormalBG, th.NormalBG)
	assert.Equal(t, DefaultTheme().SelectedFG, th.SelectedFG)
	assert.Equal(t, lipgloss.Color("4"), th.SelectedBG)
	assert.Equal(t, lipgloss.Color("4"), th.PromptBG, "the prompt follows the selected colors")
}

func TestColorValueYAML(t *testing.T) {
	var tc ThemeConfig
	require.NoError(t, yaml.Unmarshal([]byte("normal_fg: 7\nnormal_bg: \"#222222\"\n"), &tc))
	assert.Equal(t, ColorValue("7"), tc.NormalFG)
	assert.Equal(t, ColorValue("#222222"), tc.NormalBG)

	out, err := yaml.Marshal(tc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "normal_fg: 7\n")
	assert.Contains(t, string(out), "normal_bg: '#222222'\n")
}
