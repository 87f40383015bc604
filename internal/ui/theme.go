package ui

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"gopkg.in/yaml.v3"
)

// Theme holds the colors of the menu. A nil color leaves the terminal default.
type Theme struct {
	NormalFG   color.Color // Unselected items and input text
	NormalBG   color.Color // Menu background
	SelectedFG color.Color // Highlighted item foreground
	SelectedBG color.Color // Highlighted item background
	PromptFG   color.Color // Prompt foreground
	PromptBG   color.Color // Prompt background
	ArrowFG    color.Color // Page indicators
	RuleFG     color.Color // Help overlay separator
	HelpKey    color.Color // Help key labels
	HelpValue  color.Color // Help descriptions
}

// NoColorTheme renders everything in the terminal's own colors and marks the
// selection with reverse video.
func NoColorTheme() Theme { return Theme{} }

// Plain reports whether the theme carries no colors at all.
func (t Theme) Plain() bool { return t == Theme{} }

// fallbackTheme is used when the embedded configuration cannot be read.
func fallbackTheme() Theme {
	return Theme{
		NormalFG:   lipgloss.Color("#bbbbbb"),
		NormalBG:   lipgloss.Color("#222222"),
		SelectedFG: lipgloss.Color("#eeeeee"),
		SelectedBG: lipgloss.Color("#005577"),
		PromptFG:   lipgloss.Color("#eeeeee"),
		PromptBG:   lipgloss.Color("#005577"),
		ArrowFG:    lipgloss.Color("#bbbbbb"),
		RuleFG:     lipgloss.Color("#444444"),
		HelpKey:    lipgloss.Color("#5fafff"),
		HelpValue:  lipgloss.Color("#8a8a8a"),
	}
}

// DefaultTheme returns the default theme of the embedded configuration.
func DefaultTheme() Theme {
	cfg, err := EmbeddedDefaultConfig()
	if err != nil {
		return fallbackTheme()
	}
	th, err := ThemeByName(cfg, cfg.UI.Theme.Default)
	if err != nil {
		return fallbackTheme()
	}
	return th
}

// ThemeByName resolves a theme from cfg. An empty name selects the configured
// default, then "dark".
func ThemeByName(cfg Config, name string) (Theme, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.TrimSpace(cfg.UI.Theme.Default)
	}
	if name == "" {
		name = "dark"
	}
	if name == "none" {
		return NoColorTheme(), nil
	}
	tc, ok := cfg.UI.Themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q (available: %s)", name, themeNames(cfg))
	}
	return themeFromConfigWithBase(tc, fallbackTheme()), nil
}

// ThemeNames lists the themes defined in cfg, sorted.
func ThemeNames(cfg Config) []string {
	names := make([]string, 0, len(cfg.UI.Themes)+1)
	for name := range cfg.UI.Themes {
		names = append(names, name)
	}
	names = append(names, "none")
	sort.Strings(names)
	return names
}

func themeNames(cfg Config) string {
	return strings.Join(ThemeNames(cfg), ", ")
}

// ColorValue stores a color token (number or name) and marshals numerics as YAML ints.
type ColorValue string

func (c ColorValue) MarshalYAML() (interface{}, error) {
	if c == "" {
		return "", nil
	}
	s := string(c)
	if _, err := strconv.Atoi(s); err == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: s}, nil
	}
	return s, nil
}

func (c *ColorValue) UnmarshalYAML(value *yaml.Node) error {
	if value == nil {
		*c = ""
		return nil
	}
	*c = ColorValue(value.Value)
	return nil
}

// ThemeConfig is the file form of a Theme. Colors accept ANSI numbers or
// hex strings; TOML files must quote numbers.
type ThemeConfig struct {
	NormalFG   ColorValue `yaml:"normal_fg,omitempty" toml:"normal_fg,omitempty"`
	NormalBG   ColorValue `yaml:"normal_bg,omitempty" toml:"normal_bg,omitempty"`
	SelectedFG ColorValue `yaml:"selected_fg,omitempty" toml:"selected_fg,omitempty"`
	SelectedBG ColorValue `yaml:"selected_bg,omitempty" toml:"selected_bg,omitempty"`
	PromptFG   ColorValue `yaml:"prompt_fg,omitempty" toml:"prompt_fg,omitempty"`
	PromptBG   ColorValue `yaml:"prompt_bg,omitempty" toml:"prompt_bg,omitempty"`
	ArrowFG    ColorValue `yaml:"arrow_fg,omitempty" toml:"arrow_fg,omitempty"`
	RuleFG     ColorValue `yaml:"rule_fg,omitempty" toml:"rule_fg,omitempty"`
	HelpKey    ColorValue `yaml:"help_key,omitempty" toml:"help_key,omitempty"`
	HelpValue  ColorValue `yaml:"help_value,omitempty" toml:"help_value,omitempty"`
}

// ThemeFromConfig converts a ThemeConfig over the fallback palette.
func ThemeFromConfig(cfg ThemeConfig) Theme {
	return themeFromConfigWithBase(cfg, fallbackTheme())
}

func themeFromConfigWithBase(cfg ThemeConfig, base Theme) Theme {
	th := base
	set := func(val ColorValue, dst *color.Color) {
		if val != "" {
			*dst = lipgloss.Color(string(val))
		}
	}
	set(cfg.NormalFG, &th.NormalFG)
	set(cfg.NormalBG, &th.NormalBG)
	set(cfg.SelectedFG, &th.SelectedFG)
	set(cfg.SelectedBG, &th.SelectedBG)
	set(cfg.PromptFG, &th.PromptFG)
	set(cfg.PromptBG, &th.PromptBG)
	set(cfg.ArrowFG, &th.ArrowFG)
	set(cfg.RuleFG, &th.RuleFG)
	set(cfg.HelpKey, &th.HelpKey)
	set(cfg.HelpValue, &th.HelpValue)
	return th
}

// WithOverrides replaces the normal and selected colors with the ones given
// on the command line. Empty values keep the theme's color.
func (t Theme) WithOverrides(normalFG, normalBG, selectedFG, selectedBG string) Theme {
	set := func(val string, dst *color.Color) {
		if val = strings.TrimSpace(val); val != "" {
			*dst = lipgloss.Color(val)
		}
	}
	set(normalFG, &t.NormalFG)
	set(normalBG, &t.NormalBG)
	set(selectedFG, &t.SelectedFG)
	set(selectedBG, &t.SelectedBG)
	if selectedFG != "" {
		set(selectedFG, &t.PromptFG)
	}
	if selectedBG != "" {
		set(selectedBG, &t.PromptBG)
	}
	return t
}

// styles derives the lipgloss styles used by the view.
type styles struct {
	normal   lipgloss.Style
	selected lipgloss.Style
	prompt   lipgloss.Style
	arrow    lipgloss.Style
	rule     lipgloss.Style
}

func stylesFor(t Theme) styles {
	if t.Plain() {
		return styles{
			normal:   lipgloss.NewStyle(),
			selected: lipgloss.NewStyle().Reverse(true),
			prompt:   lipgloss.NewStyle().Reverse(true),
			arrow:    lipgloss.NewStyle(),
			rule:     lipgloss.NewStyle(),
		}
	}
	return styles{
		normal:   colored(t.NormalFG, t.NormalBG),
		selected: colored(t.SelectedFG, t.SelectedBG),
		prompt:   colored(t.PromptFG, t.PromptBG),
		arrow:    colored(t.ArrowFG, t.NormalBG),
		rule:     colored(t.RuleFG, t.NormalBG),
	}
}

func colored(fg, bg color.Color) lipgloss.Style {
	s := lipgloss.NewStyle()
	if fg != nil {
		s = s.Foreground(fg)
	}
	if bg != nil {
		s = s.Background(bg)
	}
	return s
}
