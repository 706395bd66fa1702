package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AliceAlbano/vgrep/internal/pager"
	"github.com/AliceAlbano/vgrep/internal/style"
	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

type Config struct {
	Core    CoreConfig    `toml:"core"`
	Search  SearchConfig  `toml:"search"`
	Display DisplayConfig `toml:"display"`
	Pager   PagerConfig   `toml:"pager"`
	Colors  ColorConfig   `toml:"colors"`
}

type CoreConfig struct {
	Editor           string `toml:"editor"`
	ContextLines     int    `toml:"context_lines"`
	TreeDepth        int    `toml:"tree_depth"`
	ConfirmThreshold int    `toml:"confirm_threshold"`
}

type SearchConfig struct {
	Git        bool `toml:"git"`
	Submodules bool `toml:"submodules"`
}

type DisplayConfig struct {
	Header         bool   `toml:"header"`
	Highlight      bool   `toml:"highlight"`
	HighlightStyle string `toml:"highlight_style"`
}

type PagerConfig struct {
	Enabled bool   `toml:"enabled"`
	Mode    string `toml:"mode"` // "external" or "builtin"
	Command string `toml:"command"`
}

type ColorConfig struct {
	Index  string `toml:"index"`
	File   string `toml:"file"`
	Line   string `toml:"line"`
	Banner string `toml:"banner"`
	Error  string `toml:"error"`
	Alt    string `toml:"alternate"`
}

func (c ColorConfig) palette() style.PaletteConfig {
	return style.PaletteConfig{
		Index:  c.Index,
		File:   c.File,
		Line:   c.Line,
		Banner: c.Banner,
		Error:  c.Error,
		Alt:    c.Alt,
	}
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.toml")
}

func NewDefaultConfig() *Config {
	colors := style.DefaultPaletteConfig()
	return &Config{
		Core: CoreConfig{
			Editor:           "",
			ContextLines:     10,
			TreeDepth:        10,
			ConfirmThreshold: 3,
		},
		Search: SearchConfig{
			Git:        true,
			Submodules: true,
		},
		Display: DisplayConfig{
			Header:         true,
			Highlight:      true,
			HighlightStyle: "monokai",
		},
		Pager: PagerConfig{
			Enabled: true,
			Mode:    string(pager.ModeExternal),
			Command: "less -FRX",
		},
		Colors: ColorConfig{
			Index:  colors.Index,
			File:   colors.File,
			Line:   colors.Line,
			Banner: colors.Banner,
			Error:  colors.Error,
			Alt:    colors.Alt,
		},
	}
}

func LoadConfigFromFile(path string) (*Config, error) {
	config := NewDefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil // no config file, return defaults
	}

	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("failed to decode TOML config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

func (c *Config) validate() error {
	switch pager.Mode(c.Pager.Mode) {
	case pager.ModeExternal, pager.ModeBuiltin:
	default:
		return fmt.Errorf("pager.mode must be %q or %q, got %q", pager.ModeExternal, pager.ModeBuiltin, c.Pager.Mode)
	}
	if c.Core.ContextLines < 0 {
		return fmt.Errorf("core.context_lines must not be negative")
	}
	if c.Core.TreeDepth < 0 {
		return fmt.Errorf("core.tree_depth must not be negative")
	}
	return nil
}
