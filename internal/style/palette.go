package style

import "github.com/fatih/color"

// PaletteConfig names the color of every styled element.
type PaletteConfig struct {
	Index  string
	File   string
	Line   string
	Banner string
	Error  string
	// Alt styles the metadata columns of every other table row.
	Alt string
}

// DefaultPaletteConfig returns the built-in colors.
func DefaultPaletteConfig() PaletteConfig {
	return PaletteConfig{
		Index:  "yellow",
		File:   "magenta",
		Line:   "green",
		Banner: "cyan",
		Error:  "red",
		Alt:    "bold",
	}
}

// Palette holds the resolved styles used by the renderers.
type Palette struct {
	Index  Color
	File   Color
	Line   Color
	Banner Color
	Error  Color
	Alt    Color
	Header Color
	Emph   Color
	Dim    Color
}

// NewPalette resolves every configured color.
func NewPalette(cfg PaletteConfig) (*Palette, error) {
	p := &Palette{
		Header: namedColor{c: color.New(color.Bold, color.Underline)},
		Emph:   namedColor{c: color.New(color.Bold)},
		Dim:    namedColor{c: color.New(color.Faint)},
	}

	for _, field := range []struct {
		dst  *Color
		name string
	}{
		{&p.Index, cfg.Index},
		{&p.File, cfg.File},
		{&p.Line, cfg.Line},
		{&p.Banner, cfg.Banner},
		{&p.Error, cfg.Error},
		{&p.Alt, cfg.Alt},
	} {
		c, err := ParseColor(field.name)
		if err != nil {
			return nil, err
		}
		*field.dst = c
	}
	return p, nil
}

// Plain returns a palette that never emits escapes.
func Plain() *Palette {
	return &Palette{
		Index:  plain{},
		File:   plain{},
		Line:   plain{},
		Banner: plain{},
		Error:  plain{},
		Alt:    plain{},
		Header: plain{},
		Emph:   plain{},
		Dim:    plain{},
	}
}
