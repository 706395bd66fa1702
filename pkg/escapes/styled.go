package escapes

import (
	ansi "github.com/leaanthony/go-ansi-parser"
)

// Color represents RGB color values
type Color struct {
	R, G, B uint8
}

// Style contains visual styling information
type Style struct {
	Foreground *Color
	Background *Color
	Bold       bool
	Underline  bool
	Italic     bool
}

// Span is a run of text sharing one style
type Span struct {
	Text  string
	Style Style
}

// HasStyling returns true if the span has any styling applied
func (s Span) HasStyling() bool {
	st := s.Style
	return st.Foreground != nil || st.Background != nil || st.Bold || st.Underline || st.Italic
}

// Spans splits one line of colored text into styled spans. Non-color
// escapes are discarded first; if the remaining sequences cannot be
// parsed the whole line comes back as a single unstyled span.
func Spans(line string) []Span {
	if line == "" {
		return nil
	}

	elements, err := ansi.Parse(OnlySGR(line))
	if err != nil {
		return []Span{{Text: Strip(line)}}
	}

	spans := make([]Span, 0, len(elements))
	for _, element := range elements {
		if element.Label == "" {
			continue
		}
		spans = append(spans, Span{
			Text:  element.Label,
			Style: extractStyle(element),
		})
	}
	return spans
}

func extractStyle(element *ansi.StyledText) Style {
	style := Style{
		Bold:      element.Bold(),
		Underline: element.Underlined(),
		Italic:    element.Italic(),
	}

	if element.FgCol != nil {
		style.Foreground = &Color{
			R: element.FgCol.Rgb.R,
			G: element.FgCol.Rgb.G,
			B: element.FgCol.Rgb.B,
		}
	}
	if element.BgCol != nil {
		style.Background = &Color{
			R: element.BgCol.Rgb.R,
			G: element.BgCol.Rgb.G,
			B: element.BgCol.Rgb.B,
		}
	}
	return style
}
