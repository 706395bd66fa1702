// Package escapes handles terminal color-escape sequences embedded in
// search output: scanning, stripping, measuring and merging them.
package escapes

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const esc = 0x1b

// Len returns the byte length of the escape sequence starting at s[i],
// or 0 if no sequence starts there.
func Len(s string, i int) int {
	if i >= len(s) || s[i] != esc {
		return 0
	}
	_, _, n, _ := ansi.DecodeSequence(s[i:], ansi.NormalState, nil)
	return n
}

// IsSGR reports whether seq is a Select Graphic Rendition sequence (ESC [ ... m).
func IsSGR(seq string) bool {
	return len(seq) >= 3 && seq[0] == esc && seq[1] == '[' && seq[len(seq)-1] == 'm'
}

// Strip removes every escape sequence from s.
func Strip(s string) string {
	if strings.IndexByte(s, esc) < 0 {
		return s
	}
	return ansi.Strip(s)
}

// OnlySGR drops every escape sequence except color/style ones, so grep's
// "erase in line" codes do not reach the styled parser. The bare reset
// ESC[m is spelled out as ESC[0m.
func OnlySGR(s string) string {
	if strings.IndexByte(s, esc) < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if n := Len(s, i); n > 0 {
			switch seq := s[i : i+n]; {
			case seq == "\x1b[m":
				b.WriteString("\x1b[0m")
			case IsSGR(seq):
				b.WriteString(seq)
			}
			i += n
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// Width returns the display width of s, treating escapes as zero-width.
func Width(s string) int {
	return ansi.StringWidth(s)
}

// PadRight pads s with spaces to the given display width.
func PadRight(s string, width int) string {
	if w := Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// PadLeft right-aligns s within the given display width.
func PadLeft(s string, width int) string {
	if w := Width(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}
