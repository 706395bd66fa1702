// Package style maps configured color names to terminal styles.
package style

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Color colorizes text
type Color interface {
	Sprint(text string) string
}

// namedColor wraps a fatih/color style
type namedColor struct {
	c *color.Color
}

func (n namedColor) Sprint(text string) string {
	return n.c.Sprint(text)
}

// rgbColor renders a 24-bit foreground color
type rgbColor struct {
	r, g, b uint8
	bold    bool
}

func (c rgbColor) Sprint(text string) string {
	if color.NoColor {
		return text
	}
	prefix := ""
	if c.bold {
		prefix = "\x1b[1m"
	}
	return fmt.Sprintf("%s\x1b[38;2;%d;%d;%dm%s\x1b[0m", prefix, c.r, c.g, c.b, text)
}

// plain leaves text untouched
type plain struct{}

func (plain) Sprint(text string) string { return text }

var rgbRegex = regexp.MustCompile(`^#([a-fA-F0-9]{2})([a-fA-F0-9]{2})([a-fA-F0-9]{2})$`)

var (
	colorCache = make(map[string]Color, 32)
	colorMutex sync.RWMutex
)

var predefinedColors = map[string]color.Attribute{
	"black":   color.FgBlack,
	"red":     color.FgRed,
	"green":   color.FgGreen,
	"yellow":  color.FgYellow,
	"blue":    color.FgBlue,
	"magenta": color.FgMagenta,
	"cyan":    color.FgCyan,
	"white":   color.FgWhite,
	"gray":    color.FgHiBlack,
	"default": color.Reset,
}

// ParseColor resolves a color name ("green", "bold red", "bold", "#1b1cbf").
func ParseColor(name string) (Color, error) {
	colorMutex.RLock()
	if cached, exists := colorCache[name]; exists {
		colorMutex.RUnlock()
		return cached, nil
	}
	colorMutex.RUnlock()

	bold := false
	desc := strings.ToLower(strings.TrimSpace(name))
	if rest, ok := strings.CutPrefix(desc, "bold "); ok {
		bold = true
		desc = strings.TrimSpace(rest)
	}

	var result Color
	if m := rgbRegex.FindStringSubmatch(desc); m != nil {
		r, _ := strconv.ParseUint(m[1], 16, 8)
		g, _ := strconv.ParseUint(m[2], 16, 8)
		b, _ := strconv.ParseUint(m[3], 16, 8)
		result = rgbColor{r: uint8(r), g: uint8(g), b: uint8(b), bold: bold}
	} else if attr, exists := predefinedColors[desc]; exists {
		c := color.New(attr)
		if bold {
			c.Add(color.Bold)
		}
		result = namedColor{c: c}
	} else if desc == "bold" {
		result = namedColor{c: color.New(color.Bold)}
	} else if desc == "" || desc == "none" {
		result = plain{}
	} else {
		return nil, fmt.Errorf("unknown color: %s", name)
	}

	colorMutex.Lock()
	colorCache[name] = result
	colorMutex.Unlock()

	return result, nil
}
