package style

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func withColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = prev })
}

func TestMatchColor(t *testing.T) {
	withColor(t)

	c, err := ParseColor("green")
	if err != nil {
		t.Fatalf("ParseColor error: %v", err)
	}
	got := c.Sprint("foo")
	want := color.New(color.FgGreen).Sprint("foo")
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestBoldColor(t *testing.T) {
	withColor(t)

	c, err := ParseColor("bold red")
	if err != nil {
		t.Fatalf("ParseColor error: %v", err)
	}
	got := c.Sprint("foo")
	want := color.New(color.FgRed, color.Bold).Sprint("foo")
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestBareBold(t *testing.T) {
	withColor(t)

	c, err := ParseColor("bold")
	if err != nil {
		t.Fatalf("ParseColor error: %v", err)
	}
	got := c.Sprint("foo")
	want := color.New(color.Bold).Sprint("foo")
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestParseRGB(t *testing.T) {
	withColor(t)

	c, err := ParseColor("#1b1cbf")
	if err != nil {
		t.Fatalf("ParseColor error: %v", err)
	}
	if got := c.Sprint("foo"); !strings.Contains(got, "27;28;191") {
		t.Errorf("Expected RGB color with 27;28;191, got %q", got)
	}
}

func TestRGBHonorsNoColor(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	c, err := ParseColor("#102030")
	if err != nil {
		t.Fatalf("ParseColor error: %v", err)
	}
	if got := c.Sprint("foo"); got != "foo" {
		t.Errorf("Expected plain text with NoColor, got %q", got)
	}
}

func TestInvalidColors(t *testing.T) {
	for _, name := range []string{"#1b1cbj", "wat", "bold"} {
		if _, err := ParseColor(name); err == nil {
			t.Errorf("Expected error for %q", name)
		}
	}
}

func TestNoneColor(t *testing.T) {
	withColor(t)

	c, err := ParseColor("none")
	if err != nil {
		t.Fatalf("ParseColor error: %v", err)
	}
	if got := c.Sprint("foo"); got != "foo" {
		t.Errorf("Expected plain text, got %q", got)
	}
}

func TestNewPalette(t *testing.T) {
	if _, err := NewPalette(DefaultPaletteConfig()); err != nil {
		t.Errorf("default palette: %v", err)
	}

	cfg := DefaultPaletteConfig()
	cfg.File = "chartreuse"
	if _, err := NewPalette(cfg); err == nil {
		t.Error("Expected error for an unknown palette color")
	}
}
