package pager

import (
	"bytes"
	"os/exec"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	p := &Writer{W: &buf}
	if err := p.Page("a\nb\n"); err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	if buf.String() != "a\nb\n" {
		t.Errorf("Page() wrote %q", buf.String())
	}
}

func TestExternal(t *testing.T) {
	if _, err := exec.LookPath("cat"); err != nil {
		t.Skip("cat not available")
	}

	var out bytes.Buffer
	p := &External{Command: "cat", Stdout: &out}
	if err := p.Page("hello\n"); err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	if out.String() != "hello\n" {
		t.Errorf("pager output = %q, want %q", out.String(), "hello\n")
	}
}

func TestExternalEmptyCommand(t *testing.T) {
	p := &External{Command: "  "}
	if err := p.Page("x"); err == nil {
		t.Error("Page() with empty command should fail")
	}
}

func TestLayout(t *testing.T) {
	lines := layout("\x1b[31mab\x1b[0mc\n\td\n")
	if len(lines) != 2 {
		t.Fatalf("layout() returned %d lines, want 2", len(lines))
	}

	var first string
	for _, c := range lines[0] {
		first += string(c.r)
	}
	if first != "abc" {
		t.Errorf("first line = %q, want %q", first, "abc")
	}
	fg, _, _ := lines[0][0].style.Decompose()
	if fg == tcell.ColorDefault {
		t.Error("colored cell should carry a foreground color")
	}
	if len(lines[1]) != 9 {
		t.Errorf("tab should expand to 8 columns, got line of %d cells", len(lines[1]))
	}

	if got := layout(""); got != nil {
		t.Errorf("layout(\"\") = %v, want nil", got)
	}
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestViewerKeys(t *testing.T) {
	v := &viewer{lines: make([][]cell, 20), height: 6}

	tests := []struct {
		name    string
		ev      *tcell.EventKey
		wantTop int
		quit    bool
	}{
		{"down", key('j'), 1, false},
		{"page down", key(' '), 6, false},
		{"end", key('G'), 15, false},
		{"past end", key('j'), 15, false},
		{"page up", key('b'), 10, false},
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), 9, false},
		{"home", key('g'), 0, false},
		{"past start", key('k'), 0, false},
		{"quit", key('q'), 0, true},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quit := v.handleKey(tt.ev)
			if quit != tt.quit {
				t.Errorf("handleKey() quit = %v, want %v", quit, tt.quit)
			}
			if v.top != tt.wantTop {
				t.Errorf("top = %d, want %d", v.top, tt.wantTop)
			}
		})
	}
}

func TestBuiltinRun(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer screen.Fini()
	screen.SetSize(20, 5)

	screen.InjectKey(tcell.KeyRune, 'j', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	p := &Builtin{}
	if err := p.run(screen, "one\ntwo\nthree\nfour\nfive\nsix\n"); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	r, _, _, _ := screen.GetContent(0, 0)
	if r != 't' {
		t.Errorf("after scrolling, first row starts with %q, want 't'", r)
	}
}
