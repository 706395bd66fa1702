package pager

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/AliceAlbano/vgrep/pkg/escapes"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Builtin is a full-screen pager drawn with tcell, for systems without an
// external pager.
type Builtin struct {
	newScreen func() (tcell.Screen, error)
}

// NewBuiltin creates a pager on the process' terminal.
func NewBuiltin() *Builtin {
	return &Builtin{newScreen: tcell.NewScreen}
}

type cell struct {
	r     rune
	style tcell.Style
}

// viewer holds the scroll state of one Page call
type viewer struct {
	lines  [][]cell
	top    int
	height int
}

func (p *Builtin) Page(content string) error {
	screen, err := p.newScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	return p.run(screen, content)
}

// run drives an initialized screen until the user quits.
func (p *Builtin) run(screen tcell.Screen, content string) error {
	screen.SetStyle(tcell.StyleDefault)

	v := &viewer{lines: layout(content)}
	for {
		_, v.height = screen.Size()
		v.draw(screen)

		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return nil
			}
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventError:
			slog.Error("Pager screen error", "error", ev)
			return ev
		}
	}
}

// pageHeight leaves the bottom row for the status line.
func (v *viewer) pageHeight() int {
	return max(v.height-1, 1)
}

func (v *viewer) maxTop() int {
	return max(len(v.lines)-v.pageHeight(), 0)
}

func (v *viewer) scroll(delta int) {
	v.top = min(max(v.top+delta, 0), v.maxTop())
}

// handleKey applies one key press and reports whether to quit.
func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		v.scroll(-1)
	case tcell.KeyDown, tcell.KeyEnter:
		v.scroll(1)
	case tcell.KeyPgUp:
		v.scroll(-v.pageHeight())
	case tcell.KeyPgDn:
		v.scroll(v.pageHeight())
	case tcell.KeyHome:
		v.top = 0
	case tcell.KeyEnd:
		v.top = v.maxTop()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case 'j':
			v.scroll(1)
		case 'k':
			v.scroll(-1)
		case ' ', 'f':
			v.scroll(v.pageHeight())
		case 'b':
			v.scroll(-v.pageHeight())
		case 'g':
			v.top = 0
		case 'G':
			v.top = v.maxTop()
		}
	}
	return false
}

func (v *viewer) draw(screen tcell.Screen) {
	screen.Clear()
	width, _ := screen.Size()

	for y := 0; y < v.pageHeight() && v.top+y < len(v.lines); y++ {
		x := 0
		for _, c := range v.lines[v.top+y] {
			w := runewidth.RuneWidth(c.r)
			if w <= 0 {
				w = 1
			}
			if x+w > width {
				break
			}
			screen.SetContent(x, y, c.r, nil, c.style)
			x += w
		}
	}

	status := fmt.Sprintf(" lines %d-%d of %d  (q to quit)",
		min(v.top+1, len(v.lines)), min(v.top+v.pageHeight(), len(v.lines)), len(v.lines))
	statusStyle := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range status {
		if x >= width {
			break
		}
		screen.SetContent(x, v.height-1, r, nil, statusStyle)
		x += max(runewidth.RuneWidth(r), 1)
	}
	screen.Show()
}

// layout converts colored text into rows of styled cells.
func layout(content string) [][]cell {
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return nil
	}

	rows := strings.Split(content, "\n")
	lines := make([][]cell, len(rows))
	for i, row := range rows {
		for _, span := range escapes.Spans(row) {
			style := toTcell(span.Style)
			for _, r := range expandTabs(span.Text, len(lines[i])) {
				lines[i] = append(lines[i], cell{r: r, style: style})
			}
		}
	}
	return lines
}

// expandTabs replaces tabs with spaces up to the next 8-column stop,
// counting from column col.
func expandTabs(s string, col int) []rune {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '\t' {
			n := 8 - (col+len(out))%8
			for j := 0; j < n; j++ {
				out = append(out, ' ')
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

func toTcell(s escapes.Style) tcell.Style {
	style := tcell.StyleDefault.Bold(s.Bold).Underline(s.Underline).Italic(s.Italic)
	if fg := s.Foreground; fg != nil {
		style = style.Foreground(tcell.NewRGBColor(int32(fg.R), int32(fg.G), int32(fg.B)))
	}
	if bg := s.Background; bg != nil {
		style = style.Background(tcell.NewRGBColor(int32(bg.R), int32(bg.G), int32(bg.B)))
	}
	return style
}
