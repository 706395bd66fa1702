// Package render formats record lists for display.
package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/AliceAlbano/vgrep/internal/highlight"
	"github.com/AliceAlbano/vgrep/internal/style"
	"github.com/AliceAlbano/vgrep/pkg/dirtree"
	"github.com/AliceAlbano/vgrep/pkg/escapes"
	"github.com/AliceAlbano/vgrep/pkg/record"
)

// Options controls the look of rendered output.
type Options struct {
	Header  bool
	Palette *style.Palette
	// Title describes the search that produced the records.
	Title string
	// Highlighter is nil when syntax highlighting is disabled.
	Highlighter highlight.Highlighter
}

// Renderer turns records into display text.
type Renderer struct {
	opts Options
}

// New creates a renderer. A nil palette renders without colors.
func New(opts Options) *Renderer {
	if opts.Palette == nil {
		opts.Palette = style.Plain()
	}
	return &Renderer{opts: opts}
}

// Palette returns the colors in use.
func (r *Renderer) Palette() *style.Palette {
	return r.opts.Palette
}

// SetTitle updates the search description shown above tables.
func (r *Renderer) SetTitle(title string) {
	r.opts.Title = title
}

type tableRow struct {
	index   string
	file    string
	line    string
	content string
}

// Table renders the records at indices of list, labelled with their
// indices. Records that do not parse are shown raw with placeholder
// columns.
func (r *Renderer) Table(list []string, indices []int) string {
	p := r.opts.Palette

	rows := make([]tableRow, 0, len(indices))
	for _, i := range indices {
		row := tableRow{index: strconv.Itoa(i)}
		rec, err := record.Parse(list[i])
		if err != nil {
			row.file, row.line, row.content = "-", "-", list[i]
		} else {
			row.file, row.line, row.content = rec.File, strconv.Itoa(rec.Line), rec.Content
		}
		rows = append(rows, row)
	}

	var header tableRow
	if r.opts.Header {
		header = tableRow{index: "Index", file: "File", line: "Line", content: "Content"}
	}
	wIndex, wFile, wLine := escapes.Width(header.index), escapes.Width(header.file), escapes.Width(header.line)
	for _, row := range rows {
		wIndex = max(wIndex, escapes.Width(row.index))
		wFile = max(wFile, escapes.Width(row.file))
		wLine = max(wLine, escapes.Width(row.line))
	}

	var b strings.Builder
	if r.opts.Header {
		r.writeTitle(&b, len(rows))
		fmt.Fprintf(&b, "%s %s %s %s\n",
			p.Header.Sprint(escapes.PadLeft(header.index, wIndex)),
			p.Header.Sprint(escapes.PadRight(header.file, wFile)),
			p.Header.Sprint(escapes.PadLeft(header.line, wLine)),
			p.Header.Sprint(header.content))
	}
	for k, row := range rows {
		emph := identity
		if k%2 == 1 {
			emph = p.Alt.Sprint
		}
		fmt.Fprintf(&b, "%s %s %s %s\n",
			escapes.PadLeft(p.Index.Sprint(emph(row.index)), wIndex),
			escapes.PadRight(p.File.Sprint(emph(row.file)), wFile),
			escapes.PadLeft(p.Line.Sprint(emph(row.line)), wLine),
			row.content)
	}
	return b.String()
}

func identity(s string) string { return s }

func (r *Renderer) writeTitle(b *strings.Builder, n int) {
	if r.opts.Title == "" {
		return
	}
	noun := "matches"
	if n == 1 {
		noun = "match"
	}
	fmt.Fprintf(b, "%s\n", r.opts.Palette.Emph.Sprint(fmt.Sprintf("%d %s for %q", n, noun, r.opts.Title)))
}

// Files renders the number of selected records per file, sorted by path.
func (r *Renderer) Files(list []string, indices []int) string {
	p := r.opts.Palette

	counts := make(map[string]int)
	for _, i := range indices {
		file := "-"
		if rec, err := record.Parse(list[i]); err == nil {
			file = rec.File
		}
		counts[file]++
	}

	files := make([]string, 0, len(counts))
	for file := range counts {
		files = append(files, file)
	}
	sort.Strings(files)

	wCount := 0
	if r.opts.Header {
		wCount = len("Matches")
	}
	for _, file := range files {
		wCount = max(wCount, len(strconv.Itoa(counts[file])))
	}

	var b strings.Builder
	if r.opts.Header {
		fmt.Fprintf(&b, "%s %s\n",
			p.Header.Sprint(escapes.PadLeft("Matches", wCount)),
			p.Header.Sprint("File"))
	}
	for _, file := range files {
		fmt.Fprintf(&b, "%s %s\n",
			escapes.PadLeft(strconv.Itoa(counts[file]), wCount),
			p.File.Sprint(file))
	}
	return b.String()
}

// Tree renders the directories holding the selected records with their
// own and subtree counts. Directories below depth are folded into their
// ancestor at that depth.
func (r *Renderer) Tree(list []string, indices []int, depth int) string {
	p := r.opts.Palette

	files := make([]string, 0, len(indices))
	for _, i := range indices {
		if rec, err := record.Parse(list[i]); err == nil {
			files = append(files, rec.File)
		}
	}
	rows := dirtree.Build(files, depth).Rows()

	wOwn, wSub := 0, 0
	if r.opts.Header {
		wOwn, wSub = len("Own"), len("Subtree")
	}
	for _, row := range rows {
		wOwn = max(wOwn, len(strconv.Itoa(row.Count.Own)))
		wSub = max(wSub, len(strconv.Itoa(row.Count.Subtree)))
	}

	var b strings.Builder
	if r.opts.Header {
		fmt.Fprintf(&b, "%s %s %s\n",
			p.Header.Sprint(escapes.PadLeft("Own", wOwn)),
			p.Header.Sprint(escapes.PadLeft("Subtree", wSub)),
			p.Header.Sprint("Directory"))
	}
	for _, row := range rows {
		var name string
		switch parent := row.Parent(); {
		case row.Path == "":
			name = p.File.Sprint(".")
		case parent == "":
			name = p.File.Sprint(row.Base())
		default:
			name = p.Dim.Sprint(parent+"/") + p.File.Sprint(row.Base())
		}
		fmt.Fprintf(&b, "%s %s %s\n",
			escapes.PadLeft(strconv.Itoa(row.Count.Own), wOwn),
			escapes.PadLeft(strconv.Itoa(row.Count.Subtree), wSub),
			name)
	}
	return b.String()
}
