package render

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/AliceAlbano/vgrep/pkg/escapes"
	"github.com/AliceAlbano/vgrep/pkg/record"
)

// highlightReach bounds how far the highlighted block may extend past the
// context window in each direction.
const highlightReach = 30

// lineCache holds file contents for the duration of one Context call.
type lineCache map[string][]string

func (c lineCache) lines(file string) ([]string, error) {
	if lines, ok := c[file]; ok {
		return lines, nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", file, err)
	}
	text := strings.TrimSuffix(string(data), "\n")
	var lines []string
	if len(data) > 0 {
		lines = strings.Split(text, "\n")
	}
	c[file] = lines
	return lines, nil
}

// Context renders n lines of surrounding file content for each selected
// record. Records that cannot be shown produce an error line in place of
// their block.
func (r *Renderer) Context(list []string, indices []int, n int) string {
	p := r.opts.Palette
	cache := make(lineCache)

	var b strings.Builder
	for _, i := range indices {
		if err := r.contextBlock(&b, cache, i, list[i], n); err != nil {
			slog.Warn("Cannot show context", "index", i, "error", err)
			fmt.Fprintf(&b, "%s\n", p.Error.Sprint(fmt.Sprintf("%d: %v", i, err)))
		}
	}
	return b.String()
}

func (r *Renderer) contextBlock(b *strings.Builder, cache lineCache, index int, raw string, n int) error {
	p := r.opts.Palette

	rec, err := record.Parse(raw)
	if err != nil {
		return err
	}
	lines, err := cache.lines(rec.File)
	if err != nil {
		return err
	}
	if rec.Line > len(lines) {
		return fmt.Errorf("%s has %d lines, match is on line %d", rec.File, len(lines), rec.Line)
	}

	n = min(n, len(lines))
	start := max(rec.Line-n, 1)
	end := min(rec.Line+n, len(lines))
	body := r.contextBody(rec, lines, start, end)

	banner := fmt.Sprintf("── %d %s [%d-%d] ──", index, rec.File, start, end)
	fmt.Fprintf(b, "%s\n", p.Banner.Sprint(banner))

	width := len(strconv.Itoa(end))
	for k, text := range body {
		num := escapes.PadLeft(strconv.Itoa(start+k), width)
		if start+k == rec.Line {
			num = p.Emph.Sprint(num)
		} else {
			num = p.Line.Sprint(num)
		}
		fmt.Fprintf(b, "%s %s\n", num, text)
	}
	return nil
}

// contextBody returns the lines start..end (1-based, inclusive), with the
// match line taken from the search output.
func (r *Renderer) contextBody(rec record.Record, lines []string, start, end int) []string {
	body := make([]string, end-start+1)
	copy(body, lines[start-1:end])
	match := rec.Line - start

	if hl := r.opts.Highlighter; hl != nil {
		// extend to blank-line boundaries so the lexer starts on a clean
		// statement
		from := start
		for k := 0; k < highlightReach && from > 1 && strings.TrimSpace(lines[from-2]) != ""; k++ {
			from--
		}
		to := end
		for k := 0; k < highlightReach && to < len(lines) && strings.TrimSpace(lines[to]) != ""; k++ {
			to++
		}

		colored, ok := hl.Highlight(rec.File, lines[from-1:to])
		if ok && len(colored) == to-from+1 {
			copy(body, colored[start-from:end-from+1])
			body[match] = escapes.Merge(rec.Content, body[match])
			return body
		}
		slog.Debug("Highlighting unavailable, using plain text", "file", rec.File)
	}

	body[match] = rec.Content
	return body
}
