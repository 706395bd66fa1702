// Package highlight colorizes source lines with chroma.
package highlight

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlighter colorizes a block of lines of a named file. ok is false
// when the file type is not supported or highlighting failed.
type Highlighter interface {
	Highlight(filename string, lines []string) (out []string, ok bool)
}

// Chroma is a Highlighter backed by chroma lexers and a 256-color
// terminal formatter.
type Chroma struct {
	style     *chroma.Style
	formatter chroma.Formatter
}

// NewChroma creates a highlighter using the named chroma style. Unknown
// styles fall back to chroma's default.
func NewChroma(styleName string) *Chroma {
	return &Chroma{
		style:     styles.Get(styleName),
		formatter: formatters.Get("terminal256"),
	}
}

// Highlight returns one colored line per input line. Every output line is
// formatted on its own so escapes never span line breaks.
func (c *Chroma) Highlight(filename string, lines []string) ([]string, bool) {
	lexer := lexers.Match(filepath.Base(filename))
	if lexer == nil {
		return nil, false
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, strings.Join(lines, "\n")+"\n")
	if err != nil {
		return nil, false
	}

	tokenLines := chroma.SplitTokensIntoLines(it.Tokens())
	if len(tokenLines) < len(lines) {
		return nil, false
	}

	out := make([]string, len(lines))
	for i := range lines {
		tokens := trimNewline(tokenLines[i])

		var b strings.Builder
		if err := c.formatter.Format(&b, c.style, chroma.Literator(tokens...)); err != nil {
			return nil, false
		}
		out[i] = b.String()
	}
	return out, true
}

func trimNewline(tokens []chroma.Token) []chroma.Token {
	out := make([]chroma.Token, 0, len(tokens))
	for _, tok := range tokens {
		tok.Value = strings.TrimSuffix(tok.Value, "\n")
		if tok.Value != "" {
			out = append(out, tok)
		}
	}
	return out
}
