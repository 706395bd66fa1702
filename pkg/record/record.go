// Package record recovers file, line-number and content boundaries from
// search output lines.
//
// Three delimiter conventions are understood:
//
//	file\0line\0content   (NUL separated, e.g. git grep -z)
//	file:line:content     (plain grep -n)
//	file\0line-content    (context lines, e.g. grep -Z -C)
package record

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/AliceAlbano/vgrep/pkg/escapes"
)

// ErrFormat is returned for lines without a recoverable file/line split.
var ErrFormat = errors.New("unrecognized record format")

// lineDelimiters are tried in order after the file delimiter.
var lineDelimiters = []byte{0, ':', '-'}

// Record is one parsed match line.
type Record struct {
	Raw     string
	File    string // escapes removed
	Line    int    // 1-based
	Content string // untouched, escapes included
}

// Locate returns the exclusive end offsets of the file and the line-number
// fields in line, or -1 for a field that cannot be determined.
func Locate(line string) (fileEnd, lineEnd int) {
	fileEnd = strings.IndexByte(line, 0)
	if fileEnd < 0 {
		fileEnd = strings.IndexByte(line, ':')
	}
	if fileEnd < 0 {
		return -1, -1
	}

	start := fileEnd + 1
	rest := line[start:]
	for _, delim := range lineDelimiters {
		i := strings.IndexByte(rest, delim)
		if i >= 0 && isNumber(rest[:i]) {
			return fileEnd, start + i
		}
	}
	return fileEnd, -1
}

// isNumber reports whether span holds at least one digit and nothing
// else once escape sequences are removed.
func isNumber(span string) bool {
	plain := escapes.Strip(span)
	if plain == "" {
		return false
	}
	for i := 0; i < len(plain); i++ {
		if plain[i] < '0' || plain[i] > '9' {
			return false
		}
	}
	return true
}

// Parse splits line into a Record.
func Parse(line string) (Record, error) {
	fileEnd, lineEnd := Locate(line)
	if fileEnd < 0 || lineEnd < 0 {
		return Record{}, fmt.Errorf("%w: %q", ErrFormat, escapes.Strip(line))
	}

	n, err := strconv.Atoi(escapes.Strip(line[fileEnd+1 : lineEnd]))
	if err != nil || n < 1 {
		return Record{}, fmt.Errorf("%w: bad line number in %q", ErrFormat, escapes.Strip(line))
	}

	file := escapes.Strip(line[:fileEnd])
	if file == "" {
		return Record{}, fmt.Errorf("%w: empty file name in %q", ErrFormat, escapes.Strip(line))
	}

	return Record{
		Raw:     line,
		File:    file,
		Line:    n,
		Content: line[lineEnd+1:],
	}, nil
}

// Parsed reports whether line can be parsed, without building a Record.
func Parsed(line string) bool {
	_, err := Parse(line)
	return err == nil
}
