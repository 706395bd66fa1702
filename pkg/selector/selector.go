// Package selector parses selector expressions of the form
//
//	<range-part><command-letter><argument>
//
// where the range part is empty (every record), a /regex/ matched against
// the raw record lines, or a list of indices and inclusive ranges
// separated by commas or blanks: "1,4", "2-7", "3:5", "-4", "6-".
package selector

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// DefaultCommand is used when an expression names no command letter.
const DefaultCommand = 's'

// Selection is the result of parsing one expression.
type Selection struct {
	Indices []int
	Command byte
	Arg     string
}

// ParseError reports a malformed expression.
type ParseError struct {
	Input  string // offending substring
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid selector %q: %s", e.Input, e.Reason)
}

// RangeError reports a literal index past the end of the record list.
type RangeError struct {
	Index int
	Len   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("index %d out of range (%d records)", e.Index, e.Len)
}

// Parse parses expr against the current record list. Regex ranges are
// matched against the raw lines, escape sequences included.
func Parse(expr string, lines []string) (Selection, error) {
	rest := strings.TrimLeftFunc(expr, unicode.IsSpace)

	var (
		indices []int
		err     error
	)
	if strings.HasPrefix(rest, "/") {
		indices, rest, err = parseRegex(rest, lines)
	} else {
		end := strings.IndexFunc(rest, func(r rune) bool { return !isRangeRune(r) })
		if end < 0 {
			end = len(rest)
		}
		indices, err = parseRanges(rest[:end], len(lines))
		rest = rest[end:]
	}
	if err != nil {
		return Selection{}, err
	}

	sel := Selection{Indices: indices, Command: DefaultCommand}
	if rest == "" {
		return sel, nil
	}
	if !isLetter(rest[0]) {
		return Selection{}, &ParseError{Input: rest, Reason: "expected a command letter"}
	}
	sel.Command = rest[0]
	sel.Arg = strings.TrimSpace(rest[1:])
	return sel, nil
}

func isRangeRune(r rune) bool {
	return (r >= '0' && r <= '9') || r == ',' || r == '-' || r == ':' || r == ' ' || r == '\t'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// parseRegex consumes "/pattern/" from the start of s. A slash inside the
// pattern is written as \/.
func parseRegex(s string, lines []string) ([]int, string, error) {
	end := -1
	for i := 1; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if s[i] == '/' {
			end = i
			break
		}
	}
	if end < 0 {
		return nil, "", &ParseError{Input: s, Reason: "unterminated regular expression"}
	}

	pattern := strings.ReplaceAll(s[1:end], `\/`, "/")
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, "", &ParseError{Input: s[:end+1], Reason: err.Error()}
	}

	indices := make([]int, 0, len(lines))
	for i, line := range lines {
		if re.MatchString(line) {
			indices = append(indices, i)
		}
	}
	return indices, s[end+1:], nil
}

// parseRanges expands a list of indices and ranges. Reversed ranges such
// as "5-2" select nothing; duplicates are kept in input order.
func parseRanges(s string, n int) ([]int, error) {
	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(tokens) == 0 {
		return all(n), nil
	}

	var indices []int
	for _, tok := range tokens {
		sep := strings.IndexAny(tok, "-:")
		if sep < 0 {
			i, err := parseIndex(tok, tok, n)
			if err != nil {
				return nil, err
			}
			indices = append(indices, i)
			continue
		}

		lo, hi := 0, n-1
		var err error
		if left := tok[:sep]; left != "" {
			if lo, err = parseIndex(left, tok, n); err != nil {
				return nil, err
			}
		}
		if right := tok[sep+1:]; right != "" {
			if hi, err = parseIndex(right, tok, n); err != nil {
				return nil, err
			}
		}
		for i := lo; i <= hi; i++ {
			indices = append(indices, i)
		}
	}
	return indices, nil
}

func parseIndex(s, tok string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if errors.Is(err, strconv.ErrRange) {
		return 0, &RangeError{Index: math.MaxInt, Len: n}
	}
	if err != nil || i < 0 {
		return 0, &ParseError{Input: tok, Reason: "not an index or range"}
	}
	if i >= n {
		return 0, &RangeError{Index: i, Len: n}
	}
	return i, nil
}

func all(n int) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return indices
}
