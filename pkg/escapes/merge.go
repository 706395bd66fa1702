package escapes

import "strings"

// Merge combines two renderings of the same plain text that carry
// different escape sequences, e.g. a search tool's match coloring (a) and
// a syntax highlighter's output (b).
//
// Both strings are walked in lock-step. An escape at the current position
// of either string is copied to the output immediately, b's first, so
// a's attributes win where both sides set the same one. Plain
// runs are compared up to the next escape of either side and emitted once.
// If the plain texts diverge, a is returned unchanged.
func Merge(a, b string) string {
	var out strings.Builder
	out.Grow(len(a) + len(b))

	i, j := 0, 0
	for {
		if n := Len(b, j); n > 0 {
			out.WriteString(b[j : j+n])
			j += n
			continue
		}
		if n := Len(a, i); n > 0 {
			out.WriteString(a[i : i+n])
			i += n
			continue
		}
		if i == len(a) && j == len(b) {
			return out.String()
		}

		n := min(plainRun(a, i), plainRun(b, j))
		if n == 0 || a[i:i+n] != b[j:j+n] {
			return a
		}
		out.WriteString(a[i : i+n])
		i += n
		j += n
	}
}

func plainRun(s string, i int) int {
	j := i
	for j < len(s) && s[j] != esc {
		j++
	}
	return j - i
}
