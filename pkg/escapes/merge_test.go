package escapes

import (
	"strings"
	"testing"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want string
	}{
		{
			name: "identical plain text",
			a:    "foo bar",
			b:    "foo bar",
			want: "foo bar",
		},
		{
			name: "escapes from both sides",
			a:    "foo \x1b[31mbar\x1b[0m baz",
			b:    "\x1b[34mfoo\x1b[0m bar baz",
			want: "\x1b[34mfoo\x1b[0m \x1b[31mbar\x1b[0m baz",
		},
		{
			name: "same position applies second string first",
			a:    "\x1b[1mx\x1b[0m",
			b:    "\x1b[32mx\x1b[0m",
			want: "\x1b[32m\x1b[1mx\x1b[0m\x1b[0m",
		},
		{
			name: "match color overrides token color",
			a:    "x \x1b[1;31mneedle\x1b[m",
			b:    "\x1b[38;5;231mx \x1b[0m\x1b[38;5;148mneedle\x1b[0m",
			want: "\x1b[38;5;231mx \x1b[0m\x1b[38;5;148m\x1b[1;31mneedle\x1b[0m\x1b[m",
		},
		{
			name: "trailing escapes kept",
			a:    "abc\x1b[K",
			b:    "abc\x1b[0m",
			want: "abc\x1b[0m\x1b[K",
		},
		{
			name: "diverging text falls back",
			a:    "foo \x1b[31mbar\x1b[0m",
			b:    "\x1b[34mfoo\x1b[0m baz",
			want: "foo \x1b[31mbar\x1b[0m",
		},
		{
			name: "second string shorter",
			a:    "\x1b[31mfoo bar\x1b[0m",
			b:    "foo",
			want: "\x1b[31mfoo bar\x1b[0m",
		},
		{
			name: "second string longer",
			a:    "foo",
			b:    "foo bar",
			want: "foo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Merge(tt.a, tt.b); got != tt.want {
				t.Errorf("Merge(%q, %q) = %q, want %q", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestMergeKeepsRelativeEscapeOrder(t *testing.T) {
	grep := "\tx := \x1b[01;31m\x1b[Kneedle\x1b[m\x1b[K(1)"
	syntax := "\tx \x1b[38;5;197m:=\x1b[0m \x1b[38;5;148mneedle\x1b[0m(\x1b[38;5;141m1\x1b[0m)"

	got := Merge(grep, syntax)
	if Strip(got) != "\tx := needle(1)" {
		t.Fatalf("merged plain text = %q", Strip(got))
	}

	for _, seq := range []string{"\x1b[01;31m", "\x1b[38;5;197m", "\x1b[38;5;148m", "\x1b[38;5;141m"} {
		if !strings.Contains(got, seq) {
			t.Errorf("merged line misses %q: %q", seq, got)
		}
	}

	if strings.Index(got, "\x1b[38;5;197m") > strings.Index(got, "\x1b[01;31m") {
		t.Errorf("syntax escape before the match escape moved: %q", got)
	}
	if !strings.Contains(got, "\x1b[38;5;148m\x1b[01;31m\x1b[Kneedle") {
		t.Errorf("token escape should precede the match escape at the same column: %q", got)
	}
}
