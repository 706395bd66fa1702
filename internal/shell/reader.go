package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// LineReader reads one line of user input after showing a prompt. It
// returns io.EOF when input ends.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// NewReader returns a line-editing reader when in is a terminal and a
// plain line scanner otherwise.
func NewReader(in *os.File, out io.Writer) LineReader {
	if term.IsTerminal(int(in.Fd())) {
		return newTermReader(in, out)
	}
	return NewScanReader(in, out)
}

// termReader edits lines in raw mode and keeps a history across prompts.
// The terminal is put back into its original mode after each line so
// commands and children see a normal tty.
type termReader struct {
	fd int
	t  *term.Terminal
}

func newTermReader(in *os.File, out io.Writer) *termReader {
	rw := struct {
		io.Reader
		io.Writer
	}{in, out}
	return &termReader{fd: int(in.Fd()), t: term.NewTerminal(rw, "")}
}

func (r *termReader) ReadLine(prompt string) (string, error) {
	state, err := term.MakeRaw(r.fd)
	if err != nil {
		return "", fmt.Errorf("setting terminal mode: %w", err)
	}
	defer term.Restore(r.fd, state)

	if w, h, err := term.GetSize(r.fd); err == nil {
		r.t.SetSize(w, h)
	}
	r.t.SetPrompt(prompt)
	return r.t.ReadLine()
}

// ScanReader reads newline-terminated lines from a non-interactive
// source.
type ScanReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewScanReader reads from in and writes prompts to out.
func NewScanReader(in io.Reader, out io.Writer) *ScanReader {
	return &ScanReader{scanner: bufio.NewScanner(in), out: out}
}

func (r *ScanReader) ReadLine(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}
