// Package pager shows rendered output page by page.
package pager

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/AliceAlbano/vgrep/internal/proc"
	"golang.org/x/term"
)

// Pager displays a block of rendered text.
type Pager interface {
	Page(content string) error
}

// Mode selects the pager implementation.
type Mode string

const (
	ModeExternal Mode = "external"
	ModeBuiltin  Mode = "builtin"
	ModeNone     Mode = "none"
)

// Options configures New.
type Options struct {
	Mode    Mode
	Command string
	Out     *os.File
}

// New returns the pager for opts. Output that is not a terminal is never
// paged.
func New(opts Options) (Pager, error) {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	if !term.IsTerminal(int(out.Fd())) {
		return &Writer{W: out}, nil
	}

	switch opts.Mode {
	case ModeExternal, "":
		return &External{Command: opts.Command, Stdout: out, Stderr: os.Stderr}, nil
	case ModeBuiltin:
		return NewBuiltin(), nil
	case ModeNone:
		return &Writer{W: out}, nil
	default:
		return nil, fmt.Errorf("unknown pager mode %q", opts.Mode)
	}
}

// Writer writes content directly, without paging.
type Writer struct {
	W io.Writer
}

func (p *Writer) Page(content string) error {
	_, err := io.WriteString(p.W, content)
	return err
}

// External pipes content into a pager program such as less.
type External struct {
	Command string
	Stdout  io.Writer
	Stderr  io.Writer
}

func (p *External) Page(content string) error {
	name, args, err := proc.Split(p.Command)
	if err != nil {
		return fmt.Errorf("pager: %w", err)
	}

	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(content)
	cmd.Stdout = p.Stdout
	cmd.Stderr = p.Stderr

	if err := proc.Run(cmd); err != nil {
		return fmt.Errorf("running pager %s: %w", name, err)
	}
	return nil
}
