// Package shell runs the interactive prompt over a session.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/AliceAlbano/vgrep/internal/command"
	"github.com/AliceAlbano/vgrep/internal/session"
	"github.com/AliceAlbano/vgrep/internal/style"
	"github.com/AliceAlbano/vgrep/pkg/selector"
)

// Prompt is shown before every interactive command.
const Prompt = "vgrep> "

// State is the position of the shell in its command cycle.
type State int

const (
	AwaitInput State = iota
	Dispatching
	Rendering
	Mutating
	Quit
)

func (s State) String() string {
	switch s {
	case AwaitInput:
		return "await-input"
	case Dispatching:
		return "dispatching"
	case Rendering:
		return "rendering"
	case Mutating:
		return "mutating"
	case Quit:
		return "quit"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Config wires a Shell.
type Config struct {
	Session session.Session
	Env     *command.Env
	Reader  LineReader
	Saver   *session.Saver
	// ErrOut receives diagnostics.
	ErrOut  io.Writer
	Palette *style.Palette
}

// Shell owns the working record list and applies commands to it.
type Shell struct {
	sess    session.Session
	env     *command.Env
	reader  LineReader
	saver   *session.Saver
	errOut  io.Writer
	palette *style.Palette
	state   State
}

// New creates a shell. Confirmation questions are asked through the
// reader.
func New(cfg Config) *Shell {
	s := &Shell{
		sess:    cfg.Session,
		env:     cfg.Env,
		reader:  cfg.Reader,
		saver:   cfg.Saver,
		errOut:  cfg.ErrOut,
		palette: cfg.Palette,
	}
	if s.palette == nil {
		s.palette = style.Plain()
	}
	s.env.Args = s.sess.Args
	s.env.Confirm = s.confirm
	return s
}

// State returns the current state.
func (s *Shell) State() State {
	return s.state
}

// Records returns the working record list.
func (s *Shell) Records() []string {
	return s.sess.Records
}

// Execute parses and runs one selector expression.
func (s *Shell) Execute(ctx context.Context, expr string) error {
	if s.state == Quit {
		return nil
	}
	s.state = Dispatching
	defer func() {
		if s.state != Quit {
			s.state = AwaitInput
		}
	}()

	sel, err := selector.Parse(expr, s.sess.Records)
	if err != nil {
		return err
	}
	out, err := command.Dispatch(ctx, s.env, s.sess.Records, sel)
	if err != nil {
		return err
	}

	switch out.Kind {
	case command.Rendered:
		s.state = Rendering
	case command.Replaced:
		s.state = Mutating
		s.replace(out.Records, out.Args)
	case command.Quit:
		s.state = Quit
	}
	return nil
}

func (s *Shell) replace(records, args []string) {
	s.sess.Records = records
	s.sess.Args = args
	s.sess.SavedAt = time.Now()
	s.env.Args = args
	s.env.Render.SetTitle(strings.Join(args, " "))

	slog.Info("Replacing session records", "records", len(records))
	if s.saver != nil {
		s.saver.Save(s.sess)
	}
}

// Run prompts for commands until the user quits or input ends. Command
// errors are reported and do not end the loop.
func (s *Shell) Run(ctx context.Context) error {
	for s.state != Quit {
		line, err := s.reader.ReadLine(Prompt)
		if errors.Is(err, io.EOF) {
			s.state = Quit
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading command: %w", err)
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		if err := s.Execute(ctx, line); err != nil {
			s.Report(err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

// Report prints err as a one-line diagnostic.
func (s *Shell) Report(err error) {
	slog.Warn("Command failed", "error", err)
	fmt.Fprintln(s.errOut, s.palette.Error.Sprint("vgrep: "+err.Error()))
}

func (s *Shell) confirm(question string) bool {
	answer, err := s.reader.ReadLine(question + " [y/N] ")
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// Close waits for pending session writes.
func (s *Shell) Close() error {
	if s.saver == nil {
		return nil
	}
	return s.saver.Wait()
}
