// Package proc runs interactive child processes (editor, pager, search)
// in the foreground of the terminal.
package proc

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"strings"
)

const defaultEditor = "vi"

// Run starts cmd and waits for it. While the child runs, interrupts are
// caught and dropped by this process so that Ctrl-C only reaches the
// child. Caught signals are reset to their default in the child on exec,
// which would not be the case for ignored ones.
func Run(cmd *exec.Cmd) error {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	defer signal.Stop(sigs)

	return cmd.Run()
}

// Split breaks a configured command line such as "less -FRX" into the
// program and its arguments.
func Split(command string) (string, []string, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("empty command")
	}
	return fields[0], fields[1:], nil
}

// EditorCommand picks the editor: the configured one, then $EDITOR, then vi.
func EditorCommand(configured string) string {
	if strings.TrimSpace(configured) != "" {
		return configured
	}
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	return defaultEditor
}

// Editor opens files at a given line.
type Editor struct {
	Command string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

// NewEditor creates an Editor attached to the process' terminal.
func NewEditor(command string) *Editor {
	return &Editor{
		Command: command,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Args returns the argument vector used to open file at line.
func (e *Editor) Args(file string, line int) (string, []string, error) {
	name, args, err := Split(e.Command)
	if err != nil {
		return "", nil, fmt.Errorf("editor: %w", err)
	}
	return name, append(args, "+"+strconv.Itoa(line), file), nil
}

// Open runs "<editor> +<line> <file>" and blocks until the editor exits.
func (e *Editor) Open(file string, line int) error {
	if _, err := os.Stat(file); err != nil {
		return fmt.Errorf("opening %s: %w", file, err)
	}

	name, args, err := e.Args(file, line)
	if err != nil {
		return err
	}

	cmd := exec.Command(name, args...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	if err := Run(cmd); err != nil {
		return fmt.Errorf("running editor %s: %w", name, err)
	}
	return nil
}
