// Package search runs the external search program and collects its raw
// output lines.
package search

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/AliceAlbano/vgrep/internal/proc"
)

// Options selects the search program and its flags.
type Options struct {
	Git        bool // use git grep when inside a work tree
	Submodules bool // let git grep descend into nested repositories
	Dir        string
}

// Searcher invokes git grep or grep in NUL-delimited, colored mode.
type Searcher struct {
	opts  Options
	inGit bool
}

// New creates a Searcher. Repository-aware mode is only used when the
// directory is inside a git work tree.
func New(opts Options) *Searcher {
	s := &Searcher{opts: opts}
	if opts.Git {
		s.inGit = InWorkTree(opts.Dir)
	}
	return s
}

// InWorkTree reports whether dir is inside a git work tree.
func InWorkTree(dir string) bool {
	cmd := exec.Command("git", "rev-parse", "--is-inside-work-tree")
	cmd.Dir = dir
	out, err := cmd.Output()
	return err == nil && strings.TrimSpace(string(out)) == "true"
}

// Command returns the program and arguments for a search over args,
// restricted to files when it is not empty.
func (s *Searcher) Command(args, files []string) (string, []string) {
	if s.inGit {
		argv := []string{"grep", "-z", "-I", "-n", "--color=always"}
		if s.opts.Submodules && len(files) == 0 {
			argv = append(argv, "--recurse-submodules")
		}
		argv = append(argv, args...)
		if len(files) > 0 {
			argv = append(append(argv, "--"), files...)
		}
		return "git", argv
	}

	argv := []string{"-Z", "-I", "-r", "-n", "--color=always", "--exclude-dir=.git"}
	argv = append(argv, args...)
	// without file operands grep -r searches the working directory and
	// prints paths without a "./" prefix
	if len(files) > 0 {
		argv = append(append(argv, "--"), files...)
	}
	return "grep", argv
}

// Search runs the search and returns its output lines. No match is an
// empty result rather than an error.
func (s *Searcher) Search(ctx context.Context, args, files []string) ([]string, error) {
	name, argv := s.Command(args, files)
	slog.Debug("Running search", "program", name, "args", argv)

	cmd := exec.CommandContext(ctx, name, argv...)
	cmd.Dir = s.opts.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := proc.Run(cmd); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 && stderr.Len() == 0 {
			return nil, nil
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s failed: %s", name, msg)
		}
		return nil, fmt.Errorf("%s failed: %w", name, err)
	}

	return splitLines(stdout.String()), nil
}

func splitLines(out string) []string {
	out = strings.TrimRight(out, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}
