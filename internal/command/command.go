// Package command holds the fixed table of interactive commands and
// dispatches selections to them.
package command

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/AliceAlbano/vgrep/internal/pager"
	"github.com/AliceAlbano/vgrep/internal/render"
	"github.com/AliceAlbano/vgrep/pkg/selector"
)

// Kind classifies what a command did.
type Kind int

const (
	NoOp Kind = iota
	Rendered
	Replaced
	Quit
)

func (k Kind) String() string {
	switch k {
	case NoOp:
		return "noop"
	case Rendered:
		return "rendered"
	case Replaced:
		return "replaced"
	case Quit:
		return "quit"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Outcome reports the result of a command. Records and Args are set only
// for Replaced.
type Outcome struct {
	Kind    Kind
	Records []string
	Args    []string
}

// Editor opens a file at a line and blocks until the user is done.
type Editor interface {
	Open(file string, line int) error
}

// Searcher runs a new search over a set of files.
type Searcher interface {
	Search(ctx context.Context, args, files []string) ([]string, error)
}

// Env carries the collaborators a command may use.
type Env struct {
	Out      io.Writer
	Pager    pager.Pager
	Render   *render.Renderer
	Editor   Editor
	Searcher Searcher
	// Confirm asks a yes/no question. Nil means yes.
	Confirm func(question string) bool

	ContextLines     int
	TreeDepth        int
	ConfirmThreshold int
	// Args are the search arguments of the current session.
	Args []string
}

func (e *Env) confirm(question string) bool {
	if e.Confirm == nil {
		return true
	}
	return e.Confirm(question)
}

type handlerFunc func(ctx context.Context, env *Env, list []string, sel selector.Selection) (Outcome, error)

// Command describes one entry of the command table.
type Command struct {
	Key         byte
	Name        string
	Usage       string
	Description string
	// Mutates is set for commands that may replace the session records.
	Mutates bool

	run handlerFunc
}

// order is the display order of the command table.
const order = "spPdcftgqh"

var registry map[byte]*Command

// registered in init so the help handler can refer to the table
func init() {
	registry = map[byte]*Command{
		's': {Key: 's', Name: "show", Usage: "[sel]s",
			Description: "Open the selected matches in the editor, one after another. Asks first when many are selected.",
			run:         runShow},
		'p': {Key: 'p', Name: "print", Usage: "[sel]p",
			Description: "Print the selected matches with their original indices.",
			run:         runPrint},
		'P': {Key: 'P', Name: "prune", Usage: "[sel]P",
			Description: "Keep only the selected matches, in selection order, and renumber them.",
			Mutates:     true, run: runPrune},
		'd': {Key: 'd', Name: "delete", Usage: "[sel]d",
			Description: "Delete the selected matches and renumber the rest.",
			Mutates:     true, run: runDelete},
		'c': {Key: 'c', Name: "context", Usage: "[sel]c [lines]",
			Description: "Show the selected matches with surrounding file lines (default from config).",
			run:         runContext},
		'f': {Key: 'f', Name: "files", Usage: "[sel]f",
			Description: "Show the number of selected matches per file.",
			run:         runFiles},
		't': {Key: 't', Name: "tree", Usage: "[sel]t [depth]",
			Description: "Show the selected matches per directory, folding directories below depth.",
			run:         runTree},
		'g': {Key: 'g', Name: "grep", Usage: "[sel]g pattern",
			Description: "Search the files of the selected matches again for pattern and offer to replace the session with the result.",
			Mutates:     true, run: runGrep},
		'q': {Key: 'q', Name: "quit", Usage: "q",
			Description: "Quit.",
			run:         runQuit},
		'h': {Key: 'h', Name: "help", Usage: "h [command]",
			Description: "Show all commands, or the help of one command.",
			run:         runHelp},
	}
}

// Lookup returns the command bound to key.
func Lookup(key byte) (*Command, bool) {
	c, ok := registry[key]
	return c, ok
}

// Commands returns every command in display order.
func Commands() []*Command {
	cmds := make([]*Command, 0, len(order))
	for i := 0; i < len(order); i++ {
		cmds = append(cmds, registry[order[i]])
	}
	return cmds
}

// Dispatch runs the command named by sel against list.
func Dispatch(ctx context.Context, env *Env, list []string, sel selector.Selection) (Outcome, error) {
	cmd, ok := Lookup(sel.Command)
	if !ok {
		return Outcome{}, fmt.Errorf("unknown command %q, type h for help", sel.Command)
	}

	slog.Debug("Dispatching command", "command", cmd.Name, "selected", len(sel.Indices), "arg", sel.Arg)
	return cmd.run(ctx, env, list, sel)
}
