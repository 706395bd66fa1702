package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/AliceAlbano/vgrep/pkg/record"
	"github.com/AliceAlbano/vgrep/pkg/selector"
)

func runShow(_ context.Context, env *Env, list []string, sel selector.Selection) (Outcome, error) {
	if n := len(sel.Indices); n > env.ConfirmThreshold &&
		!env.confirm(fmt.Sprintf("Open %d matches in the editor?", n)) {
		return Outcome{Kind: NoOp}, nil
	}

	for _, i := range sel.Indices {
		rec, err := record.Parse(list[i])
		if err != nil {
			return Outcome{}, fmt.Errorf("match %d: %w", i, err)
		}
		if err := env.Editor.Open(rec.File, rec.Line); err != nil {
			return Outcome{}, fmt.Errorf("match %d: %w", i, err)
		}
	}
	return Outcome{Kind: NoOp}, nil
}

func runPrint(_ context.Context, env *Env, list []string, sel selector.Selection) (Outcome, error) {
	if err := env.Pager.Page(env.Render.Table(list, sel.Indices)); err != nil {
		return Outcome{}, err
	}
	return Outcome{Kind: Rendered}, nil
}

func runPrune(_ context.Context, env *Env, list []string, sel selector.Selection) (Outcome, error) {
	keep := make(map[int]struct{}, len(sel.Indices))
	for _, i := range sel.Indices {
		keep[i] = struct{}{}
	}
	// kept records stay in list order, whatever order they were selected in
	pruned := make([]string, 0, len(keep))
	for i, raw := range list {
		if _, ok := keep[i]; ok {
			pruned = append(pruned, raw)
		}
	}

	if err := env.Pager.Page(env.Render.Table(pruned, allIndices(len(pruned)))); err != nil {
		return Outcome{}, err
	}
	return Outcome{Kind: Replaced, Records: pruned, Args: env.Args}, nil
}

func runDelete(_ context.Context, env *Env, list []string, sel selector.Selection) (Outcome, error) {
	remaining := remove(list, sel.Indices)

	if err := env.Pager.Page(env.Render.Table(remaining, allIndices(len(remaining)))); err != nil {
		return Outcome{}, err
	}
	return Outcome{Kind: Replaced, Records: remaining, Args: env.Args}, nil
}

// remove returns a copy of list without the given indices, which may
// repeat.
func remove(list []string, indices []int) []string {
	doomed := make(map[int]struct{}, len(indices))
	for _, i := range indices {
		doomed[i] = struct{}{}
	}
	sorted := make([]int, 0, len(doomed))
	for i := range doomed {
		sorted = append(sorted, i)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	out := append([]string(nil), list...)
	for _, i := range sorted {
		out = append(out[:i], out[i+1:]...)
	}
	return out
}

func runContext(_ context.Context, env *Env, list []string, sel selector.Selection) (Outcome, error) {
	n, err := intArg(sel.Arg, env.ContextLines)
	if err != nil {
		return Outcome{}, fmt.Errorf("context lines: %w", err)
	}

	if err := env.Pager.Page(env.Render.Context(list, sel.Indices, n)); err != nil {
		return Outcome{}, err
	}
	return Outcome{Kind: Rendered}, nil
}

func runFiles(_ context.Context, env *Env, list []string, sel selector.Selection) (Outcome, error) {
	if err := env.Pager.Page(env.Render.Files(list, sel.Indices)); err != nil {
		return Outcome{}, err
	}
	return Outcome{Kind: Rendered}, nil
}

func runTree(_ context.Context, env *Env, list []string, sel selector.Selection) (Outcome, error) {
	depth, err := intArg(sel.Arg, env.TreeDepth)
	if err != nil {
		return Outcome{}, fmt.Errorf("tree depth: %w", err)
	}

	if err := env.Pager.Page(env.Render.Tree(list, sel.Indices, depth)); err != nil {
		return Outcome{}, err
	}
	return Outcome{Kind: Rendered}, nil
}

func runGrep(ctx context.Context, env *Env, list []string, sel selector.Selection) (Outcome, error) {
	if sel.Arg == "" {
		return Outcome{}, errors.New("g needs a pattern")
	}

	var files []string
	seen := make(map[string]struct{})
	for _, i := range sel.Indices {
		rec, err := record.Parse(list[i])
		if err != nil {
			slog.Debug("Skipping unparseable match", "index", i, "error", err)
			continue
		}
		if _, ok := seen[rec.File]; ok {
			continue
		}
		seen[rec.File] = struct{}{}
		files = append(files, rec.File)
	}
	if len(files) == 0 {
		return Outcome{}, errors.New("no files in selection")
	}

	args := []string{"-e", sel.Arg}
	results, err := env.Searcher.Search(ctx, args, files)
	if err != nil {
		return Outcome{}, err
	}
	if len(results) == 0 {
		fmt.Fprintf(env.Out, "No matches for %q in %d files\n", sel.Arg, len(files))
		return Outcome{Kind: NoOp}, nil
	}

	if err := env.Pager.Page(env.Render.Table(results, allIndices(len(results)))); err != nil {
		return Outcome{}, err
	}
	if !env.confirm(fmt.Sprintf("Replace the current %d matches with these %d?", len(list), len(results))) {
		return Outcome{Kind: Rendered}, nil
	}
	return Outcome{Kind: Replaced, Records: results, Args: args}, nil
}

func runQuit(context.Context, *Env, []string, selector.Selection) (Outcome, error) {
	return Outcome{Kind: Quit}, nil
}

func runHelp(_ context.Context, env *Env, _ []string, sel selector.Selection) (Outcome, error) {
	if sel.Arg == "" {
		fmt.Fprint(env.Out, Usage())
		return Outcome{Kind: NoOp}, nil
	}

	if len(sel.Arg) != 1 {
		return Outcome{}, fmt.Errorf("no such command %q", sel.Arg)
	}
	cmd, ok := Lookup(sel.Arg[0])
	if !ok {
		return Outcome{}, fmt.Errorf("no such command %q", sel.Arg)
	}
	fmt.Fprintf(env.Out, "%s (%s)\n  %s\n", cmd.Usage, cmd.Name, cmd.Description)
	return Outcome{Kind: NoOp}, nil
}

// Usage describes the selector syntax and lists every command.
func Usage() string {
	var b strings.Builder
	b.WriteString("Selectors:\n")
	b.WriteString("  (empty)      all matches\n")
	b.WriteString("  3 5,7 2-4    single indices and inclusive ranges\n")
	b.WriteString("  -4 6- 2:4    open ranges, ':' works like '-'\n")
	b.WriteString("  /regex/      matches whose line matches regex\n")
	b.WriteString("\nCommands:\n")
	for _, cmd := range Commands() {
		fmt.Fprintf(&b, "  %-16s %s\n", cmd.Usage, cmd.Description)
	}
	return b.String()
}

// intArg parses a non-negative integer argument, or returns def when arg
// is empty.
func intArg(arg string, def int) (int, error) {
	if arg == "" {
		return def, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", arg)
	}
	if n < 0 {
		return 0, fmt.Errorf("%d is negative", n)
	}
	return n, nil
}

func allIndices(n int) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return indices
}
