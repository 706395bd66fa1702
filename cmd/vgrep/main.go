package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/AliceAlbano/vgrep/cmd"
	"github.com/AliceAlbano/vgrep/internal/command"
	"github.com/AliceAlbano/vgrep/internal/highlight"
	"github.com/AliceAlbano/vgrep/internal/logger"
	"github.com/AliceAlbano/vgrep/internal/pager"
	"github.com/AliceAlbano/vgrep/internal/proc"
	"github.com/AliceAlbano/vgrep/internal/render"
	"github.com/AliceAlbano/vgrep/internal/search"
	"github.com/AliceAlbano/vgrep/internal/session"
	"github.com/AliceAlbano/vgrep/internal/shell"
	"github.com/AliceAlbano/vgrep/internal/style"
	"github.com/AliceAlbano/vgrep/pkg/record"
	"github.com/adrg/xdg"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const appName = "vgrep"

var (
	Version     = "0.1.0"
	CommitSha   = "unknown"
	FullVersion = Version + "-" + CommitSha
)

var appDir = filepath.Join(xdg.StateHome, appName)

var logCloser io.Closer

func init() {
	closer, err := logger.Init(logger.DefaultPath(appName), os.Getenv(logger.EnvLevel))
	if err != nil {
		logger.Discard()
	}
	logCloser = closer

	// Initialize crash reporting
	if err := os.MkdirAll(appDir, 0o755); err == nil {
		if f, err := os.Create(filepath.Join(appDir, "crash")); err == nil {
			_ = debug.SetCrashOutput(f, debug.CrashOptions{})
		}
	}
}

// options holds the command line flags
type options struct {
	show         string
	interactive  bool
	noLess       bool
	noHeader     bool
	noHighlight  bool
	noSubmodules bool
	noGit        bool
	builtinPager bool
	configPath   string
	showVersion  bool
}

// apply lets flags override the configuration
func (o *options) apply(cfg *Config) {
	if o.noLess {
		cfg.Pager.Enabled = false
	}
	if o.builtinPager {
		cfg.Pager.Mode = string(pager.ModeBuiltin)
	}
	if o.noHeader {
		cfg.Display.Header = false
	}
	if o.noHighlight {
		cfg.Display.Highlight = false
	}
	if o.noSubmodules {
		cfg.Search.Submodules = false
	}
	if o.noGit {
		cfg.Search.Git = false
	}
}

// loadSession runs a fresh search when args are given and resumes the
// saved session otherwise.
func loadSession(ctx context.Context, searcher *search.Searcher, store *session.Store, saver *session.Saver, cwd string, args []string) (session.Session, error) {
	if len(args) == 0 {
		sess, err := store.Load(cwd)
		if err != nil {
			return session.Session{}, err
		}
		slog.Info("Resuming session", "workdir", cwd, "records", len(sess.Records))
		return *sess, nil
	}

	records, err := searcher.Search(ctx, args, nil)
	if err != nil {
		return session.Session{}, err
	}
	if len(records) > 0 {
		if _, err := record.Parse(records[0]); err != nil {
			return session.Session{}, fmt.Errorf("unexpected search output: %w", err)
		}
	}

	sess := session.Session{Workdir: cwd, Args: args, Records: records}
	saver.Save(sess)
	slog.Info("New search", "args", args, "records", len(records))
	return sess, nil
}

// runApp runs the main application logic
func runApp(ctx context.Context, opts *options, args []string) error {
	if opts.showVersion {
		fmt.Printf("%s version: %s\n", appName, FullVersion)
		return nil
	}

	configPath := opts.configPath
	if configPath == "" {
		configPath = DefaultConfigPath()
	}
	cfg, err := LoadConfigFromFile(configPath)
	if err != nil {
		return err
	}
	opts.apply(cfg)

	palette, err := style.NewPalette(cfg.Colors.palette())
	if err != nil {
		return fmt.Errorf("colors: %w", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	searcher := search.New(search.Options{
		Git:        cfg.Search.Git,
		Submodules: cfg.Search.Submodules,
		Dir:        cwd,
	})
	store := session.NewStore(session.DefaultPath(appName))
	saver := session.NewSaver(store)

	sess, err := loadSession(ctx, searcher, store, saver, cwd, args)
	if err != nil {
		return err
	}

	var hl highlight.Highlighter
	if cfg.Display.Highlight {
		hl = highlight.NewChroma(cfg.Display.HighlightStyle)
	}

	mode := pager.Mode(cfg.Pager.Mode)
	if !cfg.Pager.Enabled {
		mode = pager.ModeNone
	}
	pg, err := pager.New(pager.Options{Mode: mode, Command: cfg.Pager.Command, Out: os.Stdout})
	if err != nil {
		return err
	}

	env := &command.Env{
		Out:   os.Stdout,
		Pager: pg,
		Render: render.New(render.Options{
			Header:      cfg.Display.Header,
			Palette:     palette,
			Title:       strings.Join(sess.Args, " "),
			Highlighter: hl,
		}),
		Editor:           proc.NewEditor(proc.EditorCommand(cfg.Core.Editor)),
		Searcher:         searcher,
		ContextLines:     cfg.Core.ContextLines,
		TreeDepth:        cfg.Core.TreeDepth,
		ConfirmThreshold: cfg.Core.ConfirmThreshold,
	}

	sh := shell.New(shell.Config{
		Session: sess,
		Env:     env,
		Reader:  shell.NewReader(os.Stdin, os.Stdout),
		Saver:   saver,
		ErrOut:  os.Stderr,
		Palette: palette,
	})

	err = runCommands(ctx, sh, opts)
	if waitErr := sh.Close(); err == nil {
		err = waitErr
	}
	return err
}

func runCommands(ctx context.Context, sh *shell.Shell, opts *options) error {
	first := opts.show
	if first == "" && !opts.interactive {
		first = "p"
	}

	if first != "" {
		if err := sh.Execute(ctx, first); err != nil {
			if !opts.interactive {
				return err
			}
			sh.Report(err)
		}
	}

	if opts.interactive {
		return sh.Run(ctx)
	}
	return nil
}

func main() {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   appName + " [flags] [grep-args...]",
		Short: "Search with grep and act on the matches",
		Long: color.New(color.FgHiMagenta).Sprintf(
			"Run git grep or grep and keep the matches around for viewing, filtering and editing. %s",
			color.New(color.FgBlue).Sprintf("(%s)", FullVersion),
		) + "\n\nWithout grep arguments the matches of the last search are reused.",
		Example: "  vgrep -w TODO\n" +
			"  vgrep -s '3c 5'\n" +
			"  vgrep -i -- -e foo -e bar",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(c *cobra.Command, args []string) error {
			return runApp(c.Context(), opts, args)
		},
	}
	// grep flags after the first pattern belong to grep
	rootCmd.Flags().SetInterspersed(false)

	rootCmd.Flags().StringVarP(&opts.show, "show", "s", "", "Run a command on the matches, e.g. \"0-3p\"")
	rootCmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Prompt for commands after the search")
	rootCmd.Flags().BoolVar(&opts.noLess, "no-less", false, "Write to stdout instead of a pager")
	rootCmd.Flags().BoolVar(&opts.noHeader, "no-header", false, "Do not print table headers")
	rootCmd.Flags().BoolVar(&opts.noHighlight, "no-highlight", false, "Do not syntax highlight the context view")
	rootCmd.Flags().BoolVar(&opts.noSubmodules, "no-submodules", false, "Do not search in git submodules")
	rootCmd.Flags().BoolVar(&opts.noGit, "no-git", false, "Use grep even inside a git repository")
	rootCmd.Flags().BoolVar(&opts.builtinPager, "builtin-pager", false, "Use the built-in pager instead of less")
	rootCmd.Flags().StringVar(&opts.configPath, "config", "", "Path to the config file")
	rootCmd.Flags().BoolVarP(&opts.showVersion, "version", "v", false, "Print version and exit")

	rootCmd.SetHelpTemplate(cmd.HelpTemplate)
	rootCmd.SetUsageFunc(func(c *cobra.Command) error {
		return cmd.ColorUsageFunc(c.OutOrStderr(), c)
	})

	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		slog.Error("Error executing command", "error", err)
		fmt.Fprintln(os.Stderr, color.RedString("%s: %v", appName, err))
	}
	if logCloser != nil {
		logCloser.Close() // nolint: errcheck
	}
	if err != nil {
		os.Exit(1)
	}
}
