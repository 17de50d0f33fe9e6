package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jax-editor/git-mode/internal/app"
	"github.com/jax-editor/git-mode/internal/config"
	"github.com/jax-editor/git-mode/internal/editor"
	"github.com/jax-editor/git-mode/internal/git"
	"github.com/jax-editor/git-mode/internal/gitcmd"
	"github.com/jax-editor/git-mode/internal/status"
	"github.com/jax-editor/git-mode/internal/watcher"
)

// Build-time variables injected via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func init() {
	// A TUI spends most of its time waiting on git subprocesses and
	// terminal input; two OS threads cover the actual Go work. Respect an
	// explicit GOMAXPROCS.
	if os.Getenv("GOMAXPROCS") == "" {
		maxProcs := 2
		if n := runtime.NumCPU(); n < maxProcs {
			maxProcs = n
		}
		runtime.GOMAXPROCS(maxProcs)
	}
	debug.SetMemoryLimit(50 * 1024 * 1024)
}

func main() {
	rootCmd := buildRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "git-mode",
		Short: "A buffer-oriented git porcelain for the terminal",
		Long: `git-mode is a keyboard-first git status dashboard in the tradition of
Magit: inspect repository state, stage and unstage changes at file, hunk,
and line granularity, compose commits, and drive branching, pushing,
pulling, stashing, merging, and rebasing through flag-bearing menus.`,
		RunE:          runApp,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"git-mode %s\n  commit:  %s\n  built:   %s\n  go:      %s\n  os/arch: %s/%s\n",
		version, commit, date, runtime.Version(), runtime.GOOS, runtime.GOARCH,
	))

	rootCmd.AddCommand(buildVersionCmd())
	rootCmd.AddCommand(buildCompletionCmd())

	rootCmd.Flags().StringP("path", "p", ".", "Path to the git repository")

	return rootCmd
}

func runApp(cmd *cobra.Command, _ []string) error {
	repoPath, _ := cmd.Flags().GetString("path")

	if !git.Available() {
		return errors.New("git is not installed or not in PATH")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	plog := gitcmd.NewProcessLog(cfg.ProcessLogLines)

	// Resolve the repository root from the given path, then bind every
	// later invocation to it.
	probe := gitcmd.NewRunner(absOrDot(repoPath), plog)
	root := (git.Info{Run: probe}).RepoRoot()
	if root == "" {
		return errors.New("not a git repository")
	}

	run := gitcmd.NewRunner(root, plog)
	run.Timeout = cfg.GitTimeout()

	hooks := editor.NewHooks()
	buf := status.New(root, run, hooks)
	buf.LogMaxCount = cfg.LogMaxCount
	buf.Debounce = cfg.Debounce()

	reg := status.NewRegistry()
	reg.Put(buf)

	model := app.New(buf, reg, plog, cfg)
	p := tea.NewProgram(model, tea.WithAltScreen())

	// The standalone binary has no editor host to fire after-save, so a
	// filesystem watcher stands in for it; the hook bus carries the event
	// into the debounced refresh exactly as an embedding editor would.
	gitDir := strings.TrimSpace(run.Run("rev-parse", "--absolute-git-dir").Stdout)
	if gitDir == "" {
		gitDir = filepath.Join(root, ".git")
	}
	hooks.Add(editor.HookAfterSave, func(...any) {
		buf.AfterSave(func() { p.Send(app.RefreshedMsg{}) })
	})
	if watchCh, stop, watchErr := watcher.Watch(root, gitDir, buf.Debounce); watchErr == nil {
		defer stop()
		go func() {
			for range watchCh {
				hooks.Fire(editor.HookAfterSave)
			}
		}()
	}

	_, err = p.Run()
	return err
}

func absOrDot(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "."
	}
	return abs
}

// buildVersionCmd creates the `git-mode version` subcommand supporting --json.
func buildVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(_ *cobra.Command, _ []string) error {
			info := map[string]string{
				"version": version,
				"commit":  commit,
				"date":    date,
				"go":      runtime.Version(),
				"os":      runtime.GOOS,
				"arch":    runtime.GOARCH,
			}
			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			fmt.Printf("git-mode %s\n", version)
			fmt.Printf("  commit:  %s\n", commit)
			fmt.Printf("  built:   %s\n", date)
			fmt.Printf("  go:      %s\n", runtime.Version())
			fmt.Printf("  os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")

	return cmd
}

// buildCompletionCmd creates the `git-mode completion` subcommand.
func buildCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion scripts",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}
}
