package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"rmrf/internal/config"
	"rmrf/internal/logger"
	"rmrf/internal/runner"
)

// stdoutIsTerminal reports whether the progress bar can be animated.
var stdoutIsTerminal = func() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr, func(cfg config.Config) int {
		return runner.New(cfg).Run().ExitCode()
	}))
}

// execute parses args and hands the resulting configuration to run. Invalid
// input prints usage and run is never called.
func execute(args []string, stdout, stderr io.Writer, run func(config.Config) int) int {
	code := runner.ExitOK
	cmd := newRootCmd(func(cfg config.Config) { code = run(cfg) })
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		return runner.ExitUsage
	}
	return code
}

func newRootCmd(run func(config.Config)) *cobra.Command {
	var (
		root        string
		include     []string
		exclude     []string
		noAnimation bool
		dryRun      bool
		ascii       bool
		cat         bool
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "rmrf",
		Short: "Delete a directory tree while drawing a progress bar",
		Long: `rmrf deletes directories bottom-up, emptying every descendant before
removing its parent, and draws a live progress bar while it works.

Without --include the whole --path tree is deleted (the current working
directory itself is emptied but kept). With --include only directories with
one of the given names are deleted, searching below --path and skipping any
directory named in --exclude.

There is no confirmation prompt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logger.Init("debug")
			} else {
				logger.Init("warn")
			}

			cfg := config.Config{
				RootPath:     root,
				DryRun:       dryRun,
				NoAnimation:  noAnimation,
				ASCIITheme:   ascii,
				CatAnimation: cat,
			}
			if cmd.Flags().Changed("include") {
				cfg.Include = include
			}
			if cmd.Flags().Changed("exclude") {
				cfg.Exclude = exclude
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			cfg, err := cfg.Normalize()
			if err != nil {
				return err
			}
			if !cfg.NoAnimation && !stdoutIsTerminal() {
				logger.Get().Debug().Msg("stdout is not a terminal, animation disabled")
				cfg.NoAnimation = true
			}

			cmd.SilenceUsage = true
			run(cfg)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&root, "path", "p", ".", "Root path to delete or to search below")
	f.StringSliceVarP(&include, "include", "i", nil, "Comma-separated directory names to delete")
	f.StringSliceVarP(&exclude, "exclude", "e", nil, "Comma-separated directory names to skip while searching")
	f.BoolVarP(&noAnimation, "no-animation", "n", false, "Print plain progress lines instead of an animated bar")
	f.BoolVarP(&dryRun, "dry-run", "d", false, "Do not delete anything; simulate the run")
	f.BoolVarP(&ascii, "ascii", "a", false, "Draw the bar with ASCII characters (no mascot)")
	f.BoolVarP(&cat, "cat", "c", false, "Show the animated cat next to the bar")
	f.BoolVarP(&verbose, "verbose", "v", false, "Log debug details and the run summary to stderr")
	return cmd
}
