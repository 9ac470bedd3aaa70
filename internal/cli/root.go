// Package cli implements the gitchangelog command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	clierrors "github.com/beeftornado/gitchangelog/internal/errors"
	"github.com/beeftornado/gitchangelog/internal/gitsource"
)

var rootCmd = &cobra.Command{
	Use:   "gitchangelog [path]",
	Short: "Generate a changelog from git history",
	Long: `Generate a changelog from the commit history of a git repository.

Commits are classified by the token prefixing their subject (new:, chg:,
fix:) and grouped into one section per release tag, newest first. The
unreleased section on top carries either a literal placeholder label or a
pseudo-version derived from the nearest tag.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (GITCHANGELOG_*)
  2. Project config (.gitchangelog.yml in the repository)
  3. User config (~/.config/gitchangelog/config.yml)
  4. Built-in defaults`,
	Example: `  # Changelog for the repository in the current directory
  gitchangelog

  # Changelog for another repository, written to a file
  gitchangelog ~/src/myproject -o CHANGELOG.rst

  # Regenerate on every commit or tag change
  gitchangelog --watch -o CHANGELOG.rst`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Project config file (default: <repo>/.gitchangelog.yml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
	rootCmd.PersistentFlags().Bool("plain", false, "Disable colors and spinner")

	rootCmd.Flags().StringP("output", "o", "", "Write the changelog to a file instead of stdout")
	rootCmd.Flags().String("engine", "", "Output engine: rst or markdown (overrides config)")
	rootCmd.Flags().Bool("watch", false, "Stay resident and regenerate when the repository changes")
}

// Execute runs the root command. The returned error, if any, carries the
// process exit code (see ExitCode).
func Execute() error {
	rootCmd.SilenceErrors = true
	return rootCmd.Execute()
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		return cliErr.Category.ExitCode()
	}
	return 1
}

// setupDebug wires the --debug flag into the gitsource debug logger.
func setupDebug(cmd *cobra.Command) {
	debug, _ := cmd.Flags().GetBool("debug")
	if !debug {
		return
	}
	gitsource.SetDebugLogger(func(format string, args ...any) {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	})
}

// reportError prints a structured error to stderr and returns it so the
// exit code survives up through Execute.
func reportError(err *clierrors.CLIError) error {
	clierrors.PrintError(err)
	return err
}
