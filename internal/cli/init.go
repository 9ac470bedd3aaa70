package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/beeftornado/gitchangelog/internal/config"
	clierrors "github.com/beeftornado/gitchangelog/internal/errors"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a commented default .gitchangelog.yml",
	Long: `Write a commented default configuration file to the repository.

The file documents every option with its default value; generation works
without it, so only keep the keys you change.`,
	Example: `  # Write .gitchangelog.yml in the current directory
  gitchangelog init

  # Write it in another repository, replacing an existing file
  gitchangelog init ~/src/myproject --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	force, _ := cmd.Flags().GetBool("force")

	path := filepath.Join(dir, config.ProjectConfigName)
	if _, err := os.Stat(path); err == nil && !force {
		return reportError(clierrors.ConfigFileExists(path))
	}

	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0644); err != nil {
		return reportError(clierrors.WrapWithMessage(
			err, clierrors.Generation, "writing config file"))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Config: created at %s\n", path)
	return nil
}
