package cli

import (
	"errors"
	"os"
	"time"

	"github.com/briandowns/spinner"
	git "github.com/go-git/go-git/v5"
	"github.com/spf13/cobra"

	"github.com/beeftornado/gitchangelog/internal/changelog"
	"github.com/beeftornado/gitchangelog/internal/config"
	clierrors "github.com/beeftornado/gitchangelog/internal/errors"
	"github.com/beeftornado/gitchangelog/internal/gitsource"
	"github.com/beeftornado/gitchangelog/internal/render"
)

// generateParams collects everything one changelog generation needs, so
// watch mode can rerun it without re-parsing flags.
type generateParams struct {
	repoPath   string
	configPath string
	outputFile string
	engine     string
	plain      bool
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	setupDebug(cmd)

	params, err := collectParams(cmd, args)
	if err != nil {
		return err
	}

	watch, _ := cmd.Flags().GetBool("watch")
	if watch {
		return runWatch(cmd, params)
	}

	return generate(cmd, params)
}

func collectParams(cmd *cobra.Command, args []string) (generateParams, error) {
	params := generateParams{repoPath: "."}
	if len(args) > 0 {
		params.repoPath = args[0]
	}

	params.configPath, _ = cmd.Flags().GetString("config")
	params.outputFile, _ = cmd.Flags().GetString("output")
	params.plain, _ = cmd.Flags().GetBool("plain")

	engine, _ := cmd.Flags().GetString("engine")
	switch engine {
	case "", render.EngineRST, render.EngineMarkdown:
		params.engine = engine
	default:
		return params, reportError(clierrors.UnknownOutputEngine(engine))
	}

	return params, nil
}

// generate runs one full pipeline pass: config, feed, build, render.
func generate(cmd *cobra.Command, params generateParams) error {
	cfg, err := loadConfiguration(params)
	if err != nil {
		return err
	}

	src, err := openRepository(params.repoPath)
	if err != nil {
		return err
	}

	stop := startSpinner(params)
	feed, err := src.Collect(cmd.Context())
	stop()
	if err != nil {
		return reportError(clierrors.WrapWithMessage(
			err, clierrors.Repository, "reading repository history"))
	}

	sections, err := changelogSections(feed, cfg)
	if err != nil {
		return err
	}

	return writeChangelog(cmd, params, cfg, sections)
}

func loadConfiguration(params generateParams) (*config.Configuration, error) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		RepoPath:          params.repoPath,
		ProjectConfigPath: params.configPath,
	})
	if err != nil {
		return nil, reportError(clierrors.ConfigFileInvalid(err))
	}

	// Flag overrides sit above every config layer.
	if params.engine != "" {
		cfg.OutputEngine = params.engine
	}
	if params.outputFile != "" {
		cfg.OutputFile = params.outputFile
	}

	return cfg, nil
}

func openRepository(path string) (*gitsource.Source, error) {
	src, err := gitsource.Open(path)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, reportError(clierrors.NotAGitRepository(path))
		}
		return nil, reportError(clierrors.WrapWithMessage(
			err, clierrors.Repository, "opening repository"))
	}
	return src, nil
}

func changelogSections(feed *gitsource.Feed, cfg *config.Configuration) ([]changelog.ReleaseSection, error) {
	sections, err := changelog.Build(feed.Commits, feed.Tags, cfg.EngineOptions())
	if err != nil {
		return nil, reportError(clierrors.InvalidTagFilter(err))
	}
	return sections, nil
}

// writeChangelog renders the sections to the configured destination. An
// interactive stdout with no output file gets the colored preview; a file
// or pipe gets a full document.
func writeChangelog(cmd *cobra.Command, params generateParams, cfg *config.Configuration, sections []changelog.ReleaseSection) error {
	renderOpts := render.Options{UnreleasedLabel: cfg.UnreleasedVersionLabel}

	if cfg.OutputFile != "" {
		f, err := os.Create(cfg.OutputFile)
		if err != nil {
			return reportError(clierrors.OutputFileUnwritable(cfg.OutputFile, err))
		}
		defer f.Close()

		if err := render.Render(cfg.OutputEngine, sections, renderOpts, f); err != nil {
			return reportError(clierrors.Wrap(err, clierrors.Generation))
		}
		return nil
	}

	out := cmd.OutOrStdout()
	if render.IsTerminal(out) {
		err := render.FormatTerminal(sections, out, render.TerminalOptions{
			Plain:           params.plain,
			UnreleasedLabel: cfg.UnreleasedVersionLabel,
		})
		if err != nil {
			return reportError(clierrors.Wrap(err, clierrors.Generation))
		}
		return nil
	}

	if err := render.Render(cfg.OutputEngine, sections, renderOpts, out); err != nil {
		return reportError(clierrors.Wrap(err, clierrors.Generation))
	}
	return nil
}

// startSpinner shows a progress spinner on stderr while history is read.
// The returned func stops it; on non-terminals it is a no-op.
func startSpinner(params generateParams) func() {
	if params.plain || !render.IsTerminal(os.Stderr) {
		return func() {}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond,
		spinner.WithWriter(os.Stderr))
	s.Suffix = " reading git history..."
	s.Start()
	return s.Stop
}
