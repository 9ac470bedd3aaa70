package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	clierrors "github.com/beeftornado/gitchangelog/internal/errors"
)

// debounceWindow batches the bursts of ref updates a single git operation
// produces into one regeneration.
const debounceWindow = 250 * time.Millisecond

// runWatch regenerates the changelog whenever HEAD or a ref changes in the
// repository. It blocks until the command context is cancelled.
func runWatch(cmd *cobra.Command, params generateParams) error {
	if err := generate(cmd, params); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return reportError(clierrors.WrapWithMessage(
			err, clierrors.Generation, "creating filesystem watcher"))
	}
	defer watcher.Close()

	if err := watchGitDirs(watcher, params.repoPath); err != nil {
		return err
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "watching for repository changes (Ctrl+C to stop)")
	return watchLoop(cmd, params, watcher)
}

// watchGitDirs registers the directories whose contents change when HEAD
// moves or a ref is created: .git itself (HEAD, packed-refs) and the loose
// ref directories. fsnotify does not recurse, so each is added explicitly.
func watchGitDirs(watcher *fsnotify.Watcher, repoPath string) error {
	gitDir := filepath.Join(repoPath, ".git")
	if info, err := os.Stat(gitDir); err != nil || !info.IsDir() {
		return reportError(clierrors.NewRepositoryError(
			fmt.Sprintf("cannot watch %s: no .git directory", repoPath),
			"Watch mode needs a standard (non-bare) working tree",
		))
	}

	dirs := []string{
		gitDir,
		filepath.Join(gitDir, "refs"),
		filepath.Join(gitDir, "refs", "heads"),
		filepath.Join(gitDir, "refs", "tags"),
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			// Loose ref dirs may not exist yet (fresh or fully packed
			// repos); HEAD and packed-refs still get us coverage.
			if os.IsNotExist(err) {
				continue
			}
			return reportError(clierrors.WrapWithMessage(
				err, clierrors.Generation, fmt.Sprintf("watching %s", dir)))
		}
	}
	return nil
}

// watchLoop debounces filesystem events and reruns the generation after
// each quiet period. Generation failures are reported but do not stop the
// loop; the next change gets a fresh attempt.
func watchLoop(cmd *cobra.Command, params generateParams, watcher *fsnotify.Watcher) error {
	var debounce *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-cmd.Context().Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantEvent(event) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceWindow, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case <-pending:
			if err := generate(cmd, params); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "regeneration failed; still watching")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return reportError(clierrors.WrapWithMessage(
				err, clierrors.Generation, "watching repository"))
		}
	}
}

// relevantEvent filters out the lock-file churn git produces around every
// operation; only settled writes matter.
func relevantEvent(event fsnotify.Event) bool {
	if filepath.Ext(event.Name) == ".lock" {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0
}
