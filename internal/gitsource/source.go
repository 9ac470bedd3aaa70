// Package gitsource feeds the changelog engine from a real repository.
// It uses the go-git library to walk the first-parent chain from HEAD
// (newest first, the ordering the engine expects) and to collect the
// repository's tags, resolving annotated tags down to the commit they
// point at.
package gitsource

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"golang.org/x/sync/errgroup"

	"github.com/beeftornado/gitchangelog/internal/changelog"
)

// debugLogger is a function that logs debug messages when debug mode is
// enabled. By default it is a no-op; set it via SetDebugLogger.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for repository operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Source reads commits and tags from one repository.
type Source struct {
	repo *git.Repository
	path string
}

// Feed is the fully materialized input for one changelog build.
type Feed struct {
	// Commits is the first-parent history from HEAD, newest first.
	Commits []changelog.CommitRecord
	// Tags is the repository's full tag set; filtering happens in the
	// engine so non-matching tags stay visible to classification.
	Tags []changelog.TagRef
}

// Open opens the repository at path, traversing up the directory tree to
// find the repository root. An empty path means the current directory.
func Open(path string) (*Source, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[gitsource] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	return &Source{repo: repo, path: path}, nil
}

// Collect materializes the commit feed and tag set. Commits and tags are
// gathered concurrently; both walks are read-only so builds for distinct
// repositories may also run in parallel.
func (s *Source) Collect(ctx context.Context) (*Feed, error) {
	var (
		commits []changelog.CommitRecord
		tags    []changelog.TagRef
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		commits, err = s.collectCommits(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		tags, err = s.collectTags()
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	attachTags(commits, tags)

	logDebug("[gitsource] collected %d commits, %d tags", len(commits), len(tags))
	return &Feed{Commits: commits, Tags: tags}, nil
}

// collectCommits walks the first-parent chain from HEAD. Progress commits
// on merged-in branches are reachable only through second parents and so
// never enter the feed; the merge commit itself represents them.
func (s *Source) collectCommits(ctx context.Context) ([]changelog.CommitRecord, error) {
	head, err := s.repo.Head()
	if err != nil {
		if err == plumbing.ErrReferenceNotFound {
			// Empty repository: an empty feed, not an error.
			logDebug("[gitsource] repository has no HEAD, returning empty feed")
			return nil, nil
		}
		return nil, fmt.Errorf("getting HEAD reference: %w", err)
	}

	var commits []changelog.CommitRecord
	hash := head.Hash()
	for !hash.IsZero() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c, err := s.repo.CommitObject(hash)
		if err != nil {
			return nil, fmt.Errorf("reading commit %s: %w", hash, err)
		}
		commits = append(commits, toRecord(c))

		if c.NumParents() == 0 {
			break
		}
		hash = c.ParentHashes[0]
	}

	return commits, nil
}

// collectTags lists every tag, resolving annotated tag objects to their
// target commit. Tags pointing at non-commits are skipped.
func (s *Source) collectTags() ([]changelog.TagRef, error) {
	iter, err := s.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	var tags []changelog.TagRef
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		commit, err := s.resolveTagCommit(ref)
		if err != nil {
			logDebug("[gitsource] skipping tag %s: %v", ref.Name().Short(), err)
			return nil
		}
		tags = append(tags, changelog.TagRef{
			Name: ref.Name().Short(),
			Hash: commit.Hash.String(),
			Date: commit.Author.When,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	return tags, nil
}

// resolveTagCommit returns the commit a tag reference targets, following
// one level of annotated tag indirection.
func (s *Source) resolveTagCommit(ref *plumbing.Reference) (*object.Commit, error) {
	if tagObj, err := s.repo.TagObject(ref.Hash()); err == nil {
		return tagObj.Commit()
	}
	return s.repo.CommitObject(ref.Hash())
}

// toRecord converts a go-git commit into the engine's record type. The
// subject is the first message line; the remaining lines, minus the
// separating blank and trailing blanks, become the body.
func toRecord(c *object.Commit) changelog.CommitRecord {
	subject, body := splitMessage(c.Message)

	parents := make([]string, 0, len(c.ParentHashes))
	for _, p := range c.ParentHashes {
		parents = append(parents, p.String())
	}

	return changelog.CommitRecord{
		Hash:        c.Hash.String(),
		Parents:     parents,
		AuthorName:  c.Author.Name,
		AuthorEmail: c.Author.Email,
		Date:        c.Author.When,
		Subject:     subject,
		Body:        body,
	}
}

// splitMessage separates a raw commit message into its subject line and
// body lines, preserved verbatim apart from the separator blank line.
func splitMessage(message string) (string, []string) {
	lines := strings.Split(strings.TrimRight(message, "\n"), "\n")
	subject := strings.TrimSpace(lines[0])

	body := lines[1:]
	for len(body) > 0 && strings.TrimSpace(body[0]) == "" {
		body = body[1:]
	}
	for len(body) > 0 && strings.TrimSpace(body[len(body)-1]) == "" {
		body = body[:len(body)-1]
	}
	if len(body) == 0 {
		return subject, nil
	}
	return subject, body
}

// attachTags copies tag names onto the commits they point at so the feed
// matches the engine's input contract.
func attachTags(commits []changelog.CommitRecord, tags []changelog.TagRef) {
	if len(tags) == 0 {
		return
	}
	byHash := make(map[string][]string)
	for _, tag := range tags {
		byHash[tag.Hash] = append(byHash[tag.Hash], tag.Name)
	}
	for i := range commits {
		commits[i].Tags = byHash[commits[i].Hash]
	}
}
