// Package gitutil provides read-only queries against a Git repository by
// shelling out to the git binary.
package gitutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"

	"github.com/sevigo/patchpack/internal/core"
)

// Client runs git queries for a repository. All operations are read-only;
// the client never mutates the repository it inspects.
type Client struct {
	Logger  *slog.Logger
	GitPath string
}

// NewClient returns a new Client instance.
func NewClient(logger *slog.Logger, gitPath string) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if gitPath == "" {
		gitPath = "git"
	}
	return &Client{Logger: logger, GitPath: gitPath}
}

// RepoRoot resolves the worktree root of the repository containing path, so
// the tool can be invoked from any subdirectory.
func (c *Client) RepoRoot(path string) (string, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotARepository, path)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("resolve worktree for %s: %w", path, err)
	}
	return wt.Filesystem.Root(), nil
}

// LatestTag returns the most recent tag reachable from ref. It returns
// ErrNoTag when the history behind ref carries no tag at all.
func (c *Client) LatestTag(ctx context.Context, repoPath, ref string) (string, error) {
	out, err := c.run(ctx, repoPath, "describe", "--tags", "--abbrev=0", ref)
	if err != nil {
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) &&
			(strings.Contains(cmdErr.Stderr, "No names found") ||
				strings.Contains(cmdErr.Stderr, "cannot describe")) {
			return "", fmt.Errorf("%w (reachable from %s)", ErrNoTag, ref)
		}
		return "", err
	}
	tag := strings.TrimSpace(out)
	if tag == "" {
		return "", fmt.Errorf("%w (reachable from %s)", ErrNoTag, ref)
	}
	return tag, nil
}

// Changes lists the committed changes between two refs, one entry per path.
// Working-tree and staged edits are not part of the result.
func (c *Client) Changes(ctx context.Context, repoPath, from, to string) ([]core.ChangeEntry, error) {
	out, err := c.run(ctx, repoPath, "diff", "--name-status", "-M", fmt.Sprintf("%s..%s", from, to))
	if err != nil {
		return nil, err
	}
	return ParseNameStatus(out)
}

// CommitInfo returns the short hash, subject line and committer time of ref.
func (c *Client) CommitInfo(ctx context.Context, repoPath, ref string) (core.ArchiveMetadata, error) {
	// %x1f is an unambiguous field separator; subjects may contain anything.
	// The ref is peeled to its commit: for annotated tags, git show would
	// otherwise print the tag object ahead of the formatted commit.
	out, err := c.run(ctx, repoPath, "show", "-s", "--format=%h%x1f%s%x1f%ct", ref+"^{commit}")
	if err != nil {
		return core.ArchiveMetadata{}, err
	}

	parts := strings.SplitN(strings.TrimSpace(out), "\x1f", 3)
	if len(parts) != 3 {
		return core.ArchiveMetadata{}, fmt.Errorf("unexpected commit metadata for %s: %q", ref, out)
	}
	epoch, err := strconv.ParseInt(strings.TrimSpace(parts[2]), 10, 64)
	if err != nil {
		return core.ArchiveMetadata{}, fmt.Errorf("parse commit time for %s: %w", ref, err)
	}

	return core.ArchiveMetadata{
		ShortHash:  strings.TrimSpace(parts[0]),
		Subject:    parts[1],
		CommitTime: time.Unix(epoch, 0).UTC(),
	}, nil
}

func (c *Client) run(ctx context.Context, repoPath string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, c.GitPath, args...)
	cmd.Dir = repoPath

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	c.Logger.DebugContext(ctx, "running git", "args", args, "dir", repoPath)
	if err := cmd.Run(); err != nil {
		return "", &CommandError{
			Args:   args,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return stdout.String(), nil
}
