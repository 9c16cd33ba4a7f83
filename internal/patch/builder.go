// Package patch orchestrates a package build: resolve the ref pair, list the
// committed changes between them, and write the surviving files into a ZIP.
package patch

import (
	"context"
	"log/slog"

	"github.com/sevigo/patchpack/internal/archive"
	"github.com/sevigo/patchpack/internal/core"
)

// GitClient is the narrow slice of git functionality the pipeline consumes,
// so tests can substitute an in-memory fake for the git binary.
type GitClient interface {
	RepoRoot(path string) (string, error)
	LatestTag(ctx context.Context, repoPath, ref string) (string, error)
	Changes(ctx context.Context, repoPath, from, to string) ([]core.ChangeEntry, error)
	CommitInfo(ctx context.Context, repoPath, ref string) (core.ArchiveMetadata, error)
}

// Options are the per-run inputs. FromRef and ToRef may be empty; see Run.
type Options struct {
	RepoPath  string
	FromRef   string
	ToRef     string
	OutputDir string
}

// Builder runs the build pipeline. Each run is independent and read-only with
// respect to the source repository.
type Builder struct {
	git    GitClient
	logger *slog.Logger
}

// NewBuilder returns a Builder using the given git client.
func NewBuilder(git GitClient, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{git: git, logger: logger}
}

// Run builds one patch package. An empty ToRef defaults to HEAD; an empty
// FromRef defaults to the most recent tag reachable from the to-ref. File
// bytes are read from the working tree, so the to-ref should match the
// checked-out commit. Deleted paths are excluded; changed paths missing from
// disk are skipped and reported in the summary.
func (b *Builder) Run(ctx context.Context, opts Options) (*core.Summary, error) {
	root, err := b.git.RepoRoot(opts.RepoPath)
	if err != nil {
		return nil, err
	}

	refs := core.RefPair{From: opts.FromRef, To: opts.ToRef}
	if refs.To == "" {
		refs.To = "HEAD"
	}

	meta, err := b.git.CommitInfo(ctx, root, refs.To)
	if err != nil {
		return nil, err
	}

	if refs.From == "" {
		refs.From, err = b.git.LatestTag(ctx, root, refs.To)
		if err != nil {
			return nil, err
		}
		b.logger.Info("no from-ref given, using latest tag", "tag", refs.From)
	}

	entries, err := b.git.Changes(ctx, root, refs.From, refs.To)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, e := range entries {
		if e.Status == core.StatusDeleted {
			b.logger.Debug("excluding deleted path", "path", e.Path)
			continue
		}
		paths = append(paths, e.Path)
	}

	outDir := opts.OutputDir
	if outDir == "" {
		outDir = "."
	}

	b.logger.Info("building patch package",
		"from", refs.From,
		"to", refs.To,
		"commit", meta.ShortHash,
		"changed_files", len(entries),
	)

	res, err := archive.Create(b.logger, root, paths, outDir, archive.FileName(meta))
	if err != nil {
		return nil, err
	}

	return &core.Summary{
		Refs:          refs,
		OutputPath:    res.Path,
		ArchiveSize:   res.Size,
		FilesIncluded: res.Included,
		FilesSkipped:  len(res.Skipped),
		MissingPaths:  res.Skipped,
	}, nil
}
