// Package archive writes changed files into a ZIP package.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sevigo/patchpack/internal/core"
	"github.com/sevigo/patchpack/internal/util"
)

const timestampLayout = "20060102-150405"

// Result describes a written archive.
type Result struct {
	Path     string
	Size     int64
	Included int
	Skipped  []string
}

// FileName derives the archive name from the to-ref commit. Every part is
// commit-derived, so repeated runs on an unchanged repository produce the
// same name.
func FileName(meta core.ArchiveMetadata) string {
	return fmt.Sprintf("%s_%s_%s.zip",
		meta.ShortHash,
		util.SanitizeSubject(meta.Subject),
		meta.CommitTime.UTC().Format(timestampLayout),
	)
}

// Create writes the given repo-relative paths into a ZIP named name inside
// outDir, reading file bytes from the working tree under root. Paths missing
// on disk are skipped with a warning. The archive appears atomically: entries
// are streamed into a temp file that is renamed into place on success and
// removed on any failure. An empty path list yields a valid empty archive.
func Create(logger *slog.Logger, root string, paths []string, outDir, name string) (*Result, error) {
	info, err := os.Stat(outDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrOutputDir, outDir)
	}

	tmp, err := os.CreateTemp(outDir, name+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrOutputDir, outDir)
	}
	tmpName := tmp.Name()
	discard := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	zw := zip.NewWriter(tmp)
	res := &Result{Path: filepath.Join(outDir, name)}

	for _, rel := range paths {
		src := filepath.Join(root, filepath.FromSlash(rel))
		fi, err := os.Stat(src)
		if err != nil {
			logger.Warn("changed file missing from working tree, skipping", "path", rel)
			res.Skipped = append(res.Skipped, rel)
			continue
		}
		if fi.IsDir() {
			logger.Warn("changed path is a directory, skipping", "path", rel)
			res.Skipped = append(res.Skipped, rel)
			continue
		}

		if err := addEntry(zw, src, rel, fi); err != nil {
			discard()
			return nil, fmt.Errorf("%w: %s: %v", ErrWrite, rel, err)
		}
		res.Included++
	}

	if err := zw.Close(); err != nil {
		discard()
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.Rename(tmpName, res.Path); err != nil {
		os.Remove(tmpName)
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}

	if fi, err := os.Stat(res.Path); err == nil {
		res.Size = fi.Size()
	}
	return res, nil
}

func addEntry(zw *zip.Writer, src, rel string, fi os.FileInfo) error {
	hdr, err := zip.FileInfoHeader(fi)
	if err != nil {
		return err
	}
	hdr.Name = filepath.ToSlash(rel)
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return err
	}

	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}
