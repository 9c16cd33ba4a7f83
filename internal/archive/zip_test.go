package archive

import (
	"archive/zip"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/patchpack/internal/core"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readArchive(t *testing.T, path string) map[string]string {
	t.Helper()
	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	entries := map[string]string{}
	for _, f := range r.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		entries[f.Name] = string(data)
	}
	return entries
}

func TestFileName(t *testing.T) {
	meta := core.ArchiveMetadata{
		ShortHash:  "a1b2c3d",
		Subject:    "fix: login redirect loop",
		CommitTime: time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, "a1b2c3d_fix_login_redirect_loop_20240301-130000.zip", FileName(meta))
}

func TestCreate(t *testing.T) {
	root := t.TempDir()
	outDir := t.TempDir()
	writeFile(t, root, "app/Main.js", "console.log('v2');\n")
	writeFile(t, root, "app/New.js", "export {};\n")

	res, err := Create(testLogger(), root, []string{"app/Main.js", "app/New.js"}, outDir, "pkg.zip")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(outDir, "pkg.zip"), res.Path)
	assert.Equal(t, 2, res.Included)
	assert.Empty(t, res.Skipped)
	assert.Greater(t, res.Size, int64(0))

	entries := readArchive(t, res.Path)
	assert.Equal(t, map[string]string{
		"app/Main.js": "console.log('v2');\n",
		"app/New.js":  "export {};\n",
	}, entries)
}

func TestCreate_SkipsMissingFiles(t *testing.T) {
	root := t.TempDir()
	outDir := t.TempDir()
	writeFile(t, root, "kept.txt", "kept\n")

	res, err := Create(testLogger(), root, []string{"kept.txt", "gone.txt"}, outDir, "pkg.zip")
	require.NoError(t, err)

	assert.Equal(t, 1, res.Included)
	assert.Equal(t, []string{"gone.txt"}, res.Skipped)

	entries := readArchive(t, res.Path)
	_, ok := entries["gone.txt"]
	assert.False(t, ok)
}

func TestCreate_EmptyArchive(t *testing.T) {
	res, err := Create(testLogger(), t.TempDir(), nil, t.TempDir(), "empty.zip")
	require.NoError(t, err)

	assert.Equal(t, 0, res.Included)
	entries := readArchive(t, res.Path)
	assert.Empty(t, entries)
}

func TestCreate_MissingOutputDir(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "does-not-exist")

	_, err := Create(testLogger(), t.TempDir(), nil, outDir, "pkg.zip")
	assert.ErrorIs(t, err, ErrOutputDir)
}

func TestCreate_OutputDirIsFile(t *testing.T) {
	base := t.TempDir()
	notADir := filepath.Join(base, "file")
	require.NoError(t, os.WriteFile(notADir, []byte("x"), 0o644))

	_, err := Create(testLogger(), t.TempDir(), nil, notADir, "pkg.zip")
	assert.ErrorIs(t, err, ErrOutputDir)
}

func TestCreate_MidWriteFailureRemovesPartialArchive(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}

	root := t.TempDir()
	outDir := t.TempDir()
	writeFile(t, root, "ok.txt", "ok\n")
	writeFile(t, root, "locked.txt", "cannot be read\n")
	require.NoError(t, os.Chmod(filepath.Join(root, "locked.txt"), 0o000))

	_, err := Create(testLogger(), root, []string{"ok.txt", "locked.txt"}, outDir, "pkg.zip")
	assert.ErrorIs(t, err, ErrWrite)

	// Atomic-or-nothing: the partial temp file must be gone as well.
	names, readErr := os.ReadDir(outDir)
	require.NoError(t, readErr)
	assert.Empty(t, names)
}

func TestCreate_NoTempFileLeftBehind(t *testing.T) {
	root := t.TempDir()
	outDir := t.TempDir()
	writeFile(t, root, "a.txt", "a\n")

	_, err := Create(testLogger(), root, []string{"a.txt"}, outDir, "pkg.zip")
	require.NoError(t, err)

	names, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, names, 1)
	assert.Equal(t, "pkg.zip", names[0].Name())
}

func TestCreate_Deterministic(t *testing.T) {
	root := t.TempDir()
	outA := t.TempDir()
	outB := t.TempDir()
	writeFile(t, root, "a.txt", "same bytes\n")

	resA, err := Create(testLogger(), root, []string{"a.txt"}, outA, "pkg.zip")
	require.NoError(t, err)
	resB, err := Create(testLogger(), root, []string{"a.txt"}, outB, "pkg.zip")
	require.NoError(t, err)

	assert.Equal(t, readArchive(t, resA.Path), readArchive(t, resB.Path))
}
