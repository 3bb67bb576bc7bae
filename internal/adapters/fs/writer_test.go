package fs_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/spritz/internal/adapters/fs"
	"go.trai.ch/spritz/internal/core/domain"
)

func TestWriter_Write(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "public", "assets")
	w := fs.NewWriter()

	written, err := w.Write(dir, "sprite.svg", "<svg></svg>")
	require.NoError(t, err)
	assert.True(t, written)

	data, err := os.ReadFile(filepath.Join(dir, "sprite.svg"))
	require.NoError(t, err)
	assert.Equal(t, "<svg></svg>\n", string(data))
}

func TestWriter_Write_NormalizesTrailingNewlines(t *testing.T) {
	dir := t.TempDir()
	w := fs.NewWriter()

	_, err := w.Write(dir, "sprite.svg", "<svg></svg>\n\n\r\n")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "sprite.svg"))
	require.NoError(t, err)
	assert.Equal(t, "<svg></svg>\n", string(data))
}

func TestWriter_Write_SkipsUnchanged(t *testing.T) {
	dir := t.TempDir()
	w := fs.NewWriter()
	path := filepath.Join(dir, "sprite.svg")

	written, err := w.Write(dir, "sprite.svg", "<svg></svg>")
	require.NoError(t, err)
	require.True(t, written)

	before, err := os.Stat(path)
	require.NoError(t, err)

	// The content differs only in trailing newlines, which normalize away.
	written, err = w.Write(dir, "sprite.svg", "<svg></svg>\n")
	require.NoError(t, err)
	assert.False(t, written)

	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())

	written, err = w.Write(dir, "sprite.svg", "<svg><symbol/></svg>")
	require.NoError(t, err)
	assert.True(t, written)
}

func TestWriter_Write_DirCreateFailure(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	written, err := fs.NewWriter().Write(filepath.Join(blocker, "sub"), "sprite.svg", "<svg/>")
	require.Error(t, err)
	assert.False(t, written)
	assert.ErrorContains(t, err, domain.ErrOutputDirCreateFailed.Error())
}

func TestWriter_Write_WriteFailure(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}

	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o500)) //nolint:gosec // Test directory permissions
	t.Cleanup(func() { _ = os.Chmod(dir, 0o750) }) //nolint:gosec // Test directory permissions

	_, err := fs.NewWriter().Write(dir, "sprite.svg", "<svg/>")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrOutputWriteFailed.Error())
}
