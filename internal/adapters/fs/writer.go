package fs

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/spritz/internal/core/domain"
	"go.trai.ch/zerr"
)

// Writer persists text files and suppresses writes that would not change them.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write stores content at dir/name. The content is normalized to end with exactly
// one newline. When the existing file already holds the normalized bytes nothing is
// written and false is returned, so file watchers downstream see no change.
func (w *Writer) Write(dir, name, content string) (bool, error) {
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrOutputDirCreateFailed.Error()), "dir", dir)
	}

	path := filepath.Join(dir, name)
	data := []byte(strings.TrimRight(content, "\r\n") + "\n")

	existing, err := os.ReadFile(path) //nolint:gosec // path is built from configuration
	switch {
	case err == nil:
		if bytes.Equal(existing, data) {
			return false, nil
		}
	case !errors.Is(err, fs.ErrNotExist):
		return false, zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", path)
	}

	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", path)
	}
	return true, nil
}
