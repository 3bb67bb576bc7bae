// Package fs provides file system adapters for scanning icon directories and
// persisting the generated sprite.
package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/spritz/internal/core/domain"
	"go.trai.ch/spritz/internal/core/ports"
	"go.trai.ch/zerr"
)

var errNotDir = errors.New("not a directory")

// Scanner lists icon files below a root directory.
type Scanner struct {
	logger   ports.Logger
	maxDepth int
}

// NewScanner creates a new Scanner.
func NewScanner(log ports.Logger) *Scanner {
	return &Scanner{
		logger:   log,
		maxDepth: domain.MaxScanDepth,
	}
}

// Scan returns every icon file found at any depth under root, in directory-listing
// order. Symbolic links are followed. A directory whose resolved path was already
// visited during this scan, or which lies deeper than the depth bound, is skipped
// with a warning.
func (s *Scanner) Scan(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrScanFailed.Error()), "root", root)
	}
	if !info.IsDir() {
		return nil, zerr.With(zerr.Wrap(errNotDir, domain.ErrScanFailed.Error()), "root", root)
	}

	var files []string
	visited := make(map[string]struct{})
	if err := s.scanDir(root, 0, visited, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func (s *Scanner) scanDir(dir string, depth int, visited map[string]struct{}, files *[]string) error {
	if depth > s.maxDepth {
		s.warn("skipping directory deeper than %d levels: %s", s.maxDepth, dir)
		return nil
	}

	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		resolved = dir
	}
	if _, seen := visited[resolved]; seen {
		s.warn("skipping already visited directory (symlink cycle?): %s", dir)
		return nil
	}
	visited[resolved] = struct{}{}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrScanFailed.Error()), "dir", dir)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		// Stat follows symlinks, so linked files and directories are treated
		// like their targets.
		info, err := os.Stat(path)
		if err != nil {
			s.warn("skipping unreadable entry: %s", path)
			continue
		}

		if info.IsDir() {
			if err := s.scanDir(path, depth+1, visited, files); err != nil {
				return err
			}
			continue
		}

		if isIcon(entry.Name()) {
			*files = append(*files, path)
		}
	}

	return nil
}

func (s *Scanner) warn(format string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(fmt.Sprintf(format, args...))
	}
}

// isIcon reports whether name carries the icon extension, ignoring case.
func isIcon(name string) bool {
	return strings.EqualFold(filepath.Ext(name), domain.IconExt)
}
