package domain

import (
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

const (
	// DirPlaceholder is replaced by the base name of the directory enclosing the icon.
	DirPlaceholder = "[dir]"
	// NamePlaceholder is replaced by the icon file name without its extension.
	NamePlaceholder = "[name]"
)

// SymbolIDTemplate maps icon paths to symbol identifiers.
type SymbolIDTemplate struct {
	pattern string
}

// NewSymbolIDTemplate validates pattern and returns a template for it.
// Without the [name] placeholder every icon would resolve to the same id, so
// such patterns are rejected.
func NewSymbolIDTemplate(pattern string) (SymbolIDTemplate, error) {
	if !strings.Contains(pattern, NamePlaceholder) {
		return SymbolIDTemplate{}, zerr.With(ErrSymbolIDMissingName, "template", pattern)
	}
	return SymbolIDTemplate{pattern: pattern}, nil
}

// String returns the raw pattern.
func (t SymbolIDTemplate) String() string {
	return t.pattern
}

// Generate returns the symbol id of the icon at path, which was found under root.
// The [dir] placeholder resolves to the base name of the directory enclosing the
// icon, or to the empty string when the icon sits directly in root.
func (t SymbolIDTemplate) Generate(root, path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	return strings.NewReplacer(
		DirPlaceholder, enclosingDir(root, path),
		NamePlaceholder, name,
	).Replace(t.pattern)
}

func enclosingDir(root, path string) string {
	parent := filepath.Dir(path)
	rel, err := filepath.Rel(root, parent)
	if err != nil || strings.HasPrefix(rel, "..") {
		// Not under root; fall back to the parent directory itself.
		rel = parent
	}
	if rel == "." || rel == "" {
		return ""
	}
	return filepath.Base(rel)
}
