// Package svgo implements the SVG optimizer adapter on top of tdewolff/minify.
package svgo

import (
	"bytes"
	"strings"

	"dario.cat/mergo"
	"github.com/beevik/etree"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/svg"
	"go.trai.ch/spritz/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	mediaTypeSVG = "image/svg+xml"
	mediaTypeCSS = "text/css"

	// maxPasses bounds the multipass loop for inputs that never settle.
	maxPasses = 10
)

// Optimizer minifies icon markup while keeping the attributes icon consumers
// rely on for theming and cross-referencing.
type Optimizer struct{}

// New creates a new Optimizer.
func New() *Optimizer {
	return &Optimizer{}
}

// Optimize returns the optimized markup of raw. Options left unset fall back to
// domain.DefaultOptimizerOptions, and multipass optimization is always on.
func (o *Optimizer) Optimize(raw []byte, opts domain.OptimizerOptions) ([]byte, error) {
	resolved, err := ResolveOptions(opts)
	if err != nil {
		return nil, err
	}

	source := etree.NewDocument()
	if err := source.ReadFromBytes(raw); err != nil {
		return nil, zerr.Wrap(err, domain.ErrIconParseFailed.Error())
	}
	sourceRoot := source.Root()
	if sourceRoot == nil || sourceRoot.Tag != "svg" {
		return nil, domain.ErrIconNoRoot
	}

	m := newMinifier(resolved)
	out := raw
	for range maxPasses {
		next, err := m.Bytes(mediaTypeSVG, out)
		if err != nil {
			return nil, zerr.Wrap(err, domain.ErrIconOptimizeFailed.Error())
		}
		if bytes.Equal(next, out) {
			break
		}
		out = next
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(out); err != nil {
		return nil, zerr.Wrap(err, domain.ErrIconOptimizeFailed.Error())
	}
	root := doc.Root()
	if root == nil {
		return nil, domain.ErrIconNoRoot
	}

	restoreRootAttrs(sourceRoot, root, resolved)
	removeAttrs(root, resolved)
	if domain.IsSet(resolved.MinifyIDs) {
		minifyIDs(root)
	}

	return doc.WriteToBytes()
}

// ResolveOptions deep-merges opts onto the defaults and forces multipass.
func ResolveOptions(opts domain.OptimizerOptions) (domain.OptimizerOptions, error) {
	resolved := opts
	if err := mergo.Merge(&resolved, domain.DefaultOptimizerOptions()); err != nil {
		return domain.OptimizerOptions{}, zerr.Wrap(err, "failed to merge optimizer options")
	}
	resolved.Multipass = domain.Bool(true)
	return resolved, nil
}

func newMinifier(opts domain.OptimizerOptions) *minify.M {
	m := minify.New()
	m.AddFunc(mediaTypeCSS, css.Minify)
	m.Add(mediaTypeSVG, &svg.Minifier{
		Precision:    opts.Precision,
		KeepComments: domain.IsSet(opts.KeepComments),
	})
	return m
}

// restoreRootAttrs puts back the root attributes the minifier may have rewritten
// or dropped: the viewBox and every attribute of a preserved family.
func restoreRootAttrs(source, root *etree.Element, opts domain.OptimizerOptions) {
	if domain.IsSet(opts.RemoveViewBox) {
		root.RemoveAttr("viewBox")
	} else if vb := source.SelectAttr("viewBox"); vb != nil {
		root.CreateAttr("viewBox", vb.Value)
	}

	for _, attr := range source.Attr {
		if hasPreservedPrefix(attr.FullKey(), opts.PreserveAttrPrefixes) {
			root.CreateAttr(attr.FullKey(), attr.Value)
		}
	}
}

// removeAttrs strips the configured attribute names from el and its descendants.
func removeAttrs(el *etree.Element, opts domain.OptimizerOptions) {
	if len(opts.RemoveAttrs) == 0 {
		return
	}
	for _, name := range opts.RemoveAttrs {
		if hasPreservedPrefix(name, opts.PreserveAttrPrefixes) {
			continue
		}
		el.RemoveAttr(name)
	}
	for _, child := range el.ChildElements() {
		removeAttrs(child, opts)
	}
}

func hasPreservedPrefix(name string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}
