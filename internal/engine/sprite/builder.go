// Package sprite implements the generation pass that turns icon files into one
// inline SVG sprite document.
package sprite

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/beevik/etree"
	"github.com/cespare/xxhash/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.trai.ch/spritz/internal/core/domain"
	"go.trai.ch/spritz/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const (
	rootOpen = `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" ` +
		`style="position: absolute; width: 0; height: 0" id="`
)

// entry is the cached result of processing one icon file.
type entry struct {
	path   string
	id     string
	markup string
	defs   string
}

// source is one enumerated icon file together with the root it was found under.
type source struct {
	root string
	path string
}

// Builder owns the sprite cache of one configuration and runs generation passes
// against it. Passes are serialized; icon files within a pass are processed
// concurrently.
type Builder struct {
	cfg       *domain.Config
	scanner   ports.Scanner
	optimizer ports.Optimizer
	logger    ports.Logger
	tracer    trace.Tracer

	// passMu allows at most one active generation pass.
	passMu sync.Mutex

	mu      sync.RWMutex
	cache   map[string]*entry
	current *domain.Sprite
}

// NewBuilder creates a Builder for cfg. A nil tracer disables tracing.
func NewBuilder(
	cfg *domain.Config,
	scanner ports.Scanner,
	optimizer ports.Optimizer,
	log ports.Logger,
	tracer trace.Tracer,
) *Builder {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}
	return &Builder{
		cfg:       cfg,
		scanner:   scanner,
		optimizer: optimizer,
		logger:    log,
		tracer:    tracer,
		cache:     make(map[string]*entry),
	}
}

// Generate runs one generation pass and returns the resulting sprite. Icons that
// fail to read, optimize or parse are logged and left out; they never fail the
// pass. The only error returned is the cancellation of ctx.
func (b *Builder) Generate(ctx context.Context) (*domain.Sprite, error) {
	b.passMu.Lock()
	defer b.passMu.Unlock()

	ctx, span := b.tracer.Start(ctx, domain.SpanGenerate)
	defer span.End()

	sources := b.enumerate()
	results := make([]*entry, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.limit())
	for i, src := range sources {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			if cached, ok := b.lookup(src.path); ok {
				results[i] = cached
				return nil
			}

			e, err := b.process(gctx, src)
			if err != nil {
				b.logger.Error(zerr.With(err, "path", src.path))
				return nil
			}

			b.store(e)
			results[i] = e
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	sprite := b.assemble(results)
	span.SetAttributes(attribute.Int(domain.AttrSymbolCount, len(sprite.Symbols)))

	if sprite.Empty() {
		b.logger.Warn(domain.ErrEmptySprite.Error())
	}

	b.mu.Lock()
	b.current = sprite
	b.mu.Unlock()

	return sprite, nil
}

// Invalidate drops every cached icon and its definitions. The next pass
// processes all icon files again.
func (b *Builder) Invalidate() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cache = make(map[string]*entry)
}

// Current returns the sprite of the last completed pass, or nil before the first one.
func (b *Builder) Current() *domain.Sprite {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.current
}

// enumerate lists the icon files of every root in configuration order. A root
// that cannot be scanned is logged and skipped.
func (b *Builder) enumerate() []source {
	var sources []source
	for _, root := range b.cfg.IconDirs {
		files, err := b.scanner.Scan(root)
		if err != nil {
			b.logger.Error(err)
			continue
		}
		for _, path := range files {
			sources = append(sources, source{root: root, path: path})
		}
	}
	return sources
}

func (b *Builder) limit() int {
	if b.cfg.Concurrency > 0 {
		return b.cfg.Concurrency
	}
	return -1
}

func (b *Builder) lookup(path string) (*entry, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	e, ok := b.cache[path]
	return e, ok
}

func (b *Builder) store(e *entry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cache[e.path] = e
}

// process turns one icon file into a <symbol> fragment. The fragment carries the
// generated id and the icon's viewBox, every root attribute except width and
// height, and the root's children. <defs> blocks are hoisted out of the symbol.
func (b *Builder) process(ctx context.Context, src source) (*entry, error) {
	_, span := b.tracer.Start(ctx, domain.SpanIcon, trace.WithAttributes(attribute.String(domain.AttrIconPath, src.path)))
	defer span.End()

	e, err := b.buildSymbol(src)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return e, nil
}

func (b *Builder) buildSymbol(src source) (*entry, error) {
	raw, err := os.ReadFile(src.path)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrIconReadFailed.Error())
	}

	optimized, err := b.optimizer.Optimize(raw, b.cfg.Optimizer)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrIconOptimizeFailed.Error())
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(optimized); err != nil {
		return nil, zerr.Wrap(err, domain.ErrIconParseFailed.Error())
	}
	root := doc.Root()
	if root == nil || root.Tag != "svg" {
		return nil, domain.ErrIconNoRoot
	}

	id := b.cfg.SymbolID.Generate(src.root, src.path)

	symbol := etree.NewElement("symbol")
	symbol.CreateAttr("id", id)
	symbol.CreateAttr("viewBox", root.SelectAttrValue("viewBox", domain.DefaultViewBox))
	for _, attr := range root.Attr {
		switch attr.FullKey() {
		case "id", "viewBox", "width", "height":
			continue
		}
		symbol.CreateAttr(attr.FullKey(), attr.Value)
	}

	var defs strings.Builder
	for _, child := range slices.Clone(root.Child) {
		if el, ok := child.(*etree.Element); ok && el.Tag == "defs" {
			for _, def := range el.Child {
				def.WriteTo(&defs, &doc.WriteSettings)
			}
			continue
		}
		symbol.AddChild(child)
	}

	var markup strings.Builder
	symbol.WriteTo(&markup, &doc.WriteSettings)

	return &entry{
		path:   src.path,
		id:     id,
		markup: markup.String(),
		defs:   defs.String(),
	}, nil
}

// assemble concatenates the processed icons in enumeration order. When two icons
// share a symbol id the later one replaces the earlier fragment in place.
func (b *Builder) assemble(results []*entry) *domain.Sprite {
	sprite := &domain.Sprite{RootID: b.cfg.RootID}
	positions := make(map[string]int)

	var defs strings.Builder
	for _, e := range results {
		if e == nil {
			continue
		}
		defs.WriteString(e.defs)

		symbol := domain.Symbol{ID: e.id, Path: e.path, Markup: e.markup}
		if pos, ok := positions[e.id]; ok {
			b.logger.Warn(fmt.Sprintf("%s: %q from %s replaces %s",
				domain.ErrSymbolIDCollision.Error(), e.id, e.path, sprite.Symbols[pos].Path))
			sprite.Symbols[pos] = symbol
			continue
		}
		positions[e.id] = len(sprite.Symbols)
		sprite.Symbols = append(sprite.Symbols, symbol)
	}
	sprite.Defs = defs.String()

	var doc strings.Builder
	doc.WriteString(rootOpen)
	doc.WriteString(escapeAttr(sprite.RootID))
	doc.WriteString(`">`)
	if sprite.Defs != "" {
		doc.WriteString("<defs>")
		doc.WriteString(sprite.Defs)
		doc.WriteString("</defs>")
	}
	for _, s := range sprite.Symbols {
		doc.WriteString(s.Markup)
	}
	doc.WriteString("</svg>")

	sprite.Markup = doc.String()
	sprite.Version = fmt.Sprintf("%016x", xxhash.Sum64String(sprite.Markup))
	return sprite
}

var attrEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `"`, "&quot;")

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
