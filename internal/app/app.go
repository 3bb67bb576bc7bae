// Package app implements the application layer for spritz.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/spritz/internal/adapters/devserver" //nolint:depguard // Wired in app layer
	"go.trai.ch/spritz/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/spritz/internal/core/domain"
	"go.trai.ch/spritz/internal/core/ports"
	"go.trai.ch/spritz/internal/engine/sprite"
	"go.trai.ch/zerr"
)

const shutdownTimeout = 5 * time.Second

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	scanner      ports.Scanner
	optimizer    ports.Optimizer
	writer       ports.Writer
	injector     ports.Injector
	watcher      ports.Watcher
	logger       ports.Logger
	tracer       trace.Tracer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	scanner ports.Scanner,
	optimizer ports.Optimizer,
	writer ports.Writer,
	injector ports.Injector,
	w ports.Watcher,
	log ports.Logger,
	tracer trace.Tracer,
) *App {
	return &App{
		configLoader: loader,
		scanner:      scanner,
		optimizer:    optimizer,
		writer:       writer,
		injector:     injector,
		watcher:      w,
		logger:       log,
		tracer:       tracer,
	}
}

// ConfigOptions selects and adjusts the configuration of a command.
type ConfigOptions struct {
	// Path is an explicit configuration file. Empty means discovery from the
	// working directory.
	Path string
	// Verbose enables informational logging regardless of the file setting.
	Verbose bool
}

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	Config ConfigOptions
}

// DevOptions configuration for the Dev method.
type DevOptions struct {
	Config ConfigOptions
	// OnReady is called with the bound address once the dev server is listening.
	OnReady func(addr string)
}

// InjectOptions configuration for the Inject method.
type InjectOptions struct {
	Config ConfigOptions
	In     io.Reader
	Out    io.Writer
}

func (a *App) loadConfig(opts ConfigOptions) (*domain.Config, error) {
	var (
		cfg *domain.Config
		err error
	)
	if opts.Path != "" {
		cfg, err = a.configLoader.LoadFile(opts.Path)
	} else {
		cfg, err = a.configLoader.Load(".")
	}
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	a.logger.SetVerbose(opts.Verbose || cfg.Verbose)
	return cfg, nil
}

func (a *App) newBuilder(cfg *domain.Config) *sprite.Builder {
	return sprite.NewBuilder(cfg, a.scanner, a.optimizer, a.logger, a.tracer)
}

// Build runs one generation pass, writes the sprite file when configured and
// injects the sprite into the configured pages.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	cfg, err := a.loadConfig(opts.Config)
	if err != nil {
		return err
	}

	spr, err := a.newBuilder(cfg).Generate(ctx)
	if err != nil {
		return err
	}

	if cfg.Output.Enabled() {
		a.writeSprite(cfg, spr)
	}

	if cfg.Inject != domain.InjectNone {
		a.injectPages(cfg, spr)
	}

	return nil
}

// Inject generates the sprite and injects it into a single page read from
// opts.In, writing the result to opts.Out.
func (a *App) Inject(ctx context.Context, opts InjectOptions) error {
	cfg, err := a.loadConfig(opts.Config)
	if err != nil {
		return err
	}

	spr, err := a.newBuilder(cfg).Generate(ctx)
	if err != nil {
		return err
	}

	page, err := io.ReadAll(opts.In)
	if err != nil {
		return zerr.Wrap(err, domain.ErrPageReadFailed.Error())
	}

	out, err := a.injector.Inject(page, spr, cfg.Inject)
	if err != nil {
		return zerr.Wrap(err, domain.ErrPageTransformFailed.Error())
	}

	if _, err := opts.Out.Write(out); err != nil {
		return zerr.Wrap(err, "failed to write page")
	}
	return nil
}

// Dev runs the first pass, serves the public directory with live reload and
// regenerates the sprite whenever the icon directories change. It returns when
// ctx is cancelled. A fatal watcher error stops regeneration but keeps the
// server running with the last sprite.
func (a *App) Dev(ctx context.Context, opts DevOptions) error {
	cfg, err := a.loadConfig(opts.Config)
	if err != nil {
		return err
	}

	builder := a.newBuilder(cfg)
	spr, err := builder.Generate(ctx)
	if err != nil {
		return err
	}
	if cfg.Output.Enabled() {
		a.writeSprite(cfg, spr)
	}

	srv, err := devserver.New(cfg, a.injector, a.logger)
	if err != nil {
		return err
	}
	srv.Notify(ctx, spr)
	if err := srv.Start(); err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error(err)
		}
	}()

	if opts.OnReady != nil {
		opts.OnReady(srv.Addr())
	}

	if err := a.watcher.Start(ctx, cfg.IconDirs); err != nil {
		return err
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	debouncer := watcher.NewDebouncer(cfg.Debounce, func(paths []string) {
		a.regenerate(ctx, cfg, builder, srv, paths)
	})
	defer debouncer.Stop()

	go func() {
		for event := range a.watcher.Events() {
			debouncer.Add(event.Path)
		}
	}()

	select {
	case <-ctx.Done():
	case <-a.watcher.Done():
		if err := a.watcher.Err(); err != nil {
			a.logger.Warn("icon watching stopped, serving the last sprite until interrupted")
		}
		<-ctx.Done()
	}

	return nil
}

// regenerate runs one propagation pass: invalidate, generate, persist, notify.
func (a *App) regenerate(
	ctx context.Context,
	cfg *domain.Config,
	builder *sprite.Builder,
	notifier ports.Notifier,
	paths []string,
) {
	if ctx.Err() != nil {
		return
	}
	a.logger.Info(fmt.Sprintf("%d icon change(s) detected", len(paths)))

	builder.Invalidate()
	spr, err := builder.Generate(ctx)
	if err != nil {
		if ctx.Err() == nil {
			a.logger.Error(err)
		}
		return
	}

	if cfg.Output.Enabled() {
		a.writeSprite(cfg, spr)
	}
	notifier.Notify(ctx, spr)
}

// writeSprite persists the sprite file. Failures are logged and do not abort
// the command.
func (a *App) writeSprite(cfg *domain.Config, spr *domain.Sprite) {
	written, err := a.writer.Write(cfg.Output.Dir, cfg.Output.FileName, spr.Markup)
	if err != nil {
		a.logger.Error(err)
		return
	}
	if written {
		a.logger.Info("wrote " + cfg.Output.Path())
	}
}

// injectPages injects the sprite into every page matched by the configured
// globs. Each page is handled independently; failures are logged.
func (a *App) injectPages(cfg *domain.Config, spr *domain.Sprite) {
	seen := make(map[string]struct{})
	for _, pattern := range cfg.Pages {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			a.logger.Error(zerr.With(zerr.Wrap(err, "invalid pages pattern"), "pattern", pattern))
			continue
		}
		for _, page := range matches {
			if _, ok := seen[page]; ok {
				continue
			}
			seen[page] = struct{}{}
			a.injectPage(cfg, spr, page)
		}
	}
}

func (a *App) injectPage(cfg *domain.Config, spr *domain.Sprite, page string) {
	// #nosec G304 -- page comes from the configured globs
	raw, err := os.ReadFile(page)
	if err != nil {
		a.logger.Error(zerr.With(zerr.Wrap(err, domain.ErrPageReadFailed.Error()), "path", page))
		return
	}

	out, err := a.injector.Inject(raw, spr, cfg.Inject)
	if err != nil {
		a.logger.Error(zerr.With(zerr.Wrap(err, domain.ErrPageTransformFailed.Error()), "path", page))
		return
	}

	written, err := a.writer.Write(filepath.Dir(page), filepath.Base(page), string(out))
	if err != nil {
		a.logger.Error(err)
		return
	}
	if written {
		a.logger.Info("injected sprite into " + page)
	}
}
