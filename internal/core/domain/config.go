package domain

import (
	"path/filepath"
	"time"

	"go.trai.ch/zerr"
)

// InjectPosition selects where the sprite is spliced into HTML pages.
type InjectPosition string

const (
	// InjectNone leaves pages untouched.
	InjectNone InjectPosition = ""
	// InjectBodyFirst inserts the sprite as the first child of <body>.
	InjectBodyFirst InjectPosition = "body-first"
	// InjectBodyLast appends the sprite as the last child of <body>.
	InjectBodyLast InjectPosition = "body-last"
)

// ParseInjectPosition validates a configured inject position.
func ParseInjectPosition(s string) (InjectPosition, error) {
	switch p := InjectPosition(s); p {
	case InjectNone, InjectBodyFirst, InjectBodyLast:
		return p, nil
	default:
		return InjectNone, zerr.With(ErrInvalidInjectPosition, "inject", s)
	}
}

// OutputConfig describes where the sprite file is written.
type OutputConfig struct {
	FileName string
	Dir      string
}

// Enabled reports whether file output is configured.
func (o OutputConfig) Enabled() bool {
	return o.FileName != ""
}

// Path returns the destination file path.
func (o OutputConfig) Path() string {
	return filepath.Join(o.Dir, o.FileName)
}

// ConfigOptions holds raw configuration values before defaults and validation.
type ConfigOptions struct {
	IconDirs       []string
	SymbolID       string
	RootID         string
	Inject         string
	PublicDir      string
	Pages          []string
	OutputFileName string
	OutputDir      string
	Optimizer      OptimizerOptions
	Concurrency    int
	Debounce       time.Duration
	Verbose        bool
	DevAddr        string
}

// Config is the validated configuration of one sprite instance. It is not
// modified after construction.
type Config struct {
	IconDirs    []string
	SymbolID    SymbolIDTemplate
	RootID      string
	Inject      InjectPosition
	PublicDir   string
	Pages       []string
	Output      OutputConfig
	Optimizer   OptimizerOptions
	Concurrency int
	Debounce    time.Duration
	Verbose     bool
	DevAddr     string
}

// NewConfig applies defaults to opts and validates the result. It performs no I/O.
func NewConfig(opts ConfigOptions) (*Config, error) {
	if len(opts.IconDirs) == 0 {
		return nil, ErrNoIconDirs
	}

	pattern := opts.SymbolID
	if pattern == "" {
		pattern = DefaultSymbolID
	}
	symbolID, err := NewSymbolIDTemplate(pattern)
	if err != nil {
		return nil, err
	}

	inject, err := ParseInjectPosition(opts.Inject)
	if err != nil {
		return nil, err
	}

	if inject == InjectNone && opts.OutputFileName == "" {
		return nil, ErrNoDeliveryMechanism
	}

	if opts.Concurrency < 0 {
		return nil, zerr.With(ErrInvalidConcurrency, "concurrency", opts.Concurrency)
	}

	cfg := &Config{
		IconDirs:    append([]string(nil), opts.IconDirs...),
		SymbolID:    symbolID,
		RootID:      valueOr(opts.RootID, DefaultRootID),
		Inject:      inject,
		PublicDir:   valueOr(opts.PublicDir, DefaultPublicDir),
		Pages:       append([]string(nil), opts.Pages...),
		Optimizer:   opts.Optimizer,
		Concurrency: opts.Concurrency,
		Debounce:    opts.Debounce,
		Verbose:     opts.Verbose,
		DevAddr:     valueOr(opts.DevAddr, DefaultDevAddr),
	}
	cfg.Output = OutputConfig{
		FileName: opts.OutputFileName,
		Dir:      valueOr(opts.OutputDir, cfg.PublicDir),
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	return cfg, nil
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
