// Package config provides the configuration loader for spritz.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/spritz/internal/core/domain"
	"go.trai.ch/spritz/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load finds spritz.yaml in cwd or the nearest parent directory and loads it.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	configPath, err := l.findConfiguration(cwd)
	if err != nil {
		return nil, err
	}
	return l.LoadFile(configPath)
}

// LoadFile loads the configuration file at path. Relative paths inside the
// file are resolved against its directory.
func (l *Loader) LoadFile(path string) (*domain.Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var spritzfile Spritzfile
	if err := readAndUnmarshalYAML(abs, &spritzfile); err != nil {
		return nil, zerr.With(err, "path", abs)
	}

	opts, err := toOptions(filepath.Dir(abs), &spritzfile)
	if err != nil {
		return nil, zerr.With(err, "path", abs)
	}

	cfg, err := domain.NewConfig(opts)
	if err != nil {
		return nil, zerr.With(err, "path", abs)
	}

	for _, dir := range cfg.IconDirs {
		if _, err := os.Stat(dir); err != nil && l.Logger != nil {
			l.Logger.Warn(fmt.Sprintf("icon directory %s does not exist", dir))
		}
	}
	return cfg, nil
}

func (l *Loader) findConfiguration(cwd string) (string, error) {
	currentDir, err := filepath.Abs(cwd)
	if err != nil {
		currentDir = cwd
	}

	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

// toOptions maps the file DTO to domain options, resolving paths against baseDir.
func toOptions(baseDir string, f *Spritzfile) (domain.ConfigOptions, error) {
	var debounce time.Duration
	if f.Debounce != "" {
		d, err := time.ParseDuration(f.Debounce)
		if err != nil || d < 0 {
			if err == nil {
				err = domain.ErrInvalidDebounce
			}
			return domain.ConfigOptions{}, zerr.With(zerr.Wrap(err, domain.ErrInvalidDebounce.Error()), "debounce", f.Debounce)
		}
		debounce = d
	}

	opts := domain.ConfigOptions{
		IconDirs:       resolvePaths(baseDir, f.Icons),
		SymbolID:       f.SymbolID,
		RootID:         f.RootID,
		Inject:         f.Inject,
		PublicDir:      resolvePath(baseDir, f.PublicDir),
		Pages:          resolvePaths(baseDir, f.Pages),
		OutputFileName: f.Output.FileName,
		OutputDir:      resolvePath(baseDir, f.Output.Dir),
		Concurrency:    f.Concurrency,
		Debounce:       debounce,
		Verbose:        f.Verbose,
		DevAddr:        f.Dev.Addr,
	}
	if opts.PublicDir == "" {
		opts.PublicDir = filepath.Join(baseDir, domain.DefaultPublicDir)
	}
	if f.Optimizer != nil {
		opts.Optimizer = domain.OptimizerOptions{
			Precision:            f.Optimizer.Precision,
			KeepComments:         f.Optimizer.KeepComments,
			RemoveViewBox:        f.Optimizer.RemoveViewBox,
			PreserveAttrPrefixes: f.Optimizer.PreserveAttrPrefixes,
			RemoveAttrs:          f.Optimizer.RemoveAttrs,
			MinifyIDs:            f.Optimizer.MinifyIDs,
		}
	}
	return opts, nil
}

func resolvePath(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

func resolvePaths(baseDir string, paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	res := make([]string, len(paths))
	for i, p := range paths {
		res[i] = resolvePath(baseDir, p)
	}
	return res
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is provided by the user
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
