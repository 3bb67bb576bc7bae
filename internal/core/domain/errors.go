package domain

import "go.trai.ch/zerr"

var (
	// ErrNoIconDirs is returned when the configuration lists no icon directories.
	ErrNoIconDirs = zerr.New("at least one icon directory is required")

	// ErrSymbolIDMissingName is returned when the symbol id template lacks the [name] placeholder.
	ErrSymbolIDMissingName = zerr.New("symbol id template must contain the [name] placeholder")

	// ErrInvalidInjectPosition is returned when the inject option is not a known position.
	ErrInvalidInjectPosition = zerr.New("invalid inject position, expected 'body-first' or 'body-last'")

	// ErrNoDeliveryMechanism is returned when neither an inject position nor an output file is configured.
	ErrNoDeliveryMechanism = zerr.New("either 'inject' or 'output.fileName' must be configured")

	// ErrInvalidDebounce is returned when the debounce window cannot be parsed.
	ErrInvalidDebounce = zerr.New("invalid debounce duration")

	// ErrInvalidConcurrency is returned when the concurrency cap is negative.
	ErrInvalidConcurrency = zerr.New("concurrency must not be negative")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when no config file can be found.
	ErrConfigNotFound = zerr.New("could not find " + ConfigFileName)

	// ErrScanFailed is returned when an icon directory cannot be listed.
	ErrScanFailed = zerr.New("failed to scan icon directory")

	// ErrIconReadFailed is returned when an icon file cannot be read.
	ErrIconReadFailed = zerr.New("failed to read icon")

	// ErrIconOptimizeFailed is returned when the optimizer rejects an icon.
	ErrIconOptimizeFailed = zerr.New("failed to optimize icon")

	// ErrIconParseFailed is returned when optimized icon markup cannot be parsed.
	ErrIconParseFailed = zerr.New("failed to parse icon markup")

	// ErrIconNoRoot is returned when icon markup has no <svg> root element.
	ErrIconNoRoot = zerr.New("icon has no <svg> root element")

	// ErrEmptySprite is reported when a generation pass produced no symbols.
	ErrEmptySprite = zerr.New("no icons found, sprite is empty")

	// ErrSymbolIDCollision is reported when two icons resolve to the same symbol id.
	ErrSymbolIDCollision = zerr.New("symbol id collision, later icon overwrites earlier one")

	// ErrOutputDirCreateFailed is returned when the output directory cannot be created.
	ErrOutputDirCreateFailed = zerr.New("failed to create output directory")

	// ErrOutputWriteFailed is returned when the sprite file cannot be written.
	ErrOutputWriteFailed = zerr.New("failed to write sprite file")

	// ErrPageReadFailed is returned when an HTML page cannot be read.
	ErrPageReadFailed = zerr.New("failed to read page")

	// ErrPageTransformFailed is returned when an HTML page cannot be tokenized.
	ErrPageTransformFailed = zerr.New("failed to inject sprite into page")

	// ErrWatcherActive is returned when a second watch session is started on the same instance.
	ErrWatcherActive = zerr.New("a watcher is already active for this configuration")

	// ErrWatcherFailed is returned when the file system watcher cannot start or dies.
	ErrWatcherFailed = zerr.New("file watcher failed")

	// ErrDevServerFailed is returned when the dev server stops unexpectedly.
	ErrDevServerFailed = zerr.New("dev server failed")
)
