package domain

import "time"

const (
	// AppName is the application name used for tracing and banners.
	AppName = "spritz"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "spritz.yaml"

	// IconExt is the extension of icon files.
	IconExt = ".svg"

	// DefaultSymbolID is the symbol id template used when none is configured.
	DefaultSymbolID = "icon-[dir]-[name]"

	// DefaultRootID is the id of the sprite root container.
	DefaultRootID = "__spritz_sprite__"

	// DefaultPublicDir is the directory served by the dev server and used for output by default.
	DefaultPublicDir = "public"

	// DefaultDevAddr is the address the dev server listens on.
	DefaultDevAddr = "127.0.0.1:5173"

	// DefaultDebounce is the quiet period after the last icon change before regenerating.
	DefaultDebounce = 200 * time.Millisecond

	// DefaultViewBox is used for icons that declare no viewBox.
	DefaultViewBox = "0 0 24 24"

	// MaxScanDepth bounds directory recursion below an icon root.
	MaxScanDepth = 64

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)
