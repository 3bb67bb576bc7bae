package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/spritz/internal/adapters/config"
	"go.trai.ch/spritz/internal/core/domain"
	"go.trai.ch/spritz/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func createFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	return path
}

func TestLoader_LoadFile(t *testing.T) {
	rootDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(rootDir, "src", "icons"), domain.DirPerm))

	path := createFile(t, rootDir, domain.ConfigFileName, `
icons: [src/icons]
symbolId: i-[name]
rootId: sprite
inject: body-first
publicDir: web
pages: ["web/**/*.html"]
output:
  fileName: sprite.svg
optimizer:
  precision: 3
  removeViewBox: true
  removeAttrs: [class]
concurrency: 4
debounce: 50ms
verbose: true
dev:
  addr: 127.0.0.1:9000
`)

	loader := config.NewLoader(nil)
	cfg, err := loader.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(rootDir, "src", "icons")}, cfg.IconDirs)
	assert.Equal(t, "i-[name]", cfg.SymbolID.String())
	assert.Equal(t, "sprite", cfg.RootID)
	assert.Equal(t, domain.InjectBodyFirst, cfg.Inject)
	assert.Equal(t, filepath.Join(rootDir, "web"), cfg.PublicDir)
	assert.Equal(t, []string{filepath.Join(rootDir, "web", "**", "*.html")}, cfg.Pages)
	assert.Equal(t, filepath.Join(rootDir, "web", "sprite.svg"), cfg.Output.Path())
	assert.Equal(t, 3, cfg.Optimizer.Precision)
	assert.True(t, domain.IsSet(cfg.Optimizer.RemoveViewBox))
	assert.Nil(t, cfg.Optimizer.KeepComments)
	assert.Equal(t, []string{"class"}, cfg.Optimizer.RemoveAttrs)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, 50*time.Millisecond, cfg.Debounce)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "127.0.0.1:9000", cfg.DevAddr)
}

func TestLoader_LoadFile_Defaults(t *testing.T) {
	rootDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(rootDir, "icons"), domain.DirPerm))
	path := createFile(t, rootDir, domain.ConfigFileName, "icons: [icons]\noutput:\n  fileName: sprite.svg\n")

	cfg, err := config.NewLoader(nil).LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultSymbolID, cfg.SymbolID.String())
	assert.Equal(t, domain.DefaultRootID, cfg.RootID)
	assert.Equal(t, domain.InjectNone, cfg.Inject)
	assert.Equal(t, filepath.Join(rootDir, domain.DefaultPublicDir), cfg.PublicDir)
	assert.Equal(t, filepath.Join(rootDir, domain.DefaultPublicDir), cfg.Output.Dir)
	assert.Equal(t, domain.DefaultDebounce, cfg.Debounce)
	assert.Equal(t, domain.DefaultDevAddr, cfg.DevAddr)
}

func TestLoader_LoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "invalid yaml",
			content: "icons: [unclosed",
			wantErr: domain.ErrConfigParseFailed,
		},
		{
			name:    "no icons",
			content: "output:\n  fileName: sprite.svg\n",
			wantErr: domain.ErrNoIconDirs,
		},
		{
			name:    "template without name",
			content: "icons: [icons]\nsymbolId: icon-[dir]\noutput:\n  fileName: sprite.svg\n",
			wantErr: domain.ErrSymbolIDMissingName,
		},
		{
			name:    "unknown inject position",
			content: "icons: [icons]\ninject: head\n",
			wantErr: domain.ErrInvalidInjectPosition,
		},
		{
			name:    "no delivery mechanism",
			content: "icons: [icons]\n",
			wantErr: domain.ErrNoDeliveryMechanism,
		},
		{
			name:    "bad debounce",
			content: "icons: [icons]\ninject: body-last\ndebounce: soon\n",
			wantErr: domain.ErrInvalidDebounce,
		},
		{
			name:    "negative debounce",
			content: "icons: [icons]\ninject: body-last\ndebounce: -1s\n",
			wantErr: domain.ErrInvalidDebounce,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := createFile(t, t.TempDir(), domain.ConfigFileName, tt.content)
			_, err := config.NewLoader(nil).LoadFile(path)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr.Error())
		})
	}
}

func TestLoader_LoadFile_Missing(t *testing.T) {
	_, err := config.NewLoader(nil).LoadFile(filepath.Join(t.TempDir(), domain.ConfigFileName))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrConfigReadFailed.Error())
}

func TestLoader_Load_Discovery(t *testing.T) {
	rootDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(rootDir, "icons"), domain.DirPerm))
	createFile(t, rootDir, domain.ConfigFileName, "icons: [icons]\ninject: body-last\n")

	nested := filepath.Join(rootDir, "src", "pages")
	require.NoError(t, os.MkdirAll(nested, domain.DirPerm))

	cfg, err := config.NewLoader(nil).Load(nested)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(rootDir, "icons")}, cfg.IconDirs)
}

func TestLoader_Load_NotFound(t *testing.T) {
	_, err := config.NewLoader(nil).Load(t.TempDir())
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrConfigNotFound.Error())
}

func TestLoader_WarnsAboutMissingIconDir(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(1)

	path := createFile(t, t.TempDir(), domain.ConfigFileName, "icons: [missing]\ninject: body-last\n")

	_, err := config.NewLoader(mockLogger).LoadFile(path)
	require.NoError(t, err)
}
