package domain_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/spritz/internal/core/domain"
)

func TestNewSymbolIDTemplate_RequiresName(t *testing.T) {
	_, err := domain.NewSymbolIDTemplate("icon-[dir]")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrSymbolIDMissingName.Error())
}

func TestSymbolIDTemplate_Generate(t *testing.T) {
	root := filepath.Join("icons")

	tests := []struct {
		name     string
		template string
		path     string
		want     string
	}{
		{
			name:     "dir and name",
			template: "[dir]-[name]",
			path:     filepath.Join("icons", "nav", "home.svg"),
			want:     "nav-home",
		},
		{
			name:     "sibling icon",
			template: "[dir]-[name]",
			path:     filepath.Join("icons", "nav", "settings.svg"),
			want:     "nav-settings",
		},
		{
			name:     "icon directly under root",
			template: "icon-[dir]-[name]",
			path:     filepath.Join("icons", "logo.svg"),
			want:     "icon--logo",
		},
		{
			name:     "nested directories use the enclosing one",
			template: "[dir]/[name]",
			path:     filepath.Join("icons", "a", "b", "arrow.svg"),
			want:     "b/arrow",
		},
		{
			name:     "name only",
			template: "i-[name]",
			path:     filepath.Join("icons", "nav", "home.svg"),
			want:     "i-home",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl, err := domain.NewSymbolIDTemplate(tt.template)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tpl.Generate(root, tt.path))
		})
	}
}
