package svgo_test

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/spritz/internal/adapters/svgo"
	"go.trai.ch/spritz/internal/core/domain"
)

const icon = `<?xml version="1.0" encoding="UTF-8"?>
<!-- exported by an editor -->
<svg xmlns="http://www.w3.org/2000/svg" width="32" height="32" viewBox="0 0 32 32" fill="red" stroke-width="1.50">
  <defs>
    <linearGradient id="gradient">
      <stop offset="0" stop-color="#ff0000"/>
    </linearGradient>
  </defs>
  <path data-name="body" fill-rule="evenodd" d="M 0 0 L 10 10" fill="url(#gradient)"/>
</svg>`

func parse(t *testing.T, markup []byte) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(markup))
	require.NotNil(t, doc.Root())
	return doc.Root()
}

func TestOptimizer_Optimize_Defaults(t *testing.T) {
	out, err := svgo.New().Optimize([]byte(icon), domain.OptimizerOptions{})
	require.NoError(t, err)

	assert.NotContains(t, string(out), "exported by an editor")
	assert.NotContains(t, string(out), "<?xml")

	root := parse(t, out)
	assert.Equal(t, "svg", root.Tag)
	assert.Equal(t, "0 0 32 32", root.SelectAttrValue("viewBox", ""))
	assert.Equal(t, "red", root.SelectAttrValue("fill", ""))
	assert.Equal(t, "1.50", root.SelectAttrValue("stroke-width", ""))

	gradient := root.FindElement("//linearGradient")
	require.NotNil(t, gradient)
	assert.Equal(t, "gradient", gradient.SelectAttrValue("id", ""))

	path := root.FindElement("//path")
	require.NotNil(t, path)
	assert.Equal(t, "url(#gradient)", path.SelectAttrValue("fill", ""))
}

func TestOptimizer_Optimize_IsStable(t *testing.T) {
	opt := svgo.New()

	first, err := opt.Optimize([]byte(icon), domain.OptimizerOptions{})
	require.NoError(t, err)

	second, err := opt.Optimize(first, domain.OptimizerOptions{})
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestOptimizer_Optimize_RemoveViewBox(t *testing.T) {
	out, err := svgo.New().Optimize([]byte(icon), domain.OptimizerOptions{
		RemoveViewBox: domain.Bool(true),
	})
	require.NoError(t, err)

	root := parse(t, out)
	assert.Nil(t, root.SelectAttr("viewBox"))
}

func TestOptimizer_Optimize_RemoveAttrs(t *testing.T) {
	out, err := svgo.New().Optimize([]byte(icon), domain.OptimizerOptions{
		RemoveAttrs: []string{"data-name", "fill-rule"},
	})
	require.NoError(t, err)

	path := parse(t, out).FindElement("//path")
	require.NotNil(t, path)
	assert.Nil(t, path.SelectAttr("data-name"))
	// fill-rule belongs to the preserved fill family.
	assert.Equal(t, "evenodd", path.SelectAttrValue("fill-rule", ""))
}

func TestOptimizer_Optimize_MinifyIDs(t *testing.T) {
	out, err := svgo.New().Optimize([]byte(icon), domain.OptimizerOptions{
		MinifyIDs: domain.Bool(true),
	})
	require.NoError(t, err)

	root := parse(t, out)
	gradient := root.FindElement("//linearGradient")
	require.NotNil(t, gradient)
	assert.Equal(t, "a", gradient.SelectAttrValue("id", ""))

	path := root.FindElement("//path")
	require.NotNil(t, path)
	assert.Equal(t, "url(#a)", path.SelectAttrValue("fill", ""))
}

func TestOptimizer_Optimize_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "malformed markup",
			input:   `<svg><path></svg>`,
			wantErr: domain.ErrIconParseFailed,
		},
		{
			name:    "not an svg",
			input:   `<html><body/></html>`,
			wantErr: domain.ErrIconNoRoot,
		},
		{
			name:    "empty input",
			input:   ``,
			wantErr: domain.ErrIconNoRoot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svgo.New().Optimize([]byte(tt.input), domain.OptimizerOptions{})
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr.Error())
		})
	}
}

func TestResolveOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		got, err := svgo.ResolveOptions(domain.OptimizerOptions{})
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultOptimizerOptions(), got)
	})

	t.Run("overrides are kept", func(t *testing.T) {
		got, err := svgo.ResolveOptions(domain.OptimizerOptions{
			Precision:            3,
			PreserveAttrPrefixes: []string{"stroke"},
			MinifyIDs:            domain.Bool(true),
		})
		require.NoError(t, err)
		assert.Equal(t, 3, got.Precision)
		assert.Equal(t, []string{"stroke"}, got.PreserveAttrPrefixes)
		assert.True(t, domain.IsSet(got.MinifyIDs))
		assert.False(t, domain.IsSet(got.RemoveViewBox))
	})

	t.Run("multipass is forced", func(t *testing.T) {
		got, err := svgo.ResolveOptions(domain.OptimizerOptions{Multipass: domain.Bool(false)})
		require.NoError(t, err)
		assert.True(t, domain.IsSet(got.Multipass))
	})
}
