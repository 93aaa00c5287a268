package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeNames_sorted_and_include_default(t *testing.T) {
	names := ThemeNames()

	assert.IsIncreasing(t, names)
	assert.Contains(t, names, DefaultTheme)
}

func TestSetTheme_updates_palette(t *testing.T) {
	t.Cleanup(func() { SetTheme(themes[DefaultTheme]) })

	p, ok := GetPalette("gruvbox")
	require.True(t, ok)

	SetTheme(p)

	assert.Equal(t, p, CurrentPalette)
}

func TestGetPalette_unknown(t *testing.T) {
	_, ok := GetPalette("solarized")
	assert.False(t, ok)
}

func TestGlamourStyle_uses_palette(t *testing.T) {
	cfg := GlamourStyle()

	require.NotNil(t, cfg.Document.Color)
	assert.Equal(t, string(CurrentPalette.Foreground), *cfg.Document.Color)
	require.NotNil(t, cfg.H1.Color)
	assert.Equal(t, string(CurrentPalette.Primary), *cfg.H1.Color)
}
