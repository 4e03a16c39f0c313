package pretty_test

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/foldedit/internal/ui/pretty"
)

func TestIsColorEnabled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode string
		want bool
	}{
		{mode: "always", want: true},
		{mode: "never", want: false},
		{mode: "auto", want: false},
		{mode: "", want: false},
	}

	for _, tt := range tests {
		t.Run("mode_"+tt.mode, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, pretty.IsColorEnabled(tt.mode, &bytes.Buffer{}))
		})
	}
}

func TestNoColorStylesRenderPlain(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "path", styles.FilePath.Render("path"))
	assert.Equal(t, "match", styles.Match.Render("match"))
	assert.Equal(t, "12", styles.GutterActive.Render("12"))
}

func TestThemeLookup(t *testing.T) {
	t.Parallel()

	assert.True(t, pretty.IsTheme("monokai"))
	assert.True(t, pretty.IsTheme("Monokai"))
	assert.False(t, pretty.IsTheme("no-such-theme"))

	names := pretty.ThemeNames()
	assert.Contains(t, names, "monokai")
	assert.IsIncreasing(t, names)
}

func TestThemeStyles(t *testing.T) {
	t.Parallel()

	plain := pretty.NewTheme("monokai", false)
	assert.Equal(t, "func", plain.Style("keyword").Render("func"))
	assert.Equal(t, "x", plain.Style("").Render("x"))

	colored := pretty.NewTheme("monokai", true)
	assert.Equal(t, "monokai", colored.Name)
	assert.NotEqual(t, lipgloss.NoColor{}, colored.Style("keyword").GetForeground())

	fallback := pretty.NewTheme("no-such-theme", true)
	assert.NotEqual(t, "no-such-theme", fallback.Name)
}
