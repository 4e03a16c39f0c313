package config_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/foldedit/pkg/config"
)

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	t.Run("minimal template is all comments", func(t *testing.T) {
		t.Parallel()
		out, err := config.GenerateTemplate(config.TemplateOptions{Format: "yaml"})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(out), config.DefaultTemplateHeader()))

		cfg, err := config.FromYAML(out)
		require.NoError(t, err)
		assert.Equal(t, &config.Config{}, cfg)
	})

	t.Run("full template carries the defaults", func(t *testing.T) {
		t.Parallel()
		out, err := config.GenerateTemplate(config.TemplateOptions{Full: true, Format: "yaml"})
		require.NoError(t, err)

		cfg, err := config.FromYAML(out)
		require.NoError(t, err)
		defaults := config.NewConfig()
		assert.Equal(t, defaults.IndentWidth, cfg.IndentWidth)
		assert.Equal(t, defaults.TabWidth, cfg.TabWidth)
		assert.Equal(t, defaults.BufferLines, cfg.BufferLines)
		assert.Equal(t, defaults.HistoryDepth, cfg.HistoryDepth)
		assert.Equal(t, defaults.LineHeights, cfg.LineHeights)
		assert.Equal(t, 300*time.Millisecond, cfg.Search.Debounce)
		assert.Equal(t, defaults.Batch, cfg.Batch)
		assert.Equal(t, "ctrl+s", cfg.Keybindings["save"])
		assert.Equal(t, "ctrl+z", cfg.Keybindings["undo"])
		assert.Equal(t, defaults.Theme, cfg.Theme)
		assert.True(t, cfg.BackupsEnabled())
		assert.Equal(t, []string{"vendor/**", "node_modules/**"}, cfg.Ignore)
		assert.Contains(t, string(out), "selectAll")
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		out, err := config.GenerateTemplate(config.TemplateOptions{Full: true, Format: "json"})
		require.NoError(t, err)

		var doc map[string]any
		require.NoError(t, json.Unmarshal(out, &doc))
		assert.InDelta(t, 4, doc["indent_width"], 0)
		assert.Equal(t, "monokai", doc["theme"])
	})

	t.Run("minimal json is empty", func(t *testing.T) {
		t.Parallel()
		out, err := config.GenerateTemplate(config.TemplateOptions{Format: "json"})
		require.NoError(t, err)
		assert.JSONEq(t, "{}", string(out))
	})

	t.Run("template matches minimal yaml", func(t *testing.T) {
		t.Parallel()
		out, err := config.GenerateTemplate(config.TemplateOptions{})
		require.NoError(t, err)
		assert.Equal(t, config.Template(), out)
	})
}
