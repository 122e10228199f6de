package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/xiangqi-picker/internal/render"
	"github.com/DoyleJ11/xiangqi-picker/internal/render/rendertest"
)

func noEnvFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoad_Defaults(t *testing.T) {
	c, err := Load(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "json", c.LogFormat)
	assert.Equal(t, 1024, c.ExportSize)
	assert.Equal(t, "badge", c.ExportStyle)
	assert.True(t, c.ExportFrame)
	assert.Equal(t, "象棋选择_高分辨率.png", c.DefaultFileName)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PICKER_HTTP_ADDR", ":9000")
	t.Setenv("PICKER_EXPORT_SIZE", "512")
	t.Setenv("PICKER_EXPORT_STYLE", "grid")
	t.Setenv("PICKER_EXPORT_FRAME", "false")

	c, err := Load(noEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, ":9000", c.HTTPAddr)
	assert.Equal(t, 512, c.ExportSize)

	rc, err := c.RenderConfig()
	require.NoError(t, err)
	assert.Equal(t, 512, rc.Size)
	assert.Equal(t, render.StyleGrid, rc.Style)
	assert.False(t, rc.Frame)
	assert.Nil(t, rc.Font)
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "picker.env")
	require.NoError(t, os.WriteFile(path, []byte("PICKER_LOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("PICKER_LOG_LEVEL") })

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "non-numeric size", key: "PICKER_EXPORT_SIZE", val: "big"},
		{name: "unknown style", key: "PICKER_EXPORT_STYLE", val: "hex"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load(noEnvFile(t))
			assert.Error(t, err)
		})
	}
}

func TestRenderConfig_MissingFont(t *testing.T) {
	c, err := Load(noEnvFile(t))
	require.NoError(t, err)
	c.FontPath = filepath.Join(t.TempDir(), "missing.ttf")

	_, err = c.RenderConfig()
	assert.Error(t, err)
}

func TestNewRenderer_RequiresFont(t *testing.T) {
	c, err := Load(noEnvFile(t))
	require.NoError(t, err)

	_, err = c.NewRenderer()
	require.Error(t, err)
	assert.ErrorIs(t, err, render.ErrNoFont)
	assert.Contains(t, err.Error(), "PICKER_FONT_PATH")
}

func TestNewRenderer_WithFontPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pieces.ttf")
	require.NoError(t, os.WriteFile(path, rendertest.Font, 0o600))
	t.Setenv("PICKER_FONT_PATH", path)
	t.Setenv("PICKER_EXPORT_SIZE", "64")

	c, err := Load(noEnvFile(t))
	require.NoError(t, err)
	rd, err := c.NewRenderer()
	require.NoError(t, err)
	require.NotNil(t, rd)
}
