package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glaze/glazegl"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "glaze", cfg.Title)
	assert.Equal(t, 1280, cfg.Width)
	assert.Equal(t, 720, cfg.Height)
	assert.Equal(t, 100, cfg.Donuts)
	assert.NotEmpty(t, cfg.Text)
	assert.Empty(t, cfg.Font, "empty font means the bundled face")
}

func TestLoadConfigMissingFileKeepsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigReadsFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glaze.toml")
	doc := `
title = "night shift"
width = 800
height = 600
text = "mmm"
text_color = "#00FF00"
donut_color = "#112233"
donuts = 12
seed = 99
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "night shift", cfg.Title)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.Equal(t, "mmm", cfg.Text)
	assert.Equal(t, "#00FF00", cfg.TextColor)
	assert.Equal(t, "#112233", cfg.DonutColor)
	assert.Equal(t, 12, cfg.Donuts)
	assert.EqualValues(t, 99, cfg.Seed)
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glaze.toml")
	require.NoError(t, os.WriteFile(path, []byte("donuts = 7\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Donuts)
	assert.Equal(t, 1280, cfg.Width, "unset keys keep defaults")
	assert.Equal(t, "#FF9933", cfg.DonutColor)
}

func TestLoadConfigBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glaze.toml")
	require.NoError(t, os.WriteFile(path, []byte("donuts = [broken\n"), 0o644))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "parse config")
}

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		in   string
		want glazegl.Color
	}{
		{"#FFFFFF", glazegl.RGB(0xFF, 0xFF, 0xFF)},
		{"#abc", glazegl.RGB(0xAA, 0xBB, 0xCC)},
		{"123456", glazegl.RGB(0x12, 0x34, 0x56)},
		{" #FF0000 ", glazegl.RGB(0xFF, 0x00, 0x00)},
	}
	for _, tc := range cases {
		got, err := ParseHexColor(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	for _, bad := range []string{"", "#12345", "#GGHHII", "#FFFFFFFF"} {
		_, err := ParseHexColor(bad)
		assert.Error(t, err, bad)
	}
}
