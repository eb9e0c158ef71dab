package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"glaze/glazegl"
	"glaze/shape"
)

// Config collects everything the viewer can be started with. TOML keys
// match the flag names, so a config file and the command line describe
// the same surface.
type Config struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`

	Font   string `toml:"font"`
	Matcap string `toml:"matcap"`

	Text       string `toml:"text"`
	TextColor  string `toml:"text_color"`
	DonutColor string `toml:"donut_color"`

	Donuts int   `toml:"donuts"`
	Seed   int64 `toml:"seed"`
}

// DefaultConfig is the classic arrangement: a hundred donuts drifting
// around the caption.
func DefaultConfig() Config {
	return Config{
		Title:      "glaze",
		Width:      1280,
		Height:     720,
		Matcap:     "matcap.png",
		Text:       shape.PlaceholderText,
		TextColor:  "#FFFFFF",
		DonutColor: "#FF9933",
		Donuts:     100,
	}
}

// LoadConfig reads the TOML file at path over the defaults. A missing
// file is not an error: the defaults stand, and flags may still
// override them.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("app: read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("app: parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseHexColor reads a #RGB or #RRGGBB color, with or without the
// leading hash.
func ParseHexColor(s string) (glazegl.Color, error) {
	t := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(t) == 3 {
		t = string([]byte{t[0], t[0], t[1], t[1], t[2], t[2]})
	}
	if len(t) != 6 {
		return glazegl.Color{}, fmt.Errorf("app: color %q: want RGB or RRGGBB", s)
	}
	v, err := strconv.ParseUint(t, 16, 32)
	if err != nil {
		return glazegl.Color{}, fmt.Errorf("app: color %q: %w", s, err)
	}
	return glazegl.RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}
