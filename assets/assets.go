// Package assets loads the font and matcap texture the viewer renders
// with and watches their files so edits show up without a restart.
package assets

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// LoadFont parses the TrueType or OpenType font at path. An empty path
// selects the bundled Go Regular face.
func LoadFont(path string) (*sfnt.Font, error) {
	data := goregular.TTF
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("assets: read font %s: %w", path, err)
		}
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("assets: parse font: %w", err)
	}
	return f, nil
}

// LoadMatcap decodes the sphere-lit shading texture at path.
func LoadMatcap(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("assets: read matcap %s: %w", path, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("assets: decode matcap %s: %w", path, err)
	}
	return img, nil
}
