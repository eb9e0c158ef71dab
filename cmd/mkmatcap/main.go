// Command mkmatcap renders a lit-sphere gradient and writes it as a
// PNG, so the repo can carry no binary assets and still have a shiny
// material on first run.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strconv"
	"strings"

	"github.com/chewxy/math32"

	"glaze/glazegl"
)

func main() {
	var (
		outPath   = flag.String("out", "matcap.png", "Output PNG path.")
		size      = flag.Int("size", 256, "Image width and height in pixels.")
		base      = flag.String("base", "#C06830", "Base color, #RRGGBB.")
		highlight = flag.String("highlight", "#FFF4E0", "Highlight color, #RRGGBB.")
		shine     = flag.Float64("shine", 24, "Specular exponent.")
	)
	flag.Parse()

	if *size < 8 || *size > 4096 {
		fatalf("size out of range: %d", *size)
	}
	baseC, err := parseHex(*base)
	if err != nil {
		fatalf("base: %v", err)
	}
	highC, err := parseHex(*highlight)
	if err != nil {
		fatalf("highlight: %v", err)
	}

	img := render(*size, baseC, highC, float32(*shine))
	if err := writePNG(*outPath, img); err != nil {
		fatalf("write %s: %v", *outPath, err)
	}
	fmt.Printf("wrote %s (%dx%d)\n", *outPath, *size, *size)
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

// render shades a unit sphere as seen head-on. Matcap lookups sample
// the disc by surface normal, so only the disc interior matters; the
// corners get the darkened base to avoid seams at grazing angles.
func render(size int, base, high glazegl.Color, shine float32) *image.NRGBA {
	light := glazegl.Normalize(glazegl.V3(-0.4, 0.6, 0.7))
	half := glazegl.Normalize(light.Add(glazegl.V3(0, 0, 1)))

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			nx := (float32(x)+0.5)/float32(size)*2 - 1
			ny := 1 - (float32(y)+0.5)/float32(size)*2
			r2 := nx*nx + ny*ny
			if r2 > 1 {
				rim := glazegl.Normalize(glazegl.V3(nx, ny, 0))
				img.SetNRGBA(x, y, shade(base, high, rim, light, half, shine))
				continue
			}
			n := glazegl.V3(nx, ny, math32.Sqrt(1-r2))
			img.SetNRGBA(x, y, shade(base, high, n, light, half, shine))
		}
	}
	return img
}

func shade(base, high glazegl.Color, n, light, half glazegl.Vec3, shine float32) color.NRGBA {
	diff := glazegl.Clamp01(glazegl.Dot(n, light))
	spec := math32.Pow(glazegl.Clamp01(glazegl.Dot(n, half)), shine)

	mix := func(b, h uint8, lit glazegl.Scalar) uint8 {
		v := glazegl.Scalar(b)*(0.2+0.8*lit) + glazegl.Scalar(h)*spec
		if v > 255 {
			v = 255
		}
		return uint8(v + 0.5)
	}
	return color.NRGBA{
		R: mix(base.R, high.R, diff),
		G: mix(base.G, high.G, diff),
		B: mix(base.B, high.B, diff),
		A: 0xFF,
	}
}

func parseHex(s string) (glazegl.Color, error) {
	t := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(t) != 6 {
		return glazegl.Color{}, fmt.Errorf("want #RRGGBB, got %q", s)
	}
	v, err := strconv.ParseUint(t, 16, 32)
	if err != nil {
		return glazegl.Color{}, err
	}
	return glazegl.RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

func writePNG(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
