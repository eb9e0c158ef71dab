package panel

import (
	"image"
	"image/color"
	"image/draw"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var uiFont = &proggy.TinySZ8pt7b

// pix is the RGBA raster the panel composes into before uploading to
// the GPU. Only opaque or fully transparent pixels are ever written, so
// the buffer doubles as premultiplied data for WritePixels.
type pix struct {
	img *image.RGBA
}

func newPix(w, h int) *pix {
	return &pix{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (p *pix) Size() (x, y int16) {
	b := p.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (p *pix) SetPixel(x, y int16, c color.RGBA) {
	ix, iy := int(x), int(y)
	b := p.img.Bounds()
	if ix < b.Min.X || ix >= b.Max.X || iy < b.Min.Y || iy >= b.Max.Y {
		return
	}
	p.img.SetRGBA(ix, iy, c)
}

func (p *pix) Display() error { return nil }

func (p *pix) clear() {
	for i := range p.img.Pix {
		p.img.Pix[i] = 0
	}
}

func (p *pix) fill(r image.Rectangle, c color.RGBA) {
	draw.Draw(p.img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func (p *pix) frame(r image.Rectangle, c color.RGBA) {
	p.fill(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c)
	p.fill(image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), c)
	p.fill(image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), c)
	p.fill(image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), c)
}

// text draws one line with y naming the baseline, as tinyfont expects.
func (p *pix) text(x, y int, s string, c color.RGBA) {
	tinyfont.WriteLine(p, uiFont, int16(x), int16(y), s, c)
}

func textWidth(s string) int {
	_, w := tinyfont.LineWidth(uiFont, s)
	return int(w)
}
