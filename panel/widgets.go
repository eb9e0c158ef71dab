package panel

import (
	"image"

	"glaze/glazegl"
)

// Widgets operate in panel-local pixels; Panel translates the pointer
// before handing input down.

type slider struct {
	rect image.Rectangle
	val  float32 // 0..255
	drag bool
}

func (s *slider) update(in Input) bool {
	if in.JustPressed && image.Pt(in.MouseX, in.MouseY).In(s.rect) {
		s.drag = true
	}
	if !in.Pressed {
		s.drag = false
	}
	if !s.drag {
		return false
	}
	f := float32(in.MouseX-s.rect.Min.X) / float32(s.rect.Dx()-1)
	v := 255 * glazegl.Clamp01(f)
	if v == s.val {
		return false
	}
	s.val = v
	return true
}

type colorPicker struct {
	label  string
	y      int // label baseline
	swatch image.Rectangle

	r, g, b slider
}

func newColorPicker(label string, y int, c glazegl.Color) colorPicker {
	row := func(i int, v uint8) slider {
		ry := y + 8 + i*14
		return slider{
			rect: image.Rect(pad+14, ry, pad+124, ry+8),
			val:  float32(v),
		}
	}
	return colorPicker{
		label:  label,
		y:      y,
		swatch: image.Rect(panelW-pad-16, y-11, panelW-pad, y+5),
		r:      row(0, c.R),
		g:      row(1, c.G),
		b:      row(2, c.B),
	}
}

func (c *colorPicker) update(in Input) bool {
	changed := c.r.update(in)
	changed = c.g.update(in) || changed
	changed = c.b.update(in) || changed
	return changed
}

func (c *colorPicker) color() glazegl.Color {
	return glazegl.RGB(uint8(c.r.val+0.5), uint8(c.g.val+0.5), uint8(c.b.val+0.5))
}

func (c *colorPicker) setColor(col glazegl.Color) {
	c.r.val = float32(col.R)
	c.g.val = float32(col.G)
	c.b.val = float32(col.B)
}

type button struct {
	rect  image.Rectangle
	label string
	hover bool
	down  bool
}

func (b *button) update(in Input) bool {
	b.hover = image.Pt(in.MouseX, in.MouseY).In(b.rect)
	if in.JustPressed && b.hover {
		b.down = true
	}
	if in.JustReleased {
		clicked := b.down && b.hover
		b.down = false
		return clicked
	}
	if !in.Pressed {
		b.down = false
	}
	return false
}

type checkbox struct {
	rect  image.Rectangle
	label string
	on    bool
}

func (c *checkbox) update(in Input) bool {
	if in.JustPressed && image.Pt(in.MouseX, in.MouseY).In(c.rect) {
		c.on = !c.on
		return true
	}
	return false
}

type textField struct {
	rect    image.Rectangle
	runes   []rune
	saved   string
	focused bool
}

func newTextField(rect image.Rectangle, initial string) textField {
	return textField{rect: rect, runes: []rune(initial), saved: initial}
}

// update reports a committed edit. Enter and clicking away commit;
// Escape blurs and restores the last committed text.
func (f *textField) update(in Input) (string, bool) {
	if in.JustPressed {
		inside := image.Pt(in.MouseX, in.MouseY).In(f.rect)
		if f.focused && !inside {
			return f.blur()
		}
		f.focused = inside
	}
	if !f.focused {
		return "", false
	}
	for _, r := range in.Runes {
		if r >= ' ' && r != 0x7F {
			f.runes = append(f.runes, r)
		}
	}
	if in.Backspace && len(f.runes) > 0 {
		f.runes = f.runes[:len(f.runes)-1]
	}
	if in.Enter {
		return f.blur()
	}
	if in.Escape {
		f.focused = false
		f.runes = []rune(f.saved)
	}
	return "", false
}

func (f *textField) blur() (string, bool) {
	f.focused = false
	s := string(f.runes)
	if s == f.saved {
		return "", false
	}
	f.saved = s
	return s, true
}

func (f *textField) text() string { return string(f.runes) }
