// Package panel draws the in-game control overlay: color pickers for
// the caption and the donut population, the caption text field, and a
// couple of scene switches, plus the one-line help HUD. Widgets are
// composed on a small CPU raster and uploaded once per frame, the way
// the house framebuffer HUDs work.
package panel

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"glaze/glazegl"
)

const (
	panelW      = 188
	panelH      = 222
	panelMargin = 10
	pad         = 8

	hudW = 320
	hudH = 30
)

var (
	colBack   = color.RGBA{R: 0x10, G: 0x14, B: 0x20, A: 0xFF}
	colFrame  = color.RGBA{R: 0x2A, G: 0x34, B: 0x4A, A: 0xFF}
	colText   = color.RGBA{R: 0xE0, G: 0xE8, B: 0xFF, A: 0xFF}
	colDim    = color.RGBA{R: 0x90, G: 0xA0, B: 0xB8, A: 0xFF}
	colTrack  = color.RGBA{R: 0x26, G: 0x2E, B: 0x42, A: 0xFF}
	colFill   = color.RGBA{R: 0x5A, G: 0x8C, B: 0xE8, A: 0xFF}
	colAccent = color.RGBA{R: 0x7A, G: 0xA4, B: 0xF0, A: 0xFF}
)

var chanLabels = [3]string{"R", "G", "B"}

// Changes reports what the user edited during one Update.
type Changes struct {
	TextColorChanged  bool
	TextColor         glazegl.Color
	DonutColorChanged bool
	DonutColor        glazegl.Color
	TextChanged       bool
	Text              string
	Respawn           bool
	WireframeChanged  bool
	Wireframe         bool
}

// Panel owns the overlay state. It never touches the GPU outside Draw,
// so it can run under a headless host.
type Panel struct {
	// Status is an optional HUD line the host refreshes each frame.
	Status string

	visible bool
	tick    int

	textPick  colorPicker
	donutPick colorPicker
	field     textField
	respawn   button
	wire      checkbox

	surf   *pix
	hud    *pix
	img    *ebiten.Image
	hudImg *ebiten.Image
}

func New(textColor, donutColor glazegl.Color, text string) *Panel {
	return &Panel{
		visible:   true,
		textPick:  newColorPicker("text color", 40, textColor),
		donutPick: newColorPicker("donut color", 104, donutColor),
		field:     newTextField(image.Rect(pad, 170, panelW-pad, 188), text),
		respawn:   button{rect: image.Rect(pad, 196, pad+80, 214), label: "respawn"},
		wire:      checkbox{rect: image.Rect(pad+92, 199, pad+104, 211), label: "wire"},
		surf:      newPix(panelW, panelH),
		hud:       newPix(hudW, hudH),
	}
}

// Visible reports whether the panel overlay is shown.
func (p *Panel) Visible() bool { return p.visible }

// Focused reports whether the text field is capturing keystrokes.
func (p *Panel) Focused() bool { return p.visible && p.field.focused }

// Text returns the field's current (possibly uncommitted) content.
func (p *Panel) Text() string { return p.field.text() }

// Wireframe reports the checkbox state.
func (p *Panel) Wireframe() bool { return p.wire.on }

// SetWireframe syncs the checkbox when the mode was switched elsewhere.
func (p *Panel) SetWireframe(on bool) { p.wire.on = on }

// FocusText puts the caret in the caption field as if it was clicked,
// showing the panel if it was hidden.
func (p *Panel) FocusText() {
	p.visible = true
	p.field.focused = true
}

// Hit reports whether the pointer is over the visible panel, so the
// host can keep panel drags from also orbiting the camera.
func (p *Panel) Hit(in Input) bool {
	if !p.visible {
		return false
	}
	l := p.localize(in)
	return image.Pt(l.MouseX, l.MouseY).In(image.Rect(0, 0, panelW, panelH))
}

// Update feeds one input snapshot through the widgets and reports any
// edits. Hiding the panel blurs and commits the text field.
func (p *Panel) Update(in Input) Changes {
	p.tick++
	var ch Changes

	if in.Toggle {
		p.visible = !p.visible
		if !p.visible {
			if s, ok := p.field.blur(); ok {
				ch.TextChanged = true
				ch.Text = s
			}
		}
	}
	if !p.visible {
		return ch
	}

	local := p.localize(in)

	if p.textPick.update(local) {
		ch.TextColorChanged = true
		ch.TextColor = p.textPick.color()
	}
	if p.donutPick.update(local) {
		ch.DonutColorChanged = true
		ch.DonutColor = p.donutPick.color()
	}
	if s, ok := p.field.update(local); ok {
		ch.TextChanged = true
		ch.Text = s
	}
	if p.respawn.update(local) {
		ch.Respawn = true
	}
	if p.wire.update(local) {
		ch.WireframeChanged = true
		ch.Wireframe = p.wire.on
	}
	return ch
}

// localize maps the pointer into panel pixels. The overlay is anchored
// to the top-right corner and scaled with the display.
func (p *Panel) localize(in Input) Input {
	s := in.Scale
	if s <= 0 {
		s = 1
	}
	ox := float64(in.ScreenW) - (panelW+panelMargin)*s
	oy := panelMargin * s
	in.MouseX = int((float64(in.MouseX) - ox) / s)
	in.MouseY = int((float64(in.MouseY) - oy) / s)
	return in
}

// Draw composes the HUD and, when visible, the panel onto dst. scale is
// the display scale the host renders at.
func (p *Panel) Draw(dst *ebiten.Image, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	p.drawHUD(dst, scale)
	if !p.visible {
		return
	}

	p.render()
	if p.img == nil {
		p.img = ebiten.NewImage(panelW, panelH)
	}
	p.img.WritePixels(p.surf.img.Pix)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(dst.Bounds().Dx())-(panelW+panelMargin)*scale, panelMargin*scale)
	dst.DrawImage(p.img, op)
}

func (p *Panel) drawHUD(dst *ebiten.Image, scale float64) {
	p.hud.clear()
	p.hud.text(0, 10, "f1 panel  t caption  w wire  r respawn  drag orbit", colDim)
	if p.Status != "" {
		p.hud.text(0, 24, p.Status, colText)
	}
	if p.hudImg == nil {
		p.hudImg = ebiten.NewImage(hudW, hudH)
	}
	p.hudImg.WritePixels(p.hud.img.Pix)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(pad*scale, pad*scale)
	dst.DrawImage(p.hudImg, op)
}

func (p *Panel) render() {
	s := p.surf
	s.fill(image.Rect(0, 0, panelW, panelH), colBack)
	s.frame(image.Rect(0, 0, panelW, panelH), colFrame)
	s.text(pad, 16, "glaze", colText)
	s.fill(image.Rect(1, 23, panelW-1, 24), colFrame)

	p.drawPicker(&p.textPick)
	p.drawPicker(&p.donutPick)

	s.text(pad, 164, "text", colDim)
	box := p.field.rect
	s.fill(box, colTrack)
	fc := colFrame
	if p.field.focused {
		fc = colAccent
	}
	s.frame(box, fc)
	s.text(box.Min.X+4, box.Max.Y-5, p.field.text(), colText)
	if p.field.focused && (p.tick/30)%2 == 0 {
		cx := box.Min.X + 5 + textWidth(p.field.text())
		s.fill(image.Rect(cx, box.Min.Y+3, cx+1, box.Max.Y-3), colText)
	}

	bg := colTrack
	if p.respawn.down {
		bg = colFill
	} else if p.respawn.hover {
		bg = colFrame
	}
	s.fill(p.respawn.rect, bg)
	s.frame(p.respawn.rect, colFrame)
	tx := p.respawn.rect.Min.X + (p.respawn.rect.Dx()-textWidth(p.respawn.label))/2
	s.text(tx, p.respawn.rect.Max.Y-6, p.respawn.label, colText)

	s.fill(p.wire.rect, colTrack)
	s.frame(p.wire.rect, colFrame)
	if p.wire.on {
		s.fill(p.wire.rect.Inset(3), colFill)
	}
	s.text(p.wire.rect.Max.X+6, p.wire.rect.Max.Y-2, p.wire.label, colDim)
}

func (p *Panel) drawPicker(c *colorPicker) {
	s := p.surf
	s.text(pad, c.y, c.label, colDim)

	col := c.color()
	hex := fmt.Sprintf("#%02X%02X%02X", col.R, col.G, col.B)
	s.text(c.swatch.Min.X-6-textWidth(hex), c.y, hex, colText)
	s.fill(c.swatch, color.RGBA{R: col.R, G: col.G, B: col.B, A: 0xFF})
	s.frame(c.swatch, colFrame)

	for i, sl := range []*slider{&c.r, &c.g, &c.b} {
		s.text(pad, sl.rect.Max.Y, chanLabels[i], colDim)
		s.fill(sl.rect, colTrack)
		w := int(float32(sl.rect.Dx()-2) * sl.val / 255)
		s.fill(image.Rect(sl.rect.Min.X+1, sl.rect.Min.Y+1, sl.rect.Min.X+1+w, sl.rect.Max.Y-1), colFill)
		s.frame(sl.rect, colFrame)
	}
}
