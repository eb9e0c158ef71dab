package panel

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glaze/glazegl"
)

func newTestPanel() *Panel {
	return New(glazegl.RGB(0xFF, 0xFF, 0xFF), glazegl.RGB(0x44, 0x88, 0xCC), "glaze")
}

// at builds an input snapshot whose pointer lands on the given
// panel-local pixel.
func at(lx, ly int) Input {
	return Input{
		MouseX:  lx,
		MouseY:  ly + panelMargin,
		Scale:   1,
		ScreenW: panelW + panelMargin,
		ScreenH: 600,
	}
}

func press(in Input) Input {
	in.Pressed = true
	in.JustPressed = true
	return in
}

func drag(in Input) Input {
	in.Pressed = true
	return in
}

func release(in Input) Input {
	in.JustReleased = true
	return in
}

func center(r image.Rectangle) (int, int) {
	return (r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2
}

func TestPanelToggle(t *testing.T) {
	p := newTestPanel()
	require.True(t, p.Visible())

	p.Update(Input{Toggle: true})
	assert.False(t, p.Visible())

	// Widgets are inert while hidden.
	x, y := center(p.respawn.rect)
	p.Update(press(at(x, y)))
	ch := p.Update(release(at(x, y)))
	assert.False(t, ch.Respawn)

	p.Update(Input{Toggle: true})
	assert.True(t, p.Visible())
}

func TestSliderDragChangesTextColor(t *testing.T) {
	p := newTestPanel()
	r := p.textPick.r.rect
	y := (r.Min.Y + r.Max.Y) / 2

	ch := p.Update(press(at(r.Min.X, y)))
	require.True(t, ch.TextColorChanged)
	assert.Zero(t, ch.TextColor.R)

	ch = p.Update(drag(at(r.Max.X-1, y)))
	require.True(t, ch.TextColorChanged)
	assert.EqualValues(t, 255, ch.TextColor.R)

	// Dragging past the end clamps.
	ch = p.Update(drag(at(r.Max.X+40, y)))
	assert.False(t, ch.TextColorChanged)

	p.Update(release(at(r.Max.X+40, y)))
	ch = p.Update(drag(at(r.Min.X, y)))
	assert.False(t, ch.TextColorChanged, "drag ended on release")
}

func TestSliderIgnoresPressOutside(t *testing.T) {
	p := newTestPanel()
	r := p.textPick.r.rect

	ch := p.Update(press(at(r.Min.X, r.Min.Y-4)))
	assert.False(t, ch.TextColorChanged)

	// Moving over the track without the initial press does nothing.
	ch = p.Update(drag(at(r.Min.X+20, (r.Min.Y+r.Max.Y)/2)))
	assert.False(t, ch.TextColorChanged)
}

func TestDonutPickerDoesNotTouchTextColor(t *testing.T) {
	p := newTestPanel()
	r := p.donutPick.g.rect
	y := (r.Min.Y + r.Max.Y) / 2

	ch := p.Update(press(at(r.Min.X+10, y)))
	require.True(t, ch.DonutColorChanged)
	assert.False(t, ch.TextColorChanged)
	assert.EqualValues(t, 0x44, ch.DonutColor.R, "untouched channels keep their value")
}

func TestRespawnButtonClick(t *testing.T) {
	p := newTestPanel()
	x, y := center(p.respawn.rect)

	ch := p.Update(press(at(x, y)))
	assert.False(t, ch.Respawn, "fires on release, not press")
	ch = p.Update(release(at(x, y)))
	assert.True(t, ch.Respawn)

	// Press then drag off before releasing: no click.
	p.Update(press(at(x, y)))
	ch = p.Update(release(at(x, p.respawn.rect.Max.Y+10)))
	assert.False(t, ch.Respawn)
}

func TestWireframeCheckbox(t *testing.T) {
	p := newTestPanel()
	x, y := center(p.wire.rect)

	ch := p.Update(press(at(x, y)))
	require.True(t, ch.WireframeChanged)
	assert.True(t, ch.Wireframe)
	assert.True(t, p.Wireframe())

	p.Update(release(at(x, y)))
	ch = p.Update(press(at(x, y)))
	require.True(t, ch.WireframeChanged)
	assert.False(t, ch.Wireframe)

	p.SetWireframe(true)
	assert.True(t, p.Wireframe())
}

func TestTextFieldEditCommit(t *testing.T) {
	p := newTestPanel()
	fx, fy := center(p.field.rect)

	p.Update(press(at(fx, fy)))
	require.True(t, p.Focused())

	ch := p.Update(Input{Runes: []rune{'!'}})
	assert.False(t, ch.TextChanged, "typing alone does not commit")
	assert.Equal(t, "glaze!", p.Text())

	ch = p.Update(Input{Enter: true})
	require.True(t, ch.TextChanged)
	assert.Equal(t, "glaze!", ch.Text)
	assert.False(t, p.Focused())

	// Enter with nothing new commits nothing.
	p.Update(press(at(fx, fy)))
	ch = p.Update(Input{Enter: true})
	assert.False(t, ch.TextChanged)
}

func TestTextFieldEscapeReverts(t *testing.T) {
	p := newTestPanel()
	fx, fy := center(p.field.rect)

	p.Update(press(at(fx, fy)))
	p.Update(Input{Runes: []rune{'x', 'y'}})
	assert.Equal(t, "glazexy", p.Text())

	ch := p.Update(Input{Escape: true})
	assert.False(t, ch.TextChanged)
	assert.False(t, p.Focused())
	assert.Equal(t, "glaze", p.Text())
}

func TestTextFieldBackspace(t *testing.T) {
	p := newTestPanel()
	fx, fy := center(p.field.rect)

	p.Update(press(at(fx, fy)))
	p.Update(Input{Backspace: true})
	assert.Equal(t, "glaz", p.Text())

	// Control runes are filtered.
	p.Update(Input{Runes: []rune{'\t', 'k'}})
	assert.Equal(t, "glazk", p.Text())
}

func TestTextFieldClickAwayCommits(t *testing.T) {
	p := newTestPanel()
	fx, fy := center(p.field.rect)

	p.Update(press(at(fx, fy)))
	p.Update(release(at(fx, fy)))
	p.Update(Input{Runes: []rune{'2'}})

	ch := p.Update(press(at(panelW-12, p.field.rect.Min.Y-30)))
	require.True(t, ch.TextChanged)
	assert.Equal(t, "glaze2", ch.Text)
	assert.False(t, p.Focused())
}

func TestHidingPanelCommitsField(t *testing.T) {
	p := newTestPanel()
	fx, fy := center(p.field.rect)

	p.Update(press(at(fx, fy)))
	p.Update(Input{Runes: []rune{'9'}})

	ch := p.Update(Input{Toggle: true})
	require.True(t, ch.TextChanged)
	assert.Equal(t, "glaze9", ch.Text)
	assert.False(t, p.Visible())
	assert.False(t, p.Focused())
}

func TestPanelHit(t *testing.T) {
	p := newTestPanel()

	assert.True(t, p.Hit(at(panelW/2, panelH/2)))
	assert.False(t, p.Hit(at(-40, panelH/2)), "left of the overlay")

	p.Update(Input{Toggle: true})
	assert.False(t, p.Hit(at(panelW/2, panelH/2)), "hidden panel never hits")
}

func TestLocalizeScales(t *testing.T) {
	p := newTestPanel()

	// At scale 2 the overlay occupies twice the pixels; a pointer at
	// the scaled midpoint lands on the same local pixel.
	in := Input{
		MouseX:  0,
		MouseY:  0,
		Scale:   2,
		ScreenW: 2 * (panelW + panelMargin),
		ScreenH: 600,
	}
	in.MouseX = in.ScreenW - (panelW/2+panelMargin)*2
	in.MouseY = (panelMargin + panelH/2) * 2

	l := p.localize(in)
	assert.Equal(t, panelW/2, l.MouseX)
	assert.Equal(t, panelH/2, l.MouseY)
}
