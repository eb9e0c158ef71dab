package panel

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input is one tick of pointer and keyboard state in screen pixels,
// captured once per frame so every consumer sees the same snapshot.
type Input struct {
	MouseX, MouseY int
	Pressed        bool
	JustPressed    bool
	JustReleased   bool
	WheelY         float64

	Runes     []rune
	Backspace bool
	Enter     bool
	Escape    bool
	Toggle    bool
	Wire      bool
	Reroll    bool
	Edit      bool
	Quit      bool

	Scale            float64
	ScreenW, ScreenH int
}

// ReadInput snapshots this tick's input. runes is reused as the
// backing array for typed characters.
func ReadInput(screenW, screenH int, scale float64, runes []rune) Input {
	mx, my := ebiten.CursorPosition()
	_, wy := ebiten.Wheel()
	return Input{
		MouseX:       mx,
		MouseY:       my,
		Pressed:      ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		JustPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		JustReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		WheelY:       wy,
		Runes:        ebiten.AppendInputChars(runes[:0]),
		Backspace:    repeatPressed(ebiten.KeyBackspace),
		Enter:        inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		Escape:       inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		Toggle:       inpututil.IsKeyJustPressed(ebiten.KeyF1),
		Wire:         inpututil.IsKeyJustPressed(ebiten.KeyW),
		Reroll:       inpututil.IsKeyJustPressed(ebiten.KeyR),
		Edit:         inpututil.IsKeyJustPressed(ebiten.KeyT),
		Quit:         inpututil.IsKeyJustPressed(ebiten.KeyQ),
		Scale:        scale,
		ScreenW:      screenW,
		ScreenH:      screenH,
	}
}

// repeatPressed fires on the initial press and then at a steady rate
// while the key is held.
func repeatPressed(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d >= 24 && d%4 == 0)
}
