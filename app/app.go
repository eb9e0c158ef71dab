// Package app assembles the viewer: a drifting donut population around
// an extruded caption, an orbit camera, the control panel and the asset
// plumbing, driven by an ebiten game loop or a headless ticker.
package app

import (
	"fmt"
	"image"
	"log/slog"
	"math/rand"
	"time"

	"github.com/chewxy/math32"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font/sfnt"

	"glaze/assets"
	"glaze/glazegl"
	"glaze/panel"
	"glaze/shape"
)

const (
	donutMajor = 0.6
	donutMinor = 0.25
	donutSegU  = 24
	donutSegV  = 12

	// bound is the reflection boundary on every axis. Crossing it flips
	// the velocity sign on that axis; position is never clamped, so a
	// donut may sit slightly outside for a frame.
	bound     = 10.0
	spawnSpan = 0.95 * bound
	maxSpeed  = 2.5
	maxSpin   = 1.2
	minScale  = 0.4
	maxScale  = 1.1

	textSize  = 1.6
	textDepth = 0.4

	camRadius  = 14
	camMinR    = 4
	camMaxR    = 40
	camDamping = 6.0

	orbitPerPixel = 0.008
	zoomPerNotch  = 1.2

	tickDt = float32(1) / 60
)

type donut struct {
	id    int
	pos   glazegl.Vec3
	vel   glazegl.Vec3
	rot   glazegl.Vec3
	spin  glazegl.Vec3
	scale glazegl.Scalar
}

// App owns the scene and everything that mutates it. All methods run on
// the game goroutine; watcher events cross over through a channel.
type App struct {
	cfg Config

	font *sfnt.Font

	// matcap holds the decoded image until Draw uploads it; the GPU
	// texture must not be touched off the render goroutine.
	matcap      image.Image
	matcapTex   *ebiten.Image
	matcapDirty bool

	scene    *glazegl.Scene
	renderer *glazegl.Renderer
	orbit    glazegl.OrbitController
	pan      *panel.Panel

	rng    *rand.Rand
	donuts []donut
	textID int

	textColor  glazegl.Color
	donutColor glazegl.Color

	watcher *assets.Watcher

	dragging     bool
	lastX, lastY int
	last         time.Time
	runes        []rune
	scale        float64
	w, h         int
}

// New builds the viewer from cfg. A font that cannot be loaded is
// fatal; a missing matcap only demotes materials to flat shading.
func New(cfg Config) (*App, error) {
	if cfg.Donuts < 0 {
		return nil, fmt.Errorf("app: donut count %d is negative", cfg.Donuts)
	}
	textCol, err := ParseHexColor(cfg.TextColor)
	if err != nil {
		return nil, fmt.Errorf("app: text color: %w", err)
	}
	donutCol, err := ParseHexColor(cfg.DonutColor)
	if err != nil {
		return nil, fmt.Errorf("app: donut color: %w", err)
	}

	f, err := assets.LoadFont(cfg.Font)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:        cfg,
		font:       f,
		textID:     -1,
		textColor:  textCol,
		donutColor: donutCol,
		scale:      1,
		w:          cfg.Width,
		h:          cfg.Height,
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	a.rng = rand.New(rand.NewSource(seed))

	if cfg.Matcap != "" {
		img, err := assets.LoadMatcap(cfg.Matcap)
		if err != nil {
			slog.Warn("app: matcap unavailable, flat shading", "err", err)
		} else {
			a.matcap = img
			a.matcapDirty = true
		}
	}

	a.scene = glazegl.CreateScene(cfg.Donuts + 8)
	a.scene.Camera.FOVYRad = 1.0
	a.scene.Camera.Near = 0.05
	a.scene.Camera.Far = 100
	a.scene.Light.Mode = glazegl.LightAmbientDirectional
	a.scene.Light.Ambient = 0.18
	a.scene.Light.Dir = glazegl.Normalize(glazegl.V3(-0.4, 0.9, 0.3))
	a.scene.Light.DirAmount = 0.85

	a.renderer = glazegl.NewRenderer()
	a.renderer.ClearColor = glazegl.RGB(0x05, 0x08, 0x12)

	a.orbit = glazegl.OrbitController{
		Yaw:          0.6,
		TargetYaw:    0.6,
		Pitch:        0.35,
		TargetPitch:  0.35,
		Radius:       camRadius,
		TargetRadius: camRadius,
		MinRadius:    camMinR,
		MaxRadius:    camMaxR,
		Damping:      camDamping,
	}
	a.orbit.Apply(&a.scene.Camera)

	a.pan = panel.New(textCol, donutCol, cfg.Text)

	a.rebuildText(cfg.Text)
	a.rebuildDonuts()

	w, err := assets.NewWatcher(cfg.Matcap)
	if err != nil {
		slog.Warn("app: file watcher unavailable", "err", err)
	} else {
		a.watcher = w
	}
	return a, nil
}

// Close releases everything that outlives the game loop.
func (a *App) Close() error {
	if a.watcher != nil {
		return a.watcher.Close()
	}
	return nil
}

// rebuildText swaps the caption mesh. The old slot is released before
// the new geometry lands, so the scene never holds both.
func (a *App) rebuildText(s string) {
	if a.textID >= 0 {
		a.scene.RemoveMesh(a.textID)
		a.textID = -1
	}
	m := shape.Text(a.font, s, shape.TextOptions{Size: textSize, Depth: textDepth})
	if len(m.Indices) == 0 {
		slog.Warn("app: caption produced no geometry", "text", s)
		return
	}
	m.Material.BaseColor = a.textColor
	m.Material.Matcap = a.matcapTex
	a.textID = a.scene.AddMesh(m)
}

// rebuildDonuts releases the whole population and scatters a fresh one.
// The count always comes out exactly cfg.Donuts; geometry is generated
// once and shared across the population.
func (a *App) rebuildDonuts() {
	for _, d := range a.donuts {
		a.scene.RemoveMesh(d.id)
	}
	a.donuts = a.donuts[:0]

	proto := shape.Torus(donutMajor, donutMinor, donutSegU, donutSegV)
	for i := 0; i < a.cfg.Donuts; i++ {
		m := proto
		m.Material.BaseColor = a.donutColor
		m.Material.Matcap = a.matcapTex
		id := a.scene.AddMesh(m)
		if id < 0 {
			slog.Warn("app: scene full during respawn", "at", i)
			break
		}
		d := donut{
			id:    id,
			pos:   a.randVec(spawnSpan),
			vel:   a.randVec(maxSpeed),
			rot:   a.randVec(math32.Pi),
			spin:  a.randVec(maxSpin),
			scale: glazegl.Scalar(minScale) + glazegl.Scalar(a.rng.Float32())*(maxScale-minScale),
		}
		a.donuts = append(a.donuts, d)
		a.scene.UpdateMeshTransform(d.id, donutTransform(&d))
	}
}

// randVec picks each component uniformly from [-span, span].
func (a *App) randVec(span float32) glazegl.Vec3 {
	r := func() glazegl.Scalar {
		return glazegl.Scalar((a.rng.Float32()*2 - 1) * span)
	}
	return glazegl.V3(r(), r(), r())
}

func donutTransform(d *donut) glazegl.Mat4 {
	m := glazegl.Mat4Mul(glazegl.Mat4RotateY(d.rot.Y), glazegl.Mat4RotateX(d.rot.X))
	m = glazegl.Mat4Mul(m, glazegl.Mat4Scale(glazegl.V3(d.scale, d.scale, d.scale)))
	return glazegl.Mat4Mul(glazegl.Mat4Translate(d.pos), m)
}

// step advances the world by dt. It never touches GPU resources, so the
// headless host drives it too.
func (a *App) step(dt float32, in panel.Input) error {
	a.drainWatcher()

	focused := a.pan.Focused()
	a.applyChanges(a.pan.Update(in))

	if !focused {
		if in.Wire {
			a.setWireframe(a.renderer.Mode != glazegl.RenderWireframe)
			a.pan.SetWireframe(a.renderer.Mode == glazegl.RenderWireframe)
		}
		if in.Reroll {
			a.rebuildDonuts()
		}
		if in.Edit {
			a.pan.FocusText()
		}
		if in.Escape || in.Quit {
			return ebiten.Termination
		}
	}

	a.steerCamera(dt, in)

	for i := range a.donuts {
		d := &a.donuts[i]
		d.pos = d.pos.Add(d.vel.Mul(glazegl.Scalar(dt)))
		d.rot = d.rot.Add(d.spin.Mul(glazegl.Scalar(dt)))
		if d.pos.X > bound || d.pos.X < -bound {
			d.vel.X = -d.vel.X
		}
		if d.pos.Y > bound || d.pos.Y < -bound {
			d.vel.Y = -d.vel.Y
		}
		if d.pos.Z > bound || d.pos.Z < -bound {
			d.vel.Z = -d.vel.Z
		}
		a.scene.UpdateMeshTransform(d.id, donutTransform(d))
	}
	return nil
}

func (a *App) applyChanges(ch panel.Changes) {
	if ch.TextColorChanged {
		a.textColor = ch.TextColor
		if a.textID >= 0 {
			a.scene.SetMeshColor(a.textID, ch.TextColor)
		}
	}
	if ch.DonutColorChanged {
		a.donutColor = ch.DonutColor
		for _, d := range a.donuts {
			a.scene.SetMeshColor(d.id, ch.DonutColor)
		}
	}
	if ch.TextChanged {
		a.cfg.Text = ch.Text
		a.rebuildText(ch.Text)
	}
	if ch.Respawn {
		a.rebuildDonuts()
	}
	if ch.WireframeChanged {
		a.setWireframe(ch.Wireframe)
	}
}

func (a *App) setWireframe(on bool) {
	if on {
		a.renderer.Mode = glazegl.RenderWireframe
	} else {
		a.renderer.Mode = glazegl.RenderSolid
	}
}

func (a *App) steerCamera(dt float32, in panel.Input) {
	if in.JustPressed && !a.pan.Hit(in) {
		a.dragging = true
		a.lastX, a.lastY = in.MouseX, in.MouseY
	}
	if !in.Pressed {
		a.dragging = false
	}
	if a.dragging {
		dx := glazegl.Scalar(in.MouseX - a.lastX)
		dy := glazegl.Scalar(in.MouseY - a.lastY)
		a.orbit.Rotate(dx*orbitPerPixel, dy*orbitPerPixel)
		a.lastX, a.lastY = in.MouseX, in.MouseY
	}
	if in.WheelY != 0 && !a.pan.Hit(in) {
		a.orbit.Zoom(glazegl.Scalar(-in.WheelY) * zoomPerNotch)
	}

	a.orbit.Step(glazegl.Scalar(dt))
	a.orbit.Apply(&a.scene.Camera)
}

// drainWatcher folds any file events queued since the last tick into a
// single reload attempt. Failures keep the current texture.
func (a *App) drainWatcher() {
	if a.watcher == nil {
		return
	}
	reload := false
	for {
		select {
		case <-a.watcher.C:
			reload = true
		default:
			if !reload {
				return
			}
			img, err := assets.LoadMatcap(a.cfg.Matcap)
			if err != nil {
				slog.Warn("app: matcap reload failed", "err", err)
				return
			}
			a.matcap = img
			a.matcapDirty = true
			slog.Info("app: matcap reloaded", "path", a.cfg.Matcap)
			return
		}
	}
}

// uploadMatcap moves a freshly decoded texture onto the GPU and points
// every material at it. Runs only from Draw.
func (a *App) uploadMatcap() {
	if !a.matcapDirty || a.matcap == nil {
		return
	}
	old := a.matcapTex
	a.matcapTex = ebiten.NewImageFromImage(a.matcap)
	a.matcapDirty = false
	if old != nil {
		old.Deallocate()
	}
	if a.textID >= 0 {
		a.scene.SetMeshMatcap(a.textID, a.matcapTex)
	}
	for _, d := range a.donuts {
		a.scene.SetMeshMatcap(d.id, a.matcapTex)
	}
}

// Update implements ebiten.Game. dt is wall time since the previous
// tick, unclamped; motion follows real time even when frames stall.
func (a *App) Update() error {
	now := time.Now()
	var dt float32
	if !a.last.IsZero() {
		dt = float32(now.Sub(a.last).Seconds())
	}
	a.last = now

	in := panel.ReadInput(a.w, a.h, a.scale, a.runes)
	a.runes = in.Runes
	a.pan.Status = fmt.Sprintf("donuts %d  %.0f tps", len(a.donuts), ebiten.ActualTPS())
	return a.step(dt, in)
}

// Draw implements ebiten.Game.
func (a *App) Draw(screen *ebiten.Image) {
	a.uploadMatcap()
	a.renderer.Render(screen, a.scene)
	a.pan.Draw(screen, a.scale)
}

// Layout implements ebiten.Game, rendering at the display scale capped
// at 2x so dense displays stay sharp without runaway fill cost.
func (a *App) Layout(ow, oh int) (int, int) {
	s := ebiten.DeviceScaleFactor()
	if s > 2 {
		s = 2
	}
	a.scale = s
	a.w = int(float64(ow) * s)
	a.h = int(float64(oh) * s)
	return a.w, a.h
}

// Run opens the window and drives the viewer until quit.
func Run(a *App) error {
	defer a.Close()
	ebiten.SetWindowTitle(a.cfg.Title)
	ebiten.SetWindowSize(a.cfg.Width, a.cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(a)
}
