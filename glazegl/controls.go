package glazegl

import "github.com/chewxy/math32"

// pitchLimit keeps the orbit short of the poles, where the view matrix
// would degenerate.
const pitchLimit = Scalar(1.45)

// OrbitController provides orbit/zoom interactions for a camera with
// exponential damping.
//
// Rotate and Zoom move the target state; Step eases the actual yaw, pitch
// and radius toward it. It does not depend on any input system.
type OrbitController struct {
	Target Vec3
	Yaw    Scalar
	Pitch  Scalar
	Radius Scalar

	TargetYaw    Scalar
	TargetPitch  Scalar
	TargetRadius Scalar

	MinRadius Scalar
	MaxRadius Scalar

	// Damping is the exponential smoothing rate in 1/seconds.
	// Zero disables smoothing (Step snaps to the target state).
	Damping Scalar
}

func (c *OrbitController) Apply(cam *Camera) {
	if cam == nil {
		return
	}
	r := c.Radius
	if r == 0 {
		r = Scalar(3)
	}
	if c.MinRadius != 0 && r < c.MinRadius {
		r = c.MinRadius
	}
	if c.MaxRadius != 0 && r > c.MaxRadius {
		r = c.MaxRadius
	}

	// Build a position from yaw/pitch.
	m := Mat4Mul(Mat4RotateY(c.Yaw), Mat4RotateX(c.Pitch))
	p := Mat4MulV4(m, Vec4{X: 0, Y: 0, Z: r, W: 1})

	cam.Position = c.Target.Add(V3(p.X, p.Y, p.Z))
	cam.Target = c.Target
	if cam.Up == (Vec3{}) {
		cam.Up = V3(0, 1, 0)
	}
}

func (c *OrbitController) Rotate(deltaYaw, deltaPitch Scalar) {
	c.TargetYaw += deltaYaw
	c.TargetPitch = Clamp(c.TargetPitch+deltaPitch, -pitchLimit, pitchLimit)
}

func (c *OrbitController) Zoom(delta Scalar) {
	c.TargetRadius += delta
	if c.MinRadius != 0 && c.TargetRadius < c.MinRadius {
		c.TargetRadius = c.MinRadius
	}
	if c.MaxRadius != 0 && c.TargetRadius > c.MaxRadius {
		c.TargetRadius = c.MaxRadius
	}
}

// Step eases the controller state toward its targets by dt seconds.
func (c *OrbitController) Step(dt Scalar) {
	if dt <= 0 {
		return
	}
	k := Scalar(1)
	if c.Damping > 0 {
		k = 1 - math32.Exp(-c.Damping*dt)
	}
	c.Yaw += (c.TargetYaw - c.Yaw) * k
	c.Pitch += (c.TargetPitch - c.Pitch) * k
	c.Radius += (c.TargetRadius - c.Radius) * k
}
