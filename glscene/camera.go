package glscene

import (
	math "github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Projection selects how the camera maps the scene to the screen.
type Projection uint8

const (
	Perspective Projection = iota
	Orthographic
)

func (p Projection) String() string {
	if p == Orthographic {
		return "orthographic"
	}
	return "perspective"
}

const (
	maxPitch    = math.Pi/2 - 0.01
	minDistance = 0.5
)

// Camera orbits a target point. Yaw and pitch are in radians; yaw zero puts
// the camera on the +Z side of the target and positive pitch raises it.
type Camera struct {
	Target     mgl32.Vec3
	Yaw        float32
	Pitch      float32
	Distance   float32
	FOV        float32 // Vertical field of view in degrees.
	Near, Far  float32
	Projection Projection
}

// DefaultCamera frames the shipped still-life from the front and above.
func DefaultCamera() Camera {
	return Camera{
		Target:   mgl32.Vec3{0, 0, -6.5},
		Pitch:    0.6,
		Distance: 60,
		FOV:      45,
		Near:     0.1,
		Far:      500,
	}
}

// Position returns the camera position in world space.
func (c *Camera) Position() mgl32.Vec3 {
	sp, cp := math.Sincos(c.Pitch)
	sy, cy := math.Sincos(c.Yaw)
	dir := mgl32.Vec3{cp * sy, sp, cp * cy}
	return c.Target.Add(dir.Mul(c.Distance))
}

// View returns the world to camera transform.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Target, mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns the camera to clip space transform for a viewport
// of the given aspect ratio (width/height). The orthographic volume matches
// the perspective frustum's size at the target distance.
func (c *Camera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	fovy := mgl32.DegToRad(c.FOV)
	if c.Projection == Orthographic {
		h := c.Distance * math.Tan(fovy/2)
		w := h * aspect
		return mgl32.Ortho(-w, w, -h, h, c.Near, c.Far)
	}
	return mgl32.Perspective(fovy, aspect, c.Near, c.Far)
}

// Orbit rotates the camera around the target. Pitch is clamped short of the
// poles so the view never flips.
func (c *Camera) Orbit(dyaw, dpitch float32) {
	c.Yaw += dyaw
	c.Pitch = mgl32.Clamp(c.Pitch+dpitch, -maxPitch, maxPitch)
}

// Zoom moves the camera toward the target for positive amounts. Steps are
// proportional to the current distance.
func (c *Camera) Zoom(amount float32) {
	c.Distance -= amount * (c.Distance*0.1 + 0.01)
	c.Distance = mgl32.Clamp(c.Distance, minDistance, c.Far/2)
}

// Pan moves the target along the camera's horizontal right and forward
// directions and the world up axis.
func (c *Camera) Pan(right, up, forward float32) {
	sy, cy := math.Sincos(c.Yaw)
	r := mgl32.Vec3{cy, 0, -sy}
	f := mgl32.Vec3{-sy, 0, -cy}
	c.Target = c.Target.Add(r.Mul(right)).Add(f.Mul(forward)).Add(mgl32.Vec3{0, up, 0})
}
