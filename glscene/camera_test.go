package glscene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const tol = 1e-4

func TestCameraPosition(t *testing.T) {
	c := Camera{Target: mgl32.Vec3{1, 2, 3}, Distance: 10}
	p := c.Position()
	assert.InDeltaSlice(t, []float32{1, 2, 13}, p[:], tol)

	c.Yaw = mgl32.DegToRad(90)
	p = c.Position()
	assert.InDeltaSlice(t, []float32{11, 2, 3}, p[:], tol)

	c.Yaw, c.Pitch = 0, mgl32.DegToRad(90)
	p = c.Position()
	assert.InDeltaSlice(t, []float32{1, 12, 3}, p[:], tol)
}

func TestCameraViewLooksAtTarget(t *testing.T) {
	c := DefaultCamera()
	c.Orbit(0.7, -0.2)
	target := c.View().Mul4x1(c.Target.Vec4(1))
	// The target sits on the view axis at the orbit distance.
	assert.InDelta(t, 0, target.X(), tol)
	assert.InDelta(t, 0, target.Y(), tol)
	assert.InDelta(t, -c.Distance, target.Z(), 1e-3)
}

func TestCameraOrbitClampsPitch(t *testing.T) {
	var c Camera
	c.Orbit(0.5, 10)
	assert.InDelta(t, 0.5, c.Yaw, tol)
	assert.InDelta(t, maxPitch, c.Pitch, tol)
	c.Orbit(0, -20)
	assert.InDelta(t, -maxPitch, c.Pitch, tol)
}

func TestCameraZoom(t *testing.T) {
	c := DefaultCamera()
	c.Zoom(1)
	assert.InDelta(t, 60-6.01, c.Distance, tol)
	c.Zoom(-1)
	assert.Greater(t, c.Distance, float32(53.99))
	for i := 0; i < 200; i++ {
		c.Zoom(5)
	}
	assert.Equal(t, float32(minDistance), c.Distance)
	for i := 0; i < 200; i++ {
		c.Zoom(-5)
	}
	assert.Equal(t, c.Far/2, c.Distance)
}

func TestCameraPan(t *testing.T) {
	var c Camera
	c.Pan(1, 2, 3)
	// Yaw zero looks down -Z with +X to the right.
	assert.InDeltaSlice(t, []float32{1, 2, -3}, c.Target[:], tol)

	c = Camera{Yaw: mgl32.DegToRad(90)}
	c.Pan(0, 0, 1)
	assert.InDeltaSlice(t, []float32{-1, 0, 0}, c.Target[:], tol)
}

func TestCameraProjection(t *testing.T) {
	c := DefaultCamera()
	persp := c.ProjectionMatrix(1.25)
	assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(45), 1.25, c.Near, c.Far), persp)

	c.Projection = Orthographic
	assert.Equal(t, "orthographic", c.Projection.String())
	ortho := c.ProjectionMatrix(2)
	// Points on the edges of the orthographic volume map to the clip edges.
	top := ortho.Mul4x1(mgl32.Vec4{0, c.Distance * 0.41421356, -c.Distance, 1})
	assert.InDelta(t, 1, top.Y(), 1e-3)
	right := ortho.Mul4x1(mgl32.Vec4{2 * c.Distance * 0.41421356, 0, -c.Distance, 1})
	assert.InDelta(t, 1, right.X(), 1e-3)
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{Width: -1}.withDefaults()
	def := DefaultConfig()
	assert.Equal(t, def.Width, cfg.Width)
	assert.Equal(t, def.Height, cfg.Height)
	assert.Equal(t, def.Camera, cfg.Camera)
	assert.Equal(t, def.Mesh, cfg.Mesh)
	assert.NotNil(t, cfg.Logger)
	assert.Same(t, cfg.Logger, cfg.Manager.Logger)
}
