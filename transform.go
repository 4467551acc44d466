package stilllife

import "github.com/go-gl/mathgl/mgl32"

// Transform places a mesh in the world.
type Transform struct {
	Scale mgl32.Vec3
	// Rotation holds the angles in degrees about the X, Y and Z axes.
	Rotation mgl32.Vec3
	Position mgl32.Vec3
}

// Model returns the model matrix T·Rz·Ry·Rx·S: the mesh is scaled, then
// rotated about X, Y and Z in that order and finally translated.
func (t Transform) Model() mgl32.Mat4 {
	rx := mgl32.HomogRotate3DX(mgl32.DegToRad(t.Rotation[0]))
	ry := mgl32.HomogRotate3DY(mgl32.DegToRad(t.Rotation[1]))
	rz := mgl32.HomogRotate3DZ(mgl32.DegToRad(t.Rotation[2]))
	s := mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2])
	tr := mgl32.Translate3D(t.Position[0], t.Position[1], t.Position[2])
	return tr.Mul4(rz).Mul4(ry).Mul4(rx).Mul4(s)
}
