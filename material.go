package stilllife

import "github.com/go-gl/mathgl/mgl32"

// Material is a named set of Phong reflectance parameters.
type Material struct {
	Tag       string
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	Shininess float32
}

// Palette is an ordered list of materials.
type Palette []Material

// Find returns the first material tagged tag.
func (p Palette) Find(tag string) (Material, bool) {
	for _, m := range p {
		if m.Tag == tag {
			return m, true
		}
	}
	return Material{}, false
}
