// Package shapes generates the basic meshes a still-life scene is assembled from:
// boxes, planes, cylinders, cones, spheres, tori, pyramids, prisms and hexagonal prisms.
//
// Meshes are indexed triangle lists with per-vertex position, normal and texture
// coordinates. Each mesh records which index spans belong to which [Face] so a
// caller can draw, for example, only the top of a cylinder with a different texture.
package shapes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms3"
)

// Kind identifies a basic mesh.
type Kind uint8

const (
	kindUndefined Kind = iota
	Box
	Plane
	Cylinder
	Cone
	Sphere
	HalfSphere
	Torus
	Pyramid3
	Pyramid4
	Prism
	Hexagon
	TaperedCylinder
	numKinds
)

var kindNames = [numKinds]string{
	kindUndefined:   "undefined",
	Box:             "box",
	Plane:           "plane",
	Cylinder:        "cylinder",
	Cone:            "cone",
	Sphere:          "sphere",
	HalfSphere:      "halfsphere",
	Torus:           "torus",
	Pyramid3:        "pyramid3",
	Pyramid4:        "pyramid4",
	Prism:           "prism",
	Hexagon:         "hexagon",
	TaperedCylinder: "taperedcylinder",
}

// Kinds returns every defined mesh kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, numKinds-1)
	for k := Box; k < numKinds; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

func (k Kind) String() string {
	if k >= numKinds {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Valid reports whether k names a mesh that can be generated.
func (k Kind) Valid() bool { return k > kindUndefined && k < numKinds }

var kindFaces = [numKinds]Face{
	Box:             Front | Back | Left | Right | Top | Bottom,
	Plane:           Top,
	Cylinder:        Sides | Top | Bottom,
	Cone:            Sides | Bottom,
	Sphere:          Sides,
	HalfSphere:      Sides | Bottom,
	Torus:           Sides,
	Pyramid3:        Sides | Bottom,
	Pyramid4:        Front | Back | Left | Right | Bottom,
	Prism:           Front | Back | Left | Right | Bottom,
	Hexagon:         Front | Back | Sides,
	TaperedCylinder: Sides | Top | Bottom,
}

// Faces returns the faces a generated mesh of kind k has. It is zero for
// invalid kinds.
func (k Kind) Faces() Face {
	if !k.Valid() {
		return 0
	}
	return kindFaces[k]
}

// ParseKind returns the Kind named s. Matching ignores case, dashes and underscores
// so "tapered_cylinder" and "TaperedCylinder" are both accepted.
func ParseKind(s string) (Kind, error) {
	norm := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s))
	for k := Box; k < numKinds; k++ {
		if kindNames[k] == norm {
			return k, nil
		}
	}
	return kindUndefined, fmt.Errorf("unknown shape %q", s)
}

// Face is a bit set selecting parts of a mesh. Flat faces are named after
// the axis they face in mesh space. Round lateral surfaces are [Sides].
type Face uint8

const (
	Front  Face = 1 << iota // +Z
	Back                    // -Z
	Left                    // -X
	Right                   // +X
	Top                     // +Y
	Bottom                  // -Y
	Sides
	// AllFaces selects the whole mesh.
	AllFaces = Front | Back | Left | Right | Top | Bottom | Sides
)

var faceNames = [...]string{"front", "back", "left", "right", "top", "bottom", "sides"}

func (f Face) String() string {
	if f == AllFaces {
		return "all"
	} else if f == 0 {
		return "none"
	}
	var sb strings.Builder
	for i, name := range faceNames {
		if f&(1<<i) == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(name)
	}
	return sb.String()
}

// ParseFaces parses a list of face names separated by '|' or ','.
// The empty string and "all" select [AllFaces].
func ParseFaces(s string) (Face, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "all" {
		return AllFaces, nil
	}
	var f Face
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' }) {
		part = strings.TrimSpace(part)
		found := false
		for i, name := range faceNames {
			if part == name {
				f |= 1 << i
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown face %q", part)
		}
	}
	return f, nil
}

// Vertex is the interleaved vertex layout uploaded to the GPU:
// 3 floats position, 3 floats normal, 2 floats texture coordinates.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

// VertexFloats is the number of float32 values in a [Vertex].
const VertexFloats = 8

// Range is a contiguous span of a mesh's index buffer belonging to one face.
type Range struct {
	Face  Face
	Start int // First index.
	Count int // Number of indices, a multiple of 3.
}

// Mesh is an indexed triangle mesh.
type Mesh struct {
	Kind     Kind
	Vertices []Vertex
	Indices  []uint32
	Ranges   []Range
}

// Spans returns the ranges of m selected by faces. Adjacent spans are merged
// so that drawing a whole mesh takes a single draw call.
func (m *Mesh) Spans(faces Face) []Range {
	var spans []Range
	for _, r := range m.Ranges {
		if r.Face&faces == 0 {
			continue
		}
		if n := len(spans); n > 0 && spans[n-1].Start+spans[n-1].Count == r.Start {
			spans[n-1].Count += r.Count
			spans[n-1].Face |= r.Face
			continue
		}
		spans = append(spans, r)
	}
	return spans
}

// Count returns the number of indices selected by faces.
func (m *Mesh) Count(faces Face) (n int) {
	for _, r := range m.Ranges {
		if r.Face&faces != 0 {
			n += r.Count
		}
	}
	return n
}

// Faces returns the union of all faces present in the mesh.
func (m *Mesh) Faces() (f Face) {
	for _, r := range m.Ranges {
		f |= r.Face
	}
	return f
}

// Triangles appends the triangles of the selected faces to dst after transforming
// them by model.
func (m *Mesh) Triangles(dst []ms3.Triangle, faces Face, model mgl32.Mat4) []ms3.Triangle {
	for _, r := range m.Spans(faces) {
		idx := m.Indices[r.Start : r.Start+r.Count]
		for i := 0; i+2 < len(idx); i += 3 {
			var t ms3.Triangle
			for j := 0; j < 3; j++ {
				p := model.Mul4x1(m.Vertices[idx[i+j]].Position.Vec4(1))
				t[j] = ms3.Vec{X: p[0], Y: p[1], Z: p[2]}
			}
			dst = append(dst, t)
		}
	}
	return dst
}

// Bounds returns the axis aligned bounding box of the mesh vertices.
func (m *Mesh) Bounds() ms3.Box {
	if len(m.Vertices) == 0 {
		return ms3.Box{}
	}
	p := m.Vertices[0].Position
	bb := ms3.Box{Min: ms3.Vec{X: p[0], Y: p[1], Z: p[2]}, Max: ms3.Vec{X: p[0], Y: p[1], Z: p[2]}}
	for _, v := range m.Vertices[1:] {
		// Box.Union discards degenerate boxes, so accumulate element wise.
		p := ms3.Vec{X: v.Position[0], Y: v.Position[1], Z: v.Position[2]}
		bb.Min = ms3.MinElem(bb.Min, p)
		bb.Max = ms3.MaxElem(bb.Max, p)
	}
	return bb
}

// AppendFloats appends the interleaved vertex data of m to dst.
func (m *Mesh) AppendFloats(dst []float32) []float32 {
	for _, v := range m.Vertices {
		dst = append(dst, v.Position[:]...)
		dst = append(dst, v.Normal[:]...)
		dst = append(dst, v.UV[:]...)
	}
	return dst
}

// Options controls tessellation of round meshes.
type Options struct {
	// Segments is the number of subdivisions around round shapes. Default 36.
	Segments int
	// Rings is the number of latitude subdivisions of spheres and around the torus tube. Default 18.
	Rings int
}

// DefaultOptions returns the tessellation used when none is given.
func DefaultOptions() Options {
	return Options{Segments: 36, Rings: 18}
}

var errBadTessellation = errors.New("tessellation requires at least 3 segments and 2 rings")

func (opts Options) validate() error {
	if opts.Segments < 3 || opts.Rings < 2 {
		return errBadTessellation
	}
	return nil
}
