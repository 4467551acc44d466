package shapes

import (
	"fmt"

	math "github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	taperedTopRadius = 0.5
	torusMainRadius  = 1.0
	torusTubeRadius  = 0.2
)

// Generate builds the mesh of the given kind.
func Generate(kind Kind, opts Options) (*Mesh, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	b := meshBuilder{m: &Mesh{Kind: kind}}
	switch kind {
	case Box:
		b.box()
	case Plane:
		b.plane()
	case Cylinder:
		b.frustum(opts.Segments, 1, 1, true, true)
	case Cone:
		b.frustum(opts.Segments, 1, 0, false, true)
	case TaperedCylinder:
		b.frustum(opts.Segments, 1, taperedTopRadius, true, true)
	case Sphere:
		b.sphere(opts.Segments, opts.Rings, math.Pi)
	case HalfSphere:
		b.sphere(opts.Segments, opts.Rings/2, math.Pi/2)
		b.disk(Bottom, opts.Segments, 1, 0, false)
	case Torus:
		b.torus(opts.Segments, opts.Rings)
	case Pyramid3:
		b.pyramid(3)
	case Pyramid4:
		b.pyramid4()
	case Prism:
		b.prism()
	case Hexagon:
		b.hexagon()
	default:
		return nil, fmt.Errorf("cannot generate %s mesh", kind)
	}
	return b.m, nil
}

type meshBuilder struct {
	m     *Mesh
	start int
	face  Face
}

func (b *meshBuilder) begin(face Face) {
	b.face = face
	b.start = len(b.m.Indices)
}

func (b *meshBuilder) end() {
	if n := len(b.m.Indices) - b.start; n > 0 {
		b.m.Ranges = append(b.m.Ranges, Range{Face: b.face, Start: b.start, Count: n})
	}
}

func (b *meshBuilder) vertex(p, n mgl32.Vec3, uv mgl32.Vec2) uint32 {
	b.m.Vertices = append(b.m.Vertices, Vertex{Position: p, Normal: n, UV: uv})
	return uint32(len(b.m.Vertices) - 1)
}

func (b *meshBuilder) tri(i0, i1, i2 uint32) {
	b.m.Indices = append(b.m.Indices, i0, i1, i2)
}

// quad adds the counter-clockwise quad a,b,c,d as its own face with a flat normal.
func (b *meshBuilder) quad(face Face, p0, p1, p2, p3 mgl32.Vec3) {
	n := p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
	b.begin(face)
	i0 := b.vertex(p0, n, mgl32.Vec2{0, 0})
	i1 := b.vertex(p1, n, mgl32.Vec2{1, 0})
	i2 := b.vertex(p2, n, mgl32.Vec2{1, 1})
	i3 := b.vertex(p3, n, mgl32.Vec2{0, 1})
	b.tri(i0, i1, i2)
	b.tri(i0, i2, i3)
	b.end()
}

// rect adds a quad centered on c spanned by half extents u and v. u×v points outward.
func (b *meshBuilder) rect(face Face, c, u, v mgl32.Vec3) {
	b.quad(face, c.Sub(u).Sub(v), c.Add(u).Sub(v), c.Add(u).Add(v), c.Sub(u).Add(v))
}

// triangle adds a counter-clockwise triangle as part of the current face.
func (b *meshBuilder) triangle(p0, p1, p2 mgl32.Vec3) {
	n := p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
	i0 := b.vertex(p0, n, mgl32.Vec2{0, 0})
	i1 := b.vertex(p1, n, mgl32.Vec2{1, 0})
	i2 := b.vertex(p2, n, mgl32.Vec2{0.5, 1})
	b.tri(i0, i1, i2)
}

func (b *meshBuilder) box() {
	const h = 0.5
	x := mgl32.Vec3{h, 0, 0}
	y := mgl32.Vec3{0, h, 0}
	z := mgl32.Vec3{0, 0, h}
	b.rect(Front, z, x, y)
	b.rect(Back, z.Mul(-1), x.Mul(-1), y)
	b.rect(Right, x, z.Mul(-1), y)
	b.rect(Left, x.Mul(-1), z, y)
	b.rect(Top, y, x, z.Mul(-1))
	b.rect(Bottom, y.Mul(-1), x, z)
}

func (b *meshBuilder) plane() {
	b.rect(Top, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1})
}

// ring returns the point at angle theta of a horizontal circle of radius r at height y.
// Angles increase clockwise seen from +Y so that ring-ordered quads face outward.
func ring(theta, r, y float32) mgl32.Vec3 {
	s, c := math.Sincos(theta)
	return mgl32.Vec3{r * c, y, -r * s}
}

// frustum adds the lateral surface of a truncated cone of height 1 standing on y=0
// and the requested caps. A zero top radius yields a cone.
func (b *meshBuilder) frustum(segs int, rBottom, rTop float32, capTop, capBottom bool) {
	b.begin(Sides)
	base := uint32(len(b.m.Vertices))
	slope := rBottom - rTop
	for i := 0; i <= segs; i++ {
		theta := 2 * math.Pi * float32(i) / float32(segs)
		s, c := math.Sincos(theta)
		n := mgl32.Vec3{c, slope, -s}.Normalize()
		u := float32(i) / float32(segs)
		b.vertex(ring(theta, rBottom, 0), n, mgl32.Vec2{u, 0})
		b.vertex(ring(theta, rTop, 1), n, mgl32.Vec2{u, 1})
	}
	for i := 0; i < segs; i++ {
		b0 := base + uint32(2*i)
		t0 := b0 + 1
		b1 := b0 + 2
		t1 := b0 + 3
		b.tri(b0, b1, t1)
		if rTop != 0 {
			b.tri(b0, t1, t0)
		}
	}
	b.end()
	if capTop && rTop > 0 {
		b.disk(Top, segs, rTop, 1, true)
	}
	if capBottom {
		b.disk(Bottom, segs, rBottom, 0, false)
	}
}

// disk adds a horizontal disk at height y facing +Y when up is set, else -Y.
func (b *meshBuilder) disk(face Face, segs int, r, y float32, up bool) {
	b.begin(face)
	n := mgl32.Vec3{0, -1, 0}
	if up {
		n = mgl32.Vec3{0, 1, 0}
	}
	center := b.vertex(mgl32.Vec3{0, y, 0}, n, mgl32.Vec2{0.5, 0.5})
	for i := 0; i <= segs; i++ {
		theta := 2 * math.Pi * float32(i) / float32(segs)
		s, c := math.Sincos(theta)
		b.vertex(ring(theta, r, y), n, mgl32.Vec2{0.5 + 0.5*c, 0.5 + 0.5*s})
	}
	for i := uint32(0); i < uint32(segs); i++ {
		p0, p1 := center+1+i, center+2+i
		if up {
			b.tri(center, p0, p1)
		} else {
			b.tri(center, p1, p0)
		}
	}
	b.end()
}

// sphere adds a unit sphere cap from the north pole down to polar angle maxPhi.
func (b *meshBuilder) sphere(segs, rings int, maxPhi float32) {
	b.begin(Sides)
	base := uint32(len(b.m.Vertices))
	for j := 0; j <= rings; j++ {
		phi := maxPhi * float32(j) / float32(rings)
		sp, cp := math.Sincos(phi)
		for i := 0; i <= segs; i++ {
			theta := 2 * math.Pi * float32(i) / float32(segs)
			p := ring(theta, sp, cp)
			b.vertex(p, p, mgl32.Vec2{float32(i) / float32(segs), 1 - phi/math.Pi})
		}
	}
	stride := uint32(segs + 1)
	southPole := maxPhi >= math.Pi
	for j := uint32(0); j < uint32(rings); j++ {
		for i := uint32(0); i < uint32(segs); i++ {
			t0 := base + j*stride + i
			t1 := t0 + 1
			b0 := t0 + stride
			b1 := b0 + 1
			// Skip the degenerate half of quads touching a pole.
			if !southPole || j != uint32(rings)-1 {
				b.tri(b0, b1, t1)
			}
			if j != 0 {
				b.tri(b0, t1, t0)
			}
		}
	}
	b.end()
}

func (b *meshBuilder) torus(segs, rings int) {
	b.begin(Sides)
	base := uint32(len(b.m.Vertices))
	for i := 0; i <= segs; i++ {
		alpha := 2 * math.Pi * float32(i) / float32(segs)
		sa, ca := math.Sincos(alpha)
		for j := 0; j <= rings; j++ {
			beta := 2 * math.Pi * float32(j) / float32(rings)
			sb, cb := math.Sincos(beta)
			n := mgl32.Vec3{cb * ca, cb * sa, sb}
			p := mgl32.Vec3{torusMainRadius * ca, torusMainRadius * sa, 0}.Add(n.Mul(torusTubeRadius))
			b.vertex(p, n, mgl32.Vec2{float32(i) / float32(segs), float32(j) / float32(rings)})
		}
	}
	stride := uint32(rings + 1)
	for i := uint32(0); i < uint32(segs); i++ {
		for j := uint32(0); j < uint32(rings); j++ {
			a := base + i*stride + j
			c := a + stride
			b.tri(a, c, c+1)
			b.tri(a, c+1, a+1)
		}
	}
	b.end()
}

// pyramid adds a pyramid with a regular n-gon base of circumradius 0.5 at y=-0.5
// and its apex at y=0.5.
func (b *meshBuilder) pyramid(n int) {
	apex := mgl32.Vec3{0, 0.5, 0}
	base := make([]mgl32.Vec3, n)
	for i := range base {
		base[i] = ring(math.Pi/2+2*math.Pi*float32(i)/float32(n), 0.5, -0.5)
	}
	b.begin(Sides)
	for i := range base {
		b.triangle(base[i], base[(i+1)%n], apex)
	}
	b.end()
	b.begin(Bottom)
	for i := 1; i+1 < n; i++ {
		b.triangle(base[0], base[i+1], base[i])
	}
	b.end()
}

// pyramid4 adds a square based pyramid spanning the unit cube, one face per side.
func (b *meshBuilder) pyramid4() {
	const h = 0.5
	apex := mgl32.Vec3{0, h, 0}
	fl := mgl32.Vec3{-h, -h, h}
	fr := mgl32.Vec3{h, -h, h}
	br := mgl32.Vec3{h, -h, -h}
	bl := mgl32.Vec3{-h, -h, -h}
	for _, side := range [...]struct {
		face Face
		a, b mgl32.Vec3
	}{
		{Front, fl, fr},
		{Right, fr, br},
		{Back, br, bl},
		{Left, bl, fl},
	} {
		b.begin(side.face)
		b.triangle(side.a, side.b, apex)
		b.end()
	}
	b.rect(Bottom, mgl32.Vec3{0, -h, 0}, mgl32.Vec3{h, 0, 0}, mgl32.Vec3{0, 0, h})
}

// prism adds a triangular prism: an isosceles triangle in the XY plane spanning the
// unit square, extruded over z in [-0.5, 0.5].
func (b *meshBuilder) prism() {
	const h = 0.5
	p0 := mgl32.Vec2{-h, -h}
	p1 := mgl32.Vec2{h, -h}
	p2 := mgl32.Vec2{0, h}
	at := func(p mgl32.Vec2, z float32) mgl32.Vec3 { return mgl32.Vec3{p[0], p[1], z} }
	b.begin(Front)
	b.triangle(at(p0, h), at(p1, h), at(p2, h))
	b.end()
	b.begin(Back)
	b.triangle(at(p1, -h), at(p0, -h), at(p2, -h))
	b.end()
	b.rect(Bottom, mgl32.Vec3{0, -h, 0}, mgl32.Vec3{h, 0, 0}, mgl32.Vec3{0, 0, h})
	b.quad(Right, at(p1, h), at(p1, -h), at(p2, -h), at(p2, h))
	b.quad(Left, at(p2, h), at(p2, -h), at(p0, -h), at(p0, h))
}

// hexagon adds a hexagonal prism of circumradius 1 in the XY plane extruded over z in [-0.5, 0.5].
func (b *meshBuilder) hexagon() {
	const h = 0.5
	var corners [7]mgl32.Vec2
	for i := range corners {
		s, c := math.Sincos(float32(i) * math.Pi / 3)
		corners[i] = mgl32.Vec2{c, s}
	}
	addCap := func(face Face, z, nz float32) {
		b.begin(face)
		n := mgl32.Vec3{0, 0, nz}
		center := b.vertex(mgl32.Vec3{0, 0, z}, n, mgl32.Vec2{0.5, 0.5})
		for _, c := range corners {
			b.vertex(mgl32.Vec3{c[0], c[1], z}, n, mgl32.Vec2{0.5 + 0.5*c[0], 0.5 + 0.5*c[1]})
		}
		for i := uint32(0); i < 6; i++ {
			if nz > 0 {
				b.tri(center, center+1+i, center+2+i)
			} else {
				b.tri(center, center+2+i, center+1+i)
			}
		}
		b.end()
	}
	addCap(Front, h, 1)
	addCap(Back, -h, -1)
	for i := 0; i < 6; i++ {
		c0, c1 := corners[i], corners[i+1]
		b.quad(Sides,
			mgl32.Vec3{c0[0], c0[1], -h},
			mgl32.Vec3{c1[0], c1[1], -h},
			mgl32.Vec3{c1[0], c1[1], h},
			mgl32.Vec3{c0[0], c0[1], h},
		)
	}
}
