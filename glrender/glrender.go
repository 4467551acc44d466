// Package glrender turns scenes into world space triangles, for export to
// formats any mesh viewer understands.
package glrender

import (
	"errors"
	"io"

	"github.com/cs330/stilllife"
	"github.com/cs330/stilllife/shapes"
	"github.com/soypat/geometry/ms3"
)

// Renderer yields triangles in batches. ReadTriangles returns io.EOF after
// the last triangle has been read.
type Renderer interface {
	ReadTriangles(dst []ms3.Triangle, userData any) (n int, err error)
}

// RenderAll reads the full contents of a Renderer and returns the slice read.
// It does not return error on io.EOF, like the io.ReadAll implementation.
func RenderAll(r Renderer, userData any) ([]ms3.Triangle, error) {
	const startSize = 4096
	var err error
	var nt int
	result := make([]ms3.Triangle, 0, startSize)
	buf := make([]ms3.Triangle, startSize)
	for {
		nt, err = r.ReadTriangles(buf, userData)
		if err == nil || err == io.EOF {
			result = append(result, buf[:nt]...)
		}
		if err != nil {
			break
		}
	}
	if err == io.EOF {
		return result, nil
	}
	return result, err
}

// SceneRenderer walks the parts of a scene in draw order and yields the
// triangles of the faces each part draws, transformed by the part's model matrix.
type SceneRenderer struct {
	scene   *stilllife.Scene
	lib     *shapes.Library
	obj     int
	part    int
	buf     []ms3.Triangle
	pending []ms3.Triangle
}

// NewSceneRenderer generates the meshes the scene uses with opts.
func NewSceneRenderer(s *stilllife.Scene, opts shapes.Options) (*SceneRenderer, error) {
	if s == nil {
		return nil, errors.New("nil scene")
	}
	lib := shapes.NewLibrary(opts)
	if err := lib.Load(s.Shapes()...); err != nil {
		return nil, err
	}
	return &SceneRenderer{scene: s, lib: lib}, nil
}

// ReadTriangles fills dst with the next triangles of the scene. userData is unused.
func (sr *SceneRenderer) ReadTriangles(dst []ms3.Triangle, userData any) (n int, err error) {
	if len(dst) == 0 {
		return 0, io.ErrShortBuffer
	}
	for n < len(dst) {
		if len(sr.pending) == 0 {
			if !sr.nextPart() {
				return n, io.EOF
			}
			continue
		}
		c := copy(dst[n:], sr.pending)
		sr.pending = sr.pending[c:]
		n += c
	}
	return n, nil
}

// Reset rewinds the renderer to the first part of the scene.
func (sr *SceneRenderer) Reset() {
	sr.obj, sr.part = 0, 0
	sr.pending = nil
}

func (sr *SceneRenderer) nextPart() bool {
	objs := sr.scene.Objects
	for sr.obj < len(objs) {
		if sr.part >= len(objs[sr.obj].Parts) {
			sr.obj++
			sr.part = 0
			continue
		}
		p := &objs[sr.obj].Parts[sr.part]
		sr.part++
		mesh, ok := sr.lib.Mesh(p.Shape)
		if !ok {
			continue
		}
		faces := p.Faces
		if faces == 0 {
			faces = shapes.AllFaces
		}
		sr.buf = mesh.Triangles(sr.buf[:0], faces, p.Transform.Model())
		sr.pending = sr.buf
		return true
	}
	return false
}

// Bounds returns the box enclosing all triangles.
func Bounds(triangles []ms3.Triangle) ms3.Box {
	if len(triangles) == 0 {
		return ms3.Box{}
	}
	bb := ms3.Box{Min: triangles[0][0], Max: triangles[0][0]}
	for _, t := range triangles {
		for _, v := range t {
			bb.Min = ms3.Vec{X: min(bb.Min.X, v.X), Y: min(bb.Min.Y, v.Y), Z: min(bb.Min.Z, v.Z)}
			bb.Max = ms3.Vec{X: max(bb.Max.X, v.X), Y: max(bb.Max.Y, v.Y), Z: max(bb.Max.Z, v.Z)}
		}
	}
	return bb
}
