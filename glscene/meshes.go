//go:build !tinygo && cgo

package glscene

import (
	"errors"
	"fmt"

	"github.com/cs330/stilllife/shapes"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/soypat/glgl/v4.1-core/glgl"
)

// glMesh is a mesh resident in GPU memory.
type glMesh struct {
	vao, vbo, ebo uint32
	mesh          *shapes.Mesh
}

// Meshes uploads basic shape meshes on demand. It implements [stilllife.MeshDrawer].
type Meshes struct {
	lib    *shapes.Library
	loaded map[shapes.Kind]*glMesh
	floats []float32
}

func newMeshes(opts shapes.Options) *Meshes {
	return &Meshes{
		lib:    shapes.NewLibrary(opts),
		loaded: make(map[shapes.Kind]*glMesh),
	}
}

func (m *Meshes) LoadMeshes(kinds ...shapes.Kind) error {
	if err := m.lib.Load(kinds...); err != nil {
		return err
	}
	for _, k := range kinds {
		if m.loaded[k] != nil {
			continue
		}
		mesh, _ := m.lib.Mesh(k)
		glm, err := m.upload(mesh)
		if err != nil {
			return fmt.Errorf("upload %s mesh: %w", k, err)
		}
		m.loaded[k] = glm
	}
	return nil
}

func (m *Meshes) upload(mesh *shapes.Mesh) (*glMesh, error) {
	const stride = 4 * shapes.VertexFloats
	m.floats = mesh.AppendFloats(m.floats[:0])
	glm := &glMesh{mesh: mesh}
	gl.GenVertexArrays(1, &glm.vao)
	gl.BindVertexArray(glm.vao)
	defer gl.BindVertexArray(0)

	gl.GenBuffers(1, &glm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, glm.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(m.floats), gl.Ptr(m.floats), gl.STATIC_DRAW)

	gl.GenBuffers(1, &glm.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, glm.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 4*len(mesh.Indices), gl.Ptr(mesh.Indices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(4*3))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(4*6))
	if err := glgl.Err(); err != nil {
		glm.delete()
		return nil, err
	}
	return glm, nil
}

func (m *Meshes) DrawMesh(kind shapes.Kind, faces shapes.Face) error {
	glm := m.loaded[kind]
	if glm == nil {
		return fmt.Errorf("draw %s: mesh not loaded", kind)
	}
	spans := glm.mesh.Spans(faces)
	if len(spans) == 0 {
		return errors.New("draw " + kind.String() + ": no faces selected")
	}
	gl.BindVertexArray(glm.vao)
	for _, s := range spans {
		gl.DrawElements(gl.TRIANGLES, int32(s.Count), gl.UNSIGNED_INT, gl.PtrOffset(4*s.Start))
	}
	gl.BindVertexArray(0)
	return nil
}

// Delete releases all uploaded meshes.
func (m *Meshes) Delete() {
	for k, glm := range m.loaded {
		glm.delete()
		delete(m.loaded, k)
	}
}

func (glm *glMesh) delete() {
	gl.DeleteVertexArrays(1, &glm.vao)
	gl.DeleteBuffers(1, &glm.vbo)
	gl.DeleteBuffers(1, &glm.ebo)
}
