// Package trace provides a graphics backend that records calls instead of
// issuing them. It stands in for OpenGL in tests and in dry runs.
package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/cs330/stilllife/shapes"
	"github.com/cs330/stilllife/textures"
	"github.com/go-gl/mathgl/mgl32"
)

// Op identifies the kind of a recorded call.
type Op uint8

const (
	OpUniform Op = iota + 1
	OpLoadMeshes
	OpDraw
	OpUpload
	OpBind
	OpDelete
)

func (op Op) String() string {
	switch op {
	case OpUniform:
		return "uniform"
	case OpLoadMeshes:
		return "load"
	case OpDraw:
		return "draw"
	case OpUpload:
		return "upload"
	case OpBind:
		return "bind"
	case OpDelete:
		return "delete"
	}
	return fmt.Sprintf("Op(%d)", uint8(op))
}

// Call is a single recorded call.
type Call struct {
	Op Op
	// Name is the uniform name for uniform calls and the mesh kind for draws.
	Name  string
	Value any
}

func (c Call) String() string {
	switch v := c.Value.(type) {
	case nil:
		return c.Op.String() + " " + c.Name
	case mgl32.Mat4:
		return fmt.Sprintf("%s %s %v", c.Op, c.Name, [16]float32(v))
	default:
		return fmt.Sprintf("%s %s %v", c.Op, c.Name, v)
	}
}

var errNotLoaded = errors.New("mesh not loaded")

// Recorder records uniform, mesh and texture calls in order.
// The zero value is ready to use.
type Recorder struct {
	calls    []Call
	uniforms map[string]any
	loaded   map[shapes.Kind]bool
	nextID   uint32
	live     map[uint32]bool
	// UploadErr, if set, is returned by every texture upload.
	UploadErr error
}

func (r *Recorder) record(op Op, name string, v any) {
	r.calls = append(r.calls, Call{Op: op, Name: name, Value: v})
}

func (r *Recorder) uniform(name string, v any) {
	if r.uniforms == nil {
		r.uniforms = make(map[string]any)
	}
	r.uniforms[name] = v
	r.record(OpUniform, name, v)
}

func (r *Recorder) SetMat4(name string, m mgl32.Mat4) {
	r.uniform(name, m)
}

func (r *Recorder) SetVec4(name string, v mgl32.Vec4) {
	r.uniform(name, v)
}

func (r *Recorder) SetVec3(name string, v mgl32.Vec3) {
	r.uniform(name, v)
}

func (r *Recorder) SetVec2(name string, v mgl32.Vec2) {
	r.uniform(name, v)
}

func (r *Recorder) SetFloat(name string, v float32) {
	r.uniform(name, v)
}

func (r *Recorder) SetInt(name string, v int32) {
	r.uniform(name, v)
}

func (r *Recorder) SetBool(name string, v bool) {
	r.uniform(name, v)
}

func (r *Recorder) SetSampler2D(name string, v int32) {
	r.uniform(name, v)
}

// LoadMeshes marks the kinds as loaded.
func (r *Recorder) LoadMeshes(kinds ...shapes.Kind) error {
	if r.loaded == nil {
		r.loaded = make(map[shapes.Kind]bool)
	}
	for _, k := range kinds {
		if !k.Valid() {
			return fmt.Errorf("invalid mesh kind %s", k)
		}
		r.loaded[k] = true
		r.record(OpLoadMeshes, k.String(), nil)
	}
	return nil
}

// DrawMesh records a draw. Drawing a kind that was never loaded fails.
func (r *Recorder) DrawMesh(kind shapes.Kind, faces shapes.Face) error {
	if !r.loaded[kind] {
		return fmt.Errorf("draw %s: %w", kind, errNotLoaded)
	}
	r.record(OpDraw, kind.String(), faces)
	return nil
}

// UploadTexture validates img and hands out sequential texture ids starting at 1.
func (r *Recorder) UploadTexture(img *textures.Image) (uint32, error) {
	if r.UploadErr != nil {
		return 0, r.UploadErr
	} else if err := img.Validate(); err != nil {
		return 0, err
	}
	if r.live == nil {
		r.live = make(map[uint32]bool)
	}
	r.nextID++
	r.live[r.nextID] = true
	r.record(OpUpload, fmt.Sprintf("%dx%dx%d", img.Width, img.Height, img.Channels), r.nextID)
	return r.nextID, nil
}

func (r *Recorder) BindTexture(unit int, id uint32) {
	r.record(OpBind, fmt.Sprintf("unit%d", unit), id)
}

func (r *Recorder) DeleteTexture(id uint32) {
	delete(r.live, id)
	r.record(OpDelete, "", id)
}

// LiveTextures returns the number of uploaded textures not yet deleted.
func (r *Recorder) LiveTextures() int { return len(r.live) }

// Calls returns all recorded calls in order.
func (r *Recorder) Calls() []Call { return r.calls }

// Filter returns the recorded calls of the given kind.
func (r *Recorder) Filter(op Op) []Call {
	var calls []Call
	for _, c := range r.calls {
		if c.Op == op {
			calls = append(calls, c)
		}
	}
	return calls
}

// Uniform returns the last value set for the named uniform.
func (r *Recorder) Uniform(name string) (any, bool) {
	v, ok := r.uniforms[name]
	return v, ok
}

// Reset forgets recorded calls and uniform state. Loaded meshes and live textures are kept.
func (r *Recorder) Reset() {
	r.calls = r.calls[:0]
	clear(r.uniforms)
}

// WriteTo writes the recorded calls to w, one per line.
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, c := range r.calls {
		written, err := fmt.Fprintln(bw, c.String())
		n += int64(written)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}
