//go:build !tinygo && cgo

package glscene

import (
	"log/slog"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/glgl/v4.1-core/glgl"
)

// Program is the scene shader program. It implements [stilllife.Uniforms].
// Uniform locations are looked up once by name and cached; setting a uniform
// the driver optimized away is a no-op.
type Program struct {
	prog    glgl.Program
	locs    map[string]int32
	log     *slog.Logger
	missing map[string]bool
}

func compileProgram(log *slog.Logger) (*Program, error) {
	prog, err := glgl.CompileProgram(glgl.ShaderSource{
		Vertex:   vertexSource + "\x00",
		Fragment: fragmentSource + "\x00",
	})
	if err != nil {
		return nil, err
	}
	prog.Bind()
	return &Program{
		prog:    prog,
		locs:    make(map[string]int32),
		log:     log,
		missing: make(map[string]bool),
	}, nil
}

func (p *Program) location(name string) int32 {
	if loc, ok := p.locs[name]; ok {
		return loc
	}
	loc, err := p.prog.UniformLocation(name + "\x00")
	if err != nil {
		loc = -1
		if !p.missing[name] {
			p.missing[name] = true
			p.log.Debug("uniform not found", slog.String("name", name), slog.String("err", err.Error()))
		}
	}
	p.locs[name] = loc
	return loc
}

func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	if loc := p.location(name); loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	}
}

func (p *Program) SetVec4(name string, v mgl32.Vec4) {
	if loc := p.location(name); loc >= 0 {
		gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
	}
}

func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	if loc := p.location(name); loc >= 0 {
		gl.Uniform3f(loc, v[0], v[1], v[2])
	}
}

func (p *Program) SetVec2(name string, v mgl32.Vec2) {
	if loc := p.location(name); loc >= 0 {
		gl.Uniform2f(loc, v[0], v[1])
	}
}

func (p *Program) SetFloat(name string, v float32) {
	if loc := p.location(name); loc >= 0 {
		gl.Uniform1f(loc, v)
	}
}

func (p *Program) SetInt(name string, v int32) {
	if loc := p.location(name); loc >= 0 {
		gl.Uniform1i(loc, v)
	}
}

func (p *Program) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	p.SetInt(name, i)
}

func (p *Program) SetSampler2D(name string, unit int32) { p.SetInt(name, unit) }

// Delete releases the GPU program.
func (p *Program) Delete() {
	p.prog.Unbind()
	p.prog.Delete()
}
