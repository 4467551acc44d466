package trace

import (
	"errors"
	"strings"
	"testing"

	"github.com/cs330/stilllife/shapes"
	"github.com/cs330/stilllife/textures"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderUniforms(t *testing.T) {
	var r Recorder
	r.SetBool("bUseTexture", true)
	r.SetVec4("objectColor", mgl32.Vec4{1, 0, 0, 1})
	r.SetBool("bUseTexture", false)
	v, ok := r.Uniform("bUseTexture")
	require.True(t, ok)
	assert.Equal(t, false, v)
	assert.Len(t, r.Filter(OpUniform), 3)
	r.Reset()
	assert.Empty(t, r.Calls())
	_, ok = r.Uniform("objectColor")
	assert.False(t, ok)
}

func TestRecorderMeshes(t *testing.T) {
	var r Recorder
	err := r.DrawMesh(shapes.Box, shapes.AllFaces)
	assert.Error(t, err)
	require.NoError(t, r.LoadMeshes(shapes.Box, shapes.Torus))
	require.NoError(t, r.DrawMesh(shapes.Box, shapes.Top))
	draws := r.Filter(OpDraw)
	require.Len(t, draws, 1)
	assert.Equal(t, "box", draws[0].Name)
	assert.Equal(t, shapes.Top, draws[0].Value)
	assert.Error(t, r.LoadMeshes(shapes.Kind(0)))
}

func TestRecorderTextures(t *testing.T) {
	var r Recorder
	img := &textures.Image{Width: 1, Height: 1, Channels: 3, Pix: []byte{1, 2, 3}}
	id1, err := r.UploadTexture(img)
	require.NoError(t, err)
	id2, err := r.UploadTexture(img)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), id1)
	assert.Equal(t, uint32(2), id2)
	assert.Equal(t, 2, r.LiveTextures())
	r.DeleteTexture(id1)
	assert.Equal(t, 1, r.LiveTextures())

	_, err = r.UploadTexture(&textures.Image{Width: 1, Height: 1, Channels: 1, Pix: []byte{1}})
	assert.ErrorIs(t, err, textures.ErrUnsupportedChannels)

	r.UploadErr = errors.New("out of memory")
	_, err = r.UploadTexture(img)
	assert.EqualError(t, err, "out of memory")
}

func TestRecorderWriteTo(t *testing.T) {
	var r Recorder
	r.SetMat4("model", mgl32.Ident4())
	r.SetFloat("material.shininess", 30)
	require.NoError(t, r.LoadMeshes(shapes.Plane))
	require.NoError(t, r.DrawMesh(shapes.Plane, shapes.AllFaces))
	var sb strings.Builder
	n, err := r.WriteTo(&sb)
	require.NoError(t, err)
	assert.Equal(t, int64(sb.Len()), n)
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "uniform model [1 0 0 0 0 1 0 0 0 0 1 0 0 0 0 1]", lines[0])
	assert.Equal(t, "uniform material.shininess 30", lines[1])
	assert.Equal(t, "load plane", lines[2])
	assert.Equal(t, "draw plane all", lines[3])
}
