package glrender

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/cs330/stilllife"
	"github.com/cs330/stilllife/shapes"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boxScene() *stilllife.Scene {
	return &stilllife.Scene{Objects: []stilllife.Object{
		{Name: "crate", Parts: []stilllife.Part{{
			Shape:     shapes.Box,
			Transform: stilllife.Transform{Scale: mgl32.Vec3{2, 2, 2}, Position: mgl32.Vec3{10, 0, 0}},
		}}},
		{Name: "empty"},
		{Name: "lid", Parts: []stilllife.Part{{
			Shape:     shapes.Box,
			Faces:     shapes.Top,
			Transform: stilllife.Transform{Scale: mgl32.Vec3{2, 2, 2}, Position: mgl32.Vec3{10, 2, 0}},
		}}},
	}}
}

func TestSceneRendererBatches(t *testing.T) {
	sr, err := NewSceneRenderer(boxScene(), shapes.DefaultOptions())
	require.NoError(t, err)
	dst := make([]ms3.Triangle, 5)
	var got []int
	for {
		n, err := sr.ReadTriangles(dst, nil)
		got = append(got, n)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}
	// 12 box triangles plus the 2 of the lid top.
	assert.Equal(t, []int{5, 5, 4}, got)

	sr.Reset()
	all, err := RenderAll(sr, nil)
	require.NoError(t, err)
	require.Len(t, all, 14)
	bb := Bounds(all)
	const tol = 1e-5
	assert.InDelta(t, 9, bb.Min.X, tol)
	assert.InDelta(t, 11, bb.Max.X, tol)
	assert.InDelta(t, -1, bb.Min.Y, tol)
	assert.InDelta(t, 3, bb.Max.Y, tol)

	_, err = sr.ReadTriangles(nil, nil)
	assert.ErrorIs(t, err, io.ErrShortBuffer)
}

func TestSceneRendererDefaultScene(t *testing.T) {
	s := stilllife.DefaultScene()
	sr, err := NewSceneRenderer(s, shapes.Options{Segments: 12, Rings: 6})
	require.NoError(t, err)
	all, err := RenderAll(sr, nil)
	require.NoError(t, err)
	require.NotEmpty(t, all)
	// The table top is the largest part and bounds the scene in X and Z.
	bb := Bounds(all)
	assert.InDelta(t, -35, bb.Min.X, 1e-3)
	assert.InDelta(t, 35, bb.Max.X, 1e-3)
	assert.InDelta(t, -36.5, bb.Min.Z, 1e-3)
	assert.InDelta(t, 23.5, bb.Max.Z, 1e-3)
}

func TestSTLRoundTrip(t *testing.T) {
	sr, err := NewSceneRenderer(boxScene(), shapes.DefaultOptions())
	require.NoError(t, err)
	triangles, err := RenderAll(sr, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := WriteBinarySTL(&buf, triangles)
	require.NoError(t, err)
	assert.Equal(t, 84+50*len(triangles), n)
	assert.Equal(t, n, buf.Len())
	raw := buf.Bytes()
	assert.Equal(t, uint32(len(triangles)), binary.LittleEndian.Uint32(raw[80:84]))

	// Last facet is the lid top: its normal points up.
	last := raw[len(raw)-50:]
	ny := math.Float32frombits(binary.LittleEndian.Uint32(last[4:8]))
	assert.InDelta(t, 1, ny, 1e-6)

	got, err := ReadBinarySTL(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, triangles, got)

	_, err = ReadBinarySTL(bytes.NewReader(raw[:len(raw)-10]))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	_, err = ReadBinarySTL(bytes.NewReader(raw[:20]))
	assert.Error(t, err)
}
