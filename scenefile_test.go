package stilllife

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cs330/stilllife/shapes"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lampScene = `
name: lamp
textures:
  - {tag: brass, file: brass.png}
materials:
  - {tag: metal, diffuse: [0.4, 0.4, 0.4], specular: [0.7, 0.7, 0.6], shininess: 85}
lighting:
  enabled: true
  directional:
    direction: [0, -1, 0]
    ambient: [0.2, 0.2, 0.2]
    diffuse: [0.8, 0.8, 0.8]
    specular: [1, 1, 1]
objects:
  - name: Lamp
    parts:
      - &base
        {name: base, shape: cylinder, faces: bottom|sides, scale: [2, 0.2, 2], texture: brass, material: metal}
      - <<: *base
        name: base-top
        faces: top
        uv_scale: [3, 3]
      - {name: shade, shape: tapered-cylinder, position: [0, 4, 0], color: [1, 0.9, 0.7]}
`

func TestDecodeScene(t *testing.T) {
	s, err := DecodeScene(strings.NewReader(lampScene))
	require.NoError(t, err)
	require.NoError(t, s.Validate())
	assert.Equal(t, "lamp", s.Name)
	require.NotNil(t, s.Lighting.Directional)
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, s.Lighting.Directional.Direction)
	assert.Nil(t, s.Lighting.Spot)

	require.Len(t, s.Objects, 1)
	parts := s.Objects[0].Parts
	require.Len(t, parts, 3)

	base := parts[0]
	assert.Equal(t, shapes.Cylinder, base.Shape)
	assert.Equal(t, shapes.Bottom|shapes.Sides, base.Faces)
	assert.Nil(t, base.Surface.UVScale)

	// Merged from the anchor with overrides.
	top := parts[1]
	assert.Equal(t, "base-top", top.Name)
	assert.Equal(t, shapes.Top, top.Faces)
	assert.Equal(t, base.Transform, top.Transform)
	assert.Equal(t, "brass", top.Surface.Texture)
	require.NotNil(t, top.Surface.UVScale)
	assert.Equal(t, mgl32.Vec2{3, 3}, *top.Surface.UVScale)

	shade := parts[2]
	assert.Equal(t, shapes.TaperedCylinder, shade.Shape)
	assert.Equal(t, shapes.AllFaces, shade.Faces)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, shade.Transform.Scale, "default scale")
	require.NotNil(t, shade.Surface.Color)
	assert.Equal(t, mgl32.Vec4{1, 0.9, 0.7, 1}, *shade.Surface.Color, "default alpha")

	assert.Equal(t, []shapes.Kind{shapes.Cylinder, shapes.TaperedCylinder}, s.Shapes())
}

func TestDecodeSceneErrors(t *testing.T) {
	for _, test := range []struct {
		name, yaml, want string
	}{
		{"empty", "", "empty scene file"},
		{"unknown field", "name: x\nobjects: []\nsky: blue\n", "sky"},
		{"short vector", "objects:\n  - name: o\n    parts:\n      - {shape: box, scale: [1, 2]}\n", "o/0 scale: want 3 components, got 2"},
		{"bad shape", "objects:\n  - name: o\n    parts:\n      - {name: p, shape: teapot}\n", "o/p"},
		{"bad faces", "objects:\n  - name: o\n    parts:\n      - {shape: box, faces: up}\n", "o/0"},
		{"bad color", "objects:\n  - name: o\n    parts:\n      - {shape: box, color: [1, 1]}\n", "color: want 3 or 4"},
		{"bad uv", "objects:\n  - name: o\n    parts:\n      - {shape: box, uv_scale: [1]}\n", "uv_scale"},
		{"bad material", "materials:\n  - {tag: m, diffuse: [1], specular: [1, 1, 1]}\n", "material m diffuse"},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := DecodeScene(strings.NewReader(test.yaml))
			require.Error(t, err)
			assert.ErrorContains(t, err, test.want)
		})
	}
}

func TestSceneRoundTrip(t *testing.T) {
	want := DefaultScene()
	var buf bytes.Buffer
	require.NoError(t, EncodeScene(&buf, want))
	got, err := DecodeScene(&buf)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadSceneFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lamp.yaml")
	require.NoError(t, os.WriteFile(path, []byte(lampScene), 0o644))
	s, err := LoadSceneFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, s.NumParts())

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte(strings.Replace(lampScene, "texture: brass", "texture: bronze", 1)), 0o644))
	_, err = LoadSceneFile(bad)
	assert.ErrorContains(t, err, `undefined texture "bronze"`)

	_, err = LoadSceneFile(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestDefaultScene(t *testing.T) {
	s := DefaultScene()
	require.NoError(t, s.Validate())
	var names []string
	for _, obj := range s.Objects {
		names = append(names, obj.Name)
	}
	assert.Equal(t, []string{
		"Table", "CologneBottle", "PerfumeBottle", "Itinerary", "NecklaceBox",
		"RingBoxes", "Earrings", "WhiteVowBook", "BrownVowBook",
	}, names)
	assert.Len(t, s.Textures, 12)
	assert.Len(t, s.Materials, 5)
	assert.Len(t, s.Lighting.Points, 1)
	assert.NotNil(t, s.Lighting.Spot)

	// Fresh copy on every call.
	s.Objects[0].Parts[0].Transform.Scale[0] = 0
	assert.Equal(t, float32(35), DefaultScene().Objects[0].Parts[0].Transform.Scale[0])

	// Ring box lids share the box transform apart from scale and height.
	ring := s.Objects[5].Parts
	assert.Equal(t, ring[0].Transform.Rotation, ring[1].Transform.Rotation)
	assert.Equal(t, mgl32.Vec3{5.75, 5.75, 0.4}, ring[1].Transform.Scale)
	assert.Equal(t, mgl32.Vec3{16, 2.2, -16.5}, ring[3].Transform.Position)
}

func TestValidateCollectsAll(t *testing.T) {
	s := &Scene{
		Textures:  []TextureSpec{{Tag: "a", File: "a.jpg"}, {Tag: "a", File: "b.jpg"}, {Tag: "c"}},
		Materials: Palette{{Tag: "m"}, {Tag: "m"}},
		Lighting:  Lighting{Points: make([]PointLight, 5)},
	}
	err := s.Validate()
	require.Error(t, err)
	msg := err.Error()
	for _, want := range []string{"texture 1", "empty file name", "duplicate tag \"m\"", "5 point lights"} {
		assert.Contains(t, msg, want)
	}
	assert.ErrorIs(t, err, ErrDuplicateTexture)
}

func TestValidateFacesOnShape(t *testing.T) {
	s := &Scene{Objects: []Object{{Name: "ball", Parts: []Part{
		{Name: "lid", Shape: shapes.Sphere, Faces: shapes.Top},
		{Name: "walls", Shape: shapes.Box, Faces: shapes.Sides},
		{Name: "rim", Shape: shapes.Cylinder, Faces: shapes.Top | shapes.Front},
		{Name: "whole", Shape: shapes.Sphere},
	}}}}
	err := s.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "ball/lid: sphere mesh has no top faces")
	assert.Contains(t, msg, "ball/walls: box mesh has no sides faces")
	assert.NotContains(t, msg, "ball/rim")
	assert.NotContains(t, msg, "ball/whole")

	s.Objects[0].Parts = s.Objects[0].Parts[2:]
	require.NoError(t, s.Validate())
}

func TestDecodeLightingEnabledDefault(t *testing.T) {
	const lit = `
lighting:
  points:
    - {position: [0, 5, 0], ambient: [1, 1, 1], diffuse: [1, 1, 1], specular: [1, 1, 1]}
`
	s, err := DecodeScene(strings.NewReader(lit))
	require.NoError(t, err)
	assert.True(t, s.Lighting.Enabled, "lights without enabled key")

	s, err = DecodeScene(strings.NewReader(lit + "  enabled: false\n"))
	require.NoError(t, err)
	assert.False(t, s.Lighting.Enabled)

	// Explicitly disabled lighting survives a round trip.
	var buf bytes.Buffer
	require.NoError(t, EncodeScene(&buf, s))
	assert.Contains(t, buf.String(), "enabled: false")
	again, err := DecodeScene(&buf)
	require.NoError(t, err)
	assert.False(t, again.Lighting.Enabled)

	s, err = DecodeScene(strings.NewReader("name: dark\n"))
	require.NoError(t, err)
	assert.False(t, s.Lighting.Enabled, "no lights")
}
