// Package stilllife composes a textured still-life out of basic meshes.
//
// A [Scene] describes textures, materials, lights and a list of objects, each
// built from transformed parts. A [Manager] prepares a scene (uploads its
// textures, registers materials, configures lights and loads the meshes it
// uses) and renders it by issuing one transform, surface and draw per part
// against three collaborators: a uniform binder, a mesh drawer and a texture
// uploader. The glscene package provides OpenGL implementations of them and
// the trace package a recording one.
package stilllife

import (
	"github.com/cs330/stilllife/shapes"
	"github.com/cs330/stilllife/textures"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// MaxTextureSlots is the number of texture units a scene may use.
	MaxTextureSlots = 16
	// MaxPointLights is the size of the shader's point light array.
	MaxPointLights = 4
)

// Uniform names shared with the shaders.
const (
	uniformModel      = "model"
	uniformColor      = "objectColor"
	uniformTexture    = "objectTexture"
	uniformUseTexture = "bUseTexture"
	uniformLighting   = "bUseLighting"
	uniformUVScale    = "UVscale"

	uniformDiffuse   = "material.diffuseColor"
	uniformSpecular  = "material.specularColor"
	uniformShininess = "material.shininess"
)

// Uniforms sets named shader uniforms on the active program.
type Uniforms interface {
	SetMat4(name string, m mgl32.Mat4)
	SetVec4(name string, v mgl32.Vec4)
	SetVec3(name string, v mgl32.Vec3)
	SetVec2(name string, v mgl32.Vec2)
	SetFloat(name string, v float32)
	SetInt(name string, v int32)
	SetBool(name string, v bool)
	SetSampler2D(name string, unit int32)
}

// MeshDrawer loads basic meshes and draws them with the current uniforms.
type MeshDrawer interface {
	// LoadMeshes makes kinds available for drawing. Loading a kind twice is a no-op.
	LoadMeshes(kinds ...shapes.Kind) error
	// DrawMesh draws the faces of a loaded mesh.
	DrawMesh(kind shapes.Kind, faces shapes.Face) error
}

// TextureUploader owns GPU texture objects.
type TextureUploader interface {
	// UploadTexture creates a texture with repeat wrapping, linear filtering
	// and mipmaps from img and returns its id.
	UploadTexture(img *textures.Image) (id uint32, err error)
	// BindTexture binds texture id to texture unit.
	BindTexture(unit int, id uint32)
	DeleteTexture(id uint32)
}
