//go:build !tinygo && cgo

package glscene

import (
	"fmt"

	"github.com/cs330/stilllife/textures"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/soypat/glgl/v4.1-core/glgl"
)

// Textures creates OpenGL 2D textures for sampling. It implements [stilllife.TextureUploader].
// glgl.NewTextureFromImage binds image units for compute shaders and sets no
// wrapping or mipmaps, so sampler textures are created here.
type Textures struct{}

func (Textures) UploadTexture(img *textures.Image) (uint32, error) {
	if err := img.Validate(); err != nil {
		return 0, err
	}
	internal, format := int32(gl.RGB8), uint32(gl.RGB)
	if img.Channels == 4 {
		internal, format = gl.RGBA8, gl.RGBA
	}
	var id uint32
	gl.GenTextures(1, &id)
	if id == 0 {
		return 0, glErrOrMessage("zero texture id generated")
	}
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	// RGB rows are not 4 byte aligned in general.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(img.Width), int32(img.Height), 0, format, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	if err := glgl.Err(); err != nil {
		gl.DeleteTextures(1, &id)
		return 0, fmt.Errorf("upload %dx%d texture: %w", img.Width, img.Height, err)
	}
	return id, nil
}

func (Textures) BindTexture(unit int, id uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, id)
}

func (Textures) DeleteTexture(id uint32) {
	gl.DeleteTextures(1, &id)
}
