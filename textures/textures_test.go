package textures

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoRows returns a 2x2 image with a red top row and a blue bottom row.
func twoRows(alpha uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for x := 0; x < 2; x++ {
		img.SetNRGBA(x, 0, color.NRGBA{R: 255, A: alpha})
		img.SetNRGBA(x, 1, color.NRGBA{B: 255, A: alpha})
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestDecodeOpaqueIsRGB(t *testing.T) {
	img, err := Decode(encodePNG(t, twoRows(255)), Options{})
	require.NoError(t, err)
	require.NoError(t, img.Validate())
	assert.Equal(t, 3, img.Channels)
	assert.Equal(t, []byte{255, 0, 0, 255, 0, 0, 0, 0, 255, 0, 0, 255}, img.Pix)
}

func TestDecodeFlip(t *testing.T) {
	img, err := Decode(encodePNG(t, twoRows(255)), Options{FlipVertically: true})
	require.NoError(t, err)
	// Blue row comes first once flipped.
	assert.Equal(t, []byte{0, 0, 255, 0, 0, 255, 255, 0, 0, 255, 0, 0}, img.Pix)
}

func TestDecodeTransparentIsRGBA(t *testing.T) {
	img, err := Decode(encodePNG(t, twoRows(128)), Options{})
	require.NoError(t, err)
	assert.Equal(t, 4, img.Channels)
	assert.Len(t, img.Pix, 16)
	assert.Equal(t, byte(128), img.Pix[3])
}

func TestDecodeJPEGDownscale(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 64, 32))
	for i := range src.Pix {
		src.Pix[i] = 200
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, src, nil))
	img, err := Decode(&buf, Options{MaxSize: 16, FlipVertically: true})
	require.NoError(t, err)
	assert.Equal(t, 16, img.Width)
	assert.Equal(t, 8, img.Height)
	assert.Equal(t, 3, img.Channels)
	require.NoError(t, img.Validate())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "red.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, twoRows(255)).Bytes(), 0o644))
	img, err := Load(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, img.Width)

	_, err = Load(filepath.Join(dir, "missing.jpg"), Options{})
	assert.Error(t, err)

	garbage := filepath.Join(dir, "garbage.jpg")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0o644))
	_, err = Load(garbage, Options{})
	assert.ErrorContains(t, err, "garbage.jpg")
}

func TestValidate(t *testing.T) {
	img := Solid(color.White)
	require.NoError(t, img.Validate())
	img.Channels = 2
	assert.ErrorIs(t, img.Validate(), ErrUnsupportedChannels)
	img = &Image{Width: 2, Height: 2, Channels: 3, Pix: make([]byte, 3)}
	assert.Error(t, img.Validate())
}
