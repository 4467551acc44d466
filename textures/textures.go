// Package textures decodes image files into tightly packed pixel buffers ready
// for upload as OpenGL textures.
//
// JPEG and PNG are decoded by the standard library; BMP, TIFF and WebP by
// golang.org/x/image. Opaque images are packed as 3 channel RGB and images
// with any transparency as 4 channel RGBA.
package textures

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedChannels is returned for pixel buffers that are neither RGB nor RGBA.
var ErrUnsupportedChannels = errors.New("unsupported number of color channels")

// Image is a decoded texture. Rows are tightly packed, Channels bytes per pixel.
type Image struct {
	Width    int
	Height   int
	Channels int
	Pix      []byte
}

// Validate checks the pixel buffer is consistent with the image dimensions.
func (img *Image) Validate() error {
	if img.Channels != 3 && img.Channels != 4 {
		return fmt.Errorf("%w: %d", ErrUnsupportedChannels, img.Channels)
	} else if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("invalid texture size %dx%d", img.Width, img.Height)
	} else if len(img.Pix) != img.Width*img.Height*img.Channels {
		return fmt.Errorf("pixel buffer length %d does not match %dx%dx%d", len(img.Pix), img.Width, img.Height, img.Channels)
	}
	return nil
}

// Options configures decoding.
type Options struct {
	// FlipVertically stores the bottom row first, which is what OpenGL
	// texture coordinates expect.
	FlipVertically bool
	// MaxSize limits the largest image dimension. Bigger images are
	// downscaled preserving aspect ratio. Zero means no limit.
	MaxSize int
}

// Decode reads an image from r.
func Decode(r io.Reader, opts Options) (*Image, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	if opts.MaxSize > 0 {
		src = downscale(src, opts.MaxSize)
	}
	return pack(src, opts.FlipVertically), nil
}

// Load decodes the image file at path.
func Load(path string, opts Options) (*Image, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	img, err := Decode(fp, opts)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

func downscale(src image.Image, maxSize int) image.Image {
	sz := src.Bounds().Size()
	if sz.X <= maxSize && sz.Y <= maxSize {
		return src
	}
	w, h := maxSize, maxSize
	if sz.X > sz.Y {
		h = max(1, sz.Y*maxSize/sz.X)
	} else {
		w = max(1, sz.X*maxSize/sz.Y)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// pack converts src to tightly packed non-premultiplied RGB or RGBA bytes.
func pack(src image.Image, flip bool) *Image {
	bb := src.Bounds()
	nrgba, ok := src.(*image.NRGBA)
	if !ok || nrgba.Rect.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, bb.Dx(), bb.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), src, bb.Min, draw.Src)
	}
	w, h := bb.Dx(), bb.Dy()
	channels := 3
	if !opaque(src, nrgba) {
		channels = 4
	}
	img := &Image{Width: w, Height: h, Channels: channels, Pix: make([]byte, w*h*channels)}
	for y := 0; y < h; y++ {
		srcRow := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+4*w]
		dstY := y
		if flip {
			dstY = h - 1 - y
		}
		dstRow := img.Pix[dstY*w*channels : (dstY+1)*w*channels]
		if channels == 4 {
			copy(dstRow, srcRow)
			continue
		}
		for x := 0; x < w; x++ {
			copy(dstRow[3*x:3*x+3], srcRow[4*x:4*x+3])
		}
	}
	return img
}

func opaque(src image.Image, nrgba *image.NRGBA) bool {
	if o, ok := src.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return nrgba.Opaque()
}

// Solid returns a 1x1 RGBA texture of color c. Handy as a placeholder.
func Solid(c color.Color) *Image {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return &Image{Width: 1, Height: 1, Channels: 4, Pix: []byte{n.R, n.G, n.B, n.A}}
}
