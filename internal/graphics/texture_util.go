package graphics

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// DecodePNG decodes PNG data into 8-bit non-premultiplied RGBA.
// Rows are flipped so that row 0 of the result is the bottom of the image,
// matching OpenGL texture coordinates.
func DecodePNG(data []byte) (*image.NRGBA, error) {
	kind, err := filetype.Match(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImageFormat, err)
	}
	if kind != matchers.TypePng {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedImageFormat, kind.Extension)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	flip := f64.Aff3{
		1, 0, float64(-b.Min.X),
		0, -1, float64(b.Max.Y),
	}
	draw.NearestNeighbor.Transform(out, flip, img, b, draw.Src, nil)
	return out, nil
}

// LoadTexture decodes a PNG from fsys and uploads it with mipmaps
func LoadTexture(dev Device, fsys fs.FS, path string) (Texture2D, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture file: %w", err)
	}

	img, err := DecodePNG(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	tex, err := dev.NewTexture2D(img, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tex, nil
}
