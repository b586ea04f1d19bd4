package glcore

import (
	"fmt"
	"image"

	"gpu-sketches/internal/graphics"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Texture is a TEXTURE_2D with RGBA8 storage
type Texture struct {
	ID            uint32
	width, height int
}

func (d *Device) NewTexture2D(img *image.NRGBA, mipmaps bool) (graphics.Texture2D, error) {
	size := img.Rect.Size()
	if size.X == 0 || size.Y == 0 {
		return nil, fmt.Errorf("failed to create texture: empty image")
	}
	// Rows must be tightly packed for TexImage2D
	if img.Stride != 4*size.X {
		packed := image.NewNRGBA(image.Rect(0, 0, size.X, size.Y))
		for y := 0; y < size.Y; y++ {
			copy(packed.Pix[y*packed.Stride:(y+1)*packed.Stride], img.Pix[y*img.Stride:])
		}
		img = packed
	}

	t := &Texture{width: size.X, height: size.Y}
	gl.GenTextures(1, &t.ID)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	if mipmaps {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	}

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA8,
		int32(size.X),
		int32(size.Y),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(img.Pix),
	)
	if mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)
	if err := checkError("uploading texture"); err != nil {
		t.Dispose()
		return nil, err
	}
	return t, nil
}

func (t *Texture) Width() int  { return t.width }
func (t *Texture) Height() int { return t.height }

func (t *Texture) Dispose() {
	if t.ID != 0 {
		gl.DeleteTextures(1, &t.ID)
		t.ID = 0
	}
}
