package glcore

import (
	"fmt"
	"unsafe"

	"gpu-sketches/internal/graphics"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// VertexBuffer is an ARRAY_BUFFER holding graphics.Vertex values
type VertexBuffer struct {
	ID  uint32
	len int
}

func (d *Device) NewVertexBuffer(vertices []graphics.Vertex, usage graphics.BufferUsage) (graphics.VertexBuffer, error) {
	if len(vertices) == 0 {
		return nil, fmt.Errorf("failed to allocate vertex buffer: no vertices")
	}
	b := &VertexBuffer{len: len(vertices)}
	gl.GenBuffers(1, &b.ID)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.ID)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*graphics.VertexSize, gl.Ptr(vertices), bufferUsage(usage))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	if err := checkError("allocating vertex buffer"); err != nil {
		b.Dispose()
		return nil, err
	}
	return b, nil
}

func (b *VertexBuffer) Len() int                     { return b.len }
func (b *VertexBuffer) Format() graphics.VertexFormat { return graphics.VertexLayout }

func (b *VertexBuffer) Read() ([]graphics.Vertex, error) {
	out := make([]graphics.Vertex, b.len)
	err := b.mapRange(gl.MAP_READ_BIT, func(v []graphics.Vertex) error {
		copy(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (b *VertexBuffer) Map(fn func([]graphics.Vertex) error) error {
	return b.mapRange(gl.MAP_READ_BIT|gl.MAP_WRITE_BIT, fn)
}

func (b *VertexBuffer) mapRange(access uint32, fn func([]graphics.Vertex) error) (err error) {
	gl.BindBuffer(gl.ARRAY_BUFFER, b.ID)
	defer gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	ptr := gl.MapBufferRange(gl.ARRAY_BUFFER, 0, b.len*graphics.VertexSize, access)
	if ptr == nil {
		return fmt.Errorf("%w: 0x%x", graphics.ErrBufferMap, gl.GetError())
	}
	defer func() {
		if !gl.UnmapBuffer(gl.ARRAY_BUFFER) && err == nil {
			err = fmt.Errorf("%w: buffer contents lost while mapped", graphics.ErrBufferMap)
		}
	}()

	return fn(unsafe.Slice((*graphics.Vertex)(ptr), b.len))
}

func (b *VertexBuffer) Dispose() {
	if b.ID != 0 {
		gl.DeleteBuffers(1, &b.ID)
		b.ID = 0
	}
}

// IndexBuffer is an ELEMENT_ARRAY_BUFFER of 16-bit indices.
// A client copy is kept for validation.
type IndexBuffer struct {
	ID        uint32
	primitive graphics.PrimitiveType
	indices   []uint16
}

func (d *Device) NewIndexBuffer(primitive graphics.PrimitiveType, indices []uint16) (graphics.IndexBuffer, error) {
	if len(indices) == 0 {
		return nil, fmt.Errorf("failed to allocate index buffer: no indices")
	}
	b := &IndexBuffer{primitive: primitive, indices: append([]uint16(nil), indices...)}
	gl.GenBuffers(1, &b.ID)
	// ELEMENT_ARRAY_BUFFER binding is VAO state, so upload through ARRAY_BUFFER
	gl.BindBuffer(gl.ARRAY_BUFFER, b.ID)
	gl.BufferData(gl.ARRAY_BUFFER, len(indices)*2, gl.Ptr(b.indices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	if err := checkError("allocating index buffer"); err != nil {
		b.Dispose()
		return nil, err
	}
	return b, nil
}

func (b *IndexBuffer) Primitive() graphics.PrimitiveType { return b.primitive }
func (b *IndexBuffer) Indices() []uint16                 { return b.indices }

func (b *IndexBuffer) Dispose() {
	if b.ID != 0 {
		gl.DeleteBuffers(1, &b.ID)
		b.ID = 0
	}
}

func bufferUsage(u graphics.BufferUsage) uint32 {
	if u == graphics.UsageDynamic {
		return gl.DYNAMIC_DRAW
	}
	return gl.STATIC_DRAW
}
