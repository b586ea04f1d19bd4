package glcore

import (
	"errors"
	"fmt"

	"gpu-sketches/internal/graphics"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Frame draws into the default framebuffer
type Frame struct {
	dev           *Device
	width, height int
	finished      bool
}

func (f *Frame) Clear(c graphics.Color) {
	gl.Viewport(0, 0, int32(f.width), int32(f.height))
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (f *Frame) Draw(call graphics.DrawCall) error {
	if f.finished {
		return errors.New("draw on finished frame")
	}
	if err := graphics.ValidateDraw(call); err != nil {
		return err
	}
	prog, ok := call.Program.(*Program)
	if !ok {
		return fmt.Errorf("program %T was not created by this device", call.Program)
	}

	f.applyParameters(call.Params)

	prog.Use()
	if err := bindUniforms(prog, call.Uniforms); err != nil {
		return err
	}

	gl.BindVertexArray(f.dev.vao)
	defer gl.BindVertexArray(0)

	if call.Vertices != nil {
		vb, ok := call.Vertices.(*VertexBuffer)
		if !ok {
			return fmt.Errorf("vertex buffer %T was not created by this device", call.Vertices)
		}
		gl.BindBuffer(gl.ARRAY_BUFFER, vb.ID)
		for _, a := range prog.info.Attributes {
			src, _ := vb.Format().Lookup(a.Name)
			loc := prog.attribLoc[a.Name]
			gl.EnableVertexAttribArray(loc)
			gl.VertexAttribPointerWithOffset(loc, src.Type.Components(), gl.FLOAT, false, graphics.VertexSize, uintptr(src.Offset))
			defer gl.DisableVertexAttribArray(loc)
		}
		gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	}

	mode := primitiveMode(call.Primitive)
	if call.Indices != nil {
		ib, ok := call.Indices.(*IndexBuffer)
		if !ok {
			return fmt.Errorf("index buffer %T was not created by this device", call.Indices)
		}
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ib.ID)
		gl.DrawElementsWithOffset(mode, int32(len(ib.indices)), gl.UNSIGNED_SHORT, 0)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	} else {
		gl.DrawArrays(mode, 0, int32(call.Count()))
	}

	return checkError("drawing")
}

func (f *Frame) Finish() error {
	if f.finished {
		return errors.New("frame already finished")
	}
	f.finished = true
	f.dev.surface.SwapBuffers()
	return checkError("presenting frame")
}

func (f *Frame) applyParameters(p graphics.DrawParameters) {
	if vp := p.Viewport; vp != nil {
		gl.Viewport(int32(vp.Left), int32(vp.Bottom), int32(vp.Width), int32(vp.Height))
	} else {
		gl.Viewport(0, 0, int32(f.width), int32(f.height))
	}

	switch p.Culling {
	case graphics.CullClockwise:
		gl.Enable(gl.CULL_FACE)
		gl.FrontFace(gl.CCW)
		gl.CullFace(gl.BACK)
	case graphics.CullCounterClockwise:
		gl.Enable(gl.CULL_FACE)
		gl.FrontFace(gl.CW)
		gl.CullFace(gl.BACK)
	default:
		gl.Disable(gl.CULL_FACE)
	}
}

func bindUniforms(prog *Program, uniforms graphics.Uniforms) error {
	unit := uint32(0)
	for _, info := range prog.info.Uniforms {
		loc := prog.uniforms[info.Name]
		switch v := uniforms[info.Name].(type) {
		case graphics.Float:
			gl.Uniform1f(loc, float32(v))
		case graphics.Vec4:
			gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
		case graphics.Sampler2D:
			tex, ok := v.Texture.(*Texture)
			if !ok {
				return fmt.Errorf("texture %T was not created by this device", v.Texture)
			}
			gl.ActiveTexture(gl.TEXTURE0 + unit)
			gl.BindTexture(gl.TEXTURE_2D, tex.ID)
			gl.Uniform1i(loc, int32(unit))
			unit++
		default:
			return &graphics.DrawError{Kind: graphics.UniformTypeMismatch, Name: info.Name}
		}
	}
	return nil
}

func primitiveMode(p graphics.PrimitiveType) uint32 {
	switch p {
	case graphics.TriangleStrip:
		return gl.TRIANGLE_STRIP
	case graphics.LinesList:
		return gl.LINES
	}
	return gl.TRIANGLES
}
