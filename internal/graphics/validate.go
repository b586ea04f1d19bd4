package graphics

import (
	"fmt"
)

// ValidateDraw checks that the program, uniforms, vertex source and
// parameters of a draw call fit together. Backends call it before issuing
// any GL commands so a bad call leaves no state behind.
func ValidateDraw(call DrawCall) error {
	if call.Program == nil {
		return &DrawError{Kind: NoProgram}
	}
	if call.Vertices == nil && call.VertexCount <= 0 {
		return &DrawError{Kind: EmptyVertexSource}
	}

	info := call.Program.Info()

	for _, want := range info.Attributes {
		if call.Vertices == nil {
			return &DrawError{Kind: AttributeMissing, Name: want.Name, Detail: "no vertex buffer bound"}
		}
		got, ok := call.Vertices.Format().Lookup(want.Name)
		if !ok {
			return &DrawError{Kind: AttributeMissing, Name: want.Name}
		}
		if got.Type != want.Type {
			return &DrawError{
				Kind:   AttributeTypeMismatch,
				Name:   want.Name,
				Detail: fmt.Sprintf("program expects %v, buffer has %v", want.Type, got.Type),
			}
		}
	}

	// Uniforms the program does not use are tolerated: the GLSL compiler is
	// free to drop inactive ones.
	for _, u := range info.Uniforms {
		v, ok := call.Uniforms[u.Name]
		if !ok || v == nil {
			return &DrawError{Kind: UniformMissing, Name: u.Name}
		}
		if v.UniformType() != u.Type {
			return &DrawError{
				Kind:   UniformTypeMismatch,
				Name:   u.Name,
				Detail: fmt.Sprintf("program expects %v, got %v", u.Type, v.UniformType()),
			}
		}
		if s, ok := v.(Sampler2D); ok && s.Texture == nil {
			return &DrawError{Kind: UniformMissing, Name: u.Name, Detail: "sampler has no texture"}
		}
	}

	if call.Indices != nil {
		if p := call.Indices.Primitive(); p != call.Primitive {
			return &DrawError{
				Kind:   PrimitiveMismatch,
				Detail: fmt.Sprintf("call draws %d, index buffer holds %d", call.Primitive, p),
			}
		}
		n := call.VertexCount
		if call.Vertices != nil {
			n = call.Vertices.Len()
		}
		for i, idx := range call.Indices.Indices() {
			if int(idx) >= n {
				return &DrawError{
					Kind:   IndexOutOfRange,
					Detail: fmt.Sprintf("index %d at position %d, %d vertices", idx, i, n),
				}
			}
		}
	}

	if vp := call.Params.Viewport; vp != nil && (vp.Width <= 0 || vp.Height <= 0) {
		return &DrawError{Kind: InvalidViewport, Detail: fmt.Sprintf("%dx%d", vp.Width, vp.Height)}
	}

	return nil
}
