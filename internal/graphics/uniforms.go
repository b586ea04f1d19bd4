package graphics

// UniformType is the GLSL type of a uniform
type UniformType int

const (
	UniformFloat UniformType = iota
	UniformVec2
	UniformVec4
	UniformSampler2D
	UniformOther
)

func (t UniformType) String() string {
	switch t {
	case UniformFloat:
		return "float"
	case UniformVec2:
		return "vec2"
	case UniformVec4:
		return "vec4"
	case UniformSampler2D:
		return "sampler2D"
	}
	return "other"
}

// UniformValue is a value that can be bound to a named uniform
type UniformValue interface {
	UniformType() UniformType
}

// Uniforms maps uniform names to values for one draw call
type Uniforms map[string]UniformValue

// Float is a float uniform
type Float float32

func (Float) UniformType() UniformType { return UniformFloat }

// Vec4 is a vec4 uniform
type Vec4 [4]float32

func (Vec4) UniformType() UniformType { return UniformVec4 }

// Sampler2D binds a texture to a sampler2D uniform
type Sampler2D struct {
	Texture Texture2D
}

func (Sampler2D) UniformType() UniformType { return UniformSampler2D }
