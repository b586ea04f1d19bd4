package glcore

import (
	"fmt"
	"strings"

	"gpu-sketches/internal/graphics"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Program is a linked OpenGL shader program
type Program struct {
	ID uint32

	info      graphics.ProgramInfo
	uniforms  map[string]int32
	attribLoc map[string]uint32
}

func (p *Program) Info() graphics.ProgramInfo { return p.info }

// Use activates the shader program
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

func (p *Program) Dispose() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}

func (d *Device) NewProgram(src graphics.ShaderSource) (graphics.Program, error) {
	id, err := compileProgram(src.Vertex, src.Fragment)
	if err != nil {
		return nil, err
	}
	p := &Program{
		ID:        id,
		uniforms:  make(map[string]int32),
		attribLoc: make(map[string]uint32),
	}
	if err := p.reflect(); err != nil {
		gl.DeleteProgram(id)
		return nil, err
	}
	return p, nil
}

// reflect records the active attributes and uniforms of the linked program
func (p *Program) reflect() error {
	var count, maxLen int32
	gl.GetProgramiv(p.ID, gl.ACTIVE_ATTRIBUTES, &count)
	gl.GetProgramiv(p.ID, gl.ACTIVE_ATTRIBUTE_MAX_LENGTH, &maxLen)
	for i := int32(0); i < count; i++ {
		name, typ, size := activeName(maxLen, func(buf *uint8, length, size *int32, typ *uint32) {
			gl.GetActiveAttrib(p.ID, uint32(i), maxLen+1, length, size, typ, buf)
		})
		if strings.HasPrefix(name, "gl_") {
			continue
		}
		at, ok := attributeType(typ)
		if !ok || size != 1 {
			return fmt.Errorf("unsupported vertex attribute %q (type 0x%x, size %d)", name, typ, size)
		}
		loc := gl.GetAttribLocation(p.ID, gl.Str(name+"\x00"))
		p.attribLoc[name] = uint32(loc)
		p.info.Attributes = append(p.info.Attributes, graphics.Attribute{Name: name, Type: at})
	}

	gl.GetProgramiv(p.ID, gl.ACTIVE_UNIFORMS, &count)
	gl.GetProgramiv(p.ID, gl.ACTIVE_UNIFORM_MAX_LENGTH, &maxLen)
	for i := int32(0); i < count; i++ {
		name, typ, _ := activeName(maxLen, func(buf *uint8, length, size *int32, typ *uint32) {
			gl.GetActiveUniform(p.ID, uint32(i), maxLen+1, length, size, typ, buf)
		})
		p.uniforms[name] = gl.GetUniformLocation(p.ID, gl.Str(name+"\x00"))
		p.info.Uniforms = append(p.info.Uniforms, graphics.UniformInfo{Name: name, Type: uniformType(typ)})
	}
	return nil
}

func activeName(maxLen int32, query func(buf *uint8, length, size *int32, typ *uint32)) (string, uint32, int32) {
	buf := make([]uint8, maxLen+1)
	var length, size int32
	var typ uint32
	query(&buf[0], &length, &size, &typ)
	return string(buf[:length]), typ, size
}

func attributeType(glType uint32) (graphics.AttributeType, bool) {
	switch glType {
	case gl.FLOAT:
		return graphics.AttributeFloat, true
	case gl.FLOAT_VEC2:
		return graphics.AttributeVec2, true
	case gl.FLOAT_VEC3:
		return graphics.AttributeVec3, true
	case gl.FLOAT_VEC4:
		return graphics.AttributeVec4, true
	}
	return 0, false
}

func uniformType(glType uint32) graphics.UniformType {
	switch glType {
	case gl.FLOAT:
		return graphics.UniformFloat
	case gl.FLOAT_VEC2:
		return graphics.UniformVec2
	case gl.FLOAT_VEC4:
		return graphics.UniformVec4
	case gl.SAMPLER_2D:
		return graphics.UniformSampler2D
	}
	return graphics.UniformOther
}

func compileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertexShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return 0, fmt.Errorf("failed to link program: %v", strings.TrimRight(log, "\x00"))
	}
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("failed to compile %s shader: %v", stageName(shaderType), strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func stageName(shaderType uint32) string {
	if shaderType == gl.VERTEX_SHADER {
		return "vertex"
	}
	return "fragment"
}
