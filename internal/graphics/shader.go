package graphics

import (
	"fmt"
	"io/fs"
)

// LoadShaderSource reads a vertex and fragment shader pair from fsys
func LoadShaderSource(fsys fs.FS, vertexPath, fragmentPath string) (ShaderSource, error) {
	vertexSource, err := fs.ReadFile(fsys, vertexPath)
	if err != nil {
		return ShaderSource{}, fmt.Errorf("could not read vertex shader file: %w", err)
	}

	fragmentSource, err := fs.ReadFile(fsys, fragmentPath)
	if err != nil {
		return ShaderSource{}, fmt.Errorf("could not read fragment shader file: %w", err)
	}

	return ShaderSource{Vertex: string(vertexSource), Fragment: string(fragmentSource)}, nil
}

// NewProgramFromFS loads a shader pair from fsys and links it on dev
func NewProgramFromFS(dev Device, fsys fs.FS, vertexPath, fragmentPath string) (Program, error) {
	src, err := LoadShaderSource(fsys, vertexPath, fragmentPath)
	if err != nil {
		return nil, err
	}
	prog, err := dev.NewProgram(src)
	if err != nil {
		return nil, fmt.Errorf("%s + %s: %w", vertexPath, fragmentPath, err)
	}
	return prog, nil
}
