package graphics

import (
	"errors"
	"fmt"
)

var (
	// ErrBufferMap is returned when a buffer cannot be mapped into client memory
	ErrBufferMap = errors.New("could not map buffer")
	// ErrUnsupportedImageFormat is returned for texture data that is not PNG
	ErrUnsupportedImageFormat = errors.New("unsupported image format")
)

// DrawErrorKind classifies a rejected draw call
type DrawErrorKind int

const (
	NoProgram DrawErrorKind = iota
	EmptyVertexSource
	AttributeMissing
	AttributeTypeMismatch
	UniformMissing
	UniformTypeMismatch
	IndexOutOfRange
	InvalidViewport
	PrimitiveMismatch
)

var drawErrorKindNames = map[DrawErrorKind]string{
	NoProgram:             "no program bound",
	EmptyVertexSource:     "empty vertex source",
	AttributeMissing:      "attribute missing from vertex source",
	AttributeTypeMismatch: "attribute type mismatch",
	UniformMissing:        "uniform missing",
	UniformTypeMismatch:   "uniform type mismatch",
	IndexOutOfRange:       "index out of range",
	InvalidViewport:       "invalid viewport",
	PrimitiveMismatch:     "primitive does not match index buffer",
}

func (k DrawErrorKind) String() string {
	if s, ok := drawErrorKindNames[k]; ok {
		return s
	}
	return "unknown draw error"
}

// DrawError reports a draw call that could not be issued.
// These are programming errors: the program, uniforms and vertex source
// do not fit together.
type DrawError struct {
	Kind DrawErrorKind
	// Name of the offending attribute or uniform, if any
	Name   string
	Detail string
}

func (e *DrawError) Error() string {
	msg := "draw: " + e.Kind.String()
	if e.Name != "" {
		msg += fmt.Sprintf(" %q", e.Name)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// IsDrawError reports whether err is a DrawError of the given kind
func IsDrawError(err error, kind DrawErrorKind) bool {
	var de *DrawError
	return errors.As(err, &de) && de.Kind == kind
}
