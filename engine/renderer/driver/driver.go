// Package driver describes the slice of the OpenGL state machine that vertex
// buffers and attribute pointers talk to. The binding points it exposes are
// global to the context; callers must re-query them instead of caching.
package driver

import "errors"

// ErrOutOfMemory is returned by BufferData when the driver could not allocate
// the data store (GL_OUT_OF_MEMORY).
var ErrOutOfMemory = errors.New("driver: out of memory")

// BufferHandle names a driver-allocated buffer object. NoBuffer is the zero handle.
type BufferHandle uint32

// ProgramHandle names a linked shader program. NoProgram is the zero handle.
type ProgramHandle uint32

const (
	NoBuffer  BufferHandle  = 0
	NoProgram ProgramHandle = 0
)

type Driver interface {
	// CreateBuffer allocates a buffer object name.
	CreateBuffer() BufferHandle
	// DeleteBuffer releases a buffer object. Deleting the bound buffer resets the binding to NoBuffer.
	DeleteBuffer(handle BufferHandle)
	// BindArrayBuffer binds handle to the array buffer binding point and returns what was bound before.
	BindArrayBuffer(handle BufferHandle) BufferHandle
	// ArrayBufferBinding returns the buffer currently bound to the array buffer binding point.
	ArrayBufferBinding() BufferHandle
	// BufferData replaces the data store of the bound array buffer.
	BufferData(data []byte, usage Usage) error

	// CurrentProgram returns the program in use, or NoProgram.
	CurrentProgram() ProgramHandle
	// AttributeLocation resolves a named vertex attribute in program.
	AttributeLocation(program ProgramHandle, name string) (uint32, bool)
	EnableAttributeArray(location uint32)
	DisableAttributeArray(location uint32)

	// AttributePointer describes a float-converted attribute (glVertexAttribPointer).
	AttributePointer(location uint32, size int32, dataType DataType, normalized bool, stride int32, offset uintptr)
	// AttributeIPointer describes an integer attribute (glVertexAttribIPointer).
	AttributeIPointer(location uint32, size int32, dataType DataType, stride int32, offset uintptr)
	// AttributeLPointer describes a 64-bit float attribute (glVertexAttribLPointer).
	AttributeLPointer(location uint32, size int32, dataType DataType, stride int32, offset uintptr)
}
