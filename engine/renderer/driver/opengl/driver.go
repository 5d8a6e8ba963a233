// Package opengl implements the renderer backend on an OpenGL 4.1 core context.
// Every method must be called on the thread that owns the current context.
package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/spaghettifunk/midnight/engine/core"
	"github.com/spaghettifunk/midnight/engine/renderer/driver"
)

// maxDrainedErrors bounds how many stale errors are discarded before an
// upload; a lost context reports GL_CONTEXT_LOST indefinitely.
const maxDrainedErrors = 32

type Driver struct {
	version  string
	renderer string

	// core profiles reject attribute calls without a bound vertex array
	vertexArray uint32
}

func New() *Driver {
	return &Driver{}
}

// Initialize loads the GL function pointers for the current context.
func (d *Driver) Initialize() error {
	if err := gl.Init(); err != nil {
		core.LogError("failed to initialize OpenGL: %s", err)
		return err
	}
	d.version = gl.GoStr(gl.GetString(gl.VERSION))
	d.renderer = gl.GoStr(gl.GetString(gl.RENDERER))
	core.LogInfo("OpenGL %s on %s", d.version, d.renderer)

	gl.GenVertexArrays(1, &d.vertexArray)
	gl.BindVertexArray(d.vertexArray)
	return nil
}

func (d *Driver) Shutdown() error {
	gl.BindVertexArray(0)
	gl.DeleteVertexArrays(1, &d.vertexArray)
	return nil
}

func (d *Driver) Name() string {
	return fmt.Sprintf("opengl %s", d.version)
}

func (d *Driver) CreateBuffer() driver.BufferHandle {
	var handle uint32
	gl.GenBuffers(1, &handle)
	return driver.BufferHandle(handle)
}

func (d *Driver) DeleteBuffer(handle driver.BufferHandle) {
	h := uint32(handle)
	gl.DeleteBuffers(1, &h)
}

func (d *Driver) BindArrayBuffer(handle driver.BufferHandle) driver.BufferHandle {
	previous := d.ArrayBufferBinding()
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(handle))
	return previous
}

func (d *Driver) ArrayBufferBinding() driver.BufferHandle {
	var bound int32
	gl.GetIntegerv(gl.ARRAY_BUFFER_BINDING, &bound)
	return driver.BufferHandle(bound)
}

func (d *Driver) BufferData(data []byte, usage driver.Usage) error {
	drainErrors()

	// Can set GL_OUT_OF_MEMORY
	// https://registry.khronos.org/OpenGL-Refpages/gl4/html/glBufferData.xhtml
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, usageToGL(usage))
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, len(data), gl.Ptr(&data[0]), usageToGL(usage))
	}

	switch code := gl.GetError(); code {
	case gl.NO_ERROR:
		return nil
	case gl.OUT_OF_MEMORY:
		return driver.ErrOutOfMemory
	default:
		err := fmt.Errorf("glBufferData failed with 0x%04X", code)
		core.LogError(err.Error())
		return err
	}
}

func (d *Driver) CurrentProgram() driver.ProgramHandle {
	var program int32
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &program)
	return driver.ProgramHandle(program)
}

func (d *Driver) AttributeLocation(program driver.ProgramHandle, name string) (uint32, bool) {
	location := gl.GetAttribLocation(uint32(program), gl.Str(name+"\x00"))
	if location < 0 {
		return 0, false
	}
	return uint32(location), true
}

func (d *Driver) EnableAttributeArray(location uint32) {
	gl.EnableVertexAttribArray(location)
}

func (d *Driver) DisableAttributeArray(location uint32) {
	gl.DisableVertexAttribArray(location)
}

func (d *Driver) AttributePointer(location uint32, size int32, dataType driver.DataType, normalized bool, stride int32, offset uintptr) {
	gl.VertexAttribPointer(location, sizeToGL(size), dataTypeToGL(dataType), normalized, stride, gl.PtrOffset(int(offset)))
}

func (d *Driver) AttributeIPointer(location uint32, size int32, dataType driver.DataType, stride int32, offset uintptr) {
	gl.VertexAttribIPointer(location, sizeToGL(size), dataTypeToGL(dataType), stride, gl.PtrOffset(int(offset)))
}

func (d *Driver) AttributeLPointer(location uint32, size int32, dataType driver.DataType, stride int32, offset uintptr) {
	gl.VertexAttribLPointer(location, sizeToGL(size), dataTypeToGL(dataType), stride, gl.PtrOffset(int(offset)))
}

func drainErrors() {
	for i := 0; i < maxDrainedErrors; i++ {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			return
		}
		core.LogWarn("discarding stale GL error 0x%04X", code)
	}
}
