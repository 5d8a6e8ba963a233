package renderer

import (
	"github.com/spaghettifunk/midnight/engine/renderer/driver"
	"github.com/spaghettifunk/midnight/engine/renderer/driver/headless"
	"github.com/spaghettifunk/midnight/engine/renderer/driver/opengl"
)

// RendererBackend is the driver plus the program and frame calls the engine
// loop needs around vertex buffers.
type RendererBackend interface {
	driver.Driver

	Initialize() error
	Shutdown() error
	Name() string
	Resized(width, height uint32)
	BeginFrame(r, g, b, a float32)
	CompileProgram(vertexSource, fragmentSource string) (driver.ProgramHandle, error)
	UseProgram(program driver.ProgramHandle)
	DeleteProgram(program driver.ProgramHandle)
	SetUniformMat4(program driver.ProgramHandle, name string, value [16]float32) error
	DrawArrays(topology driver.Topology, first, count int32) error
}

var (
	_ RendererBackend = (*opengl.Driver)(nil)
	_ RendererBackend = (*headless.Driver)(nil)
)
