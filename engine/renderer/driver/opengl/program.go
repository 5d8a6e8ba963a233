package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/spaghettifunk/midnight/engine/core"
	"github.com/spaghettifunk/midnight/engine/renderer/driver"
)

// CompileProgram compiles a vertex and fragment shader, links them into a
// new program and returns its handle.
func (d *Driver) CompileProgram(vertexSource, fragmentSource string) (driver.ProgramHandle, error) {
	vsh, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return driver.NoProgram, err
	}
	defer gl.DeleteShader(vsh)

	fsh, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return driver.NoProgram, err
	}
	defer gl.DeleteShader(fsh)

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vsh)
	gl.AttachShader(prog, fsh)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(prog, logLength, nil, gl.Str(log))
		gl.DeleteProgram(prog)

		err := fmt.Errorf("failed to link program: %v", log)
		core.LogError(err.Error())
		return driver.NoProgram, err
	}
	return driver.ProgramHandle(prog), nil
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

		err := fmt.Errorf("failed to compile shader: %v", log)
		core.LogError(err.Error())
		return 0, err
	}
	return shader, nil
}

func (d *Driver) UseProgram(program driver.ProgramHandle) {
	gl.UseProgram(uint32(program))
}

func (d *Driver) DeleteProgram(program driver.ProgramHandle) {
	gl.DeleteProgram(uint32(program))
}

func (d *Driver) SetUniformMat4(program driver.ProgramHandle, name string, value [16]float32) error {
	location := gl.GetUniformLocation(uint32(program), gl.Str(name+"\x00"))
	if location < 0 {
		return fmt.Errorf("%w: uniform %q", core.ErrAttributeNotFound, name)
	}
	gl.ProgramUniformMatrix4fv(uint32(program), location, 1, false, &value[0])
	return nil
}

func (d *Driver) BeginFrame(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *Driver) Resized(width, height uint32) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (d *Driver) DrawArrays(topology driver.Topology, first, count int32) error {
	mode, ok := primitiveToGL(topology)
	if !ok {
		return fmt.Errorf("%w: %s cannot be drawn on a core profile", core.ErrInvalidArgument, topology)
	}
	gl.DrawArrays(mode, first, count)
	return nil
}
