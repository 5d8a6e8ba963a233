package headless

import (
	"fmt"
	"regexp"

	"github.com/spaghettifunk/midnight/engine/core"
	"github.com/spaghettifunk/midnight/engine/renderer/driver"
)

var (
	inputPattern   = regexp.MustCompile(`(?m)^\s*(?:layout\s*\(\s*location\s*=\s*(\d+)\s*\)\s*)?in\s+\w+\s+(\w+)\s*;`)
	uniformPattern = regexp.MustCompile(`(?m)^\s*uniform\s+\w+\s+(\w+)\s*;`)
)

func (d *Driver) Initialize() error {
	core.LogInfo("headless driver ready (max vertex attribs %d)", d.maxVertexAttribs)
	return nil
}

func (d *Driver) Shutdown() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if live := d.buffers.InUse(); live > 0 {
		core.LogWarn("headless driver shut down with %d live buffers", live)
	}
	return nil
}

func (d *Driver) Name() string {
	return "headless"
}

// CompileProgram "links" a program by reading the vertex stage inputs and
// the uniforms of both stages. Inputs without an explicit location are
// numbered after the highest explicit one, in declaration order.
func (d *Driver) CompileProgram(vertexSource, fragmentSource string) (driver.ProgramHandle, error) {
	inputs := inputPattern.FindAllStringSubmatch(vertexSource, -1)
	if len(inputs) == 0 {
		return driver.NoProgram, fmt.Errorf("failed to link program: vertex stage declares no inputs")
	}

	locations := make(map[string]uint32, len(inputs))
	next := uint32(0)
	for _, in := range inputs {
		if in[1] == "" {
			continue
		}
		var location uint32
		if _, err := fmt.Sscan(in[1], &location); err != nil {
			return driver.NoProgram, fmt.Errorf("failed to link program: %w", err)
		}
		locations[in[2]] = location
		if location >= next {
			next = location + 1
		}
	}
	for _, in := range inputs {
		if in[1] != "" {
			continue
		}
		locations[in[2]] = next
		next++
	}

	handle := d.CreateProgramWithLocations(locations)

	d.mu.Lock()
	defer d.mu.Unlock()
	p := d.programs.Owner(uint32(handle)).(*program)
	p.uniforms = make(map[string][16]float32)
	for _, source := range []string{vertexSource, fragmentSource} {
		for _, u := range uniformPattern.FindAllStringSubmatch(source, -1) {
			p.uniforms[u[1]] = [16]float32{}
		}
	}
	return handle, nil
}

func (d *Driver) SetUniformMat4(handle driver.ProgramHandle, name string, value [16]float32) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("SetUniformMat4(%d, %s)", handle, name)
	p, ok := d.programs.Owner(uint32(handle)).(*program)
	if !ok {
		d.fail(ErrInvalidOperation, "SetUniformMat4: %d is not a program", handle)
		return ErrInvalidOperation
	}
	if _, ok := p.uniforms[name]; !ok {
		return fmt.Errorf("%w: uniform %q", core.ErrAttributeNotFound, name)
	}
	p.uniforms[name] = value
	return nil
}

// Uniform returns the last matrix set on a program uniform.
func (d *Driver) Uniform(handle driver.ProgramHandle, name string) ([16]float32, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.programs.Owner(uint32(handle)).(*program)
	if !ok {
		return [16]float32{}, false
	}
	value, ok := p.uniforms[name]
	return value, ok
}

func (d *Driver) BeginFrame(r, g, b, a float32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("Clear(%.2f, %.2f, %.2f, %.2f)", r, g, b, a)
}

func (d *Driver) Resized(width, height uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("Viewport(%d, %d)", width, height)
}

// DrawArrays checks what a core profile draw needs: a current program, an
// enabled attribute sourcing a live buffer, and a drawable topology.
func (d *Driver) DrawArrays(topology driver.Topology, first, count int32) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("DrawArrays(%s, %d, %d)", topology, first, count)
	if topology != driver.Points && topology != driver.Lines && topology != driver.Triangles {
		return fmt.Errorf("%w: %s cannot be drawn on a core profile", core.ErrInvalidArgument, topology)
	}
	if d.current == driver.NoProgram {
		d.fail(ErrInvalidOperation, "DrawArrays: no program in use")
		return ErrInvalidOperation
	}
	for location := range d.enabled {
		layout, ok := d.layouts[location]
		if !ok || d.buffers.Owner(uint32(layout.Buffer)) == nil {
			d.fail(ErrInvalidOperation, "DrawArrays: attribute %d has no buffer", location)
			return ErrInvalidOperation
		}
	}
	d.draws++
	return nil
}

// Draws counts successful draw calls.
func (d *Driver) Draws() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.draws
}
