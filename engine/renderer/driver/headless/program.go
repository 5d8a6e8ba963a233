package headless

import (
	"github.com/spaghettifunk/midnight/engine/renderer/driver"
)

// CreateProgram links a program whose active attributes are assigned
// locations 0..n-1 in the order given.
func (d *Driver) CreateProgram(attributes ...string) driver.ProgramHandle {
	d.mu.Lock()
	defer d.mu.Unlock()
	p := &program{attributes: make(map[string]uint32, len(attributes))}
	for i, name := range attributes {
		p.attributes[name] = uint32(i)
	}
	h := driver.ProgramHandle(d.programs.Acquire(p))
	d.record("CreateProgram(%v) = %d", attributes, h)
	return h
}

// CreateProgramWithLocations links a program with explicit attribute locations.
func (d *Driver) CreateProgramWithLocations(locations map[string]uint32) driver.ProgramHandle {
	d.mu.Lock()
	defer d.mu.Unlock()
	p := &program{attributes: make(map[string]uint32, len(locations))}
	for name, location := range locations {
		p.attributes[name] = location
	}
	h := driver.ProgramHandle(d.programs.Acquire(p))
	d.record("CreateProgram(%v) = %d", locations, h)
	return h
}

// UseProgram makes handle the current program. NoProgram clears it.
func (d *Driver) UseProgram(handle driver.ProgramHandle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("UseProgram(%d)", handle)
	if handle != driver.NoProgram && d.programs.Owner(uint32(handle)) == nil {
		d.fail(ErrInvalidOperation, "UseProgram: %d is not a program", handle)
		return
	}
	d.current = handle
}

func (d *Driver) DeleteProgram(handle driver.ProgramHandle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("DeleteProgram(%d)", handle)
	if d.programs.Owner(uint32(handle)) == nil {
		return
	}
	_ = d.programs.Release(uint32(handle))
	if d.current == handle {
		d.current = driver.NoProgram
	}
}
