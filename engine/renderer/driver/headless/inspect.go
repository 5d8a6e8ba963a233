package headless

import (
	"sort"

	"github.com/spaghettifunk/midnight/engine/renderer/driver"
)

// IsBuffer reports whether handle names a live buffer object.
func (d *Driver) IsBuffer(handle driver.BufferHandle) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.buffers.Owner(uint32(handle)).(*bufferObject)
	return ok
}

// BufferContents returns a copy of a buffer's data store.
func (d *Driver) BufferContents(handle driver.BufferHandle) ([]byte, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	bo, ok := d.buffers.Owner(uint32(handle)).(*bufferObject)
	if !ok {
		return nil, false
	}
	return append([]byte(nil), bo.data...), true
}

func (d *Driver) BufferUsage(handle driver.BufferHandle) (driver.Usage, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	bo, ok := d.buffers.Owner(uint32(handle)).(*bufferObject)
	if !ok {
		return driver.UsageUnknown, false
	}
	return bo.usage, true
}

// LiveBuffers counts buffer objects that have not been deleted.
func (d *Driver) LiveBuffers() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buffers.InUse()
}

func (d *Driver) MemoryUsed() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.memoryUsed
}

func (d *Driver) SetMemoryBudget(bytes int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.memoryBudget = bytes
}

func (d *Driver) IsAttributeEnabled(location uint32) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.enabled[location]
}

// EnabledAttributes lists enabled attribute arrays in ascending order.
func (d *Driver) EnabledAttributes() []uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	locations := make([]uint32, 0, len(d.enabled))
	for location := range d.enabled {
		locations = append(locations, location)
	}
	sort.Slice(locations, func(i, j int) bool { return locations[i] < locations[j] })
	return locations
}

func (d *Driver) AttributeLayout(location uint32) (Layout, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	layout, ok := d.layouts[location]
	return layout, ok
}

// Calls returns the driver calls made so far, oldest first.
func (d *Driver) Calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.calls...)
}

func (d *Driver) ResetCalls() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = nil
}

// Errors drains the recorded GL errors, like repeated glGetError calls.
func (d *Driver) Errors() []error {
	d.mu.Lock()
	defer d.mu.Unlock()
	errs := d.glErrors
	d.glErrors = nil
	return errs
}
