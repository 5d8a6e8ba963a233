// Package headless emulates the OpenGL binding state machine in process memory.
// It runs the buffer code without a GPU and lets tests inspect the state a
// real context would be left in.
package headless

import (
	"errors"
	"fmt"
	"sync"

	"github.com/spaghettifunk/midnight/engine/core"
	"github.com/spaghettifunk/midnight/engine/renderer/driver"
)

var (
	// ErrInvalidOperation mirrors GL_INVALID_OPERATION.
	ErrInvalidOperation = errors.New("headless: invalid operation")
	// ErrInvalidValue mirrors GL_INVALID_VALUE.
	ErrInvalidValue = errors.New("headless: invalid value")
)

const defaultMaxVertexAttribs uint32 = 16

// PointerKind tells which of the three attribute pointer calls set a layout.
type PointerKind uint8

const (
	PointerFloat PointerKind = iota
	PointerInteger
	PointerDouble
)

// Layout is the attribute layout last described at a location.
type Layout struct {
	Kind       PointerKind
	Size       int32
	Type       driver.DataType
	Normalized bool
	Stride     int32
	Offset     uintptr

	// Buffer is the array buffer bound when the layout was described.
	Buffer driver.BufferHandle
}

type bufferObject struct {
	data  []byte
	usage driver.Usage
}

type program struct {
	attributes map[string]uint32
	uniforms   map[string][16]float32
}

type Driver struct {
	mu sync.Mutex

	buffers  *core.Identifiers
	programs *core.Identifiers

	arrayBinding driver.BufferHandle
	current      driver.ProgramHandle
	enabled      map[uint32]bool
	layouts      map[uint32]Layout

	maxVertexAttribs uint32
	memoryBudget     int
	memoryUsed       int

	calls    []string
	glErrors []error
	draws    int
}

type Option func(*Driver)

// WithMemoryBudget caps the total bytes of all buffer data stores. Uploads
// that would exceed it fail with driver.ErrOutOfMemory. Zero means unlimited.
func WithMemoryBudget(bytes int) Option {
	return func(d *Driver) {
		d.memoryBudget = bytes
	}
}

// WithMaxVertexAttribs sets GL_MAX_VERTEX_ATTRIBS.
func WithMaxVertexAttribs(n uint32) Option {
	return func(d *Driver) {
		d.maxVertexAttribs = n
	}
}

func New(options ...Option) *Driver {
	d := &Driver{
		buffers:          core.NewIdentifiers(64),
		programs:         core.NewIdentifiers(8),
		enabled:          make(map[uint32]bool),
		layouts:          make(map[uint32]Layout),
		maxVertexAttribs: defaultMaxVertexAttribs,
	}
	for _, o := range options {
		o(d)
	}
	return d
}

func (d *Driver) record(format string, args ...interface{}) {
	d.calls = append(d.calls, fmt.Sprintf(format, args...))
}

func (d *Driver) fail(err error, format string, args ...interface{}) {
	err = fmt.Errorf("%w: %s", err, fmt.Sprintf(format, args...))
	core.LogWarn("headless driver: %s", err)
	d.glErrors = append(d.glErrors, err)
}

func (d *Driver) CreateBuffer() driver.BufferHandle {
	d.mu.Lock()
	defer d.mu.Unlock()
	h := driver.BufferHandle(d.buffers.Acquire(&bufferObject{}))
	d.record("CreateBuffer() = %d", h)
	return h
}

func (d *Driver) DeleteBuffer(handle driver.BufferHandle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("DeleteBuffer(%d)", handle)
	bo, ok := d.buffers.Owner(uint32(handle)).(*bufferObject)
	if !ok {
		// unused names are silently ignored, like glDeleteBuffers
		return
	}
	d.memoryUsed -= len(bo.data)
	_ = d.buffers.Release(uint32(handle))
	if d.arrayBinding == handle {
		d.arrayBinding = driver.NoBuffer
	}
}

func (d *Driver) BindArrayBuffer(handle driver.BufferHandle) driver.BufferHandle {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("BindArrayBuffer(%d)", handle)
	previous := d.arrayBinding
	if handle != driver.NoBuffer && d.buffers.Owner(uint32(handle)) == nil {
		d.fail(ErrInvalidOperation, "BindArrayBuffer: %d is not a buffer name", handle)
		return previous
	}
	d.arrayBinding = handle
	return previous
}

func (d *Driver) ArrayBufferBinding() driver.BufferHandle {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.arrayBinding
}

func (d *Driver) BufferData(data []byte, usage driver.Usage) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("BufferData(%d bytes, %s)", len(data), usage)
	bo, ok := d.buffers.Owner(uint32(d.arrayBinding)).(*bufferObject)
	if !ok {
		d.fail(ErrInvalidOperation, "BufferData: no array buffer bound")
		return ErrInvalidOperation
	}
	if d.memoryBudget > 0 && d.memoryUsed-len(bo.data)+len(data) > d.memoryBudget {
		core.LogDebug("headless driver: %d bytes requested, %d of %d in use", len(data), d.memoryUsed, d.memoryBudget)
		return driver.ErrOutOfMemory
	}
	d.memoryUsed += len(data) - len(bo.data)
	bo.data = append([]byte(nil), data...)
	bo.usage = usage
	return nil
}

func (d *Driver) CurrentProgram() driver.ProgramHandle {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

func (d *Driver) AttributeLocation(handle driver.ProgramHandle, name string) (uint32, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("AttributeLocation(%d, %s)", handle, name)
	p, ok := d.programs.Owner(uint32(handle)).(*program)
	if !ok {
		d.fail(ErrInvalidOperation, "AttributeLocation: %d is not a program", handle)
		return 0, false
	}
	location, ok := p.attributes[name]
	return location, ok
}

func (d *Driver) EnableAttributeArray(location uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("EnableAttributeArray(%d)", location)
	if location >= d.maxVertexAttribs {
		d.fail(ErrInvalidValue, "EnableAttributeArray: %d >= GL_MAX_VERTEX_ATTRIBS", location)
		return
	}
	d.enabled[location] = true
}

func (d *Driver) DisableAttributeArray(location uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("DisableAttributeArray(%d)", location)
	if location >= d.maxVertexAttribs {
		d.fail(ErrInvalidValue, "DisableAttributeArray: %d >= GL_MAX_VERTEX_ATTRIBS", location)
		return
	}
	delete(d.enabled, location)
}

func (d *Driver) AttributePointer(location uint32, size int32, dataType driver.DataType, normalized bool, stride int32, offset uintptr) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("AttributePointer(%d, %d, %s, %t, %d, %d)", location, size, dataType, normalized, stride, offset)
	d.describe(location, Layout{Kind: PointerFloat, Size: size, Type: dataType, Normalized: normalized, Stride: stride, Offset: offset})
}

func (d *Driver) AttributeIPointer(location uint32, size int32, dataType driver.DataType, stride int32, offset uintptr) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("AttributeIPointer(%d, %d, %s, %d, %d)", location, size, dataType, stride, offset)
	d.describe(location, Layout{Kind: PointerInteger, Size: size, Type: dataType, Stride: stride, Offset: offset})
}

func (d *Driver) AttributeLPointer(location uint32, size int32, dataType driver.DataType, stride int32, offset uintptr) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("AttributeLPointer(%d, %d, %s, %d, %d)", location, size, dataType, stride, offset)
	d.describe(location, Layout{Kind: PointerDouble, Size: size, Type: dataType, Stride: stride, Offset: offset})
}

func (d *Driver) describe(location uint32, layout Layout) {
	if location >= d.maxVertexAttribs {
		d.fail(ErrInvalidValue, "attribute location %d >= GL_MAX_VERTEX_ATTRIBS", location)
		return
	}
	if d.arrayBinding == driver.NoBuffer && layout.Offset != 0 {
		d.fail(ErrInvalidOperation, "attribute pointer with non-zero offset and no array buffer bound")
		return
	}
	layout.Buffer = d.arrayBinding
	d.layouts[location] = layout
}
