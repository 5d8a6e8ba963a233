package buffers

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/google/uuid"
	"github.com/spaghettifunk/midnight/engine/core"
	"github.com/spaghettifunk/midnight/engine/renderer/driver"
	"golang.org/x/exp/slices"
)

// VertexBuffer owns a driver buffer object holding a slice of T, a CPU copy
// of the last data uploaded, and the attribute pointers that describe T to a
// shader program. T must be plain data (no pointers, slices or maps); its
// in-memory layout is what the driver receives.
//
// The array buffer and program bindings belong to the driver context and are
// queried on every call; a VertexBuffer never caches them.
type VertexBuffer[T any] struct {
	id       uuid.UUID
	drv      driver.Driver
	handle   driver.BufferHandle
	data     []T
	topology driver.Topology
	usage    driver.Usage

	attributes []AttributePointer
	// locations enabled by the last successful Bind
	enabled []uint32

	destroyed bool
}

// NewVertexBuffer uploads a copy of data into a new buffer object.
func NewVertexBuffer[T any](drv driver.Driver, data []T, opts ...Option) (*VertexBuffer[T], error) {
	return newVertexBuffer(drv, append([]T(nil), data...), opts)
}

// AdoptVertexBuffer is NewVertexBuffer without the copy: the buffer takes
// ownership of data and the caller must not modify it afterwards.
func AdoptVertexBuffer[T any](drv driver.Driver, data []T, opts ...Option) (*VertexBuffer[T], error) {
	return newVertexBuffer(drv, data, opts)
}

func newVertexBuffer[T any](drv driver.Driver, data []T, opts []Option) (*VertexBuffer[T], error) {
	o := options{
		topology: driver.Triangles,
		usage:    driver.StaticDraw,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.topology.Valid() {
		err := fmt.Errorf("%w: unsupported topology %s", core.ErrInvalidArgument, o.topology)
		core.LogError(err.Error())
		return nil, err
	}
	if !o.usage.Valid() {
		err := fmt.Errorf("%w: unsupported buffer usage %s", core.ErrInvalidArgument, o.usage)
		core.LogError(err.Error())
		return nil, err
	}

	vb := &VertexBuffer[T]{
		id:       uuid.New(),
		drv:      drv,
		topology: o.topology,
		usage:    o.usage,
	}

	handle := drv.CreateBuffer()
	if err := vb.upload(handle, data); err != nil {
		drv.DeleteBuffer(handle)
		core.LogError("vertex buffer %s: %s", vb.id, err)
		return nil, err
	}
	vb.handle = handle
	vb.data = data

	core.LogDebug("vertex buffer %s created: handle %d, %d elements, %d bytes, %s/%s",
		vb.id, handle, len(data), vb.ByteSize(), vb.topology, vb.usage)
	return vb, nil
}

// upload fills handle's data store with data without disturbing the
// caller-visible array buffer binding.
func (vb *VertexBuffer[T]) upload(handle driver.BufferHandle, data []T) error {
	scope := acquireArrayBuffer(vb.drv, handle)
	defer scope.release()

	bytes := asBytes(data)
	if err := vb.drv.BufferData(bytes, vb.usage); err != nil {
		if errors.Is(err, driver.ErrOutOfMemory) {
			return fmt.Errorf("%w: unable to allocate %d bytes of GPU memory for vertex buffer", core.ErrResourceExhausted, len(bytes))
		}
		return err
	}
	return nil
}

func asBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(data))), len(data)*int(unsafe.Sizeof(zero)))
}

func (vb *VertexBuffer[T]) alive() error {
	if vb.destroyed {
		return fmt.Errorf("%w: vertex buffer %s has been destroyed", core.ErrInvalidState, vb.id)
	}
	return nil
}

// SetVertexData replaces the contents with a copy of data. The buffer must
// not be the bound array buffer. A new buffer object is filled and swapped
// in only once the upload succeeded; on failure the old handle, contents and
// attributes are untouched.
func (vb *VertexBuffer[T]) SetVertexData(data []T) error {
	return vb.rebuffer(append([]T(nil), data...))
}

// AdoptVertexData is SetVertexData taking ownership of data.
func (vb *VertexBuffer[T]) AdoptVertexData(data []T) error {
	return vb.rebuffer(data)
}

func (vb *VertexBuffer[T]) rebuffer(data []T) error {
	if err := vb.alive(); err != nil {
		return err
	}
	if vb.drv.ArrayBufferBinding() == vb.handle {
		err := fmt.Errorf("%w: unable to rebuffer vertex buffer %s, as it is actively bound", core.ErrInvalidState, vb.id)
		core.LogError(err.Error())
		return err
	}

	handle := vb.drv.CreateBuffer()
	if err := vb.upload(handle, data); err != nil {
		vb.drv.DeleteBuffer(handle)
		core.LogWarn("vertex buffer %s keeps its previous contents: %s", vb.id, err)
		return err
	}

	vb.drv.DeleteBuffer(vb.handle)
	core.LogDebug("vertex buffer %s rebuffered: handle %d -> %d, %d elements", vb.id, vb.handle, handle, len(data))
	vb.handle = handle
	vb.data = data
	return nil
}

// VertexCount returns the number of stored elements divided by the vertices
// per primitive of the buffer's topology.
func (vb *VertexBuffer[T]) VertexCount() int {
	return len(vb.data) / vb.topology.VerticesPerPrimitive()
}

// AddAttribute appends an attribute pointer. It is applied on the next Bind.
func (vb *VertexBuffer[T]) AddAttribute(attribute AttributePointer) {
	vb.attributes = append(vb.attributes, attribute)
}

// AddAttributePointer validates and appends a float-converted attribute.
func (vb *VertexBuffer[T]) AddAttributePointer(name string, size int32, dataType driver.DataType, normalized bool, stride int32, offset uintptr) error {
	a, err := NewAttributePointer(name, size, dataType, normalized, stride, offset)
	if err != nil {
		return err
	}
	vb.AddAttribute(a)
	return nil
}

// AddAttributeIPointer validates and appends an integer attribute.
func (vb *VertexBuffer[T]) AddAttributeIPointer(name string, size int32, dataType driver.DataType, stride int32, offset uintptr) error {
	a, err := NewAttributeIPointer(name, size, dataType, stride, offset)
	if err != nil {
		return err
	}
	vb.AddAttribute(a)
	return nil
}

// AddAttributeLPointer validates and appends a double precision attribute.
func (vb *VertexBuffer[T]) AddAttributeLPointer(name string, size int32, stride int32, offset uintptr) error {
	a, err := NewAttributeLPointer(name, size, stride, offset)
	if err != nil {
		return err
	}
	vb.AddAttribute(a)
	return nil
}

// ResetAttributes drops every attribute pointer. Arrays enabled by an earlier
// Bind stay enabled until Unbind.
func (vb *VertexBuffer[T]) ResetAttributes() {
	vb.attributes = nil
}

// Bind makes this the array buffer and applies every attribute, in the order
// added, against the current program. A program must be in use. Every
// location is looked up before any attribute state changes, so a missing
// attribute leaves the array buffer binding and all attribute arrays as they
// were.
func (vb *VertexBuffer[T]) Bind() error {
	if err := vb.alive(); err != nil {
		return err
	}
	program := vb.drv.CurrentProgram()
	if program == driver.NoProgram {
		err := fmt.Errorf("%w: a program must first be bound before binding vertex buffer %s", core.ErrInvalidState, vb.id)
		core.LogError(err.Error())
		return err
	}

	locations := make([]uint32, len(vb.attributes))
	for i, a := range vb.attributes {
		location, err := a.locate(vb.drv, program)
		if err != nil {
			core.LogError("vertex buffer %s: bind failed: %s", vb.id, err)
			return err
		}
		locations[i] = location
	}

	vb.drv.BindArrayBuffer(vb.handle)
	for i, a := range vb.attributes {
		a.apply(vb.drv, locations[i])
	}

	// arrays a previous bind enabled that this program no longer uses
	for _, l := range vb.enabled {
		if !slices.Contains(locations, l) {
			vb.drv.DisableAttributeArray(l)
		}
	}
	vb.enabled = locations
	return nil
}

// Unbind clears the array buffer binding and disables the attribute arrays
// the last successful Bind enabled. Attributes added since then were never
// enabled and are left alone, as is every location if no Bind succeeded.
func (vb *VertexBuffer[T]) Unbind() {
	vb.drv.BindArrayBuffer(driver.NoBuffer)
	for _, l := range vb.enabled {
		vb.drv.DisableAttributeArray(l)
	}
	vb.enabled = nil
}

// Destroy releases the buffer object. Calling it again does nothing.
func (vb *VertexBuffer[T]) Destroy() {
	if vb.destroyed {
		return
	}
	for _, l := range vb.enabled {
		vb.drv.DisableAttributeArray(l)
	}
	vb.enabled = nil
	vb.drv.DeleteBuffer(vb.handle)
	core.LogDebug("vertex buffer %s destroyed: handle %d", vb.id, vb.handle)
	vb.handle = driver.NoBuffer
	vb.destroyed = true
}

func (vb *VertexBuffer[T]) ID() uuid.UUID {
	return vb.id
}

func (vb *VertexBuffer[T]) Handle() driver.BufferHandle {
	return vb.handle
}

func (vb *VertexBuffer[T]) Topology() driver.Topology {
	return vb.topology
}

func (vb *VertexBuffer[T]) Usage() driver.Usage {
	return vb.usage
}

// Data returns a copy of the last uploaded contents.
func (vb *VertexBuffer[T]) Data() []T {
	return append([]T(nil), vb.data...)
}

func (vb *VertexBuffer[T]) Len() int {
	return len(vb.data)
}

// ByteSize is the size of the data store on the driver side.
func (vb *VertexBuffer[T]) ByteSize() int {
	var zero T
	return len(vb.data) * int(unsafe.Sizeof(zero))
}

// Attributes returns a copy of the attribute pointers in the order added.
func (vb *VertexBuffer[T]) Attributes() []AttributePointer {
	return append([]AttributePointer(nil), vb.attributes...)
}
