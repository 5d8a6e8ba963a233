package buffers

import (
	"fmt"

	"github.com/spaghettifunk/midnight/engine/core"
	"github.com/spaghettifunk/midnight/engine/renderer/driver"
)

// AttributeKind selects which driver call describes an attribute's layout.
type AttributeKind uint8

const (
	// AttributeFloat components are converted to floats (glVertexAttribPointer).
	AttributeFloat AttributeKind = iota
	// AttributeInteger components stay integers (glVertexAttribIPointer).
	AttributeInteger
	// AttributeDouble components are 64-bit floats (glVertexAttribLPointer).
	AttributeDouble
)

func (k AttributeKind) String() string {
	switch k {
	case AttributeFloat:
		return "float"
	case AttributeInteger:
		return "integer"
	case AttributeDouble:
		return "double"
	}
	return fmt.Sprintf("AttributeKind(%d)", uint8(k))
}

var acceptedTypes = map[AttributeKind]map[driver.DataType]bool{
	AttributeFloat: {
		driver.Byte:                    true,
		driver.UnsignedByte:            true,
		driver.Short:                   true,
		driver.UnsignedShort:           true,
		driver.Int:                     true,
		driver.UnsignedInt:             true,
		driver.HalfFloat:               true,
		driver.Float:                   true,
		driver.Double:                  true,
		driver.Fixed:                   true,
		driver.Int2101010Rev:           true,
		driver.UnsignedInt2101010Rev:   true,
		driver.UnsignedInt10F11F11FRev: true,
	},
	AttributeInteger: {
		driver.Byte:          true,
		driver.UnsignedByte:  true,
		driver.Short:         true,
		driver.UnsignedShort: true,
		driver.Int:           true,
		driver.UnsignedInt:   true,
	},
	AttributeDouble: {
		driver.Double: true,
	},
}

// AttributePointer describes where one named vertex attribute lives inside
// a vertex buffer. It is validated when built and immutable afterwards, so
// binding it can never trip a driver error.
type AttributePointer struct {
	kind       AttributeKind
	name       string
	size       int32
	dataType   driver.DataType
	normalized bool
	stride     int32
	offset     uintptr
}

// NewAttributePointer builds a float-converted attribute. size is 1-4 or
// driver.SizeBGRA.
func NewAttributePointer(name string, size int32, dataType driver.DataType, normalized bool, stride int32, offset uintptr) (AttributePointer, error) {
	return newAttribute(AttributeFloat, name, size, dataType, normalized, stride, offset)
}

// NewAttributeIPointer builds an integer attribute. Integer attributes are never normalized.
func NewAttributeIPointer(name string, size int32, dataType driver.DataType, stride int32, offset uintptr) (AttributePointer, error) {
	return newAttribute(AttributeInteger, name, size, dataType, false, stride, offset)
}

// NewAttributeLPointer builds a double precision attribute.
func NewAttributeLPointer(name string, size int32, stride int32, offset uintptr) (AttributePointer, error) {
	return newAttribute(AttributeDouble, name, size, driver.Double, false, stride, offset)
}

func newAttribute(kind AttributeKind, name string, size int32, dataType driver.DataType, normalized bool, stride int32, offset uintptr) (AttributePointer, error) {
	a := AttributePointer{
		kind:       kind,
		name:       name,
		size:       size,
		dataType:   dataType,
		normalized: normalized,
		stride:     stride,
		offset:     offset,
	}
	if err := a.validate(); err != nil {
		core.LogError("attribute %q rejected: %s", name, err)
		return AttributePointer{}, err
	}
	return a, nil
}

// validate checks the GL_INVALID_VALUE, GL_INVALID_ENUM and
// GL_INVALID_OPERATION conditions of glVertexAttrib*Pointer up front.
// An out of range location cannot happen: the location comes from the
// program or the lookup fails.
func (a AttributePointer) validate() error {
	if a.name == "" {
		return fmt.Errorf("%w: attribute name must not be empty", core.ErrInvalidArgument)
	}

	bgra := a.size == driver.SizeBGRA
	if !bgra && (a.size < 1 || a.size > 4) {
		return fmt.Errorf("%w: size argument must be 1, 2, 3, 4, or BGRA; but %d was provided", core.ErrInvalidArgument, a.size)
	}

	if a.stride < 0 {
		return fmt.Errorf("%w: stride argument must not be negative; but %d was provided", core.ErrInvalidArgument, a.stride)
	}

	if !acceptedTypes[a.kind][a.dataType] {
		return fmt.Errorf("%w: type %s is not accepted by a %s attribute pointer", core.ErrInvalidArgument, a.dataType, a.kind)
	}

	packed := a.dataType == driver.Int2101010Rev || a.dataType == driver.UnsignedInt2101010Rev
	if bgra && !packed && a.dataType != driver.UnsignedByte {
		return fmt.Errorf("%w: type argument must be one of unsigned_byte, int_2_10_10_10_rev or "+
			"unsigned_int_2_10_10_10_rev if size argument is BGRA; but %s was provided", core.ErrInvalidArgument, a.dataType)
	}

	if packed && a.size != 4 && !bgra {
		return fmt.Errorf("%w: size argument must be 4 or BGRA if type argument is %s; but %d was provided", core.ErrInvalidArgument, a.dataType, a.size)
	}

	if a.dataType == driver.UnsignedInt10F11F11FRev && a.size != 3 {
		return fmt.Errorf("%w: size argument must be 3 if type argument is %s; but %s was provided", core.ErrInvalidArgument, a.dataType, sizeString(a.size))
	}

	if bgra && !a.normalized {
		return fmt.Errorf("%w: normalized argument must be true if size argument is BGRA", core.ErrInvalidArgument)
	}
	return nil
}

func sizeString(size int32) string {
	if size == driver.SizeBGRA {
		return "BGRA"
	}
	return fmt.Sprintf("%d", size)
}

func (a AttributePointer) Kind() AttributeKind { return a.kind }
func (a AttributePointer) Name() string { return a.name }
func (a AttributePointer) Size() int32 { return a.size }
func (a AttributePointer) DataType() driver.DataType { return a.dataType }
func (a AttributePointer) Normalized() bool { return a.normalized }
func (a AttributePointer) Stride() int32 { return a.stride }
func (a AttributePointer) Offset() uintptr { return a.offset }

func (a AttributePointer) String() string {
	return fmt.Sprintf("%s %s[%s x %s] stride=%d offset=%d normalized=%t",
		a.kind, a.name, sizeString(a.size), a.dataType, a.stride, a.offset, a.normalized)
}

// locate resolves the attribute's location in program without touching any
// attribute state.
func (a AttributePointer) locate(drv driver.Driver, program driver.ProgramHandle) (uint32, error) {
	return attributeLocation(drv, program, a.name)
}

// apply enables the array at location and describes its layout against the
// bound array buffer.
func (a AttributePointer) apply(drv driver.Driver, location uint32) {
	drv.EnableAttributeArray(location)
	switch a.kind {
	case AttributeFloat:
		drv.AttributePointer(location, a.size, a.dataType, a.normalized, a.stride, a.offset)
	case AttributeInteger:
		drv.AttributeIPointer(location, a.size, a.dataType, a.stride, a.offset)
	case AttributeDouble:
		drv.AttributeLPointer(location, a.size, a.dataType, a.stride, a.offset)
	}
}

func attributeLocation(drv driver.Driver, program driver.ProgramHandle, name string) (uint32, error) {
	if program == driver.NoProgram {
		return 0, fmt.Errorf("%w: no program is currently bound, attribute %q cannot be looked up", core.ErrInvalidState, name)
	}
	location, ok := drv.AttributeLocation(program, name)
	if !ok {
		return 0, fmt.Errorf("%w: the attribute %q does not exist", core.ErrAttributeNotFound, name)
	}
	return location, nil
}
