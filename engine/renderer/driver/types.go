package driver

import (
	"fmt"
	"strings"
)

// SizeBGRA is the packed component count accepted by AttributePointer in place of 1-4.
const SizeBGRA int32 = -1

// DataType is the element type of a vertex attribute component.
type DataType uint8

const (
	DataTypeUnknown DataType = iota
	Byte
	UnsignedByte
	Short
	UnsignedShort
	Int
	UnsignedInt
	HalfFloat
	Float
	Double
	Fixed
	Int2101010Rev
	UnsignedInt2101010Rev
	UnsignedInt10F11F11FRev
)

var dataTypeNames = map[DataType]string{
	Byte:                    "byte",
	UnsignedByte:            "unsigned_byte",
	Short:                   "short",
	UnsignedShort:           "unsigned_short",
	Int:                     "int",
	UnsignedInt:             "unsigned_int",
	HalfFloat:               "half_float",
	Float:                   "float",
	Double:                  "double",
	Fixed:                   "fixed",
	Int2101010Rev:           "int_2_10_10_10_rev",
	UnsignedInt2101010Rev:   "unsigned_int_2_10_10_10_rev",
	UnsignedInt10F11F11FRev: "unsigned_int_10f_11f_11f_rev",
}

func (t DataType) String() string {
	if name, ok := dataTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("DataType(%d)", uint8(t))
}

// Usage is the expected access pattern handed to the driver with a buffer's data store.
type Usage uint8

// Full docs for buffer usage can be found here: https://registry.khronos.org/OpenGL-Refpages/gl4/html/glBufferData.xhtml
const (
	UsageUnknown Usage = iota

	// Buffer is set only once and used many times
	StaticDraw
	// Buffer is changed a lot and used many times
	DynamicDraw
	// Buffer is set only once and used by the GPU at most a few times
	StreamDraw

	StaticRead
	DynamicRead
	StreamRead

	StaticCopy
	DynamicCopy
	StreamCopy
)

var usageNames = map[Usage]string{
	StaticDraw:  "static_draw",
	DynamicDraw: "dynamic_draw",
	StreamDraw:  "stream_draw",
	StaticRead:  "static_read",
	DynamicRead: "dynamic_read",
	StreamRead:  "stream_read",
	StaticCopy:  "static_copy",
	DynamicCopy: "dynamic_copy",
	StreamCopy:  "stream_copy",
}

func (u Usage) Valid() bool {
	_, ok := usageNames[u]
	return ok
}

func (u Usage) String() string {
	if name, ok := usageNames[u]; ok {
		return name
	}
	return fmt.Sprintf("Usage(%d)", uint8(u))
}

func (u Usage) MarshalText() ([]byte, error) {
	if !u.Valid() {
		return nil, fmt.Errorf("unknown buffer usage %d", uint8(u))
	}
	return []byte(u.String()), nil
}

func (u *Usage) UnmarshalText(text []byte) error {
	want := strings.ToLower(strings.TrimSpace(string(text)))
	for usage, name := range usageNames {
		if name == want {
			*u = usage
			return nil
		}
	}
	return fmt.Errorf("unknown buffer usage %q", string(text))
}
