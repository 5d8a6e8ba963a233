package opengl

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/spaghettifunk/midnight/engine/renderer/driver"
)

func sizeToGL(size int32) int32 {
	if size == driver.SizeBGRA {
		return gl.BGRA
	}
	return size
}

func dataTypeToGL(t driver.DataType) uint32 {
	switch t {
	case driver.Byte:
		return gl.BYTE
	case driver.UnsignedByte:
		return gl.UNSIGNED_BYTE
	case driver.Short:
		return gl.SHORT
	case driver.UnsignedShort:
		return gl.UNSIGNED_SHORT
	case driver.Int:
		return gl.INT
	case driver.UnsignedInt:
		return gl.UNSIGNED_INT
	case driver.HalfFloat:
		return gl.HALF_FLOAT
	case driver.Float:
		return gl.FLOAT
	case driver.Double:
		return gl.DOUBLE
	case driver.Fixed:
		return gl.FIXED
	case driver.Int2101010Rev:
		return gl.INT_2_10_10_10_REV
	case driver.UnsignedInt2101010Rev:
		return gl.UNSIGNED_INT_2_10_10_10_REV
	case driver.UnsignedInt10F11F11FRev:
		return gl.UNSIGNED_INT_10F_11F_11F_REV
	}
	// never a valid type; the driver raises GL_INVALID_ENUM
	return gl.NONE
}

func usageToGL(u driver.Usage) uint32 {
	switch u {
	case driver.StaticDraw:
		return gl.STATIC_DRAW
	case driver.DynamicDraw:
		return gl.DYNAMIC_DRAW
	case driver.StreamDraw:
		return gl.STREAM_DRAW

	case driver.StaticRead:
		return gl.STATIC_READ
	case driver.DynamicRead:
		return gl.DYNAMIC_READ
	case driver.StreamRead:
		return gl.STREAM_READ

	case driver.StaticCopy:
		return gl.STATIC_COPY
	case driver.DynamicCopy:
		return gl.DYNAMIC_COPY
	case driver.StreamCopy:
		return gl.STREAM_COPY
	}
	return gl.NONE
}

// primitiveToGL maps a topology onto a draw mode. Quads are not part of the
// core profile.
func primitiveToGL(t driver.Topology) (uint32, bool) {
	switch t {
	case driver.Points:
		return gl.POINTS, true
	case driver.Lines:
		return gl.LINES, true
	case driver.Triangles:
		return gl.TRIANGLES, true
	}
	return 0, false
}
