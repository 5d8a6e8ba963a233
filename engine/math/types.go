package math

import "github.com/go-gl/mathgl/mgl32"

type (
	Vec2 = mgl32.Vec2
	Vec3 = mgl32.Vec3
	Vec4 = mgl32.Vec4
	Mat4 = mgl32.Mat4
	Quat = mgl32.Quat
)

func NewVec3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

func NewVec3Zero() Vec3 {
	return Vec3{}
}

func NewVec3Up() Vec3 {
	return Vec3{0, 1, 0}
}

func NewVec3Down() Vec3 {
	return Vec3{0, -1, 0}
}

func NewQuatIdentity() Quat {
	return mgl32.QuatIdent()
}

/**
 * @brief Represents a single vertex in 3D space with a colour.
 * The field order is the memory layout uploaded to vertex buffers.
 */
type Vertex3D struct {
	/** @brief The position of the vertex */
	Position [3]float32
	/** @brief The colour of the vertex. */
	Colour [4]float32
}

/**
 * @brief Represents a single vertex in 2D space.
 */
type Vertex2D struct {
	/** @brief The position of the vertex */
	Position [2]float32
	/** @brief The texture coordinate of the vertex. */
	Texcoord [2]float32
}
