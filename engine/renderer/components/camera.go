package components

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/midnight/engine/math"
)

/** @brief The name of the default camera. */
const DEFAULT_CAMERA_NAME string = "default"

// pitchLimit is 89 degrees, to keep away from gimbal lock.
const pitchLimit = float32(1.55334306)

/**
 * @brief A perspective camera positioned in world space and oriented by a
 * quaternion. Projection parameters are kept separately so that the
 * projection matrix only depends on them and the view only on the pose.
 */
type Camera struct {
	/** @brief The position of this camera in world space. */
	position math.Vec3
	/** @brief The unit quaternion representing the orientation of this camera. */
	orientation math.Quat

	/** @brief The angle of the field of view, in degrees. */
	fieldOfView float32
	aspectRatio float32
	zNear       float32
	zFar        float32

	defaults projection
}

type projection struct {
	fieldOfView, aspectRatio, zNear, zFar float32
}

// NewCamera creates a camera at the origin looking down -Z.
func NewCamera(fieldOfView, aspectRatio, zNear, zFar float32) *Camera {
	c := &Camera{
		defaults: projection{fieldOfView, aspectRatio, zNear, zFar},
	}
	c.Reset()
	return c
}

// Reset puts the camera back at the origin with no rotation and the
// projection parameters it was created with.
func (c *Camera) Reset() {
	c.position = math.NewVec3Zero()
	c.orientation = math.NewQuatIdentity()
	c.fieldOfView = c.defaults.fieldOfView
	c.aspectRatio = c.defaults.aspectRatio
	c.zNear = c.defaults.zNear
	c.zFar = c.defaults.zFar
}

// Projection returns the perspective projection matrix.
func (c *Camera) Projection() math.Mat4 {
	return mgl32.Perspective(math.DegToRad(c.fieldOfView), c.aspectRatio, c.zNear, c.zFar)
}

// Orientation returns the rotation matrix of the camera's orientation.
func (c *Camera) Orientation() math.Mat4 {
	return c.orientation.Mat4()
}

// View returns the world to camera transform: the orientation applied after
// moving the world by the negated position.
func (c *Camera) View() math.Mat4 {
	return c.Orientation().Mul4(mgl32.Translate3D(-c.position.X(), -c.position.Y(), -c.position.Z()))
}

// ViewProjection is Projection * View.
func (c *Camera) ViewProjection() math.Mat4 {
	return c.Projection().Mul4(c.View())
}

// Rotate rotates the camera by angle radians around axis.
func (c *Camera) Rotate(axis math.Vec3, angle float32) {
	if axis.Len() == 0 {
		return
	}
	c.RotateQuat(mgl32.QuatRotate(angle, axis.Normalize()))
}

// RotateQuat applies q on top of the current orientation.
func (c *Camera) RotateQuat(q math.Quat) {
	c.orientation = q.Mul(c.orientation).Normalize()
}

func (c *Camera) OrientationQuat() math.Quat {
	return c.orientation
}

func (c *Camera) Position() math.Vec3 {
	return c.position
}

func (c *Camera) SetPosition(position math.Vec3) {
	c.position = position
}

// Translate moves the camera by translation, in world space.
func (c *Camera) Translate(translation math.Vec3) {
	c.position = c.position.Add(translation)
}

func (c *Camera) FieldOfView() float32 {
	return c.fieldOfView
}

func (c *Camera) SetFieldOfView(fieldOfView float32) {
	c.fieldOfView = fieldOfView
}

func (c *Camera) AspectRatio() float32 {
	return c.aspectRatio
}

func (c *Camera) SetAspectRatio(aspectRatio float32) {
	c.aspectRatio = aspectRatio
}

func (c *Camera) NearClippingPlane() float32 {
	return c.zNear
}

func (c *Camera) SetNearClippingPlane(zNear float32) {
	c.zNear = zNear
}

func (c *Camera) FarClippingPlane() float32 {
	return c.zFar
}

func (c *Camera) SetFarClippingPlane(zFar float32) {
	c.zFar = zFar
}

// Forward is the world space direction the camera looks along.
func (c *Camera) Forward() math.Vec3 {
	return c.orientation.Conjugate().Rotate(math.NewVec3(0, 0, -1))
}

func (c *Camera) Backward() math.Vec3 {
	return c.Forward().Mul(-1)
}

func (c *Camera) Right() math.Vec3 {
	return c.orientation.Conjugate().Rotate(math.NewVec3(1, 0, 0))
}

func (c *Camera) Left() math.Vec3 {
	return c.Right().Mul(-1)
}

func (c *Camera) MoveForward(amount float32) {
	c.Translate(c.Forward().Mul(amount))
}

func (c *Camera) MoveBackward(amount float32) {
	c.Translate(c.Backward().Mul(amount))
}

func (c *Camera) MoveLeft(amount float32) {
	c.Translate(c.Left().Mul(amount))
}

func (c *Camera) MoveRight(amount float32) {
	c.Translate(c.Right().Mul(amount))
}

func (c *Camera) MoveUp(amount float32) {
	c.Translate(math.NewVec3Up().Mul(amount))
}

func (c *Camera) MoveDown(amount float32) {
	c.Translate(math.NewVec3Down().Mul(amount))
}

// Yaw turns the camera around the world up axis.
func (c *Camera) Yaw(amount float32) {
	c.orientation = c.orientation.Mul(mgl32.QuatRotate(amount, math.NewVec3Up())).Normalize()
}

// Pitch tilts the camera around its own right axis, clamped to +-89 degrees.
// The current pitch is read from the forward vector, so tilt applied through
// Rotate or RotateQuat counts against the limit too.
func (c *Camera) Pitch(amount float32) {
	current := c.currentPitch()
	target := math.Clamp(current+amount, -pitchLimit, pitchLimit)
	delta := target - current
	if delta == 0 {
		return
	}
	c.RotateQuat(mgl32.QuatRotate(delta, math.NewVec3(1, 0, 0)))
}

// forward.Y is -sin(pitch)
func (c *Camera) currentPitch() float32 {
	y := float64(math.Clamp(c.Forward().Y(), -1, 1))
	return float32(-gomath.Asin(y))
}
