package components

import (
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/midnight/engine/math"
	"github.com/stretchr/testify/assert"
)

const tol = 1e-5

func assertVec3(t *testing.T, want, got math.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], tol, "component %d: want %v, got %v", i, want, got)
	}
}

func assertMat4(t *testing.T, want, got math.Mat4) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], tol, "element %d: want %v, got %v", i, want, got)
	}
}

func TestCameraProjection(t *testing.T) {
	c := NewCamera(60, 16.0/9.0, 0.1, 100)
	want := mgl32.Perspective(mgl32.DegToRad(60), 16.0/9.0, 0.1, 100)
	assertMat4(t, want, c.Projection())

	c.SetFieldOfView(90)
	c.SetAspectRatio(1)
	c.SetNearClippingPlane(1)
	c.SetFarClippingPlane(10)
	p := c.Projection()
	// cot(45 degrees) == 1
	assert.InDelta(t, 1.0, p.At(0, 0), tol)
	assert.InDelta(t, 1.0, p.At(1, 1), tol)
	assert.InDelta(t, -11.0/9.0, p.At(2, 2), tol)
	assert.InDelta(t, -20.0/9.0, p.At(2, 3), tol)
}

func TestCameraOrientationStartsAtIdentity(t *testing.T) {
	c := NewCamera(60, 1, 0.1, 100)
	assert.Equal(t, mgl32.Ident4(), c.Orientation())
	assertVec3(t, math.NewVec3(0, 0, -1), c.Forward())
	assertVec3(t, math.NewVec3(1, 0, 0), c.Right())
}

func TestCameraRotate(t *testing.T) {
	c := NewCamera(60, 1, 0.1, 100)
	c.Rotate(math.NewVec3(0, 2, 0), gomath.Pi/2)
	assertVec3(t, math.NewVec3(1, 0, 0), c.Forward())
	assert.InDelta(t, 1.0, c.OrientationQuat().Len(), tol)

	// rotating by the inverse brings it back
	c.RotateQuat(mgl32.QuatRotate(-gomath.Pi/2, math.NewVec3(0, 1, 0)))
	assertMat4(t, mgl32.Ident4(), c.Orientation())

	// a zero axis is ignored
	c.Rotate(math.NewVec3Zero(), 1)
	assertMat4(t, mgl32.Ident4(), c.Orientation())
}

func TestCameraTranslateAndView(t *testing.T) {
	c := NewCamera(60, 1, 0.1, 100)
	c.SetPosition(math.NewVec3(0, 0, 2))
	c.Translate(math.NewVec3(0, 0, 3))
	assertVec3(t, math.NewVec3(0, 0, 5), c.Position())

	origin := c.View().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assertVec3(t, math.NewVec3(0, 0, -5), origin.Vec3())

	c.MoveForward(2)
	assertVec3(t, math.NewVec3(0, 0, 3), c.Position())
	c.MoveRight(1)
	c.MoveUp(4)
	c.MoveLeft(3)
	c.MoveDown(1)
	c.MoveBackward(1)
	assertVec3(t, math.NewVec3(-2, 3, 4), c.Position())
}

func TestCameraPitchClamp(t *testing.T) {
	c := NewCamera(60, 1, 0.1, 100)
	c.Pitch(10)
	limited := c.Forward()
	assert.InDelta(t, gomath.Sin(float64(pitchLimit)), gomath.Abs(float64(limited.Y())), tol)

	c.Pitch(1)
	assertVec3(t, limited, c.Forward())

	c.Pitch(-pitchLimit)
	assertVec3(t, math.NewVec3(0, 0, -1), c.Forward())
}

func TestCameraPitchCountsRotate(t *testing.T) {
	c := NewCamera(60, 1, 0.1, 100)
	c.Rotate(math.NewVec3(1, 0, 0), 1.5)
	c.Pitch(0.5)
	assert.InDelta(t, gomath.Sin(float64(pitchLimit)), gomath.Abs(float64(c.Forward().Y())), tol)

	c.Yaw(0.4)
	c.Pitch(0.5)
	assert.InDelta(t, gomath.Sin(float64(pitchLimit)), gomath.Abs(float64(c.Forward().Y())), tol)
}

func TestCameraYawKeepsHorizon(t *testing.T) {
	c := NewCamera(60, 1, 0.1, 100)
	c.Yaw(0.7)
	assert.InDelta(t, 0.0, c.Forward().Y(), tol)
	assert.InDelta(t, 0.0, c.Right().Y(), tol)
}

func TestCameraReset(t *testing.T) {
	c := NewCamera(45, 2, 0.5, 50)
	c.SetPosition(math.NewVec3(1, 2, 3))
	c.Rotate(math.NewVec3(1, 0, 0), 0.3)
	c.SetFieldOfView(80)
	c.SetFarClippingPlane(500)

	c.Reset()
	assert.Equal(t, math.NewVec3Zero(), c.Position())
	assert.Equal(t, mgl32.QuatIdent(), c.OrientationQuat())
	assert.Equal(t, float32(45), c.FieldOfView())
	assert.Equal(t, float32(2), c.AspectRatio())
	assert.Equal(t, float32(0.5), c.NearClippingPlane())
	assert.Equal(t, float32(50), c.FarClippingPlane())
}

func TestViewProjection(t *testing.T) {
	c := NewCamera(60, 1, 0.1, 100)
	c.SetPosition(math.NewVec3(0, 0, 3))
	assertMat4(t, c.Projection().Mul4(c.View()), c.ViewProjection())
}
