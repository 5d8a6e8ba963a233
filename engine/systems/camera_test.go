package systems

import (
	"testing"

	"github.com/spaghettifunk/midnight/engine/core"
	"github.com/spaghettifunk/midnight/engine/renderer/components"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCameraSystem(t *testing.T, max uint16) *CameraSystem {
	t.Helper()
	cs, err := NewCameraSystem(&CameraSystemConfig{
		MaxCameraCount: max,
		FieldOfView:    60,
		AspectRatio:    4.0 / 3.0,
		ZNear:          0.1,
		ZFar:           100,
	})
	require.NoError(t, err)
	return cs
}

func TestCameraSystemRequiresCapacity(t *testing.T) {
	_, err := NewCameraSystem(&CameraSystemConfig{})
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestCameraSystemDefault(t *testing.T) {
	cs := newTestCameraSystem(t, 1)
	c, name, err := cs.Acquire(components.DEFAULT_CAMERA_NAME)
	require.NoError(t, err)
	assert.Same(t, cs.Default(), c)
	assert.Equal(t, components.DEFAULT_CAMERA_NAME, name)
	assert.Equal(t, float32(60), c.FieldOfView())

	cs.Release(components.DEFAULT_CAMERA_NAME)
	assert.Same(t, cs.Default(), c)
	assert.Equal(t, 0, cs.Count())
}

func TestCameraSystemReferenceCounting(t *testing.T) {
	cs := newTestCameraSystem(t, 2)
	first, _, err := cs.Acquire("world")
	require.NoError(t, err)
	second, _, err := cs.Acquire("world")
	require.NoError(t, err)
	assert.Same(t, first, second)

	cs.Release("world")
	assert.Equal(t, 1, cs.Count())
	cs.Release("world")
	assert.Equal(t, 0, cs.Count())

	third, _, err := cs.Acquire("world")
	require.NoError(t, err)
	assert.NotSame(t, first, third, "a fully released camera is dropped")

	cs.Release("missing")
}

func TestCameraSystemCapacity(t *testing.T) {
	cs := newTestCameraSystem(t, 1)
	_, name, err := cs.Acquire("")
	require.NoError(t, err)
	assert.NotEmpty(t, name)

	_, _, err = cs.Acquire("ui")
	assert.ErrorIs(t, err, core.ErrResourceExhausted)

	cs.Release(name)
	_, _, err = cs.Acquire("ui")
	assert.NoError(t, err)

	seen := 0
	cs.Each(func(*components.Camera) { seen++ })
	assert.Equal(t, 2, seen)
}
