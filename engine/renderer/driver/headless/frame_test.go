package headless

import (
	"testing"

	"github.com/spaghettifunk/midnight/engine/core"
	"github.com/spaghettifunk/midnight/engine/renderer/driver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVertexShader = `#version 410 core
layout (location = 2) in vec3 position;
in vec4 colour;
in vec2 uv;
uniform mat4 projection;
out vec4 fragColour;
void main() {
	fragColour = colour;
	gl_Position = projection * vec4(position, 1.0);
}
`

const testFragmentShader = `#version 410 core
in vec4 fragColour;
uniform mat4 tint;
out vec4 outColour;
void main() {
	outColour = fragColour;
}
`

func TestCompileProgramAssignsLocations(t *testing.T) {
	d := New()
	p, err := d.CompileProgram(testVertexShader, testFragmentShader)
	require.NoError(t, err)

	for name, want := range map[string]uint32{"position": 2, "colour": 3, "uv": 4} {
		location, ok := d.AttributeLocation(p, name)
		require.True(t, ok, name)
		assert.Equal(t, want, location, name)
	}
	_, ok := d.AttributeLocation(p, "fragColour")
	assert.False(t, ok, "vertex outputs are not attributes")

	require.NoError(t, d.SetUniformMat4(p, "projection", [16]float32{1}))
	require.NoError(t, d.SetUniformMat4(p, "tint", [16]float32{}))
	value, ok := d.Uniform(p, "projection")
	require.True(t, ok)
	assert.Equal(t, float32(1), value[0])
	assert.ErrorIs(t, d.SetUniformMat4(p, "view", [16]float32{}), core.ErrAttributeNotFound)
}

func TestCompileProgramWithoutInputs(t *testing.T) {
	d := New()
	_, err := d.CompileProgram("void main() {}", testFragmentShader)
	assert.Error(t, err)
}

func TestDrawArrays(t *testing.T) {
	d := New()
	assert.ErrorIs(t, d.DrawArrays(driver.Triangles, 0, 3), ErrInvalidOperation)

	p := d.CreateProgram("position")
	d.UseProgram(p)
	h := d.CreateBuffer()
	d.BindArrayBuffer(h)
	d.EnableAttributeArray(0)
	d.AttributePointer(0, 3, driver.Float, false, 0, 0)
	require.NoError(t, d.DrawArrays(driver.Triangles, 0, 3))
	assert.ErrorIs(t, d.DrawArrays(driver.Quads, 0, 4), core.ErrInvalidArgument)
	assert.Equal(t, 1, d.Draws())

	d.DeleteBuffer(h)
	assert.ErrorIs(t, d.DrawArrays(driver.Triangles, 0, 3), ErrInvalidOperation)
}
