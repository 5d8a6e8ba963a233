package testbed

import (
	"context"
	"testing"

	"github.com/spaghettifunk/midnight/engine"
	"github.com/spaghettifunk/midnight/engine/config"
	"github.com/spaghettifunk/midnight/engine/core"
	"github.com/spaghettifunk/midnight/engine/renderer/driver"
	"github.com/spaghettifunk/midnight/engine/renderer/driver/headless"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHeadless(t *testing.T, cfg *config.Config, frames uint64) (*TestGame, *engine.Engine, *headless.Driver) {
	t.Helper()
	appConfig := engine.NewApplicationConfig(cfg, "")
	appConfig.Headless = true
	appConfig.MaxFrames = frames

	tg := NewTestGame(appConfig)
	e, err := engine.New(tg.Game)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())

	drv, ok := e.Backend().(*headless.Driver)
	require.True(t, ok)
	return tg, e, drv
}

func TestGameDrawsEveryFrame(t *testing.T) {
	tg, e, drv := startHeadless(t, config.Default(), 5)
	require.NoError(t, e.Run(context.Background()))

	assert.Equal(t, 5, drv.Draws())
	assert.Empty(t, drv.Errors())
	// every bind is undone after the draw
	assert.Empty(t, drv.EnabledAttributes())
	assert.Equal(t, driver.NoBuffer, drv.ArrayBufferBinding())

	quad := tg.state().quad
	assert.Equal(t, 2, quad.VertexCount())
	assert.Equal(t, 1, drv.LiveBuffers())

	require.NoError(t, e.Shutdown())
	assert.Equal(t, 0, drv.LiveBuffers())
	assert.Equal(t, 0, e.Cameras().Count())
}

func TestGameMovesCamera(t *testing.T) {
	tg, e, _ := startHeadless(t, config.Default(), 1)
	defer e.Shutdown()

	camera := tg.state().WorldCamera
	start := camera.Position()

	tg.state().ctx.Input.ProcessKey(core.KEY_W, true)
	require.NoError(t, tg.Update(1))
	assert.InDelta(t, start.Z()-moveSpeed, camera.Position().Z(), 1e-5)

	tg.state().ctx.Input.ProcessKey(core.KEY_W, false)
	tg.state().ctx.Input.ProcessKey(core.KEY_R, true)
	require.NoError(t, tg.Update(1))
	assert.Equal(t, start, camera.Position())
}

func TestGameRebuildsQuadOnConfig(t *testing.T) {
	tg, e, drv := startHeadless(t, config.Default(), 1)
	defer e.Shutdown()

	before := tg.state().quad.ID()
	cfg := config.Default()
	cfg.Buffer.Topology = driver.Lines
	cfg.Buffer.Usage = driver.DynamicDraw
	require.NoError(t, tg.OnConfig(cfg))

	quad := tg.state().quad
	assert.NotEqual(t, before, quad.ID())
	assert.Equal(t, driver.Lines, quad.Topology())
	assert.Equal(t, 3, quad.VertexCount())
	usage, ok := drv.BufferUsage(quad.Handle())
	require.True(t, ok)
	assert.Equal(t, driver.DynamicDraw, usage)
	assert.Equal(t, 1, drv.LiveBuffers())

	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, 1, drv.Draws())
}

func TestGameDrawsQuadsAsTriangles(t *testing.T) {
	cfg := config.Default()
	cfg.Buffer.Topology = driver.Quads
	tg, e, _ := startHeadless(t, cfg, 1)
	defer e.Shutdown()

	assert.Equal(t, driver.Triangles, tg.state().quad.Topology())
}
