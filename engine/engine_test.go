package engine

import (
	"context"
	"testing"

	"github.com/spaghettifunk/midnight/engine/config"
	"github.com/spaghettifunk/midnight/engine/core"
	"github.com/spaghettifunk/midnight/engine/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHeadlessGame(frames uint64) *Game {
	appConfig := NewApplicationConfig(config.Default(), "")
	appConfig.Headless = true
	appConfig.MaxFrames = frames
	return &Game{ApplicationConfig: appConfig}
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(&Game{})
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestRunBeforeInitialize(t *testing.T) {
	e, err := New(newHeadlessGame(1))
	require.NoError(t, err)
	assert.ErrorIs(t, e.Run(context.Background()), core.ErrInvalidState)
}

func TestRunStopsAtFrameLimit(t *testing.T) {
	g := newHeadlessGame(4)
	var updates, renders int
	var initialized *Context
	g.FnInitialize = func(ctx *Context) error {
		initialized = ctx
		return nil
	}
	g.FnUpdate = func(float64) error {
		updates++
		return nil
	}
	g.FnRender = func(renderer.RendererBackend, float64) error {
		renders++
		return nil
	}

	e, err := New(g)
	require.NoError(t, err)
	assert.Equal(t, EngineStageBootComplete, e.Stage())
	require.NoError(t, e.Initialize())
	require.NotNil(t, initialized)
	assert.Equal(t, "headless", initialized.Backend.Name())
	assert.Equal(t, float32(3), e.Cameras().Default().Position().Z())

	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, 4, updates)
	assert.Equal(t, 4, renders)
	assert.Equal(t, uint64(4), e.FrameCount())

	require.NoError(t, e.Shutdown())
	assert.Equal(t, EngineStageUninitialized, e.Stage())
}

func TestEscapeQuits(t *testing.T) {
	g := newHeadlessGame(0)
	var e *Engine
	g.FnUpdate = func(float64) error {
		if e.FrameCount() == 2 {
			e.Events().Fire(core.EventContext{
				Type: core.EVENT_CODE_KEY_PRESSED,
				Data: &core.KeyEvent{KeyCode: core.KEY_ESCAPE},
			})
		}
		return nil
	}

	var err error
	e, err = New(g)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, uint64(3), e.FrameCount())
}

func TestRunStopsWhenContextDone(t *testing.T) {
	e, err := New(newHeadlessGame(0))
	require.NoError(t, err)
	require.NoError(t, e.Initialize())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, e.Run(ctx))
	assert.Equal(t, uint64(0), e.FrameCount())
}

func TestResizeSuspendsAndUpdatesCameras(t *testing.T) {
	g := newHeadlessGame(1)
	var resized [2]uint32
	g.FnOnResize = func(w, h uint32) error {
		resized = [2]uint32{w, h}
		return nil
	}
	e, err := New(g)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())

	resize := func(w, h uint32) {
		e.Events().Fire(core.EventContext{
			Type: core.EVENT_CODE_RESIZED,
			Data: &core.SystemEvent{WindowWidth: w, WindowHeight: h},
		})
	}

	resize(0, 0)
	assert.True(t, e.isSuspended)

	resize(800, 400)
	assert.False(t, e.isSuspended)
	assert.Equal(t, [2]uint32{800, 400}, resized)
	assert.Equal(t, float32(2), e.Cameras().Default().AspectRatio())
}

func TestApplyConfig(t *testing.T) {
	g := newHeadlessGame(1)
	var applied *config.Config
	g.FnOnConfig = func(cfg *config.Config) error {
		applied = cfg
		return nil
	}
	e, err := New(g)
	require.NoError(t, err)

	var fired bool
	e.Events().Register(core.EVENT_CODE_CONFIG_RELOADED, func(core.EventContext) bool {
		fired = true
		return false
	})

	cfg := config.Default()
	cfg.Camera.FieldOfView = 70
	cfg.Camera.Far = 20
	require.NoError(t, e.applyConfig(cfg))

	assert.True(t, fired)
	assert.Same(t, cfg, applied)
	assert.Same(t, cfg, g.ApplicationConfig.Config)
	assert.Equal(t, float32(70), e.Cameras().Default().FieldOfView())
	assert.Equal(t, float32(20), e.Cameras().Default().FarClippingPlane())
}
