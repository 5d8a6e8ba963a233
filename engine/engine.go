package engine

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/spaghettifunk/midnight/engine/config"
	"github.com/spaghettifunk/midnight/engine/core"
	"github.com/spaghettifunk/midnight/engine/math"
	"github.com/spaghettifunk/midnight/engine/platform"
	"github.com/spaghettifunk/midnight/engine/renderer"
	"github.com/spaghettifunk/midnight/engine/renderer/components"
	"github.com/spaghettifunk/midnight/engine/renderer/driver/headless"
	"github.com/spaghettifunk/midnight/engine/renderer/driver/opengl"
	"github.com/spaghettifunk/midnight/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine completed boot process and is ready to be initialized
	EngineStageBootComplete
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

const targetFrameSeconds float64 = 1.0 / 60.0

type Engine struct {
	currentStage Stage
	gameInstance *Game
	isRunning    atomic.Bool
	isSuspended  bool
	platform     *platform.Platform
	backend      renderer.RendererBackend
	cameras      *systems.CameraSystem
	events       *core.EventBus
	input        *core.Input
	width        uint32
	height       uint32
	clock        *core.Clock
	metrics      *core.Metrics
	lastTime     float64
	frameCount   uint64
	limitFrames  bool

	// filled by the config watcher, drained on the main thread
	reloads chan *config.Config
}

func New(g *Game) (*Engine, error) {
	if g.ApplicationConfig == nil || g.ApplicationConfig.Config == nil {
		return nil, fmt.Errorf("%w: game has no application config", core.ErrInvalidArgument)
	}
	appConfig := g.ApplicationConfig
	cfg := appConfig.Config
	core.SetLogLevel(appConfig.LogLevel)

	e := &Engine{
		currentStage: EngineStageBooting,
		gameInstance: g,
		events:       core.NewEventBus(),
		input:        core.NewInput(),
		clock:        core.NewClock(),
		metrics:      core.NewMetrics(),
		width:        appConfig.StartWidth,
		height:       appConfig.StartHeight,
		limitFrames:  !appConfig.Headless,
		reloads:      make(chan *config.Config, 1),
	}

	if appConfig.Headless {
		e.backend = headless.New(headless.WithMemoryBudget(cfg.Headless.MemoryBudget))
	} else {
		e.platform = platform.New(e.events, e.input)
		e.backend = opengl.New()
	}

	cameras, err := systems.NewCameraSystem(&systems.CameraSystemConfig{
		MaxCameraCount: cfg.Camera.MaxCameras,
		FieldOfView:    cfg.Camera.FieldOfView,
		AspectRatio:    cfg.AspectRatio(),
		ZNear:          cfg.Camera.Near,
		ZFar:           cfg.Camera.Far,
	})
	if err != nil {
		return nil, err
	}
	cameras.Default().SetPosition(math.Vec3(cfg.Camera.Position))
	e.cameras = cameras

	e.currentStage = EngineStageBootComplete
	return e, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	// register some events
	e.events.Register(core.EVENT_CODE_APPLICATION_QUIT, e.onEvent)
	e.events.Register(core.EVENT_CODE_KEY_PRESSED, e.onKey)
	e.events.Register(core.EVENT_CODE_KEY_RELEASED, e.onKey)
	e.events.Register(core.EVENT_CODE_RESIZED, e.onResized)

	appConfig := e.gameInstance.ApplicationConfig
	if e.platform != nil {
		if err := e.platform.Startup(appConfig.Name,
			appConfig.StartPosX,
			appConfig.StartPosY,
			appConfig.StartWidth,
			appConfig.StartHeight); err != nil {
			return err
		}
		e.width, e.height = e.platform.FramebufferSize()
	}

	if err := e.backend.Initialize(); err != nil {
		return err
	}
	e.backend.Resized(e.width, e.height)
	core.LogInfo("renderer backend: %s", e.backend.Name())

	if e.gameInstance.FnInitialize != nil {
		ctx := &Context{
			Backend: e.backend,
			Cameras: e.cameras,
			Input:   e.input,
			Events:  e.events,
			Config:  appConfig.Config,
		}
		if err := e.gameInstance.FnInitialize(ctx); err != nil {
			return err
		}
	}

	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	return nil
}

// Run drives the frame loop until the window closes, Stop is called, the
// frame limit is reached or ctx is done.
func (e *Engine) Run(ctx context.Context) error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("%w: engine must be initialized before running", core.ErrInvalidState)
	}
	e.currentStage = EngineStageRunning
	e.isRunning.Store(true)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	appConfig := e.gameInstance.ApplicationConfig
	if appConfig.ConfigPath != "" {
		go func() {
			err := config.Watch(ctx, appConfig.ConfigPath, func(cfg *config.Config) {
				select {
				case e.reloads <- cfg:
				default:
					core.LogWarn("config reload dropped, previous one still pending")
				}
			})
			if err != nil {
				core.LogWarn("config watcher stopped: %s", err)
			}
		}()
	}

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	for e.isRunning.Load() {
		select {
		case <-ctx.Done():
			e.isRunning.Store(false)
			continue
		case cfg := <-e.reloads:
			if err := e.applyConfig(cfg); err != nil {
				return err
			}
		default:
		}

		if e.platform != nil && !e.platform.PumpMessages() {
			e.isRunning.Store(false)
		}

		if e.isSuspended {
			continue
		}

		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := currentTime - e.lastTime
		frameStartTime := e.clock.Elapsed()

		if e.gameInstance.FnUpdate != nil {
			if err := e.gameInstance.FnUpdate(delta); err != nil {
				core.LogError("Game update failed, shutting down.")
				return err
			}
		}

		e.backend.BeginFrame(0.05, 0.05, 0.08, 1.0)
		if e.gameInstance.FnRender != nil {
			if err := e.gameInstance.FnRender(e.backend, delta); err != nil {
				core.LogError("Game render failed, shutting down.")
				return err
			}
		}
		if e.platform != nil {
			e.platform.SwapBuffers()
		}

		e.clock.Update()
		frameElapsedTime := e.clock.Elapsed() - frameStartTime
		e.metrics.Update(frameElapsedTime)

		remainingSeconds := targetFrameSeconds - frameElapsedTime
		if remainingSeconds > 0 && e.limitFrames && e.platform != nil {
			e.platform.Sleep(remainingSeconds*1000 - 1)
		}

		e.frameCount++
		if appConfig.MaxFrames > 0 && e.frameCount >= appConfig.MaxFrames {
			e.isRunning.Store(false)
		}
		e.lastTime = currentTime
	}

	fps, frameTime := e.metrics.Frame()
	core.LogInfo("ran %d frames, %.1f fps (%.3f ms/frame)", e.frameCount, fps, frameTime)
	return nil
}

// Stop asks the frame loop to return after the current frame. Safe to call
// from any goroutine.
func (e *Engine) Stop() {
	e.isRunning.Store(false)
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	e.isRunning.Store(false)

	var errs []error
	if e.gameInstance.FnShutdown != nil {
		errs = append(errs, e.gameInstance.FnShutdown())
	}
	errs = append(errs, e.cameras.Shutdown())
	errs = append(errs, e.backend.Shutdown())
	if e.platform != nil {
		errs = append(errs, e.platform.Shutdown())
	}
	e.events.Shutdown()
	e.input.Reset()

	e.currentStage = EngineStageUninitialized
	return errors.Join(errs...)
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) FrameCount() uint64 {
	return e.frameCount
}

func (e *Engine) Events() *core.EventBus {
	return e.events
}

func (e *Engine) Backend() renderer.RendererBackend {
	return e.backend
}

func (e *Engine) Cameras() *systems.CameraSystem {
	return e.cameras
}

func (e *Engine) applyConfig(cfg *config.Config) error {
	core.SetLogLevel(cfg.LogLevel())
	camera := e.cameras.Default()
	camera.SetFieldOfView(cfg.Camera.FieldOfView)
	camera.SetNearClippingPlane(cfg.Camera.Near)
	camera.SetFarClippingPlane(cfg.Camera.Far)
	e.gameInstance.ApplicationConfig.Config = cfg

	e.events.Fire(core.EventContext{
		Type: core.EVENT_CODE_CONFIG_RELOADED,
		Data: cfg,
	})
	if e.gameInstance.FnOnConfig != nil {
		return e.gameInstance.FnOnConfig(cfg)
	}
	return nil
}

func (e *Engine) onEvent(context core.EventContext) bool {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning.Store(false)
		return true
	}
	return false
}

func (e *Engine) onKey(context core.EventContext) bool {
	key, ok := context.Data.(*core.KeyEvent)
	if !ok {
		return false
	}
	if context.Type == core.EVENT_CODE_KEY_PRESSED && key.KeyCode == core.KEY_ESCAPE {
		// Technically firing an event to itself, but there may be other listeners.
		e.events.Fire(core.EventContext{
			Type: core.EVENT_CODE_APPLICATION_QUIT,
		})
		// Block anything else from processing this.
		return true
	}
	return false
}

func (e *Engine) onResized(context core.EventContext) bool {
	ev, ok := context.Data.(*core.SystemEvent)
	if !ok || context.Type != core.EVENT_CODE_RESIZED {
		return false
	}
	if ev.WindowWidth == e.width && ev.WindowHeight == e.height {
		return false
	}
	e.width = ev.WindowWidth
	e.height = ev.WindowHeight
	core.LogDebug("Window resize: %d, %d", e.width, e.height)

	// Handle minimization
	if e.width == 0 || e.height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return true
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}

	e.backend.Resized(e.width, e.height)
	e.cameras.Each(func(c *components.Camera) {
		c.SetAspectRatio(float32(e.width) / float32(e.height))
	})
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
			core.LogError("game resize failed: %s", err)
		}
	}
	// Event purposely not handled to allow other listeners to get this.
	return false
}
