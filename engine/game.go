package engine

import (
	"github.com/spaghettifunk/midnight/engine/config"
	"github.com/spaghettifunk/midnight/engine/core"
	"github.com/spaghettifunk/midnight/engine/renderer"
	"github.com/spaghettifunk/midnight/engine/systems"
)

type Game struct {
	ApplicationConfig *ApplicationConfig
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnRender          Render
	FnOnResize        OnResize
	FnOnConfig        OnConfig
	FnShutdown        Shutdown
}

// Context is what the engine hands a game when it initializes.
type Context struct {
	Backend renderer.RendererBackend
	Cameras *systems.CameraSystem
	Input   *core.Input
	Events  *core.EventBus
	Config  *config.Config
}

type Initialize func(ctx *Context) error
type Update func(deltaTime float64) error
type Render func(backend renderer.RendererBackend, deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type OnConfig func(cfg *config.Config) error
type Shutdown func() error
