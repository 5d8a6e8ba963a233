package engine

import (
	"github.com/spaghettifunk/midnight/engine/config"
	"github.com/spaghettifunk/midnight/engine/core"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32
	// Window starting position y axis, if applicable.
	StartPosY uint32
	// Window starting width, if applicable.
	StartWidth uint32
	// Window starting height, if applicable.
	StartHeight uint32
	// The application name used in windowing, if applicable.
	Name     string
	LogLevel core.LogLevel
	// Run without a window on the in-memory driver.
	Headless bool
	// Stop after this many frames. Zero runs until the window closes.
	MaxFrames uint64
	// Watched for changes when set.
	ConfigPath string
	Config     *config.Config
}

func NewApplicationConfig(cfg *config.Config, configPath string) *ApplicationConfig {
	return &ApplicationConfig{
		StartPosX:   cfg.Window.X,
		StartPosY:   cfg.Window.Y,
		StartWidth:  cfg.Window.Width,
		StartHeight: cfg.Window.Height,
		Name:        cfg.Window.Name,
		LogLevel:    cfg.LogLevel(),
		ConfigPath:  configPath,
		Config:      cfg,
	}
}
