package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/midnight/engine/core"
	"github.com/spaghettifunk/midnight/engine/renderer/driver"
)

type WindowConfig struct {
	// The application name used in windowing, if applicable.
	Name string `toml:"name"`
	// Window starting width, if applicable.
	Width uint32 `toml:"width"`
	// Window starting height, if applicable.
	Height uint32 `toml:"height"`
	// Window starting position x axis, if applicable.
	X uint32 `toml:"x"`
	// Window starting position y axis, if applicable.
	Y uint32 `toml:"y"`
}

type CameraConfig struct {
	// Vertical field of view in degrees.
	FieldOfView float32    `toml:"fov"`
	Near        float32    `toml:"near"`
	Far         float32    `toml:"far"`
	Position    [3]float32 `toml:"position"`
	MaxCameras  uint16     `toml:"max_cameras"`
}

type BufferConfig struct {
	Topology driver.Topology `toml:"topology"`
	Usage    driver.Usage    `toml:"usage"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type HeadlessConfig struct {
	// Bytes the headless driver can allocate before reporting out of memory.
	// Zero means unlimited.
	MemoryBudget int `toml:"memory_budget"`
}

type Config struct {
	Window   WindowConfig   `toml:"window"`
	Camera   CameraConfig   `toml:"camera"`
	Buffer   BufferConfig   `toml:"buffer"`
	Log      LogConfig      `toml:"log"`
	Headless HeadlessConfig `toml:"headless"`
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Name:   "Midnight Testbed",
			Width:  1280,
			Height: 720,
			X:      100,
			Y:      100,
		},
		Camera: CameraConfig{
			FieldOfView: 45,
			Near:        0.1,
			Far:         1000,
			Position:    [3]float32{0, 0, 3},
			MaxCameras:  61,
		},
		Buffer: BufferConfig{
			Topology: driver.Triangles,
			Usage:    driver.StaticDraw,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the TOML file at path on top of the defaults. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			core.LogWarn("config file %s not found, using defaults", path)
			return Default(), nil
		}
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: %s", core.ErrInvalidArgument, strict.String())
		}
		return nil, fmt.Errorf("%w: %s", core.ErrInvalidArgument, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Window.Width == 0 || c.Window.Height == 0:
		return fmt.Errorf("%w: window size must be > 0", core.ErrInvalidArgument)
	case c.Camera.FieldOfView <= 0 || c.Camera.FieldOfView >= 180:
		return fmt.Errorf("%w: camera fov must be in (0, 180) degrees, got %v", core.ErrInvalidArgument, c.Camera.FieldOfView)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: camera planes must satisfy 0 < near < far", core.ErrInvalidArgument)
	case c.Camera.MaxCameras == 0:
		return fmt.Errorf("%w: camera max_cameras must be > 0", core.ErrInvalidArgument)
	case !c.Buffer.Topology.Valid():
		return fmt.Errorf("%w: buffer topology %s", core.ErrInvalidArgument, c.Buffer.Topology)
	case !c.Buffer.Usage.Valid():
		return fmt.Errorf("%w: buffer usage %s", core.ErrInvalidArgument, c.Buffer.Usage)
	case c.Headless.MemoryBudget < 0:
		return fmt.Errorf("%w: headless memory_budget must be >= 0", core.ErrInvalidArgument)
	}
	return nil
}

func (c *Config) AspectRatio() float32 {
	return float32(c.Window.Width) / float32(c.Window.Height)
}

func (c *Config) LogLevel() core.LogLevel {
	return core.ParseLogLevel(c.Log.Level)
}

// Marshal renders c as TOML.
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
