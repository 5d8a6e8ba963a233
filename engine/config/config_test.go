package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spaghettifunk/midnight/engine/core"
	"github.com/spaghettifunk/midnight/engine/renderer/driver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
[window]
name = "sample"
width = 800
height = 600

[camera]
fov = 60.0
near = 0.5
far = 50.0
position = [1.0, 2.0, 3.0]

[buffer]
topology = "lines"
usage = "dynamic_draw"

[log]
level = "debug"

[headless]
memory_budget = 4096
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "sample", cfg.Window.Name)
	assert.Equal(t, uint32(800), cfg.Window.Width)
	// untouched keys keep their defaults
	assert.Equal(t, uint32(100), cfg.Window.X)
	assert.Equal(t, float32(60), cfg.Camera.FieldOfView)
	assert.Equal(t, [3]float32{1, 2, 3}, cfg.Camera.Position)
	assert.Equal(t, driver.Lines, cfg.Buffer.Topology)
	assert.Equal(t, driver.DynamicDraw, cfg.Buffer.Usage)
	assert.Equal(t, core.DebugLevel, cfg.LogLevel())
	assert.Equal(t, 4096, cfg.Headless.MemoryBudget)
	assert.InDelta(t, 800.0/600.0, cfg.AspectRatio(), 1e-6)
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"unknown topology": "[buffer]\ntopology = \"fans\"",
		"unknown usage":    "[buffer]\nusage = \"forever\"",
		"unknown key":      "[window]\ncolour = \"red\"",
		"zero width":       "[window]\nwidth = 0",
		"inverted planes":  "[camera]\nnear = 10.0\nfar = 1.0",
		"flat fov":         "[camera]\nfov = 0.0",
		"negative budget":  "[headless]\nmemory_budget = -1",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.ErrorIs(t, err, core.ErrInvalidArgument)
		})
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Default().Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "triangles")
	assert.Contains(t, string(data), "static_draw")

	cfg, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"info\""), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	reloaded := make(chan *Config, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(c *Config) {
			select {
			case reloaded <- c:
			default:
			}
		})
	}()

	var got *Config
	require.Eventually(t, func() bool {
		// rewritten each attempt since the watcher may not be registered yet
		if err := os.WriteFile(path, []byte("[log]\nlevel = \"warn\""), 0o644); err != nil {
			return false
		}
		timeout := time.After(50 * time.Millisecond)
		for {
			select {
			case got = <-reloaded:
				// a reload can observe the truncated file before the new content lands
				if got.LogLevel() == core.WarnLevel {
					return true
				}
			case <-timeout:
				return false
			}
		}
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, "warn", got.Log.Level)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
