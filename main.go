/*
Midnight renders a spinning quad through the vertex buffer layer, either in
a window or on the in-memory driver with -headless.
*/
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/midnight/engine"
	"github.com/spaghettifunk/midnight/engine/config"
	"github.com/spaghettifunk/midnight/engine/core"
	"github.com/spaghettifunk/midnight/testbed"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the TOML configuration")
	headlessMode := flag.Bool("headless", false, "run without a window on the in-memory driver")
	frames := flag.Uint64("frames", 0, "stop after this many frames (0 runs until closed)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		core.LogFatal("failed to load config: %s", err)
	}

	appConfig := engine.NewApplicationConfig(cfg, *configPath)
	appConfig.Headless = *headlessMode
	appConfig.MaxFrames = *frames

	tb := testbed.NewTestGame(appConfig)

	e, err := engine.New(tb.Game)
	if err != nil {
		core.LogFatal(err.Error())
	}

	if err := e.Initialize(); err != nil {
		core.LogFatal(err.Error())
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// start stop goroutine
	go func() {
		// capture sigterm and other system call here
		<-sigCh
		e.Stop()
	}()

	// run engine
	runErr := e.Run(context.Background())
	if err := e.Shutdown(); err != nil {
		core.LogError("shutdown: %s", err)
	}
	if runErr != nil {
		core.LogFatal(runErr.Error())
	}
}
