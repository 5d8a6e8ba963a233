//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs every package test.
func (Test) All() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}

// Runs the tests that need no window or GL context.
func (Test) Headless() error {
	_, err := executeCmd("go", withArgs("test",
		"./engine/core/...",
		"./engine/math/...",
		"./engine/config/...",
		"./engine/systems/...",
		"./engine/renderer/buffers/...",
		"./engine/renderer/components/...",
		"./engine/renderer/driver/...",
	), withStream())
	return err
}

// Runs the renderer packages (buffers, camera, drivers) on their own.
func (Test) Renderer() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withDir("engine/renderer"), withStream())
	return err
}
