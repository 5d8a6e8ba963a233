//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Opens the demo window with the local config.toml.
func (Run) Demo() error {
	fmt.Println("Run demo...")
	_, err := executeCmd("go", withArgs("run", "main.go", "-config", "config.toml"), withStream())
	return err
}

// Runs a few frames of the demo on the in-memory driver.
func (Run) Headless() error {
	_, err := executeCmd("go", withArgs("run", "main.go", "-headless", "-frames", "120"), withStream())
	return err
}
