//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Runs go mod tidy and then builds the binary into bin/.
func (Build) Binary() error {
	if err := tidy(); err != nil {
		return err
	}
	_, err := executeCmd("go", withArgs("build", "-o", "bin/midnight", "."), withStream())
	return err
}
