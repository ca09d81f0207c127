//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Validates the shaders and then opens the triangle window.
func (Run) Triangle() error {
	if err := buildShaders(); err != nil {
		return err
	}
	fmt.Println("Run hello-triangle...")
	if _, err := executeCmd("go", withArgs("run", "."), withStream()); err != nil {
		return err
	}
	return nil
}
