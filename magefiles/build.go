//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

const shaderDir = "engine/assets/shaders"

type Build mg.Namespace

// Validates every GLSL source under engine/assets/shaders with glslangValidator.
func (Build) Shaders() error {
	return buildShaders()
}

// Builds the hello-triangle binary into bin/.
func (Build) Binary() error {
	mg.Deps(Build.Shaders)
	if _, err := executeCmd("go", withArgs("build", "-o", filepath.Join("bin", "hello-triangle"), "."), withStream()); err != nil {
		return err
	}
	return nil
}

func buildShaders() error {
	for _, pattern := range []string{"*.vert", "*.frag"} {
		files, err := filepath.Glob(filepath.Join(shaderDir, pattern))
		if err != nil {
			return err
		}
		for _, f := range files {
			if _, err := executeCmd("glslangValidator", withArgs(f)); err != nil {
				return fmt.Errorf("shader %s: %w", f, err)
			}
		}
	}
	return nil
}
