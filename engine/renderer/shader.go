package renderer

import (
	"fmt"

	"github.com/spaghettifunk/hello-triangle/engine/core"
	"github.com/spaghettifunk/hello-triangle/engine/renderer/metadata"
)

// CompileShader creates a shader object for stage and compiles source into it.
// On failure the shader object is deleted and the driver's info log is
// returned wrapped in core.ErrShaderCompile.
func CompileShader(backend RendererBackend, source string, stage metadata.ShaderStage) (uint32, error) {
	shader, err := backend.CreateShader(stage)
	if err != nil {
		return 0, err
	}
	backend.ShaderSource(shader, source)
	backend.CompileShader(shader)
	if !backend.ShaderCompiled(shader) {
		log := backend.ShaderInfoLog(shader)
		backend.DeleteShader(shader)
		return 0, fmt.Errorf("%w: %s stage: %s", core.ErrShaderCompile, stage, log)
	}
	return shader, nil
}

// ValidateLink reports whether program linked, with the driver's info log on
// failure.
func ValidateLink(backend RendererBackend, program uint32) error {
	if !backend.ProgramLinked(program) {
		return fmt.Errorf("%w: %s", core.ErrProgramLink, backend.ProgramInfoLog(program))
	}
	return nil
}

// LinkProgram attaches the compiled shaders to a fresh program and links it.
// The shader objects are left alone; callers delete them once linking is over.
func LinkProgram(backend RendererBackend, shaders ...uint32) (*Program, error) {
	p := newProgram(backend)
	for _, s := range shaders {
		backend.AttachShader(p.Handle, s)
	}
	backend.LinkProgram(p.Handle)
	if err := ValidateLink(backend, p.Handle); err != nil {
		p.Release()
		return nil, err
	}
	p.State = metadata.SHADER_STATE_INITIALIZED
	return p, nil
}

// compileStages compiles the vertex and fragment sources of config, in that
// order. If a stage fails the shaders compiled so far are deleted.
func compileStages(backend RendererBackend, config *metadata.ShaderConfig) ([]uint32, error) {
	stages := []metadata.ShaderStage{metadata.ShaderStageVertex, metadata.ShaderStageFragment}
	shaders := make([]uint32, 0, len(stages))
	for _, stage := range stages {
		src, err := config.Source(stage)
		if err != nil {
			deleteShaders(backend, shaders)
			return nil, err
		}
		s, err := CompileShader(backend, src, stage)
		if err != nil {
			deleteShaders(backend, shaders)
			return nil, fmt.Errorf("shader %q: %w", config.Name, err)
		}
		shaders = append(shaders, s)
	}
	return shaders, nil
}

func deleteShaders(backend RendererBackend, shaders []uint32) {
	for _, s := range shaders {
		if s != 0 {
			backend.DeleteShader(s)
		}
	}
}

// buildProgram compiles both stages of config and links them. The intermediate
// shader objects are deleted before returning.
func buildProgram(backend RendererBackend, config *metadata.ShaderConfig) (*Program, error) {
	shaders, err := compileStages(backend, config)
	if err != nil {
		return nil, err
	}
	defer deleteShaders(backend, shaders)

	p, err := LinkProgram(backend, shaders...)
	if err != nil {
		return nil, fmt.Errorf("shader %q: %w", config.Name, err)
	}
	return p, nil
}
