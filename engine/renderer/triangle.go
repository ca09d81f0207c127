package renderer

import (
	"context"
	"fmt"

	"github.com/spaghettifunk/hello-triangle/engine/core"
	"github.com/spaghettifunk/hello-triangle/engine/math"
	"github.com/spaghettifunk/hello-triangle/engine/renderer/metadata"
)

type State uint8

const (
	// Nothing has been created on the GPU yet.
	StateUninitialized State = iota
	// Buffer, vertex array and program exist; frames can be drawn.
	StateRendering
	// Every GPU object was released.
	StateReleased
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRendering:
		return "rendering"
	case StateReleased:
		return "released"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// DefaultClearColour is the background behind the triangle.
var DefaultClearColour = math.Colour{X: 0.2, Y: 0.3, Z: 0.3, W: 1.0}

// TriangleRenderer draws one static triangle with one shader program.
type TriangleRenderer struct {
	backend     RendererBackend
	config      *metadata.ShaderConfig
	layout      metadata.VertexLayout
	clearColour math.Colour

	state       State
	program     *Program
	vertexArray *VertexArray
	buffer      *Buffer
}

type Option func(*TriangleRenderer)

// WithClearColour overrides DefaultClearColour. Components are clamped to [0, 1].
func WithClearColour(c math.Colour) Option {
	return func(r *TriangleRenderer) {
		r.clearColour = c.Clamped()
	}
}

func New(backend RendererBackend, config *metadata.ShaderConfig, opts ...Option) *TriangleRenderer {
	r := &TriangleRenderer{
		backend:     backend,
		config:      config,
		layout:      metadata.PositionLayout(),
		clearColour: DefaultClearColour,
		state:       StateUninitialized,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Initialize compiles both shader stages, uploads the triangle and links the
// program. Any compile or link failure is returned and leaves the renderer
// uninitialized with nothing allocated.
func (r *TriangleRenderer) Initialize() error {
	switch r.state {
	case StateRendering:
		return fmt.Errorf("triangle renderer already initialized")
	case StateReleased:
		return core.ErrRendererReleased
	}
	if err := r.layout.Validate(); err != nil {
		return err
	}

	shaders, err := compileStages(r.backend, r.config)
	if err != nil {
		return err
	}
	defer deleteShaders(r.backend, shaders)

	// The vertex array must be bound while the attribute is recorded.
	r.vertexArray = NewVertexArray(r.backend)
	r.buffer = NewStaticBuffer(r.backend, r.layout)
	r.vertexArray.EnableAttribute(r.layout.Attribute)

	program, err := LinkProgram(r.backend, shaders...)
	if err != nil {
		r.buffer.Release()
		r.vertexArray.Release()
		r.buffer, r.vertexArray = nil, nil
		return fmt.Errorf("shader %q: %w", r.config.Name, err)
	}
	program.Use()
	r.program = program
	r.state = StateRendering

	core.LogDebug("triangle renderer ready (program=%s vao=%d vbo=%d)", program.Name, r.vertexArray.Handle, r.buffer.Handle)
	return nil
}

// DrawFrame clears the colour buffer and issues the single triangle draw call.
func (r *TriangleRenderer) DrawFrame() error {
	if r.state != StateRendering {
		return r.notRendering()
	}
	r.backend.ClearColor(r.clearColour.RGBA())
	r.backend.ClearColorBuffer()

	r.program.Use()
	r.vertexArray.Bind()
	r.backend.DrawArrays(metadata.PrimitiveTopologyTriangleList, 0, r.layout.VertexCount())
	return nil
}

// DrawTriangle runs the frame loop on the calling goroutine until ctx is done.
// Each iteration calls onLoopStart, draws the frame, then calls onLoopEnd; an
// iteration that has started always runs to completion. Either hook may be nil.
func (r *TriangleRenderer) DrawTriangle(ctx context.Context, onLoopStart, onLoopEnd func()) error {
	if r.state != StateRendering {
		return r.notRendering()
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if onLoopStart != nil {
			onLoopStart()
		}
		if err := r.DrawFrame(); err != nil {
			return err
		}
		if onLoopEnd != nil {
			onLoopEnd()
		}
	}
}

// ReloadProgram builds a program from config and swaps it in. When building
// fails the current program stays active and the error is returned.
func (r *TriangleRenderer) ReloadProgram(config *metadata.ShaderConfig) error {
	if r.state != StateRendering {
		return r.notRendering()
	}
	program, err := buildProgram(r.backend, config)
	if err != nil {
		return err
	}
	program.Use()
	old := r.program
	r.program = program
	r.config = config
	old.Release()

	core.LogInfo("shader %q reloaded (program %s replaces %s)", config.Name, program.Name, old.Name)
	return nil
}

// Resized updates the viewport to the new framebuffer size.
func (r *TriangleRenderer) Resized(width, height uint32) {
	if r.state != StateRendering || width == 0 || height == 0 {
		return
	}
	r.backend.Viewport(0, 0, int32(width), int32(height))
}

// Release deletes the program, the buffer and the vertex array. It is safe to
// call on a renderer in any state.
func (r *TriangleRenderer) Release() {
	if r.state == StateReleased {
		return
	}
	r.program.Release()
	r.buffer.Release()
	r.vertexArray.Release()
	r.program, r.buffer, r.vertexArray = nil, nil, nil
	r.state = StateReleased
}

func (r *TriangleRenderer) State() State {
	return r.state
}

// Program is the active program, nil unless the renderer is rendering.
func (r *TriangleRenderer) Program() *Program {
	return r.program
}

func (r *TriangleRenderer) ClearColour() math.Colour {
	return r.clearColour
}

func (r *TriangleRenderer) notRendering() error {
	if r.state == StateReleased {
		return core.ErrRendererReleased
	}
	return core.ErrRendererNotInitialized
}
