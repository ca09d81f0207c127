// Package opengl implements renderer.RendererBackend on top of the OpenGL 3.3
// core profile bindings.
package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/spaghettifunk/hello-triangle/engine/core"
	"github.com/spaghettifunk/hello-triangle/engine/renderer"
	"github.com/spaghettifunk/hello-triangle/engine/renderer/metadata"
)

var _ renderer.RendererBackend = (*Backend)(nil)

type Backend struct {
	Version string
}

// New loads the OpenGL function pointers. A context must be current on the
// calling thread.
func New() (*Backend, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("could not initialise OpenGL context: %w", err)
	}
	b := &Backend{
		Version: gl.GoStr(gl.GetString(gl.VERSION)),
	}
	core.LogInfo("OpenGL version '%s'", b.Version)
	return b, nil
}

// ShaderType maps a stage to its GL shader type.
func ShaderType(stage metadata.ShaderStage) (uint32, error) {
	switch stage {
	case metadata.ShaderStageVertex:
		return gl.VERTEX_SHADER, nil
	case metadata.ShaderStageFragment:
		return gl.FRAGMENT_SHADER, nil
	}
	return 0, fmt.Errorf("%w: %s", core.ErrUnknownShaderStage, stage)
}

// DrawMode maps a topology to its GL primitive mode.
func DrawMode(topology metadata.PrimitiveTopology) uint32 {
	switch topology {
	case metadata.PrimitiveTopologyTriangleStrip:
		return gl.TRIANGLE_STRIP
	case metadata.PrimitiveTopologyLineList:
		return gl.LINES
	case metadata.PrimitiveTopologyPointList:
		return gl.POINTS
	default:
		return gl.TRIANGLES
	}
}

func (b *Backend) CreateShader(stage metadata.ShaderStage) (uint32, error) {
	t, err := ShaderType(stage)
	if err != nil {
		return 0, err
	}
	return gl.CreateShader(t), nil
}

func (b *Backend) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (b *Backend) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (b *Backend) ShaderCompiled(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status == gl.TRUE
}

func (b *Backend) ShaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00\n")
}

func (b *Backend) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (b *Backend) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (b *Backend) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (b *Backend) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (b *Backend) ProgramLinked(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status == gl.TRUE
}

func (b *Backend) ProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00\n")
}

func (b *Backend) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (b *Backend) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (b *Backend) GenBuffer() uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	return vbo
}

func (b *Backend) BindArrayBuffer(buffer uint32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
}

func (b *Backend) ArrayBufferStaticData(data []float32) {
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*metadata.Float32Size, gl.Ptr(data), gl.STATIC_DRAW)
}

func (b *Backend) DeleteBuffer(buffer uint32) {
	gl.DeleteBuffers(1, &buffer)
}

func (b *Backend) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (b *Backend) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

func (b *Backend) DeleteVertexArray(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
}

func (b *Backend) VertexAttribPointer(attr metadata.VertexAttribute) {
	gl.VertexAttribPointer(attr.Location, attr.Components, gl.FLOAT, attr.Normalized, attr.Stride, gl.PtrOffset(int(attr.Offset)))
}

func (b *Backend) EnableVertexAttribArray(location uint32) {
	gl.EnableVertexAttribArray(location)
}

func (b *Backend) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (b *Backend) ClearColor(r, g, bl, a float32) {
	gl.ClearColor(r, g, bl, a)
}

func (b *Backend) ClearColorBuffer() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (b *Backend) DrawArrays(topology metadata.PrimitiveTopology, first, count int32) {
	gl.DrawArrays(DrawMode(topology), first, count)
}
