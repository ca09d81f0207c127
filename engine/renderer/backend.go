package renderer

import "github.com/spaghettifunk/hello-triangle/engine/renderer/metadata"

// RendererBackend is the slice of the graphics API the triangle renderer talks
// to. Handles are the raw object names handed out by the driver; zero is never
// a valid handle. Every method must be called from the thread owning the
// graphics context.
type RendererBackend interface {
	CreateShader(stage metadata.ShaderStage) (uint32, error)
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	ShaderCompiled(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	GenBuffer() uint32
	BindArrayBuffer(buffer uint32)
	ArrayBufferStaticData(data []float32)
	DeleteBuffer(buffer uint32)

	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)
	VertexAttribPointer(attr metadata.VertexAttribute)
	EnableVertexAttribArray(location uint32)

	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	ClearColorBuffer()
	DrawArrays(topology metadata.PrimitiveTopology, first, count int32)
}
