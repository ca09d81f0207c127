package renderer

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/hello-triangle/engine/core"
	"github.com/spaghettifunk/hello-triangle/engine/renderer/metadata"
)

const (
	validVertexSource = `#version 330 core
layout (location = 0) in vec3 aPos;
void main() { gl_Position = vec4(aPos, 1.0); }
`
	validFragmentSource = `#version 330 core
out vec4 FragColor;
void main() { FragColor = vec4(1.0, 0.5, 0.2, 1.0); }
`
	brokenSource = `#version 330 core
void main( { gl_Position = vec4(0.0) }
`
)

func validConfig() *metadata.ShaderConfig {
	return &metadata.ShaderConfig{
		Name:           "triangle",
		VertexSource:   validVertexSource,
		FragmentSource: validFragmentSource,
	}
}

type drawCall struct {
	topology metadata.PrimitiveTopology
	first    int32
	count    int32
}

// fakeBackend records every call and hands out sequential handles. A shader
// only compiles when its source contains a well formed "void main()".
type fakeBackend struct {
	calls      []string
	nextHandle uint32

	sources  map[uint32]string
	compiled map[uint32]bool
	stages   map[uint32]metadata.ShaderStage
	attached map[uint32][]uint32
	linked   map[uint32]bool

	live map[string]map[uint32]bool

	failLink     bool
	uploaded     []float32
	attribs      []metadata.VertexAttribute
	draws        []drawCall
	currentProg  uint32
	currentVAO   uint32
	boundBuffer  uint32
	clearColours [][4]float32
	viewport     [4]int32
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		sources:  make(map[uint32]string),
		compiled: make(map[uint32]bool),
		stages:   make(map[uint32]metadata.ShaderStage),
		attached: make(map[uint32][]uint32),
		linked:   make(map[uint32]bool),
		live: map[string]map[uint32]bool{
			"shader":  {},
			"program": {},
			"buffer":  {},
			"vao":     {},
		},
	}
}

func (f *fakeBackend) record(format string, args ...interface{}) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeBackend) alloc(kind string) uint32 {
	f.nextHandle++
	f.live[kind][f.nextHandle] = true
	return f.nextHandle
}

func (f *fakeBackend) free(kind string, h uint32) {
	delete(f.live[kind], h)
}

func (f *fakeBackend) liveCount(kind string) int {
	return len(f.live[kind])
}

func (f *fakeBackend) countCalls(prefix string) int {
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (f *fakeBackend) indexOf(prefix string) int {
	for i, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			return i
		}
	}
	return -1
}

func (f *fakeBackend) CreateShader(stage metadata.ShaderStage) (uint32, error) {
	if stage != metadata.ShaderStageVertex && stage != metadata.ShaderStageFragment {
		return 0, core.ErrUnknownShaderStage
	}
	h := f.alloc("shader")
	f.stages[h] = stage
	f.record("CreateShader %s", stage)
	return h, nil
}

func (f *fakeBackend) ShaderSource(shader uint32, source string) {
	f.sources[shader] = source
}

func (f *fakeBackend) CompileShader(shader uint32) {
	f.record("CompileShader %s", f.stages[shader])
	f.compiled[shader] = strings.Contains(f.sources[shader], "void main()")
}

func (f *fakeBackend) ShaderCompiled(shader uint32) bool { return f.compiled[shader] }

func (f *fakeBackend) ShaderInfoLog(shader uint32) string {
	return "0:2(12): error: syntax error, unexpected '{'"
}

func (f *fakeBackend) DeleteShader(shader uint32) {
	f.record("DeleteShader %d", shader)
	f.free("shader", shader)
}

func (f *fakeBackend) CreateProgram() uint32 {
	f.record("CreateProgram")
	return f.alloc("program")
}

func (f *fakeBackend) AttachShader(program, shader uint32) {
	f.record("AttachShader %s", f.stages[shader])
	f.attached[program] = append(f.attached[program], shader)
}

func (f *fakeBackend) LinkProgram(program uint32) {
	f.record("LinkProgram")
	f.linked[program] = !f.failLink && len(f.attached[program]) == 2
}

func (f *fakeBackend) ProgramLinked(program uint32) bool { return f.linked[program] }

func (f *fakeBackend) ProgramInfoLog(program uint32) string {
	return "error: vertex shader output `color' not read by fragment shader"
}

func (f *fakeBackend) UseProgram(program uint32) {
	f.record("UseProgram")
	f.currentProg = program
}

func (f *fakeBackend) DeleteProgram(program uint32) {
	f.record("DeleteProgram %d", program)
	f.free("program", program)
}

func (f *fakeBackend) GenBuffer() uint32 {
	f.record("GenBuffer")
	return f.alloc("buffer")
}

func (f *fakeBackend) BindArrayBuffer(buffer uint32) {
	f.record("BindArrayBuffer")
	f.boundBuffer = buffer
}

func (f *fakeBackend) ArrayBufferStaticData(data []float32) {
	f.record("ArrayBufferStaticData %d", len(data))
	f.uploaded = append([]float32(nil), data...)
}

func (f *fakeBackend) DeleteBuffer(buffer uint32) {
	f.record("DeleteBuffer %d", buffer)
	f.free("buffer", buffer)
}

func (f *fakeBackend) GenVertexArray() uint32 {
	f.record("GenVertexArray")
	return f.alloc("vao")
}

func (f *fakeBackend) BindVertexArray(vao uint32) {
	f.record("BindVertexArray")
	f.currentVAO = vao
}

func (f *fakeBackend) DeleteVertexArray(vao uint32) {
	f.record("DeleteVertexArray %d", vao)
	f.free("vao", vao)
}

func (f *fakeBackend) VertexAttribPointer(attr metadata.VertexAttribute) {
	f.record("VertexAttribPointer %d", attr.Location)
	f.attribs = append(f.attribs, attr)
}

func (f *fakeBackend) EnableVertexAttribArray(location uint32) {
	f.record("EnableVertexAttribArray %d", location)
}

func (f *fakeBackend) Viewport(x, y, width, height int32) {
	f.record("Viewport")
	f.viewport = [4]int32{x, y, width, height}
}

func (f *fakeBackend) ClearColor(r, g, b, a float32) {
	f.record("ClearColor")
	f.clearColours = append(f.clearColours, [4]float32{r, g, b, a})
}

func (f *fakeBackend) ClearColorBuffer() {
	f.record("ClearColorBuffer")
}

func (f *fakeBackend) DrawArrays(topology metadata.PrimitiveTopology, first, count int32) {
	f.record("DrawArrays")
	f.draws = append(f.draws, drawCall{topology: topology, first: first, count: count})
}
