package renderer

import (
	"github.com/google/uuid"
	"github.com/spaghettifunk/hello-triangle/engine/renderer/metadata"
)

// Buffer owns a GPU array buffer.
type Buffer struct {
	backend RendererBackend
	Handle  uint32
	// Size of the uploaded data in bytes.
	Size int
}

// NewStaticBuffer creates an array buffer, uploads layout.Data to it once and
// leaves it bound.
func NewStaticBuffer(backend RendererBackend, layout metadata.VertexLayout) *Buffer {
	b := &Buffer{
		backend: backend,
		Handle:  backend.GenBuffer(),
		Size:    layout.SizeBytes(),
	}
	b.Bind()
	backend.ArrayBufferStaticData(layout.Data)
	return b
}

func (b *Buffer) Bind() {
	b.backend.BindArrayBuffer(b.Handle)
}

// Release deletes the buffer. Calling it more than once is a no-op.
func (b *Buffer) Release() {
	if b == nil || b.Handle == 0 {
		return
	}
	b.backend.DeleteBuffer(b.Handle)
	b.Handle = 0
}

// VertexArray owns a vertex array object.
type VertexArray struct {
	backend RendererBackend
	Handle  uint32
}

// NewVertexArray generates exactly one vertex array object and binds it.
func NewVertexArray(backend RendererBackend) *VertexArray {
	va := &VertexArray{
		backend: backend,
		Handle:  backend.GenVertexArray(),
	}
	va.Bind()
	return va
}

func (va *VertexArray) Bind() {
	va.backend.BindVertexArray(va.Handle)
}

// EnableAttribute records attr for the currently bound array buffer.
func (va *VertexArray) EnableAttribute(attr metadata.VertexAttribute) {
	va.backend.VertexAttribPointer(attr)
	va.backend.EnableVertexAttribArray(attr.Location)
}

func (va *VertexArray) Release() {
	if va == nil || va.Handle == 0 {
		return
	}
	va.backend.DeleteVertexArray(va.Handle)
	va.Handle = 0
}

// Program owns a linked shader program.
type Program struct {
	backend RendererBackend
	Handle  uint32
	// Name tells programs apart in logs, it changes on every link.
	Name  string
	State metadata.ShaderState
}

func newProgram(backend RendererBackend) *Program {
	return &Program{
		backend: backend,
		Handle:  backend.CreateProgram(),
		Name:    uuid.NewString(),
		State:   metadata.SHADER_STATE_NOT_CREATED,
	}
}

func (p *Program) Use() {
	p.backend.UseProgram(p.Handle)
}

func (p *Program) Release() {
	if p == nil || p.Handle == 0 {
		return
	}
	p.backend.DeleteProgram(p.Handle)
	p.Handle = 0
	p.State = metadata.SHADER_STATE_RELEASED
}
