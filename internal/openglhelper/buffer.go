// Package openglhelper wraps the go-gl calls the renderer needs in a small
// Go-friendly API. Everything here must run on the thread that owns the GL context.
package openglhelper

import (
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// BufferObject is a GL buffer bound to one target
type BufferObject struct {
	ID    uint32
	Type  uint32 // gl.ARRAY_BUFFER, gl.ELEMENT_ARRAY_BUFFER, ...
	Size  int    // bytes
	Usage BufferUsage
}

// BufferUsage is the storage hint passed to glBufferData
type BufferUsage uint32

// StaticDraw data is uploaded once and drawn many times
const StaticDraw BufferUsage = gl.STATIC_DRAW

// NewBufferObject allocates a buffer of sizeInBytes on target and fills it from data.
// data may be nil to leave the storage uninitialized.
func NewBufferObject(target uint32, sizeInBytes int, data unsafe.Pointer, usage BufferUsage) *BufferObject {
	var id uint32
	gl.GenBuffers(1, &id)

	bo := &BufferObject{
		ID:    id,
		Type:  target,
		Size:  sizeInBytes,
		Usage: usage,
	}
	bo.Bind()
	gl.BufferData(target, sizeInBytes, data, uint32(usage))
	return bo
}

// NewVBO uploads interleaved vertex data
func NewVBO(vertices []float32, usage BufferUsage) *BufferObject {
	var ptr unsafe.Pointer
	if len(vertices) > 0 {
		ptr = gl.Ptr(vertices)
	}
	return NewBufferObject(gl.ARRAY_BUFFER, len(vertices)*4, ptr, usage)
}

// NewEBO uploads triangle indices. The current VAO records the binding.
func NewEBO(indices []uint32, usage BufferUsage) *BufferObject {
	var ptr unsafe.Pointer
	if len(indices) > 0 {
		ptr = gl.Ptr(indices)
	}
	return NewBufferObject(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, ptr, usage)
}

func (bo *BufferObject) Bind() {
	gl.BindBuffer(bo.Type, bo.ID)
}

func (bo *BufferObject) Unbind() {
	gl.BindBuffer(bo.Type, 0)
}

func (bo *BufferObject) Delete() {
	gl.DeleteBuffers(1, &bo.ID)
	bo.ID = 0
}

// VertexArrayObject stores a vertex attribute layout
type VertexArrayObject struct {
	ID uint32
}

func NewVAO() *VertexArrayObject {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return &VertexArrayObject{ID: id}
}

func (vao *VertexArrayObject) Bind() {
	gl.BindVertexArray(vao.ID)
}

func (vao *VertexArrayObject) Unbind() {
	gl.BindVertexArray(0)
}

func (vao *VertexArrayObject) Delete() {
	gl.DeleteVertexArrays(1, &vao.ID)
	vao.ID = 0
}

// SetVertexAttribPointer describes and enables one float attribute of the bound VBO.
// stride and offset are in bytes.
func (vao *VertexArrayObject) SetVertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointer(index, size, xtype, normalized, stride, gl.PtrOffset(offset))
	gl.EnableVertexAttribArray(index)
}
