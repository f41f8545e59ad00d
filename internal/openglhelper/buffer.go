// Package openglhelper provides utilities for working with OpenGL buffers and other resources.
// It wraps the low-level OpenGL functions in a more Go-friendly API.
package openglhelper

import (
	"github.com/go-gl/gl/v4.6-core/gl"
)

// BufferObject represents an OpenGL buffer object (VBO, EBO, etc.)
type BufferObject struct {
	ID    uint32
	Type  uint32 // GL_ARRAY_BUFFER, GL_ELEMENT_ARRAY_BUFFER, etc.
	Size  int    // Size of the buffer in bytes
	Usage uint32
}

// BufferUsage represents different buffer usage patterns for OpenGL buffers.
type BufferUsage uint32

const (
	// StaticDraw is for data uploaded once, such as level terrain.
	StaticDraw BufferUsage = gl.STATIC_DRAW
	// DynamicDraw is for data rewritten every frame, such as the character.
	DynamicDraw BufferUsage = gl.DYNAMIC_DRAW
)

// VertexArrayObject stores vertex attribute configurations.
type VertexArrayObject struct {
	ID uint32
}

// NewBufferObject creates a buffer of sizeInBytes, optionally filled from data.
func NewBufferObject(bufferType uint32, sizeInBytes int, data []float32, usage BufferUsage) *BufferObject {
	var bufferID uint32
	gl.GenBuffers(1, &bufferID)

	buffer := &BufferObject{
		ID:    bufferID,
		Type:  bufferType,
		Size:  sizeInBytes,
		Usage: uint32(usage),
	}

	buffer.Bind()
	if len(data) > 0 {
		gl.BufferData(bufferType, sizeInBytes, gl.Ptr(data), uint32(usage))
	} else {
		gl.BufferData(bufferType, sizeInBytes, nil, uint32(usage))
	}
	return buffer
}

// NewVBO creates a vertex buffer holding vertices.
func NewVBO(vertices []float32, usage BufferUsage) *BufferObject {
	return NewBufferObject(gl.ARRAY_BUFFER, len(vertices)*4, vertices, usage)
}

// NewEBO creates an element buffer holding indices.
func NewEBO(indices []uint32, usage BufferUsage) *BufferObject {
	var bufferID uint32
	gl.GenBuffers(1, &bufferID)

	buffer := &BufferObject{
		ID:    bufferID,
		Type:  gl.ELEMENT_ARRAY_BUFFER,
		Size:  len(indices) * 4,
		Usage: uint32(usage),
	}
	buffer.Bind()
	gl.BufferData(buffer.Type, buffer.Size, gl.Ptr(indices), uint32(usage))
	return buffer
}

// Bind binds the buffer object to its type target.
func (bo *BufferObject) Bind() {
	gl.BindBuffer(bo.Type, bo.ID)
}

// Unbind unbinds the buffer object from its type target.
func (bo *BufferObject) Unbind() {
	gl.BindBuffer(bo.Type, 0)
}

// Upload replaces the buffer contents, growing the storage when data does
// not fit.
func (bo *BufferObject) Upload(data []float32) {
	size := len(data) * 4
	bo.Bind()
	if size > bo.Size {
		bo.Size = size
		gl.BufferData(bo.Type, size, gl.Ptr(data), bo.Usage)
		return
	}
	if size > 0 {
		gl.BufferSubData(bo.Type, 0, size, gl.Ptr(data))
	}
}

// Delete releases the buffer object.
func (bo *BufferObject) Delete() {
	gl.DeleteBuffers(1, &bo.ID)
}

// NewVAO creates a new Vertex Array Object.
func NewVAO() *VertexArrayObject {
	var vaoID uint32
	gl.GenVertexArrays(1, &vaoID)

	return &VertexArrayObject{
		ID: vaoID,
	}
}

// Bind binds the vertex array object.
func (vao *VertexArrayObject) Bind() {
	gl.BindVertexArray(vao.ID)
}

// Unbind unbinds the vertex array object.
func (vao *VertexArrayObject) Unbind() {
	gl.BindVertexArray(0)
}

// Delete releases the vertex array object.
func (vao *VertexArrayObject) Delete() {
	gl.DeleteVertexArrays(1, &vao.ID)
}

// SetVertexAttribPointer sets up a float vertex attribute read from the
// currently bound array buffer and enables it.
func (vao *VertexArrayObject) SetVertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointer(index, size, xtype, normalized, stride, gl.PtrOffset(offset))
	gl.EnableVertexAttribArray(index)
}

// SetAttribDivisor makes an attribute advance once per divisor instances.
func (vao *VertexArrayObject) SetAttribDivisor(index, divisor uint32) {
	gl.VertexAttribDivisor(index, divisor)
}
