package openglhelper

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Instance places one copy of a mesh: a translation, a per-axis scale and a
// flat color.
type Instance struct {
	Offset mgl32.Vec3
	Scale  mgl32.Vec3
	Color  mgl32.Vec3
}

const floatsPerInstance = 9

// InstancedMesh draws many copies of the same geometry with one call.
type InstancedMesh struct {
	vao       *VertexArrayObject
	vbo       *BufferObject
	ebo       *BufferObject
	instances *BufferObject
	indices   int32
	count     int32
	scratch   []float32
}

// NewInstancedMesh creates a mesh from interleaved position and normal
// vertices. Attributes 0 and 1 are per vertex, 2 to 4 are per instance.
func NewInstancedMesh(vertices []float32, indices []uint32, usage BufferUsage) *InstancedMesh {
	vao := NewVAO()
	vao.Bind()

	vbo := NewVBO(vertices, StaticDraw)
	ebo := NewEBO(indices, StaticDraw)

	// Position attribute (3 floats)
	vao.SetVertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, 0)
	// Normal attribute (3 floats)
	vao.SetVertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, 3*4)

	instances := NewBufferObject(gl.ARRAY_BUFFER, 0, nil, usage)
	for i := uint32(0); i < 3; i++ {
		vao.SetVertexAttribPointer(2+i, 3, gl.FLOAT, false, floatsPerInstance*4, int(i)*3*4)
		vao.SetAttribDivisor(2+i, 1)
	}

	vao.Unbind()

	return &InstancedMesh{
		vao:       vao,
		vbo:       vbo,
		ebo:       ebo,
		instances: instances,
		indices:   int32(len(indices)),
	}
}

// SetInstances uploads the instance list drawn by Draw.
func (m *InstancedMesh) SetInstances(instances []Instance) {
	m.scratch = m.scratch[:0]
	for _, in := range instances {
		m.scratch = append(m.scratch,
			in.Offset[0], in.Offset[1], in.Offset[2],
			in.Scale[0], in.Scale[1], in.Scale[2],
			in.Color[0], in.Color[1], in.Color[2])
	}
	m.instances.Upload(m.scratch)
	m.count = int32(len(instances))
}

// Draw renders every instance with the currently bound shader.
func (m *InstancedMesh) Draw() {
	if m.count == 0 {
		return
	}
	m.vao.Bind()
	gl.DrawElementsInstanced(gl.TRIANGLES, m.indices, gl.UNSIGNED_INT, nil, m.count)
	m.vao.Unbind()
}

// Delete releases all resources
func (m *InstancedMesh) Delete() {
	m.vao.Delete()
	m.vbo.Delete()
	m.ebo.Delete()
	m.instances.Delete()
}

// NewCube creates a unit cube centered on the origin.
func NewCube(usage BufferUsage) *InstancedMesh {
	// Cube vertices: position (3), normal (3)
	vertices := []float32{
		// Front face
		-0.5, -0.5, 0.5, 0.0, 0.0, 1.0,
		0.5, -0.5, 0.5, 0.0, 0.0, 1.0,
		0.5, 0.5, 0.5, 0.0, 0.0, 1.0,
		-0.5, 0.5, 0.5, 0.0, 0.0, 1.0,

		// Back face
		-0.5, -0.5, -0.5, 0.0, 0.0, -1.0,
		-0.5, 0.5, -0.5, 0.0, 0.0, -1.0,
		0.5, 0.5, -0.5, 0.0, 0.0, -1.0,
		0.5, -0.5, -0.5, 0.0, 0.0, -1.0,

		// Top face
		-0.5, 0.5, -0.5, 0.0, 1.0, 0.0,
		-0.5, 0.5, 0.5, 0.0, 1.0, 0.0,
		0.5, 0.5, 0.5, 0.0, 1.0, 0.0,
		0.5, 0.5, -0.5, 0.0, 1.0, 0.0,

		// Bottom face
		-0.5, -0.5, -0.5, 0.0, -1.0, 0.0,
		0.5, -0.5, -0.5, 0.0, -1.0, 0.0,
		0.5, -0.5, 0.5, 0.0, -1.0, 0.0,
		-0.5, -0.5, 0.5, 0.0, -1.0, 0.0,

		// Right face
		0.5, -0.5, -0.5, 1.0, 0.0, 0.0,
		0.5, 0.5, -0.5, 1.0, 0.0, 0.0,
		0.5, 0.5, 0.5, 1.0, 0.0, 0.0,
		0.5, -0.5, 0.5, 1.0, 0.0, 0.0,

		// Left face
		-0.5, -0.5, -0.5, -1.0, 0.0, 0.0,
		-0.5, -0.5, 0.5, -1.0, 0.0, 0.0,
		-0.5, 0.5, 0.5, -1.0, 0.0, 0.0,
		-0.5, 0.5, -0.5, -1.0, 0.0, 0.0,
	}

	indices := []uint32{
		0, 1, 2, 2, 3, 0, // Front face
		4, 5, 6, 6, 7, 4, // Back face
		8, 9, 10, 10, 11, 8, // Top face
		12, 13, 14, 14, 15, 12, // Bottom face
		16, 17, 18, 18, 19, 16, // Right face
		20, 21, 22, 22, 23, 20, // Left face
	}

	return NewInstancedMesh(vertices, indices, usage)
}
