package openglhelper

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/leterax/go-lair/pkg/geometry"
)

// Vertex attribute locations shared with the shaders
const (
	AttribPosition uint32 = 0
	AttribNormal   uint32 = 1
	AttribTexCoord uint32 = 2
)

// Mesh is an indexed triangle list living on the GPU
type Mesh struct {
	vao   *VertexArrayObject
	vbo   *BufferObject
	ebo   *BufferObject
	count int32
}

// NewMesh uploads a CPU mesh. Vertices use the position/normal/uv layout of geometry.Mesh.
func NewMesh(m geometry.Mesh) (*Mesh, error) {
	if len(m.Indices) == 0 || len(m.Vertices) == 0 {
		return nil, fmt.Errorf("empty mesh: %d vertices, %d indices", m.VertexCount(), len(m.Indices))
	}
	if len(m.Vertices)%geometry.FloatsPerVertex != 0 {
		return nil, fmt.Errorf("vertex data length %d is not a multiple of %d", len(m.Vertices), geometry.FloatsPerVertex)
	}

	vao := NewVAO()
	vao.Bind()

	vbo := NewVBO(m.Vertices, StaticDraw)
	ebo := NewEBO(m.Indices, StaticDraw)

	const stride = geometry.FloatsPerVertex * 4
	vao.SetVertexAttribPointer(AttribPosition, 3, gl.FLOAT, false, stride, 0)
	vao.SetVertexAttribPointer(AttribNormal, 3, gl.FLOAT, false, stride, 3*4)
	vao.SetVertexAttribPointer(AttribTexCoord, 2, gl.FLOAT, false, stride, 6*4)

	vao.Unbind()

	return &Mesh{
		vao:   vao,
		vbo:   vbo,
		ebo:   ebo,
		count: int32(len(m.Indices)),
	}, nil
}

// Draw issues one indexed draw call with whatever program is in use
func (m *Mesh) Draw() {
	m.vao.Bind()
	gl.DrawElements(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, nil)
	m.vao.Unbind()
}

func (m *Mesh) Delete() {
	m.vao.Delete()
	m.vbo.Delete()
	m.ebo.Delete()
}
