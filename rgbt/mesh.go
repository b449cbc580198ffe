package rgbt

import (
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

const growFactor = 2

// A Face is a triangle of a Mesh.
//
// Edge i joins V[i] to V[(i+1)%3]. FF[i] is the face on the other side of
// edge i and FFi[i] is the index of the same edge inside FF[i]. A border
// edge refers back to its own face and index.
type Face struct {
	V       [3]int
	FF      [3]int
	FFi     [3]int
	Deleted bool
}

// A Vertex is a point of a Mesh together with one incident face.
//
// VF is a face containing the vertex and VFi is the vertex's index inside
// that face.
type Vertex struct {
	P       model3d.Coord3D
	VF      int
	VFi     int
	Deleted bool
}

// Resizable is implemented by per-vertex or per-face side tables which must
// grow together with a Mesh.
type Resizable interface {
	Resize(n int)
}

// A Mesh stores vertices and faces with face-face and vertex-face adjacency.
//
// Indices are stable for the lifetime of the mesh. Deleted slots are kept in
// free lists and handed out again before the arrays grow.
type Mesh struct {
	Vertices []Vertex
	Faces    []Face

	numVertices int
	numFaces    int

	freeVertices []int
	freeFaces    []int

	vertexTables []Resizable
	faceTables   []Resizable
}

// NewMesh creates a mesh from indexed triangles.
//
// The triangles must be consistently oriented and every edge may be shared
// by at most two triangles. Points which are not referenced by any triangle
// are stored as deleted slots.
func NewMesh(points []model3d.Coord3D, faces [][3]int) (*Mesh, error) {
	m := &Mesh{
		Vertices: make([]Vertex, len(points)),
		Faces:    make([]Face, len(faces)),
	}
	for i, p := range points {
		m.Vertices[i] = Vertex{P: p, VF: -1, VFi: -1}
	}

	type edgeRef struct {
		face  int
		index int
	}
	directed := map[[2]int]edgeRef{}
	for f, verts := range faces {
		for i, v := range verts {
			if v < 0 || v >= len(points) {
				return nil, errors.Errorf("face %d: vertex index %d out of range", f, v)
			}
			if verts[(i+1)%3] == v {
				return nil, errors.Errorf("face %d: degenerate triangle", f)
			}
		}
		m.Faces[f].V = verts
		for i := 0; i < 3; i++ {
			key := [2]int{verts[i], verts[(i+1)%3]}
			if _, ok := directed[key]; ok {
				return nil, errors.Errorf("face %d: edge (%d, %d) is non-manifold or "+
					"inconsistently oriented", f, key[0], key[1])
			}
			directed[key] = edgeRef{face: f, index: i}
		}
	}

	for f := range m.Faces {
		face := &m.Faces[f]
		for i := 0; i < 3; i++ {
			a, b := face.V[i], face.V[(i+1)%3]
			if other, ok := directed[[2]int{b, a}]; ok {
				face.FF[i] = other.face
				face.FFi[i] = other.index
			} else {
				face.FF[i] = f
				face.FFi[i] = i
			}
			if m.Vertices[a].VF == -1 {
				m.Vertices[a].VF = f
				m.Vertices[a].VFi = i
			}
		}
	}
	m.numFaces = len(faces)

	incident := make([]int, len(points))
	for _, verts := range faces {
		for _, v := range verts {
			incident[v]++
		}
	}
	for v := range m.Vertices {
		vert := &m.Vertices[v]
		if vert.VF == -1 {
			vert.Deleted = true
			m.freeVertices = append(m.freeVertices, v)
			continue
		}
		m.numVertices++
		if fan, _ := m.fan(vert.VF, vert.VFi); len(fan) != incident[v] {
			return nil, errors.Errorf("vertex %d: non-manifold (%d of %d faces reachable)",
				v, len(fan), incident[v])
		}
	}

	return m, nil
}

// NumVertices returns the number of live vertices.
func (m *Mesh) NumVertices() int {
	return m.numVertices
}

// NumFaces returns the number of live faces.
func (m *Mesh) NumFaces() int {
	return m.numFaces
}

// RegisterVertexTable adds a side table which is resized whenever the vertex
// array grows. It is resized immediately to the current length.
func (m *Mesh) RegisterVertexTable(t Resizable) {
	t.Resize(len(m.Vertices))
	m.vertexTables = append(m.vertexTables, t)
}

// RegisterFaceTable is like RegisterVertexTable, but for faces.
func (m *Mesh) RegisterFaceTable(t Resizable) {
	t.Resize(len(m.Faces))
	m.faceTables = append(m.faceTables, t)
}

// newFace takes a face from the free list.
//
// When the free list has no more than otherNeeded entries, the face array
// grows first, so that the following otherNeeded calls will not grow it
// again.
func (m *Mesh) newFace(otherNeeded int) int {
	if len(m.freeFaces) <= otherNeeded {
		count := growFactor*len(m.Faces) + otherNeeded + 1
		start := len(m.Faces)
		for i := 0; i < count; i++ {
			m.Faces = append(m.Faces, Face{Deleted: true})
			m.freeFaces = append(m.freeFaces, start+i)
		}
		for _, t := range m.faceTables {
			t.Resize(len(m.Faces))
		}
	}
	f := m.freeFaces[0]
	m.freeFaces = m.freeFaces[1:]
	if !m.Faces[f].Deleted {
		panic("free face is in use")
	}
	m.Faces[f] = Face{}
	m.numFaces++
	return f
}

func (m *Mesh) newVertex() int {
	if len(m.freeVertices) == 0 {
		count := growFactor*len(m.Vertices) + 1
		start := len(m.Vertices)
		for i := 0; i < count; i++ {
			m.Vertices = append(m.Vertices, Vertex{Deleted: true, VF: -1, VFi: -1})
			m.freeVertices = append(m.freeVertices, start+i)
		}
		for _, t := range m.vertexTables {
			t.Resize(len(m.Vertices))
		}
	}
	v := m.freeVertices[0]
	m.freeVertices = m.freeVertices[1:]
	if !m.Vertices[v].Deleted {
		panic("free vertex is in use")
	}
	m.Vertices[v] = Vertex{VF: -1, VFi: -1}
	m.numVertices++
	return v
}

func (m *Mesh) deleteFace(f int) {
	m.Faces[f].Deleted = true
	m.freeFaces = append(m.freeFaces, f)
	m.numFaces--
}

func (m *Mesh) deleteVertex(v int) {
	m.Vertices[v].Deleted = true
	m.freeVertices = append(m.freeVertices, v)
	m.numVertices--
}

// indexOf returns the index of v inside face f, or -1.
func (m *Mesh) indexOf(f, v int) int {
	for i, x := range m.Faces[f].V {
		if x == v {
			return i
		}
	}
	return -1
}

// IsBorder checks if edge i of face f is on the boundary.
func (m *Mesh) IsBorder(f, i int) bool {
	return m.Faces[f].FF[i] == f
}

// fan returns the faces around vertex V[i] of face f in rotational order,
// where each face is followed by the face across its incoming edge
// (V[(k+2)%3] to V[k]).
//
// For an open fan, the first face has its outgoing edge on the boundary and
// the last face has its incoming edge on the boundary.
func (m *Mesh) fan(f, i int) (faces []int, closed bool) {
	v := m.Faces[f].V[i]
	limit := len(m.Faces) + 1

	start := f
	cur := f
	for steps := 0; ; steps++ {
		if steps > limit {
			panic("corrupt adjacency around vertex")
		}
		k := m.indexOf(cur, v)
		prev := m.Faces[cur].FF[k]
		if prev == cur {
			start = cur
			break
		}
		cur = prev
		if cur == f {
			closed = true
			break
		}
	}

	cur = start
	for steps := 0; ; steps++ {
		if steps > limit {
			panic("corrupt adjacency around vertex")
		}
		faces = append(faces, cur)
		k := m.indexOf(cur, v)
		next := m.Faces[cur].FF[(k+2)%3]
		if next == cur || next == start {
			break
		}
		cur = next
	}
	return faces, closed
}

// neighbors returns the vertices sharing an edge with V[i] of face f, in
// the rotational order of fan.
func (m *Mesh) neighbors(f, i int) []int {
	faces, closed := m.fan(f, i)
	v := m.Faces[f].V[i]
	res := make([]int, 0, len(faces)+1)
	for _, g := range faces {
		k := m.indexOf(g, v)
		res = append(res, m.Faces[g].V[(k+1)%3])
	}
	if !closed {
		last := faces[len(faces)-1]
		k := m.indexOf(last, v)
		res = append(res, m.Faces[last].V[(k+2)%3])
	}
	return res
}
