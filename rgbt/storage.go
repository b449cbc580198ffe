package rgbt

import (
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// Storage is the read-only view of mesh connectivity used by consistency
// checks and by code which only inspects a triangulation.
type Storage interface {
	NumVertexSlots() int
	NumFaceSlots() int
	VertexDeleted(v int) bool
	FaceDeleted(f int) bool

	// FaceVertex returns vertex i of face f.
	FaceVertex(f, i int) int

	// FaceAdjacent returns the face across edge i of f and the edge index
	// inside that face.
	FaceAdjacent(f, i int) (int, int)

	// VertexFace returns a face containing v and the index of v in it.
	VertexFace(v int) (int, int)

	Position(v int) model3d.Coord3D
}

func (m *Mesh) NumVertexSlots() int {
	return len(m.Vertices)
}

func (m *Mesh) NumFaceSlots() int {
	return len(m.Faces)
}

func (m *Mesh) VertexDeleted(v int) bool {
	return m.Vertices[v].Deleted
}

func (m *Mesh) FaceDeleted(f int) bool {
	return m.Faces[f].Deleted
}

func (m *Mesh) FaceVertex(f, i int) int {
	return m.Faces[f].V[i]
}

func (m *Mesh) FaceAdjacent(f, i int) (int, int) {
	return m.Faces[f].FF[i], m.Faces[f].FFi[i]
}

func (m *Mesh) VertexFace(v int) (int, int) {
	return m.Vertices[v].VF, m.Vertices[v].VFi
}

func (m *Mesh) Position(v int) model3d.Coord3D {
	return m.Vertices[v].P
}

// CheckTopology verifies the adjacency of a Storage.
//
// Every live face must reference live vertices and reciprocal live
// neighbors which share the edge in the opposite direction. Every live
// vertex must reference a live face that contains it.
func CheckTopology(s Storage) error {
	referenced := make([]bool, s.NumVertexSlots())
	for f := 0; f < s.NumFaceSlots(); f++ {
		if s.FaceDeleted(f) {
			continue
		}
		for i := 0; i < 3; i++ {
			v := s.FaceVertex(f, i)
			if v < 0 || v >= s.NumVertexSlots() || s.VertexDeleted(v) {
				return errors.Errorf("face %d: invalid vertex %d at index %d", f, v, i)
			}
			if v == s.FaceVertex(f, (i+1)%3) {
				return errors.Errorf("face %d: repeated vertex %d", f, v)
			}
			referenced[v] = true

			g, j := s.FaceAdjacent(f, i)
			if g == f {
				if j != i {
					return errors.Errorf("face %d: border edge %d has index %d", f, i, j)
				}
				continue
			}
			if g < 0 || g >= s.NumFaceSlots() || s.FaceDeleted(g) || j < 0 || j > 2 {
				return errors.Errorf("face %d: invalid neighbor (%d, %d) on edge %d", f, g, j, i)
			}
			if back, backIdx := s.FaceAdjacent(g, j); back != f || backIdx != i {
				return errors.Errorf("face %d: neighbor %d on edge %d does not point back", f, g, i)
			}
			if s.FaceVertex(g, j) != s.FaceVertex(f, (i+1)%3) ||
				s.FaceVertex(g, (j+1)%3) != v {
				return errors.Errorf("face %d: edge %d does not match neighbor %d", f, i, g)
			}
		}
	}
	for v := 0; v < s.NumVertexSlots(); v++ {
		if s.VertexDeleted(v) {
			if referenced[v] {
				return errors.Errorf("vertex %d: deleted but referenced", v)
			}
			continue
		}
		if !referenced[v] {
			return errors.Errorf("vertex %d: not referenced by any face", v)
		}
		f, i := s.VertexFace(v)
		if f < 0 || f >= s.NumFaceSlots() || s.FaceDeleted(f) || i < 0 || i > 2 ||
			s.FaceVertex(f, i) != v {
			return errors.Errorf("vertex %d: invalid incident face (%d, %d)", v, f, i)
		}
	}
	return nil
}
