package rgbt

import "github.com/unixpickle/essentials"

// maxWalkSteps bounds walks through RED and BLUE faces, which only cross a
// handful of faces on a valid triangulation.
const maxWalkSteps = 64

// fanOf returns the faces around v in rotational order and the index of v
// inside each of them.
func (t *Triangulation) fanOf(v int) (faces, indices []int, closed bool) {
	vert := &t.mesh.Vertices[v]
	faces, closed = t.mesh.fan(vert.VF, vert.VFi)
	indices = make([]int, len(faces))
	for i, f := range faces {
		indices[i] = t.mesh.indexOf(f, v)
	}
	return
}

// VF returns the faces around v in rotational order, together with the
// index of v inside each face.
//
// For a border vertex, the first face has its outgoing edge on the border
// and the last face has its incoming edge on the border.
func (t *Triangulation) VF(v int) (faces, indices []int) {
	faces, indices, _ = t.fanOf(v)
	return
}

// A spoke is an edge leaving a vertex, identified by a face containing it.
type spoke struct {
	face int
	edge int
	far  int
}

// spokes returns the edges around v in the rotational order of fanOf.
// Spoke i is the outgoing edge of face i; an open fan has one extra spoke,
// the incoming edge of its last face.
func (t *Triangulation) spokes(v int) (res []spoke, closed bool) {
	faces, indices, closed := t.fanOf(v)
	for i, f := range faces {
		k := indices[i]
		res = append(res, spoke{face: f, edge: k, far: t.v(f, k+1)})
	}
	if !closed {
		f := faces[len(faces)-1]
		k := indices[len(faces)-1]
		res = append(res, spoke{face: f, edge: (k + 2) % 3, far: t.v(f, k+2)})
	}
	return res, closed
}

// VV returns the neighbors of v in rotational order.
//
// If onlyGreen is set, only neighbors joined to v by a GREEN edge whose
// level exceeds the level of v are included.
func (t *Triangulation) VV(v int, onlyGreen bool) []int {
	sp, _ := t.spokes(v)
	res := make([]int, 0, len(sp))
	for _, s := range sp {
		if onlyGreen {
			e := t.edges(s.face)
			if e.colors[s.edge] != EdgeGreen || e.levels[s.edge] <= t.verts[v].level {
				continue
			}
		}
		res = append(res, s.far)
	}
	return res
}

// isVertexInternal checks if the fan around v is closed.
func (t *Triangulation) isVertexInternal(v int) bool {
	_, _, closed := t.fanOf(v)
	return closed
}

// IsValidEdge finds a face containing both v1 and v2 and the index of the
// edge joining them.
//
// If a face has the directed edge from v1 to v2, it is preferred, and then
// v1 is vertex i of f.
func (t *Triangulation) IsValidEdge(v1, v2 int) (f, i int, ok bool) {
	if v1 == v2 || t.mesh.Vertices[v1].Deleted || t.mesh.Vertices[v2].Deleted {
		return -1, -1, false
	}
	if f, i, ok := t.directedEdge(v1, v2); ok {
		return f, i, true
	}
	if f, i, ok := t.directedEdge(v2, v1); ok {
		return f, i, true
	}
	return -1, -1, false
}

// directedEdge finds the face containing the edge from v1 to v2.
func (t *Triangulation) directedEdge(v1, v2 int) (int, int, bool) {
	if t.mesh.Vertices[v1].Deleted {
		return -1, -1, false
	}
	faces, indices, _ := t.fanOf(v1)
	for j, f := range faces {
		if t.v(f, indices[j]+1) == v2 {
			return f, indices[j], true
		}
	}
	return -1, -1, false
}

// BaseIncidentEdges returns the number of edges a vertex has in the regular
// lattice of its level: its base arity at level 0 and 6 otherwise.
func (t *Triangulation) BaseIncidentEdges(v int) int {
	info := t.verts[v]
	if info.level > 0 {
		return 6
	}
	return info.baseArity
}

// oppositeVertex returns the vertex opposite to edge i of face f inside the
// GREEN triangle of the edge's level which f belongs to, crossing RED and
// BLUE faces as needed. The face must be GREEN or RED.
func (t *Triangulation) oppositeVertex(f, i int) int {
	for step := 0; step < maxWalkSteps; step++ {
		c := t.color(f)
		if c.IsGreen() {
			return t.v(f, i+2)
		}
		if !c.IsRed() {
			panic("opposite vertex requested on a blue face")
		}
		rei := t.redEdge(f)
		t1, t1i := t.ff(f, rei)
		if t.color(t1).IsRed() {
			return t.v(t1, t1i+2)
		}
		if t.containsVertex(t1, t.v(f, i+1)) {
			f, i = t.ff(t1, t1i+2)
		} else {
			f, i = t.ff(t1, t1i+1)
		}
	}
	panic("opposite vertex walk did not terminate")
}

// displayLevel is the highest level among the edges around v.
func (t *Triangulation) displayLevel(v int) int {
	sp, _ := t.spokes(v)
	level := t.verts[v].level
	for _, s := range sp {
		level = essentials.MaxInt(level, t.edgeLevel(s.face, s.edge))
	}
	return level
}
