package rgbt

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// checkFace verifies the color invariants of face f and its vertices.
func (t *Triangulation) checkFace(f int) error {
	if !t.vertexLevelsCorrect(f) {
		return errors.Errorf("face %d: vertex levels %v do not match %s at level %d",
			f, t.faceVertexLevels(f), t.color(f), t.level(f))
	}
	if i, ok := t.adjacencyCorrect(f); !ok {
		return errors.Errorf("face %d: edge %d disagrees with its neighbor", f, i)
	}
	if i, ok := t.anglesCorrect(f); !ok {
		return errors.Errorf("face %d: angles around vertex %d do not close", f, t.v(f, i))
	}
	return nil
}

func (t *Triangulation) faceVertexLevels(f int) []int {
	return []int{t.vl(f, 0), t.vl(f, 1), t.vl(f, 2)}
}

// vertexLevelsCorrect checks the sorted vertex levels against the class of
// the face color.
func (t *Triangulation) vertexLevelsCorrect(f int) bool {
	vl := t.faceVertexLevels(f)
	slices.Sort(vl)
	l := t.level(f)
	switch c := t.color(f); {
	case c.IsBlue():
		return vl[0] <= l && vl[1] == l+1 && vl[2] == l+1
	case c.IsRed():
		return vl[1] <= l && vl[2] == l+1
	default:
		return vl[2] <= l
	}
}

// adjacencyCorrect checks that every edge has the same color and level in
// both faces sharing it.
func (t *Triangulation) adjacencyCorrect(f int) (int, bool) {
	own := t.edges(f)
	for i := 0; i < 3; i++ {
		g, gi := t.ff(f, i)
		other := t.edges(g)
		if own.colors[i] != other.colors[gi] || own.levels[i] != other.levels[gi] {
			return i, false
		}
	}
	return -1, true
}

// anglesCorrect checks that the angles around every interior vertex of f
// add up to a full turn of the lattice of the vertex's level.
func (t *Triangulation) anglesCorrect(f int) (int, bool) {
	for i := 0; i < 3; i++ {
		v := t.v(f, i)
		if t.verts[v].isBorder {
			continue
		}
		faces, indices, _ := t.fanOf(v)
		var total int
		for j, g := range faces {
			total += t.angle(g, indices[j])
		}
		if total != 2*t.BaseIncidentEdges(v) {
			return i, false
		}
	}
	return -1, true
}

// FaceCorrect reports whether face f satisfies the level, adjacency and
// angle invariants.
func (t *Triangulation) FaceCorrect(f int) bool {
	return t.checkFace(f) == nil
}
