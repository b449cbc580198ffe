package rgbt

import "github.com/unixpickle/model3d/model3d"

// A Scheme positions the vertices inserted by edge splits.
//
// The methods are called by a Triangulation in this order: prepare before a
// split is attempted, position right before the mesh changes, and inserted
// once the new faces are colored. Vertex removal calls removing before the
// mesh changes and removed afterwards with the surviving neighbors.
//
// Schemes are created with NewButterflyScheme or NewLoopScheme, and each
// instance serves a single Triangulation.
type Scheme interface {
	// Name returns a short identifier such as "butterfly".
	Name() string

	init(t *Triangulation) error
	prepare(f, e int)
	position(f, e int) model3d.Coord3D
	inserted(v int)
	removing(v int)
	removed(neighbors []int)
}

// stencilVertices returns the endpoints of edge e of face f and, for an
// interior edge, the vertices opposite to it on both sides in the lattice
// of the edge level.
func (t *Triangulation) stencilVertices(f, e int) (a, b int, opposite []int) {
	a, b = t.v(f, e), t.v(f, e+1)
	opposite = append(opposite, t.oppositeVertex(f, e))
	if !t.isBorderEdge(f, e) {
		g, gi := t.ff(f, e)
		opposite = append(opposite, t.oppositeVertex(g, gi))
	}
	return
}

// refineAround runs the prerequisite splits which make the lattice of the
// new vertex level available around the endpoints of an edge and the
// vertices opposite to it. Vertices for which skip returns true are left
// alone.
func (t *Triangulation) refineAround(f, e int, skip func(v, minLevel int) bool) {
	if t.color(f).IsBlue() {
		return
	}
	if g, _ := t.ff(f, e); t.color(g).IsBlue() {
		return
	}
	minLevel := t.edgeLevel(f, e) + 1
	a, b, opposite := t.stencilVertices(f, e)
	v1, v2 := a, b
	for _, v := range append([]int{a, b}, opposite...) {
		if t.mesh.Vertices[v].Deleted || (skip != nil && skip(v, minLevel)) {
			continue
		}
		t.splitGreenEdgeIfNeeded(v, minLevel)
		t.splitRedEdgeIfNeeded(v, minLevel)
		if _, _, ok := t.directedEdge(v1, v2); !ok {
			return
		}
	}
}
