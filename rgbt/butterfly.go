package rgbt

import (
	"math"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// ButterflyScheme places new vertices with the modified butterfly
// interpolating subdivision scheme. Existing vertices never move.
type ButterflyScheme struct {
	t *Triangulation
}

// NewButterflyScheme creates a scheme for a single Triangulation.
func NewButterflyScheme() *ButterflyScheme {
	return &ButterflyScheme{}
}

func (b *ButterflyScheme) Name() string {
	return "butterfly"
}

func (b *ButterflyScheme) init(t *Triangulation) error {
	if b.t != nil && b.t != t {
		return errors.New("butterfly scheme already used by another triangulation")
	}
	b.t = t
	return nil
}

func (b *ButterflyScheme) prepare(f, e int) {
	b.t.refineAround(f, e, nil)
}

func (b *ButterflyScheme) position(f, e int) model3d.Coord3D {
	t := b.t
	v1, v2 := t.v(f, e), t.v(f, e+1)
	level := t.edgeLevel(f, e)
	if t.isBorderEdge(f, e) {
		if p, ok := b.borderStencil(v1, v2, level); ok {
			return p
		}
	} else if p, ok := b.interiorStencil(f, e, level); ok {
		return p
	}
	Logger().Warn("butterfly stencil unavailable, using midpoint", "v1", v1, "v2", v2,
		"level", level)
	return b.pos(v1).Mid(b.pos(v2))
}

func (b *ButterflyScheme) inserted(v int) {}

func (b *ButterflyScheme) removing(v int) {}

func (b *ButterflyScheme) removed(neighbors []int) {}

func (b *ButterflyScheme) pos(v int) model3d.Coord3D {
	return b.t.mesh.Vertices[v].P
}

func (b *ButterflyScheme) regular(v int) bool {
	return !b.t.verts[v].isBorder && b.t.BaseIncidentEdges(v) == 6
}

func (b *ButterflyScheme) borderStencil(v1, v2, level int) (model3d.Coord3D, bool) {
	o1, ok1 := b.t.borderNeighbor(v1, v2, level)
	o2, ok2 := b.t.borderNeighbor(v2, v1, level)
	if !ok1 || !ok2 {
		return model3d.Coord3D{}, false
	}
	return b.pos(v1).Add(b.pos(v2)).Scale(9.0 / 16).
		Sub(b.pos(o1).Add(b.pos(o2)).Scale(1.0 / 16)), true
}

func (b *ButterflyScheme) interiorStencil(f, e, level int) (model3d.Coord3D, bool) {
	t := b.t
	v1, v2, opposite := t.stencilVertices(f, e)
	r1, r2 := b.regular(v1), b.regular(v2)
	border1, border2 := t.verts[v1].isBorder, t.verts[v2].isBorder
	switch {
	case r1 && r2:
		return b.regularStencil(v1, v2, opposite, level)
	case border1 && border2:
		return b.diamondStencil(v1, v2, opposite)
	case border1:
		return b.extraordinaryStencil(v2, v1, level)
	case border2:
		return b.extraordinaryStencil(v1, v2, level)
	case r1:
		return b.extraordinaryStencil(v2, v1, level)
	case r2:
		return b.extraordinaryStencil(v1, v2, level)
	}
	p1, ok1 := b.extraordinaryStencil(v1, v2, level)
	p2, ok2 := b.extraordinaryStencil(v2, v1, level)
	if !ok1 || !ok2 {
		return model3d.Coord3D{}, false
	}
	return p1.Mid(p2), true
}

// regularStencil is the eight point butterfly between two vertices of
// valence six.
func (b *ButterflyScheme) regularStencil(v1, v2 int, opposite []int,
	level int) (model3d.Coord3D, bool) {
	if len(opposite) != 2 {
		return model3d.Coord3D{}, false
	}
	var wings model3d.Coord3D
	for _, end := range [2][2]int{{v1, v2}, {v2, v1}} {
		for _, rot := range []int{4, -4} {
			w, ok := b.t.latticeNeighbor(end[0], end[1], rot, level)
			if !ok {
				return model3d.Coord3D{}, false
			}
			wings = wings.Add(b.pos(w))
		}
	}
	res := b.pos(v1).Add(b.pos(v2)).Scale(0.5)
	res = res.Add(b.pos(opposite[0]).Add(b.pos(opposite[1])).Scale(1.0 / 8))
	return res.Sub(wings.Scale(1.0 / 16)), true
}

// diamondStencil is the butterfly without its wings, for an interior edge
// whose endpoints both lie on the border. The wing weight moves to the
// endpoints, which keeps flat meshes flat.
func (b *ButterflyScheme) diamondStencil(v1, v2 int, opposite []int) (model3d.Coord3D, bool) {
	if len(opposite) != 2 {
		return model3d.Coord3D{}, false
	}
	res := b.pos(v1).Add(b.pos(v2)).Scale(3.0 / 8)
	return res.Add(b.pos(opposite[0]).Add(b.pos(opposite[1])).Scale(1.0 / 8)), true
}

// extraordinaryStencil uses the ring of an interior vertex c of arbitrary
// valence, starting from its neighbor toward.
func (b *ButterflyScheme) extraordinaryStencil(c, toward, level int) (model3d.Coord3D, bool) {
	k := b.t.BaseIncidentEdges(c)
	weights := butterflyWeights(k)
	res := b.pos(c).Scale(3.0 / 4)
	for i, w := range weights {
		if w == 0 {
			continue
		}
		n, ok := b.t.latticeNeighbor(c, toward, 2*i, level)
		if !ok {
			return model3d.Coord3D{}, false
		}
		res = res.Add(b.pos(n).Scale(w))
	}
	return res, true
}

// butterflyWeights returns the weights of the k neighbors of an
// extraordinary vertex, starting at the far end of the split edge. The
// vertex itself has weight 3/4.
func butterflyWeights(k int) []float64 {
	switch k {
	case 3:
		return []float64{5.0 / 12, -1.0 / 12, -1.0 / 12}
	case 4:
		return []float64{3.0 / 8, 0, -1.0 / 8, 0}
	}
	res := make([]float64, k)
	for i := range res {
		x := 2 * math.Pi * float64(i) / float64(k)
		res[i] = (0.25 + math.Cos(x) + 0.5*math.Cos(2*x)) / float64(k)
	}
	return res
}
