package rgbt

import (
	"math"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
	"golang.org/x/exp/slices"
)

// loopVertex is the control point data of one vertex.
type loopVertex struct {
	// pl is the position at the level the vertex was created at, and pinf
	// is its limit position once readyInf is set.
	pl       model3d.Coord3D
	pinf     model3d.Coord3D
	readyInf bool

	// taken lists the vertices whose positions were sampled for pinf, and
	// given the vertices which sampled this one.
	taken []int
	given []int
}

// LoopScheme is an approximating scheme built on Loop subdivision.
//
// Every vertex keeps its position at the level it was created at and its
// limit position. The limit position is computed once all the neighbors
// of the vertex in the lattice of its level exist, and the displayed
// position of a vertex moves toward it as the mesh around the vertex gets
// finer.
type LoopScheme struct {
	t     *Triangulation
	verts sideTable[loopVertex]
}

// NewLoopScheme creates a scheme for a single Triangulation.
func NewLoopScheme() *LoopScheme {
	return &LoopScheme{}
}

func (l *LoopScheme) Name() string {
	return "loop"
}

// LimitPosition returns the limit position of a vertex, if all of the
// samples it depends on are available.
func (l *LoopScheme) LimitPosition(v int) (model3d.Coord3D, bool) {
	if v < 0 || v >= len(l.verts) || l.t.mesh.Vertices[v].Deleted {
		return model3d.Coord3D{}, false
	}
	lv := &l.verts[v]
	return lv.pinf, lv.readyInf
}

// LevelPosition returns the position of a vertex at the level it was
// created at.
func (l *LoopScheme) LevelPosition(v int) model3d.Coord3D {
	return l.verts[v].pl
}

func (l *LoopScheme) init(t *Triangulation) error {
	if l.t != nil {
		return errors.New("loop scheme already used by another triangulation")
	}
	l.t = t
	t.mesh.RegisterVertexTable(&l.verts)
	for v, vert := range t.mesh.Vertices {
		if !vert.Deleted {
			l.verts[v] = loopVertex{pl: vert.P}
		}
	}
	for v, vert := range t.mesh.Vertices {
		if vert.Deleted {
			continue
		}
		sp, closed := t.spokes(v)
		if len(sp) == 0 {
			return errors.Errorf("vertex %d has no edges", v)
		}
		lv := &l.verts[v]
		if closed {
			n := len(sp)
			chi := loopChi(n)
			lv.pinf = lv.pl.Scale(1 - float64(n)*chi)
			for _, s := range sp {
				lv.pinf = lv.pinf.Add(l.verts[s.far].pl.Scale(chi))
			}
		} else {
			a, b := sp[0].far, sp[len(sp)-1].far
			lv.pinf = borderLimit(l.verts[a].pl, lv.pl, l.verts[b].pl)
		}
		lv.readyInf = true
	}
	return nil
}

func (l *LoopScheme) prepare(f, e int) {
	l.t.refineAround(f, e, func(v, minLevel int) bool {
		return l.t.verts[v].level == minLevel-1 || l.verts[v].readyInf
	})
}

func (l *LoopScheme) position(f, e int) model3d.Coord3D {
	t := l.t
	level := t.edgeLevel(f, e)
	a, b, opposite := t.stencilVertices(f, e)
	pa, pb := l.pAt(a, level), l.pAt(b, level)
	if len(opposite) != 2 {
		return pa.Mid(pb)
	}
	pc, pd := l.pAt(opposite[0], level), l.pAt(opposite[1], level)
	return pa.Add(pb).Scale(3.0 / 8).Add(pc.Add(pd).Scale(1.0 / 8))
}

func (l *LoopScheme) inserted(v int) {
	l.verts[v] = loopVertex{pl: l.t.mesh.Vertices[v].P}
	ring := append([]int{v}, l.t.VV(v, false)...)
	l.gather(ring)
	for _, x := range ring {
		l.updateP(x)
	}
}

func (l *LoopScheme) removing(v int) {
	lv := &l.verts[v]
	for _, dest := range lv.given {
		d := &l.verts[dest]
		if i := slices.Index(d.taken, v); i >= 0 {
			d.taken = slices.Delete(d.taken, i, i+1)
		}
		if d.readyInf {
			Logger().Debug("limit position invalidated", "vertex", dest, "removed", v)
		}
		d.readyInf = false
	}
	for _, src := range lv.taken {
		s := &l.verts[src]
		if i := slices.Index(s.given, v); i >= 0 {
			s.given = slices.Delete(s.given, i, i+1)
		}
	}
	*lv = loopVertex{pl: lv.pl}
}

func (l *LoopScheme) removed(neighbors []int) {
	l.gather(neighbors)
	for _, n := range neighbors {
		l.updateP(n)
	}
}

// gather records every contribution which became possible along the edges
// of the given vertices.
func (l *LoopScheme) gather(vs []int) {
	for _, x := range vs {
		if l.t.mesh.Vertices[x].Deleted {
			continue
		}
		sp, _ := l.t.spokes(x)
		for _, s := range sp {
			l.addContribution(x, s.far, s.face, s.edge)
			l.addContribution(s.far, x, s.face, s.edge)
		}
	}
}

// addContribution records src as a neighbor of dest in the lattice of the
// level of dest, joined by edge e of face f.
//
// Level 0 vertices are left alone, since their limit positions are known
// from the start.
func (l *LoopScheme) addContribution(dest, src, f, e int) {
	t := l.t
	info := t.verts[dest]
	if info.level == 0 || t.verts[src].level > info.level {
		return
	}
	if t.edgeColor(f, e) != EdgeGreen || t.edgeLevel(f, e) != info.level {
		return
	}
	if info.isBorder && !t.isBorderEdge(f, e) {
		return
	}
	d := &l.verts[dest]
	if d.readyInf || slices.Contains(d.taken, src) {
		return
	}
	d.taken = append(d.taken, src)
	s := &l.verts[src]
	s.given = append(s.given, dest)
	if len(d.taken) == l.expected(dest) {
		l.finalize(dest)
	}
}

func (l *LoopScheme) expected(v int) int {
	if l.t.verts[v].isBorder {
		return 2
	}
	return l.t.BaseIncidentEdges(v)
}

func (l *LoopScheme) finalize(v int) {
	level := l.t.verts[v].level
	d := &l.verts[v]
	taken := slices.Clone(d.taken)
	slices.Sort(taken)
	if l.t.verts[v].isBorder {
		d.pinf = borderLimit(l.pAt(taken[0], level), d.pl, l.pAt(taken[1], level))
	} else {
		n := len(taken)
		chi := loopChi(n)
		d.pinf = d.pl.Scale(1 - float64(n)*chi)
		for _, src := range taken {
			d.pinf = d.pinf.Add(l.pAt(src, level).Scale(chi))
		}
	}
	d.readyInf = true
	l.updateP(v)
}

// pAt returns the position of v in the lattice of the given level.
func (l *LoopScheme) pAt(v, level int) model3d.Coord3D {
	lv := &l.verts[v]
	k := level - l.t.verts[v].level
	if k <= 0 {
		return lv.pl
	}
	if !lv.readyInf {
		Logger().Debug("limit position not ready", "vertex", v, "level", level)
		return lv.pl
	}
	lambda := loopLambda(l.expected(v))
	if l.t.verts[v].isBorder {
		lambda = 0.5
	}
	return lv.pinf.Add(lv.pl.Sub(lv.pinf).Scale(math.Pow(lambda, float64(k))))
}

// updateP moves v to its position at the finest level around it.
func (l *LoopScheme) updateP(v int) {
	if l.t.mesh.Vertices[v].Deleted {
		return
	}
	l.t.mesh.Vertices[v].P = l.pAt(v, l.t.displayLevel(v))
}

func borderLimit(a, p, b model3d.Coord3D) model3d.Coord3D {
	return a.Add(b).Scale(1.0 / 6).Add(p.Scale(2.0 / 3))
}

func loopBeta(n int) float64 {
	c := 3.0/8 + math.Cos(2*math.Pi/float64(n))/4
	return (5.0/8 - c*c) / float64(n)
}

func loopChi(n int) float64 {
	return 1 / (3/(8*loopBeta(n)) + float64(n))
}

func loopLambda(n int) float64 {
	return 5.0/8 - float64(n)*loopBeta(n)
}
