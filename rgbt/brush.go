package rgbt

import "math"

// Criteria selects the edges and vertices changed by the brush operations.
// A nil field is ignored.
type Criteria struct {
	// Length is the longest edge to keep. Longer edges are split, and
	// vertices whose edges are all shorter are removed.
	Length *float64

	// Level is the level to refine to. Edges below it are split, and
	// vertices above it are removed.
	Level *int
}

// ProcessEdge splits the edge joining v1 and v2, with any splits it depends
// on, if the edge meets the criteria. It returns true if the mesh changed.
func (t *Triangulation) ProcessEdge(v1, v2 int, c Criteria) bool {
	if !t.liveVertex(v1) || !t.liveVertex(v2) {
		return false
	}
	f, e, ok := t.IsValidEdge(v1, v2)
	if !ok || !t.edgeToSplit(f, e, c) {
		return false
	}
	var split bool
	changed := t.record(func() {
		split = t.recursiveEdgeSplit(v1, v2)
	})
	t.debugCheck("edge brush")
	return split || len(changed) > 0
}

// ProcessVertex removes v if it meets the criteria and some operation can
// remove it. It returns true if the vertex was removed.
func (t *Triangulation) ProcessVertex(v int, c Criteria) bool {
	if !t.liveVertex(v) || !t.vertexToRemove(v, c) {
		return false
	}
	if t.classifyRemoval(v) == removalNone {
		return false
	}
	removed := t.vertexRemoval(v)
	t.debugCheck("vertex brush")
	return removed
}

func (t *Triangulation) edgeToSplit(f, e int, c Criteria) bool {
	if t.edgeColor(f, e) != EdgeGreen {
		return false
	}
	if c.Length != nil {
		p1 := t.mesh.Vertices[t.v(f, e)].P
		p2 := t.mesh.Vertices[t.v(f, e+1)].P
		if p1.Dist(p2) > *c.Length {
			return true
		}
	}
	return c.Level != nil && t.edgeLevel(f, e) < *c.Level
}

func (t *Triangulation) vertexToRemove(v int, c Criteria) bool {
	if c.Length != nil && t.longestEdge(v) < *c.Length {
		return true
	}
	return c.Level != nil && t.verts[v].level > *c.Level
}

func (t *Triangulation) longestEdge(v int) float64 {
	p := t.mesh.Vertices[v].P
	var res float64
	sp, _ := t.spokes(v)
	for _, s := range sp {
		res = math.Max(res, p.Dist(t.mesh.Vertices[s.far].P))
	}
	return res
}

// CommonEdge finds the edge shared by faces f0 and f1, returning its index
// inside f0.
func (t *Triangulation) CommonEdge(f0, f1 int) (int, bool) {
	if !t.liveFace(f0, 0) || !t.liveFace(f1, 0) || f0 == f1 {
		return -1, false
	}
	for i := 0; i < 3; i++ {
		if g, _ := t.ff(f0, i); g == f1 {
			return i, true
		}
	}
	return -1, false
}

// CommonVertex finds the vertex shared by all of the given faces.
func (t *Triangulation) CommonVertex(faces []int) (int, bool) {
	if len(faces) == 0 || !t.liveFace(faces[0], 0) {
		return -1, false
	}
	for i := 0; i < 3; i++ {
		v := t.v(faces[0], i)
		shared := true
		for _, f := range faces[1:] {
			if !t.liveFace(f, 0) || !t.containsVertex(f, v) {
				shared = false
				break
			}
		}
		if shared {
			return v, true
		}
	}
	return -1, false
}

// SplitCommonEdge recursively splits the edge shared by two faces.
func (t *Triangulation) SplitCommonEdge(f0, f1 int) (bool, error) {
	e, ok := t.CommonEdge(f0, f1)
	if !ok {
		return false, opError(NotLegalHere, "split common edge", f0, -1)
	}
	return t.RecursiveEdgeSplit(t.v(f0, e), t.v(f0, e+1))
}

// RemoveCommonVertex removes the vertex shared by the given faces.
func (t *Triangulation) RemoveCommonVertex(faces []int) error {
	v, ok := t.CommonVertex(faces)
	if !ok {
		f := -1
		if len(faces) > 0 {
			f = faces[0]
		}
		return opError(NotLegalHere, "remove common vertex", f, -1)
	}
	return t.RemoveVertex(v)
}
