package rgbt

// A vertexPair is an unordered pair of vertex indices, stored sorted.
type vertexPair [2]int

func newVertexPair(a, b int) vertexPair {
	if a > b {
		a, b = b, a
	}
	return vertexPair{a, b}
}

// redEdgePair returns the endpoints of the red edge of a RED or BLUE face.
func (t *Triangulation) redEdgePair(f int) vertexPair {
	i := t.redEdge(f)
	return newVertexPair(t.v(f, i), t.v(f, i+1))
}

func (t *Triangulation) containsEdge(f int, vp vertexPair) bool {
	return t.containsVertex(f, vp[0]) && t.containsVertex(f, vp[1])
}

func (t *Triangulation) ggSplitPossible(f, e int) bool {
	if t.isBorderEdge(f, e) {
		return false
	}
	g, _ := t.ff(f, e)
	return t.color(f).IsGreen() && t.color(g).IsGreen() && t.level(f) == t.level(g)
}

func (t *Triangulation) rgSplitPossible(f, e int) bool {
	if t.isBorderEdge(f, e) {
		return false
	}
	g, _ := t.ff(f, e)
	c1, c2 := t.color(f), t.color(g)
	return ((c1.IsGreen() && c2.IsRed()) || (c1.IsRed() && c2.IsGreen())) &&
		t.level(f) == t.level(g) &&
		t.edgeColor(f, e) == EdgeGreen
}

func (t *Triangulation) rrSplitPossible(f, e int) bool {
	if t.isBorderEdge(f, e) {
		return false
	}
	g, _ := t.ff(f, e)
	return t.color(f).IsRed() && t.color(g).IsRed() &&
		t.level(f) == t.level(g) &&
		t.edgeColor(f, e) == EdgeGreen &&
		t.edgeLevel(f, e) == t.level(f)
}

func (t *Triangulation) borderGreenBisectionPossible(f, e int) bool {
	return t.isBorderEdge(f, e) && t.color(f).IsGreen()
}

func (t *Triangulation) borderRedBisectionPossible(f, e int) bool {
	return t.isBorderEdge(f, e) && t.color(f).IsRed() &&
		t.edgeLevel(f, e) == t.level(f) &&
		t.edgeColor(f, e) == EdgeGreen
}

func (t *Triangulation) edgeSplitPossible(f, e int) bool {
	if !t.isBorderEdge(f, e) {
		return t.ggSplitPossible(f, e) || t.rgSplitPossible(f, e) || t.rrSplitPossible(f, e)
	}
	return t.borderGreenBisectionPossible(f, e) || t.borderRedBisectionPossible(f, e)
}

// edgeSplit splits edge e of face f with the matching pattern, after the
// scheme had the chance to refine the neighborhood it samples.
//
// It returns true if the edge does not exist anymore, which also happens
// when a prerequisite split already divided it.
func (t *Triangulation) edgeSplit(f, e int) bool {
	v1, v2 := t.v(f, e), t.v(f, e+1)
	t.scheme.prepare(f, e)
	f, e, ok := t.directedEdge(v1, v2)
	if !ok {
		Logger().Debug("edge split by a prerequisite split", "v1", v1, "v2", v2)
		return true
	}
	if !t.isBorderEdge(f, e) {
		switch {
		case t.ggSplitPossible(f, e):
			t.ggSplit(f, e)
		case t.rgSplitPossible(f, e):
			t.rgSplit(f, e)
		case t.rrSplitPossible(f, e):
			t.rrSplit(f, e)
		}
	} else {
		switch {
		case t.borderGreenBisectionPossible(f, e):
			t.borderGreenBisection(f, e)
		case t.borderRedBisectionPossible(f, e):
			t.borderRedBisection(f, e)
		}
	}
	_, _, ok = t.directedEdge(v1, v2)
	return !ok
}

// doSplit inserts a vertex on edge e of face f at the position chosen by
// the scheme. The new vertex is one level above the edge.
//
// The returned faces are [f0, f1, f2, f3] for an interior edge and
// [f0, f2] for a border edge, as returned by Mesh.Split.
func (t *Triangulation) doSplit(f, e int) ([]int, int) {
	level := t.edgeLevel(f, e) + 1
	p := t.scheme.position(f, e)
	border := t.isBorderEdge(f, e)
	var faces []int
	var v int
	if border {
		faces, v = t.mesh.SplitBoundary(f, e, p)
	} else {
		faces, v = t.mesh.Split(f, e, p)
	}
	t.verts[v] = vertexInfo{
		level:    level,
		isBorder: border,
		isNew:    t.session,
	}
	return faces, v
}

// doCollapse merges vertex (e+1)%3 of face f into vertex e.
func (t *Triangulation) doCollapse(f, e int) {
	var neighbors []int
	if t.isBorderEdge(f, e) {
		neighbors = t.mesh.CollapseBoundary(f, e, nil)
	} else {
		neighbors = t.mesh.Collapse(f, e, nil)
	}
	for _, g := range neighbors {
		t.touch(g)
	}
}

func (t *Triangulation) ggSplit(f, e int) {
	l := t.level(f)
	faces, v := t.doSplit(f, e)
	t.greenBisection(l, faces[0], faces[2])
	t.greenBisection(l, faces[3], faces[1])
	t.scheme.inserted(v)
}

func (t *Triangulation) rgSplit(f, e int) {
	l := t.level(f)
	g, gi := t.ff(f, e)

	var redType FaceColor
	var vp vertexPair
	if t.color(f).IsRed() {
		redType = t.color(f)
		vp = t.redEdgePair(f)
		f, e = g, gi
	} else {
		redType = t.color(g)
		vp = t.redEdgePair(g)
	}

	faces, v := t.doSplit(f, e)
	t.greenBisection(l, faces[0], faces[2])
	t.redBisection(l, redType, faces[1], faces[3], vp)
	if t.color(faces[1]).IsBlue() {
		t.bbSwapIfNeeded(faces[1])
	} else {
		t.bbSwapIfNeeded(faces[3])
	}
	t.scheme.inserted(v)
}

func (t *Triangulation) rrSplit(f, e int) {
	l := t.level(f)
	g, _ := t.ff(f, e)
	vp := t.redEdgePair(f)
	ovp := t.redEdgePair(g)
	upper := t.color(f)
	lower := t.color(g)

	faces, v := t.doSplit(f, e)
	t.redBisection(l, upper, faces[2], faces[0], vp)
	t.redBisection(l, lower, faces[1], faces[3], ovp)
	var blue []int
	for _, face := range faces {
		if t.color(face).IsBlue() {
			blue = append(blue, face)
		}
	}
	for _, face := range blue {
		t.bbSwapIfNeeded(face)
	}
	t.scheme.inserted(v)
}

func (t *Triangulation) borderGreenBisection(f, e int) {
	l := t.level(f)
	faces, v := t.doSplit(f, e)
	t.greenBisection(l, faces[0], faces[1])
	t.scheme.inserted(v)
}

func (t *Triangulation) borderRedBisection(f, e int) {
	l := t.level(f)
	vp := t.redEdgePair(f)
	redType := t.color(f)
	faces, v := t.doSplit(f, e)
	t.redBisection(l, redType, faces[1], faces[0], vp)
	for _, face := range faces {
		if t.color(face).IsBlue() {
			t.bbSwapIfNeeded(face)
			break
		}
	}
	t.scheme.inserted(v)
}

// greenBisection colors the two halves of a split GREEN face.
func (t *Triangulation) greenBisection(level, rgg, ggr int) {
	t.setFace(rgg, RedRGG, level)
	t.setFace(ggr, RedGGR, level)
}

// redBisection colors the two halves of a split RED face. The half which
// keeps the old red edge becomes BLUE and the other one GREEN.
func (t *Triangulation) redBisection(level int, color FaceColor, t1, t2 int, vp vertexPair) {
	green, blue := t1, t2
	if t.containsEdge(t1, vp) {
		green, blue = t2, t1
	}
	t.setFace(green, Green, level+1)
	if color == RedRGG {
		t.setFace(blue, BlueGGR, level)
	} else {
		t.setFace(blue, BlueRGG, level)
	}
}

func (t *Triangulation) bbSwapPossible(f, e int) bool {
	if t.isBorderEdge(f, e) {
		return false
	}
	g, _ := t.ff(f, e)
	return t.level(f) == t.level(g) &&
		t.color(f).IsBlue() && t.color(g).IsBlue() &&
		t.edgeColor(f, e) == EdgeRed &&
		t.mesh.CheckFlipEdge(f, e)
}

// bbSwap flips the red edge between two BLUE faces, which turns both into
// GREEN faces one level up.
func (t *Triangulation) bbSwap(f, e int) {
	l := t.level(f)
	g, _ := t.ff(f, e)
	t.mesh.FlipEdge(f, e)
	t.setFace(f, Green, l+1)
	t.setFace(g, Green, l+1)
}

func (t *Triangulation) bbSwapIfNeeded(f int) {
	for i := 0; i < 3; i++ {
		if t.edgeColor(f, i) == EdgeRed && t.bbSwapPossible(f, i) {
			t.bbSwap(f, i)
		}
	}
}
