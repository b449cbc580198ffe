package rgbt

// ggSwapAuxPossible checks if edge e between two GREEN faces can be flipped
// to make two BLUE faces of the coarser level. Exactly one of the vertices
// opposite to the edge must come from a coarser level.
func (t *Triangulation) ggSwapAuxPossible(f, e int) bool {
	if t.isBorderEdge(f, e) {
		return false
	}
	g, gi := t.ff(f, e)
	l := t.level(f)
	if t.level(g) != l || !t.color(f).IsGreen() || !t.color(g).IsGreen() {
		return false
	}
	if !t.mesh.CheckFlipEdge(f, e%3) {
		return false
	}
	up, down := t.vl(f, e+2), t.vl(g, gi+2)
	return (up <= l-1 && down == l) || (up == l && down <= l-1)
}

func (t *Triangulation) ggSwapAux(f, e int) {
	l := t.level(f)
	g, _ := t.ff(f, e)
	upperAtLevel := t.vl(f, e+2) == l
	t.mesh.FlipEdge(f, e%3)
	if !upperAtLevel {
		t.setFace(f, BlueGGR, l-1)
		t.setFace(g, BlueRGG, l-1)
	} else {
		t.setFace(f, BlueRGG, l-1)
		t.setFace(g, BlueGGR, l-1)
	}
}

// swap6GAnchor returns the last position in a fan of six GREEN faces whose
// outer vertex is coarser than the faces, and the number of such vertices.
func (t *Triangulation) swap6GAnchor(fan *vertexFan) (k, count int) {
	l := t.level(fan.faces[0])
	for i, f := range fan.faces {
		if t.vl(f, fan.indices[i]+1) <= l-1 {
			count++
			k = i
		}
	}
	return
}

func (t *Triangulation) swap6GPossible(fan *vertexFan) bool {
	if !fan.matches(pattern6G) {
		return false
	}
	l := t.level(fan.faces[0])
	for _, f := range fan.faces {
		if t.level(f) != l {
			return false
		}
	}
	k, count := t.swap6GAnchor(fan)
	if count != 2 {
		return false
	}
	return t.ggSwapAuxPossible(fan.at(k), fan.index(k)+2) &&
		t.ggSwapAuxPossible(fan.at(k+3), fan.index(k+3)+2)
}

// swap6G flips two opposite edges around the vertex, leaving a fan which a
// merge can remove. It returns true if both flips happened, and leaves the
// mesh as it was otherwise.
func (t *Triangulation) swap6G(fan *vertexFan) bool {
	k, _ := t.swap6GAnchor(fan)
	f0, e0 := fan.at(k), fan.index(k)+2
	f3, e3 := fan.at(k+3), fan.index(k+3)+2
	if !t.ggSwapAuxPossible(f0, e0) || !t.ggSwapAuxPossible(f3, e3) {
		return false
	}
	g0, _ := t.ff(f0, e0)
	opposite := t.v(f0, e0+2)
	saved := [2]faceInfo{t.faces[f0], t.faces[g0]}
	t.ggSwapAux(f0, e0)
	if !t.ggSwapAuxPossible(f3, e3) {
		t.undoGGSwap(f0, g0, opposite, saved)
		return false
	}
	t.ggSwapAux(f3, e3)
	return true
}

// undoGGSwap flips back the edge shared by f and g after ggSwapAux(f, e).
// The flip hands the old triangle of f to either face, so the saved
// attributes follow the vertex of f which was opposite to e.
func (t *Triangulation) undoGGSwap(f, g, opposite int, saved [2]faceInfo) {
	for i := 0; i < 3; i++ {
		if n, _ := t.ff(f, i); n == g {
			t.mesh.FlipEdge(f, i)
			break
		}
	}
	if !t.containsVertex(f, opposite) {
		saved[0], saved[1] = saved[1], saved[0]
	}
	t.setFace(f, saved[0].color, saved[0].level)
	t.setFace(g, saved[1].color, saved[1].level)
	Logger().Warn("edge swap undone", "face", f, "neighbor", g)
}

func (t *Triangulation) swap4G1BPossible(fan *vertexFan) bool {
	if !fan.matches(pattern4G1BGGR, pattern4G1BRGG) {
		return false
	}
	k := t.lastBlue(fan)
	return t.ggSwapAuxPossible(fan.at(k+3), fan.index(k+3))
}

func (t *Triangulation) swap4G1B(fan *vertexFan) bool {
	k := t.lastBlue(fan)
	t.ggSwapAux(fan.at(k+3), fan.index(k+3))
	return true
}

func (t *Triangulation) lastBlue(fan *vertexFan) int {
	k := -1
	for i, c := range fan.colors {
		if c.IsBlue() {
			k = i
		}
	}
	return k
}

func (t *Triangulation) swap3G2RPossible(fan *vertexFan) bool {
	if !fan.matches(pattern3G2R) {
		return false
	}
	k := fan.find(RedGGR)
	return t.ggSwapAuxPossible(fan.at(k+4), fan.index(k+4))
}

func (t *Triangulation) swap3G2R(fan *vertexFan) bool {
	k := fan.find(RedGGR)
	t.ggSwapAux(fan.at(k+4), fan.index(k+4))
	return true
}

func (t *Triangulation) brb2gSwapPossible(fan *vertexFan) bool {
	if fan.size() != 5 {
		return false
	}
	ri := -1
	for i, c := range fan.colors {
		if c.IsRed() {
			ri = i
			break
		}
	}
	if ri < 0 {
		return false
	}
	l := t.level(fan.at(ri))
	expect := []struct {
		check func(FaceColor) bool
		level int
	}{
		{FaceColor.IsRed, l},
		{FaceColor.IsBlue, l},
		{FaceColor.IsGreen, l + 1},
		{FaceColor.IsGreen, l + 1},
		{FaceColor.IsBlue, l},
	}
	for i, e := range expect {
		f := fan.at(ri + i)
		if !e.check(t.color(f)) || t.level(f) != e.level {
			return false
		}
	}
	red := fan.at(ri)
	return t.mesh.CheckFlipEdge(red, t.redEdge(red))
}

// brb2gSwap flips the red edge of the RED face in the fan, exchanging the
// RED and BLUE variants of the two faces, after which the vertex matches
// the g2b2 pattern.
func (t *Triangulation) brb2gSwap(fan *vertexFan) {
	ri := -1
	for i, c := range fan.colors {
		if c.IsRed() {
			ri = i
			break
		}
	}
	t1 := fan.at(ri)
	rei := t.redEdge(t1)
	t2, _ := t.ff(t1, rei)
	l := t.level(t1)
	redType := t.color(t1)
	blueType := t.color(t2)

	t.mesh.FlipEdge(t1, rei)

	red, blue := t2, t1
	if t.countVertexAtLevel(t1, l+1) != 2 {
		red, blue = t1, t2
	}
	if blueType == BlueGGR {
		t.setFace(blue, BlueRGG, t.level(blue))
	} else {
		t.setFace(blue, BlueGGR, t.level(blue))
	}
	if redType == RedGGR {
		t.setFace(red, RedRGG, t.level(red))
	} else {
		t.setFace(red, RedGGR, t.level(red))
	}
}
