package rgbt

// maxRemovalRounds bounds the swaps applied before a vertex matches a
// merge pattern. Every swap sequence ends in a merge after one round.
const maxRemovalRounds = 4

// vertexRemoval removes vertex v by the first operation matching its fan.
// It returns false without changing anything if no operation applies, and
// false after a warning if the swaps did not end in a merge.
func (t *Triangulation) vertexRemoval(v int) bool {
	kind := t.classifyRemoval(v)
	if kind == removalNone {
		return false
	}
	neighbors := t.VV(v, false)
	t.scheme.removing(v)
	for round := 0; ; round++ {
		Logger().Debug("vertex removal", "vertex", v, "operation", kind.String())
		if !t.applyRemoval(v, kind) {
			break
		}
		if round+1 >= maxRemovalRounds {
			Logger().Debug("vertex removal stopped after swaps", "vertex", v)
			break
		}
		kind = t.classifyRemoval(v)
		if kind == removalNone {
			Logger().Debug("no merge after swap", "vertex", v)
			break
		}
	}
	live := neighbors[:0]
	for _, n := range neighbors {
		if !t.mesh.Vertices[n].Deleted {
			live = append(live, n)
		}
	}
	removed := t.mesh.Vertices[v].Deleted
	if !removed {
		Logger().Warn("vertex survived removal", "vertex", v, "operation", kind.String())
		live = append(live, v)
	}
	t.scheme.removed(live)
	return removed
}

// applyRemoval runs one removal operation. It returns true if v is still
// alive because the operation only swapped edges around it.
func (t *Triangulation) applyRemoval(v int, kind removalKind) bool {
	fan := t.vertexFan(v)
	switch kind {
	case removalR4:
		t.r4Merge(fan)
	case removalR2GB:
		t.r2gbMerge(fan)
	case removalGBGB:
		t.gbgbMerge(fan)
	case removalG2B2:
		t.g2b2Merge(fan)
	case removalBorderR2:
		t.borderR2Merge(fan)
	case removalBorderGB:
		t.borderGBMerge(fan)
	case removalSwap6G:
		return t.swap6G(fan)
	case removalSwap4G1B:
		return t.swap4G1B(fan)
	case removalSwap3G2R:
		return t.swap3G2R(fan)
	case removalBRB2G:
		t.brb2gSwap(fan)
		return true
	}
	return false
}

// collapseAcross collapses the edge of face f shared with the face across
// its edge e, seen from that neighbor.
func (t *Triangulation) collapseAcross(f, e int) {
	g, gi := t.ff(f, e)
	t.doCollapse(g, gi)
}

func (t *Triangulation) r4Merge(fan *vertexFan) {
	k := fan.find(RedGGR)
	f0, f1, f2 := fan.at(k), fan.at(k+1), fan.at(k+2)
	l := t.level(f0)
	t.collapseAcross(f0, t.maxLevelEdge(f0))
	t.setFace(f1, Green, l)
	t.setFace(f2, Green, l)
}

func (t *Triangulation) r2gbMerge(fan *vertexFan) {
	k := fan.find(RedGGR)
	f0, f1, f2 := fan.at(k), fan.at(k+1), fan.at(k+2)
	l := t.level(f0)
	firstVariant := t.color(f2).IsGreen()
	t.collapseAcross(f0, t.maxLevelEdge(f0))
	t.setFace(f1, Green, l)
	if firstVariant {
		t.setFace(f2, RedRGG, l)
	} else {
		t.setFace(f2, RedGGR, l)
	}
}

func (t *Triangulation) gbgbMerge(fan *vertexFan) {
	k := fan.find(Green)
	blueType := fan.colors[(k+1)%4]
	var f0, f1, f3 int
	if blueType == BlueRGG {
		f0, f1, f3 = fan.at(k), fan.at(k+1), fan.at(k+3)
	} else {
		f0, f1, f3 = fan.at(k), fan.at(k+3), fan.at(k+1)
	}
	l := t.level(f1)
	mi := t.minLevelVertex(f3)
	if blueType == BlueRGG {
		// Collapsing on the green side removes the vertex at level l+1.
		t.collapseAcross(f3, (mi+2)%3)
	} else {
		t.doCollapse(f3, mi)
	}
	t.gbMerge(l, blueType, f0)
	t.gbMerge(l, blueType, f1)
}

func (t *Triangulation) g2b2Merge(fan *vertexFan) {
	k := fan.find(Green)
	if t.color(fan.at(k + 1)).IsGreen() {
		k++
	}
	k++
	f0, f1, f2 := fan.at(k), fan.at(k+1), fan.at(k+2)
	upper := t.color(f0)
	lower := t.color(f1)
	l := t.level(f0)
	t.doCollapse(f2, t.minLevelVertex(f2))
	t.gbMerge(l, upper, f0)
	t.gbMerge(l, lower, f1)
}

// gbMerge turns a face next to a removed vertex into the RED face matching
// the given BLUE variant.
func (t *Triangulation) gbMerge(level int, blue FaceColor, f int) {
	if blue == BlueRGG {
		t.setFace(f, RedGGR, level)
	} else {
		t.setFace(f, RedRGG, level)
	}
}

func (t *Triangulation) borderR2MergePossible(fan *vertexFan) bool {
	return fan.size() == 2 &&
		fan.colors[0] == RedGGR &&
		fan.colors[1] == RedRGG &&
		t.level(fan.faces[0]) == t.level(fan.faces[1])
}

func (t *Triangulation) borderR2Merge(fan *vertexFan) {
	f0, f1 := fan.faces[1], fan.faces[0]
	l := t.level(f0)
	t.doCollapse(f0, (t.maxLevelVertex(f0)+2)%3)
	t.setFace(f1, Green, l)
}

func (t *Triangulation) borderGBMergePossible(fan *vertexFan) bool {
	if fan.size() != 2 {
		return false
	}
	green, blue := fan.faces[0], fan.faces[1]
	if t.color(green).IsGreen() {
		if t.color(blue) != BlueGGR {
			return false
		}
	} else {
		green, blue = blue, green
		if t.color(blue) != BlueRGG {
			return false
		}
	}
	return t.color(green).IsGreen() && t.level(blue)+1 == t.level(green)
}

func (t *Triangulation) borderGBMerge(fan *vertexFan) {
	blue := fan.faces[1]
	if !t.color(fan.faces[0]).IsGreen() {
		blue = fan.faces[0]
	}
	l := t.level(blue)
	blueRGG := t.color(blue) == BlueRGG

	last := fan.faces[1]
	fi := -1
	for i := 0; i < 3; i++ {
		if t.isBorderEdge(last, i) {
			fi = i
		}
	}
	if t.isBorderEdge(last, fi+1) {
		fi = (fi + 1) % 3
	}
	t.doCollapse(last, fi)

	first := fan.faces[0]
	if blueRGG {
		t.setFace(first, RedGGR, l)
	} else {
		t.setFace(first, RedRGG, l)
	}
	for i := 0; i < 3; i++ {
		g, _ := t.ff(first, i)
		t.touch(g)
	}
}
