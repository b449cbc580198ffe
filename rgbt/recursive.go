package rgbt

const maxCascadeSteps = 1 << 20

// A splitFrame is a pending recursive split of the edge from v1 to v2.
//
// Stage 0 looks at the edge, stage 1 runs after the prerequisite split on
// the side of v1 to v2, and stage 2 after the one on the opposite side.
type splitFrame struct {
	v1, v2 int
	stage  int
	level  int
}

// recursiveEdgeSplit splits the edge joining v1 and v2, first splitting the
// coarser edges of neighboring RED and BLUE faces which prevent it.
//
// It returns true if the edge does not exist anymore after the call.
func (t *Triangulation) recursiveEdgeSplit(v1, v2 int) bool {
	stack := []*splitFrame{{v1: v1, v2: v2}}
	var result bool
	pop := func(r bool) {
		result = r
		stack = stack[:len(stack)-1]
	}
	for steps := 0; len(stack) > 0; steps++ {
		if steps > maxCascadeSteps {
			panic("recursive edge split did not terminate")
		}
		fr := stack[len(stack)-1]
		switch fr.stage {
		case 0:
			f, e, ok := t.directedEdge(fr.v1, fr.v2)
			if !ok {
				if f, e, ok = t.directedEdge(fr.v2, fr.v1); ok {
					fr.v1, fr.v2 = fr.v2, fr.v1
				}
			}
			if !ok || t.edgeColor(f, e) == EdgeRed {
				pop(false)
				continue
			}
			if t.edgeSplitPossible(f, e) {
				pop(t.edgeSplit(f, e))
				continue
			}
			fr.level = t.edgeLevel(f, e)
			fr.stage = 1
			if t.level(f) < fr.level {
				if a, b, ok := t.prerequisiteEdge(fr.v1, fr.v2); ok {
					stack = append(stack, &splitFrame{v1: a, v2: b})
				}
			}
		case 1:
			fr.stage = 2
			f, e, ok := t.directedEdge(fr.v1, fr.v2)
			if !ok {
				continue
			}
			if g, _ := t.ff(f, e); g != f && t.level(g) < fr.level {
				if a, b, ok := t.prerequisiteEdge(fr.v2, fr.v1); ok {
					stack = append(stack, &splitFrame{v1: a, v2: b})
				}
			}
		case 2:
			f, e, ok := t.directedEdge(fr.v1, fr.v2)
			if !ok {
				pop(true)
			} else if t.edgeSplitPossible(f, e) {
				pop(t.edgeSplit(f, e))
			} else {
				pop(false)
			}
		}
	}
	return result
}

// prerequisiteEdge finds the GREEN edge which must be split before the edge
// from v1 to v2, looking at the face on its left.
//
// For a RED face this is its green edge at the face level. For a BLUE face
// it is the corresponding edge of the RED face across its red edge.
func (t *Triangulation) prerequisiteEdge(v1, v2 int) (int, int, bool) {
	f, _, ok := t.directedEdge(v1, v2)
	if !ok {
		return -1, -1, false
	}
	l := t.level(f)
	target := f
	if !t.color(f).IsRed() {
		target, _ = t.ff(f, t.minLevelEdge(f))
	}
	index := -1
	data := t.edges(target)
	for i := 0; i < 3; i++ {
		if data.levels[i] == l && data.colors[i] == EdgeGreen {
			index = i
		}
	}
	if index < 0 {
		return -1, -1, false
	}
	return t.v(target, index), t.v(target, index+1), true
}

// splitGreenEdgeIfNeeded splits every GREEN edge around v whose level is
// below minLevel-1, until none is left.
func (t *Triangulation) splitGreenEdgeIfNeeded(v, minLevel int) {
	if t.verts[v].marked {
		return
	}
	t.verts[v].marked = true
	defer func() {
		t.verts[v].marked = false
	}()

	for split := true; split; {
		split = false
		sp, _ := t.spokes(v)
		for _, s := range sp {
			data := t.edges(s.face)
			if data.colors[s.edge] != EdgeGreen || data.levels[s.edge] >= minLevel-1 {
				continue
			}
			Logger().Debug("prerequisite green split", "vertex", v, "edge_level",
				data.levels[s.edge], "min_level", minLevel)
			if t.recursiveEdgeSplit(t.v(s.face, s.edge), t.v(s.face, s.edge+1)) {
				split = true
				break
			}
		}
	}
}

// splitRedEdgeIfNeeded removes the RED edges around v whose level is below
// minLevel-1 by splitting the coarser green edge of the RED faces sharing
// them.
func (t *Triangulation) splitRedEdgeIfNeeded(v, minLevel int) {
	for split := true; split; {
		split = false
		sp, _ := t.spokes(v)
		for _, s := range sp {
			data := t.edges(s.face)
			if data.colors[s.edge] != EdgeRed || data.levels[s.edge] >= minLevel-1 {
				continue
			}
			if t.color(s.face).IsRed() {
				split = t.splitCoarserGreenEdge(s.face, s.edge)
			}
			if !split {
				if g, gi := t.ff(s.face, s.edge); g != s.face && t.color(g).IsRed() {
					split = t.splitCoarserGreenEdge(g, gi)
				}
			}
			if split {
				Logger().Debug("prerequisite red split", "vertex", v, "min_level", minLevel)
				break
			}
		}
	}
}

// splitCoarserGreenEdge splits the lower level of the two edges of f other
// than edge i.
func (t *Triangulation) splitCoarserGreenEdge(f, i int) bool {
	data := t.edges(f)
	e := (i + 1) % 3
	if data.levels[(i+2)%3] < data.levels[e] {
		e = (i + 2) % 3
	}
	return t.recursiveEdgeSplit(t.v(f, e), t.v(f, e+1))
}
