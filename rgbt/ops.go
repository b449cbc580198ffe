package rgbt

// EdgeSplitPossible checks if edge e of face f can be split right away,
// without splitting other edges first.
func (t *Triangulation) EdgeSplitPossible(f, e int) bool {
	if !t.liveFace(f, e) || t.edgeColor(f, e) == EdgeRed {
		return false
	}
	return t.edgeSplitPossible(f, e)
}

// EdgeSplit splits edge e of face f, inserting a new vertex positioned by
// the scheme.
//
// Splits needed by the scheme to sample the neighborhood of the edge are
// made first, and they may split the edge itself.
func (t *Triangulation) EdgeSplit(f, e int) error {
	if !t.liveFace(f, e) {
		return opError(NotLegalHere, "edge split", f, e)
	}
	if t.edgeColor(f, e) == EdgeRed {
		return opError(NotLegalHere, "edge split", f, e)
	}
	if !t.edgeSplitPossible(f, e) {
		return opError(PatternMismatch, "edge split", f, e)
	}
	t.edgeSplit(f, e)
	t.debugCheck("edge split")
	return nil
}

// RecursiveEdgeSplit splits the edge joining v1 and v2, first splitting the
// coarser edges around it which prevent a direct split.
//
// It returns true if the edge was divided, either by the split itself or
// by one of the splits it depended on.
func (t *Triangulation) RecursiveEdgeSplit(v1, v2 int) (bool, error) {
	if !t.liveVertex(v1) || !t.liveVertex(v2) {
		return false, opError(NotLegalHere, "recursive edge split", -1, -1)
	}
	f, e, ok := t.IsValidEdge(v1, v2)
	if !ok {
		return false, opError(NotLegalHere, "recursive edge split", -1, -1)
	}
	if t.edgeColor(f, e) == EdgeRed {
		return false, opError(NotLegalHere, "recursive edge split", f, e)
	}
	res := t.recursiveEdgeSplit(v1, v2)
	t.debugCheck("recursive edge split")
	return res, nil
}

// VertexRemovalPossible checks if some merge, possibly after swaps, can
// remove vertex v.
func (t *Triangulation) VertexRemovalPossible(v int) bool {
	return t.liveVertex(v) && t.classifyRemoval(v) != removalNone
}

// RemoveVertex removes vertex v, undoing the split which created it.
//
// Level 0 vertices belong to the base mesh and cannot be removed.
func (t *Triangulation) RemoveVertex(v int) error {
	if !t.liveVertex(v) {
		return opError(NotLegalHere, "vertex removal", -1, -1)
	}
	vert := t.mesh.Vertices[v]
	if t.verts[v].level == 0 {
		return opError(NotLegalHere, "vertex removal", vert.VF, vert.VFi)
	}
	if t.verts[v].isBorder {
		if faces, _, _ := t.fanOf(v); len(faces) != 2 {
			return opError(VertexOnBorder, "vertex removal", vert.VF, vert.VFi)
		}
	}
	if !t.vertexRemoval(v) {
		return opError(PatternMismatch, "vertex removal", vert.VF, vert.VFi)
	}
	t.debugCheck("vertex removal")
	return nil
}

func (t *Triangulation) liveFace(f, e int) bool {
	return f >= 0 && f < len(t.mesh.Faces) && !t.mesh.Faces[f].Deleted &&
		e >= 0 && e < 3
}

func (t *Triangulation) liveVertex(v int) bool {
	return v >= 0 && v < len(t.mesh.Vertices) && !t.mesh.Vertices[v].Deleted
}
