package rgbt

import "github.com/unixpickle/model3d/model3d"

// Split inserts a vertex at p on the interior edge e of face f.
//
// Let f1 be the face across edge e. The split keeps f and f1, which now
// touch the new vertex, and adds two faces. The result is the new vertex
// and the faces [f, f1, f2, f3], where f2 is the new face next to f and f3
// is the new face next to f1.
func (m *Mesh) Split(f, e int, p model3d.Coord3D) (faces []int, v int) {
	if m.IsBorder(f, e) {
		panic("interior split on border edge")
	}
	return m.split(f, e, p, false)
}

// SplitBoundary is like Split, but for a border edge. It returns the new
// vertex and the faces [f, f2].
func (m *Mesh) SplitBoundary(f, e int, p model3d.Coord3D) (faces []int, v int) {
	if !m.IsBorder(f, e) {
		panic("boundary split on interior edge")
	}
	return m.split(f, e, p, true)
}

func (m *Mesh) split(f, e int, p model3d.Coord3D, boundary bool) ([]int, int) {
	f2 := m.newFace(1)
	f3 := -1
	if !boundary {
		f3 = m.newFace(0)
	}
	v2 := m.newVertex()
	m.Vertices[v2].P = p

	F := m.Faces
	f0 := f
	f0i := (e + 1) % 3
	v1 := F[f0].V[f0i]

	f01, f01i := F[f0].FF[f0i], F[f0].FFi[f0i]
	var f1, f1i, f11, f11i int
	if !boundary {
		f1, f1i = F[f0].FF[e], F[f0].FFi[e]
		f11, f11i = F[f1].FF[(f1i+2)%3], F[f1].FFi[(f1i+2)%3]
	}

	if boundary {
		setAdj(F, f2, 0, f2, 0)
	} else {
		setAdj(F, f2, 0, f3, 2)
	}
	if f01 != f0 {
		setAdj(F, f2, 1, f01, f01i)
	} else {
		setAdj(F, f2, 1, f2, 1)
	}
	setAdj(F, f2, 2, f0, f0i)

	if !boundary {
		setAdj(F, f3, 0, f1, (f1i+2)%3)
		if f11 != f1 {
			setAdj(F, f3, 1, f11, f11i)
		} else {
			setAdj(F, f3, 1, f3, 1)
		}
		setAdj(F, f3, 2, f2, 0)
	}

	if f01 != f0 {
		setAdj(F, f01, f01i, f2, 1)
	}
	if !boundary && f11 != f1 {
		setAdj(F, f11, f11i, f3, 1)
	}
	setAdj(F, f0, f0i, f2, 2)
	if !boundary {
		setAdj(F, f1, (f1i+2)%3, f3, 0)
	}

	F[f2].V = [3]int{v2, v1, F[f0].V[(f0i+1)%3]}
	if !boundary {
		F[f3].V = [3]int{v2, F[f1].V[(f1i+2)%3], v1}
		F[f1].V[f1i] = v2
	}
	F[f0].V[f0i] = v2

	m.Vertices[v2].VF, m.Vertices[v2].VFi = f0, f0i
	m.Vertices[v1].VF, m.Vertices[v1].VFi = f2, 1

	if boundary {
		return []int{f0, f2}, v2
	}
	return []int{f0, f1, f2, f3}, v2
}

func setAdj(faces []Face, f, i, g, j int) {
	faces[f].FF[i] = g
	faces[f].FFi[i] = j
}

// Collapse removes the interior edge e of face f by merging V[(e+1)%3] into
// V[e]. Both faces sharing the edge are deleted.
//
// If p is not nil, the surviving vertex is moved to *p. The result lists the
// live faces which were adjacent to the deleted faces.
func (m *Mesh) Collapse(f, e int, p *model3d.Coord3D) []int {
	if m.IsBorder(f, e) {
		panic("interior collapse on border edge")
	}
	return m.collapse(f, e, p, false)
}

// CollapseBoundary is like Collapse, but for a border edge, so only f is
// deleted.
func (m *Mesh) CollapseBoundary(f, e int, p *model3d.Coord3D) []int {
	if !m.IsBorder(f, e) {
		panic("boundary collapse on interior edge")
	}
	return m.collapse(f, e, p, true)
}

func (m *Mesh) collapse(f, e int, p *model3d.Coord3D, boundary bool) []int {
	F := m.Faces
	f0, f0i := f, e
	v := F[f0].V[f0i]
	v1 := F[f0].V[(f0i+1)%3]
	fan, _ := m.fan(f0, (f0i+1)%3)

	across := func(g, i int) (int, int) {
		if F[g].FF[i] == g {
			return -1, -1
		}
		return F[g].FF[i], F[g].FFi[i]
	}

	f00, f00i := across(f0, (f0i+2)%3)
	f01, f01i := across(f0, (f0i+1)%3)
	f1, f1i := -1, -1
	f10, f10i, f11, f11i := -1, -1, -1, -1
	if !boundary {
		f1, f1i = F[f0].FF[f0i], F[f0].FFi[f0i]
		f10, f10i = across(f1, (f1i+1)%3)
		f11, f11i = across(f1, (f1i+2)%3)
	}

	linkPair(F, f00, f00i, f01, f01i)
	if !boundary {
		linkPair(F, f10, f10i, f11, f11i)
	}

	opp0 := F[f0].V[(f0i+2)%3]
	if f01 >= 0 {
		m.Vertices[opp0].VF, m.Vertices[opp0].VFi = f01, f01i
		m.Vertices[v].VF, m.Vertices[v].VFi = f01, (f01i+1)%3
	} else if f00 >= 0 {
		m.Vertices[opp0].VF, m.Vertices[opp0].VFi = f00, (f00i+1)%3
		m.Vertices[v].VF, m.Vertices[v].VFi = f00, f00i
	} else {
		panic("collapse would isolate a vertex")
	}
	if !boundary {
		opp1 := F[f1].V[(f1i+2)%3]
		if f11 >= 0 {
			m.Vertices[opp1].VF, m.Vertices[opp1].VFi = f11, (f11i+1)%3
		} else if f10 >= 0 {
			m.Vertices[opp1].VF, m.Vertices[opp1].VFi = f10, f10i
		} else {
			panic("collapse would isolate a vertex")
		}
	}

	m.deleteFace(f0)
	if !boundary {
		m.deleteFace(f1)
	}
	if p != nil {
		m.Vertices[v].P = *p
	}
	for _, g := range fan {
		if F[g].Deleted {
			continue
		}
		for i, x := range F[g].V {
			if x == v1 {
				F[g].V[i] = v
			}
		}
	}
	m.deleteVertex(v1)

	var res []int
	for _, g := range []int{f00, f01, f10, f11} {
		if g >= 0 {
			res = append(res, g)
		}
	}
	return res
}

// linkPair joins two faces across the gap left by a deleted face. A missing
// face (-1) leaves the other one on the border.
func linkPair(F []Face, f, fi, g, gi int) {
	switch {
	case f >= 0 && g >= 0:
		setAdj(F, f, fi, g, gi)
		setAdj(F, g, gi, f, fi)
	case f >= 0:
		setAdj(F, f, fi, f, fi)
	case g >= 0:
		setAdj(F, g, gi, g, gi)
	}
}

// CheckFlipEdge reports whether edge z of face f can be flipped without
// breaking the mesh.
func (m *Mesh) CheckFlipEdge(f, z int) bool {
	if m.IsBorder(f, z) {
		return false
	}
	F := m.Faces
	g, w := F[f].FF[z], F[f].FFi[z]
	if F[g].V[w] != F[f].V[(z+1)%3] || F[g].V[(w+1)%3] != F[f].V[z] {
		return false
	}
	fOpp := F[f].V[(z+2)%3]
	gOpp := F[g].V[(w+2)%3]
	if fOpp == gOpp {
		return false
	}
	for _, n := range m.neighbors(f, (z+2)%3) {
		if n == gOpp {
			return false
		}
	}
	return true
}

// FlipEdge replaces edge z of face f with the other diagonal of the
// quadrilateral formed by f and its neighbor across z.
//
// With f = (a, b, c) at z and its neighbor g = (b, a, d), the faces become
// (a, d, c) and (b, c, d).
func (m *Mesh) FlipEdge(f, z int) {
	F := m.Faces
	g, w := F[f].FF[z], F[f].FFi[z]
	z1, z2 := (z+1)%3, (z+2)%3
	w1, w2 := (w+1)%3, (w+2)%3

	F[f].V[z1] = F[g].V[w2]
	F[g].V[w1] = F[f].V[z2]

	// Neighbors across the edges that change owner.
	fn, fni := F[f].FF[z1], F[f].FFi[z1]
	gn, gni := F[g].FF[w1], F[g].FFi[w1]

	if gn == g {
		setAdj(F, f, z, f, z)
	} else {
		setAdj(F, f, z, gn, gni)
		setAdj(F, gn, gni, f, z)
	}
	if fn == f {
		setAdj(F, g, w, g, w)
	} else {
		setAdj(F, g, w, fn, fni)
		setAdj(F, fn, fni, g, w)
	}
	setAdj(F, f, z1, g, w1)
	setAdj(F, g, w1, f, z1)

	m.Vertices[F[f].V[z]].VF, m.Vertices[F[f].V[z]].VFi = f, z
	m.Vertices[F[g].V[w]].VF, m.Vertices[F[g].V[w]].VFi = g, w
	m.Vertices[F[f].V[z2]].VF, m.Vertices[F[f].V[z2]].VFi = f, z2
	m.Vertices[F[g].V[w2]].VF, m.Vertices[F[g].V[w2]].VFi = g, w2
}
