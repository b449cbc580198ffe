package rgbt

import "github.com/unixpickle/model3d/model3d"

// A Triangle is a read-only view of one face of a Triangulation.
//
// Views are cheap to create and read the triangulation on every call, so
// they reflect later changes as long as the face is not deleted.
type Triangle struct {
	t     *Triangulation
	Index int
}

// Face returns a view of face f.
func (t *Triangulation) Face(f int) Triangle {
	return Triangle{t: t, Index: f}
}

func (tr Triangle) Deleted() bool {
	return tr.t.mesh.Faces[tr.Index].Deleted
}

func (tr Triangle) Color() FaceColor {
	return tr.t.color(tr.Index)
}

func (tr Triangle) Level() int {
	return tr.t.level(tr.Index)
}

// Vertex returns a view of vertex i of the face.
func (tr Triangle) Vertex(i int) VertexView {
	return tr.t.Vertex(tr.t.v(tr.Index, i))
}

// Neighbor returns the face across edge i and the index of the edge inside
// it. A border edge yields the face itself.
func (tr Triangle) Neighbor(i int) (Triangle, int) {
	f, fi := tr.t.ff(tr.Index, i)
	return tr.t.Face(f), fi
}

// EdgeColor returns the color of edge i, joining vertex i and i+1.
func (tr Triangle) EdgeColor(i int) EdgeColor {
	return tr.t.edgeColor(tr.Index, i)
}

func (tr Triangle) EdgeLevel(i int) int {
	return tr.t.edgeLevel(tr.Index, i)
}

// Angle returns the opening angle at vertex i in units of 30 degrees of
// the regular lattice.
func (tr Triangle) Angle(i int) int {
	return tr.t.angle(tr.Index, i)
}

func (tr Triangle) EdgeIsBorder(i int) bool {
	return tr.t.isBorderEdge(tr.Index, i)
}

func (tr Triangle) MaxLevelVertex() int {
	return tr.t.maxLevelVertex(tr.Index)
}

func (tr Triangle) MinLevelVertex() int {
	return tr.t.minLevelVertex(tr.Index)
}

func (tr Triangle) MaxLevelEdge() int {
	return tr.t.maxLevelEdge(tr.Index)
}

func (tr Triangle) MinLevelEdge() int {
	return tr.t.minLevelEdge(tr.Index)
}

func (tr Triangle) CountVertexAtLevel(level int) int {
	return tr.t.countVertexAtLevel(tr.Index, level)
}

// RedEdge returns the index of the red edge, or false for a GREEN face.
func (tr Triangle) RedEdge() (int, bool) {
	if tr.Color().IsGreen() {
		return -1, false
	}
	return tr.t.redEdge(tr.Index), true
}

// NumBorderEdgesAt counts the border edges touching vertex i.
func (tr Triangle) NumBorderEdgesAt(i int) int {
	return tr.t.numBorderEdgesAt(tr.Index, i)
}

// Triangle returns the geometry of the face.
func (tr Triangle) Triangle() *model3d.Triangle {
	var res model3d.Triangle
	for i := range res {
		res[i] = tr.t.mesh.Vertices[tr.t.v(tr.Index, i)].P
	}
	return &res
}

// A VertexView is a read-only view of one vertex of a Triangulation.
type VertexView struct {
	t     *Triangulation
	Index int
}

// Vertex returns a view of vertex v.
func (t *Triangulation) Vertex(v int) VertexView {
	return VertexView{t: t, Index: v}
}

func (vv VertexView) Deleted() bool {
	return vv.t.mesh.Vertices[vv.Index].Deleted
}

func (vv VertexView) Position() model3d.Coord3D {
	return vv.t.mesh.Vertices[vv.Index].P
}

// Level is the subdivision level at which the vertex was inserted.
func (vv VertexView) Level() int {
	return vv.t.verts[vv.Index].level
}

func (vv VertexView) IsBorder() bool {
	return vv.t.verts[vv.Index].isBorder
}

// BaseArity is the number of incident edges in the base mesh. It is only
// meaningful for level 0 vertices.
func (vv VertexView) BaseArity() int {
	return vv.t.verts[vv.Index].baseArity
}

// IsNew reports if the vertex was created by the current refinement
// session.
func (vv VertexView) IsNew() bool {
	return vv.t.verts[vv.Index].isNew
}
