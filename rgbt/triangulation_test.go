package rgbt

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

func TestNewTriangulation(t *testing.T) {
	tri := testSphere(t)
	mustValidate(t, tri)
	for _, f := range tri.FaceIndices() {
		face := tri.Face(f)
		if face.Color() != Green || face.Level() != 0 {
			t.Fatalf("face %d: expected GREEN level 0 but got %s level %d", f,
				face.Color(), face.Level())
		}
	}
	for _, v := range tri.VertexIndices() {
		vert := tri.Vertex(v)
		if vert.IsBorder() {
			t.Fatalf("vertex %d should not be on the border", v)
		}
		if arity := len(tri.VV(v, false)); vert.BaseArity() != arity {
			t.Fatalf("vertex %d: expected arity %d but got %d", v, arity, vert.BaseArity())
		}
	}
	if n := len(tri.Mesh().TriangleSlice()); n != tri.NumFaces() {
		t.Fatalf("expected %d exported triangles but got %d", tri.NumFaces(), n)
	}

	if _, err := NewTriangulation(model3d.NewMesh()); err == nil {
		t.Fatal("expected an error for an empty mesh")
	}
}

func TestGGSplitHexagon(t *testing.T) {
	tri := testHexagon(t)
	if arity := tri.Vertex(0).BaseArity(); arity != 6 {
		t.Fatalf("expected arity 6 but got %d", arity)
	}
	f, e, ok := tri.IsValidEdge(0, 1)
	if !ok {
		t.Fatal("missing edge")
	}
	if !tri.EdgeSplitPossible(f, e) {
		t.Fatal("split should be possible")
	}
	if err := tri.EdgeSplit(f, e); err != nil {
		t.Fatal(err)
	}
	mustValidate(t, tri)

	if tri.NumFaces() != 8 || tri.NumVertices() != 8 {
		t.Fatalf("expected 8 faces and 8 vertices but got %d and %d",
			tri.NumFaces(), tri.NumVertices())
	}

	newVertex := -1
	for _, v := range tri.VertexIndices() {
		if tri.Vertex(v).Level() == 1 {
			newVertex = v
		}
	}
	if newVertex < 0 {
		t.Fatal("no vertex at level 1")
	}
	if tri.Vertex(newVertex).IsBorder() {
		t.Fatal("new vertex should be interior")
	}
	expected := model3d.XYZ(0.5, 0, 0)
	if p := tri.Vertex(newVertex).Position(); !coordsClose(p, expected) {
		t.Fatalf("expected position %v but got %v", expected, p)
	}

	faces, _ := tri.VF(newVertex)
	colors := countColors(tri, faces)
	if len(faces) != 4 || colors[RedRGG] != 2 || colors[RedGGR] != 2 {
		t.Fatalf("unexpected colors around new vertex: %v", colors)
	}
	for i, f := range faces {
		next := faces[(i+1)%len(faces)]
		if tri.Face(f).Color() == tri.Face(next).Color() {
			t.Fatalf("expected alternating colors but got %v", colors)
		}
	}
	if colors := countColors(tri, tri.FaceIndices()); colors[Green] != 4 {
		t.Fatalf("expected 4 GREEN faces but got %d", colors[Green])
	}
	if arity := tri.Vertex(0).BaseArity(); arity != 6 {
		t.Fatalf("expected arity 6 but got %d", arity)
	}
	if n := tri.BaseIncidentEdges(newVertex); n != 6 {
		t.Fatalf("expected 6 incident edges but got %d", n)
	}
}

func TestRemoveLevelZero(t *testing.T) {
	tri := testHexagon(t)
	if tri.VertexRemovalPossible(0) {
		t.Fatal("level 0 vertex should not be removable")
	}
	err := tri.RemoveVertex(0)
	if !errors.Is(err, ErrNotLegalHere) {
		t.Fatalf("expected %v but got %v", ErrNotLegalHere, err)
	}
	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Op != "vertex removal" {
		t.Fatalf("unexpected error: %v", err)
	}
	if tri.NumFaces() != 6 || tri.NumVertices() != 7 {
		t.Fatalf("expected 6 faces and 7 vertices but got %d and %d",
			tri.NumFaces(), tri.NumVertices())
	}
	mustValidate(t, tri)
}

func TestSplitRemoveRoundTrip(t *testing.T) {
	for _, scheme := range []func() Scheme{
		func() Scheme { return NewButterflyScheme() },
		func() Scheme { return NewLoopScheme() },
	} {
		points, faces := hexagonFan()
		tri := testTriangulation(t, points, faces, WithScheme(scheme()))
		name := tri.Scheme().Name()

		split, err := tri.RecursiveEdgeSplit(1, 0)
		if err != nil {
			t.Fatal(err)
		} else if !split {
			t.Fatalf("%s: edge was not split", name)
		}
		var newVertex int
		for _, v := range tri.VertexIndices() {
			if v > 6 {
				newVertex = v
			}
		}
		if !tri.VertexRemovalPossible(newVertex) {
			t.Fatalf("%s: new vertex should be removable", name)
		}
		if err := tri.RemoveVertex(newVertex); err != nil {
			t.Fatal(err)
		}
		mustValidate(t, tri)

		if tri.NumFaces() != 6 || tri.NumVertices() != 7 {
			t.Fatalf("%s: expected 6 faces and 7 vertices but got %d and %d", name,
				tri.NumFaces(), tri.NumVertices())
		}
		for _, f := range tri.FaceIndices() {
			if c, l := tri.Face(f).Color(), tri.Face(f).Level(); c != Green || l != 0 {
				t.Fatalf("%s: expected GREEN level 0 but got %s level %d", name, c, l)
			}
		}
		for i := 1; i <= 6; i++ {
			if _, _, ok := tri.IsValidEdge(0, i); !ok {
				t.Fatalf("%s: missing edge (0, %d)", name, i)
			}
			if p := tri.Vertex(i).Position(); !coordsClose(p, points[i]) {
				t.Fatalf("%s: vertex %d: expected %v but got %v", name, i, points[i], p)
			}
		}
	}
}

func TestEdgeSplitErrors(t *testing.T) {
	tri := testHexagon(t)
	if err := tri.EdgeSplit(100, 0); !errors.Is(err, ErrNotLegalHere) {
		t.Fatalf("expected %v but got %v", ErrNotLegalHere, err)
	}
	f, e, _ := tri.IsValidEdge(0, 1)
	if err := tri.EdgeSplit(f, e); err != nil {
		t.Fatal(err)
	}
	for _, f := range tri.FaceIndices() {
		red, ok := tri.Face(f).RedEdge()
		if !ok {
			continue
		}
		if tri.EdgeSplitPossible(f, red) {
			t.Fatal("red edge should not be splittable")
		}
		if err := tri.EdgeSplit(f, red); !errors.Is(err, ErrNotLegalHere) {
			t.Fatalf("expected %v but got %v", ErrNotLegalHere, err)
		}
	}
	if _, err := tri.RecursiveEdgeSplit(1, 3); !errors.Is(err, ErrNotLegalHere) {
		t.Fatalf("expected %v but got %v", ErrNotLegalHere, err)
	}
	mustValidate(t, tri)
}

func TestRecursiveSplitCascade(t *testing.T) {
	tri := testGrid(t, 4)
	center := gridIndex(4, 2, 2)

	// Splitting every edge around the center twice forces splits of the
	// coarser edges nearby.
	for level := 1; level <= 2; level++ {
		for _, n := range tri.VV(center, false) {
			f, e, ok := tri.IsValidEdge(center, n)
			if !ok || tri.Face(f).EdgeColor(e) != EdgeGreen {
				continue
			}
			if tri.Face(f).EdgeLevel(e) >= level {
				continue
			}
			if _, err := tri.RecursiveEdgeSplit(center, n); err != nil {
				t.Fatal(err)
			}
			mustValidate(t, tri)
		}
	}
	for _, n := range tri.VV(center, false) {
		f, e, ok := tri.IsValidEdge(center, n)
		if !ok {
			t.Fatal("missing edge")
		}
		if l := tri.Face(f).EdgeLevel(e); l < 1 {
			t.Fatalf("expected edge level at least 1 but got %d", l)
		}
	}
	if tri.NumVertices() <= 25 {
		t.Fatalf("expected new vertices but got %d", tri.NumVertices())
	}
}

func TestUniformRefinement(t *testing.T) {
	tri := testSphere(t)
	numFaces, numVerts := tri.NumFaces(), tri.NumVertices()
	refineUniform(t, tri, 1, false)
	mustValidate(t, tri)

	if tri.NumFaces() != numFaces*4 {
		t.Fatalf("expected %d faces but got %d", numFaces*4, tri.NumFaces())
	}
	if expected := numVerts + numFaces*3/2; tri.NumVertices() != expected {
		t.Fatalf("expected %d vertices but got %d", expected, tri.NumVertices())
	}
	for _, f := range tri.FaceIndices() {
		if c, l := tri.Face(f).Color(), tri.Face(f).Level(); c != Green || l != 1 {
			t.Fatalf("expected GREEN level 1 but got %s level %d", c, l)
		}
	}
	for _, v := range tri.VertexIndices() {
		if p := tri.Vertex(v).Position(); p.Norm() > 1.2 || p.Norm() < 0.8 {
			t.Fatalf("vertex %d is far from the sphere: %v", v, p)
		}
	}
}

func TestCommonEdgeVertex(t *testing.T) {
	tri := testHexagon(t)
	if e, ok := tri.CommonEdge(0, 1); !ok || tri.Face(0).Vertex(e).Index != 2 {
		t.Fatalf("unexpected common edge %d", e)
	}
	if _, ok := tri.CommonEdge(0, 3); ok {
		t.Fatal("faces 0 and 3 should not share an edge")
	}
	if v, ok := tri.CommonVertex([]int{0, 1, 2, 3, 4, 5}); !ok || v != 0 {
		t.Fatalf("expected common vertex 0 but got %d", v)
	}
	split, err := tri.SplitCommonEdge(0, 1)
	if err != nil {
		t.Fatal(err)
	} else if !split {
		t.Fatal("expected a split")
	}
	mustValidate(t, tri)
	if err := tri.RemoveCommonVertex([]int{0, 3}); !errors.Is(err, ErrNotLegalHere) {
		t.Fatalf("expected %v but got %v", ErrNotLegalHere, err)
	}
}

func TestRemovalPatterns(t *testing.T) {
	for _, c := range []struct {
		splits [][2]int
		kind   removalKind
		border bool
	}{
		{[][2]int{{0, 1}}, removalR4, false},
		{[][2]int{{1, 2}}, removalBorderR2, true},
		{[][2]int{{0, 1}, {1, 2}}, removalBorderGB, true},
		{[][2]int{{0, 1}, {0, 2}}, removalR2GB, false},
		{[][2]int{{1, 6}, {0, 2}, {0, 1}}, removalGBGB, false},
		{[][2]int{{0, 2}, {0, 6}, {0, 1}}, removalG2B2, false},
		{[][2]int{{0, 6}, {6, 1}, {0, 2}, {1, 2}, {0, 1}}, removalSwap6G, false},
		{[][2]int{{0, 6}, {0, 2}, {1, 2}, {0, 1}}, removalSwap4G1B, false},
		{[][2]int{{0, 2}, {1, 2}, {0, 1}}, removalSwap3G2R, false},
		{[][2]int{{0, 6}, {0, 1}, {0, 2}}, removalBRB2G, false},
	} {
		tri := testHexagon(t)
		for _, pair := range c.splits {
			if _, err := tri.RecursiveEdgeSplit(pair[0], pair[1]); err != nil {
				t.Fatal(err)
			}
		}
		mustValidate(t, tri)

		// The last split inserted the vertex to remove.
		v := lastVertex(tri)
		if kind := tri.classifyRemoval(v); kind != c.kind {
			t.Fatalf("expected %s but got %s", c.kind, kind)
		}
		if tri.Vertex(v).IsBorder() != c.border {
			t.Fatalf("%s: expected border flag %v", c.kind, c.border)
		}
		if !tri.VertexRemovalPossible(v) {
			t.Fatalf("%s: vertex should be removable", c.kind)
		}

		numFaces, numVertices := tri.NumFaces(), tri.NumVertices()
		if err := tri.RemoveVertex(v); err != nil {
			t.Fatalf("%s: %v", c.kind, err)
		}
		mustValidate(t, tri)
		if !tri.Vertex(v).Deleted() {
			t.Fatalf("%s: vertex was not deleted", c.kind)
		}
		expectedFaces := numFaces - 2
		if c.border {
			expectedFaces = numFaces - 1
		}
		if tri.NumFaces() != expectedFaces || tri.NumVertices() != numVertices-1 {
			t.Fatalf("%s: expected %d faces and %d vertices but got %d and %d", c.kind,
				expectedFaces, numVertices-1, tri.NumFaces(), tri.NumVertices())
		}
		for _, f := range tri.FaceIndices() {
			if !tri.FaceCorrect(f) {
				t.Fatalf("%s: face %d is not correct", c.kind, f)
			}
		}
	}
}

func TestSwap6GUndo(t *testing.T) {
	tri := testHexagon(t)
	for _, pair := range [][2]int{{0, 6}, {6, 1}, {0, 2}, {1, 2}, {0, 1}} {
		if _, err := tri.RecursiveEdgeSplit(pair[0], pair[1]); err != nil {
			t.Fatal(err)
		}
	}
	v := lastVertex(tri)
	fan := tri.vertexFan(v)
	if !tri.swap6GPossible(fan) {
		t.Fatal("expected a fan of six GREEN faces")
	}

	// Flipping and restoring the first edge leaves the same faces.
	k, _ := tri.swap6GAnchor(fan)
	before := faceSnapshot(tri)
	f0, e0 := fan.at(k), fan.index(k)+2
	g0, _ := tri.ff(f0, e0)
	opposite := tri.v(f0, e0+2)
	saved := [2]faceInfo{tri.faces[f0], tri.faces[g0]}
	tri.ggSwapAux(f0, e0)
	tri.undoGGSwap(f0, g0, opposite, saved)
	compareSnapshots(t, before, faceSnapshot(tri))
	mustValidate(t, tri)

	// A swap which cannot do both flips does nothing.
	blocked := fan.at(k + 3)
	level := tri.level(blocked)
	tri.setFace(blocked, BlueGGR, level)
	before = faceSnapshot(tri)
	if tri.swap6G(tri.vertexFan(v)) {
		t.Fatal("swap should fail")
	}
	compareSnapshots(t, before, faceSnapshot(tri))

	tri.setFace(blocked, Green, level)
	mustValidate(t, tri)
	if err := tri.RemoveVertex(v); err != nil {
		t.Fatal(err)
	}
	mustValidate(t, tri)
	if !tri.Vertex(v).Deleted() {
		t.Fatal("vertex was not deleted")
	}
}

func TestFaceCorrect(t *testing.T) {
	tri := testHexagon(t)
	for _, f := range tri.FaceIndices() {
		if !tri.FaceCorrect(f) {
			t.Fatalf("face %d should be correct", f)
		}
	}

	// A RED face needs a vertex of the next level.
	tri.setFace(0, RedGGR, 0)
	if tri.FaceCorrect(0) {
		t.Fatal("RED face without a finer vertex should not be correct")
	}
	if tri.Validate() == nil {
		t.Fatal("expected a validation error")
	}

	// The levels of a shared edge must agree.
	tri.setFace(0, Green, 1)
	if tri.FaceCorrect(0) {
		t.Fatal("GREEN face above its neighbors should not be correct")
	}

	tri.setFace(0, Green, 0)
	if !tri.FaceCorrect(0) {
		t.Fatal("restored face should be correct")
	}
	mustValidate(t, tri)
}

func compareSnapshots(t *testing.T, expected, actual map[[3]int]faceInfo) {
	if len(actual) != len(expected) {
		t.Fatalf("expected %d faces but got %d", len(expected), len(actual))
	}
	for key, info := range expected {
		if a, ok := actual[key]; !ok || a != info {
			t.Fatalf("face %v: expected %v but got %v", key, info, a)
		}
	}
}
