package rgbt

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestTriangleNeighbors(t *testing.T) {
	tri := testHexagon(t)
	face := tri.Face(0)
	for i := 0; i < 3; i++ {
		if a := face.Angle(i); a != 2 {
			t.Fatalf("vertex %d: expected angle 2 but got %d", i, a)
		}
		n, ni := face.Neighbor(i)
		if face.EdgeIsBorder(i) {
			if n.Index != face.Index || ni != i {
				t.Fatalf("edge %d: expected the face itself but got %d (%d)", i, n.Index, ni)
			}
		} else if n.Vertex(ni).Index != face.Vertex(i+1).Index ||
			n.Vertex(ni+1).Index != face.Vertex(i).Index {
			t.Fatalf("edge %d: neighbor %d does not share it", i, n.Index)
		}

		// Only the center is away from the border.
		expected := 1
		if face.Vertex(i).Index == 0 {
			expected = 0
		}
		if n := face.NumBorderEdgesAt(i); n != expected {
			t.Fatalf("vertex %d: expected %d border edges but got %d", i, expected, n)
		}
	}

	if err := CheckTopology(tri.Storage()); err != nil {
		t.Fatal(err)
	}
	if n := tri.Storage().NumFaceSlots(); n < tri.NumFaces() {
		t.Fatalf("expected at least %d face slots but got %d", tri.NumFaces(), n)
	}
}

func TestTriangleLevels(t *testing.T) {
	tri := testHexagon(t)
	f, e, _ := tri.IsValidEdge(0, 1)
	if err := tri.EdgeSplit(f, e); err != nil {
		t.Fatal(err)
	}
	newVertex := lastVertex(tri)

	var numRed int
	for _, f := range tri.FaceIndices() {
		face := tri.Face(f)
		if face.CountVertexAtLevel(1) == 0 {
			if !face.Color().IsGreen() {
				t.Fatalf("face %d: expected GREEN but got %s", f, face.Color())
			}
			continue
		}
		numRed++
		if !face.Color().IsRed() || face.CountVertexAtLevel(0) != 2 {
			t.Fatalf("face %d: unexpected %s face", f, face.Color())
		}
		if v := face.Vertex(face.MaxLevelVertex()).Index; v != newVertex {
			t.Fatalf("face %d: expected max level vertex %d but got %d", f, newVertex, v)
		}
		if l := face.Vertex(face.MinLevelVertex()).Level(); l != 0 {
			t.Fatalf("face %d: expected min level 0 but got %d", f, l)
		}
		if l := face.EdgeLevel(face.MaxLevelEdge()); l != 1 {
			t.Fatalf("face %d: expected max edge level 1 but got %d", f, l)
		}
		if l := face.EdgeLevel(face.MinLevelEdge()); l != 0 {
			t.Fatalf("face %d: expected min edge level 0 but got %d", f, l)
		}
	}
	if numRed != 4 {
		t.Fatalf("expected 4 RED faces but got %d", numRed)
	}

	if tri.Vertex(newVertex).IsNew() {
		t.Fatal("vertex split outside of a session should not be new")
	}
	if err := tri.RemoveVertex(newVertex); err != nil {
		t.Fatal(err)
	}
	if !tri.Vertex(newVertex).Deleted() {
		t.Fatal("expected the vertex to be deleted")
	}
	for _, f := range tri.FaceIndices() {
		if tri.Face(f).Deleted() {
			t.Fatalf("face %d is listed but deleted", f)
		}
	}
}

func TestSessionMarksNewVertices(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	tri := testHexagon(t)
	NewRefiner(tri, nil).Start(false, false)
	mustValidate(t, tri)

	for _, v := range tri.VertexIndices() {
		if expected := v > 6; tri.Vertex(v).IsNew() != expected {
			t.Fatalf("vertex %d: expected new flag %v", v, expected)
		}
	}
	for _, msg := range []string{"refinement started", "refinement finished"} {
		if !strings.Contains(buf.String(), msg) {
			t.Fatalf("expected %q in the log", msg)
		}
	}
}
