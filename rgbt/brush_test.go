package rgbt

import "testing"

func TestBrushLevel(t *testing.T) {
	tri := testHexagon(t)
	one, zero := 1, 0

	if !tri.ProcessEdge(0, 1, Criteria{Level: &one}) {
		t.Fatal("expected the edge to be split")
	}
	mustValidate(t, tri)
	if tri.ProcessEdge(0, 1, Criteria{Level: &one}) {
		t.Fatal("edge should no longer exist")
	}

	newVertex := -1
	for _, v := range tri.VertexIndices() {
		if tri.Vertex(v).Level() == 1 {
			newVertex = v
		}
	}
	if newVertex < 0 {
		t.Fatal("new vertex not found")
	}
	if tri.ProcessEdge(0, newVertex, Criteria{Level: &one}) {
		t.Fatal("edge is already at the level")
	}
	if tri.ProcessVertex(0, Criteria{Level: &zero}) {
		t.Fatal("level 0 vertex should stay")
	}
	if tri.ProcessVertex(newVertex, Criteria{Level: &one}) {
		t.Fatal("vertex is not above the level")
	}
	if !tri.ProcessVertex(newVertex, Criteria{Level: &zero}) {
		t.Fatal("expected the vertex to be removed")
	}
	mustValidate(t, tri)
	if tri.NumFaces() != 6 || tri.NumVertices() != 7 {
		t.Fatalf("expected 6 faces and 7 vertices but got %d and %d",
			tri.NumFaces(), tri.NumVertices())
	}
}

func TestBrushLength(t *testing.T) {
	tri := testHexagon(t)
	long, short := 10.0, 0.9

	if tri.ProcessEdge(0, 1, Criteria{Length: &long}) {
		t.Fatal("short edge should not be split")
	}
	if !tri.ProcessEdge(2, 1, Criteria{Length: &short}) {
		t.Fatal("expected the border edge to be split")
	}
	mustValidate(t, tri)
	if tri.NumFaces() != 7 {
		t.Fatalf("expected 7 faces but got %d", tri.NumFaces())
	}

	for _, v := range tri.VertexIndices() {
		if tri.Vertex(v).Level() == 1 {
			if !tri.ProcessVertex(v, Criteria{Length: &long}) {
				t.Fatal("expected the vertex to be removed")
			}
		}
	}
	mustValidate(t, tri)
	if tri.NumFaces() != 6 {
		t.Fatalf("expected 6 faces but got %d", tri.NumFaces())
	}
}
