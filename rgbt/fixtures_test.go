package rgbt

import (
	"math"
	"testing"

	"github.com/unixpickle/model3d/model3d"
	"golang.org/x/exp/slices"
)

// hexagonFan is a regular hexagon split into six triangles around vertex 0.
func hexagonFan() ([]model3d.Coord3D, [][3]int) {
	points := []model3d.Coord3D{{}}
	for i := 0; i < 6; i++ {
		theta := float64(i) * math.Pi / 3
		points = append(points, model3d.XYZ(math.Cos(theta), math.Sin(theta), 0))
	}
	var faces [][3]int
	for i := 0; i < 6; i++ {
		faces = append(faces, [3]int{0, i + 1, (i+1)%6 + 1})
	}
	return points, faces
}

// flatGrid is a square grid of n by n cells in the XY plane, with every
// cell split along the same diagonal, so interior vertices have valence 6.
func flatGrid(n int) ([]model3d.Coord3D, [][3]int) {
	var points []model3d.Coord3D
	for j := 0; j <= n; j++ {
		for i := 0; i <= n; i++ {
			points = append(points, model3d.XYZ(float64(i), float64(j), 0))
		}
	}
	var faces [][3]int
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			faces = append(faces,
				[3]int{gridIndex(n, i, j), gridIndex(n, i+1, j), gridIndex(n, i+1, j+1)},
				[3]int{gridIndex(n, i, j), gridIndex(n, i+1, j+1), gridIndex(n, i, j+1)},
			)
		}
	}
	return points, faces
}

func gridIndex(n, i, j int) int {
	return j*(n+1) + i
}

func testTriangulation(t *testing.T, points []model3d.Coord3D, faces [][3]int,
	opts ...Option) *Triangulation {
	tri, err := NewTriangulationIndexed(points, faces, append(opts, WithDebugChecks())...)
	if err != nil {
		t.Fatal(err)
	}
	return tri
}

func testHexagon(t *testing.T, opts ...Option) *Triangulation {
	points, faces := hexagonFan()
	return testTriangulation(t, points, faces, opts...)
}

func testGrid(t *testing.T, n int, opts ...Option) *Triangulation {
	points, faces := flatGrid(n)
	return testTriangulation(t, points, faces, opts...)
}

func testSphere(t *testing.T, opts ...Option) *Triangulation {
	tri, err := NewTriangulation(model3d.NewMeshIcosphere(model3d.Origin, 1, 1),
		append(opts, WithDebugChecks())...)
	if err != nil {
		t.Fatal(err)
	}
	return tri
}

func mustValidate(t *testing.T, tri *Triangulation) {
	if err := tri.Validate(); err != nil {
		t.Fatal(err)
	}
}

// refineUniform recursively splits every green edge below the level, in
// order of face index or in reverse order.
func refineUniform(t *testing.T, tri *Triangulation, level int, reverse bool) {
	for {
		before := tri.NumVertices()
		faces := tri.FaceIndices()
		if reverse {
			for i, j := 0, len(faces)-1; i < j; i, j = i+1, j-1 {
				faces[i], faces[j] = faces[j], faces[i]
			}
		}
		for _, f := range faces {
			if tri.mesh.Faces[f].Deleted {
				continue
			}
			for i := 0; i < 3; i++ {
				if tri.edgeColor(f, i) != EdgeGreen || tri.edgeLevel(f, i) >= level {
					continue
				}
				if _, err := tri.RecursiveEdgeSplit(tri.v(f, i), tri.v(f, i+1)); err != nil {
					t.Fatal(err)
				}
				break
			}
		}
		if tri.NumVertices() == before {
			return
		}
	}
}

func countColors(tri *Triangulation, faces []int) map[FaceColor]int {
	res := map[FaceColor]int{}
	for _, f := range faces {
		res[tri.Face(f).Color()]++
	}
	return res
}

func coordsClose(c1, c2 model3d.Coord3D) bool {
	return c1.Dist(c2) < 1e-8
}

// lastVertex returns the live vertex with the highest index, which is the
// latest one inserted as long as no vertex was removed.
func lastVertex(tri *Triangulation) int {
	indices := tri.VertexIndices()
	return indices[len(indices)-1]
}

// faceSnapshot maps the sorted vertices of every live face to its color
// and level.
func faceSnapshot(tri *Triangulation) map[[3]int]faceInfo {
	res := map[[3]int]faceInfo{}
	for _, f := range tri.FaceIndices() {
		key := tri.mesh.Faces[f].V
		slices.Sort(key[:])
		res[key] = tri.faces[f]
	}
	return res
}
