package rgbt

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// A Triangulation is an RGB triangulation: a mesh in which every face carries
// a color and a level, so that the mesh can be refined and coarsened locally
// while staying consistent with a regular subdivision of the base mesh.
//
// A Triangulation is not safe for concurrent use.
type Triangulation struct {
	mesh   *Mesh
	faces  sideTable[faceInfo]
	verts  sideTable[vertexInfo]
	scheme Scheme
	debug  bool

	// session is set while a refinement session marks new vertices.
	session bool

	// touched collects the faces changed by an operation when non-nil.
	touched map[int]struct{}
}

// NewTriangulationIndexed creates a level 0 triangulation from indexed
// triangles with consistent orientation.
func NewTriangulationIndexed(points []model3d.Coord3D, faces [][3]int,
	opts ...Option) (*Triangulation, error) {
	m, err := NewMesh(points, faces)
	if err != nil {
		return nil, errors.Wrap(err, "create triangulation")
	}
	o := applyOptions(opts)
	t := &Triangulation{mesh: m, scheme: o.scheme, debug: o.debug}
	m.RegisterFaceTable(&t.faces)
	m.RegisterVertexTable(&t.verts)
	for f, face := range m.Faces {
		if !face.Deleted {
			t.faces[f] = faceInfo{color: Green}
		}
	}
	for v, vert := range m.Vertices {
		if vert.Deleted {
			continue
		}
		t.verts[v] = vertexInfo{
			isBorder:  !t.isVertexInternal(v),
			baseArity: len(m.neighbors(vert.VF, vert.VFi)),
		}
	}
	if err := t.scheme.init(t); err != nil {
		return nil, errors.Wrap(err, "create triangulation")
	}
	return t, nil
}

// NewTriangulation creates a level 0 triangulation from a mesh, merging
// vertices with identical coordinates.
func NewTriangulation(mesh *model3d.Mesh, opts ...Option) (*Triangulation, error) {
	indices := map[model3d.Coord3D]int{}
	var points []model3d.Coord3D
	var faces [][3]int
	for _, tri := range mesh.TriangleSlice() {
		var face [3]int
		for i, p := range tri {
			idx, ok := indices[p]
			if !ok {
				idx = len(points)
				indices[p] = idx
				points = append(points, p)
			}
			face[i] = idx
		}
		faces = append(faces, face)
	}
	if len(faces) == 0 {
		return nil, errors.New("create triangulation: empty mesh")
	}
	return NewTriangulationIndexed(points, faces, opts...)
}

// Mesh exports the live faces as a model3d mesh.
func (t *Triangulation) Mesh() *model3d.Mesh {
	res := model3d.NewMesh()
	for _, face := range t.mesh.Faces {
		if face.Deleted {
			continue
		}
		res.Add(&model3d.Triangle{
			t.mesh.Vertices[face.V[0]].P,
			t.mesh.Vertices[face.V[1]].P,
			t.mesh.Vertices[face.V[2]].P,
		})
	}
	return res
}

// Storage returns a read-only view of the underlying connectivity.
func (t *Triangulation) Storage() Storage {
	return t.mesh
}

// Scheme returns the scheme positioning new vertices.
func (t *Triangulation) Scheme() Scheme {
	return t.scheme
}

func (t *Triangulation) NumFaces() int {
	return t.mesh.NumFaces()
}

func (t *Triangulation) NumVertices() int {
	return t.mesh.NumVertices()
}

// FaceIndices returns the indices of all live faces.
func (t *Triangulation) FaceIndices() []int {
	res := make([]int, 0, t.mesh.NumFaces())
	for f, face := range t.mesh.Faces {
		if !face.Deleted {
			res = append(res, f)
		}
	}
	return res
}

// VertexIndices returns the indices of all live vertices.
func (t *Triangulation) VertexIndices() []int {
	res := make([]int, 0, t.mesh.NumVertices())
	for v, vert := range t.mesh.Vertices {
		if !vert.Deleted {
			res = append(res, v)
		}
	}
	return res
}

// Validate checks the adjacency of the mesh and the color, level and angle
// consistency of every face.
func (t *Triangulation) Validate() error {
	if err := CheckTopology(t.mesh); err != nil {
		return err
	}
	for f, face := range t.mesh.Faces {
		if face.Deleted {
			continue
		}
		if err := t.checkFace(f); err != nil {
			return err
		}
	}
	return nil
}

func (t *Triangulation) debugCheck(op string) {
	if !t.debug {
		return
	}
	if err := t.Validate(); err != nil {
		panic(fmt.Sprintf("%s left an invalid triangulation: %v", op, err))
	}
}

func (t *Triangulation) touch(f int) {
	if t.touched != nil {
		t.touched[f] = struct{}{}
	}
}

// record runs fn and returns the live faces it changed.
func (t *Triangulation) record(fn func()) []int {
	old := t.touched
	t.touched = map[int]struct{}{}
	fn()
	touched := maps.Keys(t.touched)
	t.touched = old
	slices.Sort(touched)
	res := touched[:0]
	for _, f := range touched {
		if old != nil {
			old[f] = struct{}{}
		}
		if !t.mesh.Faces[f].Deleted {
			res = append(res, f)
		}
	}
	return res
}
