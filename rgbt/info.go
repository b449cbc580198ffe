package rgbt

import "fmt"

// A FaceColor encodes how a triangle relates to the regular subdivision of
// its level.
//
// The letters of the RED and BLUE variants list edge colors (G for green, R
// for red) starting from the pivot vertex: the highest level vertex for RED
// triangles and the lowest level vertex for BLUE triangles.
type FaceColor uint8

const (
	Green FaceColor = iota
	RedGGR
	RedRGG
	BlueGGR
	BlueRGG
)

func (f FaceColor) String() string {
	switch f {
	case Green:
		return "GREEN"
	case RedGGR:
		return "RED_GGR"
	case RedRGG:
		return "RED_RGG"
	case BlueGGR:
		return "BLUE_GGR"
	case BlueRGG:
		return "BLUE_RGG"
	}
	return fmt.Sprintf("FaceColor(%d)", int(f))
}

func (f FaceColor) IsGreen() bool {
	return f == Green
}

func (f FaceColor) IsRed() bool {
	return f == RedGGR || f == RedRGG
}

func (f FaceColor) IsBlue() bool {
	return f == BlueGGR || f == BlueRGG
}

// An EdgeColor is the color of a single edge.
type EdgeColor uint8

const (
	EdgeGreen EdgeColor = iota
	EdgeRed
)

func (e EdgeColor) String() string {
	if e == EdgeRed {
		return "RED"
	}
	return "GREEN"
}

type edgeRule struct {
	color EdgeColor

	// levelOffset is added to the face level to get the edge level.
	levelOffset int

	// angle is the opening angle of the vertex at the start of the edge,
	// in units of 30 degrees on the regular lattice.
	angle int
}

// edgeRules is indexed by face color and then by offset from the pivot
// vertex, so entry k describes edge (z+k)%3 and vertex (z+k)%3.
var edgeRules = [5][3]edgeRule{
	Green: {
		{EdgeGreen, 0, 2},
		{EdgeGreen, 0, 2},
		{EdgeGreen, 0, 2},
	},
	RedGGR: {
		{EdgeGreen, 1, 3},
		{EdgeGreen, 0, 2},
		{EdgeRed, 0, 1},
	},
	RedRGG: {
		{EdgeRed, 0, 3},
		{EdgeGreen, 0, 1},
		{EdgeGreen, 1, 2},
	},
	BlueGGR: {
		{EdgeGreen, 1, 1},
		{EdgeGreen, 1, 4},
		{EdgeRed, 0, 1},
	},
	BlueRGG: {
		{EdgeRed, 0, 1},
		{EdgeGreen, 1, 1},
		{EdgeGreen, 1, 4},
	},
}

type faceInfo struct {
	color FaceColor
	level int
}

type vertexInfo struct {
	level     int
	isBorder  bool
	baseArity int

	// isNew is set on vertices created during the current refinement
	// session.
	isNew bool

	// marked guards splitGreenEdgeIfNeeded against re-entering the same
	// vertex.
	marked bool
}

// A sideTable stores per-vertex or per-face data next to a Mesh.
type sideTable[T any] []T

func (s *sideTable[T]) Resize(n int) {
	if n <= len(*s) {
		*s = (*s)[:n]
		return
	}
	*s = append(*s, make([]T, n-len(*s))...)
}

// edgeData is the derived information of one face.
type edgeData struct {
	colors [3]EdgeColor
	levels [3]int
	angles [3]int
}

func (t *Triangulation) edges(f int) edgeData {
	info := t.faces[f]
	var z int
	if info.color.IsRed() {
		z = t.maxLevelVertex(f)
	} else if info.color.IsBlue() {
		z = t.minLevelVertex(f)
	}
	var res edgeData
	for k, rule := range edgeRules[info.color] {
		i := (z + k) % 3
		res.colors[i] = rule.color
		res.levels[i] = info.level + rule.levelOffset
		res.angles[i] = rule.angle
	}
	return res
}

func (t *Triangulation) color(f int) FaceColor {
	return t.faces[f].color
}

func (t *Triangulation) level(f int) int {
	return t.faces[f].level
}

func (t *Triangulation) setFace(f int, c FaceColor, level int) {
	t.faces[f] = faceInfo{color: c, level: level}
	t.touch(f)
}

// v returns vertex i of face f, with i taken modulo 3.
func (t *Triangulation) v(f, i int) int {
	return t.mesh.Faces[f].V[i%3]
}

// vl returns the level of vertex i of face f.
func (t *Triangulation) vl(f, i int) int {
	return t.verts[t.v(f, i)].level
}

// ff returns the neighbor across edge i of face f and the edge index inside
// the neighbor.
func (t *Triangulation) ff(f, i int) (int, int) {
	face := &t.mesh.Faces[f]
	return face.FF[i%3], face.FFi[i%3]
}

func (t *Triangulation) isBorderEdge(f, i int) bool {
	return t.mesh.IsBorder(f, i%3)
}

func (t *Triangulation) edgeColor(f, i int) EdgeColor {
	return t.edges(f).colors[i%3]
}

func (t *Triangulation) edgeLevel(f, i int) int {
	return t.edges(f).levels[i%3]
}

func (t *Triangulation) angle(f, i int) int {
	return t.edges(f).angles[i%3]
}

// maxLevelVertex returns the index of the first vertex of f with the
// highest level.
func (t *Triangulation) maxLevelVertex(f int) int {
	best := 0
	for i := 1; i < 3; i++ {
		if t.vl(f, i) > t.vl(f, best) {
			best = i
		}
	}
	return best
}

func (t *Triangulation) minLevelVertex(f int) int {
	best := 0
	for i := 1; i < 3; i++ {
		if t.vl(f, i) < t.vl(f, best) {
			best = i
		}
	}
	return best
}

func (t *Triangulation) maxLevelEdge(f int) int {
	levels := t.edges(f).levels
	best := 0
	for i := 1; i < 3; i++ {
		if levels[i] > levels[best] {
			best = i
		}
	}
	return best
}

func (t *Triangulation) minLevelEdge(f int) int {
	levels := t.edges(f).levels
	best := 0
	for i := 1; i < 3; i++ {
		if levels[i] < levels[best] {
			best = i
		}
	}
	return best
}

func (t *Triangulation) countVertexAtLevel(f, level int) int {
	var n int
	for i := 0; i < 3; i++ {
		if t.vl(f, i) == level {
			n++
		}
	}
	return n
}

// redEdge returns the index of the red edge of a RED or BLUE face.
func (t *Triangulation) redEdge(f int) int {
	colors := t.edges(f).colors
	for i, c := range colors {
		if c == EdgeRed {
			return i
		}
	}
	panic("green face has no red edge")
}

// numBorderEdgesAt counts the border edges of f touching vertex i.
func (t *Triangulation) numBorderEdgesAt(f, i int) int {
	var n int
	if t.isBorderEdge(f, i) {
		n++
	}
	if t.isBorderEdge(f, i+2) {
		n++
	}
	return n
}

func (t *Triangulation) containsVertex(f, v int) bool {
	return t.mesh.indexOf(f, v) >= 0
}
