package rgbt

// Reference color sequences around a vertex, compared up to rotation.
var (
	patternR4 = []FaceColor{RedRGG, RedGGR, RedRGG, RedGGR}

	patternR2GB1 = []FaceColor{RedGGR, RedRGG, Green, BlueGGR}
	patternR2GB2 = []FaceColor{RedGGR, RedRGG, BlueRGG, Green}

	patternGBGB1 = []FaceColor{Green, BlueGGR, Green, BlueGGR}
	patternGBGB2 = []FaceColor{Green, BlueRGG, Green, BlueRGG}

	patternG2B21 = []FaceColor{BlueGGR, Green, Green, BlueRGG}
	patternG2B22 = []FaceColor{BlueRGG, Green, Green, BlueGGR}

	pattern6G      = []FaceColor{Green, Green, Green, Green, Green, Green}
	pattern4G1BGGR = []FaceColor{Green, Green, Green, Green, BlueGGR}
	pattern4G1BRGG = []FaceColor{Green, Green, Green, Green, BlueRGG}
	pattern3G2R    = []FaceColor{Green, Green, Green, RedGGR, RedRGG}
)

// isMatch checks if colors equals pattern after some cyclic rotation.
func isMatch(colors, pattern []FaceColor) bool {
	n := len(pattern)
	if len(colors) != n {
		return false
	}
	for shift := 0; shift < n; shift++ {
		match := true
		for i, c := range pattern {
			if colors[(i+shift)%n] != c {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// A vertexFan is the ordered fan of faces around a vertex.
type vertexFan struct {
	v       int
	faces   []int
	indices []int
	colors  []FaceColor
}

func (t *Triangulation) vertexFan(v int) *vertexFan {
	faces, indices, _ := t.fanOf(v)
	colors := make([]FaceColor, len(faces))
	for i, f := range faces {
		colors[i] = t.color(f)
	}
	return &vertexFan{v: v, faces: faces, indices: indices, colors: colors}
}

// at returns the face at position i, taken cyclically.
func (vf *vertexFan) at(i int) int {
	return vf.faces[i%len(vf.faces)]
}

func (vf *vertexFan) index(i int) int {
	return vf.indices[i%len(vf.indices)]
}

func (vf *vertexFan) size() int {
	return len(vf.faces)
}

// find returns the first position with color c, or -1.
func (vf *vertexFan) find(c FaceColor) int {
	for i, x := range vf.colors {
		if x == c {
			return i
		}
	}
	return -1
}

func (vf *vertexFan) matches(patterns ...[]FaceColor) bool {
	for _, p := range patterns {
		if isMatch(vf.colors, p) {
			return true
		}
	}
	return false
}

// A removalKind names the operation which removes a vertex.
type removalKind int

const (
	removalNone removalKind = iota
	removalR4
	removalR2GB
	removalGBGB
	removalG2B2
	removalSwap6G
	removalSwap4G1B
	removalSwap3G2R
	removalBRB2G
	removalBorderR2
	removalBorderGB
)

func (r removalKind) String() string {
	return [...]string{
		"none", "r4-merge", "r2gb-merge", "gbgb-merge", "g2b2-merge",
		"gg-swap-6g", "gg-swap-4g1b", "gg-swap-3g2r", "brb2g-swap",
		"b-r2-merge", "b-gb-merge",
	}[r]
}

// classifyRemoval finds the operation that removes v, checking the
// patterns in a fixed order of preference.
func (t *Triangulation) classifyRemoval(v int) removalKind {
	if t.verts[v].level <= 0 {
		return removalNone
	}
	fan := t.vertexFan(v)
	if t.verts[v].isBorder {
		switch {
		case t.borderR2MergePossible(fan):
			return removalBorderR2
		case t.borderGBMergePossible(fan):
			return removalBorderGB
		}
		return removalNone
	}
	switch {
	case fan.matches(patternR4):
		return removalR4
	case fan.matches(patternR2GB1, patternR2GB2):
		return removalR2GB
	case fan.matches(patternGBGB1, patternGBGB2):
		return removalGBGB
	case fan.matches(patternG2B21, patternG2B22):
		return removalG2B2
	case t.swap6GPossible(fan):
		return removalSwap6G
	case t.swap4G1BPossible(fan):
		return removalSwap4G1B
	case t.swap3G2RPossible(fan):
		return removalSwap3G2R
	case t.brb2gSwapPossible(fan):
		return removalBRB2G
	}
	return removalNone
}
