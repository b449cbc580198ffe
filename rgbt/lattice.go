package rgbt

// halfTurn is the angle of a straight line in lattice angle units.
const halfTurn = 6

// A compass is the fan of a vertex with the cumulative angle of each spoke,
// measured from the first spoke.
type compass struct {
	spokes []spoke
	angles []int
	total  int
	closed bool
}

func (t *Triangulation) compass(v int) *compass {
	sp, closed := t.spokes(v)
	c := &compass{spokes: sp, angles: make([]int, len(sp)), closed: closed}
	faces, indices, _ := t.fanOf(v)
	var angle int
	for i, f := range faces {
		c.angles[i] = angle
		angle += t.angle(f, indices[i])
		if i+1 < len(sp) {
			c.angles[i+1] = angle
		}
	}
	c.total = angle
	return c
}

// find returns the spoke leading to vertex far, or -1.
func (c *compass) find(far int) int {
	for i, s := range c.spokes {
		if s.far == far {
			return i
		}
	}
	return -1
}

// at returns the spoke at the given angle, or -1 if the angle falls inside
// a face or outside an open fan.
func (c *compass) at(angle int) int {
	if c.closed {
		angle %= c.total
		if angle < 0 {
			angle += c.total
		}
	} else if angle < 0 || angle > c.total {
		return -1
	}
	for i, a := range c.angles {
		if a == angle {
			return i
		}
	}
	return -1
}

// latticeNeighbor finds the neighbor of v in the lattice of the given
// level, in the direction obtained by rotating the direction from v to
// toward by rot angle units.
//
// Edges of finer levels along the direction are followed straight through
// the finer vertices. The walk fails if the direction does not run along
// an edge or if the lattice of that level is not refined there.
func (t *Triangulation) latticeNeighbor(v, toward, rot, level int) (int, bool) {
	c := t.compass(v)
	from := c.find(toward)
	if from < 0 {
		return -1, false
	}
	j := c.at(c.angles[from] + rot)
	if j < 0 {
		return -1, false
	}
	prev := v
	s := c.spokes[j]
	for step := 0; step < maxWalkSteps; step++ {
		data := t.edges(s.face)
		if data.colors[s.edge] != EdgeGreen || data.levels[s.edge] < level {
			return -1, false
		}
		cur := s.far
		if t.verts[cur].level <= level {
			return cur, true
		}
		c = t.compass(cur)
		back := c.find(prev)
		if back < 0 {
			return -1, false
		}
		next := c.at(c.angles[back] + halfTurn)
		if next < 0 && !c.closed {
			next = c.at(c.angles[back] - halfTurn)
		}
		if next < 0 {
			return -1, false
		}
		prev = cur
		s = c.spokes[next]
	}
	return -1, false
}

// borderNeighbor follows the border from v away from the border neighbor
// toward, returning the next vertex of the given level along the border.
func (t *Triangulation) borderNeighbor(v, toward, level int) (int, bool) {
	c := t.compass(v)
	if c.closed {
		return -1, false
	}
	from := c.find(toward)
	switch from {
	case 0:
		return t.latticeNeighbor(v, toward, c.total, level)
	case len(c.spokes) - 1:
		return t.latticeNeighbor(v, toward, -c.total, level)
	}
	return -1, false
}
