package rgbt

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model3d"
)

// RefinementConfig controls where a Refiner refines and coarsens a
// Triangulation.
type RefinementConfig struct {
	// MaxTriangles is the face budget. Refinement stops when the mesh
	// reaches it, and coarsening is forced while the mesh exceeds it.
	MaxTriangles int

	// MaxEdgeLength is the longest edge allowed outside of Box.
	MaxEdgeLength float64

	// MaxEdgeLengthInBox is the longest edge allowed inside of Box.
	MaxEdgeLengthInBox float64

	// MinEdgeLevel is the level every edge is refined to, regardless of
	// its length.
	MinEdgeLevel int

	// MaxEdgeLevelInBox limits refinement by length inside of Box.
	MaxEdgeLevelInBox int

	// Box is the region of interest. Vertices inside of it are never
	// removed. If nil, the whole mesh uses the settings for outside of the
	// box.
	Box *model3d.Rect

	// KeepBorder prevents the removal of border vertices.
	KeepBorder bool
}

// DefaultRefinementConfig creates a configuration with a generous face
// budget that only refines to level 1.
func DefaultRefinementConfig() *RefinementConfig {
	return &RefinementConfig{
		MaxTriangles:       100000,
		MaxEdgeLength:      math.Inf(1),
		MaxEdgeLengthInBox: math.Inf(1),
		MinEdgeLevel:       1,
		MaxEdgeLevelInBox:  4,
	}
}

// maxLevel is the level above which no edge is ever refined.
func (r *RefinementConfig) maxLevel() int {
	return essentials.MaxInt(r.MinEdgeLevel, r.MaxEdgeLevelInBox)
}

// A Refiner runs selective refinement on a Triangulation, one primitive
// operation per step, driven by two priority queues.
//
// Step and Run must not be called concurrently, but Stop may be called from
// any goroutine.
type Refiner struct {
	t      *Triangulation
	config RefinementConfig

	simple  bool
	running bool
	stopped atomic.Bool

	refine  *refQueue
	coarsen *refQueue

	steps int
}

// NewRefiner creates a refiner for t. The configuration is copied.
func NewRefiner(t *Triangulation, config *RefinementConfig) *Refiner {
	if config == nil {
		config = DefaultRefinementConfig()
	}
	return &Refiner{t: t, config: *config}
}

// Start begins a session, filling the queues from the whole mesh.
//
// The simple algorithm removes every removable vertex before refining. The
// other algorithm interleaves both queues by priority.
//
// If interactive is false, Start runs the whole session before it returns.
// Otherwise the caller drives it with Step, Run or RunPaced.
func (r *Refiner) Start(interactive, simple bool) {
	r.simple = simple
	r.running = true
	r.stopped.Store(false)
	r.steps = 0
	r.refine = newRefQueue()
	r.coarsen = newRefQueue()

	t := r.t
	t.session = true
	for v := range t.verts {
		t.verts[v].isNew = false
	}
	for _, f := range t.FaceIndices() {
		r.enqueueFace(f)
	}
	Logger().Info("refinement started", "faces", t.NumFaces(), "vertices", t.NumVertices(),
		"simple", simple, "refine_queue", r.refine.Len(), "coarsen_queue", r.coarsen.Len())

	if !interactive {
		for r.Step() {
		}
	}
}

// Stop ends the session after the current step.
func (r *Refiner) Stop() {
	r.stopped.Store(true)
}

// Running checks if the session has work left and was not stopped.
func (r *Refiner) Running() bool {
	return r.running && !r.stopped.Load()
}

// Steps returns the number of operations applied in the session.
func (r *Refiner) Steps() int {
	return r.steps
}

// Step applies one refinement or coarsening operation. It returns false
// once no queued operation is both legal and useful, or after Stop.
func (r *Refiner) Step() bool {
	if !r.Running() {
		r.finish()
		return false
	}
	var ok bool
	if r.simple {
		ok = r.simpleStep()
	} else {
		ok = r.complexStep()
	}
	if !ok {
		r.finish()
		return false
	}
	r.steps++
	return true
}

// Run steps until the session is over or ctx is done. It returns the
// number of steps applied by this call.
func (r *Refiner) Run(ctx context.Context) (int, error) {
	var n int
	for {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if !r.Step() {
			return n, nil
		}
		n++
	}
}

// RunPaced is like Run, but waits delay before each step and calls onStep
// after it, if onStep is non-nil.
func (r *Refiner) RunPaced(ctx context.Context, delay time.Duration,
	onStep func(step int)) (int, error) {
	ticker := time.NewTicker(delay)
	defer ticker.Stop()
	var n int
	for {
		select {
		case <-ctx.Done():
			return n, ctx.Err()
		case <-ticker.C:
		}
		if !r.Step() {
			return n, nil
		}
		n++
		if onStep != nil {
			onStep(r.steps)
		}
	}
}

func (r *Refiner) finish() {
	if !r.running {
		return
	}
	r.running = false
	r.t.session = false
	Logger().Info("refinement finished", "steps", r.steps, "faces", r.t.NumFaces(),
		"vertices", r.t.NumVertices())
}

func (r *Refiner) simpleStep() bool {
	for {
		op, ok := r.coarsen.pop()
		if !ok {
			break
		}
		if p, ok := r.vertexPriority(op.V1); !ok || p <= 0 {
			continue
		}
		if r.applyCoarsen(op) {
			return true
		}
	}
	for r.t.NumFaces() < r.config.MaxTriangles {
		op, ok := r.refine.pop()
		if !ok {
			break
		}
		if r.applyRefine(op) {
			return true
		}
	}
	return false
}

func (r *Refiner) complexStep() bool {
	for {
		over := r.t.NumFaces() > r.config.MaxTriangles
		rop, rok := r.refine.peek()
		cop, cok := r.coarsen.peek()
		if rok && (over || r.t.NumFaces() >= r.config.MaxTriangles) {
			rok = false
		}
		if rok && rop.Priority <= 0 {
			rok = false
		}
		if cok && !over && cop.Priority <= 0 {
			cok = false
		}
		var done bool
		switch {
		case cok && (over || !rok || cop.Priority >= rop.Priority):
			r.coarsen.pop()
			done = r.applyCoarsen(cop)
		case rok:
			r.refine.pop()
			done = r.applyRefine(rop)
		default:
			return false
		}
		if done {
			return true
		}
	}
}

// applyRefine splits the edge of op if it still needs it, and queues the
// operations around the changed faces.
func (r *Refiner) applyRefine(op RefOp) bool {
	t := r.t
	f, e, ok := t.IsValidEdge(op.V1, op.V2)
	if !ok || t.edgeColor(f, e) != EdgeGreen {
		return false
	}
	p, ok := r.edgePriority(f, e)
	if !ok {
		return false
	}
	if p != op.Priority {
		r.refine.push(RefOp{V1: op.V1, V2: op.V2, Priority: p})
		return false
	}
	var split bool
	touched := t.record(func() {
		split = t.recursiveEdgeSplit(op.V1, op.V2)
	})
	t.debugCheck("refinement step")
	for _, face := range touched {
		r.enqueueFace(face)
	}
	return split || len(touched) > 0
}

func (r *Refiner) applyCoarsen(op RefOp) bool {
	t := r.t
	p, ok := r.vertexPriority(op.V1)
	if !ok {
		return false
	}
	if p != op.Priority {
		r.coarsen.push(RefOp{V1: op.V1, V2: -1, Priority: p})
		return false
	}
	if t.classifyRemoval(op.V1) == removalNone {
		return false
	}
	var removed bool
	touched := t.record(func() {
		removed = t.vertexRemoval(op.V1)
	})
	t.debugCheck("coarsening step")
	for _, face := range touched {
		r.enqueueFace(face)
	}
	return removed
}

func (r *Refiner) enqueueFace(f int) {
	t := r.t
	for i := 0; i < 3; i++ {
		v1, v2 := t.v(f, i), t.v(f, i+1)
		if p, ok := r.edgePriority(f, i); ok {
			r.refine.push(RefOp{V1: v1, V2: v2, Priority: p})
		}
		if p, ok := r.vertexPriority(v1); ok {
			r.coarsen.push(RefOp{V1: v1, V2: -1, Priority: p})
		}
	}
}

func (r *Refiner) inBox(p model3d.Coord3D) bool {
	return r.config.Box != nil && r.config.Box.Contains(p)
}

// edgePriority returns how much an edge needs to be split. The second
// return value is false if the edge does not need refinement.
func (r *Refiner) edgePriority(f, e int) (float64, bool) {
	t := r.t
	if t.edgeColor(f, e) != EdgeGreen {
		return 0, false
	}
	level := t.edgeLevel(f, e)
	if level >= r.config.maxLevel() {
		return 0, false
	}
	p1 := t.mesh.Vertices[t.v(f, e)].P
	p2 := t.mesh.Vertices[t.v(f, e+1)].P
	length := p1.Dist(p2)

	priority := math.Inf(-1)
	if level < r.config.MinEdgeLevel {
		priority = float64(r.config.MinEdgeLevel - level)
	}
	if r.inBox(p1) && r.inBox(p2) {
		if level < r.config.MaxEdgeLevelInBox && length > r.config.MaxEdgeLengthInBox {
			priority = math.Max(priority, length/r.config.MaxEdgeLengthInBox-1)
		}
	} else if length > r.config.MaxEdgeLength {
		priority = math.Max(priority, length/r.config.MaxEdgeLength-1)
	}
	return priority, priority > 0
}

// vertexPriority returns how much removing a vertex would help. It is
// positive when the coarser edges left behind still satisfy the length
// and level limits. The second return value is false if the vertex must
// not be removed at all.
func (r *Refiner) vertexPriority(v int) (float64, bool) {
	t := r.t
	if !t.liveVertex(v) {
		return 0, false
	}
	info := t.verts[v]
	if info.level == 0 || info.isNew || (r.config.KeepBorder && info.isBorder) {
		return 0, false
	}
	p := t.mesh.Vertices[v].P
	if r.inBox(p) {
		return 0, false
	}
	var longest float64
	sp, _ := t.spokes(v)
	for _, s := range sp {
		longest = math.Max(longest, p.Dist(t.mesh.Vertices[s.far].P))
	}
	if info.level <= r.config.MinEdgeLevel {
		return -1, true
	}
	if math.IsInf(r.config.MaxEdgeLength, 1) {
		return 1, true
	}
	return 1 - 2*longest/r.config.MaxEdgeLength, true
}
