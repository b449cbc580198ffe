package rgbt

import "container/heap"

// A RefOp is a pending refinement or coarsening operation.
//
// An edge operation names both endpoints. A vertex operation has V2 set to
// -1.
type RefOp struct {
	V1, V2   int
	Priority float64
}

// IsVertex checks if the operation targets a single vertex.
func (r RefOp) IsVertex() bool {
	return r.V2 < 0
}

func (r RefOp) key() [2]int {
	if r.V2 >= 0 && r.V2 < r.V1 {
		return [2]int{r.V2, r.V1}
	}
	return [2]int{r.V1, r.V2}
}

type opHeap []RefOp

func (o opHeap) Len() int {
	return len(o)
}

func (o opHeap) Less(i, j int) bool {
	return o[i].Priority > o[j].Priority
}

func (o opHeap) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
}

func (o *opHeap) Push(x interface{}) {
	*o = append(*o, x.(RefOp))
}

func (o *opHeap) Pop() interface{} {
	old := *o
	x := old[len(old)-1]
	*o = old[:len(old)-1]
	return x
}

// refQueue is a max-priority queue holding at most one live entry per
// vertex or edge.
//
// Pushing an operation again replaces its priority. Replaced entries stay in
// the heap and are skipped when they reach the top.
type refQueue struct {
	heap   opHeap
	queued map[[2]int]float64
}

func newRefQueue() *refQueue {
	return &refQueue{queued: map[[2]int]float64{}}
}

func (r *refQueue) Len() int {
	return len(r.queued)
}

func (r *refQueue) push(op RefOp) {
	key := op.key()
	if p, ok := r.queued[key]; ok && p == op.Priority {
		return
	}
	r.queued[key] = op.Priority
	heap.Push(&r.heap, op)
}

// peek returns the operation with the highest priority without removing
// it.
func (r *refQueue) peek() (RefOp, bool) {
	for len(r.heap) > 0 {
		top := r.heap[0]
		if p, ok := r.queued[top.key()]; ok && p == top.Priority {
			return top, true
		}
		heap.Pop(&r.heap)
	}
	return RefOp{}, false
}

func (r *refQueue) pop() (RefOp, bool) {
	op, ok := r.peek()
	if !ok {
		return op, false
	}
	heap.Pop(&r.heap)
	delete(r.queued, op.key())
	return op, true
}
