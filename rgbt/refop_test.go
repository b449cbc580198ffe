package rgbt

import "testing"

func TestRefQueueOrder(t *testing.T) {
	q := newRefQueue()
	q.push(RefOp{V1: 1, V2: 2, Priority: 0.5})
	q.push(RefOp{V1: 3, V2: -1, Priority: 2})
	q.push(RefOp{V1: 4, V2: 5, Priority: 1})
	if q.Len() != 3 {
		t.Fatalf("expected 3 operations but got %d", q.Len())
	}
	for _, expected := range []float64{2, 1, 0.5} {
		op, ok := q.pop()
		if !ok {
			t.Fatal("queue ended early")
		}
		if op.Priority != expected {
			t.Fatalf("expected priority %f but got %f", expected, op.Priority)
		}
	}
	if _, ok := q.pop(); ok {
		t.Fatal("expected an empty queue")
	}
}

func TestRefQueueReplace(t *testing.T) {
	q := newRefQueue()
	q.push(RefOp{V1: 1, V2: 2, Priority: 3})
	q.push(RefOp{V1: 2, V2: 1, Priority: 3})
	q.push(RefOp{V1: 7, V2: -1, Priority: 2})
	if q.Len() != 2 || len(q.heap) != 2 {
		t.Fatalf("expected a deduplicated entry but got %d (%d in heap)", q.Len(), len(q.heap))
	}

	// The first entry of the edge becomes stale and is skipped.
	q.push(RefOp{V1: 2, V2: 1, Priority: 1})
	op, ok := q.peek()
	if !ok || op.V1 != 7 || !op.IsVertex() {
		t.Fatalf("unexpected top operation %v", op)
	}
	q.pop()
	op, ok = q.pop()
	if !ok || op.Priority != 1 || op.IsVertex() {
		t.Fatalf("unexpected operation %v", op)
	}
	if _, ok := q.pop(); ok || q.Len() != 0 {
		t.Fatal("expected an empty queue")
	}
}
